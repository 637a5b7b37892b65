// Package pipeline routes a parsed page to its site's record builder or link
// discoverer.
package pipeline

import (
	"errors"
	"fmt"
	"iter"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/record"
	"github.com/JakeFAU/govbills-crawler/internal/sites"
)

// ErrUnroutable is returned when a page cannot be handed to any builder.
var ErrUnroutable = errors.New("unroutable page")

// Result is what one page contributes to the crawl: a record for detail
// pages, follow-up links for listing pages.
type Result struct {
	Record record.Record
	Links  iter.Seq[string]
	Kind   sites.PageKind
}

// Processor implements the per-page contract over a site registry.
type Processor struct {
	sites sites.Registry
}

// New creates a Processor.
func New(registry sites.Registry) *Processor {
	return &Processor{sites: registry}
}

// Process routes doc by the site identifier and the page URL.
func (p *Processor) Process(doc *goquery.Document, pageURL, siteID string) (Result, error) {
	site, ok := p.sites.Lookup(siteID)
	if !ok {
		return Result{}, fmt.Errorf("%w: no site %q", ErrUnroutable, siteID)
	}
	if doc == nil {
		return Result{}, fmt.Errorf("%w: nil document for %s", ErrUnroutable, pageURL)
	}

	switch kind := site.Classify(pageURL); kind {
	case sites.Detail:
		return Result{Record: site.Build(doc, pageURL), Kind: kind}, nil
	case sites.Listing:
		return Result{Links: site.Discover(doc, pageURL), Kind: kind}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s is not on %s", ErrUnroutable, pageURL, site.Name())
	}
}
