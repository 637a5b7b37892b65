// Package sites holds the per-site record builders and listing-page link
// discovery for congress.gov, govtrack.us and whitehouse.gov.
package sites

import (
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/clock/system"
	"github.com/JakeFAU/govbills-crawler/internal/crawler"
	"github.com/JakeFAU/govbills-crawler/internal/extract"
	"github.com/JakeFAU/govbills-crawler/internal/record"
)

// PageKind is the routing decision for a URL on a site.
type PageKind int

// Page kinds.
const (
	Foreign PageKind = iota
	Listing
	Detail
)

func (k PageKind) String() string {
	switch k {
	case Listing:
		return "listing"
	case Detail:
		return "detail"
	default:
		return "foreign"
	}
}

// Site identifiers accepted on the command line.
const (
	CongressID   = "congress"
	GovTrackID   = "govtrack"
	WhiteHouseID = "whitehouse"
)

// ErrUnknownSite is returned for identifiers that name no site.
var ErrUnknownSite = errors.New("unknown site")

// Site builds records from detail pages and discovers links on listing pages.
type Site interface {
	ID() string
	Name() record.SourceSite
	Seeds() []string
	Domains() []string
	Classify(pageURL string) PageKind
	Build(doc *goquery.Document, pageURL string) record.Record
	Discover(doc *goquery.Document, pageURL string) iter.Seq[string]
}

// Options are shared by every site constructor.
type Options struct {
	Clock crawler.Clock
	// LinkCap bounds category fan-out per listing page; zero keeps each
	// site's own default.
	LinkCap int
}

// IDs lists every site in the order "all" runs them.
func IDs() []string {
	return []string{WhiteHouseID, CongressID, GovTrackID}
}

// New returns the site registered under id. A nil Clock defaults to the
// system clock.
func New(id string, opts Options) (Site, error) {
	if opts.Clock == nil {
		opts.Clock = system.New()
	}
	switch strings.ToLower(strings.TrimSpace(id)) {
	case CongressID:
		return NewCongress(opts), nil
	case GovTrackID:
		return NewGovTrack(opts), nil
	case WhiteHouseID:
		return NewWhiteHouse(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSite, id)
	}
}

// Registry resolves site identifiers.
type Registry map[string]Site

// NewRegistry builds every site named in ids. "all" expands to IDs().
func NewRegistry(opts Options, ids ...string) (Registry, error) {
	reg := make(Registry)
	for _, id := range Expand(ids) {
		site, err := New(id, opts)
		if err != nil {
			return nil, err
		}
		reg[site.ID()] = site
	}
	return reg, nil
}

// Lookup returns the site for id.
func (r Registry) Lookup(id string) (Site, bool) {
	s, ok := r[id]
	return s, ok
}

// Expand resolves "all" and an empty selection to every site identifier.
func Expand(ids []string) []string {
	if len(ids) == 0 {
		return IDs()
	}
	var out []string
	for _, id := range ids {
		if strings.EqualFold(id, "all") {
			return IDs()
		}
		out = append(out, id)
	}
	return out
}

func onDomain(pageURL string, domains []string) (*url.URL, bool) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return u, true
		}
	}
	return nil, false
}

// headTitle reads <title> without the " | Site Name" suffix.
func headTitle(root *goquery.Selection) string {
	title := root.Find("title").First().Text()
	if i := strings.Index(title, " | "); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// stripQuery drops the query and fragment, leaving the canonical detail URL.
func stripQuery(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// sameSite resolves hrefs against pageURL and keeps only the URLs site owns.
func sameSite(site Site, pageURL string, hrefs []string) []string {
	out := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		abs := extract.ResolveURL(pageURL, href)
		if abs == "" || site.Classify(abs) == Foreign {
			continue
		}
		out = append(out, abs)
	}
	return out
}

func capped(links []string, n int) []string {
	if n >= 0 && len(links) > n {
		return links[:n]
	}
	return links
}

func linkCap(opts Options, fallback int) int {
	if opts.LinkCap > 0 {
		return opts.LinkCap
	}
	return fallback
}
