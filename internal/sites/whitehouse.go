package sites

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/extract"
	"github.com/JakeFAU/govbills-crawler/internal/normalize"
	"github.com/JakeFAU/govbills-crawler/internal/record"
)

const (
	whiteHouseSectionLabel = "Presidential Actions"
	whiteHouseListingPath  = "/presidential-actions/"
	minSummaryLen          = 50
)

var (
	whiteHouseDetailPath = regexp.MustCompile(`^(?:/briefing-room)?/(?:presidential-actions|briefings-statements)/\d{4}/\d{2}/(?:\d{2}/)?[^/]*[^/\d][^/]*/?$`)
	whiteHouseURLDate    = regexp.MustCompile(`/(\d{4})/(\d{2})/(?:(\d{2})/)?`)
)

// WhiteHouse scrapes presidential actions on whitehouse.gov.
type WhiteHouse struct {
	opts Options
}

// NewWhiteHouse builds the whitehouse.gov site.
func NewWhiteHouse(opts Options) *WhiteHouse {
	return &WhiteHouse{opts: opts}
}

// ID implements Site.
func (*WhiteHouse) ID() string { return WhiteHouseID }

// Name implements Site.
func (*WhiteHouse) Name() record.SourceSite { return record.SiteWhiteHouse }

// Seeds implements Site.
func (*WhiteHouse) Seeds() []string {
	return []string{"https://www.whitehouse.gov/presidential-actions/"}
}

// Domains implements Site.
func (*WhiteHouse) Domains() []string { return []string{"whitehouse.gov"} }

// Classify implements Site.
func (w *WhiteHouse) Classify(pageURL string) PageKind {
	u, ok := onDomain(pageURL, w.Domains())
	if !ok {
		return Foreign
	}
	if whiteHouseDetailPath.MatchString(u.Path) {
		return Detail
	}
	return Listing
}

// Build implements Site.
func (w *WhiteHouse) Build(doc *goquery.Document, pageURL string) record.Record {
	root := doc.Selection
	r := actionRules

	title := r.Title.First(root)
	if title == "" {
		title = headTitle(root)
	}

	signed := r.Date.FirstDate(root)
	if signed == "" {
		signed = dateFromURL(pageURL)
	}

	paragraphs := extract.Paragraphs(root, r.Content...)
	summary := extract.Meta(root, "description")
	if summary == "" {
		for _, p := range paragraphs {
			if utf8.RuneCountInString(p) > minSummaryLen {
				summary = p
				break
			}
		}
	}

	var subjects []string
	for _, s := range r.Subjects.All(root) {
		if s != whiteHouseSectionLabel {
			subjects = append(subjects, s)
		}
	}

	return &record.ExecutiveAction{
		ActionID:      normalize.ExecutiveActionID(title, signed, pageURL),
		Title:         title,
		Description:   normalize.JoinParagraphs(paragraphs),
		Summary:       summary,
		ActionType:    extract.ActionType(title, pageURL),
		ActionNumber:  extract.ActionNumber(title),
		SignedDate:    signed,
		PublishedDate: signed,
		Subjects:      normalize.CleanList(subjects),
		SourceURL:     pageURL,
		FullTextURL:   pageURL,
		SourceSite:    record.SiteWhiteHouse,
		ScrapedDate:   w.opts.Clock.Now().UTC(),
	}
}

// dateFromURL reads a /YYYY/MM/DD/ archive path, or approximates a
// /YYYY/MM/ path as the first of the month.
func dateFromURL(pageURL string) string {
	m := whiteHouseURLDate.FindStringSubmatch(pageURL)
	if m == nil {
		return ""
	}
	day := m[3]
	if day == "" {
		day = "01"
	}
	return normalize.Date(m[1] + "-" + m[2] + "-" + day)
}

// Discover implements Site. Headline links are preferred; the looser dated
// link selector is used only when a page has none. One pagination link is
// followed per page. Links off whitehouse.gov are dropped.
func (w *WhiteHouse) Discover(doc *goquery.Document, pageURL string) iter.Seq[string] {
	return func(yield func(string) bool) {
		root := doc.Selection
		links := whiteHouseLinks.Items.All(root)
		if len(links) == 0 {
			links = whiteHouseLinks.ItemsAlt.All(root)
		}
		var items []string
		for _, href := range links {
			if strings.Contains(href, whiteHouseListingPath) && !strings.HasSuffix(href, whiteHouseListingPath) {
				items = append(items, href)
			}
		}
		for _, abs := range sameSite(w, pageURL, items) {
			if !yield(abs) {
				return
			}
		}
		if next := sameSite(w, pageURL, whiteHouseLinks.Next.All(root)); len(next) > 0 {
			yield(next[0])
		}
	}
}
