package sites

import (
	"iter"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/extract"
	"github.com/JakeFAU/govbills-crawler/internal/normalize"
	"github.com/JakeFAU/govbills-crawler/internal/record"
)

const congressBrowseCap = 5

var (
	congressDetailPath = regexp.MustCompile(`^/bill/\d+(?:th|st|nd|rd)-congress/[^/]+/\d+/?$`)
	congressBillNumber = regexp.MustCompile(`/bill/\d+(?:th|st|nd|rd)-congress/[^/]+/(\d+)`)
	congressSession    = regexp.MustCompile(`/(\d+)(?:th|st|nd|rd)-congress/`)
)

// Congress scrapes bill pages on congress.gov.
type Congress struct {
	opts    Options
	linkCap int
}

// NewCongress builds the congress.gov site.
func NewCongress(opts Options) *Congress {
	return &Congress{opts: opts, linkCap: linkCap(opts, congressBrowseCap)}
}

// ID implements Site.
func (*Congress) ID() string { return CongressID }

// Name implements Site.
func (*Congress) Name() record.SourceSite { return record.SiteCongress }

// Seeds implements Site.
func (*Congress) Seeds() []string {
	return []string{
		"https://www.congress.gov/browse",
		"https://www.congress.gov/bills",
		"https://www.congress.gov/bills/browse?q=%7B%22congress%22%3A118%7D",
		"https://www.congress.gov/bills/browse?q=%7B%22congress%22%3A117%7D",
	}
}

// Domains implements Site.
func (*Congress) Domains() []string { return []string{"congress.gov"} }

// Classify implements Site.
func (c *Congress) Classify(pageURL string) PageKind {
	u, ok := onDomain(pageURL, c.Domains())
	if !ok {
		return Foreign
	}
	if congressDetailPath.MatchString(u.Path) {
		return Detail
	}
	return Listing
}

// Build implements Site.
func (c *Congress) Build(doc *goquery.Document, pageURL string) record.Record {
	root := doc.Selection
	r := congressRules

	numberText := r.Number.First(root)
	number := firstSubmatch(congressBillNumber, pageURL)
	if number == "" {
		number = numberText
	}
	session := firstSubmatch(congressSession, pageURL)

	billType := extract.BillType(pageURL)
	if billType == record.BillGeneric && numberText != "" {
		billType = extract.BillType(numberText)
	}

	title := r.Title.First(root)
	description := extract.Meta(root, "description")
	if description == "" {
		description = title
	}

	lastAction := r.LastAction.First(root)
	if lastAction == "" {
		lastAction = r.LastActionFallback.First(root)
	}

	return &record.Bill{
		ItemID:            normalize.CongressBillID(session, number, pageURL),
		Title:             title,
		Description:       description,
		Summary:           normalize.JoinParagraphs(r.Summary.All(root)),
		BillType:          billType,
		BillNumber:        number,
		CongressSession:   session,
		IntroducedDate:    extract.LabelledDate(root, "Introduced"),
		SignedDate:        extract.LabelledDate(root, "Signed", "Enacted"),
		LastActionDate:    extract.LabelledDate(root, "Last Action", "Latest Action"),
		Status:            r.Status.First(root),
		CurrentStage:      r.Stage.First(root),
		LastAction:        lastAction,
		Sponsor:           r.Sponsor.First(root),
		Cosponsors:        normalize.CleanList(r.Cosponsors.All(root)),
		Committees:        normalize.CleanList(r.Committees.All(root)),
		Subjects:          normalize.CleanList(r.Subjects.All(root)),
		PolicyAreas:       normalize.CleanList(r.PolicyAreas.All(root)),
		HousePassageVote:  r.HouseVote.First(root),
		SenatePassageVote: r.SenateVote.First(root),
		SourceURL:         pageURL,
		FullTextURL:       extract.ResolveURL(pageURL, r.FullText.First(root)),
		CongressGovURL:    pageURL,
		SourceSite:        record.SiteCongress,
		ScrapedDate:       c.opts.Clock.Now().UTC(),
	}
}

// Discover implements Site. Bill links come first, then pagination, then at
// most linkCap browse pages. Links off congress.gov are dropped.
func (c *Congress) Discover(doc *goquery.Document, pageURL string) iter.Seq[string] {
	return func(yield func(string) bool) {
		root := doc.Selection
		for _, abs := range sameSite(c, pageURL, congressLinks.Items.All(root)) {
			if c.Classify(abs) != Detail {
				continue
			}
			if !yield(stripQuery(abs)) {
				return
			}
		}
		for _, abs := range sameSite(c, pageURL, congressLinks.Next.All(root)) {
			if !yield(abs) {
				return
			}
		}
		for _, abs := range capped(sameSite(c, pageURL, congressLinks.Categories.All(root)), c.linkCap) {
			if !yield(abs) {
				return
			}
		}
	}
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
