package sites

import (
	"iter"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/extract"
	"github.com/JakeFAU/govbills-crawler/internal/normalize"
	"github.com/JakeFAU/govbills-crawler/internal/record"
)

const (
	govTrackCategoryCap  = 10
	govTrackDescLen      = 200
	govTrackCongressFlag = "congress="
)

var (
	govTrackDetailPath = regexp.MustCompile(`^/congress/bills/\d+/[a-z]+\d+/?$`)
	govTrackBill       = regexp.MustCompile(`/congress/bills/(\d+)/([a-z]+)(\d+)`)
)

// GovTrack scrapes bill pages on govtrack.us.
type GovTrack struct {
	opts    Options
	linkCap int
}

// NewGovTrack builds the govtrack.us site.
func NewGovTrack(opts Options) *GovTrack {
	return &GovTrack{opts: opts, linkCap: linkCap(opts, govTrackCategoryCap)}
}

// ID implements Site.
func (*GovTrack) ID() string { return GovTrackID }

// Name implements Site.
func (*GovTrack) Name() record.SourceSite { return record.SiteGovTrack }

// Seeds implements Site.
func (*GovTrack) Seeds() []string {
	return []string{
		"https://www.govtrack.us/congress/bills/",
		"https://www.govtrack.us/congress/bills/browse",
		"https://www.govtrack.us/congress/bills/browse?congress=118",
		"https://www.govtrack.us/congress/bills/browse?congress=117",
	}
}

// Domains implements Site.
func (*GovTrack) Domains() []string { return []string{"govtrack.us"} }

// Classify implements Site.
func (g *GovTrack) Classify(pageURL string) PageKind {
	u, ok := onDomain(pageURL, g.Domains())
	if !ok {
		return Foreign
	}
	if govTrackDetailPath.MatchString(u.Path) {
		return Detail
	}
	return Listing
}

// Build implements Site.
func (g *GovTrack) Build(doc *goquery.Document, pageURL string) record.Record {
	root := doc.Selection
	r := govTrackRules

	var session, code, number string
	if m := govTrackBill.FindStringSubmatch(pageURL); m != nil {
		session, code, number = m[1], m[2], m[3]
	}

	title := r.Title.First(root)
	if title == "" {
		title = headTitle(root)
	}

	summary := normalize.JoinParagraphs(r.Summary.All(root))
	description := extract.Meta(root, "description")
	if description == "" {
		description = normalize.Abbreviate(summary, govTrackDescLen)
	}

	lastAction := r.LastAction.First(root)
	if lastAction == "" {
		lastAction = r.LastActionFallback.First(root)
	}

	billType := record.BillGeneric
	if code != "" {
		billType = extract.BillTypeFromCode(code)
	}

	return &record.Bill{
		ItemID:            normalize.GovTrackBillID(session, code, number, pageURL),
		Title:             title,
		Description:       description,
		Summary:           summary,
		BillType:          billType,
		BillNumber:        number,
		CongressSession:   session,
		IntroducedDate:    labelledOrAttributeDate(root, "Introduced"),
		LastActionDate:    labelledOrAttributeDate(root, "Last Action", "Latest Action"),
		Status:            r.Status.First(root),
		CurrentStage:      r.Stage.First(root),
		LastAction:        lastAction,
		Sponsor:           r.Sponsor.First(root),
		Cosponsors:        normalize.CleanList(r.Cosponsors.All(root)),
		Committees:        normalize.CleanList(r.Committees.All(root)),
		Subjects:          normalize.CleanList(r.Subjects.All(root)),
		PolicyAreas:       normalize.CleanList(r.PolicyAreas.All(root)),
		HousePassageVote:  extract.VoteText(root, "house"),
		SenatePassageVote: extract.VoteText(root, "senate"),
		SourceURL:         pageURL,
		FullTextURL:       extract.ResolveURL(pageURL, r.FullText.First(root)),
		CongressGovURL:    r.CongressGov.First(root),
		SourceSite:        record.SiteGovTrack,
		ScrapedDate:       g.opts.Clock.Now().UTC(),
	}
}

func labelledOrAttributeDate(root *goquery.Selection, labels ...string) string {
	if d := extract.LabelledDate(root, labels...); d != "" {
		return d
	}
	return extract.DateAttributes.FirstDate(root)
}

// Discover implements Site. Only individual bill links are followed from the
// item selectors; a single next-page link and up to linkCap congress-filtered
// browse links are added after them. Links off govtrack.us are dropped.
func (g *GovTrack) Discover(doc *goquery.Document, pageURL string) iter.Seq[string] {
	return func(yield func(string) bool) {
		root := doc.Selection
		for _, abs := range sameSite(g, pageURL, govTrackLinks.Items.All(root)) {
			if g.Classify(abs) != Detail {
				continue
			}
			if !yield(stripQuery(abs)) {
				return
			}
		}
		if next := sameSite(g, pageURL, govTrackLinks.Next.All(root)); len(next) > 0 {
			if !yield(next[0]) {
				return
			}
		}
		var browse []string
		for _, href := range govTrackLinks.Categories.All(root) {
			if strings.Contains(href, govTrackCongressFlag) {
				browse = append(browse, href)
			}
		}
		for _, abs := range capped(sameSite(g, pageURL, browse), g.linkCap) {
			if !yield(abs) {
				return
			}
		}
	}
}
