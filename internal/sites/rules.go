package sites

import "github.com/JakeFAU/govbills-crawler/internal/extract"

// billRules is the selector table for a bill detail page. Each chain is
// tried in order and the first non-empty match wins, except for list fields
// which collect every match.
type billRules struct {
	Number             extract.Chain
	Title              extract.Chain
	Sponsor            extract.Chain
	Cosponsors         extract.Chain
	Committees         extract.Chain
	Status             extract.Chain
	Stage              extract.Chain
	LastAction         extract.Chain
	LastActionFallback extract.Chain
	Summary            extract.Chain
	Subjects           extract.Chain
	PolicyAreas        extract.Chain
	HouseVote          extract.Chain
	SenateVote         extract.Chain
	FullText           extract.Chain
	CongressGov        extract.Chain
}

var congressRules = billRules{
	Number:             extract.Texts(".bill-number", "h1 .bill-number"),
	Title:              extract.Texts("h1", ".bill-title"),
	Sponsor:            extract.Texts(".sponsor a", ".bill-sponsor"),
	Cosponsors:         extract.Texts(".cosponsors a", ".cosponsor"),
	Committees:         extract.Texts(".committees a", ".committee"),
	Status:             extract.Texts(".bill-status", ".status"),
	Stage:              extract.Texts(".bill-stage", ".stage"),
	LastAction:         extract.Texts(".latest-action", ".last-action"),
	LastActionFallback: extract.Texts(".actions li:first-child", ".action-item:first-child"),
	Summary:            extract.Texts(".bill-summary p", ".summary p"),
	Subjects:           extract.Texts(".subjects a", ".subject"),
	PolicyAreas:        extract.Texts(".policy-areas a", ".policy-area"),
	HouseVote:          extract.Texts(".house-vote", ".house-passage"),
	SenateVote:         extract.Texts(".senate-vote", ".senate-passage"),
	FullText:           extract.Chain{extract.Attr(`a[href*="/text"]`, "href")},
}

var govTrackRules = billRules{
	Title:              extract.Texts("h1", ".bill-title"),
	Sponsor:            extract.Texts(".sponsor a", ".bill-sponsor"),
	Cosponsors:         extract.Texts(".cosponsors a", ".cosponsor-list a"),
	Committees:         extract.Texts(".committees a", ".committee-list a"),
	Status:             extract.Texts(".bill-status", ".status-text"),
	Stage:              extract.Texts(".bill-stage", ".current-status"),
	LastAction:         extract.Texts(".latest-action", ".last-action-text"),
	LastActionFallback: extract.Texts(".action-timeline li:first-child", ".actions li:first-child"),
	Summary:            extract.Texts(".bill-summary", ".summary p"),
	Subjects:           extract.Texts(".subjects a", ".topics a", ".issue-areas a"),
	PolicyAreas:        extract.Texts(".policy-areas a", ".policy-area"),
	FullText: extract.Chain{
		extract.Attr(`a[href*="/text"]`, "href"),
		extract.Attr(`a:contains("Full Text")`, "href"),
	},
	CongressGov: extract.Chain{extract.Attr(`a[href*="congress.gov"]`, "href")},
}

// actionRules is the selector table for a presidential action page.
var actionRules = struct {
	Title    extract.Chain
	Date     extract.Chain
	Content  []string
	Subjects extract.Chain
}{
	Title: extract.Texts("h1"),
	Date: extract.Chain{
		extract.Attr("time", "datetime"),
		extract.Text(".date"),
		extract.Text(`[class*="date"]`),
		extract.Text("time"),
	},
	Content:  []string{".entry-content p", ".content p", ".post-content p", "main p", "article p"},
	Subjects: extract.Texts(".categories a", ".tags a", ".breadcrumb a", "nav a"),
}

// linkRules drive listing-page discovery.
type linkRules struct {
	Items      extract.Chain
	ItemsAlt   extract.Chain
	Next       extract.Chain
	Categories extract.Chain
}

var congressLinks = linkRules{
	Items: extract.Chain{
		extract.Attr(`a[href*="/bill/"]`, "href"),
		extract.Attr(".result-heading a", "href"),
	},
	Next: extract.Chain{
		extract.Attr(`a[aria-label="Next"]`, "href"),
		extract.Attr(".pagination .next a", "href"),
	},
	Categories: extract.Chain{extract.Attr(`a[href*="/bills/browse"]`, "href")},
}

var govTrackLinks = linkRules{
	Items: extract.Chain{
		extract.Attr(`a[href*="/congress/bills/"]`, "href"),
		extract.Attr(".bill-link a", "href"),
		extract.Attr(`.result a[href*="/congress/bills/"]`, "href"),
	},
	Next: extract.Chain{
		extract.Attr(`a[rel="next"]`, "href"),
		extract.Attr(".pagination .next a", "href"),
	},
	Categories: extract.Chain{extract.Attr(`a[href*="/congress/bills/browse?"]`, "href")},
}

var whiteHouseLinks = linkRules{
	Items:    extract.Chain{extract.Attr(`h2 a[href*="/presidential-actions/"]`, "href")},
	ItemsAlt: extract.Chain{extract.Attr(`a[href*="/presidential-actions/20"]`, "href")},
	Next: extract.Chain{
		extract.Attr(`a[href*="/page/"]:contains("NEXT")`, "href"),
		extract.Attr(`a[href*="/page/"]:contains("Next")`, "href"),
		extract.Attr(`a[href*="/page/"]:contains("2")`, "href"),
	},
}
