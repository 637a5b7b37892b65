package extract

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/govbills-crawler/internal/normalize"
)

// DateAttributes are read when no labelled date is present on the page.
var DateAttributes = Chain{
	Attr("[data-date]", "data-date"),
	Attr("time[datetime]", "datetime"),
}

// Labelled returns candidate value texts for elements whose own text contains
// label: the element's text followed by its next sibling element's text.
func Labelled(root *goquery.Selection, label string) []string {
	return labelled(root, label, false)
}

// LabelledDate returns the first labelled candidate that standardizes to a
// date. Labels are tried in order. Dates may also sit in the label's parent,
// as in <li><b>Introduced:</b> 03/15/2023</li>.
func LabelledDate(root *goquery.Selection, labels ...string) string {
	for _, label := range labels {
		for _, candidate := range labelled(root, label, true) {
			if d, ok := normalize.StandardizeDate(candidate); ok {
				return d
			}
		}
	}
	return ""
}

func labelled(root *goquery.Selection, label string, withParent bool) []string {
	var out []string
	root.Find(":containsOwn(" + strconv.Quote(label) + ")").Each(func(_ int, s *goquery.Selection) {
		candidates := []*goquery.Selection{s, s.Next()}
		if withParent {
			candidates = append(candidates, s.Parent())
		}
		for _, c := range candidates {
			if c.Length() == 0 {
				continue
			}
			if v := normalize.CollapseSpace(c.Text()); v != "" {
				out = append(out, v)
			}
		}
	})
	return out
}
