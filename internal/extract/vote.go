package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var voteOutcome = regexp.MustCompile(`(?i)\b(?:passed|failed|yes|no)\b`)

// VoteText returns a passage vote description for chamber ("house" or
// "senate"). Text that names no outcome is ignored.
func VoteText(root *goquery.Selection, chamber string) string {
	chamber = strings.ToLower(chamber)
	var candidates []string
	candidates = append(candidates, Texts("."+chamber+"-vote").All(root)...)
	candidates = append(candidates, Labelled(root, titleCase(chamber)+" Vote")...)
	candidates = append(candidates, Texts(".vote-"+chamber, "."+chamber+"-passage").All(root)...)
	for _, c := range candidates {
		if voteOutcome.MatchString(c) {
			return c
		}
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
