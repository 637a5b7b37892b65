package normalize

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical output layout for every normalized date.
const DateLayout = "2006-01-02"

// dateShapes are searched in order; the first shape present in the text wins.
var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`[A-Za-z]+ \d{1,2}, \d{4}`),
}

var isoTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// dateLayouts are tried in order against the matched substring.
var dateLayouts = []string{
	"1/2/2006",
	DateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
}

// StandardizeDate finds the first recognizable date in raw and returns it as
// YYYY-MM-DD. It reports false when no date shape is present or the matched
// text is not a real calendar date.
func StandardizeDate(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if isoTimestamp.MatchString(text) {
		text = text[:strings.IndexByte(text, 'T')]
	}

	candidate := ""
	for _, shape := range dateShapes {
		if m := shape.FindString(text); m != "" {
			candidate = m
			break
		}
	}
	if candidate == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

// Date is StandardizeDate without the ok flag; absent dates are "".
func Date(raw string) string {
	d, _ := StandardizeDate(raw)
	return d
}
