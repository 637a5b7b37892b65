package extract

import (
	"regexp"
	"strings"

	"github.com/JakeFAU/govbills-crawler/internal/record"
)

type actionPattern struct {
	needle string
	kind   record.ActionType
}

var titleActionPatterns = []actionPattern{
	{"executive order", record.ExecutiveOrder},
	{"presidential memorandum", record.PresidentialMemorandum},
	{"proclamation", record.Proclamation},
	{"national security memorandum", record.NationalSecurityMemorandum},
}

var urlActionPatterns = []actionPattern{
	{"executive-order", record.ExecutiveOrder},
	{"memorandum", record.PresidentialMemorandum},
	{"proclamation", record.Proclamation},
}

var actionNumberPattern = regexp.MustCompile(
	`(?i)\b(?:executive order|eo|proclamation|presidential memorandum|national security memorandum|nsm)[:\s]+(\d+)`)

// ActionType classifies a presidential action by its title, then its URL.
func ActionType(title, pageURL string) record.ActionType {
	lower := strings.ToLower(title)
	for _, p := range titleActionPatterns {
		if strings.Contains(lower, p.needle) {
			return p.kind
		}
	}
	lower = strings.ToLower(pageURL)
	for _, p := range urlActionPatterns {
		if strings.Contains(lower, p.needle) {
			return p.kind
		}
	}
	return record.PresidentialAction
}

// ActionNumber returns the number in titles like "Executive Order 14001".
func ActionNumber(title string) string {
	if m := actionNumberPattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return ""
}
