package extract

import (
	"regexp"
	"strings"

	"github.com/JakeFAU/govbills-crawler/internal/record"
)

type billTypePhrase struct {
	phrase string
	kind   record.BillType
}

// billTypePhrases are the long URL slugs, checked before any short code.
var billTypePhrases = []billTypePhrase{
	{"house-concurrent-resolution", record.HouseConcurrentResolution},
	{"senate-concurrent-resolution", record.SenateConcurrentResolution},
	{"house-joint-resolution", record.HouseJointResolution},
	{"senate-joint-resolution", record.SenateJointResolution},
	{"house-resolution", record.HouseResolution},
	{"senate-resolution", record.SenateResolution},
	{"house-bill", record.HouseBill},
	{"senate-bill", record.SenateBill},
}

var billTypeCodes = map[string]record.BillType{
	"hr":      record.HouseBill,
	"s":       record.SenateBill,
	"hres":    record.HouseResolution,
	"sres":    record.SenateResolution,
	"hjres":   record.HouseJointResolution,
	"sjres":   record.SenateJointResolution,
	"hconres": record.HouseConcurrentResolution,
	"sconres": record.SenateConcurrentResolution,
}

// Longer codes come first so "hres" is never read as "hr".
var billCodeBoundary = regexp.MustCompile(`(?:^|/)(hconres|sconres|hjres|sjres|hres|sres|hr|s)(?:\d|/|$)`)

// BillType classifies a URL or bill number such as "H.R. 1234". Anything
// unrecognized is record.BillGeneric.
func BillType(identifier string) record.BillType {
	lower := strings.ToLower(identifier)
	for _, p := range billTypePhrases {
		if strings.Contains(lower, p.phrase) {
			return p.kind
		}
	}
	compact := strings.NewReplacer(".", "", " ", "").Replace(lower)
	if m := billCodeBoundary.FindStringSubmatch(compact); m != nil {
		return billTypeCodes[m[1]]
	}
	return record.BillGeneric
}

// BillTypeFromCode maps a raw code such as "hjres" to its bill type.
func BillTypeFromCode(code string) record.BillType {
	if t, ok := billTypeCodes[strings.ToLower(code)]; ok {
		return t
	}
	return record.BillGeneric
}
