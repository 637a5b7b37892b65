package normalize

import "strings"

// ListSeparator joins list-valued fields at the storage boundary.
const ListSeparator = ", "

// CleanList trims every entry and drops the empty ones. Order and duplicates
// are preserved.
func CleanList(in []string) []string {
	var out []string
	for _, v := range in {
		v = CollapseSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// FlattenList cleans the list and joins it with ListSeparator. An empty result
// is reported as absent rather than as an empty string.
func FlattenList(in []string) (string, bool) {
	cleaned := CleanList(in)
	if len(cleaned) == 0 {
		return "", false
	}
	return strings.Join(cleaned, ListSeparator), true
}

// SplitList reverses FlattenList.
func SplitList(flat string) []string {
	if flat == "" {
		return nil
	}
	return strings.Split(flat, ListSeparator)
}
