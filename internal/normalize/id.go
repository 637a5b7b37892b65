package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/JakeFAU/govbills-crawler/internal/hash/sha256"
)

// Natural key prefixes, one per source site.
const (
	CongressPrefix   = "congress"
	GovTrackPrefix   = "govtrack"
	WhiteHousePrefix = "wh"
)

const (
	minURLSegmentLen    = 10
	datedTitleSlugLen   = 30
	undatedTitleSlugLen = 50
)

// Changing anything below re-keys previously stored rows and produces
// duplicates on the next crawl.

// CongressBillID builds congress-{session}-{number}. Without a session or
// number the key is derived from the source URL instead.
func CongressBillID(session, number, sourceURL string) string {
	if session == "" || number == "" {
		return URLFallbackID(CongressPrefix, sourceURL)
	}
	return CongressPrefix + "-" + session + "-" + number
}

// GovTrackBillID builds govtrack-{session}-{code}-{number}, where code is the
// raw bill type code from the URL (hr, s, hjres, ...).
func GovTrackBillID(session, code, number, sourceURL string) string {
	if session == "" || code == "" || number == "" {
		return URLFallbackID(GovTrackPrefix, sourceURL)
	}
	return GovTrackPrefix + "-" + session + "-" + code + "-" + number
}

// ExecutiveActionID prefers a distinctive trailing URL segment, then the
// signed date plus a title slug, then the title slug alone, and finally a
// digest of the URL.
func ExecutiveActionID(title, signedDate, sourceURL string) string {
	if seg := trailingSegment(sourceURL); utf8.RuneCountInString(seg) > minURLSegmentLen {
		return WhiteHousePrefix + "-" + seg
	}
	if title == "" {
		return WhiteHousePrefix + "-unknown-" + sha256.Short(sourceURL)
	}
	slug := Slug(title)
	if signedDate != "" {
		return WhiteHousePrefix + "-" + signedDate + "-" + Truncate(slug, datedTitleSlugLen)
	}
	return WhiteHousePrefix + "-" + Truncate(slug, undatedTitleSlugLen)
}

// URLFallbackID derives a deterministic key from the full URL digest.
func URLFallbackID(prefix, sourceURL string) string {
	return prefix + "-url-" + sha256.Short(sourceURL)
}

// trailingSegment returns the last path segment of a slash-split URL, or the
// one before it when the URL ends in '/'.
func trailingSegment(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 3 {
		return ""
	}
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return parts[len(parts)-2]
}
