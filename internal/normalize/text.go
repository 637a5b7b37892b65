package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)
	nonSlugChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Zs}-]`)
)

// CollapseSpace trims s and folds internal whitespace runs to one space.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// JoinParagraphs collapses each paragraph and joins the non-empty ones with a
// single space.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(CleanList(paragraphs), " ")
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Abbreviate truncates s to n runes and appends "..." when it was longer.
func Abbreviate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return Truncate(s, n) + "..."
}

// Slug lower-cases s, drops punctuation other than '-' and '_', and replaces
// whitespace runs with '-'.
func Slug(s string) string {
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "")
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "-")
}
