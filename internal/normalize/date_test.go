package normalize

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func TestStandardizeDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"long month", "January 20, 2021", "2021-01-20", true},
		{"short month", "Jan 5, 2021", "2021-01-05", true},
		{"lower case month", "march 3, 2020", "2020-03-03", true},
		{"slashes", "01/20/2021", "2021-01-20", true},
		{"single digit slashes", "1/2/2021", "2021-01-02", true},
		{"iso", "2021-01-20", "2021-01-20", true},
		{"iso timestamp", "2021-01-20T15:04:05Z", "2021-01-20", true},
		{"embedded in label", "Introduced 03/15/2023 in House", "2023-03-15", true},
		{"slashes win over later iso", "2021-01-01 then 02/03/2022", "2022-02-03", true},
		{"garbage", "garbage", "", false},
		{"empty", "", "", false},
		{"impossible day", "02/30/2021", "", false},
		{"impossible month", "13/01/2021", "", false},
		{"unknown month name", "Smarch 3, 2021", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := StandardizeDate(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDateReturnsEmptyWhenAbsent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Date("no date here"))
	assert.Equal(t, "2024-07-04", Date("July 4, 2024"))
}

// FuzzStandardizeDate checks that the normalizer is total: it never panics and
// only ever returns a fully-formed canonical date or nothing.
func FuzzStandardizeDate(f *testing.F) {
	seeds := []string{
		"January 20, 2021",
		"01/20/2021",
		"2021-01-20T00:00:00Z",
		"99/99/9999",
		"T",
		"2021-01-20Tgarbage",
		"Jan 32, 2021",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		got, ok := StandardizeDate(input)
		if ok && !canonicalDate.MatchString(got) {
			t.Fatalf("StandardizeDate(%q) = %q, not canonical", input, got)
		}
		if !ok && got != "" {
			t.Fatalf("StandardizeDate(%q) returned %q with ok=false", input, got)
		}
	})
}
