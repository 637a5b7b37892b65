package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCongressBillID(t *testing.T) {
	t.Parallel()

	url := "https://www.congress.gov/bill/118th-congress/house-bill/1234"
	assert.Equal(t, "congress-118-1234", CongressBillID("118", "1234", url))
	for i := 0; i < 3; i++ {
		assert.Equal(t, "congress-118-1234", CongressBillID("118", "1234", url))
	}

	fallback := CongressBillID("", "1234", url)
	assert.True(t, strings.HasPrefix(fallback, "congress-url-"))
	assert.Len(t, fallback, len("congress-url-")+16)
	assert.Equal(t, fallback, CongressBillID("118", "", url), "fallback depends only on the URL")
}

func TestGovTrackBillID(t *testing.T) {
	t.Parallel()

	url := "https://www.govtrack.us/congress/bills/117/hr42"
	assert.Equal(t, "govtrack-117-hr-42", GovTrackBillID("117", "hr", "42", url))

	a := GovTrackBillID("", "", "", "https://www.govtrack.us/congress/bills/browse?x=1")
	b := GovTrackBillID("", "", "", "https://www.govtrack.us/congress/bills/browse?x=2")
	assert.True(t, strings.HasPrefix(a, "govtrack-url-"))
	assert.NotEqual(t, a, b)
}

func TestExecutiveActionID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		title string
		date  string
		url   string
		want  string
	}{
		{
			name: "distinctive trailing slash segment",
			url:  "https://www.whitehouse.gov/presidential-actions/2025/01/ending-radical-programs/",
			want: "wh-ending-radical-programs",
		},
		{
			name: "distinctive last segment",
			url:  "https://www.whitehouse.gov/presidential-actions/2025/01/ending-radical-programs",
			want: "wh-ending-radical-programs",
		},
		{
			name:  "short segment falls back to date and slug",
			title: "Executive Order 14001 on Protecting the Federal Workforce",
			date:  "2021-01-20",
			url:   "https://www.whitehouse.gov/eo/14001/",
			want:  "wh-2021-01-20-executive-order-14001-on-prote",
		},
		{
			name:  "title only",
			title: "A Proclamation on National Day of Remembrance for Victims",
			url:   "https://x.gov/p/1",
			want:  "wh-a-proclamation-on-national-day-of-remembrance-for-",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExecutiveActionID(tc.title, tc.date, tc.url))
		})
	}
}

func TestExecutiveActionIDUnknownIsURLDerived(t *testing.T) {
	t.Parallel()

	a := ExecutiveActionID("", "", "https://x.gov/a/1")
	b := ExecutiveActionID("", "", "https://x.gov/a/2")
	assert.True(t, strings.HasPrefix(a, "wh-unknown-"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ExecutiveActionID("", "", "https://x.gov/a/1"))
}
