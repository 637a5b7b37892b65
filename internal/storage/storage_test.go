package storage

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/govbills-crawler/internal/record"
)

var testDialect = Dialect{
	Identity:  "id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY",
	Timestamp: "TIMESTAMPTZ",
	Now:       "now()",
	Bind:      func(i int) string { return "$" + strconv.Itoa(i) },
}

type otherRecord struct{}

func (otherRecord) Kind() record.Kind         { return "other" }
func (otherRecord) NaturalKey() string        { return "x" }
func (otherRecord) Source() record.SourceSite { return record.SiteCongress }

func TestNewBillRowFlattensAndNulls(t *testing.T) {
	t.Parallel()

	scraped := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("EST", -5*3600))
	row, err := NewBillRow(&record.Bill{
		ItemID:      "congress-118-1234",
		Title:       "Clean Water Act",
		Cosponsors:  []string{"  Jane Doe ", "", "John Roe"},
		SourceURL:   "https://www.congress.gov/bill/118th-congress/house-bill/1234",
		SourceSite:  record.SiteCongress,
		ScrapedDate: scraped,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe, John Roe", row.Cosponsors)
	assert.Equal(t, string(record.BillGeneric), row.BillType)
	assert.Equal(t, "2024-05-06T12:08:09Z", row.ScrapedDate)

	args := row.Args()
	require.Len(t, args, len(row.Columns()))
	assert.Equal(t, "congress-118-1234", args[0])
	assert.Equal(t, "Clean Water Act", args[1])
	assert.Nil(t, args[2], "empty description binds as NULL")
	assert.Equal(t, "Jane Doe, John Roe", args[14])
	assert.Nil(t, args[15], "empty committees bind as NULL")
	assert.Equal(t, "congress.gov", args[23])
}

func TestNewActionRow(t *testing.T) {
	t.Parallel()

	row, err := NewActionRow(&record.ExecutiveAction{
		ActionID:     "wh-ending-radical-programs",
		ActionType:   record.ExecutiveOrder,
		ActionNumber: "14151",
		Subjects:     []string{"Equity", "Budget"},
		SourceURL:    "https://www.whitehouse.gov/presidential-actions/2025/01/ending-radical-programs/",
		SourceSite:   record.SiteWhiteHouse,
		ScrapedDate:  time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, ActionsTable, row.Table())
	assert.Equal(t, "action_id", row.Key())

	args := row.Args()
	require.Len(t, args, len(actionColumns))
	assert.Equal(t, "executive_order", args[4])
	assert.Equal(t, "14151", args[5])
	assert.Nil(t, args[6])
	assert.Equal(t, "Equity, Budget", args[8])
	assert.Equal(t, "2025-01-21T00:00:00Z", args[12])
}

func TestRowForErrors(t *testing.T) {
	t.Parallel()

	_, err := RowFor(&record.Bill{ItemID: "  "})
	require.ErrorIs(t, err, ErrMissingKey)

	_, err = RowFor(&record.ExecutiveAction{})
	require.ErrorIs(t, err, ErrMissingKey)

	_, err = RowFor(otherRecord{})
	require.ErrorIs(t, err, ErrUnsupportedRecord)

	_, err = RowFor(nil)
	require.ErrorIs(t, err, ErrUnsupportedRecord)

	row, err := RowFor(&record.Bill{ItemID: "govtrack-117-hr-42"})
	require.NoError(t, err)
	assert.Equal(t, BillsTable, row.Table())
}

func TestUpsertStatement(t *testing.T) {
	t.Parallel()

	stmt := testDialect.Upsert(ActionRow{})
	assert.True(t, strings.HasPrefix(stmt, "INSERT INTO executive_actions (action_id, title,"))
	assert.Contains(t, stmt, "VALUES ($1, $2, $3,")
	assert.Contains(t, stmt, "$13)")
	assert.NotContains(t, stmt, "$14")
	assert.Contains(t, stmt, "ON CONFLICT (action_id) DO UPDATE SET title = excluded.title,")
	assert.NotContains(t, stmt, "action_id = excluded.action_id")
	assert.True(t, strings.HasSuffix(stmt, "scraped_date = excluded.scraped_date, updated_at = now()"))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	stmts := testDialect.Schema()
	require.Len(t, stmts, 5)
	assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE IF NOT EXISTS bills ("))
	assert.Contains(t, stmts[0], "id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY")
	assert.Contains(t, stmts[0], "item_id TEXT NOT NULL UNIQUE")
	assert.Contains(t, stmts[0], "bill_type TEXT NOT NULL")
	assert.Contains(t, stmts[0], "policy_areas TEXT,")
	assert.Contains(t, stmts[0], "created_at TIMESTAMPTZ NOT NULL DEFAULT now()")
	assert.True(t, strings.HasPrefix(stmts[1], "CREATE TABLE IF NOT EXISTS executive_actions ("))
	assert.Contains(t, stmts[1], "action_id TEXT NOT NULL UNIQUE")
	for _, stmt := range stmts[2:] {
		assert.True(t, strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"))
	}
}

func TestFormatTimestampZeroIsNow(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC().Truncate(time.Second)
	got, err := time.Parse(TimestampLayout, FormatTimestamp(time.Time{}))
	require.NoError(t, err)
	assert.False(t, got.Before(before))
}
