// Package report renders store statistics and crawl summaries as tables.
package report

import (
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JakeFAU/govbills-crawler/internal/crawler"
	"github.com/JakeFAU/govbills-crawler/internal/normalize"
	"github.com/JakeFAU/govbills-crawler/internal/storage"
)

// TitleWidth is the rune limit for titles in the recent-items tables.
const TitleWidth = 60

// Stats writes the statistics-mode report. Breakdown tables are omitted
// when they have no rows.
func Stats(w io.Writer, st storage.Stats) {
	totals := newTable(w, "Database statistics")
	totals.AppendHeader(table.Row{"Entity", "Count"})
	totals.AppendRow(table.Row{"Bills", st.Bills})
	totals.AppendRow(table.Row{"Executive actions", st.Actions})
	totals.Render()

	counts(w, "Bills by source site", "Source", st.BillsBySource)
	counts(w, "Bills by type", "Type", st.BillsByType)
	counts(w, "Executive actions by type", "Type", st.ActionsByType)
	recent(w, "Recent bills", st.RecentBills)
	recent(w, "Recent executive actions", st.RecentActions)
}

// Summary writes the outcome of one crawl run.
func Summary(w io.Writer, s crawler.Summary) {
	t := newTable(w, "Crawl summary")
	t.AppendRows([]table.Row{
		{"Run", s.RunID},
		{"Sites", strings.Join(s.Sites, ", ")},
		{"Pages fetched", s.Pages},
		{"Pages failed", s.PagesFailed},
		{"Records stored", s.Records},
		{"Records failed", s.RecordsFailed},
		{"Routing faults", s.RoutingFaults},
		{"Duration", s.Duration().Round(time.Millisecond).String()},
	})
	t.Render()
}

// Abbreviate shortens title to at most n runes plus an ellipsis. Blank titles
// render as "(untitled)".
func Abbreviate(title string, n int) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "(untitled)"
	}
	return normalize.Abbreviate(title, n)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func counts(w io.Writer, title, label string, rows []storage.Count) {
	if len(rows) == 0 {
		return
	}
	t := newTable(w, title)
	t.AppendHeader(table.Row{label, "Count"})
	for _, c := range rows {
		t.AppendRow(table.Row{c.Label, c.Total})
	}
	t.Render()
}

func recent(w io.Writer, title string, rows []storage.Recent) {
	if len(rows) == 0 {
		return
	}
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Title", "Source", "Scraped"})
	for _, r := range rows {
		t.AppendRow(table.Row{Abbreviate(r.Title, TitleWidth), r.SourceSite, r.ScrapedDate})
	}
	t.Render()
}
