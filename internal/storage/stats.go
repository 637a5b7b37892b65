package storage

// Statistics queries, portable across backends. The recent queries return
// the five newest rows.
const (
	CountBillsQuery    = "SELECT COUNT(*) FROM bills"
	CountActionsQuery  = "SELECT COUNT(*) FROM executive_actions"
	BillsBySourceQuery = "SELECT source_site AS label, COUNT(*) AS total FROM bills " +
		"GROUP BY source_site ORDER BY total DESC, label"
	BillsByTypeQuery = "SELECT bill_type AS label, COUNT(*) AS total FROM bills " +
		"GROUP BY bill_type ORDER BY total DESC, label"
	ActionsByTypeQuery = "SELECT action_type AS label, COUNT(*) AS total FROM executive_actions " +
		"GROUP BY action_type ORDER BY total DESC, label"
	RecentBillsQuery = "SELECT COALESCE(title, '') AS title, source_site, scraped_date FROM bills " +
		"ORDER BY scraped_date DESC, id DESC LIMIT 5"
	RecentActionsQuery = "SELECT COALESCE(title, '') AS title, source_site, scraped_date FROM executive_actions " +
		"ORDER BY scraped_date DESC, id DESC LIMIT 5"
)

// Count is one group of a GROUP BY tally.
type Count struct {
	Label string `db:"label"`
	Total int64  `db:"total"`
}

// Recent is one of the newest stored rows.
type Recent struct {
	Title       string `db:"title"`
	SourceSite  string `db:"source_site"`
	ScrapedDate string `db:"scraped_date"`
}

// Stats is the statistics-mode summary of the store.
type Stats struct {
	Bills         int64
	Actions       int64
	BillsBySource []Count
	BillsByType   []Count
	ActionsByType []Count
	RecentBills   []Recent
	RecentActions []Recent
}
