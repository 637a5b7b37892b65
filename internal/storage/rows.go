package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/JakeFAU/govbills-crawler/internal/normalize"
	"github.com/JakeFAU/govbills-crawler/internal/record"
)

// Table names.
const (
	BillsTable   = "bills"
	ActionsTable = "executive_actions"
)

// TimestampLayout is the fixed-width UTC layout used for scraped_date so that
// text ordering matches time ordering in every backend.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Row is a record flattened into column values.
type Row interface {
	Table() string
	Key() string
	Columns() []string
	// Args returns one value per column, in Columns order. Absent values are nil.
	Args() []any
}

var billColumns = []string{
	"item_id", "title", "description", "summary",
	"bill_type", "bill_number", "congress_session",
	"introduced_date", "signed_date", "last_action_date",
	"status", "current_stage", "last_action",
	"sponsor", "cosponsors", "committees", "subjects", "policy_areas",
	"house_passage_vote", "senate_passage_vote",
	"source_url", "full_text_url", "congress_gov_url",
	"source_site", "scraped_date",
}

var actionColumns = []string{
	"action_id", "title", "description", "summary",
	"action_type", "action_number",
	"signed_date", "published_date",
	"subjects",
	"source_url", "full_text_url",
	"source_site", "scraped_date",
}

// BillRow is the column form of a record.Bill. List fields are flattened with
// normalize.FlattenList.
type BillRow struct {
	ItemID            string `db:"item_id"`
	Title             string `db:"title"`
	Description       string `db:"description"`
	Summary           string `db:"summary"`
	BillType          string `db:"bill_type"`
	BillNumber        string `db:"bill_number"`
	CongressSession   string `db:"congress_session"`
	IntroducedDate    string `db:"introduced_date"`
	SignedDate        string `db:"signed_date"`
	LastActionDate    string `db:"last_action_date"`
	Status            string `db:"status"`
	CurrentStage      string `db:"current_stage"`
	LastAction        string `db:"last_action"`
	Sponsor           string `db:"sponsor"`
	Cosponsors        string `db:"cosponsors"`
	Committees        string `db:"committees"`
	Subjects          string `db:"subjects"`
	PolicyAreas       string `db:"policy_areas"`
	HousePassageVote  string `db:"house_passage_vote"`
	SenatePassageVote string `db:"senate_passage_vote"`
	SourceURL         string `db:"source_url"`
	FullTextURL       string `db:"full_text_url"`
	CongressGovURL    string `db:"congress_gov_url"`
	SourceSite        string `db:"source_site"`
	ScrapedDate       string `db:"scraped_date"`
}

// NewBillRow flattens b. It fails with ErrMissingKey when b has no ItemID.
func NewBillRow(b *record.Bill) (BillRow, error) {
	if b == nil || strings.TrimSpace(b.ItemID) == "" {
		return BillRow{}, ErrMissingKey
	}
	billType := b.BillType
	if billType == "" {
		billType = record.BillGeneric
	}
	return BillRow{
		ItemID:            b.ItemID,
		Title:             b.Title,
		Description:       b.Description,
		Summary:           b.Summary,
		BillType:          string(billType),
		BillNumber:        b.BillNumber,
		CongressSession:   b.CongressSession,
		IntroducedDate:    b.IntroducedDate,
		SignedDate:        b.SignedDate,
		LastActionDate:    b.LastActionDate,
		Status:            b.Status,
		CurrentStage:      b.CurrentStage,
		LastAction:        b.LastAction,
		Sponsor:           b.Sponsor,
		Cosponsors:        flatten(b.Cosponsors),
		Committees:        flatten(b.Committees),
		Subjects:          flatten(b.Subjects),
		PolicyAreas:       flatten(b.PolicyAreas),
		HousePassageVote:  b.HousePassageVote,
		SenatePassageVote: b.SenatePassageVote,
		SourceURL:         b.SourceURL,
		FullTextURL:       b.FullTextURL,
		CongressGovURL:    b.CongressGovURL,
		SourceSite:        string(b.SourceSite),
		ScrapedDate:       FormatTimestamp(b.ScrapedDate),
	}, nil
}

// Table implements Row.
func (BillRow) Table() string { return BillsTable }

// Key implements Row.
func (BillRow) Key() string { return "item_id" }

// Columns implements Row.
func (BillRow) Columns() []string { return billColumns }

// Args implements Row.
func (r BillRow) Args() []any {
	return []any{
		r.ItemID, null(r.Title), null(r.Description), null(r.Summary),
		r.BillType, null(r.BillNumber), null(r.CongressSession),
		null(r.IntroducedDate), null(r.SignedDate), null(r.LastActionDate),
		null(r.Status), null(r.CurrentStage), null(r.LastAction),
		null(r.Sponsor), null(r.Cosponsors), null(r.Committees), null(r.Subjects), null(r.PolicyAreas),
		null(r.HousePassageVote), null(r.SenatePassageVote),
		r.SourceURL, null(r.FullTextURL), null(r.CongressGovURL),
		r.SourceSite, r.ScrapedDate,
	}
}

// ActionRow is the column form of a record.ExecutiveAction.
type ActionRow struct {
	ActionID      string `db:"action_id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Summary       string `db:"summary"`
	ActionType    string `db:"action_type"`
	ActionNumber  string `db:"action_number"`
	SignedDate    string `db:"signed_date"`
	PublishedDate string `db:"published_date"`
	Subjects      string `db:"subjects"`
	SourceURL     string `db:"source_url"`
	FullTextURL   string `db:"full_text_url"`
	SourceSite    string `db:"source_site"`
	ScrapedDate   string `db:"scraped_date"`
}

// NewActionRow flattens a. It fails with ErrMissingKey when a has no ActionID.
func NewActionRow(a *record.ExecutiveAction) (ActionRow, error) {
	if a == nil || strings.TrimSpace(a.ActionID) == "" {
		return ActionRow{}, ErrMissingKey
	}
	actionType := a.ActionType
	if actionType == "" {
		actionType = record.PresidentialAction
	}
	return ActionRow{
		ActionID:      a.ActionID,
		Title:         a.Title,
		Description:   a.Description,
		Summary:       a.Summary,
		ActionType:    string(actionType),
		ActionNumber:  a.ActionNumber,
		SignedDate:    a.SignedDate,
		PublishedDate: a.PublishedDate,
		Subjects:      flatten(a.Subjects),
		SourceURL:     a.SourceURL,
		FullTextURL:   a.FullTextURL,
		SourceSite:    string(a.SourceSite),
		ScrapedDate:   FormatTimestamp(a.ScrapedDate),
	}, nil
}

// Table implements Row.
func (ActionRow) Table() string { return ActionsTable }

// Key implements Row.
func (ActionRow) Key() string { return "action_id" }

// Columns implements Row.
func (ActionRow) Columns() []string { return actionColumns }

// Args implements Row.
func (r ActionRow) Args() []any {
	return []any{
		r.ActionID, null(r.Title), null(r.Description), null(r.Summary),
		r.ActionType, null(r.ActionNumber),
		null(r.SignedDate), null(r.PublishedDate),
		null(r.Subjects),
		r.SourceURL, null(r.FullTextURL),
		r.SourceSite, r.ScrapedDate,
	}
}

// RowFor converts rec into its table row.
func RowFor(rec record.Record) (Row, error) {
	switch r := rec.(type) {
	case *record.Bill:
		return NewBillRow(r)
	case *record.ExecutiveAction:
		return NewActionRow(r)
	case nil:
		return nil, fmt.Errorf("%w: nil record", ErrUnsupportedRecord)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecord, rec.Kind())
	}
}

// FormatTimestamp renders t in TimestampLayout. The zero time becomes now.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(TimestampLayout)
}

func flatten(list []string) string {
	flat, _ := normalize.FlattenList(list)
	return flat
}

func null(s string) any {
	if s == "" {
		return nil
	}
	return s
}
