// Package record defines the typed entities produced by the site builders and
// persisted by the storage gateway.
package record

import "time"

// Kind identifies the entity type carried by a Record.
type Kind string

// Entity kinds, one per storage table.
const (
	KindBill            Kind = "bill"
	KindExecutiveAction Kind = "executive_action"
)

// SourceSite identifies the website a record was scraped from.
type SourceSite string

// Supported source sites.
const (
	SiteCongress   SourceSite = "congress.gov"
	SiteGovTrack   SourceSite = "govtrack.us"
	SiteWhiteHouse SourceSite = "whitehouse.gov"
)

// BillType is the categorical tag for a legislative instrument.
type BillType string

// Bill types. BillGeneric is the fallback when nothing else matches.
const (
	HouseBill                  BillType = "house_bill"
	SenateBill                 BillType = "senate_bill"
	HouseResolution            BillType = "house_resolution"
	SenateResolution           BillType = "senate_resolution"
	HouseJointResolution       BillType = "house_joint_resolution"
	SenateJointResolution      BillType = "senate_joint_resolution"
	HouseConcurrentResolution  BillType = "house_concurrent_resolution"
	SenateConcurrentResolution BillType = "senate_concurrent_resolution"
	BillGeneric                BillType = "bill"
)

// ActionType is the categorical tag for a presidential action.
type ActionType string

// Action types. PresidentialAction is the fallback category.
const (
	ExecutiveOrder             ActionType = "executive_order"
	PresidentialMemorandum     ActionType = "presidential_memorandum"
	Proclamation               ActionType = "proclamation"
	NationalSecurityMemorandum ActionType = "national_security_memorandum"
	PresidentialAction         ActionType = "presidential_action"
)

// Record is implemented by every entity a builder can emit.
type Record interface {
	Kind() Kind
	NaturalKey() string
	Source() SourceSite
}

// Bill is one piece of legislation as seen on one source site.
// Empty strings and nil slices mean the value was not found on the page.
type Bill struct {
	ItemID      string `json:"item_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Summary     string `json:"summary,omitempty"`

	BillType        BillType `json:"bill_type"`
	BillNumber      string   `json:"bill_number,omitempty"`
	CongressSession string   `json:"congress_session,omitempty"`

	IntroducedDate string `json:"introduced_date,omitempty"`
	SignedDate     string `json:"signed_date,omitempty"`
	LastActionDate string `json:"last_action_date,omitempty"`

	Status       string `json:"status,omitempty"`
	CurrentStage string `json:"current_stage,omitempty"`
	LastAction   string `json:"last_action,omitempty"`

	Sponsor     string   `json:"sponsor,omitempty"`
	Cosponsors  []string `json:"cosponsors,omitempty"`
	Committees  []string `json:"committees,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
	PolicyAreas []string `json:"policy_areas,omitempty"`

	HousePassageVote  string `json:"house_passage_vote,omitempty"`
	SenatePassageVote string `json:"senate_passage_vote,omitempty"`

	SourceURL      string `json:"source_url"`
	FullTextURL    string `json:"full_text_url,omitempty"`
	CongressGovURL string `json:"congress_gov_url,omitempty"`

	SourceSite  SourceSite `json:"source_site"`
	ScrapedDate time.Time  `json:"scraped_date"`
}

// Kind implements Record.
func (*Bill) Kind() Kind { return KindBill }

// NaturalKey implements Record.
func (b *Bill) NaturalKey() string { return b.ItemID }

// Source implements Record.
func (b *Bill) Source() SourceSite { return b.SourceSite }

// ExecutiveAction is one presidential action.
type ExecutiveAction struct {
	ActionID    string `json:"action_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Summary     string `json:"summary,omitempty"`

	ActionType   ActionType `json:"action_type"`
	ActionNumber string     `json:"action_number,omitempty"`

	SignedDate    string `json:"signed_date,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`

	Subjects []string `json:"subjects,omitempty"`

	SourceURL   string `json:"source_url"`
	FullTextURL string `json:"full_text_url,omitempty"`

	SourceSite  SourceSite `json:"source_site"`
	ScrapedDate time.Time  `json:"scraped_date"`
}

// Kind implements Record.
func (*ExecutiveAction) Kind() Kind { return KindExecutiveAction }

// NaturalKey implements Record.
func (a *ExecutiveAction) NaturalKey() string { return a.ActionID }

// Source implements Record.
func (a *ExecutiveAction) Source() SourceSite { return a.SourceSite }
