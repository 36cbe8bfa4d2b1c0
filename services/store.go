package services

import (
	"encoding/json"
	"errors"

	"offertetool/reference"
)

// ErrNotFound is returned by stores when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ReferenceStore provides the read-only reference tables.
type ReferenceStore interface {
	NormTable() (*reference.NormTable, error)
	CorrectionTable() (*reference.CorrectionTable, error)
	// PriceBook returns the active products visible to owner: the owner's
	// own products plus the shared ones.
	PriceBook(owner string) (reference.PriceBook, error)
}

// QuoteStore loads quote drafts and persists calculated results.
type QuoteStore interface {
	LoadQuote(id string) (QuoteDraft, error)
	QuoteIDs() ([]string, error)
	// SaveQuoteResult replaces the generated lines, totals and
	// voorcalculatie of a quote atomically. Manual lines are kept.
	SaveQuoteResult(draft QuoteDraft, res QuoteResult) error
}

// ProjectStore holds a project's plan and its append-only logs.
type ProjectStore interface {
	LoadVoorcalculatie(projectID string) (Voorcalculatie, error)
	TimeEntries(projectID string) ([]TimeEntry, error)
	MachineUsage(projectID string) ([]MachineUsage, error)
	AppendTimeEntry(projectID string, e TimeEntry) (TimeEntry, error)
	AppendMachineUsage(projectID string, u MachineUsage) (MachineUsage, error)
	LoadPlanning(projectID string) (Planning, error)
	SavePlanning(projectID string, p Planning) error
	SaveNacalculatie(projectID string, r NacalculatieReport) error
}

// PriceBookWriter stores imported products. Products are matched on owner,
// category and name; existing rows are updated in place.
type PriceBookWriter interface {
	UpsertProducts(owner string, products []reference.Product) (int, error)
}

// QuoteDraft is a quote as stored before calculation.
type QuoteDraft struct {
	ID          string                     `json:"id"`
	Number      string                     `json:"nummer,omitempty"`
	ProjectID   string                     `json:"project,omitempty"`
	Owner       string                     `json:"eigenaar,omitempty"`
	Title       string                     `json:"titel"`
	Customer    string                     `json:"klant,omitempty"`
	Scopes      map[string]json.RawMessage `json:"scopes"`
	Settings    QuoteSettings              `json:"instellingen"`
	ManualLines []QuoteLine                `json:"handmatigeRegels,omitempty"`
}
