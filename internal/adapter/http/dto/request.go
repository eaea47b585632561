package dto

import (
	"github.com/iho/concilia/internal/usecase"
)

// EntryRequest represents a request to create or update an entry. The amount
// comes in as free text so the same endpoint accepts "1.234,56" and
// "-1234.56" alike.
type EntryRequest struct {
	Date        string `json:"date"`
	Account     string `json:"account"`
	Description string `json:"description"`
	Document    string `json:"document"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// ToUseCaseInput converts to use case input.
func (r *EntryRequest) ToUseCaseInput() usecase.EntryInput {
	return usecase.EntryInput{
		Date:        r.Date,
		Account:     r.Account,
		Description: r.Description,
		Document:    r.Document,
		Type:        r.Type,
		Amount:      r.Amount,
		Status:      r.Status,
		Notes:       r.Notes,
	}
}

// ImportCSVRequest represents a request to import CSV text.
type ImportCSVRequest struct {
	Text      string            `json:"text"`
	Separator string            `json:"separator,omitempty"`
	Mapping   map[string]string `json:"mapping,omitempty"`
}

// NormalizeRequest selects the cleanup steps for a normalization pass.
type NormalizeRequest struct {
	Trim          bool `json:"trim"`
	UppercaseType bool `json:"uppercase_type"`
	MapStatus     bool `json:"map_status"`
	FixDates      bool `json:"fix_dates"`
}

// ToUseCaseInput converts to use case options.
func (r *NormalizeRequest) ToUseCaseInput() usecase.NormalizeOptions {
	return usecase.NormalizeOptions{
		Trim:          r.Trim,
		UppercaseType: r.UppercaseType,
		MapStatus:     r.MapStatus,
		FixDates:      r.FixDates,
	}
}
