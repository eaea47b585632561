package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Account     string          `json:"account"`
	Description string          `json:"description"`
	Document    string          `json:"document"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Account:     e.Account,
		Description: e.Description,
		Document:    e.Document,
		Type:        string(e.Type),
		Amount:      e.Amount,
		Status:      string(e.Status),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// EntryPageResponse represents one page of the entry listing.
type EntryPageResponse struct {
	Entries  []*EntryResponse `json:"entries"`
	Total    int              `json:"total"`
	Filtered int              `json:"filtered"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	MaxPage  int              `json:"max_page"`
}

// EntryPageFromUseCase converts a use case page to a response.
func EntryPageFromUseCase(p *usecase.EntryPage) *EntryPageResponse {
	return &EntryPageResponse{
		Entries:  EntriesFromDomain(p.Entries),
		Total:    p.Total,
		Filtered: p.Filtered,
		Page:     p.Page,
		PageSize: p.PageSize,
		MaxPage:  p.MaxPage,
	}
}

// SummaryResponse represents the KPI aggregates of the filtered set.
type SummaryResponse struct {
	Credits       decimal.Decimal `json:"credits"`
	Debits        decimal.Decimal `json:"debits"`
	Balance       decimal.Decimal `json:"balance"`
	ReconciledPct int             `json:"reconciled_pct"`
	Total         int             `json:"total"`
	Filtered      int             `json:"filtered"`
}

// SummaryFromUseCase converts a use case summary to a response.
func SummaryFromUseCase(s *usecase.Summary) *SummaryResponse {
	return &SummaryResponse{
		Credits:       s.Credits,
		Debits:        s.Debits,
		Balance:       s.Balance,
		ReconciledPct: s.ReconciledPct,
		Total:         s.Total,
		Filtered:      s.Filtered,
	}
}

// AccountsResponse lists the distinct account labels.
type AccountsResponse struct {
	Accounts []string `json:"accounts"`
}

// ImportResponse reports how many entries an import added.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// NormalizeResponse reports how many entries a normalization pass rewrote.
type NormalizeResponse struct {
	Changed int `json:"changed"`
}

// MatchPairResponse represents one credit/debit pairing.
type MatchPairResponse struct {
	Account  string `json:"account"`
	Amount   string `json:"amount"`
	CreditID string `json:"credit_id"`
	DebitID  string `json:"debit_id"`
}

// ReconcileResponse reports the outcome of a matcher run.
type ReconcileResponse struct {
	Marked int                 `json:"marked"`
	Pairs  []MatchPairResponse `json:"pairs"`
}

// ReconcileFromUseCase converts a match result to a response.
func ReconcileFromUseCase(r *usecase.MatchResult) *ReconcileResponse {
	pairs := make([]MatchPairResponse, len(r.Pairs))
	for i, p := range r.Pairs {
		pairs[i] = MatchPairResponse{
			Account:  p.Account,
			Amount:   p.Amount,
			CreditID: p.CreditID,
			DebitID:  p.DebitID,
		}
	}
	return &ReconcileResponse{
		Marked: r.Marked,
		Pairs:  pairs,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
