package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies an entry as money in or money out.
type EntryType string

const (
	TypeCredit EntryType = "CREDIT"
	TypeDebit  EntryType = "DEBIT"
)

// EntryStatus tracks where an entry sits in the reconciliation workflow.
type EntryStatus string

const (
	StatusPending    EntryStatus = "PENDING"
	StatusInProgress EntryStatus = "IN_PROGRESS"
	StatusReconciled EntryStatus = "RECONCILED"
	StatusDivergent  EntryStatus = "DIVERGENT"
)

// Entry represents a single financial record tracked for reconciliation.
// Date is either empty or canonical YYYY-MM-DD. The ID is assigned by the
// store on creation and carries no meaning beyond identity and ordering.
type Entry struct {
	ID          string
	Date        string
	Account     string
	Description string
	Document    string
	Type        EntryType
	Amount      decimal.Decimal
	Status      EntryStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WithoutID returns a copy of the entry with identity cleared so the store
// assigns a fresh one.
func (e Entry) WithoutID() *Entry {
	e.ID = ""
	return &e
}

// GroupKey is the matching key: account plus absolute amount at two
// decimal places.
func (e *Entry) GroupKey() string {
	return e.Account + "|" + e.Amount.Abs().StringFixed(2)
}

// InferType derives the entry type from the amount sign. Non-negative
// amounts are credits.
func InferType(amount decimal.Decimal) EntryType {
	if amount.IsNegative() {
		return TypeDebit
	}
	return TypeCredit
}

// ParseType parses a type label, falling back to the amount sign when the
// label is not a recognized type.
func ParseType(s string, amount decimal.Decimal) EntryType {
	switch EntryType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeCredit:
		return TypeCredit
	case TypeDebit:
		return TypeDebit
	}
	return InferType(amount)
}

// ParseStatus validates a status label. Unrecognized values default to
// PENDING. Synonym spellings are only resolved by MapStatus, which the
// normalization pass applies on request.
func ParseStatus(s string) EntryStatus {
	switch EntryStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending
	case StatusInProgress:
		return StatusInProgress
	case StatusReconciled:
		return StatusReconciled
	case StatusDivergent:
		return StatusDivergent
	}
	return StatusPending
}

// statusSynonyms maps spellings seen in imported files, including the
// Portuguese labels of the legacy data, onto the canonical statuses.
// Lookup is on the uppercased input.
var statusSynonyms = map[string]EntryStatus{
	"PENDING":  StatusPending,
	"PEND":     StatusPending,
	"PENDENTE": StatusPending,

	"IN_PROGRESS":  StatusInProgress,
	"IN PROGRESS":  StatusInProgress,
	"EM ANDAMENTO": StatusInProgress,
	"ANDAMENTO":    StatusInProgress,
	"ABERTO":       StatusInProgress,
	"OPEN":         StatusInProgress,

	"RECONCILED": StatusReconciled,
	"CONCILIADO": StatusReconciled,
	"CONC":       StatusReconciled,
	"OK":         StatusReconciled,
	"MATCH":      StatusReconciled,

	"DIVERGENT":   StatusDivergent,
	"DIVERGENCIA": StatusDivergent,
	"DIVERGÊNCIA": StatusDivergent,
	"ERRO":        StatusDivergent,
	"ERROR":       StatusDivergent,
	"ALERTA":      StatusDivergent,
	"ALERT":       StatusDivergent,
}

// MapStatus resolves status synonyms case-insensitively. Values absent from
// the synonym table fall through to ParseStatus, so anything unrecognized
// still ends up PENDING.
func MapStatus(s string) EntryStatus {
	if status, ok := statusSynonyms[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return status
	}
	return ParseStatus(s)
}
