package usecase

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
)

// BackupItem is the JSON shape of one entry inside a backup file.
type BackupItem struct {
	ID          string          `json:"id,omitempty"`
	Date        string          `json:"date"`
	Account     string          `json:"account"`
	Description string          `json:"description"`
	Document    string          `json:"document"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

// BackupFile is the envelope written by the backup exporter and accepted by
// restore.
type BackupFile struct {
	ExportedAt time.Time    `json:"exportedAt"`
	Items      []BackupItem `json:"items"`
}

// entryFromItem maps a backup item onto a fresh entry. The original ID is
// discarded so the store assigns a new one, and type/status pass through the
// same validation as any other input.
func entryFromItem(item BackupItem) *domain.Entry {
	return &domain.Entry{
		Date:        domain.ToISODate(item.Date),
		Account:     strings.TrimSpace(item.Account),
		Description: item.Description,
		Document:    item.Document,
		Type:        domain.ParseType(item.Type, item.Amount),
		Amount:      item.Amount,
		Status:      domain.ParseStatus(item.Status),
		Notes:       item.Notes,
	}
}

func itemFromEntry(e *domain.Entry) BackupItem {
	return BackupItem{
		ID:          e.ID,
		Date:        e.Date,
		Account:     e.Account,
		Description: e.Description,
		Document:    e.Document,
		Type:        string(e.Type),
		Amount:      e.Amount,
		Status:      string(e.Status),
		Notes:       e.Notes,
	}
}
