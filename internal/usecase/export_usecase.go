package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iho/concilia/internal/csvcodec"
)

// ExportUseCase renders the collection as CSV text and JSON backups.
type ExportUseCase struct {
	entryRepo EntryRepository
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(entryRepo EntryRepository) *ExportUseCase {
	return &ExportUseCase{entryRepo: entryRepo}
}

// ExportCSVInput selects and orders the entries to export. The zero value
// exports everything in the default order.
type ExportCSVInput struct {
	Filter    EntryFilter
	SortKey   string
	SortDir   string
	Separator rune
}

// ExportCSV renders the matching entries as CSV text with a header row.
// Amounts are written with two decimal places.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, input ExportCSVInput) (string, error) {
	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	entries := FilterEntries(snapshot, input.Filter)

	key := input.SortKey
	if key == "" {
		key = "date"
	}
	dir := input.SortDir
	if dir == "" {
		dir = "desc"
	}
	SortEntries(entries, key, dir)

	sep := input.Separator
	if sep == 0 {
		sep = csvcodec.DefaultSeparator
	}

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, CSVFields)
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date,
			e.Account,
			e.Description,
			e.Document,
			string(e.Type),
			e.Amount.StringFixed(2),
			string(e.Status),
			e.Notes,
		})
	}

	return csvcodec.Write(rows, sep), nil
}

// Template returns a small sample CSV showing the expected columns.
func (uc *ExportUseCase) Template() string {
	rows := [][]string{
		CSVFields,
		{"2025-01-05", "Conta Corrente 001", "Recebimento Cliente A", "NF-123", "CREDIT", "1500.00", "PENDING", ""},
		{"2025-01-05", "Conta Corrente 001", "Pagamento Fornecedor Z", "BOL-998", "DEBIT", "-750.00", "PENDING", ""},
		{"2025-01-06", "Conta Poupança", "Juros Mensais", "", "CREDIT", "12.35", "RECONCILED", "Automático"},
	}

	return csvcodec.Write(rows, csvcodec.DefaultSeparator)
}

// Backup serializes the full collection into the backup envelope.
func (uc *ExportUseCase) Backup(ctx context.Context) ([]byte, error) {
	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	file := BackupFile{
		ExportedAt: time.Now().UTC(),
		Items:      make([]BackupItem, 0, len(snapshot)),
	}
	for _, e := range snapshot {
		file.Items = append(file.Items, itemFromEntry(e))
	}

	return json.MarshalIndent(file, "", "  ")
}
