package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/iho/concilia/internal/csvcodec"
	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/infrastructure/metrics"
)

// CSVFields are the entry columns an import mapping can bind, in canonical
// export order.
var CSVFields = []string{"date", "account", "description", "document", "type", "amount", "status", "notes"}

// ImportUseCase loads entries from CSV text and JSON backups.
type ImportUseCase struct {
	entryRepo EntryRepository
	metrics   *metrics.Metrics
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(entryRepo EntryRepository, m *metrics.Metrics) *ImportUseCase {
	return &ImportUseCase{
		entryRepo: entryRepo,
		metrics:   m,
	}
}

// ImportCSVInput carries raw CSV text plus the column mapping. Mapping binds
// entry field names to source header labels; when empty, headers are matched
// to field names case-insensitively.
type ImportCSVInput struct {
	Text      string
	Separator rune
	Mapping   map[string]string
}

// ImportCSV parses the text, maps columns per the input, and appends the
// resulting entries in one atomic batch. Returns how many entries were added.
func (uc *ImportUseCase) ImportCSV(ctx context.Context, input ImportCSVInput) (int, error) {
	sep := input.Separator
	if sep == 0 {
		sep = csvcodec.DefaultSeparator
	}

	rows := csvcodec.Parse(input.Text, sep)
	if len(rows) < 2 {
		return 0, domain.ErrEmptyCSV
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	columns := resolveMapping(headers, input.Mapping)

	now := time.Now().UTC()
	entries := make([]*domain.Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		value := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		entry := entryFromInput(EntryInput{
			Date:        value("date"),
			Account:     value("account"),
			Description: value("description"),
			Document:    value("document"),
			Type:        value("type"),
			Amount:      value("amount"),
			Status:      value("status"),
			Notes:       value("notes"),
		})
		entry.CreatedAt = now
		entry.UpdatedAt = now
		entries = append(entries, entry)
	}

	if err := uc.entryRepo.CreateMany(ctx, entries); err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesImported.WithLabelValues("csv").Add(float64(len(entries)))
	}

	return len(entries), nil
}

// resolveMapping turns a field-to-header mapping into field-to-column
// indexes. An explicit mapping matches header labels exactly; without one,
// headers auto-map onto same-named fields ignoring case. Unbound fields stay
// absent and import as empty values.
func resolveMapping(headers []string, mapping map[string]string) map[string]int {
	columns := make(map[string]int, len(CSVFields))

	if len(mapping) > 0 {
		for _, field := range CSVFields {
			label, ok := mapping[field]
			if !ok || label == "" {
				continue
			}
			for i, h := range headers {
				if h == label {
					columns[field] = i
					break
				}
			}
		}
		return columns
	}

	for _, field := range CSVFields {
		for i, h := range headers {
			if strings.EqualFold(h, field) {
				columns[field] = i
				break
			}
		}
	}

	return columns
}

// ImportJSON appends the entries of a backup payload to the collection.
// The payload may be a full backup envelope or a bare item array; stored IDs
// inside it are ignored so re-importing a backup never collides.
func (uc *ImportUseCase) ImportJSON(ctx context.Context, data []byte) (int, error) {
	items, err := decodeItems(data)
	if err != nil {
		return 0, err
	}

	n, err := uc.appendItems(ctx, items)
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesImported.WithLabelValues("json").Add(float64(n))
	}

	return n, nil
}

// Restore replaces the whole collection with the contents of a backup
// envelope. Unlike ImportJSON it requires the envelope form and wipes
// existing entries first.
func (uc *ImportUseCase) Restore(ctx context.Context, data []byte) (int, error) {
	var file BackupFile
	if err := json.Unmarshal(data, &file); err != nil || file.Items == nil {
		return 0, domain.ErrInvalidBackup
	}

	if err := uc.entryRepo.Clear(ctx); err != nil {
		return 0, err
	}

	n, err := uc.appendItems(ctx, file.Items)
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesImported.WithLabelValues("restore").Add(float64(n))
	}

	return n, nil
}

func (uc *ImportUseCase) appendItems(ctx context.Context, items []BackupItem) (int, error) {
	now := time.Now().UTC()
	entries := make([]*domain.Entry, 0, len(items))
	for _, item := range items {
		entry := entryFromItem(item)
		entry.CreatedAt = now
		entry.UpdatedAt = now
		entries = append(entries, entry)
	}

	if err := uc.entryRepo.CreateMany(ctx, entries); err != nil {
		return 0, err
	}

	return len(entries), nil
}

func decodeItems(data []byte) ([]BackupItem, error) {
	var file BackupFile
	if err := json.Unmarshal(data, &file); err == nil && file.Items != nil {
		return file.Items, nil
	}

	var items []BackupItem
	if err := json.Unmarshal(data, &items); err == nil && items != nil {
		return items, nil
	}

	return nil, domain.ErrInvalidBackup
}
