package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/infrastructure/metrics"
)

// NormalizeOptions toggles the individual cleanup steps of a pass.
type NormalizeOptions struct {
	Trim          bool
	UppercaseType bool
	MapStatus     bool
	FixDates      bool
}

// NormalizeUseCase runs bulk cleanup passes over the collection.
type NormalizeUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	metrics   *metrics.Metrics
}

// NewNormalizeUseCase creates a new NormalizeUseCase.
func NewNormalizeUseCase(txManager TransactionManager, entryRepo EntryRepository, m *metrics.Metrics) *NormalizeUseCase {
	return &NormalizeUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		metrics:   m,
	}
}

// Run applies the selected cleanup steps to every entry and writes back the
// ones that changed, all inside one transaction. Returns how many entries
// were rewritten. Running the same pass twice changes nothing the second
// time.
func (uc *NormalizeUseCase) Run(ctx context.Context, opts NormalizeOptions) (int, error) {
	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load entries: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.NormalizeRuns.Inc()
	}

	changed := make([]*domain.Entry, 0)
	for _, e := range snapshot {
		next := normalizeEntry(*e, opts)
		if !sameEntry(*e, next) {
			next.UpdatedAt = time.Now().UTC()
			changed = append(changed, &next)
		}
	}

	if len(changed) == 0 {
		return 0, nil
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(txCtx)

	for _, e := range changed {
		if err := uc.entryRepo.UpdateTx(txCtx, tx, e); err != nil {
			return 0, fmt.Errorf("update entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.NormalizeChanged.Add(float64(len(changed)))
	}

	return len(changed), nil
}

func normalizeEntry(e domain.Entry, opts NormalizeOptions) domain.Entry {
	if opts.Trim {
		e.Account = strings.TrimSpace(e.Account)
		e.Description = strings.TrimSpace(e.Description)
		e.Document = strings.TrimSpace(e.Document)
		e.Notes = strings.TrimSpace(e.Notes)
		e.Type = domain.EntryType(strings.TrimSpace(string(e.Type)))
		e.Status = domain.EntryStatus(strings.TrimSpace(string(e.Status)))
	}

	if opts.UppercaseType {
		e.Type = domain.ParseType(string(e.Type), e.Amount)
	}

	if opts.MapStatus {
		e.Status = domain.MapStatus(string(e.Status))
	}

	if opts.FixDates {
		e.Date = domain.ToISODate(e.Date)
	}

	return e
}

// sameEntry compares the user-visible fields, ignoring timestamps.
func sameEntry(a, b domain.Entry) bool {
	return a.Date == b.Date &&
		a.Account == b.Account &&
		a.Description == b.Description &&
		a.Document == b.Document &&
		a.Type == b.Type &&
		a.Amount.Equal(b.Amount) &&
		a.Status == b.Status &&
		a.Notes == b.Notes
}
