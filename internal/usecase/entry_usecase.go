package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/infrastructure/metrics"
)

const dateLayout = "2006-01-02"

// EntryUseCase handles entry CRUD and snapshot queries.
type EntryUseCase struct {
	entryRepo EntryRepository
	metrics   *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository, m *metrics.Metrics) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		metrics:   m,
	}
}

// EntryInput carries raw field values for a new or edited entry. Values are
// cleaned the way the table editor cleans a row on save: text trimmed, date
// canonicalized, money parsed, type and status validated with their
// fallbacks.
type EntryInput struct {
	Date        string
	Account     string
	Description string
	Document    string
	Type        string
	Amount      string
	Status      string
	Notes       string
}

func entryFromInput(input EntryInput) *domain.Entry {
	amount := domain.ParseMoney(input.Amount)

	return &domain.Entry{
		Date:        domain.ToISODate(input.Date),
		Account:     strings.TrimSpace(input.Account),
		Description: strings.TrimSpace(input.Description),
		Document:    strings.TrimSpace(input.Document),
		Type:        domain.ParseType(input.Type, amount),
		Amount:      amount,
		Status:      domain.ParseStatus(input.Status),
		Notes:       strings.TrimSpace(input.Notes),
	}
}

// Create adds one entry; the store assigns its identity. A blank date
// defaults to today.
func (uc *EntryUseCase) Create(ctx context.Context, input EntryInput) (*domain.Entry, error) {
	entry := entryFromInput(input)
	if entry.Date == "" {
		entry.Date = time.Now().Format(dateLayout)
	}

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	created, err := uc.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return created, nil
}

// Get retrieves an entry by ID.
func (uc *EntryUseCase) Get(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// Update rewrites the entry fields under an existing identity.
func (uc *EntryUseCase) Update(ctx context.Context, id string, input EntryInput) (*domain.Entry, error) {
	existing, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := entryFromInput(input)
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Duplicate copies an entry; the store assigns the copy a fresh identity.
func (uc *EntryUseCase) Duplicate(ctx context.Context, id string) (*domain.Entry, error) {
	existing, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := existing.WithoutID()
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now

	created, err := uc.entryRepo.Create(ctx, clone)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return created, nil
}

// Delete removes an entry by ID.
func (uc *EntryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.entryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return nil
}

// Clear removes every entry.
func (uc *EntryUseCase) Clear(ctx context.Context) error {
	return uc.entryRepo.Clear(ctx)
}

// ListEntriesInput bundles filter, sort and pagination for a snapshot query.
type ListEntriesInput struct {
	Filter   EntryFilter
	SortKey  string
	SortDir  string
	Page     int
	PageSize int
}

// EntryPage is one page of the filtered, sorted working set.
type EntryPage struct {
	Entries  []*domain.Entry
	Total    int
	Filtered int
	Page     int
	PageSize int
	MaxPage  int
}

// List refreshes the working set from storage and runs the stateless
// filter/sort/paginate pipeline over it. Defaults: date descending,
// 25 per page.
func (uc *EntryUseCase) List(ctx context.Context, input ListEntriesInput) (*EntryPage, error) {
	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterEntries(snapshot, input.Filter)

	key := input.SortKey
	if key == "" {
		key = "date"
	}
	dir := input.SortDir
	if dir == "" {
		dir = "desc"
	}
	SortEntries(filtered, key, dir)

	_, pageSize := domain.ValidatePagination(input.Page, input.PageSize)
	pageEntries, page, maxPage := PaginateEntries(filtered, input.Page, pageSize)

	return &EntryPage{
		Entries:  pageEntries,
		Total:    len(snapshot),
		Filtered: len(filtered),
		Page:     page,
		PageSize: pageSize,
		MaxPage:  maxPage,
	}, nil
}

// Summary aggregates the filtered working set: total credits, total debits,
// their difference, and how much of the set is already reconciled.
type Summary struct {
	Credits       decimal.Decimal
	Debits        decimal.Decimal
	Balance       decimal.Decimal
	ReconciledPct int
	Total         int
	Filtered      int
}

// Summarize computes the Summary over the entries matching the filter.
func (uc *EntryUseCase) Summarize(ctx context.Context, filter EntryFilter) (*Summary, error) {
	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterEntries(snapshot, filter)

	summary := &Summary{
		Credits:  decimal.Zero,
		Debits:   decimal.Zero,
		Total:    len(snapshot),
		Filtered: len(filtered),
	}

	reconciled := 0
	for _, e := range filtered {
		switch e.Type {
		case domain.TypeCredit:
			summary.Credits = summary.Credits.Add(e.Amount)
		case domain.TypeDebit:
			summary.Debits = summary.Debits.Add(e.Amount)
		}

		if e.Status == domain.StatusReconciled {
			reconciled++
		}
	}

	summary.Balance = summary.Credits.Sub(summary.Debits)
	if len(filtered) > 0 {
		summary.ReconciledPct = int(math.Round(float64(reconciled) * 100 / float64(len(filtered))))
	}

	return summary, nil
}

// Accounts returns the distinct non-empty account labels, sorted.
func (uc *EntryUseCase) Accounts(ctx context.Context) ([]string, error) {
	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(snapshot))
	accounts := make([]string, 0, len(snapshot))
	for _, e := range snapshot {
		if e.Account == "" {
			continue
		}
		if _, ok := seen[e.Account]; ok {
			continue
		}
		seen[e.Account] = struct{}{}
		accounts = append(accounts, e.Account)
	}

	sort.Strings(accounts)

	return accounts, nil
}
