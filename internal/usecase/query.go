package usecase

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
)

// EntryFilter selects entries from a snapshot of the collection. Zero
// values mean "no constraint". The free-text query matches description,
// document and account case-insensitively; date bounds compare against the
// canonical ISO form, so entries with an empty date sort below any lower
// bound and are excluded by it.
type EntryFilter struct {
	Query     string
	Status    domain.EntryStatus
	Type      domain.EntryType
	Account   string
	DateFrom  string
	DateTo    string
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
}

// FilterEntries returns the subset of a snapshot matching the filter. The
// snapshot is an owned copy of the persisted collection; filtering never
// touches storage.
func FilterEntries(snapshot []*domain.Entry, f EntryFilter) []*domain.Entry {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*domain.Entry, 0, len(snapshot))
	for _, e := range snapshot {
		if query != "" {
			haystack := strings.ToLower(e.Description + " " + e.Document + " " + e.Account)
			if !strings.Contains(haystack, query) {
				continue
			}
		}

		if f.Status != "" && e.Status != f.Status {
			continue
		}

		if f.Type != "" && e.Type != f.Type {
			continue
		}

		if f.Account != "" && e.Account != f.Account {
			continue
		}

		if f.DateFrom != "" && e.Date < f.DateFrom {
			continue
		}

		if f.DateTo != "" && e.Date > f.DateTo {
			continue
		}

		if f.AmountMin != nil && e.Amount.LessThan(*f.AmountMin) {
			continue
		}

		if f.AmountMax != nil && e.Amount.GreaterThan(*f.AmountMax) {
			continue
		}

		out = append(out, e)
	}

	return out
}

// SortEntries orders entries in place by the given column. Amounts compare
// numerically, every other column as a string; unknown keys fall back to
// the date column. The sort is stable so equal keys keep store order.
func SortEntries(entries []*domain.Entry, key, dir string) {
	desc := dir == "desc"

	sort.SliceStable(entries, func(i, j int) bool {
		c := compareEntries(entries[i], entries[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareEntries(a, b *domain.Entry, key string) int {
	switch key {
	case "id":
		return strings.Compare(a.ID, b.ID)
	case "account":
		return strings.Compare(a.Account, b.Account)
	case "description":
		return strings.Compare(a.Description, b.Description)
	case "document":
		return strings.Compare(a.Document, b.Document)
	case "type":
		return strings.Compare(string(a.Type), string(b.Type))
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "notes":
		return strings.Compare(a.Notes, b.Notes)
	default:
		return strings.Compare(a.Date, b.Date)
	}
}

// PaginateEntries slices one page out of the filtered set, clamping the
// page number to the last page. It returns the page slice, the effective
// page number and the maximum page.
func PaginateEntries(entries []*domain.Entry, page, pageSize int) ([]*domain.Entry, int, int) {
	page, pageSize = domain.ValidatePagination(page, pageSize)

	maxPage := (len(entries) + pageSize - 1) / pageSize
	if maxPage < 1 {
		maxPage = 1
	}

	if page > maxPage {
		page = maxPage
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}

	return entries[start:end], page, maxPage
}
