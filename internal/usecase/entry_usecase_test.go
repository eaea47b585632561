package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/usecase"
	"github.com/iho/concilia/internal/usecase/mocks"
)

func TestEntryUseCase_Create(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	entry, err := uc.Create(context.Background(), usecase.EntryInput{
		Date:        "25/12/2020",
		Account:     "  Conta Corrente 001  ",
		Description: "Recebimento Cliente A",
		Amount:      "1.234,56",
		Type:        "credit",
		Status:      "whatever",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected store-assigned id")
	}
	if entry.Date != "2020-12-25" {
		t.Errorf("expected canonical date, got %q", entry.Date)
	}
	if entry.Account != "Conta Corrente 001" {
		t.Errorf("expected trimmed account, got %q", entry.Account)
	}
	if !entry.Amount.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("expected amount 1234.56, got %s", entry.Amount)
	}
	if entry.Type != domain.TypeCredit {
		t.Errorf("expected CREDIT, got %s", entry.Type)
	}
	if entry.Status != domain.StatusPending {
		t.Errorf("expected PENDING fallback, got %s", entry.Status)
	}
}

func TestEntryUseCase_CreateDefaultsDate(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	entry, err := uc.Create(context.Background(), usecase.EntryInput{
		Account: "Conta",
		Amount:  "-50",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Date == "" {
		t.Error("expected date to default to today")
	}
	if entry.Type != domain.TypeDebit {
		t.Errorf("expected negative amount to infer DEBIT, got %s", entry.Type)
	}
}

func TestEntryUseCase_Update(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	created, err := uc.Create(context.Background(), usecase.EntryInput{
		Date:    "2025-01-05",
		Account: "Conta",
		Amount:  "100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := uc.Update(context.Background(), created.ID, usecase.EntryInput{
		Date:    "2025-01-06",
		Account: "Conta",
		Amount:  "200",
		Status:  "RECONCILED",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("expected identity preserved, got %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("expected CreatedAt preserved")
	}
	if updated.Status != domain.StatusReconciled {
		t.Errorf("expected RECONCILED, got %s", updated.Status)
	}

	stored, err := uc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected stored amount 200, got %s", stored.Amount)
	}
}

func TestEntryUseCase_UpdateNotFound(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	_, err := uc.Update(context.Background(), "missing", usecase.EntryInput{})
	if err != domain.ErrEntryNotFound {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryUseCase_Duplicate(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	original, err := uc.Create(context.Background(), usecase.EntryInput{
		Date:    "2025-01-05",
		Account: "Conta",
		Amount:  "100",
		Notes:   "original",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clone, err := uc.Duplicate(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if clone.ID == original.ID || clone.ID == "" {
		t.Errorf("expected fresh identity, got %q", clone.ID)
	}
	if clone.Notes != "original" || clone.Account != "Conta" {
		t.Error("expected field values copied")
	}
	if entryRepo.Len() != 2 {
		t.Errorf("expected 2 stored entries, got %d", entryRepo.Len())
	}
}

func TestEntryUseCase_Delete(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	created, err := uc.Create(context.Background(), usecase.EntryInput{Account: "Conta", Amount: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.Delete(context.Background(), created.ID); err != domain.ErrEntryNotFound {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func seedEntries(t *testing.T, uc *usecase.EntryUseCase) {
	t.Helper()

	inputs := []usecase.EntryInput{
		{Date: "2025-01-05", Account: "Conta A", Description: "Recebimento Cliente", Amount: "100", Type: "CREDIT", Status: "PENDING"},
		{Date: "2025-01-06", Account: "Conta A", Description: "Pagamento Fornecedor", Amount: "-40", Type: "DEBIT", Status: "RECONCILED"},
		{Date: "2025-01-07", Account: "Conta B", Description: "Juros", Amount: "10", Type: "CREDIT", Status: "PENDING"},
	}
	for _, in := range inputs {
		if _, err := uc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestEntryUseCase_ListDefaults(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)
	seedEntries(t, uc)

	page, err := uc.List(context.Background(), usecase.ListEntriesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Total != 3 || page.Filtered != 3 {
		t.Errorf("expected 3 total and filtered, got %d/%d", page.Total, page.Filtered)
	}
	if page.Page != 1 || page.PageSize != domain.DefaultPageSize || page.MaxPage != 1 {
		t.Errorf("unexpected pagination: page=%d size=%d max=%d", page.Page, page.PageSize, page.MaxPage)
	}
	if page.Entries[0].Date != "2025-01-07" {
		t.Errorf("expected date desc default, first date %q", page.Entries[0].Date)
	}
}

func TestEntryUseCase_ListFiltered(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)
	seedEntries(t, uc)

	page, err := uc.List(context.Background(), usecase.ListEntriesInput{
		Filter:  usecase.EntryFilter{Query: "cliente"},
		SortKey: "amount",
		SortDir: "asc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Filtered != 1 {
		t.Fatalf("expected 1 filtered, got %d", page.Filtered)
	}
	if page.Entries[0].Description != "Recebimento Cliente" {
		t.Errorf("unexpected entry %q", page.Entries[0].Description)
	}
	if page.Total != 3 {
		t.Errorf("expected total unchanged, got %d", page.Total)
	}
}

func TestEntryUseCase_ListClampsPage(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)
	seedEntries(t, uc)

	page, err := uc.List(context.Background(), usecase.ListEntriesInput{Page: 99, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Page != 2 || page.MaxPage != 2 {
		t.Errorf("expected page clamped to 2, got page=%d max=%d", page.Page, page.MaxPage)
	}
	if len(page.Entries) != 1 {
		t.Errorf("expected 1 entry on last page, got %d", len(page.Entries))
	}
}

func TestEntryUseCase_Summarize(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)
	seedEntries(t, uc)

	summary, err := uc.Summarize(context.Background(), usecase.EntryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Credits.Equal(decimal.NewFromInt(110)) {
		t.Errorf("expected credits 110, got %s", summary.Credits)
	}
	if !summary.Debits.Equal(decimal.NewFromInt(-40)) {
		t.Errorf("expected debits -40, got %s", summary.Debits)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected balance 150, got %s", summary.Balance)
	}
	if summary.ReconciledPct != 33 {
		t.Errorf("expected 33%% reconciled, got %d", summary.ReconciledPct)
	}
}

func TestEntryUseCase_SummarizeEmpty(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)

	summary, err := uc.Summarize(context.Background(), usecase.EntryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ReconciledPct != 0 || summary.Filtered != 0 {
		t.Errorf("expected zero summary, got pct=%d filtered=%d", summary.ReconciledPct, summary.Filtered)
	}
}

func TestEntryUseCase_Accounts(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, nil)
	seedEntries(t, uc)

	if _, err := uc.Create(context.Background(), usecase.EntryInput{Amount: "5"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	accounts, err := uc.Accounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Conta A", "Conta B"}
	if len(accounts) != len(want) {
		t.Fatalf("expected %d accounts, got %v", len(want), accounts)
	}
	for i := range want {
		if accounts[i] != want[i] {
			t.Errorf("expected %q at %d, got %q", want[i], i, accounts[i])
		}
	}
}
