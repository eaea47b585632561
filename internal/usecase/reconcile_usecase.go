package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/infrastructure/metrics"
)

// ReconcileUseCase pairs credits against debits of the same magnitude.
type ReconcileUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	metrics   *metrics.Metrics
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(txManager TransactionManager, entryRepo EntryRepository, m *metrics.Metrics) *ReconcileUseCase {
	return &ReconcileUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		metrics:   m,
	}
}

// MatchPair records one credit/debit pairing produced by a matcher run.
type MatchPair struct {
	Account  string
	Amount   string
	CreditID string
	DebitID  string
}

// MatchResult is the outcome of one matcher run.
type MatchResult struct {
	Marked int
	Pairs  []MatchPair
}

type matchGroup struct {
	account string
	amount  string
	credits []*domain.Entry
	debits  []*domain.Entry
}

// Suggest groups unreconciled entries by account and absolute amount, pairs
// the i-th credit with the i-th debit of each group, and marks both sides
// reconciled inside one transaction. Leftover entries on the longer side
// keep their status. The pass is idempotent: marked entries are skipped on
// the next run.
func (uc *ReconcileUseCase) Suggest(ctx context.Context) (*MatchResult, error) {
	start := time.Now()

	snapshot, err := uc.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.MatcherRuns.Inc()
	}

	groups := make(map[string]*matchGroup)
	order := make([]string, 0)
	for _, e := range snapshot {
		if e.Status == domain.StatusReconciled {
			continue
		}

		key := e.GroupKey()
		g, ok := groups[key]
		if !ok {
			g = &matchGroup{
				account: e.Account,
				amount:  e.Amount.Abs().StringFixed(2),
			}
			groups[key] = g
			order = append(order, key)
		}

		if e.Type == domain.TypeCredit {
			g.credits = append(g.credits, e)
		} else {
			g.debits = append(g.debits, e)
		}
	}

	result := &MatchResult{Pairs: make([]MatchPair, 0)}
	marked := make([]*domain.Entry, 0)
	now := time.Now().UTC()

	for _, key := range order {
		g := groups[key]
		n := len(g.credits)
		if len(g.debits) < n {
			n = len(g.debits)
		}

		for i := 0; i < n; i++ {
			credit := g.credits[i]
			debit := g.debits[i]

			credit.Status = domain.StatusReconciled
			credit.UpdatedAt = now
			debit.Status = domain.StatusReconciled
			debit.UpdatedAt = now

			marked = append(marked, credit, debit)
			result.Pairs = append(result.Pairs, MatchPair{
				Account:  g.account,
				Amount:   g.amount,
				CreditID: credit.ID,
				DebitID:  debit.ID,
			})
			result.Marked += 2
		}
	}

	if len(marked) > 0 {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return nil, fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(txCtx)

		for _, e := range marked {
			if err := uc.entryRepo.UpdateTx(txCtx, tx, e); err != nil {
				return nil, fmt.Errorf("update entry %s: %w", e.ID, err)
			}
		}

		if err := tx.Commit(txCtx); err != nil {
			return nil, fmt.Errorf("commit transaction: %w", err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.MatcherMarked.Add(float64(result.Marked))
		uc.metrics.MatcherDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}
