package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository on PostgreSQL.
type EntryRepository struct {
	pool    *pgxpool.Pool
	idGen   usecase.IDGenerator
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator, retrier *Retrier) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		idGen:   idGen,
		retrier: retrier,
	}
}

const insertEntrySQL = `
INSERT INTO entries (id, entry_date, account, description, document, entry_type, amount, status, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const selectEntryColumns = `id, entry_date, account, description, document, entry_type, amount, status, notes, created_at, updated_at`

// Create inserts an entry, assigning an ID when the caller left it empty,
// and returns the stored entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	stored := *entry
	if stored.ID == "" {
		stored.ID = r.idGen.Generate()
	}

	err := r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, insertEntrySQL,
			stored.ID,
			stored.Date,
			stored.Account,
			stored.Description,
			stored.Document,
			string(stored.Type),
			decimalToNumeric(stored.Amount),
			string(stored.Status),
			stored.Notes,
			timeToPgTimestamptz(stored.CreatedAt),
			timeToPgTimestamptz(stored.UpdatedAt),
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// CreateMany inserts a batch of entries in one transaction, assigning IDs as
// needed. Either every entry lands or none does.
func (r *EntryRepository) CreateMany(ctx context.Context, entries []*domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	return r.retrier.Retry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		batch := &pgx.Batch{}
		for _, entry := range entries {
			if entry.ID == "" {
				entry.ID = r.idGen.Generate()
			}
			batch.Queue(insertEntrySQL,
				entry.ID,
				entry.Date,
				entry.Account,
				entry.Description,
				entry.Document,
				string(entry.Type),
				decimalToNumeric(entry.Amount),
				string(entry.Status),
				entry.Notes,
				timeToPgTimestamptz(entry.CreatedAt),
				timeToPgTimestamptz(entry.UpdatedAt),
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range entries {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return err
			}
		}
		if err := results.Close(); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectEntryColumns+` FROM entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// GetAll retrieves every entry in creation order.
func (r *EntryRepository) GetAll(ctx context.Context) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectEntryColumns+` FROM entries ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

const updateEntrySQL = `
UPDATE entries
SET entry_date = $2, account = $3, description = $4, document = $5, entry_type = $6, amount = $7, status = $8, notes = $9, updated_at = $10
WHERE id = $1`

// Update rewrites an entry's fields.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, updateEntrySQL,
			entry.ID,
			entry.Date,
			entry.Account,
			entry.Description,
			entry.Document,
			string(entry.Type),
			decimalToNumeric(entry.Amount),
			string(entry.Status),
			entry.Notes,
			timeToPgTimestamptz(entry.UpdatedAt),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEntryNotFound
		}
		return nil
	})
}

// UpdateTx rewrites an entry's fields inside an open transaction.
func (r *EntryRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateEntrySQL,
		entry.ID,
		entry.Date,
		entry.Account,
		entry.Description,
		entry.Document,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		string(entry.Status),
		entry.Notes,
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry by ID.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEntryNotFound
		}
		return nil
	})
}

// Clear removes every entry.
func (r *EntryRepository) Clear(ctx context.Context) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM entries`)
		return err
	})
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		entryType string
		status    string
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.Date,
		&entry.Account,
		&entry.Description,
		&entry.Document,
		&entryType,
		&amount,
		&status,
		&entry.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Status = domain.EntryStatus(status)
	entry.Amount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
