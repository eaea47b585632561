package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a storage transaction
	// This prevents a bulk pass from holding locks indefinitely
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
