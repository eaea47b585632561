package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")

	// Import/restore validation errors
	ErrInvalidBackup = errors.New("backup file has no items collection")
	ErrEmptyCSV      = errors.New("csv input has no rows")
)
