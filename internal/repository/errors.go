package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a referenced entity doesn't exist
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrSchemaMigration is returned when the schema cannot be brought up to date
	ErrSchemaMigration = errors.New("schema migration failed")
)
