// Package repository provides data access for the application's entities.
// Lookups that find nothing return (nil, nil); store failures are returned
// wrapped.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate reports a unique constraint violation.
var ErrDuplicate = errors.New("duplicate record")

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite, used in tests, has no typed error through gorm.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
