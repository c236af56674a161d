package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes used by the repositories.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	return isPgError(err, codeUniqueViolation, constraintName)
}

// IsForeignKeyError reports a foreign key violation on the named constraint.
// An empty constraint name matches any foreign key violation.
func IsForeignKeyError(err error, constraintName string) bool {
	return isPgError(err, codeForeignKeyViolation, constraintName)
}

// IsCheckConstraintError reports a CHECK violation on the named constraint.
func IsCheckConstraintError(err error, constraintName string) bool {
	return isPgError(err, codeCheckViolation, constraintName)
}

// IsNoRows reports whether err is pgx.ErrNoRows.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isPgError(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
