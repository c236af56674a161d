package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintMatchers(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "event_participants_pkey"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "events_season_id_fkey"}
	check := &pgconn.PgError{Code: "23514", ConstraintName: "events_payment_cents_check"}

	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), "event_participants_pkey"))
	assert.False(t, IsDuplicateConstraintError(dup, "people_pkey"))
	assert.False(t, IsDuplicateConstraintError(fk, "event_participants_pkey"))

	assert.True(t, IsForeignKeyError(fk, ""))
	assert.True(t, IsForeignKeyError(fk, "events_season_id_fkey"))
	assert.False(t, IsForeignKeyError(dup, ""))

	assert.True(t, IsCheckConstraintError(check, "events_payment_cents_check"))
	assert.False(t, IsCheckConstraintError(errors.New("plain"), ""))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("boom")))
}
