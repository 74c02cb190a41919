// Copyright (c) 2026 Holocron. All rights reserved.

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holocron/internal/platform/apperr"
	"holocron/internal/platform/dberr"
)

/*
TestWrap verifies the mapping from driver errors to application errors.
*/
func TestWrap(t *testing.T) {
	t.Run("nil_passthrough", func(t *testing.T) {
		assert.Nil(t, dberr.Wrap(nil, "noop"))
	})

	t.Run("no_rows_becomes_not_found", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "get_character")

		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})

	t.Run("unique_violation_becomes_conflict", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "characters_name_key"}

		err := dberr.Wrap(pgErr, "insert_character")

		assert.ErrorIs(t, err, dberr.ErrDuplicate)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("unknown_error_becomes_internal", func(t *testing.T) {
		cause := errors.New("connection reset by peer")

		err := dberr.Wrap(cause, "list_characters")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INTERNAL_ERROR", ae.Code)
		// The raw cause is preserved for logging but hidden from clients.
		assert.ErrorIs(t, err, cause)
		assert.NotContains(t, ae.Message, "connection reset")
	})
}

/*
TestIsDuplicate verifies detection of wrapped and raw constraint violations.
*/
func TestIsDuplicate(t *testing.T) {
	assert.True(t, dberr.IsDuplicate(dberr.ErrDuplicate))
	assert.True(t, dberr.IsDuplicate(&pgconn.PgError{Code: "23505"}))
	assert.False(t, dberr.IsDuplicate(pgx.ErrNoRows))
	assert.False(t, dberr.IsDuplicate(nil))
}
