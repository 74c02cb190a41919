// Copyright (c) 2026 Holocron. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holocron/internal/platform/apperr"
	"holocron/pkg/pagination"
)

/*
TestFromRequest_Defaults verifies the defaults when no query params are sent.
*/
func TestFromRequest_Defaults(t *testing.T) {
	request := httptest.NewRequest("GET", "/characters", nil)

	params, err := pagination.FromRequest(request)

	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultOffset, params.Offset)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}

/*
TestFromRequest_Valid covers every accepted limit plus offset boundaries.
*/
func TestFromRequest_Valid(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		offset int
		limit  int
	}{
		{"explicit_values", "?offset=10&limit=25", 10, 25},
		{"offset_lower_bound", "?offset=0&limit=10", 0, 10},
		{"offset_upper_bound", "?offset=100&limit=100", 100, 100},
		{"limit_only", "?limit=50", 0, 50},
		{"offset_only", "?offset=3", 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/characters"+tt.query, nil)

			params, err := pagination.FromRequest(request)

			require.NoError(t, err)
			assert.Equal(t, tt.offset, params.Offset)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}

/*
TestFromRequest_Invalid verifies that out-of-range and malformed params are
rejected instead of clamped.
*/
func TestFromRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"offset_negative", "?offset=-1&limit=25"},
		{"offset_above_max", "?offset=101&limit=25"},
		{"offset_not_a_number", "?offset=not-a-number&limit=25"},
		{"limit_not_enumerated", "?offset=5&limit=37"},
		{"limit_not_a_number", "?offset=5&limit=not-a-number"},
		{"limit_zero", "?limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/characters"+tt.query, nil)

			_, err := pagination.FromRequest(request)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestNewMeta verifies the response metadata shape.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(20, 2, 8)

	assert.Equal(t, 20, meta.Count)
	assert.Equal(t, 2, meta.Offset)
	assert.Equal(t, 8, meta.Limit)
}
