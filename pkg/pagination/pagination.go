// Copyright (c) 2026 Holocron. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset-based navigation is requested via query
// parameters and how the resulting metadata is delivered in API responses.
package pagination

import (
	"net/http"
	"strconv"

	"holocron/internal/platform/validate"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 50
	// DefaultOffset is the number of items skipped if not specified.
	DefaultOffset = 0
	// MaxOffset is the upper bound for the offset parameter.
	MaxOffset = 100
)

// AllowedLimits is the closed set of accepted page sizes.
var AllowedLimits = []int{10, 25, 50, 100}

// Params holds the parsed offset and limit from a request's query string.
type Params struct {
	Offset int
	Limit  int
}

// Meta is the pagination metadata included in API list responses.
//
// Count is the total number of records in the collection, not the page size.
type Meta struct {
	Count  int `json:"count"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(count, offset, limit int) Meta {
	return Meta{
		Count:  count,
		Offset: offset,
		Limit:  limit,
	}
}

// FromRequest parses and validates "offset" and "limit" query parameters.
//
// # Contract
//
// Offset must be an integer in [0, MaxOffset] and limit must be one of
// [AllowedLimits]. Out-of-range, non-numeric, or otherwise malformed values
// are rejected with a VALIDATION_ERROR — they are never clamped, so invalid
// requests fail loudly instead of silently returning a different page.
func FromRequest(r *http.Request) (Params, error) {
	v := &validate.Validator{}

	offset, ok := parseIntParam(r, "offset", DefaultOffset)
	if !ok {
		v.Custom("offset", true, "Must be an integer")
	} else {
		v.Range("offset", offset, 0, MaxOffset)
	}

	limit, ok := parseIntParam(r, "limit", DefaultLimit)
	if !ok {
		v.Custom("limit", true, "Must be an integer")
	} else {
		v.OneOfInt("limit", limit, AllowedLimits...)
	}

	if err := v.Err(); err != nil {
		return Params{}, err
	}

	return Params{Offset: offset, Limit: limit}, nil
}

// parseIntParam parses a single integer query parameter with a fallback
// default. The second return value is false when the raw value is present
// but not an integer.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
