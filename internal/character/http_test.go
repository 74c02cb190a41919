// Copyright (c) 2026 Holocron. All rights reserved.

package character_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holocron/internal/character"
)

// newTestRouter wires a real service over the in-memory repository, the way
// the composition root mounts it.
func newTestRouter(repo *fakeRepository) http.Handler {
	handler := character.NewHandler(newTestService(repo))

	router := chi.NewRouter()
	router.Mount("/characters", handler.Routes())
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

/*
TestHTTP_ListCharacters covers the list endpoint: defaults, explicit paging,
and query validation failures.
*/
func TestHTTP_ListCharacters(t *testing.T) {
	t.Run("empty_collection", func(t *testing.T) {
		router := newTestRouter(&fakeRepository{})

		recorder := doRequest(t, router, http.MethodGet, "/characters", "")

		require.Equal(t, http.StatusOK, recorder.Code)

		var response character.ListResponse
		decodeBody(t, recorder, &response)
		assert.Equal(t, []character.Parameters{}, response.Characters)
		assert.Equal(t, 0, response.Metadata.Count)
		assert.Equal(t, 0, response.Metadata.Offset)
		assert.Equal(t, 50, response.Metadata.Limit)
	})

	t.Run("paged", func(t *testing.T) {
		repo := &fakeRepository{}
		router := newTestRouter(repo)

		for _, name := range []string{"Rey", "Finn", "Poe", "BB-8"} {
			recorder := doRequest(t, router, http.MethodPost, "/characters", `{"name":"`+name+`"}`)
			require.Equal(t, http.StatusNoContent, recorder.Code)
		}

		recorder := doRequest(t, router, http.MethodGet, "/characters?offset=1&limit=10", "")

		require.Equal(t, http.StatusOK, recorder.Code)

		var response character.ListResponse
		decodeBody(t, recorder, &response)
		require.Len(t, response.Characters, 3)
		assert.Equal(t, "Finn", response.Characters[0].Name)
		assert.Equal(t, 4, response.Metadata.Count)
		assert.Equal(t, 1, response.Metadata.Offset)
		assert.Equal(t, 10, response.Metadata.Limit)
	})

	t.Run("invalid_query", func(t *testing.T) {
		router := newTestRouter(&fakeRepository{})

		tests := []string{
			"/characters?offset=-1",
			"/characters?offset=101",
			"/characters?offset=oops",
			"/characters?limit=37",
			"/characters?limit=oops",
		}

		for _, target := range tests {
			recorder := doRequest(t, router, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
		}
	})
}

/*
TestHTTP_GetCharacter covers single lookup and its not-found mapping.
*/
func TestHTTP_GetCharacter(t *testing.T) {
	repo := &fakeRepository{}
	router := newTestRouter(repo)

	recorder := doRequest(t, router, http.MethodPost, "/characters",
		`{"name":"Yoda","episodes":["The Empire Strikes Back"],"planet":"Dagobah"}`)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	t.Run("found", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/characters/Yoda", "")

		require.Equal(t, http.StatusOK, recorder.Code)

		var params character.Parameters
		decodeBody(t, recorder, &params)
		assert.Equal(t, "Yoda", params.Name)
		assert.Equal(t, []string{"The Empire Strikes Back"}, params.Episodes)
		assert.Equal(t, "Dagobah", *params.Planet)
	})

	t.Run("not_found", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/characters/IDoNotExist", "")

		require.Equal(t, http.StatusNotFound, recorder.Code)

		var envelope map[string]any
		decodeBody(t, recorder, &envelope)
		assert.Equal(t, "NOT_FOUND", envelope["code"])
	})
}

/*
TestHTTP_CreateCharacter covers creation, body validation, and the conflict
mapping.
*/
func TestHTTP_CreateCharacter(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := newTestRouter(&fakeRepository{})

		recorder := doRequest(t, router, http.MethodPost, "/characters", `{"name":"Mace Windu"}`)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})

	t.Run("invalid_body", func(t *testing.T) {
		router := newTestRouter(&fakeRepository{})

		tests := []struct {
			name string
			body string
		}{
			{"missing_name", `{"episodes":[]}`},
			{"blank_name", `{"name":"   "}`},
			{"unknown_episode", `{"name":"name","episodes":["no such star wars movie"]}`},
			{"malformed_json", `{"name":`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				recorder := doRequest(t, router, http.MethodPost, "/characters", tt.body)

				require.Equal(t, http.StatusBadRequest, recorder.Code)

				var envelope map[string]any
				decodeBody(t, recorder, &envelope)
				assert.Equal(t, "VALIDATION_ERROR", envelope["code"])
			})
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		router := newTestRouter(&fakeRepository{})

		recorder := doRequest(t, router, http.MethodPost, "/characters", `{"name":"Grogu"}`)
		require.Equal(t, http.StatusNoContent, recorder.Code)

		recorder = doRequest(t, router, http.MethodPost, "/characters", `{"name":"Grogu"}`)

		require.Equal(t, http.StatusConflict, recorder.Code)

		var envelope map[string]any
		decodeBody(t, recorder, &envelope)
		assert.Equal(t, "CONFLICT", envelope["code"])
		assert.Equal(t, "Character with name Grogu already exists.", envelope["error"])
	})
}

/*
TestHTTP_UpdateCharacter covers partial updates, rename conflicts, and the
not-found mapping.
*/
func TestHTTP_UpdateCharacter(t *testing.T) {
	setup := func(t *testing.T) http.Handler {
		router := newTestRouter(&fakeRepository{})

		recorder := doRequest(t, router, http.MethodPost, "/characters",
			`{"name":"Ahsoka","episodes":["Revenge of the Sith"]}`)
		require.Equal(t, http.StatusNoContent, recorder.Code)
		return router
	}

	t.Run("partial_update", func(t *testing.T) {
		router := setup(t)

		recorder := doRequest(t, router, http.MethodPut, "/characters/Ahsoka", `{"planet":"Shili"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		var params character.Parameters
		decodeBody(t, recorder, &params)
		assert.Equal(t, "Ahsoka", params.Name)
		assert.Equal(t, []string{"Revenge of the Sith"}, params.Episodes)
		assert.Equal(t, "Shili", *params.Planet)
	})

	t.Run("rename", func(t *testing.T) {
		router := setup(t)

		recorder := doRequest(t, router, http.MethodPut, "/characters/Ahsoka", `{"name":"Fulcrum"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = doRequest(t, router, http.MethodGet, "/characters/Fulcrum", "")
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = doRequest(t, router, http.MethodGet, "/characters/Ahsoka", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("rename_conflict", func(t *testing.T) {
		router := setup(t)

		recorder := doRequest(t, router, http.MethodPost, "/characters", `{"name":"Sabine"}`)
		require.Equal(t, http.StatusNoContent, recorder.Code)

		recorder = doRequest(t, router, http.MethodPut, "/characters/Sabine", `{"name":"Ahsoka"}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		router := setup(t)

		recorder := doRequest(t, router, http.MethodPut, "/characters/IDoNotExist", `{"planet":"Hoth"}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("unknown_episode", func(t *testing.T) {
		router := setup(t)

		recorder := doRequest(t, router, http.MethodPut, "/characters/Ahsoka",
			`{"episodes":["no such star wars movie"]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/*
TestHTTP_DeleteCharacter verifies deletion returns 204 whether or not the
character exists.
*/
func TestHTTP_DeleteCharacter(t *testing.T) {
	repo := &fakeRepository{}
	router := newTestRouter(repo)

	recorder := doRequest(t, router, http.MethodPost, "/characters", `{"name":"Greedo"}`)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(t, router, http.MethodDelete, "/characters/Greedo", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	// Idempotent: the second delete observes nothing and still succeeds.
	recorder = doRequest(t, router, http.MethodDelete, "/characters/Greedo", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/characters/Greedo", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
