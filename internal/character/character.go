// Copyright (c) 2026 Holocron. All rights reserved.

// Package character implements the character catalogue: the entity and its
// mutation rules, the use-case service, and the HTTP/storage boundaries.
package character

import "slices"

// Episodes is the closed set of episode tags a character may appear in.
//
// Tags are the film titles. Input containing any other value is rejected at
// the transport boundary; the entity itself performs no validation.
var Episodes = []string{
	"The Phantom Menace",
	"Attack of the Clones",
	"Revenge of the Sith",
	"A New Hope",
	"The Empire Strikes Back",
	"Return of the Jedi",
	"The Force Awakens",
	"The Last Jedi",
	"The Rise of Skywalker",
}

// IsKnownEpisode reports whether value is one of the enumerated [Episodes].
func IsKnownEpisode(value string) bool {
	return slices.Contains(Episodes, value)
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldEpisodes = "episodes"
	FieldPlanet   = "planet"
)

// Parameters is the full external state of a character.
//
// It doubles as the partial-update payload: zero values (empty name, empty
// episodes, nil planet) mean "leave unchanged" when passed to
// [Character.UpdateParameters].
type Parameters struct {
	Name     string   `json:"name"`
	Episodes []string `json:"episodes"`
	Planet   *string  `json:"planet"`
}

// Character is the in-memory character record.
//
// # Ownership
//
// A Character is reconstructed from storage for the duration of a single
// request and never shared across requests.
type Character struct {
	name     string
	episodes []string
	planet   *string
}

// NewCharacter builds a Character from creation parameters, applying
// defaults: episodes to an empty list and planet to null when not supplied.
//
// Pure factory — no validation, no I/O.
func NewCharacter(params Parameters) *Character {
	episodes := params.Episodes
	if episodes == nil {
		episodes = []string{}
	}

	return &Character{
		name:     params.Name,
		episodes: episodes,
		planet:   params.Planet,
	}
}

// Name returns the character's current name.
func (c *Character) Name() string {
	return c.name
}

// Parameters returns the full current state with every field populated
// (episodes is never nil).
func (c *Character) Parameters() Parameters {
	episodes := c.episodes
	if episodes == nil {
		episodes = []string{}
	}

	return Parameters{
		Name:     c.name,
		Episodes: episodes,
		Planet:   c.planet,
	}
}

// UpdateParameters overwrites each attribute for which the partial payload
// carries a non-empty value. Absent, empty, and null fields are left
// untouched.
//
// Consequence: a caller cannot clear episodes to [] or planet to null
// through an update — an empty value is indistinguishable from omission.
// Kept deliberately; see the repository design notes.
func (c *Character) UpdateParameters(partial Parameters) {
	if partial.Name != "" {
		c.name = partial.Name
	}

	if len(partial.Episodes) > 0 {
		c.episodes = partial.Episodes
	}

	if partial.Planet != nil && *partial.Planet != "" {
		c.planet = partial.Planet
	}
}
