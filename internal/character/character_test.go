// Copyright (c) 2026 Holocron. All rights reserved.

package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holocron/internal/character"
)

func strPtr(s string) *string { return &s }

/*
TestNewCharacter_Defaults verifies the factory defaults when optional fields
are not supplied.
*/
func TestNewCharacter_Defaults(t *testing.T) {
	c := character.NewCharacter(character.Parameters{Name: "Luke Skywalker"})

	params := c.Parameters()
	assert.Equal(t, "Luke Skywalker", params.Name)
	assert.Equal(t, []string{}, params.Episodes)
	assert.Nil(t, params.Planet)
}

/*
TestNewCharacter_FullParameters verifies that supplied fields pass through.
*/
func TestNewCharacter_FullParameters(t *testing.T) {
	c := character.NewCharacter(character.Parameters{
		Name:     "Han Solo",
		Episodes: []string{"A New Hope", "The Empire Strikes Back"},
		Planet:   strPtr("Corellia"),
	})

	assert.Equal(t, "Han Solo", c.Name())

	params := c.Parameters()
	assert.Equal(t, []string{"A New Hope", "The Empire Strikes Back"}, params.Episodes)
	assert.Equal(t, "Corellia", *params.Planet)
}

/*
TestUpdateParameters covers the partial-update semantics: supplied non-empty
values overwrite, everything else is left untouched.
*/
func TestUpdateParameters(t *testing.T) {
	base := character.Parameters{
		Name:     "Anakin Skywalker",
		Episodes: []string{"Attack of the Clones"},
		Planet:   strPtr("Tatooine"),
	}

	tests := []struct {
		name    string
		partial character.Parameters
		want    character.Parameters
	}{
		{
			name:    "all_fields",
			partial: character.Parameters{Name: "Darth Vader", Episodes: []string{"Return of the Jedi"}, Planet: strPtr("Mustafar")},
			want:    character.Parameters{Name: "Darth Vader", Episodes: []string{"Return of the Jedi"}, Planet: strPtr("Mustafar")},
		},
		{
			name:    "name_only",
			partial: character.Parameters{Name: "Darth Vader"},
			want:    character.Parameters{Name: "Darth Vader", Episodes: []string{"Attack of the Clones"}, Planet: strPtr("Tatooine")},
		},
		{
			name:    "episodes_only",
			partial: character.Parameters{Episodes: []string{"Revenge of the Sith"}},
			want:    character.Parameters{Name: "Anakin Skywalker", Episodes: []string{"Revenge of the Sith"}, Planet: strPtr("Tatooine")},
		},
		{
			name:    "empty_values_are_no_change",
			partial: character.Parameters{Name: "", Episodes: []string{}, Planet: nil},
			want:    base,
		},
		{
			name:    "empty_planet_string_is_no_change",
			partial: character.Parameters{Planet: strPtr("")},
			want:    base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := character.NewCharacter(base)
			c.UpdateParameters(tt.partial)

			assert.Equal(t, tt.want, c.Parameters())
		})
	}
}

/*
TestIsKnownEpisode checks enum membership for valid and bogus tags.
*/
func TestIsKnownEpisode(t *testing.T) {
	assert.True(t, character.IsKnownEpisode("The Empire Strikes Back"))
	assert.True(t, character.IsKnownEpisode("The Rise of Skywalker"))
	assert.False(t, character.IsKnownEpisode("no such star wars movie"))
	assert.False(t, character.IsKnownEpisode(""))
}
