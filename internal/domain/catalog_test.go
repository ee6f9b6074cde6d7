package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGames = []GameRecord{
	{Title: "FURIOSA: A Mad-Max Saga (UNRELEASED)", Description: "Vehicular combat in the Wasteland."},
	{Title: "JOHN WICK (coming soon...)", Description: "Tactical gun-fu action."},
	{Title: "Nebula Drift", Description: "Sci-fi racing through asteroid fields."},
}

func gameTitles(games []GameRecord) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty term returns everything in order", "", gameTitles(testGames)},
		{"whitespace only is empty", "   ", gameTitles(testGames)},
		{"title match is case insensitive", "wick", []string{"JOHN WICK (coming soon...)"}},
		{"upper case term", "NEBULA", []string{"Nebula Drift"}},
		{"description match", "wasteland", []string{"FURIOSA: A Mad-Max Saga (UNRELEASED)"}},
		{"term is trimmed", "  drift ", []string{"Nebula Drift"}},
		{"several matches keep storage order", "a", []string{
			"FURIOSA: A Mad-Max Saga (UNRELEASED)",
			"JOHN WICK (coming soon...)",
			"Nebula Drift",
		}},
		{"no match", "zelda", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testGames, tt.search)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, gameTitles(got))
		})
	}
}

func TestFilter_SoundAndComplete(t *testing.T) {
	for _, term := range []string{"a", "wick", "SCI", "the", "x"} {
		got := Filter(testGames, term)
		normalized := NormalizeSearch(term)

		matched := make(map[string]bool)
		for _, g := range got {
			assert.True(t, Matches(g, normalized), "%q returned non-matching %q", term, g.Title)
			matched[g.Title] = true
		}
		for _, g := range testGames {
			if Matches(g, normalized) {
				assert.True(t, matched[g.Title], "%q dropped matching %q", term, g.Title)
			}
		}
	}
}

func TestTechnologyRecord(t *testing.T) {
	named := TechnologyRecord{Title: "Old Title", Name: "Xylex Engine", Description: "Engine", Icon: "fas fa-cogs"}
	assert.Equal(t, "Xylex Engine", named.DisplayTitle())
	assert.Equal(t, "xylex-engine", named.Slug())
	assert.Equal(t, TechnologyTypeIcon, named.RenderType())

	titled := TechnologyRecord{Title: "VR Studio", Icon: "/images/vr.png", Type: TechnologyTypeImage}
	assert.Equal(t, "VR Studio", titled.DisplayTitle())
	assert.Equal(t, TechnologyTypeImage, titled.RenderType())

	// search looks at the name for technology records
	got := Filter([]TechnologyRecord{named, titled}, "xylex")
	assert.Len(t, got, 1)
}

func TestGameRecord_LinkOrPlaceholder(t *testing.T) {
	assert.Equal(t, PlaceholderLink, GameRecord{Title: "A"}.LinkOrPlaceholder())
	assert.Equal(t, "https://x.test", GameRecord{Title: "A", Link: "https://x.test"}.LinkOrPlaceholder())
	assert.False(t, GameRecord{}.HasPreview())
	assert.True(t, GameRecord{YouTube: "https://youtu.be/abc"}.HasPreview())
}

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection("games")
	require.NoError(t, err)
	assert.Equal(t, CollectionGames, c)

	_, err = ParseCollection("players")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("Email is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Email is required", err.Error())
}
