package domain

import (
	"fmt"
	"strings"
)

type Collection string

const (
	CollectionGames      Collection = "games"
	CollectionTechnology Collection = "technology"
)

func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case CollectionGames, CollectionTechnology:
		return c, nil
	}
	return "", fmt.Errorf("unknown collection %q: %w", s, ErrNotFound)
}

// Collections lists every catalog collection in display order.
func Collections() []Collection {
	return []Collection{CollectionGames, CollectionTechnology}
}

// Record is a catalog entry that can be searched and addressed by slug.
type Record interface {
	DisplayTitle() string
	Summary() string
	Slug() string
}

// PlaceholderLink is rendered for games without an external link.
const PlaceholderLink = "#"

type GameRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link,omitempty"`
	YouTube     string `json:"youtube,omitempty"`
}

func (g GameRecord) DisplayTitle() string { return g.Title }
func (g GameRecord) Summary() string      { return g.Description }
func (g GameRecord) Slug() string         { return Slugify(g.Title) }

func (g GameRecord) LinkOrPlaceholder() string {
	if g.Link == "" {
		return PlaceholderLink
	}
	return g.Link
}

func (g GameRecord) HasPreview() bool {
	return g.YouTube != ""
}

type TechnologyType string

const (
	TechnologyTypeIcon  TechnologyType = "icon"
	TechnologyTypeImage TechnologyType = "image"
)

type TechnologyRecord struct {
	Title       string         `json:"title,omitempty"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Type        TechnologyType `json:"type,omitempty"`
}

// DisplayTitle prefers name over title; stored records use either.
func (t TechnologyRecord) DisplayTitle() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Title
}

func (t TechnologyRecord) Summary() string { return t.Description }
func (t TechnologyRecord) Slug() string    { return Slugify(t.DisplayTitle()) }

func (t TechnologyRecord) RenderType() TechnologyType {
	if t.Type == "" {
		return TechnologyTypeIcon
	}
	return t.Type
}

// NormalizeSearch trims and lowercases a search term.
func NormalizeSearch(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Matches reports whether the normalized term is a substring of the record's
// lowercased title or description. An empty term matches everything.
func Matches(r Record, normalizedTerm string) bool {
	if normalizedTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.DisplayTitle()), normalizedTerm) ||
		strings.Contains(strings.ToLower(r.Summary()), normalizedTerm)
}

// Filter returns the records matching term, preserving order. The result is
// never nil so it always encodes as a JSON array.
func Filter[T Record](records []T, term string) []T {
	normalized := NormalizeSearch(term)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, normalized) {
			out = append(out, r)
		}
	}
	return out
}
