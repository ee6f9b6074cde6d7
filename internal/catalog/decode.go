package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

// DecodeGames validates and decodes a games collection. Titles must map to
// distinct slugs.
func (v *Validator) DecodeGames(raw []json.RawMessage) ([]domain.GameRecord, error) {
	if err := v.Validate(domain.CollectionGames, raw); err != nil {
		return nil, err
	}

	games := make([]domain.GameRecord, 0, len(raw))
	slugs := newSlugSet(domain.CollectionGames, len(raw))
	for i, rec := range raw {
		var g domain.GameRecord
		if err := json.Unmarshal(rec, &g); err != nil {
			return nil, &RecordError{Collection: domain.CollectionGames, Index: i, Problems: []string{err.Error()}}
		}
		if err := slugs.add(i, g.Slug()); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

// DecodeTechnology validates and decodes a technology collection. Display
// titles must map to distinct slugs.
func (v *Validator) DecodeTechnology(raw []json.RawMessage) ([]domain.TechnologyRecord, error) {
	if err := v.Validate(domain.CollectionTechnology, raw); err != nil {
		return nil, err
	}

	techs := make([]domain.TechnologyRecord, 0, len(raw))
	slugs := newSlugSet(domain.CollectionTechnology, len(raw))
	for i, rec := range raw {
		var t domain.TechnologyRecord
		if err := json.Unmarshal(rec, &t); err != nil {
			return nil, &RecordError{Collection: domain.CollectionTechnology, Index: i, Problems: []string{err.Error()}}
		}
		if err := slugs.add(i, t.Slug()); err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	return techs, nil
}

// Check runs the full decode for collection c and discards the records. It
// accepts exactly what the query path accepts.
func (v *Validator) Check(c domain.Collection, raw []json.RawMessage) error {
	var err error
	switch c {
	case domain.CollectionGames:
		_, err = v.DecodeGames(raw)
	case domain.CollectionTechnology:
		_, err = v.DecodeTechnology(raw)
	default:
		err = fmt.Errorf("unknown collection %q", c)
	}
	return err
}

type slugSet struct {
	collection domain.Collection
	seen       map[string]int
}

func newSlugSet(c domain.Collection, size int) *slugSet {
	return &slugSet{collection: c, seen: make(map[string]int, size)}
}

func (s *slugSet) add(index int, slug string) error {
	if prev, dup := s.seen[slug]; dup {
		return &RecordError{
			Collection: s.collection,
			Index:      index,
			Problems:   []string{fmt.Sprintf("slug %q already used by record %d", slug, prev)},
		}
	}
	s.seen[slug] = index
	return nil
}

// ParseArray splits a JSON document holding a top-level array into its
// elements.
func ParseArray(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, fmt.Errorf("catalog document is not an array")
	}
	return records, nil
}
