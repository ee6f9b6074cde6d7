// Package catalog enforces the shape of catalog records before they are
// decoded and served.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/xylexgaming/xgi-website/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator checks raw records against the per-collection JSON schemas.
type Validator struct {
	schemas map[domain.Collection]*gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[domain.Collection]*gojsonschema.Schema)}
	for _, c := range domain.Collections() {
		raw, err := schemaFS.ReadFile("schemas/" + string(c) + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", c, err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", c, err)
		}
		v.schemas[c] = schema
	}
	return v, nil
}

// MustNewValidator panics if the embedded schemas do not compile.
func MustNewValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// RecordError describes why the record at Index was rejected.
type RecordError struct {
	Collection domain.Collection
	Index      int
	Problems   []string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Collection, e.Index, strings.Join(e.Problems, "; "))
}

// Validate checks every record and returns the first failure.
func (v *Validator) Validate(c domain.Collection, records []json.RawMessage) error {
	schema, ok := v.schemas[c]
	if !ok {
		return fmt.Errorf("no schema for collection %q", c)
	}

	for i, rec := range records {
		result, err := schema.Validate(gojsonschema.NewBytesLoader(rec))
		if err != nil {
			return &RecordError{Collection: c, Index: i, Problems: []string{err.Error()}}
		}
		if !result.Valid() {
			problems := make([]string, 0, len(result.Errors()))
			for _, re := range result.Errors() {
				problems = append(problems, re.String())
			}
			return &RecordError{Collection: c, Index: i, Problems: problems}
		}
	}
	return nil
}
