package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/domain"
)

func raw(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = json.RawMessage(d)
	}
	return out
}

func TestValidator_Games(t *testing.T) {
	v := MustNewValidator()

	tests := []struct {
		name      string
		records   []json.RawMessage
		wantErr   bool
		wantIndex int
	}{
		{
			name: "valid records",
			records: raw(
				`{"title":"Nebula Drift","description":"Racing","image":"/images/nebula.jpg"}`,
				`{"title":"JOHN WICK","description":"Action","image":"https://cdn.test/wick.jpg","link":"https://wick.test","youtube":"https://youtu.be/abc"}`,
			),
		},
		{
			name:    "empty collection",
			records: raw(),
		},
		{
			name:      "missing image",
			records:   raw(`{"title":"Nebula Drift","description":"Racing"}`),
			wantErr:   true,
			wantIndex: 0,
		},
		{
			name: "relative image path",
			records: raw(
				`{"title":"A","description":"a","image":"/a.jpg"}`,
				`{"title":"B","description":"b","image":"images/b.jpg"}`,
			),
			wantErr:   true,
			wantIndex: 1,
		},
		{
			name:      "empty title",
			records:   raw(`{"title":"","description":"a","image":"/a.jpg"}`),
			wantErr:   true,
			wantIndex: 0,
		},
		{
			name:      "not an object",
			records:   raw(`"Nebula Drift"`),
			wantErr:   true,
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(domain.CollectionGames, tt.records)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var recErr *RecordError
			require.True(t, errors.As(err, &recErr), "expected RecordError, got %v", err)
			assert.Equal(t, tt.wantIndex, recErr.Index)
			assert.Equal(t, domain.CollectionGames, recErr.Collection)
			assert.NotEmpty(t, recErr.Problems)
		})
	}
}

func TestValidator_Technology(t *testing.T) {
	v := MustNewValidator()

	tests := []struct {
		name    string
		record  string
		wantErr bool
	}{
		{"name only", `{"name":"Xylex Engine","description":"Engine","icon":"fas fa-cogs"}`, false},
		{"title only", `{"title":"VR Studio","description":"VR","icon":"/images/vr.png","type":"image"}`, false},
		{"neither title nor name", `{"description":"Engine","icon":"fas fa-cogs"}`, true},
		{"unknown type", `{"name":"X","description":"x","icon":"fas fa-x","type":"video"}`, true},
		{"missing icon", `{"name":"X","description":"x"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(domain.CollectionTechnology, raw(tt.record))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeGames_DuplicateSlug(t *testing.T) {
	v := MustNewValidator()

	_, err := v.DecodeGames(raw(
		`{"title":"Nebula Drift","description":"a","image":"/a.jpg"}`,
		`{"title":"NEBULA  drift!","description":"b","image":"/b.jpg"}`,
	))

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 1, recErr.Index)
	assert.Contains(t, recErr.Error(), "nebula-drift")
}

func TestDecodeTechnology(t *testing.T) {
	v := MustNewValidator()

	techs, err := v.DecodeTechnology(raw(
		`{"name":"Xylex Engine","description":"Engine","icon":"fas fa-cogs","type":"icon"}`,
		`{"title":"Adaptive AI","description":"AI","icon":"fas fa-brain"}`,
	))
	require.NoError(t, err)
	require.Len(t, techs, 2)
	assert.Equal(t, "Xylex Engine", techs[0].DisplayTitle())
	assert.Equal(t, domain.TechnologyTypeIcon, techs[1].RenderType())
}

func TestDecodeTechnology_DuplicateSlug(t *testing.T) {
	v := MustNewValidator()

	_, err := v.DecodeTechnology(raw(
		`{"name":"Xylex Engine","description":"a","icon":"fas fa-cogs"}`,
		`{"title":"xylex engine","description":"b","icon":"fas fa-bolt"}`,
	))

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, domain.CollectionTechnology, recErr.Collection)
	assert.Equal(t, 1, recErr.Index)
	assert.Contains(t, recErr.Error(), "xylex-engine")
}

func TestValidator_Check(t *testing.T) {
	v := MustNewValidator()

	collision := raw(
		`{"title":"Nebula Drift","description":"a","image":"/a.jpg"}`,
		`{"title":"nebula drift","description":"b","image":"/b.jpg"}`,
	)
	require.NoError(t, v.Validate(domain.CollectionGames, collision), "schema alone accepts the collision")
	assert.Error(t, v.Check(domain.CollectionGames, collision))

	assert.NoError(t, v.Check(domain.CollectionTechnology, raw(`{"name":"X","description":"x","icon":"fas fa-x"}`)))
	assert.Error(t, v.Check(domain.Collection("music"), raw()))
}

func TestParseArray(t *testing.T) {
	records, err := ParseArray([]byte(`[{"a":1},{"b":2}]`))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = ParseArray([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)

	for _, bad := range []string{`null`, `{"title":"x"}`, `[{"title":`, ``} {
		_, err := ParseArray([]byte(bad))
		assert.Error(t, err, "input %q", bad)
	}
}
