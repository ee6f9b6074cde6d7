package frontend

import (
	_ "embed"
	"encoding/json"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

//go:embed fallback.json
var fallbackJSON []byte

// Snapshot is the fixed catalog excerpt shown when the content API cannot be
// reached.
type Snapshot struct {
	Games      []domain.GameRecord       `json:"games"`
	Technology []domain.TechnologyRecord `json:"technology"`
}

var fallbackSnapshot = mustSnapshot(fallbackJSON)

func mustSnapshot(data []byte) Snapshot {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		panic("frontend: invalid fallback snapshot: " + err.Error())
	}
	if len(s.Games) == 0 || len(s.Technology) == 0 {
		panic("frontend: fallback snapshot must not be empty")
	}
	return s
}

// Fallback returns a copy of the embedded snapshot.
func Fallback() Snapshot {
	return Snapshot{
		Games:      append([]domain.GameRecord(nil), fallbackSnapshot.Games...),
		Technology: append([]domain.TechnologyRecord(nil), fallbackSnapshot.Technology...),
	}
}
