package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
)

// GamesFixture is the games collection every test server starts with.
func GamesFixture() []domain.GameRecord {
	return []domain.GameRecord{
		{
			Title:       "FURIOSA: A Mad-Max Saga (UNRELEASED)",
			Description: "Open-world vehicular combat across the Wasteland.",
			Image:       "/images/furiosa.jpg",
			Link:        "https://example.com/furiosa",
			YouTube:     "https://www.youtube.com/watch?v=XJMuhwVlca4",
		},
		{
			Title:       "JOHN WICK (coming soon...)",
			Description: "Tactical gun-fu action in the criminal underworld.",
			Image:       "/images/john-wick.jpg",
		},
		{
			Title:       "Nebula Drift",
			Description: "Arcade sci-fi & more: racing through asteroid fields.",
			Image:       "https://cdn.example.com/nebula.jpg",
		},
	}
}

// TechnologyFixture is the technology collection every test server starts
// with. The last entry has no explicit type.
func TechnologyFixture() []domain.TechnologyRecord {
	return []domain.TechnologyRecord{
		{Name: "Xylex Engine", Description: "Real-time rendering engine.", Icon: "fas fa-cogs", Type: domain.TechnologyTypeIcon},
		{Title: "VR Studio", Description: "Virtual reality toolchain.", Icon: "/images/vr.png", Type: domain.TechnologyTypeImage},
		{Name: "Adaptive AI", Description: "Opponents that learn your style.", Icon: "fas fa-brain"},
	}
}

// WriteCatalog writes both collections into dir as the file repository
// expects them.
func WriteCatalog(t *testing.T, dir string, games []domain.GameRecord, techs []domain.TechnologyRecord) {
	t.Helper()
	writeJSONFile(t, filepath.Join(dir, string(domain.CollectionGames)+".json"), games)
	writeJSONFile(t, filepath.Join(dir, string(domain.CollectionTechnology)+".json"), techs)
}

// WriteRawCatalog replaces one collection file with content verbatim.
func WriteRawCatalog(t *testing.T, dir string, collection domain.Collection, content string) {
	t.Helper()
	path := filepath.Join(dir, string(collection)+".json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeJSONFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// RawRecords encodes each value as one catalog record.
func RawRecords(t *testing.T, values ...interface{}) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to encode record %d: %v", i, err)
		}
		out[i] = data
	}
	return out
}

// PlayerBuilder creates test players with a builder pattern
type PlayerBuilder struct {
	username  string
	email     string
	createdAt time.Time
}

// NewPlayerBuilder creates a new PlayerBuilder with default values
func NewPlayerBuilder() *PlayerBuilder {
	suffix := uuid.New().String()[:8]
	return &PlayerBuilder{
		username:  fmt.Sprintf("player_%s", suffix),
		email:     fmt.Sprintf("player_%s@example.com", suffix),
		createdAt: time.Now().UTC(),
	}
}

// WithUsername sets the username
func (b *PlayerBuilder) WithUsername(username string) *PlayerBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *PlayerBuilder) WithEmail(email string) *PlayerBuilder {
	b.email = email
	return b
}

// WithCreatedAt sets the registration time
func (b *PlayerBuilder) WithCreatedAt(at time.Time) *PlayerBuilder {
	b.createdAt = at.UTC()
	return b
}

// Build stores the player through repo and returns it
func (b *PlayerBuilder) Build(t *testing.T, repo repository.PlayerRepository) *domain.Player {
	t.Helper()

	player := &domain.Player{
		ID:        uuid.New().String(),
		Username:  b.username,
		Email:     b.email,
		CreatedAt: b.createdAt,
	}

	if err := repo.Create(context.Background(), player); err != nil {
		t.Fatalf("failed to create player: %v", err)
	}

	return player
}
