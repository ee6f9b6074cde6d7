// Package file serves catalog collections from JSON documents on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xylexgaming/xgi-website/internal/catalog"
	"github.com/xylexgaming/xgi-website/internal/domain"
)

type catalogRepository struct {
	dir string
}

// NewCatalogRepository reads <dir>/<collection>.json on every Load.
func NewCatalogRepository(dir string) *catalogRepository {
	return &catalogRepository{dir: dir}
}

func (r *catalogRepository) Path(collection domain.Collection) string {
	return filepath.Join(r.dir, string(collection)+".json")
}

func (r *catalogRepository) Load(ctx context.Context, collection domain.Collection) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path(collection))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}

	records, err := catalog.ParseArray(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", collection, err)
	}
	return records, nil
}
