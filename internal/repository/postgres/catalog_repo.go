package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type catalogRepository struct {
	store *Store
}

func (r *catalogRepository) Load(ctx context.Context, collection domain.Collection) ([]json.RawMessage, error) {
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	var entries []*domain.CatalogEntry
	err = db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translateError(err)
	}

	records := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		records[i] = json.RawMessage(e.Payload)
	}
	return records, nil
}

// ReplaceCatalog swaps the stored records of collection for records, keeping
// their order. Records are stored as given; validation is the caller's job.
func (s *Store) ReplaceCatalog(ctx context.Context, collection domain.Collection, records []json.RawMessage) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", collection).Delete(&domain.CatalogEntry{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		entries := make([]*domain.CatalogEntry, len(records))
		for i, raw := range records {
			entries[i] = &domain.CatalogEntry{
				ID:         uuid.New().String(),
				Collection: collection,
				Position:   i,
				Payload:    datatypes.JSON(raw),
			}
		}
		return tx.Create(&entries).Error
	})
	return translateError(err)
}
