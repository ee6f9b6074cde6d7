package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CatalogEntry is the database form of a catalog record, provisioned by hand.
// Position is the display order within its collection.
type CatalogEntry struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Collection Collection     `json:"collection" gorm:"type:varchar(32);not null;index:idx_catalog_position,priority:1"`
	Position   int            `json:"position" gorm:"not null;index:idx_catalog_position,priority:2"`
	Payload    datatypes.JSON `json:"payload" gorm:"not null"`
	CreatedAt  time.Time      `json:"createdAt"`
}
