package models

import (
	"time"

	"projefa/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the common columns shared by all Projefa records. IDs are
// opaque UUID strings assigned by the service layer before a record reaches
// a storage backend; timestamps are set the same way so that both backends
// persist identical values.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUIDv7 when a record reaches the relational
// backend without an id. The service layer normally assigns ids itself; this
// hook is the safety net for direct database access in tooling and tests.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
