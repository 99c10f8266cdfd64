package models

// Project is a named unit of work belonging to one category, containing zero
// or more tasks.
type Project struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	CategoryID string `gorm:"type:uuid;not null;index" json:"category_id"`

	// Relationships
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
