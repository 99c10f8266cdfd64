package models

// Category is a user-defined grouping label applied to projects, with a
// display color and icon.
type Category struct {
	Base
	Name  string `gorm:"not null" json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`

	// Relationships
	Projects []Project `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}
