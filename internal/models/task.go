package models

import "time"

// Task is a single actionable item with a due date, optional base64 image,
// completion state, and a display position within its project.
type Task struct {
	Base
	ProjectID   string    `gorm:"type:uuid;not null;index" json:"project_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `gorm:"not null;index" json:"due_date"`
	// Image holds an opaque base64 blob captured by the mobile client.
	// Projefa stores it as-is and never decodes it server-side.
	Image     string `gorm:"type:text" json:"image,omitempty"`
	Completed bool   `gorm:"not null;default:false;index" json:"completed"`
	// SortOrder defines display order within a project. The column is named
	// sort_order because "order" is an SQL keyword.
	SortOrder int `gorm:"column:sort_order;not null;default:0" json:"order"`
}
