// Package storage implements Projefa's persistence core: one CRUD contract
// over two interchangeable backends (an embedded relational store and a JSON
// document store) plus a Router that composes them with a one-shot fallback.
package storage

import (
	"context"
	"time"

	"projefa/internal/models"
)

// TaskOrder pairs a task id with its new display position within a project.
type TaskOrder struct {
	ID        string `json:"id" binding:"required"`
	SortOrder int    `json:"order"`
}

// Store is the uniform CRUD contract for Projefa's three entity kinds.
//
// Contract points shared by every implementation:
//   - Get* returns (nil, nil) when the id is absent; reads never fail on
//     "not found".
//   - Update* applies only the supplied fields (keyed by column name) and
//     always refreshes updated_at; a missing id is a silent no-op. Callers
//     that need an existence signal must check beforehand.
//   - Delete* on a missing id is a silent no-op. Deleting a category removes
//     its projects and their tasks; deleting a project removes its tasks.
//   - Create* expects a fully-formed record (id and timestamps set by the
//     caller) and rejects a duplicate id with ErrDuplicateID.
//   - ListTasksByProject orders by (sort_order asc, due_date asc);
//     ListTasks orders by (sort_order asc, created_at desc).
type Store interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id string, fields map[string]any) error
	DeleteCategory(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjectsByCategory(ctx context.Context, categoryID string) ([]models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, id string, fields map[string]any) error
	DeleteProject(ctx context.Context, id string) error

	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error)
	// ListOverdueTasks returns incomplete tasks whose due date is strictly
	// before now. Completed tasks are never returned regardless of due date.
	ListOverdueTasks(ctx context.Context, now time.Time) ([]models.Task, error)
	// ListTasksDueBetween returns tasks due in the half-open interval [from, to).
	ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
	// SearchTasks matches the query case-insensitively against title and
	// description.
	SearchTasks(ctx context.Context, query string) ([]models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, id string, fields map[string]any) error
	DeleteTask(ctx context.Context, id string) error
	// ReorderTasks applies the given positions to multiple tasks. The
	// relational backend applies them in a single transaction; the document
	// backend applies them one by one with no atomicity across the list.
	ReorderTasks(ctx context.Context, orders []TaskOrder) error
}
