package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"projefa/internal/models"
	"projefa/internal/storage"
	"projefa/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, store storage.Store) *models.Category {
	t.Helper()

	now := time.Now().UTC()
	category := &models.Category{
		Base:  models.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  fmt.Sprintf("Test Category %d", nextID()),
		Color: "#4A90D9",
		Icon:  "folder",
	}
	if err := store.CreateCategory(context.Background(), category); err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestProject creates a project in the given category.
func CreateTestProject(t *testing.T, store storage.Store, categoryID string) *models.Project {
	t.Helper()

	now := time.Now().UTC()
	project := &models.Project{
		Base:       models.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:       fmt.Sprintf("Test Project %d", nextID()),
		CategoryID: categoryID,
	}
	if err := store.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestTask creates an incomplete task due at the given time.
func CreateTestTask(t *testing.T, store storage.Store, projectID string, due time.Time) *models.Task {
	t.Helper()
	return CreateTestTaskWithOrder(t, store, projectID, due, 0)
}

// CreateTestTaskWithOrder creates an incomplete task with an explicit
// display position.
func CreateTestTaskWithOrder(t *testing.T, store storage.Store, projectID string, due time.Time, order int) *models.Task {
	t.Helper()

	now := time.Now().UTC()
	task := &models.Task{
		Base:      models.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ProjectID: projectID,
		Title:     fmt.Sprintf("Test Task %d", nextID()),
		DueDate:   due,
		Completed: false,
		SortOrder: order,
	}
	if err := store.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
