package services

import (
	"context"
	"time"

	"projefa/internal/models"
	"projefa/internal/storage"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, id, name, color, icon string) (*models.Category, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id, name, color, icon string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ProjectServicer defines the contract for project-related business logic.
type ProjectServicer interface {
	CreateProject(ctx context.Context, id, name, categoryID string) (*models.Project, error)
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetCategoryProjects(ctx context.Context, categoryID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id, name, categoryID string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// TaskServicer defines the contract for task-related business logic.
type TaskServicer interface {
	CreateTask(ctx context.Context, id, projectID, title, description string, dueDate time.Time, image string, order *int) (*models.Task, error)
	GetTasks(ctx context.Context) ([]models.Task, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	GetProjectTasks(ctx context.Context, projectID string) ([]models.Task, error)
	GetOverdueTasks(ctx context.Context) ([]models.Task, error)
	GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
	SearchTasks(ctx context.Context, query string) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, title, description *string, dueDate *time.Time, image *string, completed *bool, order *int) (*models.Task, error)
	CompleteTask(ctx context.Context, id string, completed bool) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ReorderTasks(ctx context.Context, orders []storage.TaskOrder) error
}
