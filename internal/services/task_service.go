package services

import (
	"context"
	"time"

	apperrors "projefa/internal/errors"
	"projefa/internal/models"
	"projefa/internal/storage"
	"projefa/internal/uuid"
)

// taskService handles task-related business logic.
type taskService struct {
	store storage.Store
	now   func() time.Time
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(store storage.Store) TaskServicer {
	return &taskService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// CreateTask creates a new task in the given project. When order is nil the
// task is appended: its position defaults to the highest existing position
// in the project plus one.
func (s *taskService) CreateTask(ctx context.Context, id, projectID, title, description string, dueDate time.Time, image string, order *int) (*models.Task, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task title is required")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task due date is required")
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	sortOrder := 0
	if order != nil {
		sortOrder = *order
	} else {
		siblings, err := s.store.ListTasksByProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		for _, t := range siblings {
			if t.SortOrder >= sortOrder {
				sortOrder = t.SortOrder + 1
			}
		}
	}

	if id == "" {
		id = uuid.New()
	}
	now := s.now()
	task := &models.Task{
		Base:        models.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Image:       image,
		Completed:   false,
		SortOrder:   sortOrder,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTasks retrieves all tasks.
func (s *taskService) GetTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// GetTaskByID retrieves a task by id.
func (s *taskService) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

// GetProjectTasks retrieves the tasks of a project in display order.
func (s *taskService) GetProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.store.ListTasksByProject(ctx, projectID)
}

// GetOverdueTasks retrieves incomplete tasks due before now.
func (s *taskService) GetOverdueTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListOverdueTasks(ctx, s.now())
}

// GetTasksDueBetween retrieves tasks due in [from, to), backing the
// calendar view.
func (s *taskService) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	return s.store.ListTasksDueBetween(ctx, from, to)
}

// SearchTasks matches the query against task titles and descriptions.
func (s *taskService) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	if query == "" {
		return s.store.ListTasks(ctx)
	}
	return s.store.SearchTasks(ctx, query)
}

// UpdateTask applies the supplied fields to an existing task. Nil pointers
// mean "not supplied"; only present fields change.
func (s *taskService) UpdateTask(ctx context.Context, id string, title, description *string, dueDate *time.Time, image *string, completed *bool, order *int) (*models.Task, error) {
	if _, err := s.GetTaskByID(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if title != nil {
		if *title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task title cannot be empty")
		}
		updates["title"] = *title
	}
	if description != nil {
		updates["description"] = *description
	}
	if dueDate != nil {
		updates["due_date"] = *dueDate
	}
	if image != nil {
		updates["image"] = *image
	}
	if completed != nil {
		updates["completed"] = *completed
	}
	if order != nil {
		updates["sort_order"] = *order
	}

	if len(updates) > 0 {
		if err := s.store.UpdateTask(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.GetTaskByID(ctx, id)
}

// CompleteTask sets the completion flag of a task.
func (s *taskService) CompleteTask(ctx context.Context, id string, completed bool) (*models.Task, error) {
	return s.UpdateTask(ctx, id, nil, nil, nil, nil, &completed, nil)
}

// DeleteTask deletes a task.
func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.GetTaskByID(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, id)
}

// ReorderTasks applies new display positions to multiple tasks.
func (s *taskService) ReorderTasks(ctx context.Context, orders []storage.TaskOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return s.store.ReorderTasks(ctx, orders)
}
