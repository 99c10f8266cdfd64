package services

import (
	"context"
	"time"

	apperrors "projefa/internal/errors"
	"projefa/internal/models"
	"projefa/internal/storage"
	"projefa/internal/uuid"
)

// projectService handles project-related business logic.
type projectService struct {
	store storage.Store
	now   func() time.Time
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(store storage.Store) ProjectServicer {
	return &projectService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// CreateProject creates a new project. The referenced category must exist;
// the storage core does not enforce foreign keys across backends, so the
// check lives here.
func (s *projectService) CreateProject(ctx context.Context, id, name, categoryID string) (*models.Project, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}

	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotFound
	}

	if id == "" {
		id = uuid.New()
	}
	now := s.now()
	project := &models.Project{
		Base:       models.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:       name,
		CategoryID: categoryID,
	}

	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProjects retrieves all projects.
func (s *projectService) GetProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

// GetProjectByID retrieves a project by id.
func (s *projectService) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

// GetCategoryProjects retrieves the projects belonging to a category.
func (s *projectService) GetCategoryProjects(ctx context.Context, categoryID string) ([]models.Project, error) {
	return s.store.ListProjectsByCategory(ctx, categoryID)
}

// UpdateProject updates the supplied fields of an existing project. Empty
// strings mean "not supplied". Moving a project to another category
// re-validates the reference.
func (s *projectService) UpdateProject(ctx context.Context, id, name, categoryID string) (*models.Project, error) {
	if _, err := s.GetProjectByID(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if name != "" {
		updates["name"] = name
	}
	if categoryID != "" {
		category, err := s.store.GetCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperrors.ErrCategoryNotFound
		}
		updates["category_id"] = categoryID
	}

	if len(updates) > 0 {
		if err := s.store.UpdateProject(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.GetProjectByID(ctx, id)
}

// DeleteProject deletes a project and, by cascade, its tasks.
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.GetProjectByID(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteProject(ctx, id)
}
