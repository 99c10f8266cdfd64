package services

import (
	"context"
	"time"

	apperrors "projefa/internal/errors"
	"projefa/internal/models"
	"projefa/internal/storage"
	"projefa/internal/uuid"
)

// categoryService handles category-related business logic. Field validation
// lives here, not in the storage core: the store accepts whatever well-formed
// record it is given.
type categoryService struct {
	store storage.Store
	now   func() time.Time
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(store storage.Store) CategoryServicer {
	return &categoryService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// CreateCategory creates a new category. When id is empty a UUIDv7 is
// assigned; the storage core always receives a fully-formed record.
func (s *categoryService) CreateCategory(ctx context.Context, id, name, color, icon string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	if id == "" {
		id = uuid.New()
	}
	now := s.now()
	category := &models.Category{
		Base:  models.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:  name,
		Color: color,
		Icon:  icon,
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategories retrieves all categories.
func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// GetCategoryByID retrieves a category by id. The store reports absence as a
// nil record; this layer turns it into a NOT_FOUND error for callers.
func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	return category, nil
}

// UpdateCategory updates the supplied fields of an existing category. Empty
// strings mean "not supplied".
func (s *categoryService) UpdateCategory(ctx context.Context, id, name, color, icon string) (*models.Category, error) {
	// The store treats a missing id as a no-op, so check existence here to
	// give callers an error signal.
	if _, err := s.GetCategoryByID(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if icon != "" {
		updates["icon"] = icon
	}

	if len(updates) > 0 {
		if err := s.store.UpdateCategory(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.GetCategoryByID(ctx, id)
}

// DeleteCategory deletes a category and, by cascade, its projects and their
// tasks.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategoryByID(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, id)
}
