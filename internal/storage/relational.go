package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "projefa/internal/errors"
	"projefa/internal/models"
)

// RelationalStore implements Store on top of a GORM database. This is the
// primary backend on devices with an embedded SQLite database; it also runs
// against PostgreSQL when DB_DRIVER selects it.
type RelationalStore struct {
	db *gorm.DB
}

// NewRelationalStore creates a Store backed by the given GORM database.
// The database must be opened with TranslateError enabled so that primary
// key conflicts surface as gorm.ErrDuplicatedKey.
func NewRelationalStore(db *gorm.DB) *RelationalStore {
	return &RelationalStore{db: db}
}

func translateCreateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.ErrDuplicateID, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// --- categories ---

func (s *RelationalStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

func (s *RelationalStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

func (s *RelationalStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

func (s *RelationalStore) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteCategory removes the category together with its projects and their
// tasks. The cascade is explicit rather than left to foreign key constraints
// so the policy holds identically on every driver and matches the document
// backend.
func (s *RelationalStore) DeleteCategory(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id IN (?)",
			tx.Model(&models.Project{}).Select("id").Where("category_id = ?", id),
		).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Category{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// --- projects ---

func (s *RelationalStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return projects, nil
}

func (s *RelationalStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

func (s *RelationalStore) ListProjectsByCategory(ctx context.Context, categoryID string) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).
		Order("created_at asc").Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return projects, nil
}

func (s *RelationalStore) CreateProject(ctx context.Context, project *models.Project) error {
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

func (s *RelationalStore) UpdateProject(ctx context.Context, id string, fields map[string]any) error {
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteProject removes the project together with its tasks.
func (s *RelationalStore) DeleteProject(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// --- tasks ---

func (s *RelationalStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Order("sort_order asc, created_at desc").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

func (s *RelationalStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}

func (s *RelationalStore) ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("sort_order asc, due_date asc").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

func (s *RelationalStore) ListOverdueTasks(ctx context.Context, now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Where("completed = ? AND due_date < ?", false, now).
		Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

func (s *RelationalStore) ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Where("due_date >= ? AND due_date < ?", from, to).
		Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

func (s *RelationalStore) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Where("lower(title) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Order("sort_order asc, created_at desc").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

func (s *RelationalStore) CreateTask(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

func (s *RelationalStore) UpdateTask(ctx context.Context, id string, fields map[string]any) error {
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *RelationalStore) DeleteTask(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ReorderTasks applies all position updates in one transaction.
func (s *RelationalStore) ReorderTasks(ctx context.Context, orders []TaskOrder) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			if err := tx.Model(&models.Task{}).Where("id = ?", o.ID).
				Update("sort_order", o.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

var _ Store = (*RelationalStore)(nil)
