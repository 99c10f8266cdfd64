package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "projefa/internal/errors"
	"projefa/internal/models"
)

const (
	categoriesFile = "categories.json"
	projectsFile   = "projects.json"
	tasksFile      = "tasks.json"
)

// DocumentStore implements Store as three flat JSON collections of
// whole-entity records, one file per entity kind. It is the sole backend in
// non-native contexts and the fallback target everywhere else. Records are
// serialized as-is with no schema enforcement.
//
// All operations are protected by a mutex; collections are held in memory
// and flushed to disk after every mutation.
type DocumentStore struct {
	dir string

	mu         sync.RWMutex
	categories []models.Category
	projects   []models.Project
	tasks      []models.Task
}

// NewDocumentStore opens (or creates) the document collections under dir.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document store dir: %w", err)
	}

	s := &DocumentStore{dir: dir}

	var err error
	if s.categories, err = readCollection[models.Category](filepath.Join(dir, categoriesFile)); err != nil {
		return nil, err
	}
	if s.projects, err = readCollection[models.Project](filepath.Join(dir, projectsFile)); err != nil {
		return nil, err
	}
	if s.tasks, err = readCollection[models.Task](filepath.Join(dir, tasksFile)); err != nil {
		return nil, err
	}
	return s, nil
}

func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", filepath.Base(path), err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// writeCollection persists a collection with a write-then-rename so a crash
// mid-write cannot truncate the previous contents.
func writeCollection[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace collection %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *DocumentStore) persistCategories() error {
	return writeCollection(filepath.Join(s.dir, categoriesFile), s.categories)
}

func (s *DocumentStore) persistProjects() error {
	return writeCollection(filepath.Join(s.dir, projectsFile), s.projects)
}

func (s *DocumentStore) persistTasks() error {
	return writeCollection(filepath.Join(s.dir, tasksFile), s.tasks)
}

// --- categories ---

func (s *DocumentStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *DocumentStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *DocumentStore) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			return apperrors.ErrDuplicateID
		}
	}
	s.categories = append(s.categories, *category)
	if err := s.persistCategories(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *DocumentStore) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		applyCategoryFields(&s.categories[i], fields)
		s.categories[i].UpdatedAt = time.Now().UTC()
		if err := s.persistCategories(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}
	// Missing id is a silent no-op; callers check existence when they need
	// an error signal.
	return nil
}

func (s *DocumentStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept

	// Cascade: drop owned projects and their tasks.
	deadProjects := map[string]bool{}
	keptProjects := s.projects[:0]
	for _, p := range s.projects {
		if p.CategoryID == id {
			deadProjects[p.ID] = true
			continue
		}
		keptProjects = append(keptProjects, p)
	}
	s.projects = keptProjects

	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if !deadProjects[t.ProjectID] {
			keptTasks = append(keptTasks, t)
		}
	}
	s.tasks = keptTasks

	for _, persist := range []func() error{s.persistCategories, s.persistProjects, s.persistTasks} {
		if err := persist(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// --- projects ---

func (s *DocumentStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *DocumentStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *DocumentStore) ListProjectsByCategory(ctx context.Context, categoryID string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Project
	for _, p := range s.projects {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *DocumentStore) CreateProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			return apperrors.ErrDuplicateID
		}
	}
	s.projects = append(s.projects, *project)
	if err := s.persistProjects(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *DocumentStore) UpdateProject(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		applyProjectFields(&s.projects[i], fields)
		s.projects[i].UpdatedAt = time.Now().UTC()
		if err := s.persistProjects(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}
	return nil
}

func (s *DocumentStore) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keptProjects := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			keptProjects = append(keptProjects, p)
		}
	}
	s.projects = keptProjects

	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ProjectID != id {
			keptTasks = append(keptTasks, t)
		}
	}
	s.tasks = keptTasks

	if err := s.persistProjects(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.persistTasks(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// --- tasks ---

func (s *DocumentStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *DocumentStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *DocumentStore) ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (s *DocumentStore) ListOverdueTasks(ctx context.Context, now time.Time) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, t := range s.tasks {
		if !t.Completed && t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (s *DocumentStore) ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, t := range s.tasks {
		if !t.DueDate.Before(from) && t.DueDate.Before(to) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (s *DocumentStore) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []models.Task
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *DocumentStore) CreateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			return apperrors.ErrDuplicateID
		}
	}
	s.tasks = append(s.tasks, *task)
	if err := s.persistTasks(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *DocumentStore) UpdateTask(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateTaskLocked(id, fields)
}

func (s *DocumentStore) updateTaskLocked(id string, fields map[string]any) error {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		applyTaskFields(&s.tasks[i], fields)
		s.tasks[i].UpdatedAt = time.Now().UTC()
		if err := s.persistTasks(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}
	return nil
}

func (s *DocumentStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	if err := s.persistTasks(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ReorderTasks applies each position update individually. Unlike the
// relational backend there is no atomicity across the list: a failure leaves
// earlier updates in place.
func (s *DocumentStore) ReorderTasks(ctx context.Context, orders []TaskOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		if err := s.updateTaskLocked(o.ID, map[string]any{"sort_order": o.SortOrder}); err != nil {
			return err
		}
	}
	return nil
}

// --- field application ---
//
// Update maps are keyed by column name, mirroring what the relational
// backend passes to GORM. Unknown keys are ignored.

func applyCategoryFields(c *models.Category, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				c.Name = s
			}
		case "color":
			if s, ok := v.(string); ok {
				c.Color = s
			}
		case "icon":
			if s, ok := v.(string); ok {
				c.Icon = s
			}
		}
	}
}

func applyProjectFields(p *models.Project, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				p.Name = s
			}
		case "category_id":
			if s, ok := v.(string); ok {
				p.CategoryID = s
			}
		}
	}
}

func applyTaskFields(t *models.Task, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "project_id":
			if s, ok := v.(string); ok {
				t.ProjectID = s
			}
		case "title":
			if s, ok := v.(string); ok {
				t.Title = s
			}
		case "description":
			if s, ok := v.(string); ok {
				t.Description = s
			}
		case "due_date":
			if ts, ok := v.(time.Time); ok {
				t.DueDate = ts
			}
		case "image":
			if s, ok := v.(string); ok {
				t.Image = s
			}
		case "completed":
			if b, ok := v.(bool); ok {
				t.Completed = b
			}
		case "sort_order":
			if n, ok := v.(int); ok {
				t.SortOrder = n
			}
		}
	}
}

var _ Store = (*DocumentStore)(nil)
