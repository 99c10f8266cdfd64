package storage

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "projefa/internal/errors"
	"projefa/internal/logger"
	"projefa/internal/models"
)

// Router composes a primary and an optional secondary Store behind the same
// contract and applies Projefa's one-shot fallback policy: every operation
// attempts the primary backend first; if that call fails for any reason, the
// router logs a warning and re-executes the operation against the secondary
// exactly once. There is no retry loop, no circuit breaker, and no caching
// of backend health, so a permanently broken primary is re-attempted on
// every call.
//
// When secondary is nil the router is a transparent pass-through; backend
// selection happens once at construction time from configuration and is
// never re-evaluated per call.
type Router struct {
	primary   Store
	secondary Store
	log       *zap.SugaredLogger
}

// NewRouter creates a Router over the given backends. secondary may be nil.
func NewRouter(primary, secondary Store) *Router {
	return &Router{
		primary:   primary,
		secondary: secondary,
		log:       logger.Get(),
	}
}

// query runs a read (or any value-returning operation) with the fallback
// policy. A double failure is surfaced as ErrStorageFailure wrapping both
// underlying errors.
func query[T any](r *Router, op string, fn func(Store) (T, error)) (T, error) {
	v, err := fn(r.primary)
	if err == nil || r.secondary == nil {
		return v, err
	}
	r.log.Warnw("primary backend failed, retrying on fallback", "op", op, "error", err)
	v, ferr := fn(r.secondary)
	if ferr != nil {
		var zero T
		return zero, apperrors.Wrap(apperrors.ErrStorageFailure, errors.Join(err, ferr))
	}
	return v, nil
}

// exec is query for operations that return only an error.
func exec(r *Router, op string, fn func(Store) error) error {
	err := fn(r.primary)
	if err == nil || r.secondary == nil {
		return err
	}
	r.log.Warnw("primary backend failed, retrying on fallback", "op", op, "error", err)
	if ferr := fn(r.secondary); ferr != nil {
		return apperrors.Wrap(apperrors.ErrStorageFailure, errors.Join(err, ferr))
	}
	return nil
}

func (r *Router) ListCategories(ctx context.Context) ([]models.Category, error) {
	return query(r, "ListCategories", func(s Store) ([]models.Category, error) { return s.ListCategories(ctx) })
}

func (r *Router) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return query(r, "GetCategory", func(s Store) (*models.Category, error) { return s.GetCategory(ctx, id) })
}

func (r *Router) CreateCategory(ctx context.Context, category *models.Category) error {
	return exec(r, "CreateCategory", func(s Store) error { return s.CreateCategory(ctx, category) })
}

func (r *Router) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	return exec(r, "UpdateCategory", func(s Store) error { return s.UpdateCategory(ctx, id, fields) })
}

func (r *Router) DeleteCategory(ctx context.Context, id string) error {
	return exec(r, "DeleteCategory", func(s Store) error { return s.DeleteCategory(ctx, id) })
}

func (r *Router) ListProjects(ctx context.Context) ([]models.Project, error) {
	return query(r, "ListProjects", func(s Store) ([]models.Project, error) { return s.ListProjects(ctx) })
}

func (r *Router) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return query(r, "GetProject", func(s Store) (*models.Project, error) { return s.GetProject(ctx, id) })
}

func (r *Router) ListProjectsByCategory(ctx context.Context, categoryID string) ([]models.Project, error) {
	return query(r, "ListProjectsByCategory", func(s Store) ([]models.Project, error) {
		return s.ListProjectsByCategory(ctx, categoryID)
	})
}

func (r *Router) CreateProject(ctx context.Context, project *models.Project) error {
	return exec(r, "CreateProject", func(s Store) error { return s.CreateProject(ctx, project) })
}

func (r *Router) UpdateProject(ctx context.Context, id string, fields map[string]any) error {
	return exec(r, "UpdateProject", func(s Store) error { return s.UpdateProject(ctx, id, fields) })
}

func (r *Router) DeleteProject(ctx context.Context, id string) error {
	return exec(r, "DeleteProject", func(s Store) error { return s.DeleteProject(ctx, id) })
}

func (r *Router) ListTasks(ctx context.Context) ([]models.Task, error) {
	return query(r, "ListTasks", func(s Store) ([]models.Task, error) { return s.ListTasks(ctx) })
}

func (r *Router) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return query(r, "GetTask", func(s Store) (*models.Task, error) { return s.GetTask(ctx, id) })
}

func (r *Router) ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return query(r, "ListTasksByProject", func(s Store) ([]models.Task, error) {
		return s.ListTasksByProject(ctx, projectID)
	})
}

func (r *Router) ListOverdueTasks(ctx context.Context, now time.Time) ([]models.Task, error) {
	return query(r, "ListOverdueTasks", func(s Store) ([]models.Task, error) { return s.ListOverdueTasks(ctx, now) })
}

func (r *Router) ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	return query(r, "ListTasksDueBetween", func(s Store) ([]models.Task, error) {
		return s.ListTasksDueBetween(ctx, from, to)
	})
}

func (r *Router) SearchTasks(ctx context.Context, q string) ([]models.Task, error) {
	return query(r, "SearchTasks", func(s Store) ([]models.Task, error) { return s.SearchTasks(ctx, q) })
}

func (r *Router) CreateTask(ctx context.Context, task *models.Task) error {
	return exec(r, "CreateTask", func(s Store) error { return s.CreateTask(ctx, task) })
}

func (r *Router) UpdateTask(ctx context.Context, id string, fields map[string]any) error {
	return exec(r, "UpdateTask", func(s Store) error { return s.UpdateTask(ctx, id, fields) })
}

func (r *Router) DeleteTask(ctx context.Context, id string) error {
	return exec(r, "DeleteTask", func(s Store) error { return s.DeleteTask(ctx, id) })
}

func (r *Router) ReorderTasks(ctx context.Context, orders []TaskOrder) error {
	return exec(r, "ReorderTasks", func(s Store) error { return s.ReorderTasks(ctx, orders) })
}

var _ Store = (*Router)(nil)
