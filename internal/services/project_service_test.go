package services

import (
	"context"
	"testing"
	"time"

	"projefa/internal/testutil"
)

func TestCreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_project", func(t *testing.T) {
		store := testutil.SetupRelationalStore(t)
		svc := NewProjectService(store)
		category := testutil.CreateTestCategory(t, store)

		project, err := svc.CreateProject(ctx, "", "Chores", category.ID)
		testutil.AssertNoError(t, err)
		if project.ID == "" {
			t.Error("expected a generated id")
		}
		if project.CategoryID != category.ID {
			t.Errorf("expected category %s, got %s", category.ID, project.CategoryID)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		store := testutil.SetupRelationalStore(t)
		svc := NewProjectService(store)
		category := testutil.CreateTestCategory(t, store)

		_, err := svc.CreateProject(ctx, "", "", category.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		store := testutil.SetupRelationalStore(t)
		svc := NewProjectService(store)

		_, err := svc.CreateProject(ctx, "", "Chores", "nope")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("move_to_other_category", func(t *testing.T) {
		store := testutil.SetupRelationalStore(t)
		svc := NewProjectService(store)
		home := testutil.CreateTestCategory(t, store)
		work := testutil.CreateTestCategory(t, store)

		project, err := svc.CreateProject(ctx, "", "Chores", home.ID)
		testutil.AssertNoError(t, err)

		moved, err := svc.UpdateProject(ctx, project.ID, "", work.ID)
		testutil.AssertNoError(t, err)
		if moved.CategoryID != work.ID {
			t.Errorf("expected project moved to %s, got %s", work.ID, moved.CategoryID)
		}
		if moved.Name != project.Name {
			t.Errorf("name should be untouched, got %q", moved.Name)
		}
	})

	t.Run("move_to_unknown_category", func(t *testing.T) {
		store := testutil.SetupRelationalStore(t)
		svc := NewProjectService(store)
		category := testutil.CreateTestCategory(t, store)

		project, err := svc.CreateProject(ctx, "", "Chores", category.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateProject(ctx, project.ID, "", "nope")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown_project", func(t *testing.T) {
		store := testutil.SetupRelationalStore(t)
		svc := NewProjectService(store)

		_, err := svc.UpdateProject(ctx, "nope", "Chores", "")
		testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupRelationalStore(t)
	projects := NewProjectService(store)
	tasks := NewTaskService(store)

	category := testutil.CreateTestCategory(t, store)
	project, err := projects.CreateProject(ctx, "", "Chores", category.ID)
	testutil.AssertNoError(t, err)
	task := testutil.CreateTestTask(t, store, project.ID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	testutil.AssertNoError(t, projects.DeleteProject(ctx, project.ID))

	_, err = projects.GetProjectByID(ctx, project.ID)
	testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
	_, err = tasks.GetTaskByID(ctx, task.ID)
	testutil.AssertAppError(t, err, "TASK_NOT_FOUND")
}
