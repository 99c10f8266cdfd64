package storage_test

import (
	"context"
	"testing"
	"time"

	"projefa/internal/models"
	"projefa/internal/storage"
	"projefa/internal/testutil"
	"projefa/internal/uuid"
)

// testStoreSuite exercises the Store contract points that must hold
// identically on every backend.
func testStoreSuite(t *testing.T, setup func(t *testing.T) storage.Store) {
	ctx := context.Background()

	newTask := func(id, projectID, title string, due time.Time, order int) *models.Task {
		now := time.Now().UTC()
		return &models.Task{
			Base:      models.Base{ID: id, CreatedAt: now, UpdatedAt: now},
			ProjectID: projectID,
			Title:     title,
			DueDate:   due,
			SortOrder: order,
		}
	}

	t.Run("create_and_get_task_roundtrip", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		due := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		task := newTask(uuid.New(), project.ID, "Buy milk", due, 3)
		task.Description = "Whole milk, 2 liters"
		task.Image = "aGVsbG8="
		testutil.AssertNoError(t, store.CreateTask(ctx, task))

		got, err := store.GetTask(ctx, task.ID)
		testutil.AssertNoError(t, err)
		if got == nil {
			t.Fatal("expected task, got nil")
		}
		if got.ID != task.ID || got.ProjectID != task.ProjectID {
			t.Errorf("identity fields changed: got %s/%s", got.ID, got.ProjectID)
		}
		if got.Title != "Buy milk" || got.Description != "Whole milk, 2 liters" {
			t.Errorf("text fields changed: got %q/%q", got.Title, got.Description)
		}
		if !got.DueDate.Equal(due) {
			t.Errorf("expected due date %v, got %v", due, got.DueDate)
		}
		if got.Image != "aGVsbG8=" {
			t.Errorf("image blob changed: got %q", got.Image)
		}
		if got.Completed {
			t.Error("expected task to be incomplete")
		}
		if got.SortOrder != 3 {
			t.Errorf("expected sort order 3, got %d", got.SortOrder)
		}
	})

	t.Run("get_absent_returns_nil", func(t *testing.T) {
		store := setup(t)

		for _, get := range []func() (any, error){
			func() (any, error) { c, err := store.GetCategory(ctx, uuid.New()); return c, err },
			func() (any, error) { p, err := store.GetProject(ctx, uuid.New()); return p, err },
			func() (any, error) { tk, err := store.GetTask(ctx, uuid.New()); return tk, err },
		} {
			got, err := get()
			testutil.AssertNoError(t, err)
			switch v := got.(type) {
			case *models.Category:
				if v != nil {
					t.Errorf("expected nil category, got %+v", v)
				}
			case *models.Project:
				if v != nil {
					t.Errorf("expected nil project, got %+v", v)
				}
			case *models.Task:
				if v != nil {
					t.Errorf("expected nil task, got %+v", v)
				}
			}
		}
	})

	t.Run("delete_then_get_absent", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)
		task := testutil.CreateTestTask(t, store, project.ID, time.Now().UTC())

		testutil.AssertNoError(t, store.DeleteTask(ctx, task.ID))
		got, err := store.GetTask(ctx, task.ID)
		testutil.AssertNoError(t, err)
		if got != nil {
			t.Errorf("expected deleted task to be absent, got %+v", got)
		}
	})

	t.Run("duplicate_id_rejected", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		id := uuid.New()
		first := newTask(id, project.ID, "First", time.Now().UTC(), 0)
		testutil.AssertNoError(t, store.CreateTask(ctx, first))

		second := newTask(id, project.ID, "Second", time.Now().UTC(), 1)
		testutil.AssertAppError(t, store.CreateTask(ctx, second), "DUPLICATE_ID")
	})

	t.Run("partial_update_preserves_other_fields", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		due := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
		task := newTask(uuid.New(), project.ID, "Original title", due, 5)
		task.Description = "keep me"
		testutil.AssertNoError(t, store.CreateTask(ctx, task))

		before := task.UpdatedAt
		time.Sleep(20 * time.Millisecond)
		testutil.AssertNoError(t, store.UpdateTask(ctx, task.ID, map[string]any{"title": "New title"}))

		got, err := store.GetTask(ctx, task.ID)
		testutil.AssertNoError(t, err)
		if got.Title != "New title" {
			t.Errorf("expected updated title, got %q", got.Title)
		}
		if got.Description != "keep me" {
			t.Errorf("description should be untouched, got %q", got.Description)
		}
		if !got.DueDate.Equal(due) {
			t.Errorf("due date should be untouched, got %v", got.DueDate)
		}
		if got.SortOrder != 5 {
			t.Errorf("sort order should be untouched, got %d", got.SortOrder)
		}
		if !got.UpdatedAt.After(before) {
			t.Errorf("updated_at should advance: before=%v after=%v", before, got.UpdatedAt)
		}
	})

	t.Run("update_missing_id_is_noop", func(t *testing.T) {
		store := setup(t)
		testutil.AssertNoError(t, store.UpdateTask(ctx, uuid.New(), map[string]any{"title": "ghost"}))
		testutil.AssertNoError(t, store.DeleteTask(ctx, uuid.New()))
	})

	t.Run("overdue_excludes_completed", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		future := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

		overdue := newTask(uuid.New(), project.ID, "Buy milk", past, 0)
		testutil.AssertNoError(t, store.CreateTask(ctx, overdue))

		done := newTask(uuid.New(), project.ID, "Done already", past, 1)
		done.Completed = true
		testutil.AssertNoError(t, store.CreateTask(ctx, done))

		upcoming := newTask(uuid.New(), project.ID, "Later", future, 2)
		testutil.AssertNoError(t, store.CreateTask(ctx, upcoming))

		tasks, err := store.ListOverdueTasks(ctx, now)
		testutil.AssertNoError(t, err)
		if len(tasks) != 1 || tasks[0].ID != overdue.ID {
			t.Fatalf("expected exactly the overdue task, got %d tasks", len(tasks))
		}

		// Completing the task removes it from the overdue set.
		testutil.AssertNoError(t, store.UpdateTask(ctx, overdue.ID, map[string]any{"completed": true}))
		tasks, err = store.ListOverdueTasks(ctx, now)
		testutil.AssertNoError(t, err)
		if len(tasks) != 0 {
			t.Errorf("expected no overdue tasks after completion, got %d", len(tasks))
		}
	})

	t.Run("due_between_is_half_open", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		atFrom := newTask(uuid.New(), project.ID, "at from", from, 0)
		middle := newTask(uuid.New(), project.ID, "middle", from.AddDate(0, 0, 14), 1)
		atTo := newTask(uuid.New(), project.ID, "at to", to, 2)
		for _, task := range []*models.Task{atFrom, middle, atTo} {
			testutil.AssertNoError(t, store.CreateTask(ctx, task))
		}

		tasks, err := store.ListTasksDueBetween(ctx, from, to)
		testutil.AssertNoError(t, err)
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks in [from, to), got %d", len(tasks))
		}
		if tasks[0].ID != atFrom.ID || tasks[1].ID != middle.ID {
			t.Errorf("unexpected tasks in range: %s, %s", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("search_matches_title_and_description", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		milk := newTask(uuid.New(), project.ID, "Buy MILK", time.Now().UTC(), 0)
		testutil.AssertNoError(t, store.CreateTask(ctx, milk))

		call := newTask(uuid.New(), project.ID, "Phone call", time.Now().UTC(), 1)
		call.Description = "ask about the milk delivery"
		testutil.AssertNoError(t, store.CreateTask(ctx, call))

		other := newTask(uuid.New(), project.ID, "Unrelated", time.Now().UTC(), 2)
		testutil.AssertNoError(t, store.CreateTask(ctx, other))

		tasks, err := store.SearchTasks(ctx, "milk")
		testutil.AssertNoError(t, err)
		if len(tasks) != 2 {
			t.Fatalf("expected 2 matches for 'milk', got %d", len(tasks))
		}
	})

	t.Run("reorder_changes_project_order", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		t1 := testutil.CreateTestTaskWithOrder(t, store, project.ID, time.Now().UTC(), 1)
		t2 := testutil.CreateTestTaskWithOrder(t, store, project.ID, time.Now().UTC(), 2)

		testutil.AssertNoError(t, store.ReorderTasks(ctx, []storage.TaskOrder{
			{ID: t1.ID, SortOrder: 2},
			{ID: t2.ID, SortOrder: 1},
		}))

		tasks, err := store.ListTasksByProject(ctx, project.ID)
		testutil.AssertNoError(t, err)
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(tasks))
		}
		if tasks[0].ID != t2.ID || tasks[1].ID != t1.ID {
			t.Errorf("expected order [t2, t1], got [%s, %s]", tasks[0].ID, tasks[1].ID)
		}
	})

	t.Run("project_order_ties_break_on_due_date", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)

		later := testutil.CreateTestTaskWithOrder(t, store, project.ID,
			time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 1)
		earlier := testutil.CreateTestTaskWithOrder(t, store, project.ID,
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 1)

		tasks, err := store.ListTasksByProject(ctx, project.ID)
		testutil.AssertNoError(t, err)
		if len(tasks) != 2 || tasks[0].ID != earlier.ID || tasks[1].ID != later.ID {
			t.Errorf("expected earlier due date first on equal order")
		}
	})

	t.Run("list_by_project_filters", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		p1 := testutil.CreateTestProject(t, store, category.ID)
		p2 := testutil.CreateTestProject(t, store, category.ID)

		mine := testutil.CreateTestTask(t, store, p1.ID, time.Now().UTC())
		testutil.CreateTestTask(t, store, p2.ID, time.Now().UTC())

		tasks, err := store.ListTasksByProject(ctx, p1.ID)
		testutil.AssertNoError(t, err)
		if len(tasks) != 1 || tasks[0].ID != mine.ID {
			t.Errorf("expected only p1's task, got %d tasks", len(tasks))
		}
	})

	t.Run("delete_category_cascades", func(t *testing.T) {
		store := setup(t)
		doomed := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, doomed.ID)
		task := testutil.CreateTestTask(t, store, project.ID, time.Now().UTC())

		survivor := testutil.CreateTestCategory(t, store)
		survivorProject := testutil.CreateTestProject(t, store, survivor.ID)

		testutil.AssertNoError(t, store.DeleteCategory(ctx, doomed.ID))

		if got, _ := store.GetProject(ctx, project.ID); got != nil {
			t.Error("expected cascaded project delete")
		}
		if got, _ := store.GetTask(ctx, task.ID); got != nil {
			t.Error("expected cascaded task delete")
		}
		if got, _ := store.GetProject(ctx, survivorProject.ID); got == nil {
			t.Error("unrelated project should survive the cascade")
		}
	})

	t.Run("delete_project_cascades", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)
		task := testutil.CreateTestTask(t, store, project.ID, time.Now().UTC())

		testutil.AssertNoError(t, store.DeleteProject(ctx, project.ID))

		if got, _ := store.GetTask(ctx, task.ID); got != nil {
			t.Error("expected cascaded task delete")
		}
		if got, _ := store.GetCategory(ctx, category.ID); got == nil {
			t.Error("parent category should survive")
		}
	})

	t.Run("category_update_and_projects_by_category", func(t *testing.T) {
		store := setup(t)
		category := testutil.CreateTestCategory(t, store)
		other := testutil.CreateTestCategory(t, store)
		project := testutil.CreateTestProject(t, store, category.ID)
		testutil.CreateTestProject(t, store, other.ID)

		testutil.AssertNoError(t, store.UpdateCategory(ctx, category.ID, map[string]any{
			"name":  "Renamed",
			"color": "#00FF00",
		}))
		got, err := store.GetCategory(ctx, category.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "Renamed" || got.Color != "#00FF00" {
			t.Errorf("category update not applied: %+v", got)
		}
		if got.Icon != category.Icon {
			t.Errorf("icon should be untouched, got %q", got.Icon)
		}

		projects, err := store.ListProjectsByCategory(ctx, category.ID)
		testutil.AssertNoError(t, err)
		if len(projects) != 1 || projects[0].ID != project.ID {
			t.Errorf("expected only the category's project, got %d", len(projects))
		}
	})
}
