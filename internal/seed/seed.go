// Package seed populates example data on first launch. The first-launch
// flag is a marker file in the data directory, deliberately outside the
// storage contract.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"projefa/internal/logger"
	"projefa/internal/services"
)

const markerFile = ".seeded"

// Run creates one example category, project, and a handful of tasks unless
// the marker file says a previous launch already did.
func Run(ctx context.Context, dataDir string, categories services.CategoryServicer, projects services.ProjectServicer, tasks services.TaskServicer) error {
	marker := filepath.Join(dataDir, markerFile)
	if _, err := os.Stat(marker); err == nil {
		return nil
	}

	log := logger.Get()
	log.Info("First launch detected, seeding example data")

	category, err := categories.CreateCategory(ctx, "", "Personal", "#4A90D9", "home")
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	project, err := projects.CreateProject(ctx, "", "Getting started", category.ID)
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	due := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	for i, title := range []string{
		"Create your first category",
		"Add a project to it",
		"Plan a task with a due date",
	} {
		if _, err := tasks.CreateTask(ctx, "", project.ID, title, "", due.Add(time.Duration(i)*time.Hour), "", nil); err != nil {
			return fmt.Errorf("seed task %q: %w", title, err)
		}
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(marker, []byte(time.Now().UTC().Format(time.RFC3339)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write first-launch marker: %w", err)
	}
	return nil
}
