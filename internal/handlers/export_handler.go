package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projefa/internal/services"
)

// ExportHandler serves a full dump of all three collections. Output
// formatting (CSV, localized reports) is the client's concern; this endpoint
// only encodes what the stores return.
type ExportHandler struct {
	categoryService services.CategoryServicer
	projectService  services.ProjectServicer
	taskService     services.TaskServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(categoryService services.CategoryServicer, projectService services.ProjectServicer, taskService services.TaskServicer) *ExportHandler {
	return &ExportHandler{
		categoryService: categoryService,
		projectService:  projectService,
		taskService:     taskService,
	}
}

// Export handles dumping every category, project, and task as one document.
func (h *ExportHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.categoryService.GetCategories(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	projects, err := h.projectService.GetProjects(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	tasks, err := h.taskService.GetTasks(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"projects":   projects,
		"tasks":      tasks,
	})
}
