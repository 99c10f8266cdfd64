package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "projefa/internal/errors"
	"projefa/internal/pagination"
	"projefa/internal/services"
	"projefa/internal/storage"
)

// TaskHandler handles task-related requests.
type TaskHandler struct {
	taskService services.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService services.TaskServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents the request payload for creating a task.
// Order is optional; when omitted the task is appended after the project's
// existing tasks.
type CreateTaskRequest struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Image       string    `json:"image" binding:"omitempty,base64_image"`
	Order       *int      `json:"order"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Image       *string    `json:"image" binding:"omitempty,base64_image"`
	Completed   *bool      `json:"completed"`
	Order       *int       `json:"order"`
}

// CompleteTaskRequest represents the request payload for toggling completion.
type CompleteTaskRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ReorderTasksRequest represents the request payload for reordering tasks.
type ReorderTasksRequest struct {
	Orders []storage.TaskOrder `json:"orders" binding:"required,min=1,dive"`
}

// CreateTask handles the creation of a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(),
		req.ID, req.ProjectID, req.Title, req.Description, req.DueDate, req.Image, req.Order)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTasks handles the paginated retrieval of all tasks, with optional
// full-text search via the q query parameter.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.taskService.SearchTasks(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Slice(tasks, page))
}

// GetOverdueTasks handles the retrieval of incomplete tasks due in the past.
func (h *TaskHandler) GetOverdueTasks(c *gin.Context) {
	tasks, err := h.taskService.GetOverdueTasks(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetCalendarTasks handles the retrieval of tasks due in [from, to), both
// bounds RFC 3339 query parameters.
func (h *TaskHandler) GetCalendarTasks(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from date"))
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to date"))
		return
	}

	tasks, err := h.taskService.GetTasksDueBetween(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetTaskByID handles the retrieval of a specific task.
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask handles updating a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id,
		req.Title, req.Description, req.DueDate, req.Image, req.Completed, req.Order)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// CompleteTask handles toggling a task's completion state.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CompleteTask(c.Request.Context(), id, *req.Completed)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// ReorderTasks handles applying new display positions to multiple tasks.
func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	var req ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.ReorderTasks(c.Request.Context(), req.Orders); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tasks reordered successfully"})
}

// DeleteTask handles deleting a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
