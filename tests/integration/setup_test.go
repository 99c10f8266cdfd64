package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"projefa/internal/handlers"
	"projefa/internal/logger"
	"projefa/internal/middleware"
	"projefa/internal/models"
	"projefa/internal/services"
	"projefa/internal/storage"
	"projefa/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  storage.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:apptestdb%d?mode=memory&cache=shared&_foreign_keys=on", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Category{},
		&models.Project{},
		&models.Task{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack: a relational primary over an
// isolated in-memory SQLite with a document fallback, routed exactly as in
// production.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	docStore, err := storage.NewDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open document store: %v", err)
	}
	store := storage.NewRouter(storage.NewRelationalStore(setupIsolatedDB(t)), docStore)

	// Services
	categoryService := services.NewCategoryService(store)
	projectService := services.NewProjectService(store)
	taskService := services.NewTaskService(store)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, projectService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	exportHandler := handlers.NewExportHandler(categoryService, projectService, taskService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.GET("/:id/projects", categoryHandler.GetCategoryProjects)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	projects := v1.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetProjects)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.GET("/:id/tasks", projectHandler.GetProjectTasks)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.GetTasks)
	tasks.GET("/overdue", taskHandler.GetOverdueTasks)
	tasks.GET("/calendar", taskHandler.GetCalendarTasks)
	tasks.PUT("/reorder", taskHandler.ReorderTasks)
	tasks.GET("/:id", taskHandler.GetTaskByID)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.PUT("/:id/complete", taskHandler.CompleteTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	v1.GET("/export", exportHandler.Export)

	return &testApp{Store: store, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error object, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// createCategory creates a category and returns its id.
func (app *testApp) createCategory(t *testing.T, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"color":"#4A90D9","icon":"folder"}`, name)
	rec := app.request("POST", "/api/v1/categories", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(string)
}

// createProject creates a project in the given category and returns its id.
func (app *testApp) createProject(t *testing.T, name, categoryID string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"category_id":%q}`, name, categoryID)
	rec := app.request("POST", "/api/v1/projects", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	project := result["project"].(map[string]interface{})
	return project["id"].(string)
}

// createTask creates a task in the given project and returns its id.
func (app *testApp) createTask(t *testing.T, projectID, title, dueDate string) string {
	t.Helper()
	body := fmt.Sprintf(`{"project_id":%q,"title":%q,"due_date":%q}`, projectID, title, dueDate)
	rec := app.request("POST", "/api/v1/tasks", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	task := result["task"].(map[string]interface{})
	return task["id"].(string)
}
