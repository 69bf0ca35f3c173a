// Package handlers provides the HTTP request handlers for TaskAPI.
//
// This package contains the handlers for the task endpoints (create, retrieve, list, search,
// partial update and delete) plus the welcome and health endpoints.
// Handlers decode and validate request input, call the in-memory task store and translate its
// results into JSON responses. The store's not-found error becomes a 404; malformed or invalid
// input becomes a 422 before the store is ever reached.
//
// For the available endpoints, see NewRouter.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"TaskAPI/commands"
	"TaskAPI/middleware"
	"TaskAPI/models"
	"TaskAPI/response"
	"TaskAPI/store"
	"TaskAPI/validation"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// TaskStore is the set of store operations the handlers rely on.
type TaskStore interface {
	Create(candidate models.Task) models.Task
	Get(id int) (models.Task, error)
	List(skip, limit int, completed *bool) []models.Task
	Update(id int, update models.TaskUpdate) (models.Task, error)
	Delete(id int) error
	Search(query string) []models.Task
	Count() int
}

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	store    TaskStore
	log      *logrus.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewTaskHandler returns a handler backed by s.
func NewTaskHandler(s TaskStore, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		store:    s,
		log:      log,
		validate: validation.New(),
		now:      time.Now,
	}
}

// RootHandler returns a welcome message.
//
// Example response:
//
//	{"message": "Welcome to the Task API"}
func (h *TaskHandler) RootHandler(res http.ResponseWriter, req *http.Request) {
	h.write(res, req, "welcome", http.StatusOK, response.Response{Message: "Welcome to the Task API"})
}

// HealthHandler reports that the service is up.
//
// Example response:
//
//	{"status": "healthy", "timestamp": "2024-05-17T09:30:00Z", "version": "1.0.0"}
func (h *TaskHandler) HealthHandler(res http.ResponseWriter, req *http.Request) {
	h.write(res, req, "health check", http.StatusOK, response.Health{
		Status:    "healthy",
		Timestamp: h.now(),
		Version:   Version,
	})
}

// ListTasksHandler returns tasks in ascending id order.
// It accepts the query parameters "skip" (default 0), "limit" (1 to 100, default 10)
// and "completed" to keep only finished or unfinished tasks.
// An offset past the end returns an empty list.
//
// Example request:
// GET /tasks?skip=0&limit=2&completed=true
//
// Example response:
//
//	[
//	  {
//	    "id": 1,
//	    "title": "Buy milk",
//	    "bar": "b",
//	    "foo": "f",
//	    "description": "2 litres",
//	    "completed": true,
//	    "created_at": "2024-05-17T09:30:00Z"
//	  }
//	]
func (h *TaskHandler) ListTasksHandler(res http.ResponseWriter, req *http.Request) {
	const operation = "list tasks"
	query, err := commands.ParseListTasksQuery(req.URL.Query())
	if err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}
	if err := h.validate.Struct(query); err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, validation.Describe(err), err)
		return
	}
	tasks := h.store.List(query.Skip, query.Limit, query.Completed)
	h.write(res, req, operation, http.StatusOK, tasks)
}

// SearchTasksHandler returns every task whose title or description contains the "q"
// query parameter, ignoring case. The query must be at least 3 characters long.
//
// Example request:
// GET /tasks/search?q=milk
func (h *TaskHandler) SearchTasksHandler(res http.ResponseWriter, req *http.Request) {
	const operation = "search tasks"
	query := commands.ParseSearchTasksQuery(req.URL.Query())
	if err := h.validate.Struct(query); err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, validation.Describe(err), err)
		return
	}
	h.write(res, req, operation, http.StatusOK, h.store.Search(query.Q))
}

// GetTaskHandler returns the task with the id given in the path.
//
// Example request:
// GET /tasks/1
//
// Example response:
//
//	{
//	  "id": 1,
//	  "title": "Buy milk",
//	  "bar": "b",
//	  "foo": "f",
//	  "description": "2 litres",
//	  "completed": false,
//	  "created_at": "2024-05-17T09:30:00Z"
//	}
func (h *TaskHandler) GetTaskHandler(res http.ResponseWriter, req *http.Request) {
	const operation = "get task by id"
	id, ok := h.taskID(res, req, operation)
	if !ok {
		return
	}
	task, err := h.store.Get(id)
	if err != nil {
		h.failWithError(res, req, operation, err)
		return
	}
	h.write(res, req, operation, http.StatusOK, task)
}

// CreateTaskHandler creates a task and answers 201 with the stored record.
// title, description, foo and bar are required; completed defaults to false and may not be null.
// Any id or created_at in the body is ignored; the store assigns both.
//
// Example request body:
//
//	{
//	  "title": "Buy milk",
//	  "description": "2 litres",
//	  "foo": "f",
//	  "bar": "b"
//	}
func (h *TaskHandler) CreateTaskHandler(res http.ResponseWriter, req *http.Request) {
	const operation = "create a task"
	var cmd commands.CreateTaskCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, decodeDetail(err), err)
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, validation.Describe(err), err)
		return
	}
	task := h.store.Create(cmd.Task())

	h.log.WithFields(logrus.Fields{
		"task operation": operation,
		"task id":        task.ID,
		"request_id":     middleware.RequestIDFromContext(req.Context()),
	}).Info("task created")
	h.write(res, req, operation, http.StatusCreated, task)
}

// UpdateTaskHandler partially updates the task with the id given in the path.
// Only title, description and completed may change, and only the keys present in the body
// are applied: {"completed": false} marks the task open and leaves everything else alone.
// A null value is rejected.
//
// Example request:
// PATCH /tasks/1
//
//	{"completed": true}
func (h *TaskHandler) UpdateTaskHandler(res http.ResponseWriter, req *http.Request) {
	const operation = "update a task"
	id, ok := h.taskID(res, req, operation)
	if !ok {
		return
	}
	var cmd commands.UpdateTaskCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, decodeDetail(err), err)
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, validation.Describe(err), err)
		return
	}
	task, err := h.store.Update(id, cmd.Update())
	if err != nil {
		h.failWithError(res, req, operation, err)
		return
	}
	h.write(res, req, operation, http.StatusOK, task)
}

// DeleteTaskHandler permanently removes the task with the id given in the path.
//
// Example response:
//
//	{"message": "Task deleted successfully"}
func (h *TaskHandler) DeleteTaskHandler(res http.ResponseWriter, req *http.Request) {
	const operation = "delete a task"
	id, ok := h.taskID(res, req, operation)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.failWithError(res, req, operation, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"task operation": operation,
		"task id":        id,
		"request_id":     middleware.RequestIDFromContext(req.Context()),
	}).Info("task deleted")
	h.write(res, req, operation, http.StatusOK, response.Response{Message: "Task deleted successfully"})
}

// taskID parses the {id} path parameter, answering 422 when it is not an integer.
func (h *TaskHandler) taskID(res http.ResponseWriter, req *http.Request, operation string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		h.fail(res, req, operation, http.StatusUnprocessableEntity, "Invalid task ID", err)
		return 0, false
	}
	return id, true
}

// decodeDetail names the problem with a request body that failed to decode.
func decodeDetail(err error) string {
	if errors.Is(err, models.ErrNullValue) {
		return err.Error()
	}
	return "Invalid request body"
}

// statusForError maps store errors to HTTP status codes and client-facing messages.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (h *TaskHandler) failWithError(res http.ResponseWriter, req *http.Request, operation string, err error) {
	status, detail := statusForError(err)
	h.fail(res, req, operation, status, detail, err)
}

func (h *TaskHandler) fail(res http.ResponseWriter, req *http.Request, operation string, status int, detail string, err error) {
	entry := h.log.WithFields(logrus.Fields{
		"task operation": operation,
		"request":        req.Method + " " + req.URL.Path,
		"request_id":     middleware.RequestIDFromContext(req.Context()),
		"status":         status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error(err.Error())
	} else {
		entry.Warn(err.Error())
	}
	h.write(res, req, operation, status, response.ErrorResponse{Detail: detail})
}

func (h *TaskHandler) write(res http.ResponseWriter, req *http.Request, operation string, status int, body any) {
	if err := response.JSON(res, status, body); err != nil {
		h.log.WithFields(logrus.Fields{
			"task operation": operation,
			"request":        req.Method + " " + req.URL.Path,
		}).Error(err.Error())
	}
}
