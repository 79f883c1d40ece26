package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/service"
)

// taskRequest is the body of POST /tasks and PUT /tasks/{id}.
type taskRequest struct {
	Title       string `json:"title"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assignedTo"`
	Description string `json:"description"`
}

func (req taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		Description: req.Description,
	}
}

// ListTasks handles GET /tasks in display order.
func (s *Server) ListTasks(w http.ResponseWriter, _ *http.Request) {
	tasks, err := s.tasks.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	created, err := s.tasks.Create(req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTask handles PUT /tasks/{id}, preserving completion state.
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	updated, err := s.tasks.Update(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleTask handles POST /tasks/{id}/toggle and returns the updated task.
func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	toggled, err := s.tasks.Toggle(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggled)
}

// DeleteTask handles DELETE /tasks/{id}.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
