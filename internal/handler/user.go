package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/service"
)

// userRequest is the body of POST /users and PUT /users/{id}.
type userRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := s.users.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	created, err := s.users.Create(service.UserInput{Name: req.Name, Color: req.Color})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateUser handles PUT /users/{id}, preserving the join timestamp.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	updated, err := s.users.Update(chi.URLParam(r, "id"), service.UserInput{Name: req.Name, Color: req.Color})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/{id}. Expenses and tasks referencing the
// user keep their weak reference.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
