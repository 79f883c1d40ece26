package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/service"
)

// categoryRequest is the body of POST and PUT under /settings/categories.
// color applies to schedule categories only.
type categoryRequest struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ListCategories handles GET /settings/categories: both kinds at once.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	schedule, err := s.settings.Categories(service.CategoryKindSchedule)
	if err != nil {
		writeError(w, err)
		return
	}
	expense, err := s.settings.Categories(service.CategoryKindExpense)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Category{
		"schedule": schedule,
		"expense":  expense,
	})
}

// AddCategory handles POST /settings/categories/{kind}.
func (s *Server) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	added, err := s.settings.Add(chi.URLParam(r, "kind"), req.Label, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// UpdateCategory handles PUT /settings/categories/{kind}/{index}.
func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeRequestError(w, "index must be an integer")
		return
	}
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	updated, err := s.settings.Update(chi.URLParam(r, "kind"), index, req.Label, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory handles DELETE /settings/categories/{kind}/{index}.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeRequestError(w, "index must be an integer")
		return
	}
	if err := s.settings.Delete(chi.URLParam(r, "kind"), index); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
