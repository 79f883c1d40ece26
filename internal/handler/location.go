package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/service"
)

// locationRequest is the body of POST /locations and PUT /locations/{id},
// and the inline newLocation of a schedule request.
type locationRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	BusinessHours string `json:"businessHours"`
	Website       string `json:"website"`
	Image         string `json:"image"`
	Notes         string `json:"notes"`
}

func (req locationRequest) toInput() service.LocationInput {
	return service.LocationInput{
		Name:          req.Name,
		Address:       req.Address,
		BusinessHours: req.BusinessHours,
		Website:       req.Website,
		Image:         req.Image,
		Notes:         req.Notes,
	}
}

// ListLocations handles GET /locations.
func (s *Server) ListLocations(w http.ResponseWriter, _ *http.Request) {
	locations, err := s.locations.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// CreateLocation handles POST /locations.
func (s *Server) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	created, err := s.locations.Create(req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateLocation handles PUT /locations/{id}.
func (s *Server) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	updated, err := s.locations.Update(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteLocation handles DELETE /locations/{id}. Schedule entries pointing at
// the location have their reference cleared, not their entries removed.
func (s *Server) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := s.locations.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
