package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/service"
)

// tripRequest is the body of POST /trips and PUT /trips/{id}. For updates the
// nil fields are left untouched.
type tripRequest struct {
	Name      *string `json:"name"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     *string `json:"notes"`
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, _ *http.Request) {
	trips, err := s.trips.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// CreateTrip handles POST /trips. The new trip becomes current.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	trip, err := s.trips.Create(deref(req.Name), deref(req.StartDate), deref(req.EndDate), deref(req.Notes))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// GetCurrentTrip handles GET /trips/current.
func (s *Server) GetCurrentTrip(w http.ResponseWriter, _ *http.Request) {
	trip, err := s.trips.Current()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// SetCurrentTrip handles PUT /trips/current with body {"id": "..."}.
func (s *Server) SetCurrentTrip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	if req.ID == "" {
		writeRequestError(w, "id is required")
		return
	}
	if err := s.trips.SetCurrent(req.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTrip handles PUT /trips/{id}. Absent fields are left untouched.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	trip, err := s.trips.Update(chi.URLParam(r, "id"), service.TripUpdate{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{id}. Deleting the last remaining trip
// is refused with 409.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetNotes handles GET /notes for the current trip.
func (s *Server) GetNotes(w http.ResponseWriter, _ *http.Request) {
	notes, err := s.trips.GlobalNotes()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"notes": notes})
}

// UpdateNotes handles PUT /notes with body {"notes": "..."}.
func (s *Server) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	if err := s.trips.UpdateGlobalNotes(req.Notes); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHighlights handles GET /highlights for the current trip.
func (s *Server) ListHighlights(w http.ResponseWriter, _ *http.Request) {
	highlights, err := s.trips.DayHighlights()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

// SetHighlight handles PUT /highlights/{date} with body {"text": "..."}.
// An empty text removes the highlight.
func (s *Server) SetHighlight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	if err := s.trips.SetDayHighlight(chi.URLParam(r, "date"), req.Text); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
