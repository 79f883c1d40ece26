// Package service contains the business logic for the tabiplan application.
// Services validate inputs, enforce business rules, and orchestrate document
// reads and mutations. No persistence code lives here — services depend on
// the DocumentStore interface, not the concrete store.
package service

import (
	"fmt"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// DocumentStore is the persistence contract every service depends on.
// Load returns the current document; Mutate applies a mutation atomically
// (nothing is written when fn errors) and notifies subscribers on success.
type DocumentStore interface {
	Load() (domain.Document, error)
	Mutate(fn func(doc *domain.Document) error) (domain.Document, error)
	GenerateID() string
}

// TripService implements the trip directory: CRUD over the trips collection
// and the current-trip pointer, plus the per-trip notes and day highlights.
type TripService struct {
	store DocumentStore
	now   func() time.Time
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(store DocumentStore) *TripService {
	return &TripService{store: store, now: time.Now}
}

// TripUpdate carries the partial fields of a trip update. Nil pointers leave
// the corresponding field untouched.
type TripUpdate struct {
	Name      *string
	StartDate *string
	EndDate   *string
	Notes     *string
}

// Current resolves the current trip. A stale or absent pointer self-heals to
// the first trip and the correction is persisted. Returns domain.ErrNotFound
// only when the document holds no trips at all.
func (s *TripService) Current() (domain.Trip, error) {
	doc, err := s.store.Load()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Current: %w", err)
	}
	trip, corrected := doc.CurrentTrip()
	if trip == nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Current: %w", domain.ErrNotFound)
	}
	if corrected {
		if _, err := s.store.Mutate(func(d *domain.Document) error {
			d.CurrentTrip()
			return nil
		}); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Current: persist correction: %w", err)
		}
	}
	return *trip, nil
}

// List returns all trips in insertion order.
func (s *TripService) List() ([]domain.Trip, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if doc.Trips == nil {
		return []domain.Trip{}, nil
	}
	return doc.Trips, nil
}

// SetCurrent switches the current-trip pointer.
// Returns domain.ErrNotFound when no trip has that id; nothing is changed.
func (s *TripService) SetCurrent(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		if doc.TripByID(id) == nil {
			return domain.ErrNotFound
		}
		doc.CurrentTripID = id
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.TripService.SetCurrent: %w", err)
	}
	return nil
}

// Create builds a new trip with a fresh id, the bootstrap user and empty
// collections, appends it and makes it current.
func (s *TripService) Create(name, startDate, endDate, notes string) (domain.Trip, error) {
	trip := domain.NewEmptyTrip(s.store.GenerateID(), name, s.now())
	trip.StartDate = startDate
	trip.EndDate = endDate
	trip.Notes = notes

	_, err := s.store.Mutate(func(doc *domain.Document) error {
		doc.Trips = append(doc.Trips, trip)
		doc.CurrentTripID = trip.ID
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// Update merges the given fields into the matching trip and refreshes its
// UpdatedAt. Returns domain.ErrNotFound when the id does not resolve.
func (s *TripService) Update(id string, upd TripUpdate) (domain.Trip, error) {
	var updated domain.Trip
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip := doc.TripByID(id)
		if trip == nil {
			return domain.ErrNotFound
		}
		if upd.Name != nil {
			trip.Name = *upd.Name
		}
		if upd.StartDate != nil {
			trip.StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			trip.EndDate = *upd.EndDate
		}
		if upd.Notes != nil {
			trip.Notes = *upd.Notes
		}
		trip.UpdatedAt = s.now()
		updated = *trip
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip. The last remaining trip can never be deleted —
// that returns domain.ErrLastTrip and changes nothing. When the deleted trip
// was current, the first remaining trip becomes current.
func (s *TripService) Delete(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		if len(doc.Trips) <= 1 {
			return domain.ErrLastTrip
		}
		if doc.TripByID(id) == nil {
			return domain.ErrNotFound
		}
		kept := doc.Trips[:0]
		for _, t := range doc.Trips {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		doc.Trips = kept
		if doc.CurrentTripID == id {
			doc.CurrentTripID = doc.Trips[0].ID
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// GlobalNotes returns the current trip's free-text notes, empty when there is
// no current trip.
func (s *TripService) GlobalNotes() (string, error) {
	doc, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("service.TripService.GlobalNotes: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil {
		return "", nil
	}
	return trip.GlobalNotes, nil
}

// UpdateGlobalNotes overwrites the current trip's free-text notes.
func (s *TripService) UpdateGlobalNotes(text string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		trip.GlobalNotes = text
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.TripService.UpdateGlobalNotes: %w", err)
	}
	return nil
}

// DayHighlights returns the current trip's per-date highlight map. Never nil.
func (s *TripService) DayHighlights() (map[string]string, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.TripService.DayHighlights: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil || trip.DayHighlights == nil {
		return map[string]string{}, nil
	}
	return trip.DayHighlights, nil
}

// SetDayHighlight sets the free-text annotation for one date on the current
// trip. An empty text removes the annotation.
func (s *TripService) SetDayHighlight(date, text string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		if text == "" {
			delete(trip.DayHighlights, date)
			return nil
		}
		if trip.DayHighlights == nil {
			trip.DayHighlights = map[string]string{}
		}
		trip.DayHighlights[date] = text
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.TripService.SetDayHighlight: %w", err)
	}
	return nil
}
