package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// LocationService implements CRUD over the current trip's points of interest,
// including the cross-entity cleanup rule on delete.
type LocationService struct {
	store DocumentStore
	now   func() time.Time
}

// NewLocationService constructs a LocationService backed by the provided store.
func NewLocationService(store DocumentStore) *LocationService {
	return &LocationService{store: store, now: time.Now}
}

// LocationInput carries the editable fields of a location.
type LocationInput struct {
	Name          string
	Address       string
	BusinessHours string
	Website       string
	Image         string
	Notes         string
}

// List returns the current trip's locations, empty when there is no current
// trip.
func (s *LocationService) List() ([]domain.Location, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.List: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil || trip.Locations == nil {
		return []domain.Location{}, nil
	}
	return trip.Locations, nil
}

// Create validates and appends a new location to the current trip.
func (s *LocationService) Create(in LocationInput) (domain.Location, error) {
	if err := validateLocation(in); err != nil {
		return domain.Location{}, err
	}
	var created domain.Location
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		created = buildLocation(s.store.GenerateID(), in, s.now())
		trip.Locations = append(trip.Locations, created)
		return nil
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	return created, nil
}

// Update replaces an existing location's fields by id.
// Returns domain.ErrNotFound when the id does not resolve.
func (s *LocationService) Update(id string, in LocationInput) (domain.Location, error) {
	if err := validateLocation(in); err != nil {
		return domain.Location{}, err
	}
	var updated domain.Location
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		for i := range trip.Locations {
			if trip.Locations[i].ID == id {
				trip.Locations[i] = buildLocation(id, in, s.now())
				updated = trip.Locations[i]
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a location and clears the reference on every schedule entry
// of the same trip that pointed at it. The schedules themselves are never
// deleted — the reference is weak.
func (s *LocationService) Delete(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		kept := trip.Locations[:0]
		found := false
		for _, l := range trip.Locations {
			if l.ID == id {
				found = true
				continue
			}
			kept = append(kept, l)
		}
		if !found {
			return domain.ErrNotFound
		}
		trip.Locations = kept
		for i := range trip.Schedules {
			if trip.Schedules[i].Location == id {
				trip.Schedules[i].Location = ""
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.LocationService.Delete: %w", err)
	}
	return nil
}

func buildLocation(id string, in LocationInput, now time.Time) domain.Location {
	return domain.Location{
		ID:            id,
		Name:          in.Name,
		Address:       in.Address,
		BusinessHours: in.BusinessHours,
		Website:       in.Website,
		Image:         in.Image,
		Notes:         in.Notes,
		UpdatedAt:     now,
	}
}

func validateLocation(in LocationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
