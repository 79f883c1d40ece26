package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// UserService implements CRUD over the current trip's participants.
//
// The bootstrap user is deletable here like any other — hiding its delete
// control is a UI affordance, not a data rule. Expenses and tasks referencing
// a deleted user keep their weak reference and render as unknown.
type UserService struct {
	store DocumentStore
	now   func() time.Time
}

// NewUserService constructs a UserService backed by the provided store.
func NewUserService(store DocumentStore) *UserService {
	return &UserService{store: store, now: time.Now}
}

// UserInput carries the editable fields of a participant.
// An empty Color defaults to domain.DefaultUserColor.
type UserInput struct {
	Name  string
	Color string
}

// List returns the current trip's participants, empty when there is no
// current trip.
func (s *UserService) List() ([]domain.User, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil || trip.Users == nil {
		return []domain.User{}, nil
	}
	return trip.Users, nil
}

// Create validates and appends a new participant to the current trip.
func (s *UserService) Create(in UserInput) (domain.User, error) {
	if err := validateUser(&in); err != nil {
		return domain.User{}, err
	}
	var created domain.User
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		created = domain.User{
			ID:       s.store.GenerateID(),
			Name:     in.Name,
			Color:    in.Color,
			JoinedAt: s.now(),
		}
		trip.Users = append(trip.Users, created)
		return nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return created, nil
}

// Update replaces a participant's name and color by id, preserving JoinedAt.
// Returns domain.ErrNotFound when the id does not resolve.
func (s *UserService) Update(id string, in UserInput) (domain.User, error) {
	if err := validateUser(&in); err != nil {
		return domain.User{}, err
	}
	var updated domain.User
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		user := trip.UserByID(id)
		if user == nil {
			return domain.ErrNotFound
		}
		user.Name = in.Name
		user.Color = in.Color
		updated = *user
		return nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a participant by id.
func (s *UserService) Delete(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		kept := trip.Users[:0]
		found := false
		for _, u := range trip.Users {
			if u.ID == id {
				found = true
				continue
			}
			kept = append(kept, u)
		}
		if !found {
			return domain.ErrNotFound
		}
		trip.Users = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

func validateUser(in *UserInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Color == "" {
		in.Color = domain.DefaultUserColor
	}
	return nil
}
