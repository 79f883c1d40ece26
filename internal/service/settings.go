package service

import (
	"fmt"
	"strings"

	"github.com/knorii/tabiplan/internal/domain"
)

// Category kinds accepted by SettingsService operations.
const (
	CategoryKindSchedule = "schedule"
	CategoryKindExpense  = "expense"
)

// SettingsService manages the per-trip category definitions. Trips created
// before settings existed have none stored; reads fall back to the defaults
// and the first mutation materializes the defaults onto the trip.
type SettingsService struct {
	store DocumentStore
}

// NewSettingsService constructs a SettingsService backed by the provided store.
func NewSettingsService(store DocumentStore) *SettingsService {
	return &SettingsService{store: store}
}

// Categories returns the current trip's category list for the given kind,
// falling back to the defaults when the trip has no settings.
func (s *SettingsService) Categories(kind string) ([]domain.Category, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.SettingsService.Categories: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil {
		return []domain.Category{}, nil
	}
	if trip.Settings == nil {
		return defaultCategories(kind), nil
	}
	if kind == CategoryKindSchedule {
		return trip.Settings.ScheduleCategories, nil
	}
	return trip.Settings.ExpenseCategories, nil
}

// Add appends a category. The stored value is the label slugified (lowercase,
// spaces to hyphens). Color applies to schedule categories only and defaults
// when empty.
func (s *SettingsService) Add(kind, label, color string) (domain.Category, error) {
	if err := validateKind(kind); err != nil {
		return domain.Category{}, err
	}
	cat, err := buildCategory(kind, label, color)
	if err != nil {
		return domain.Category{}, err
	}
	_, err = s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		list := materialize(trip, kind)
		*list = append(*list, cat)
		return nil
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.SettingsService.Add: %w", err)
	}
	return cat, nil
}

// Update replaces the category at index.
// Returns domain.ErrNotFound when the index is out of range.
func (s *SettingsService) Update(kind string, index int, label, color string) (domain.Category, error) {
	if err := validateKind(kind); err != nil {
		return domain.Category{}, err
	}
	cat, err := buildCategory(kind, label, color)
	if err != nil {
		return domain.Category{}, err
	}
	_, err = s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		list := materialize(trip, kind)
		if index < 0 || index >= len(*list) {
			return domain.ErrNotFound
		}
		(*list)[index] = cat
		return nil
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.SettingsService.Update: %w", err)
	}
	return cat, nil
}

// Delete removes the category at index. Schedules or expenses already tagged
// with the removed value keep their now-stale code.
func (s *SettingsService) Delete(kind string, index int) error {
	if err := validateKind(kind); err != nil {
		return err
	}
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		list := materialize(trip, kind)
		if index < 0 || index >= len(*list) {
			return domain.ErrNotFound
		}
		*list = append((*list)[:index], (*list)[index+1:]...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.SettingsService.Delete: %w", err)
	}
	return nil
}

// materialize ensures the trip carries its own settings (initialized from the
// defaults) and returns the list for kind.
func materialize(trip *domain.Trip, kind string) *[]domain.Category {
	if trip.Settings == nil {
		trip.Settings = domain.DefaultSettings()
	}
	if kind == CategoryKindSchedule {
		return &trip.Settings.ScheduleCategories
	}
	return &trip.Settings.ExpenseCategories
}

func defaultCategories(kind string) []domain.Category {
	if kind == CategoryKindSchedule {
		return domain.DefaultScheduleCategories()
	}
	return domain.DefaultExpenseCategories()
}

func buildCategory(kind, label, color string) (domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Category{}, fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	cat := domain.Category{
		Value: strings.Join(strings.Fields(strings.ToLower(label)), "-"),
		Label: label,
	}
	if kind == CategoryKindSchedule {
		if color == "" {
			color = domain.DefaultUserColor
		}
		cat.Color = color
	}
	return cat, nil
}

func validateKind(kind string) error {
	switch kind {
	case CategoryKindSchedule, CategoryKindExpense:
		return nil
	default:
		return fmt.Errorf("%w: unknown category kind %q", domain.ErrValidation, kind)
	}
}
