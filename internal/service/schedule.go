package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// jst is the fixed +09:00 offset used to decide which calendar day is
// "today" for finished-entry sorting, regardless of the server's zone.
var jst = time.FixedZone("UTC+9", 9*60*60)

// ScheduleService implements the schedule lifecycle: creation and editing,
// display ordering and grouping, and the soft-delete / restore / hard-delete
// state machine.
type ScheduleService struct {
	store DocumentStore
	now   func() time.Time
}

// NewScheduleService constructs a ScheduleService backed by the provided store.
func NewScheduleService(store DocumentStore) *ScheduleService {
	return &ScheduleService{store: store, now: time.Now}
}

// ScheduleInput carries the editable fields of a schedule entry.
// NewLocation, when set with a non-blank name, creates a location in the same
// save and links the entry to it, overriding Location.
type ScheduleInput struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Category    string
	Location    string
	Description string
	NewLocation *LocationInput
}

// Day is one display bucket: every listed entry sharing the same date string,
// with the date's highlight annotation.
type Day struct {
	Date      string            `json:"date"`
	Highlight string            `json:"highlight,omitempty"`
	Entries   []domain.Schedule `json:"entries"`
}

// List returns the current trip's non-deleted entries in display order:
// unfinished before finished (an entry is finished when its date is before
// today on the +09:00 calendar), then ascending date string, then ascending
// start time. Empty when there is no current trip.
func (s *ScheduleService) List() ([]domain.Schedule, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.List: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil {
		return []domain.Schedule{}, nil
	}

	entries := make([]domain.Schedule, 0, len(trip.Schedules))
	for _, e := range trip.Schedules {
		if !e.IsDeleted {
			entries = append(entries, e)
		}
	}
	sortForDisplay(entries, s.today())
	return entries, nil
}

// Deleted returns the current trip's soft-deleted entries.
func (s *ScheduleService) Deleted() ([]domain.Schedule, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.Deleted: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil {
		return []domain.Schedule{}, nil
	}

	deleted := []domain.Schedule{}
	for _, e := range trip.Schedules {
		if e.IsDeleted {
			deleted = append(deleted, e)
		}
	}
	return deleted, nil
}

// Days buckets the listed entries by exact date string, one bucket per
// distinct date, buckets ordered ascending by date string. Each bucket
// carries its day highlight.
func (s *ScheduleService) Days() ([]Day, error) {
	entries, err := s.List()
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.Days: %w", err)
	}
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.Days: %w", err)
	}
	var highlights map[string]string
	if trip, _ := doc.CurrentTrip(); trip != nil {
		highlights = trip.DayHighlights
	}

	grouped := map[string][]domain.Schedule{}
	for _, e := range entries {
		grouped[e.Date] = append(grouped[e.Date], e)
	}
	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		days = append(days, Day{Date: d, Highlight: highlights[d], Entries: grouped[d]})
	}
	return days, nil
}

// Create validates and appends a new entry to the current trip. When the
// input carries a new location it is created and linked in the same save.
func (s *ScheduleService) Create(in ScheduleInput) (domain.Schedule, error) {
	if err := validateSchedule(in); err != nil {
		return domain.Schedule{}, err
	}
	var created domain.Schedule
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		created = s.buildSchedule(s.store.GenerateID(), in, trip)
		trip.Schedules = append(trip.Schedules, created)
		return nil
	})
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of an existing entry. The entry's
// deletion state is untouched — only Restore clears a soft delete.
func (s *ScheduleService) Update(id string, in ScheduleInput) (domain.Schedule, error) {
	if err := validateSchedule(in); err != nil {
		return domain.Schedule{}, err
	}
	var updated domain.Schedule
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		entry := trip.ScheduleByID(id)
		if entry == nil {
			return domain.ErrNotFound
		}
		next := s.buildSchedule(id, in, trip)
		next.IsDeleted = entry.IsDeleted
		next.DeletedAt = entry.DeletedAt
		*entry = next
		updated = next
		return nil
	})
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}
	return updated, nil
}

// Delete routes by the entry's state, mirroring the UI's double-delete
// affordance: an active entry is soft-deleted; an already soft-deleted entry
// is removed outright. Reports whether the removal was permanent.
func (s *ScheduleService) Delete(id string) (permanent bool, err error) {
	_, err = s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		entry := trip.ScheduleByID(id)
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.IsDeleted {
			removeSchedule(trip, id)
			permanent = true
			return nil
		}
		now := s.now()
		entry.IsDeleted = true
		entry.DeletedAt = &now
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}
	return permanent, nil
}

// Restore brings a soft-deleted entry back to the active state.
// Restoring an active entry is a validation error.
func (s *ScheduleService) Restore(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		entry := trip.ScheduleByID(id)
		if entry == nil {
			return domain.ErrNotFound
		}
		if !entry.IsDeleted {
			return fmt.Errorf("%w: schedule is not deleted", domain.ErrValidation)
		}
		entry.IsDeleted = false
		entry.DeletedAt = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.ScheduleService.Restore: %w", err)
	}
	return nil
}

// HardDelete removes an entry from the collection outright, regardless of
// its deletion state.
func (s *ScheduleService) HardDelete(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		if trip.ScheduleByID(id) == nil {
			return domain.ErrNotFound
		}
		removeSchedule(trip, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.ScheduleService.HardDelete: %w", err)
	}
	return nil
}

func (s *ScheduleService) buildSchedule(id string, in ScheduleInput, trip *domain.Trip) domain.Schedule {
	now := s.now()
	locationID := in.Location
	if in.NewLocation != nil && strings.TrimSpace(in.NewLocation.Name) != "" {
		loc := buildLocation(s.store.GenerateID(), *in.NewLocation, now)
		trip.Locations = append(trip.Locations, loc)
		locationID = loc.ID
	}
	return domain.Schedule{
		ID:          id,
		Title:       in.Title,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Category:    in.Category,
		Location:    locationID,
		Description: in.Description,
		UpdatedAt:   now,
	}
}

func (s *ScheduleService) today() string {
	return s.now().In(jst).Format("2006-01-02")
}

func removeSchedule(trip *domain.Trip, id string) {
	kept := trip.Schedules[:0]
	for _, e := range trip.Schedules {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	trip.Schedules = kept
}

// sortForDisplay orders entries by finished-after-unfinished, then ascending
// date string, then ascending start time. An entry is finished when its date
// is strictly before today.
func sortForDisplay(entries []domain.Schedule, today string) {
	finished := func(e domain.Schedule) int {
		if e.Date != "" && e.Date < today {
			return 1
		}
		return 0
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if f1, f2 := finished(entries[i]), finished(entries[j]); f1 != f2 {
			return f1 < f2
		}
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].StartTime < entries[j].StartTime
	})
}

func validateSchedule(in ScheduleInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Date == "" {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}

// FormatTimeRange renders a start/end pair for display. Both absent means
// the time is undetermined; an end without a start reads as open-ended-until.
func FormatTimeRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "未定"
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return "〜" + end
	}
}

// TimeDraft tracks the start/end time pair during one editing session and
// owns the auto-fill rule: the end time mirrors the start time until the
// user edits the end time directly, after which mirroring stops for the
// session. A new session starts with a fresh TimeDraft.
type TimeDraft struct {
	Start string
	End   string

	endEdited bool
}

// SetStart records a start time, mirroring it into the end time while the
// end time has not been manually edited.
func (d *TimeDraft) SetStart(t string) {
	d.Start = t
	if t != "" && !d.endEdited {
		d.End = t
	}
}

// SetEnd records a manual end-time edit and stops mirroring.
func (d *TimeDraft) SetEnd(t string) {
	d.End = t
	d.endEdited = true
}
