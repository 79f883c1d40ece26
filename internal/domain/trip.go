package domain

import "time"

// DefaultTripName is the name given to a trip created without one.
const DefaultTripName = "新しい旅行"

// Trip is the top-level planning unit. A trip exclusively owns all of its
// collections; no schedule, location, expense, task or user is ever shared
// across trips.
//
// StartDate and EndDate are "2006-01-02" strings, empty when undecided.
// Settings is nil for trips created before per-trip categories existed;
// readers fall back to the default category lists.
type Trip struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	Notes         string            `json:"notes"`
	Settings      *Settings         `json:"settings,omitempty"`
	Schedules     []Schedule        `json:"schedules"`
	Locations     []Location        `json:"locations"`
	Expenses      []Expense         `json:"expenses"`
	Tasks         []Task            `json:"tasks"`
	Users         []User            `json:"users"`
	GlobalNotes   string            `json:"globalNotes"`
	DayHighlights map[string]string `json:"dayHighlights,omitempty"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// NewEmptyTrip builds a trip with the given id, empty collections and the
// bootstrap user. An empty name falls back to DefaultTripName.
func NewEmptyTrip(id, name string, now time.Time) Trip {
	if name == "" {
		name = DefaultTripName
	}
	return Trip{
		ID:        id,
		Name:      name,
		Schedules: []Schedule{},
		Locations: []Location{},
		Expenses:  []Expense{},
		Tasks:     []Task{},
		Users:     []User{BootstrapUser(now)},
		UpdatedAt: now,
	}
}

// ScheduleByID returns a pointer into Schedules, or nil when absent.
func (t *Trip) ScheduleByID(id string) *Schedule {
	for i := range t.Schedules {
		if t.Schedules[i].ID == id {
			return &t.Schedules[i]
		}
	}
	return nil
}

// UserByID returns a pointer into Users, or nil when absent.
func (t *Trip) UserByID(id string) *User {
	for i := range t.Users {
		if t.Users[i].ID == id {
			return &t.Users[i]
		}
	}
	return nil
}
