// Package handler implements the HTTP surface of the tabiplan API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (trip.go, schedule.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/service"
)

// The *Servicer interfaces define the business operations each handler file
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.

// TripServicer covers the trip directory, notes and day highlights.
type TripServicer interface {
	Current() (domain.Trip, error)
	List() ([]domain.Trip, error)
	SetCurrent(id string) error
	Create(name, startDate, endDate, notes string) (domain.Trip, error)
	Update(id string, upd service.TripUpdate) (domain.Trip, error)
	Delete(id string) error
	GlobalNotes() (string, error)
	UpdateGlobalNotes(text string) error
	DayHighlights() (map[string]string, error)
	SetDayHighlight(date, text string) error
}

// ScheduleServicer covers the schedule lifecycle.
type ScheduleServicer interface {
	List() ([]domain.Schedule, error)
	Deleted() ([]domain.Schedule, error)
	Days() ([]service.Day, error)
	Create(in service.ScheduleInput) (domain.Schedule, error)
	Update(id string, in service.ScheduleInput) (domain.Schedule, error)
	Delete(id string) (permanent bool, err error)
	Restore(id string) error
	HardDelete(id string) error
}

// LocationServicer covers the points-of-interest collection.
type LocationServicer interface {
	List() ([]domain.Location, error)
	Create(in service.LocationInput) (domain.Location, error)
	Update(id string, in service.LocationInput) (domain.Location, error)
	Delete(id string) error
}

// ExpenseServicer covers expenses and the settlement engine.
type ExpenseServicer interface {
	List() ([]domain.Expense, error)
	Create(in service.ExpenseInput) (domain.Expense, error)
	Update(id string, in service.ExpenseInput) (domain.Expense, error)
	Delete(id string) error
	Settlement() (*domain.Settlement, error)
}

// TaskServicer covers the checklist.
type TaskServicer interface {
	List() ([]domain.Task, error)
	Create(in service.TaskInput) (domain.Task, error)
	Update(id string, in service.TaskInput) (domain.Task, error)
	Toggle(id string) (domain.Task, error)
	Delete(id string) error
}

// UserServicer covers trip participants.
type UserServicer interface {
	List() ([]domain.User, error)
	Create(in service.UserInput) (domain.User, error)
	Update(id string, in service.UserInput) (domain.User, error)
	Delete(id string) error
}

// SettingsServicer covers per-trip category definitions.
type SettingsServicer interface {
	Categories(kind string) ([]domain.Category, error)
	Add(kind, label, color string) (domain.Category, error)
	Update(kind string, index int, label, color string) (domain.Category, error)
	Delete(kind string, index int) error
}

// DataStore covers whole-document operations: backup, restore, factory reset
// and change subscription for the event stream.
type DataStore interface {
	Export() (filename string, data []byte, err error)
	Import(data []byte) (domain.Document, error)
	Reset() error
	Subscribe(fn func(domain.Document)) (unsubscribe func())
}

// Server holds the dependencies shared by all handler methods.
type Server struct {
	trips     TripServicer
	schedules ScheduleServicer
	locations LocationServicer
	expenses  ExpenseServicer
	tasks     TaskServicer
	users     UserServicer
	settings  SettingsServicer
	data      DataStore
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	schedules ScheduleServicer,
	locations LocationServicer,
	expenses ExpenseServicer,
	tasks TaskServicer,
	users UserServicer,
	settings SettingsServicer,
	data DataStore,
) *Server {
	return &Server{
		trips:     trips,
		schedules: schedules,
		locations: locations,
		expenses:  expenses,
		tasks:     tasks,
		users:     users,
		settings:  settings,
		data:      data,
	}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Get("/trips", s.ListTrips)
	r.Post("/trips", s.CreateTrip)
	r.Get("/trips/current", s.GetCurrentTrip)
	r.Put("/trips/current", s.SetCurrentTrip)
	r.Put("/trips/{id}", s.UpdateTrip)
	r.Delete("/trips/{id}", s.DeleteTrip)

	r.Get("/schedules", s.ListSchedules)
	r.Get("/schedules/days", s.ListScheduleDays)
	r.Get("/schedules/deleted", s.ListDeletedSchedules)
	r.Post("/schedules", s.CreateSchedule)
	r.Put("/schedules/{id}", s.UpdateSchedule)
	r.Delete("/schedules/{id}", s.DeleteSchedule)
	r.Post("/schedules/{id}/restore", s.RestoreSchedule)
	r.Delete("/schedules/{id}/permanent", s.HardDeleteSchedule)

	r.Get("/locations", s.ListLocations)
	r.Post("/locations", s.CreateLocation)
	r.Put("/locations/{id}", s.UpdateLocation)
	r.Delete("/locations/{id}", s.DeleteLocation)

	r.Get("/expenses", s.ListExpenses)
	r.Get("/expenses/settlement", s.GetSettlement)
	r.Post("/expenses", s.CreateExpense)
	r.Put("/expenses/{id}", s.UpdateExpense)
	r.Delete("/expenses/{id}", s.DeleteExpense)

	r.Get("/tasks", s.ListTasks)
	r.Post("/tasks", s.CreateTask)
	r.Put("/tasks/{id}", s.UpdateTask)
	r.Post("/tasks/{id}/toggle", s.ToggleTask)
	r.Delete("/tasks/{id}", s.DeleteTask)

	r.Get("/users", s.ListUsers)
	r.Post("/users", s.CreateUser)
	r.Put("/users/{id}", s.UpdateUser)
	r.Delete("/users/{id}", s.DeleteUser)

	r.Get("/notes", s.GetNotes)
	r.Put("/notes", s.UpdateNotes)
	r.Get("/highlights", s.ListHighlights)
	r.Put("/highlights/{date}", s.SetHighlight)

	r.Get("/settings/categories", s.ListCategories)
	r.Post("/settings/categories/{kind}", s.AddCategory)
	r.Put("/settings/categories/{kind}/{index}", s.UpdateCategory)
	r.Delete("/settings/categories/{kind}/{index}", s.DeleteCategory)

	r.Get("/export", s.ExportDocument)
	r.Post("/import", s.ImportDocument)
	r.Post("/reset", s.ResetDocument)
	r.Get("/events", s.StreamEvents)

	return r
}
