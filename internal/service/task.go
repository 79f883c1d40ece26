package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// TaskService implements CRUD and completion toggling over the current
// trip's checklist.
type TaskService struct {
	store DocumentStore
	now   func() time.Time
}

// NewTaskService constructs a TaskService backed by the provided store.
func NewTaskService(store DocumentStore) *TaskService {
	return &TaskService{store: store, now: time.Now}
}

// TaskInput carries the editable fields of a task.
// An empty Priority defaults to medium.
type TaskInput struct {
	Title       string
	DueDate     string
	Priority    string
	AssignedTo  string
	Description string
}

// List returns the current trip's tasks in display order: incomplete before
// completed, then by priority (high first), then ascending due date.
// Empty when there is no current trip.
func (s *TaskService) List() ([]domain.Task, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.TaskService.List: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil {
		return []domain.Task{}, nil
	}
	tasks := make([]domain.Task, len(trip.Tasks))
	copy(tasks, trip.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		ri, rj := domain.PriorityRank(tasks[i].Priority), domain.PriorityRank(tasks[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return tasks[i].DueDate < tasks[j].DueDate
	})
	return tasks, nil
}

// Create validates and appends a new task to the current trip.
func (s *TaskService) Create(in TaskInput) (domain.Task, error) {
	if err := validateTask(&in); err != nil {
		return domain.Task{}, err
	}
	var created domain.Task
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		created = buildTask(s.store.GenerateID(), in, false, s.now())
		trip.Tasks = append(trip.Tasks, created)
		return nil
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Create: %w", err)
	}
	return created, nil
}

// Update replaces an existing task's fields by id, preserving its completion
// state. Returns domain.ErrNotFound when the id does not resolve.
func (s *TaskService) Update(id string, in TaskInput) (domain.Task, error) {
	if err := validateTask(&in); err != nil {
		return domain.Task{}, err
	}
	var updated domain.Task
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		for i := range trip.Tasks {
			if trip.Tasks[i].ID == id {
				trip.Tasks[i] = buildTask(id, in, trip.Tasks[i].Completed, s.now())
				updated = trip.Tasks[i]
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Update: %w", err)
	}
	return updated, nil
}

// Toggle flips a task's completion state and returns the updated task.
func (s *TaskService) Toggle(id string) (domain.Task, error) {
	var toggled domain.Task
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		for i := range trip.Tasks {
			if trip.Tasks[i].ID == id {
				trip.Tasks[i].Completed = !trip.Tasks[i].Completed
				trip.Tasks[i].UpdatedAt = s.now()
				toggled = trip.Tasks[i]
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Toggle: %w", err)
	}
	return toggled, nil
}

// Delete removes a task by id.
func (s *TaskService) Delete(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		kept := trip.Tasks[:0]
		found := false
		for _, t := range trip.Tasks {
			if t.ID == id {
				found = true
				continue
			}
			kept = append(kept, t)
		}
		if !found {
			return domain.ErrNotFound
		}
		trip.Tasks = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.TaskService.Delete: %w", err)
	}
	return nil
}

func buildTask(id string, in TaskInput, completed bool, now time.Time) domain.Task {
	return domain.Task{
		ID:          id,
		Title:       in.Title,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		AssignedTo:  in.AssignedTo,
		Description: in.Description,
		Completed:   completed,
		UpdatedAt:   now,
	}
}

func validateTask(in *TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	switch in.Priority {
	case "":
		in.Priority = domain.PriorityMedium
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
	default:
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, in.Priority)
	}
	return nil
}
