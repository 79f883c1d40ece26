package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// ExpenseService implements CRUD over the current trip's shared expenses and
// the settlement engine.
type ExpenseService struct {
	store DocumentStore
	now   func() time.Time
}

// NewExpenseService constructs an ExpenseService backed by the provided store.
func NewExpenseService(store DocumentStore) *ExpenseService {
	return &ExpenseService{store: store, now: time.Now}
}

// ExpenseInput carries the editable fields of an expense.
// Amount is in the smallest currency unit.
type ExpenseInput struct {
	Title    string
	Amount   int
	Date     string
	PaidBy   string
	Category string
	Notes    string
}

// List returns the current trip's expenses, most recent date first.
// Empty when there is no current trip.
func (s *ExpenseService) List() ([]domain.Expense, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil {
		return []domain.Expense{}, nil
	}
	expenses := make([]domain.Expense, len(trip.Expenses))
	copy(expenses, trip.Expenses)
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})
	return expenses, nil
}

// Create validates and appends a new expense to the current trip.
func (s *ExpenseService) Create(in ExpenseInput) (domain.Expense, error) {
	if err := validateExpense(in); err != nil {
		return domain.Expense{}, err
	}
	var created domain.Expense
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		created = buildExpense(s.store.GenerateID(), in, s.now())
		trip.Expenses = append(trip.Expenses, created)
		return nil
	})
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return created, nil
}

// Update replaces an existing expense's fields by id.
// Returns domain.ErrNotFound when the id does not resolve.
func (s *ExpenseService) Update(id string, in ExpenseInput) (domain.Expense, error) {
	if err := validateExpense(in); err != nil {
		return domain.Expense{}, err
	}
	var updated domain.Expense
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		for i := range trip.Expenses {
			if trip.Expenses[i].ID == id {
				trip.Expenses[i] = buildExpense(id, in, s.now())
				updated = trip.Expenses[i]
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an expense by id.
func (s *ExpenseService) Delete(id string) error {
	_, err := s.store.Mutate(func(doc *domain.Document) error {
		trip, _ := doc.CurrentTrip()
		if trip == nil {
			return domain.ErrNotFound
		}
		kept := trip.Expenses[:0]
		found := false
		for _, e := range trip.Expenses {
			if e.ID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return domain.ErrNotFound
		}
		trip.Expenses = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// Settlement computes the equal-split position of every participant on the
// current trip. Returns nil when the trip has one participant or fewer —
// there is nothing to settle.
//
// perPerson is the floored equal share of the total; the division remainder
// is absorbed, not redistributed. Each line is the gross difference between
// what the user paid and the equal share: positive means the user is owed
// money. No netting into a minimal transaction set is attempted.
func (s *ExpenseService) Settlement() (*domain.Settlement, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.Settlement: %w", err)
	}
	trip, _ := doc.CurrentTrip()
	if trip == nil || len(trip.Users) <= 1 {
		return nil, nil
	}

	total := 0
	paid := map[string]int{}
	for _, e := range trip.Expenses {
		total += e.Amount
		paid[e.PaidBy] += e.Amount
	}
	perPerson := total / len(trip.Users)

	lines := make([]domain.SettlementLine, 0, len(trip.Users))
	for _, u := range trip.Users {
		lines = append(lines, domain.SettlementLine{
			UserID:   u.ID,
			UserName: u.Name,
			Balance:  paid[u.ID] - perPerson,
		})
	}
	return &domain.Settlement{Total: total, PerPerson: perPerson, Lines: lines}, nil
}

func buildExpense(id string, in ExpenseInput, now time.Time) domain.Expense {
	return domain.Expense{
		ID:        id,
		Title:     in.Title,
		Amount:    in.Amount,
		Date:      in.Date,
		PaidBy:    in.PaidBy,
		Category:  in.Category,
		Notes:     in.Notes,
		UpdatedAt: now,
	}
}

func validateExpense(in ExpenseInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if in.Date == "" {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
