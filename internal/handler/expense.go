package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/service"
)

// expenseRequest is the body of POST /expenses and PUT /expenses/{id}.
// amount is in the smallest currency unit.
type expenseRequest struct {
	Title    string `json:"title"`
	Amount   int    `json:"amount"`
	Date     string `json:"date"`
	PaidBy   string `json:"paidBy"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

func (req expenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
		PaidBy:   req.PaidBy,
		Category: req.Category,
		Notes:    req.Notes,
	}
}

// expenseResponse decorates an expense with the display label of its category
// code, saving clients the code→label lookup the expense list renders with.
type expenseResponse struct {
	domain.Expense
	CategoryLabel string `json:"categoryLabel"`
}

func toExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{Expense: e, CategoryLabel: domain.ExpenseCategoryLabel(e.Category)}
}

// ListExpenses handles GET /expenses, most recent date first.
func (s *Server) ListExpenses(w http.ResponseWriter, _ *http.Request) {
	expenses, err := s.expenses.List()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateExpense handles POST /expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	created, err := s.expenses.Create(req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(created))
}

// UpdateExpense handles PUT /expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	updated, err := s.expenses.Update(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(updated))
}

// DeleteExpense handles DELETE /expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettlement handles GET /expenses/settlement. With one participant or
// fewer there is nothing to settle and the body is null.
func (s *Server) GetSettlement(w http.ResponseWriter, _ *http.Request) {
	settlement, err := s.expenses.Settlement()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}
