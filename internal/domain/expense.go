package domain

import "time"

// Expense is a shared cost paid by one participant on behalf of the group.
// Amount is in the smallest currency unit (whole yen) and never negative.
// PaidBy is a weak reference to a User id; the payer may have been deleted.
type Expense struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    int       `json:"amount"`
	Date      string    `json:"date"`
	PaidBy    string    `json:"paidBy"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settlement is the computed equal-split position of every participant.
// PerPerson is the floored equal share; the division remainder is absorbed,
// not redistributed. Lines carry one gross position per user, in trip user
// order — no netting into a minimal transaction set is attempted.
type Settlement struct {
	Total     int              `json:"total"`
	PerPerson int              `json:"perPerson"`
	Lines     []SettlementLine `json:"lines"`
}

// SettlementLine is one participant's position against the equal share.
// A positive Balance means the user is owed money; negative means they owe.
type SettlementLine struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Balance  int    `json:"balance"`
}
