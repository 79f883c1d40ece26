package domain

import "time"

// BootstrapUserID is the id of the user every trip starts with. The normal
// delete affordance is hidden for it in the UI, but the data model does not
// enforce that — a hand-edited document may remove it.
const BootstrapUserID = "u1"

// DefaultUserColor is the display color assigned when none is chosen.
const DefaultUserColor = "#3498db"

// User is a named trip participant. Color is a display color in "#rrggbb"
// form. Users are referenced weakly by expenses (PaidBy) and tasks
// (AssignedTo); deleting a user leaves those references dangling and the
// display falls back to an "unknown" label.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joinedAt"`
}

// BootstrapUser returns the "self" participant present in every new trip.
func BootstrapUser(now time.Time) User {
	return User{ID: BootstrapUserID, Name: "自分", Color: DefaultUserColor, JoinedAt: now}
}
