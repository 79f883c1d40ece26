package domain

import "time"

// Location is a point of interest belonging to a trip.
// Schedules reference locations weakly by id.
type Location struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	BusinessHours string    `json:"businessHours"`
	Website       string    `json:"website"`
	Image         string    `json:"image"`
	Notes         string    `json:"notes"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
