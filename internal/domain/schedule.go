package domain

import "time"

// Schedule is a dated, optionally timed planned event.
//
// Date is a required "2006-01-02" string; StartTime and EndTime are "15:04"
// strings where empty means "undetermined". Location holds a weak reference
// to a Location id — deleting that location clears the reference, it never
// deletes the schedule. Category refers to a per-trip category definition and
// may be stale after the definition is edited away.
//
// IsDeleted marks a soft-deleted entry: hidden from normal listings, still
// restorable. DeletedAt is present only while IsDeleted is set.
type Schedule struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	IsDeleted   bool       `json:"isDeleted,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
