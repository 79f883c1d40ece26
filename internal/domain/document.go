// Package domain contains the core data types for the tabiplan application.
// This package has zero external dependencies and is imported by every other
// internal package (store, service, handler).
package domain

import "time"

// SchemaVersion is the current shape of the persisted document.
// Version history:
//
//	0 — legacy single-trip document (no "trips" field)
//	1 — multi-trip document without a schemaVersion stamp
//	2 — multi-trip document with schemaVersion and a guaranteed currentTripId
const SchemaVersion = 2

// Document is the single persisted unit of state. Everything the application
// knows — every trip and all of its collections — lives inside one Document,
// serialized as one JSON blob. There is no partial write: every save replaces
// the whole document.
type Document struct {
	SchemaVersion int       `json:"schemaVersion"`
	Trips         []Trip    `json:"trips"`
	CurrentTripID string    `json:"currentTripId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CurrentTrip resolves CurrentTripID against Trips. When the pointer is stale
// or unset it falls back to the first trip. The second return value reports
// whether the pointer had to be corrected; callers that hold a loaded document
// should persist it when true. Returns nil only when Trips is empty.
func (d *Document) CurrentTrip() (*Trip, bool) {
	if len(d.Trips) == 0 {
		return nil, false
	}
	for i := range d.Trips {
		if d.Trips[i].ID == d.CurrentTripID {
			return &d.Trips[i], false
		}
	}
	d.CurrentTripID = d.Trips[0].ID
	return &d.Trips[0], true
}

// TripByID returns a pointer into Trips, or nil when no trip has that id.
func (d *Document) TripByID(id string) *Trip {
	for i := range d.Trips {
		if d.Trips[i].ID == id {
			return &d.Trips[i]
		}
	}
	return nil
}
