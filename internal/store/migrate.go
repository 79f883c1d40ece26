package store

import (
	"time"

	"github.com/knorii/tabiplan/internal/domain"
)

// Migration operates on the raw JSON object, not the typed document, so data
// in older documents that this application does not enumerate survives the
// rewrite. The chain is idempotent: a document already at the current version
// passes through untouched.
//
// Version detection is structural for the two pre-versioned shapes:
//
//	no "trips" field          → 0 (legacy single-trip document)
//	"trips", no schemaVersion → 1
//	schemaVersion stamp       → that version

// Migrate applies every pending migration step to raw and returns the result
// together with whether anything changed. Callers persist the migrated object
// when changed is true.
func Migrate(raw map[string]any, now time.Time) (map[string]any, bool) {
	changed := false
	for v := detectVersion(raw); v < domain.SchemaVersion; v = detectVersion(raw) {
		switch v {
		case 0:
			raw = migrateSingleTrip(raw, now)
		case 1:
			migrateStampVersion(raw)
		}
		changed = true
	}
	return raw, changed
}

func detectVersion(raw map[string]any) int {
	if _, ok := raw["trips"]; !ok {
		return 0
	}
	if v, ok := raw["schemaVersion"].(float64); ok {
		return int(v)
	}
	return 1
}

// migrateSingleTrip wraps a legacy single-trip document into the multi-trip
// shape. The legacy object becomes the one trip, copied structurally with
// defaults filled in for the fields the trip shape requires.
func migrateSingleTrip(raw map[string]any, now time.Time) map[string]any {
	trip := make(map[string]any, len(raw))
	for k, v := range raw {
		trip[k] = v
	}

	defaultString(trip, "id", defaultTripID)
	defaultString(trip, "name", "メイン旅行")
	ensureString(trip, "startDate")
	ensureString(trip, "endDate")
	ensureString(trip, "notes")
	ensureString(trip, "globalNotes")
	ensureSlice(trip, "schedules")
	ensureSlice(trip, "locations")
	ensureSlice(trip, "expenses")
	ensureSlice(trip, "tasks")
	if trip["users"] == nil {
		trip["users"] = []any{map[string]any{
			"id":    domain.BootstrapUserID,
			"name":  "自分",
			"color": domain.DefaultUserColor,
		}}
	}
	if trip["updatedAt"] == nil {
		trip["updatedAt"] = now.Format(time.RFC3339Nano)
	}

	updatedAt, ok := raw["updatedAt"]
	if !ok {
		updatedAt = now.Format(time.RFC3339Nano)
	}
	return map[string]any{
		"trips":         []any{trip},
		"currentTripId": trip["id"],
		"updatedAt":     updatedAt,
	}
}

// migrateStampVersion brings a pre-versioned multi-trip document to the
// current version: derive currentTripId from the first trip when absent,
// then stamp schemaVersion.
func migrateStampVersion(raw map[string]any) {
	cur, _ := raw["currentTripId"].(string)
	if cur == "" {
		if trips, ok := raw["trips"].([]any); ok && len(trips) > 0 {
			if first, ok := trips[0].(map[string]any); ok {
				raw["currentTripId"] = first["id"]
			}
		}
	}
	raw["schemaVersion"] = domain.SchemaVersion
}

// defaultString sets m[k] to def when the value is missing, not a string, or
// empty.
func defaultString(m map[string]any, k, def string) {
	if v, ok := m[k].(string); !ok || v == "" {
		m[k] = def
	}
}

// ensureString sets m[k] to "" when the value is missing or not a string.
func ensureString(m map[string]any, k string) {
	if _, ok := m[k].(string); !ok {
		m[k] = ""
	}
}

// ensureSlice sets m[k] to an empty list when the value is missing or not a
// list.
func ensureSlice(m map[string]any, k string) {
	if _, ok := m[k].([]any); !ok {
		m[k] = []any{}
	}
}
