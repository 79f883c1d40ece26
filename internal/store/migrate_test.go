package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/store"
)

// legacyDocument is the pre-multi-trip shape: the trip fields live at the
// top level and there is no "trips" array.
const legacyDocument = `{
	"id": "my-trip",
	"name": "北海道旅行",
	"startDate": "2024-05-01",
	"endDate": "2024-05-05",
	"notes": "レンタカー予約済み",
	"schedules": [{"id": "s1", "title": "朝市", "date": "2024-05-02",
		"startTime": "", "endTime": "", "category": "", "location": "",
		"description": "", "updatedAt": "2024-04-01T00:00:00.000Z"}],
	"locations": [],
	"expenses": [],
	"tasks": [],
	"users": [{"id": "u1", "name": "自分", "color": "#3498db"}],
	"globalNotes": "",
	"updatedAt": "2024-04-01T00:00:00.000Z"
}`

func TestLoad_LegacyDocument_MigratesToMultiTrip(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte(legacyDocument))

	doc, err := s.Load()

	require.NoError(t, err)
	require.Len(t, doc.Trips, 1)
	assert.Equal(t, "my-trip", doc.Trips[0].ID)
	assert.Equal(t, "my-trip", doc.CurrentTripID)
	assert.Equal(t, "北海道旅行", doc.Trips[0].Name)
	assert.Equal(t, domain.SchemaVersion, doc.SchemaVersion)

	// Nothing from the legacy shape may be lost.
	require.Len(t, doc.Trips[0].Schedules, 1)
	assert.Equal(t, "朝市", doc.Trips[0].Schedules[0].Title)
	require.Len(t, doc.Trips[0].Users, 1)
}

func TestLoad_LegacyDocument_MigrationIsIdempotent(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte(legacyDocument))

	first, err := s.Load()
	require.NoError(t, err)

	second, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoad_LegacyDocument_MinimalFieldsGetDefaults(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte(`{"name": ""}`))

	doc, err := s.Load()

	require.NoError(t, err)
	require.Len(t, doc.Trips, 1)
	assert.Equal(t, "trip-default", doc.Trips[0].ID)
	assert.Equal(t, "メイン旅行", doc.Trips[0].Name)
	require.Len(t, doc.Trips[0].Users, 1)
	assert.Equal(t, domain.BootstrapUserID, doc.Trips[0].Users[0].ID)
}

func TestLoad_LegacyDocument_UnknownFieldsSurviveOnDisk(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte(`{"name": "旅行", "theme": "dark", "updatedAt": "2024-04-01T00:00:00.000Z"}`))

	_, err := s.Load()
	require.NoError(t, err)

	// The migrated blob on disk must still carry the field this application
	// does not enumerate.
	b, err := os.ReadFile(filepath.Join(dir, "document"))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	trips := raw["trips"].([]any)
	trip := trips[0].(map[string]any)
	assert.Equal(t, "dark", trip["theme"])
}

func TestSave_AfterMigration_DropsUnknownFields(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte(`{"name": "旅行", "theme": "dark", "updatedAt": "2024-04-01T00:00:00.000Z"}`))

	doc, err := s.Load()
	require.NoError(t, err)

	// Preservation is bounded: Save marshals the typed document, so the first
	// write after migration sheds fields this application does not enumerate.
	require.NoError(t, s.Save(doc))

	b, err := os.ReadFile(filepath.Join(dir, "document"))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	trips := raw["trips"].([]any)
	trip := trips[0].(map[string]any)
	assert.NotContains(t, trip, "theme")
}

func TestLoad_MultiTripWithoutCurrentTripID_PointsAtFirstTrip(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte(`{
		"trips": [
			{"id": "a", "name": "A", "schedules": [], "locations": [], "expenses": [],
			 "tasks": [], "users": [], "startDate": "", "endDate": "", "notes": "", "globalNotes": ""},
			{"id": "b", "name": "B", "schedules": [], "locations": [], "expenses": [],
			 "tasks": [], "users": [], "startDate": "", "endDate": "", "notes": "", "globalNotes": ""}
		],
		"updatedAt": "2024-04-01T00:00:00.000Z"
	}`))

	doc, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, "a", doc.CurrentTripID)
	assert.Equal(t, domain.SchemaVersion, doc.SchemaVersion)
}

func TestMigrate_CurrentVersion_NoChange(t *testing.T) {
	raw := map[string]any{
		"schemaVersion": float64(domain.SchemaVersion),
		"trips":         []any{},
		"currentTripId": "",
	}

	_, changed := store.Migrate(raw, time.Now())

	assert.False(t, changed)
}
