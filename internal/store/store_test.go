package store_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/store"
)

// newStore returns a Store rooted in a fresh temp directory.
func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	return store.New(dir), dir
}

// seedRaw writes raw JSON bytes directly under the document key, bypassing
// the store, to simulate a pre-existing persisted document.
func seedRaw(t *testing.T, dir string, b []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "document"), b, 0o644))
}

// ---- Load ------------------------------------------------------------------

func TestLoad_FreshStore_SynthesizesDefaultDocument(t *testing.T) {
	s, _ := newStore(t)

	doc, err := s.Load()

	require.NoError(t, err)
	require.Len(t, doc.Trips, 1)
	assert.Equal(t, "メイン旅行", doc.Trips[0].Name)
	assert.Equal(t, doc.Trips[0].ID, doc.CurrentTripID)
	assert.Equal(t, domain.SchemaVersion, doc.SchemaVersion)

	// The bootstrap user must be present and every collection empty.
	require.Len(t, doc.Trips[0].Users, 1)
	assert.Equal(t, domain.BootstrapUserID, doc.Trips[0].Users[0].ID)
	assert.Empty(t, doc.Trips[0].Schedules)
	assert.Empty(t, doc.Trips[0].Expenses)
}

func TestLoad_FreshStore_PersistsTheDefault(t *testing.T) {
	s, _ := newStore(t)

	first, err := s.Load()
	require.NoError(t, err)

	second, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoad_CorruptJSON_Fatal(t *testing.T) {
	s, dir := newStore(t)
	seedRaw(t, dir, []byte("{not json"))

	_, err := s.Load()

	assert.ErrorIs(t, err, domain.ErrCorruptDocument)
}

// ---- Save round trip -------------------------------------------------------

func TestSave_RoundTrip_EqualExceptUpdatedAt(t *testing.T) {
	s, _ := newStore(t)

	doc, err := s.Load()
	require.NoError(t, err)
	doc.Trips[0].GlobalNotes = "持ち物: パスポート"

	require.NoError(t, s.Save(doc))

	got, err := s.Load()
	require.NoError(t, err)

	// The save stamps a fresh UpdatedAt; everything else must survive intact.
	assert.True(t, got.UpdatedAt.After(doc.UpdatedAt) || got.UpdatedAt.Equal(doc.UpdatedAt))
	got.UpdatedAt = doc.UpdatedAt
	assert.Equal(t, doc, got)
}

// ---- Subscribe -------------------------------------------------------------

func TestSubscribe_NotifiedSynchronouslyOnSave(t *testing.T) {
	s, _ := newStore(t)
	doc, err := s.Load()
	require.NoError(t, err)

	var got []domain.Document
	unsubscribe := s.Subscribe(func(d domain.Document) { got = append(got, d) })
	defer unsubscribe()

	require.NoError(t, s.Save(doc))

	// Save returns only after the listener ran.
	require.Len(t, got, 1)
	assert.Equal(t, doc.CurrentTripID, got[0].CurrentTripID)
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	s, _ := newStore(t)
	doc, err := s.Load()
	require.NoError(t, err)

	calls := 0
	unsubscribe := s.Subscribe(func(domain.Document) { calls++ })
	unsubscribe()

	require.NoError(t, s.Save(doc))
	assert.Zero(t, calls)
}

// ---- Mutate ----------------------------------------------------------------

func TestMutate_AppliesAndPersists(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Load()
	require.NoError(t, err)

	_, err = s.Mutate(func(doc *domain.Document) error {
		doc.Trips[0].Name = "大阪旅行"
		return nil
	})
	require.NoError(t, err)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "大阪旅行", got.Trips[0].Name)
}

func TestMutate_ErrorWritesNothing(t *testing.T) {
	s, _ := newStore(t)
	before, err := s.Load()
	require.NoError(t, err)

	sentinel := errors.New("boom")
	_, err = s.Mutate(func(doc *domain.Document) error {
		doc.Trips[0].Name = "must not persist"
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	after, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// ---- Reset -----------------------------------------------------------------

func TestReset_NextLoadSynthesizesDefault(t *testing.T) {
	s, _ := newStore(t)
	doc, err := s.Load()
	require.NoError(t, err)
	doc.Trips[0].Name = "消える旅行"
	require.NoError(t, s.Save(doc))

	require.NoError(t, s.Reset())

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Trips, 1)
	assert.Equal(t, "メイン旅行", got.Trips[0].Name)
}

func TestReset_EmptyStore_NoError(t *testing.T) {
	s, _ := newStore(t)
	assert.NoError(t, s.Reset())
}

// ---- GenerateID ------------------------------------------------------------

func TestGenerateID_Unique(t *testing.T) {
	s, _ := newStore(t)
	assert.NotEqual(t, s.GenerateID(), s.GenerateID())
}

// ---- Export / Import -------------------------------------------------------

func TestExport_DatedFilenameAndPrettyJSON(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Load()
	require.NoError(t, err)

	name, data, err := s.Export()

	require.NoError(t, err)
	assert.Regexp(t, `^travel_schedule_\d{4}-\d{2}-\d{2}\.json$`, name)
	assert.Contains(t, string(data), "\n  ") // pretty-printed

	var doc domain.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Trips, 1)
}

func TestImport_ReplacesPersistedState(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Load()
	require.NoError(t, err)

	payload := []byte(`{
		"trips": [{"id": "t-osaka", "name": "大阪", "schedules": [], "locations": [],
			"expenses": [], "tasks": [], "users": [], "startDate": "", "endDate": "",
			"notes": "", "globalNotes": ""}],
		"currentTripId": "t-osaka"
	}`)
	doc, err := s.Import(payload)

	require.NoError(t, err)
	assert.Equal(t, "t-osaka", doc.CurrentTripID)

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Trips, 1)
	assert.Equal(t, "大阪", got.Trips[0].Name)
}

func TestImport_MissingCurrentTripID_ResolvesToFirstTrip(t *testing.T) {
	s, _ := newStore(t)

	payload := []byte(`{
		"trips": [{"id": "t1", "name": "一つ目", "schedules": [], "locations": [],
			"expenses": [], "tasks": [], "users": [], "startDate": "", "endDate": "",
			"notes": "", "globalNotes": ""}]
	}`)
	doc, err := s.Import(payload)

	require.NoError(t, err)
	assert.Equal(t, "t1", doc.CurrentTripID)
}

func TestImport_InvalidJSON_LeavesStateUntouched(t *testing.T) {
	s, _ := newStore(t)
	before, err := s.Load()
	require.NoError(t, err)

	_, err = s.Import([]byte("not json at all"))
	assert.ErrorIs(t, err, domain.ErrCorruptDocument)

	after, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
