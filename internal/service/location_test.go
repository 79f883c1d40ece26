package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/service"
)

func TestLocationService_CreateAndList(t *testing.T) {
	svc := service.NewLocationService(newStore(t))

	created, err := svc.Create(service.LocationInput{
		Name:          "伏見稲荷大社",
		Address:       "京都市伏見区",
		BusinessHours: "終日",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	locations, err := svc.List()
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "伏見稲荷大社", locations[0].Name)
}

func TestLocationService_Create_NameRequired(t *testing.T) {
	svc := service.NewLocationService(newStore(t))

	_, err := svc.Create(service.LocationInput{Address: "どこか"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLocationService_Update_UnknownID(t *testing.T) {
	svc := service.NewLocationService(newStore(t))

	_, err := svc.Update("no-such-location", service.LocationInput{Name: "x"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationService_Delete_ClearsScheduleReferences(t *testing.T) {
	st := newStore(t)
	locations := service.NewLocationService(st)
	schedules := service.NewScheduleService(st)

	loc, err := locations.Create(service.LocationInput{Name: "清水寺"})
	require.NoError(t, err)
	other, err := locations.Create(service.LocationInput{Name: "嵐山"})
	require.NoError(t, err)

	// Two entries point at the doomed location, one at the survivor.
	_, err = schedules.Create(service.ScheduleInput{Title: "参拝", Date: "2099-05-01", Location: loc.ID})
	require.NoError(t, err)
	_, err = schedules.Create(service.ScheduleInput{Title: "夜景", Date: "2099-05-02", Location: loc.ID})
	require.NoError(t, err)
	keep, err := schedules.Create(service.ScheduleInput{Title: "竹林", Date: "2099-05-03", Location: other.ID})
	require.NoError(t, err)

	require.NoError(t, locations.Delete(loc.ID))

	entries, err := schedules.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		if e.ID == keep.ID {
			assert.Equal(t, other.ID, e.Location)
		} else {
			assert.Empty(t, e.Location)
		}
	}

	remaining, err := locations.List()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)
}

func TestLocationService_Delete_UnknownID(t *testing.T) {
	svc := service.NewLocationService(newStore(t))

	assert.ErrorIs(t, svc.Delete("no-such-location"), domain.ErrNotFound)
}
