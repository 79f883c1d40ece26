package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/service"
)

func TestUserService_List_StartsWithBootstrapUser(t *testing.T) {
	svc := service.NewUserService(newStore(t))

	users, err := svc.List()

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.BootstrapUserID, users[0].ID)
	assert.Equal(t, "自分", users[0].Name)
	assert.Equal(t, domain.DefaultUserColor, users[0].Color)
}

func TestUserService_Create_DefaultsColor(t *testing.T) {
	svc := service.NewUserService(newStore(t))

	created, err := svc.Create(service.UserInput{Name: "友人"})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUserColor, created.Color)
	assert.False(t, created.JoinedAt.IsZero())
}

func TestUserService_Create_NameRequired(t *testing.T) {
	svc := service.NewUserService(newStore(t))

	_, err := svc.Create(service.UserInput{Name: "  "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_Update_PreservesJoinedAt(t *testing.T) {
	svc := service.NewUserService(newStore(t))
	created, err := svc.Create(service.UserInput{Name: "友人", Color: "#e74c3c"})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, service.UserInput{Name: "親友", Color: "#2ecc71"})

	require.NoError(t, err)
	assert.Equal(t, "親友", updated.Name)
	assert.Equal(t, "#2ecc71", updated.Color)
	assert.Equal(t, created.JoinedAt.Unix(), updated.JoinedAt.Unix())
}

func TestUserService_Delete_BootstrapUserAllowed(t *testing.T) {
	svc := service.NewUserService(newStore(t))

	require.NoError(t, svc.Delete(domain.BootstrapUserID))

	users, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserService_Delete_UnknownID(t *testing.T) {
	svc := service.NewUserService(newStore(t))

	assert.ErrorIs(t, svc.Delete("no-such-user"), domain.ErrNotFound)
}
