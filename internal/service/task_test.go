package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/service"
)

func TestTaskService_Create_DefaultsPriorityToMedium(t *testing.T) {
	svc := service.NewTaskService(newStore(t))

	created, err := svc.Create(service.TaskInput{Title: "パスポート確認"})

	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.False(t, created.Completed)
}

func TestTaskService_Create_UnknownPriority(t *testing.T) {
	svc := service.NewTaskService(newStore(t))

	_, err := svc.Create(service.TaskInput{Title: "予約", Priority: "urgent"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_List_DisplayOrder(t *testing.T) {
	svc := service.NewTaskService(newStore(t))

	done, err := svc.Create(service.TaskInput{Title: "済み", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	_, err = svc.Toggle(done.ID)
	require.NoError(t, err)
	_, err = svc.Create(service.TaskInput{Title: "低", Priority: domain.PriorityLow})
	require.NoError(t, err)
	_, err = svc.Create(service.TaskInput{Title: "高・後日", Priority: domain.PriorityHigh, DueDate: "2024-06-02"})
	require.NoError(t, err)
	_, err = svc.Create(service.TaskInput{Title: "高・先", Priority: domain.PriorityHigh, DueDate: "2024-06-01"})
	require.NoError(t, err)

	tasks, err := svc.List()
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.Equal(t, "高・先", tasks[0].Title)
	assert.Equal(t, "高・後日", tasks[1].Title)
	assert.Equal(t, "低", tasks[2].Title)
	assert.Equal(t, "済み", tasks[3].Title) // completed sinks to the bottom
}

func TestTaskService_Toggle(t *testing.T) {
	svc := service.NewTaskService(newStore(t))
	created, err := svc.Create(service.TaskInput{Title: "充電器"})
	require.NoError(t, err)

	toggled, err := svc.Toggle(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.Toggle(created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = svc.Toggle("no-such-task")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_Update_PreservesCompletion(t *testing.T) {
	svc := service.NewTaskService(newStore(t))
	created, err := svc.Create(service.TaskInput{Title: "薬"})
	require.NoError(t, err)
	_, err = svc.Toggle(created.ID)
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, service.TaskInput{Title: "常備薬", Priority: domain.PriorityLow})

	require.NoError(t, err)
	assert.Equal(t, "常備薬", updated.Title)
	assert.True(t, updated.Completed)
}

func TestTaskService_Delete(t *testing.T) {
	svc := service.NewTaskService(newStore(t))
	created, err := svc.Create(service.TaskInput{Title: "保険証"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	tasks, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	assert.ErrorIs(t, svc.Delete(created.ID), domain.ErrNotFound)
}
