package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/repository"
	"github.com/alexanderramin/protocol/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyStatePersistence_EmptyState(t *testing.T) {
	p := NewDailyStatePersistence("u1", testutil.NewTestUoW(testutil.NewTestDB(t)))
	ctx := context.Background()

	rec, err := p.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	s, err := p.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Tasks)
}

func TestDailyStatePersistence_RoundTrip(t *testing.T) {
	p := NewDailyStatePersistence("u1", testutil.NewTestUoW(testutil.NewTestDB(t)))
	ctx := context.Background()

	rec := testutil.NewTestRecord("2026-10-14",
		[]domain.Task{testutil.NewTestTask("Gym", "07:00", "08:00")},
		[]domain.Penalty{testutil.NewTestPenalty("Read", 30)},
	)
	require.NoError(t, p.SaveRecord(ctx, *rec))

	got, err := p.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	tasks := append([]domain.Task(nil), rec.Tasks...)
	tasks[0].Completed = true
	require.NoError(t, p.SaveTasks(ctx, tasks))
	require.NoError(t, p.SavePenalties(ctx, []domain.Penalty{}))

	got, err = p.LoadRecord(ctx)
	require.NoError(t, err)
	assert.True(t, got.Tasks[0].Completed)
	assert.Empty(t, got.Penalties)
}

func TestDailyStatePersistence_PartialSaveWithoutRecord(t *testing.T) {
	p := NewDailyStatePersistence("u1", testutil.NewTestUoW(testutil.NewTestDB(t)))

	err := p.SavePenalties(context.Background(), []domain.Penalty{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDailyStatePersistence_ReadsScheduleOfSameUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	_, err := NewScheduleService("alice", uow, nil).Save(ctx, testutil.DefaultSchedule().Tasks)
	require.NoError(t, err)

	alice, err := NewDailyStatePersistence("alice", uow).LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Len(t, alice.Tasks, 3)

	bob, err := NewDailyStatePersistence("bob", uow).LoadSchedule(ctx)
	require.NoError(t, err)
	assert.Empty(t, bob.Tasks)
}
