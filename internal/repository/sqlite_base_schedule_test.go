package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/protocol/internal/domain"
	"github.com/alexanderramin/protocol/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseScheduleRepo_GetNotFound(t *testing.T) {
	repo := NewSQLiteBaseScheduleRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBaseScheduleRepo_SaveAndGet(t *testing.T) {
	repo := NewSQLiteBaseScheduleRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.DefaultSchedule()
	s.UpdatedAt = time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, "u1", &s))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, s.Tasks, got.Tasks)
	assert.True(t, s.UpdatedAt.Equal(got.UpdatedAt))
}

func TestBaseScheduleRepo_SaveDefaultsUpdatedAt(t *testing.T) {
	repo := NewSQLiteBaseScheduleRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	s := testutil.DefaultSchedule()
	require.NoError(t, repo.Save(ctx, "u1", &s))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(before.Truncate(time.Second)))
}

func TestBaseScheduleRepo_SaveReplacesTasks(t *testing.T) {
	repo := NewSQLiteBaseScheduleRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.DefaultSchedule()
	require.NoError(t, repo.Save(ctx, "u1", &first))

	second := testutil.NewTestSchedule([3]string{"Walk", "18:00", "18:45"})
	require.NoError(t, repo.Save(ctx, "u1", &second))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, domain.TaskTemplate{Label: "Walk", Start: "18:00", End: "18:45", Duration: 45}, got.Tasks[0])
}

func TestBaseScheduleRepo_EmptySchedule(t *testing.T) {
	repo := NewSQLiteBaseScheduleRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	empty := domain.BaseSchedule{}
	require.NoError(t, repo.Save(ctx, "u1", &empty))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, got.Tasks)
	assert.Empty(t, got.Tasks)
}
