package tracker

import (
	"context"
	"testing"

	"github.com/alexanderramin/protocol/internal/clock"
	"github.com/alexanderramin/protocol/internal/service"
	"github.com/alexanderramin/protocol/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SQLiteLifecycle(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()
	clk := clock.NewFixed(at(14, 8))

	schedules := service.NewScheduleService("u1", uow, clk)
	_, err := schedules.Save(ctx, testutil.DefaultSchedule().Tasks)
	require.NoError(t, err)

	persist := service.NewDailyStatePersistence("u1", uow)
	open := func() *Store {
		s := New(Deps{Persistence: persist, Clock: clk, NewID: testutil.SeqIDs("pen")})
		require.NoError(t, s.Open(ctx))
		return s
	}

	first := open()
	_, err = first.CompleteTask(ctx, key("Gym", "07:00"))
	require.NoError(t, err)
	_, err = first.PartialCompleteTask(ctx, key("Code", "09:00"), 120)
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	reopened := open()
	cur := reopened.Current()
	assert.True(t, cur.Tasks[0].Completed)
	assert.True(t, cur.Tasks[1].PartiallyCompleted)
	require.Len(t, cur.Penalties, 1)
	assert.Equal(t, 60, cur.Penalties[0].Duration)
	require.NoError(t, reopened.Close(ctx))

	clk.Set(at(15, 7))
	nextDay := open()
	defer nextDay.Close(ctx)
	cur = nextDay.Current()
	assert.Equal(t, clock.DayKey("2026-10-15"), cur.Date)
	require.Len(t, cur.Penalties, 2)
	assert.Equal(t, "Code", cur.Penalties[0].Label)
	assert.Equal(t, 60, cur.Penalties[0].Duration)
	assert.Equal(t, "Read", cur.Penalties[1].Label)
	assert.Equal(t, 60, cur.Penalties[1].Duration)
}
