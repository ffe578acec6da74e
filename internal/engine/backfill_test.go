package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyroll/dailyroll/internal/models"
)

func TestBackfillThreeSkippedDays(t *testing.T) {
	env := newTestEnv(t)

	// A daily habit last due three days ago, then nothing happened
	env.dailyHabit("practice", env.daysAgo(3))

	_, err := env.svc.CalculateDailyPenalties()
	require.NoError(t, err)

	// Each skipped day was synthesized and finalized with an escalating
	// penalty streak
	wantMultipliers := []float64{1.1, 1.2, 1.3}
	for i, n := range []int{3, 2, 1} {
		entry := env.entryFor(env.daysAgo(n))
		require.NotNil(t, entry, "day -%d should have an entry", n)
		assert.Equal(t, i+1, entry.PenaltyStreak)

		breakdown := entry.DecodeDetails().PenaltyBreakdown
		require.NotNil(t, breakdown)
		assert.True(t, breakdown.AutoFinalized)
		assert.InDelta(t, wantMultipliers[i], breakdown.ProgressiveMultiplier, 0.001)
		require.Len(t, breakdown.MissedHabits, 1)

		// Idle 30 + missed skill habit 15
		assert.Equal(t, int(45*wantMultipliers[i]), entry.PointsPenalty)
	}

	// The habit caught up to today with a broken streak
	start, end := DayRange(env.today())
	habits, err := env.tasks.HabitsDueInRange(start, end)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, 0, habits[0].Streak)
	assert.Equal(t, env.today(), Midnight(*habits[0].Due))

	// Cumulative total floored at zero the whole way
	for n := 3; n >= 1; n-- {
		assert.Equal(t, 0, env.entryFor(env.daysAgo(n)).CumulativeTotal)
	}
}

func TestBackfillStopsAtFinalizedDay(t *testing.T) {
	env := newTestEnv(t)

	// Day -2 already finalized by an earlier pass
	env.createEntry(&models.LedgerEntry{Date: env.daysAgo(2), CumulativeTotal: 50})
	_, err := env.svc.FinalizeDay(env.daysAgo(2))
	require.NoError(t, err)

	// Day -3 has an unfinalized entry, but sits behind the finalized day
	env.createEntry(&models.LedgerEntry{Date: env.daysAgo(3), CumulativeTotal: 50})
	env.createEntry(&models.LedgerEntry{Date: env.daysAgo(1), CumulativeTotal: 17})

	_, err = env.svc.CalculateDailyPenalties()
	require.NoError(t, err)

	assert.False(t, env.entryFor(env.daysAgo(3)).Finalized())
	assert.True(t, env.entryFor(env.daysAgo(1)).Finalized())
}

func TestBackfillSkipsRestDays(t *testing.T) {
	env := newTestEnv(t)

	env.dailyHabit("practice", env.daysAgo(2))
	require.NoError(t, env.restDays.Create(&models.RestDay{Date: env.daysAgo(2)}))

	_, err := env.svc.CalculateDailyPenalties()
	require.NoError(t, err)

	// The rest day charged nothing, but the habit still moved on and was
	// charged the day after
	assert.Nil(t, env.entryFor(env.daysAgo(2)))

	entry := env.entryFor(env.daysAgo(1))
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.PenaltyStreak)

	breakdown := entry.DecodeDetails().PenaltyBreakdown
	require.NotNil(t, breakdown)
	require.Len(t, breakdown.MissedHabits, 1)
}

func TestBackfillDeletesNonRecurringHabit(t *testing.T) {
	env := newTestEnv(t)

	due := env.daysAgo(1)
	habit := env.createTask(&models.Task{
		Description:    "one-off ritual",
		IsHabit:        true,
		HabitType:      models.HabitSkill,
		RecurrenceType: models.RecurrenceNone,
		Due:            &due,
	})

	_, err := env.svc.CalculateDailyPenalties()
	require.NoError(t, err)

	// Charged once, then gone
	breakdown := env.entryFor(env.daysAgo(1)).DecodeDetails().PenaltyBreakdown
	require.NotNil(t, breakdown)
	require.Len(t, breakdown.MissedHabits, 1)

	fetched, err := env.tasks.GetByID(habit.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}
