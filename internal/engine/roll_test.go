package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyroll/dailyroll/internal/models"
)

func TestRollSelectsPlanOncePerDay(t *testing.T) {
	env := newTestEnv(t)

	for _, d := range []string{"alpha", "beta", "gamma"} {
		env.createTask(&models.Task{Description: d, Energy: 3})
	}

	result, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, env.today(), result.Date)
	assert.Len(t, result.Tasks, 3)

	// The plan was snapshotted into the ledger
	entry := env.entryFor(env.today())
	require.NotNil(t, entry)
	assert.Equal(t, 3, entry.TasksPlanned)
	assert.Len(t, entry.DecodeDetails().PlannedTasks, 3)

	// Second roll on the same day is refused
	_, err = env.svc.Roll("", 0, 0)
	require.Error(t, err)
	assert.True(t, IsRollUnavailable(err))
	assert.Contains(t, err.Error(), "already done")
}

func TestRollAvailableAgainNextDay(t *testing.T) {
	env := newTestEnv(t)
	env.createTask(&models.Task{Description: "carry over", Energy: 2})

	_, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)

	env.now = env.now.AddDate(0, 0, 1)
	_, err = env.svc.Roll("", 0, 0)
	require.NoError(t, err)
}

func TestRollRespectsAvailableTime(t *testing.T) {
	env := newTestEnv(t)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	settings.RollAvailableTime = "14:00"
	require.NoError(t, env.settings.Update(settings))

	env.now = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	_, err = env.svc.Roll("", 0, 0)
	require.Error(t, err)
	assert.True(t, IsRollUnavailable(err))
	assert.Contains(t, err.Error(), "14:00")

	env.now = time.Date(2026, 8, 20, 14, 1, 0, 0, time.UTC)
	_, err = env.svc.Roll("", 0, 0)
	require.NoError(t, err)
}

func TestRollLimitsAndCriticalTasks(t *testing.T) {
	env := newTestEnv(t)

	soon := env.today().AddDate(0, 0, 1)
	critical := env.createTask(&models.Task{Description: "due tomorrow", Energy: 3, Due: &soon})

	for i := 0; i < 10; i++ {
		env.createTask(&models.Task{Description: "backlog", Energy: 3})
	}

	result, err := env.svc.Roll("", 3, 0)
	require.NoError(t, err)
	assert.Len(t, result.Tasks, 3)

	fetched, err := env.tasks.GetByID(critical.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsToday, "a task due within the critical window always makes the plan")
}

func TestRollMoodFilter(t *testing.T) {
	env := newTestEnv(t)

	heavy := env.createTask(&models.Task{Description: "heavy", Energy: 5})
	light := env.createTask(&models.Task{Description: "light", Energy: 1})

	result, err := env.svc.Roll("2", 0, 0)
	require.NoError(t, err)

	require.Len(t, result.Tasks, 1)
	assert.Equal(t, light.ID, result.Tasks[0].ID)

	fetched, err := env.tasks.GetByID(heavy.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsToday)
}

func TestRollSkipsTasksWithUnmetDependencies(t *testing.T) {
	env := newTestEnv(t)

	prereq := env.createTask(&models.Task{Description: "prereq", Energy: 3, Status: models.StatusCompleted})
	blockedDone := env.createTask(&models.Task{Description: "unblocked", Energy: 3, DependsOn: &prereq.ID})

	pending := env.createTask(&models.Task{Description: "pending prereq", Energy: 3})
	blocked := env.createTask(&models.Task{Description: "blocked", Energy: 3, DependsOn: &pending.ID})

	result, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)

	ids := make(map[uint]bool)
	for _, task := range result.Tasks {
		ids[task.ID] = true
	}
	assert.True(t, ids[blockedDone.ID], "completed dependency unblocks the task")
	assert.True(t, ids[pending.ID])

	// blocked may ride along only because its prerequisite made the plan
	if ids[blocked.ID] {
		assert.True(t, ids[pending.ID])
	}
}

func TestRollFinalizesYesterdayFirst(t *testing.T) {
	env := newTestEnv(t)
	env.createEntry(&models.LedgerEntry{Date: env.daysAgo(1), CumulativeTotal: 100})

	result, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)

	require.NotNil(t, result.PenaltyInfo)
	assert.Equal(t, 33, result.PenaltyInfo.Penalty)
	assert.True(t, env.entryFor(env.daysAgo(1)).Finalized())
}

func TestRollDropsLeftoverOverdueHabits(t *testing.T) {
	env := newTestEnv(t)

	// Due before the backfill horizon, so the catch-up pass cannot reach it
	stale := env.daysAgo(backfillLookbackDays + 5)
	habit := env.createTask(&models.Task{
		Description:    "abandoned",
		IsHabit:        true,
		HabitType:      models.HabitRoutine,
		RecurrenceType: models.RecurrenceNone,
		Due:            &stale,
	})

	result, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedHabits)

	fetched, err := env.tasks.GetByID(habit.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestRollClearsPreviousPlan(t *testing.T) {
	env := newTestEnv(t)

	leftover := env.createTask(&models.Task{Description: "from yesterday", Energy: 3, IsToday: true})
	env.createTask(&models.Task{Description: "fresh", Energy: 3})

	_, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)

	// Both are candidates again; flags were rebuilt from scratch
	fetched, err := env.tasks.GetByID(leftover.ID)
	require.NoError(t, err)
	planned, err := env.tasks.TodayTasks()
	require.NoError(t, err)
	assert.Len(t, planned, 2)
	assert.True(t, fetched.IsToday)
}

func TestRollListsTodaysHabits(t *testing.T) {
	env := newTestEnv(t)
	env.dailyHabit("practice", env.today())

	result, err := env.svc.Roll("", 0, 0)
	require.NoError(t, err)
	require.Len(t, result.Habits, 1)
	assert.Equal(t, "practice", result.Habits[0].Description)
}
