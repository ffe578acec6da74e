package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyroll/dailyroll/internal/models"
)

func TestStartStopBanksTime(t *testing.T) {
	env := newTestEnv(t)
	task := env.createTask(&models.Task{Description: "deep work", Energy: 3})

	started, err := env.svc.StartTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, started.Status)
	require.NotNil(t, started.StartedAt)

	env.now = env.now.Add(25 * time.Minute)

	stopped, err := env.svc.StopTask()
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stopped.Status)
	assert.Equal(t, 25*60, stopped.TimeSpent)
}

func TestStartSwitchesTheActiveTask(t *testing.T) {
	env := newTestEnv(t)
	first := env.createTask(&models.Task{Description: "first", Energy: 3})
	second := env.createTask(&models.Task{Description: "second", Energy: 3})

	_, err := env.svc.StartTask(first.ID)
	require.NoError(t, err)

	env.now = env.now.Add(10 * time.Minute)

	_, err = env.svc.StartTask(second.ID)
	require.NoError(t, err)

	fetched, err := env.tasks.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, fetched.Status)
	assert.Equal(t, 10*60, fetched.TimeSpent)

	active, err := env.tasks.ActiveTask()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestStopWithNothingRunning(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.StopTask()
	assert.ErrorIs(t, err, ErrNoActiveTask)
}

func TestCompleteActiveTaskFoldsInSessionTime(t *testing.T) {
	env := newTestEnv(t)
	task := env.createTask(&models.Task{Description: "deep work", Energy: 3})

	_, err := env.svc.StartTask(task.ID)
	require.NoError(t, err)
	env.now = env.now.Add(time.Hour)

	completed, points, err := env.svc.CompleteTask(0)
	require.NoError(t, err)
	assert.Equal(t, task.ID, completed.ID)
	assert.Equal(t, 3600, completed.TimeSpent)
	assert.Equal(t, 12, points) // an hour on an energy-3 task is normal pace
}

func TestCompleteRejectsUnmetDependency(t *testing.T) {
	env := newTestEnv(t)
	prereq := env.createTask(&models.Task{Description: "prereq", Energy: 2})
	dependent := env.createTask(&models.Task{Description: "dependent", Energy: 2, DependsOn: &prereq.ID})

	_, _, err := env.svc.CompleteTask(dependent.ID)
	assert.ErrorIs(t, err, ErrDependencyNotMet)

	_, _, err = env.svc.CompleteTask(prereq.ID)
	require.NoError(t, err)

	_, _, err = env.svc.CompleteTask(dependent.ID)
	require.NoError(t, err)
}

func TestCompleteTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	task := env.createTask(&models.Task{Description: "once", Energy: 2})

	_, _, err := env.svc.CompleteTask(task.ID)
	require.NoError(t, err)

	_, _, err = env.svc.CompleteTask(task.ID)
	assert.Error(t, err)
}

func TestCompleteHabitExtendsStreakAndReschedules(t *testing.T) {
	env := newTestEnv(t)

	yesterday := env.daysAgo(1)
	due := env.today()
	habit := env.createTask(&models.Task{
		Description:       "practice",
		IsHabit:           true,
		HabitType:         models.HabitSkill,
		RecurrenceType:    models.RecurrenceDaily,
		Due:               &due,
		Streak:            3,
		LastCompletedDate: &yesterday,
	})

	completed, points, err := env.svc.CompleteTask(habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, completed.Streak)
	assert.Equal(t, 13, points) // 10 * (1 + log2(5)*0.15)

	// The next occurrence carries the streak forward
	start, end := DayRange(env.today().AddDate(0, 0, 1))
	habits, err := env.tasks.HabitsDueInRange(start, end)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, 4, habits[0].Streak)
	assert.Equal(t, models.StatusPending, habits[0].Status)
}

func TestCompleteHabitAfterGapRestartsStreak(t *testing.T) {
	env := newTestEnv(t)

	lastDone := env.daysAgo(4)
	due := env.today()
	habit := env.createTask(&models.Task{
		Description:       "practice",
		IsHabit:           true,
		HabitType:         models.HabitSkill,
		RecurrenceType:    models.RecurrenceDaily,
		Due:               &due,
		Streak:            9,
		LastCompletedDate: &lastDone,
	})

	completed, _, err := env.svc.CompleteTask(habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, completed.Streak)
}

func TestCompleteHabitEveryNDaysKeepsStreakWithinWindow(t *testing.T) {
	env := newTestEnv(t)

	lastDone := env.daysAgo(3)
	due := env.today()
	habit := env.createTask(&models.Task{
		Description:        "long run",
		IsHabit:            true,
		HabitType:          models.HabitSkill,
		RecurrenceType:     models.RecurrenceEveryNDays,
		RecurrenceInterval: 3,
		Due:                &due,
		Streak:             2,
		LastCompletedDate:  &lastDone,
	})

	completed, _, err := env.svc.CompleteTask(habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, completed.Streak)

	// Next occurrence three days out
	start, end := DayRange(env.today().AddDate(0, 0, 3))
	habits, err := env.tasks.HabitsDueInRange(start, end)
	require.NoError(t, err)
	require.Len(t, habits, 1)
}

func TestCreateRecurringHabitFastForwardsStaleDue(t *testing.T) {
	env := newTestEnv(t)

	stale := env.daysAgo(5)
	habit := &models.Task{
		Description:    "catch up",
		IsHabit:        true,
		HabitType:      models.HabitRoutine,
		RecurrenceType: models.RecurrenceDaily,
		Due:            &stale,
	}
	require.NoError(t, env.svc.CreateTask(habit))
	assert.Equal(t, env.today(), Midnight(*habit.Due))
}

func TestCompletePointsGoalIsDetected(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.goals.Create(&models.PointGoal{
		Description:  "first milestone",
		GoalType:     models.GoalPoints,
		TargetPoints: 5,
		Reward:       "coffee",
	}))

	task := env.createTask(&models.Task{Description: "push it over", Energy: 3})
	_, _, err := env.svc.CompleteTask(task.ID)
	require.NoError(t, err)

	goals, err := env.goals.All(true)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Achieved)
	require.NotNil(t, goals[0].AchievedDate)
}

func TestProjectCompletionGoal(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.goals.Create(&models.PointGoal{
		Description: "ship the thing",
		GoalType:    models.GoalProjectCompletion,
		ProjectName: "launch",
	}))

	a := env.createTask(&models.Task{Description: "a", Project: "launch", Energy: 2})
	b := env.createTask(&models.Task{Description: "b", Project: "launch", Energy: 2})

	_, _, err := env.svc.CompleteTask(a.ID)
	require.NoError(t, err)

	goals, err := env.goals.All(true)
	require.NoError(t, err)
	assert.False(t, goals[0].Achieved, "half a project is not done")

	_, _, err = env.svc.CompleteTask(b.ID)
	require.NoError(t, err)

	goals, err = env.goals.All(true)
	require.NoError(t, err)
	assert.True(t, goals[0].Achieved)
}

func TestTodayStats(t *testing.T) {
	env := newTestEnv(t)

	env.createTask(&models.Task{Description: "planned", Energy: 3, IsToday: true})
	env.createTask(&models.Task{Description: "backlog", Energy: 3})
	doneTask := env.createTask(&models.Task{Description: "done", Energy: 3, IsToday: true})

	_, _, err := env.svc.CompleteTask(doneTask.ID)
	require.NoError(t, err)

	stats, err := env.svc.TodayStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DoneToday)
	assert.Equal(t, 1, stats.PendingToday)
	assert.Equal(t, 2, stats.TotalPending)
}
