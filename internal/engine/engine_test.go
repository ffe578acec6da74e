package engine

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/models"
)

// testEnv wires a Service to a real sqlite database in a temp dir, with
// a controllable clock and a deterministic random source.
type testEnv struct {
	t   *testing.T
	svc *Service
	now time.Time

	tasks    *db.TaskStore
	ledger   *db.LedgerStore
	settings *db.SettingsStore
	restDays *db.RestDayStore
	goals    *db.GoalStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	env := &testEnv{
		t:        t,
		now:      time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		tasks:    db.NewTaskStore(gdb),
		ledger:   db.NewLedgerStore(gdb),
		settings: db.NewSettingsStore(gdb),
		restDays: db.NewRestDayStore(gdb),
		goals:    db.NewGoalStore(gdb),
	}

	svc := NewService(env.tasks, env.ledger, env.settings, env.restDays, env.goals)
	svc.now = func() time.Time { return env.now }
	svc.rng = rand.New(rand.NewSource(1))
	env.svc = svc
	return env
}

func (e *testEnv) today() time.Time {
	return Midnight(e.now)
}

func (e *testEnv) daysAgo(n int) time.Time {
	return e.today().AddDate(0, 0, -n)
}

func (e *testEnv) createTask(task *models.Task) *models.Task {
	e.t.Helper()
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	require.NoError(e.t, e.tasks.Create(task))
	return task
}

func (e *testEnv) createEntry(entry *models.LedgerEntry) *models.LedgerEntry {
	e.t.Helper()
	entry.Date = Midnight(entry.Date)
	require.NoError(e.t, e.ledger.Create(entry))
	return entry
}

// dailyHabit builds a pending daily skill habit due on the given day.
func (e *testEnv) dailyHabit(description string, due time.Time) *models.Task {
	d := Midnight(due)
	return e.createTask(&models.Task{
		Description:    description,
		IsHabit:        true,
		HabitType:      models.HabitSkill,
		RecurrenceType: models.RecurrenceDaily,
		Due:            &d,
	})
}

func (e *testEnv) entryFor(date time.Time) *models.LedgerEntry {
	e.t.Helper()
	entry, err := e.ledger.GetByDate(Midnight(date))
	require.NoError(e.t, err)
	return entry
}
