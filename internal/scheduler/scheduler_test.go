package scheduler

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyroll/dailyroll/internal/backup"
	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/engine"
	"github.com/dailyroll/dailyroll/internal/models"
)

type fixture struct {
	sched    *Scheduler
	settings *db.SettingsStore
	ledger   *db.LedgerStore
	tasks    *db.TaskStore
	now      time.Time
	dbPath   string
	backups  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	gdb, err := db.Open(dbPath)
	require.NoError(t, err)

	f := &fixture{
		settings: db.NewSettingsStore(gdb),
		ledger:   db.NewLedgerStore(gdb),
		tasks:    db.NewTaskStore(gdb),
		now:      time.Date(2026, 8, 20, 0, 5, 0, 0, time.UTC),
		dbPath:   dbPath,
		backups:  filepath.Join(dir, "backups"),
	}

	svc := engine.NewService(f.tasks, f.ledger, f.settings, db.NewRestDayStore(gdb), db.NewGoalStore(gdb))
	mgr := backup.New(dbPath, f.backups, 3)

	f.sched = New(svc, f.settings, mgr, log.New(io.Discard, "", 0))
	f.sched.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) midnight(daysAgo int) time.Time {
	day := time.Date(f.now.Year(), f.now.Month(), f.now.Day(), 0, 0, 0, 0, f.now.Location())
	return day.AddDate(0, 0, -daysAgo)
}

func TestTickAppliesPenaltiesAfterPenaltyTime(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ledger.Create(&models.LedgerEntry{
		Date:            f.midnight(1),
		CumulativeTotal: 100,
	}))

	// 00:05 is past the default 00:01 penalty time
	f.sched.Tick()

	entry, err := f.ledger.GetByDate(f.midnight(1))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Finalized())
	assert.Equal(t, 33, entry.PointsPenalty)
}

func TestTickWaitsForPenaltyTime(t *testing.T) {
	f := newFixture(t)

	settings, err := f.settings.Get()
	require.NoError(t, err)
	settings.PenaltyTime = "06:00"
	require.NoError(t, f.settings.Update(settings))

	require.NoError(t, f.ledger.Create(&models.LedgerEntry{Date: f.midnight(1)}))

	f.sched.Tick() // 00:05, too early
	entry, err := f.ledger.GetByDate(f.midnight(1))
	require.NoError(t, err)
	assert.False(t, entry.Finalized())

	f.now = time.Date(2026, 8, 20, 6, 1, 0, 0, time.UTC)
	f.sched.Tick()
	entry, err = f.ledger.GetByDate(f.midnight(1))
	require.NoError(t, err)
	assert.True(t, entry.Finalized())
}

func TestTickRunsEachJobOncePerDay(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ledger.Create(&models.LedgerEntry{Date: f.midnight(1)}))

	f.sched.Tick()
	assert.Equal(t, f.midnight(0), f.sched.lastPenaltyDay)

	// Later ticks the same day skip the job; the engine would refuse the
	// recomputation anyway, this just avoids the work
	f.now = f.now.Add(4 * time.Hour)
	f.sched.Tick()
	assert.Equal(t, f.midnight(0), f.sched.lastPenaltyDay)

	// A new day re-arms it
	f.now = f.now.AddDate(0, 0, 1)
	f.sched.Tick()
	assert.Equal(t, f.midnight(0).AddDate(0, 0, 1), f.sched.lastPenaltyDay)
}

func TestTickAutoRoll(t *testing.T) {
	f := newFixture(t)

	settings, err := f.settings.Get()
	require.NoError(t, err)
	settings.AutoRollEnabled = true
	settings.AutoRollTime = "06:00"
	require.NoError(t, f.settings.Update(settings))

	require.NoError(t, f.tasks.Create(&models.Task{
		Description: "queued",
		Status:      models.StatusPending,
		Energy:      3,
	}))

	f.now = time.Date(2026, 8, 20, 6, 30, 0, 0, time.UTC)
	f.sched.Tick()

	planned, err := f.tasks.TodayTasks()
	require.NoError(t, err)
	assert.Len(t, planned, 1)

	settings, err = f.settings.Get()
	require.NoError(t, err)
	require.NotNil(t, settings.LastRollDate)
}

func TestTickBackup(t *testing.T) {
	f := newFixture(t)

	settings, err := f.settings.Get()
	require.NoError(t, err)
	settings.BackupTime = "00:00"
	require.NoError(t, f.settings.Update(settings))

	f.sched.Tick()

	entries, err := os.ReadDir(f.backups)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	settings, err = f.settings.Get()
	require.NoError(t, err)
	require.NotNil(t, settings.LastBackupAt)

	// Same day, already backed up
	f.now = f.now.Add(2 * time.Hour)
	f.sched.Tick()
	entries, err = os.ReadDir(f.backups)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
