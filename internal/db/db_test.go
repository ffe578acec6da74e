package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dailyroll/dailyroll/internal/models"
)

func openTest(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return gdb
}

func TestSettingsDefaultsArePopulated(t *testing.T) {
	store := NewSettingsStore(openTest(t))

	s, err := store.Get()
	require.NoError(t, err)

	assert.Equal(t, 10, s.PointsPerTaskBase)
	assert.InDelta(t, 0.6, s.EnergyMultBase, 0.001)
	assert.InDelta(t, 0.2, s.EnergyMultStep, 0.001)
	assert.Equal(t, 30, s.IdlePenalty)
	assert.Equal(t, 15, s.MissedHabitPenaltyBase)
	assert.InDelta(t, 1.5, s.ProgressivePenaltyMax, 0.001)
	assert.Equal(t, 2, s.PenaltyStreakResetDays)
	assert.Equal(t, "00:00", s.RollAvailableTime)
	assert.True(t, s.AutoPenaltiesEnabled)

	// Second call returns the same singleton
	again, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
}

func TestLedgerStoreDateLookups(t *testing.T) {
	store := NewLedgerStore(openTest(t))

	day := func(n int) time.Time {
		return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
	}

	for _, n := range []int{10, 12, 14} {
		require.NoError(t, store.Create(&models.LedgerEntry{Date: day(n), CumulativeTotal: n}))
	}

	got, err := store.GetByDate(day(12))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.CumulativeTotal)

	missing, err := store.GetByDate(day(11))
	require.NoError(t, err)
	assert.Nil(t, missing)

	recent, err := store.MostRecentBefore(day(13))
	require.NoError(t, err)
	require.NotNil(t, recent)
	assert.Equal(t, 12, recent.CumulativeTotal)

	later, err := store.After(day(10))
	require.NoError(t, err)
	require.Len(t, later, 2)
	assert.Equal(t, 12, later[0].CumulativeTotal)
	assert.Equal(t, 14, later[1].CumulativeTotal)

	window, err := store.RangeFrom(day(14), 2)
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, 14, window[0].CumulativeTotal)
}

func TestLedgerUniqueDate(t *testing.T) {
	store := NewLedgerStore(openTest(t))
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(&models.LedgerEntry{Date: date}))
	assert.Error(t, store.Create(&models.LedgerEntry{Date: date}))
}

func TestTaskSoftDelete(t *testing.T) {
	store := NewTaskStore(openTest(t))

	task := &models.Task{Description: "ephemeral", Status: models.StatusPending}
	require.NoError(t, store.Create(task))
	require.NoError(t, store.Delete(task))

	got, err := store.GetByID(task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}
