// Package engine implements the daily progression ledger: point awards
// for completed tasks and habits, penalty finalization with a
// progressive streak multiplier, catch-up backfill for skipped days, and
// the once-per-day roll that selects today's plan.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// TaskStore is the task persistence contract the engine consumes.
type TaskStore interface {
	GetByID(id uint) (*models.Task, error)
	ActiveTask() (*models.Task, error)
	ActiveTasks() ([]models.Task, error)
	NextTask() (*models.Task, error)
	AvailableTasks() ([]models.Task, error)
	TodayTasks() ([]models.Task, error)
	CriticalTasks(start, end time.Time) ([]models.Task, error)
	HabitsDueInRange(start, end time.Time) ([]models.Task, error)
	OverdueHabits(before time.Time) ([]models.Task, error)
	CompletedCountInRange(start, end time.Time, isHabit bool) (int, error)
	CompletedInRange(start, end time.Time, isHabit bool) ([]models.Task, error)
	ClearTodayFlags() error
	CountByProject(project string) (total, completed int, err error)
	TotalPendingCount() (int, error)
	Create(task *models.Task) error
	Update(task *models.Task) error
	Delete(task *models.Task) error
}

// LedgerStore is the day-ledger persistence contract.
type LedgerStore interface {
	GetByDate(date time.Time) (*models.LedgerEntry, error)
	MostRecentBefore(date time.Time) (*models.LedgerEntry, error)
	RangeFrom(from time.Time, days int) ([]models.LedgerEntry, error)
	After(date time.Time) ([]models.LedgerEntry, error)
	Create(entry *models.LedgerEntry) error
	Update(entry *models.LedgerEntry) error
}

// SettingsStore owns the settings singleton lifecycle.
type SettingsStore interface {
	Get() (*models.Settings, error)
	Update(settings *models.Settings) error
}

// RestDayStore is consulted, never mutated, by the engine.
type RestDayStore interface {
	GetByDate(date time.Time) (*models.RestDay, error)
}

// GoalStore is the point-goal persistence contract.
type GoalStore interface {
	All(includeAchieved bool) ([]models.PointGoal, error)
	Update(goal *models.PointGoal) error
}

// Service wires the stores together with a clock and a random source.
// Roll and penalty finalization are serialized behind mu so an
// interactive roll and a scheduled roll cannot both pass the
// already-rolled guard.
type Service struct {
	tasks    TaskStore
	ledger   LedgerStore
	settings SettingsStore
	restDays RestDayStore
	goals    GoalStore

	mu  sync.Mutex
	now func() time.Time
	rng *rand.Rand
}

// NewService creates an engine service with the real clock and a
// time-seeded random source.
func NewService(tasks TaskStore, ledger LedgerStore, settings SettingsStore, restDays RestDayStore, goals GoalStore) *Service {
	return &Service{
		tasks:    tasks,
		ledger:   ledger,
		settings: settings,
		restDays: restDays,
		goals:    goals,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// EffectiveToday returns the logical date the user is currently in.
func (s *Service) EffectiveToday() (time.Time, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return time.Time{}, err
	}
	return EffectiveDate(s.now(), settings.DayStartEnabled, settings.DayStartTime), nil
}
