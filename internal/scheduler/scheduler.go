// Package scheduler runs the time-of-day automation: applying penalties
// for finished days, optionally rolling the new day's plan, and taking
// database backups.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/dailyroll/dailyroll/internal/backup"
	"github.com/dailyroll/dailyroll/internal/engine"
	"github.com/dailyroll/dailyroll/internal/models"
)

// DefaultCheckInterval is how often jobs are considered.
const DefaultCheckInterval = time.Minute

// SettingsStore is the slice of persistence the scheduler needs.
type SettingsStore interface {
	Get() (*models.Settings, error)
	Update(settings *models.Settings) error
}

// Scheduler fires each enabled job once per calendar day at its
// configured time. Penalty and roll jobs are idempotent in the engine,
// so the per-day markers here only avoid redundant work.
type Scheduler struct {
	svc      *engine.Service
	settings SettingsStore
	backups  *backup.Manager

	interval time.Duration
	now      func() time.Time
	logger   *log.Logger

	lastPenaltyDay time.Time
	lastRollDay    time.Time
}

// New builds a scheduler on the real clock.
func New(svc *engine.Service, settings SettingsStore, backups *backup.Manager, logger *log.Logger) *Scheduler {
	return &Scheduler{
		svc:      svc,
		settings: settings,
		backups:  backups,
		interval: DefaultCheckInterval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run loops until the context is cancelled, checking jobs every
// interval. One immediate check runs at startup so a machine that was
// asleep at the configured times catches up right away.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick considers every job once. Job errors are logged, not returned; a
// failing job must not stop the others.
func (s *Scheduler) Tick() {
	settings, err := s.settings.Get()
	if err != nil {
		s.logger.Printf("scheduler: load settings: %v", err)
		return
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if settings.AutoPenaltiesEnabled && s.due(now, today, s.lastPenaltyDay, settings.PenaltyTime) {
		if _, err := s.svc.CalculateDailyPenalties(); err != nil {
			s.logger.Printf("scheduler: daily penalties: %v", err)
		} else {
			s.lastPenaltyDay = today
		}
	}

	if settings.AutoRollEnabled && s.due(now, today, s.lastRollDay, settings.AutoRollTime) {
		if _, err := s.svc.Roll("", 0, 0); err != nil {
			if engine.IsRollUnavailable(err) {
				// Already rolled by hand; mark the day done
				s.lastRollDay = today
			} else {
				s.logger.Printf("scheduler: auto roll: %v", err)
			}
		} else {
			s.logger.Printf("scheduler: rolled the day's plan")
			s.lastRollDay = today
		}
	}

	if settings.AutoBackupEnabled && s.backups != nil && s.backupDue(settings, now, today) {
		if path, err := s.backups.Run(); err != nil {
			s.logger.Printf("scheduler: backup: %v", err)
		} else {
			s.logger.Printf("scheduler: backup written to %s", path)
			settings.LastBackupAt = &now
			if err := s.settings.Update(settings); err != nil {
				s.logger.Printf("scheduler: record backup time: %v", err)
			}
		}
	}
}

// due reports whether a job configured for clockTime should fire: not
// yet run today and the configured time has passed. A malformed time
// means fire at midnight.
func (s *Scheduler) due(now, today, lastRun time.Time, clockTime string) bool {
	if lastRun.Equal(today) {
		return false
	}
	target, ok := engine.ParseClock(clockTime)
	if !ok {
		target = 0
	}
	return now.Hour()*60+now.Minute() >= target
}

// backupDue additionally honors the interval-days setting, using the
// persisted LastBackupAt so restarts do not trigger extra backups.
func (s *Scheduler) backupDue(settings *models.Settings, now, today time.Time) bool {
	if settings.LastBackupAt != nil {
		interval := settings.BackupIntervalDays
		if interval < 1 {
			interval = 1
		}
		last := settings.LastBackupAt
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())
		if today.Sub(lastDay) < time.Duration(interval)*24*time.Hour {
			return false
		}
	}
	return s.due(now, today, time.Time{}, settings.BackupTime)
}
