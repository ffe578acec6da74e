package engine

import (
	"math"
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// Fixed coefficients of the scoring formula. Everything tunable lives in
// Settings; these shape factors are part of the formula itself.
const (
	// Time quality
	timeRatioFast      = 0.5 // below this ratio: rushed
	timeRatioNormal    = 1.5 // up to this ratio: normal pace
	timeRatioSlow      = 3.0 // up to this ratio: slightly slow
	factorSuspicious   = 0.5 // finished under the minimum work time
	factorRushed       = 0.8
	factorSlightlySlow = 0.9
	factorVerySlow     = 0.7

	// Completing a task that was never started
	focusPenaltyFactor = 0.8

	// Routine habits take a reduced missed-habit penalty
	routinePenaltyMultiplier = 0.5
)

// EnergyMultiplier maps a task's energy level to its point multiplier:
// base + energy*step, so with defaults E0 -> 0.6 up to E5 -> 1.6.
func EnergyMultiplier(energy int, settings *models.Settings) float64 {
	return settings.EnergyMultBase + float64(energy)*settings.EnergyMultStep
}

// TaskPoints computes the award for a completed task:
// base x energy multiplier x time quality x focus, floored, minimum 1.
func TaskPoints(task *models.Task, settings *models.Settings) int {
	base := float64(settings.PointsPerTaskBase)
	energyMult := EnergyMultiplier(task.Energy, settings)
	timeQuality := timeQualityFactor(task.TimeSpent, task.Energy, settings)

	focus := 1.0
	if task.StartedAt == nil {
		// Completed without ever tracking - suspicious
		focus = focusPenaltyFactor
	}

	total := int(base * energyMult * timeQuality * focus)
	if total < 1 {
		return 1
	}
	return total
}

// timeQualityFactor compares actual time spent against the expected
// time for the task's energy level.
func timeQualityFactor(actualSeconds, energy int, settings *models.Settings) float64 {
	if actualSeconds < settings.MinWorkTimeSeconds {
		return factorSuspicious
	}

	expected := energy * settings.MinutesPerEnergyUnit * 60
	if expected == 0 {
		// E0 tasks have no expected time
		return 1.0
	}

	ratio := float64(actualSeconds) / float64(expected)
	switch {
	case ratio < timeRatioFast:
		return factorRushed
	case ratio <= timeRatioNormal:
		return 1.0
	case ratio <= timeRatioSlow:
		return factorSlightlySlow
	default:
		return factorVerySlow
	}
}

// HabitPoints computes the award for a completed habit. Routines earn a
// fixed amount; skill habits grow sub-linearly with streak length:
// base x (1 + log2(streak+1) x factor), floored, minimum 1. log2 keeps
// growth unbounded but naturally flattening, so no artificial cap.
func HabitPoints(task *models.Task, settings *models.Settings) int {
	if task.HabitType != models.HabitSkill {
		return settings.RoutinePointsFixed
	}

	bonus := 1 + math.Log2(float64(task.Streak)+1)*settings.StreakLogFactor
	total := int(float64(settings.PointsPerHabitBase) * bonus)
	if total < 1 {
		return 1
	}
	return total
}

// getOrCreateEntry returns the ledger entry for the date, creating one
// that inherits the running cumulative total from the most recent prior
// entry when the date is new.
func (s *Service) getOrCreateEntry(date time.Time) (*models.LedgerEntry, error) {
	entry, err := s.ledger.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}

	previousTotal := 0
	last, err := s.ledger.MostRecentBefore(date)
	if err != nil {
		return nil, err
	}
	if last != nil {
		previousTotal = last.CumulativeTotal
	}

	entry = &models.LedgerEntry{
		Date:            date,
		CumulativeTotal: previousTotal,
	}
	if err := s.ledger.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// awardCompletionPoints credits a freshly completed task or habit to
// today's ledger entry: earned points, completion counter, daily and
// cumulative totals, and a completion event in the detail log.
func (s *Service) awardCompletionPoints(task *models.Task) (int, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return 0, err
	}

	today := EffectiveDate(s.now(), settings.DayStartEnabled, settings.DayStartTime)
	entry, err := s.getOrCreateEntry(today)
	if err != nil {
		return 0, err
	}

	var points int
	if task.IsHabit {
		points = HabitPoints(task, settings)
		entry.HabitsCompleted++
	} else {
		points = TaskPoints(task, settings)
		entry.TasksCompleted++
	}

	entry.PointsEarned += points
	entry.DailyTotal = entry.PointsEarned + entry.PointsBonus - entry.PointsPenalty
	entry.CumulativeTotal += points

	details := entry.DecodeDetails()
	details.TaskCompletions = append(details.TaskCompletions, models.TaskCompletion{
		TaskID:      task.ID,
		Description: task.Description,
		IsHabit:     task.IsHabit,
		Points:      points,
		Time:        s.now(),
	})
	entry.EncodeDetails(details)

	if err := s.ledger.Update(entry); err != nil {
		return 0, err
	}
	return points, nil
}

// CurrentPoints returns the running cumulative total as of today.
func (s *Service) CurrentPoints() (int, error) {
	today, err := s.EffectiveToday()
	if err != nil {
		return 0, err
	}
	entry, err := s.getOrCreateEntry(today)
	if err != nil {
		return 0, err
	}
	return entry.CumulativeTotal, nil
}

// History returns the last `days` ledger entries ending today, newest first.
func (s *Service) History(days int) ([]models.LedgerEntry, error) {
	today, err := s.EffectiveToday()
	if err != nil {
		return nil, err
	}
	return s.ledger.RangeFrom(today, days)
}
