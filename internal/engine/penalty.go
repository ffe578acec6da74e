package engine

import (
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// PenaltyResult is the outcome of finalizing one day.
type PenaltyResult struct {
	Date                time.Time `json:"date"`
	Penalty             int       `json:"penalty"`
	CompletionRate      float64   `json:"completion_rate"`
	TasksCompleted      int       `json:"tasks_completed"`
	TasksPlanned        int       `json:"tasks_planned"`
	MissedHabits        int       `json:"missed_habits"`
	MissedTaskPotential int       `json:"missed_task_potential"`
	AlreadyFinalized    bool      `json:"already_finalized,omitempty"`
	IsRestDay           bool      `json:"is_rest_day,omitempty"`
}

// FinalizeDay applies penalties, bonus, and the progressive multiplier
// for one calendar day. Finalization is one-way and idempotent: once an
// entry carries a penalty breakdown, repeat calls return the stored
// result unchanged. Serialized with Roll behind the service mutex.
func (s *Service) FinalizeDay(date time.Time) (*PenaltyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalizeSingleDay(Midnight(date), false)
}

// CalculateDailyPenalties finalizes yesterday, first backfilling any
// previously skipped days so yesterday's computation sees correctly
// rolled-forward habit state. Called from Roll and the scheduler.
func (s *Service) CalculateDailyPenalties() (*PenaltyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calculateDailyPenaltiesLocked()
}

func (s *Service) calculateDailyPenaltiesLocked() (*PenaltyResult, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	today := EffectiveDate(s.now(), settings.DayStartEnabled, settings.DayStartTime)

	if err := s.finalizeMissingDays(today); err != nil {
		return nil, err
	}
	return s.finalizeSingleDay(today.AddDate(0, 0, -1), false)
}

// finalizeSingleDay runs the full penalty pipeline for one day. auto
// marks the breakdown as backfilled. Caller holds the mutex.
func (s *Service) finalizeSingleDay(date time.Time, auto bool) (*PenaltyResult, error) {
	// Rest days are exempt and recomputed cheaply each time; nothing is
	// stored so there is no finalization to protect.
	restDay, err := s.restDays.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if restDay != nil {
		return &PenaltyResult{Date: date, CompletionRate: 1.0, IsRestDay: true}, nil
	}

	entry, err := s.ledger.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// No ledger entry means nothing to penalize; backfill handles
		// days that had obligations.
		return &PenaltyResult{Date: date}, nil
	}

	if bd := entry.DecodeDetails().PenaltyBreakdown; bd != nil {
		return &PenaltyResult{
			Date:             date,
			Penalty:          entry.PointsPenalty,
			CompletionRate:   entry.CompletionRate,
			TasksCompleted:   entry.TasksCompleted,
			TasksPlanned:     entry.TasksPlanned,
			AlreadyFinalized: true,
		}, nil
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	if err := s.refreshCompletionCounts(entry, date); err != nil {
		return nil, err
	}

	// 1. Idle penalty: nothing completed at all
	idlePenalty := 0
	if entry.TasksCompleted == 0 && entry.HabitsCompleted == 0 {
		idlePenalty = settings.IdlePenalty
	}

	// 2. Incomplete-day penalty from the roll-time snapshot
	incompletePenalty, missedPotential, incompleteTasks, err := s.incompletePenalty(entry, settings)
	if err != nil {
		return nil, err
	}

	// 3. Consistency bonus
	s.applyConsistencyBonus(entry, settings)

	// 4. Missed habits
	missedHabits, habitsPenalty, err := s.missedHabitsPenalty(date, entry, settings)
	if err != nil {
		return nil, err
	}

	basePenalty := idlePenalty + incompletePenalty + habitsPenalty

	// 5. Progressive multiplier
	finalPenalty, multiplier, err := s.applyProgressiveMultiplier(basePenalty, date, entry, settings)
	if err != nil {
		return nil, err
	}

	// 6. Apply to the entry and propagate the cumulative delta forward
	if err := s.applyFinalPenalties(entry, finalPenalty); err != nil {
		return nil, err
	}

	details := entry.DecodeDetails()
	details.PenaltyBreakdown = &models.PenaltyBreakdown{
		IdlePenalty:           idlePenalty,
		IncompletePenalty:     incompletePenalty,
		MissedHabitsPenalty:   habitsPenalty,
		ProgressiveMultiplier: multiplier,
		TotalPenalty:          finalPenalty,
		PenaltyStreak:         entry.PenaltyStreak,
		MissedHabits:          missedHabits,
		IncompleteTasks:       incompleteTasks,
		AutoFinalized:         auto,
	}
	entry.EncodeDetails(details)
	if err := s.ledger.Update(entry); err != nil {
		return nil, err
	}

	return &PenaltyResult{
		Date:                date,
		Penalty:             finalPenalty,
		CompletionRate:      entry.CompletionRate,
		TasksCompleted:      entry.TasksCompleted,
		TasksPlanned:        entry.TasksPlanned,
		MissedHabits:        len(missedHabits),
		MissedTaskPotential: missedPotential,
	}, nil
}

// refreshCompletionCounts fills in completion counters the award path
// may have missed (e.g. entries synthesized before completions landed).
func (s *Service) refreshCompletionCounts(entry *models.LedgerEntry, date time.Time) error {
	start, end := DayRange(date)

	if entry.TasksCompleted == 0 {
		count, err := s.tasks.CompletedCountInRange(start, end, false)
		if err != nil {
			return err
		}
		entry.TasksCompleted = count
	}
	if entry.HabitsCompleted == 0 {
		count, err := s.tasks.CompletedCountInRange(start, end, true)
		if err != nil {
			return err
		}
		entry.HabitsCompleted = count
	}
	// TasksPlanned stays as recorded at roll time; zero means no plan.
	return nil
}

// incompletePenalty charges a percentage of the point potential of every
// planned-but-not-completed task, using the energies captured in the
// roll-time snapshot. With no snapshot it falls back to an average
// (energy 3) potential per incomplete slot.
func (s *Service) incompletePenalty(entry *models.LedgerEntry, settings *models.Settings) (int, int, []models.IncompleteTask, error) {
	if entry.TasksPlanned == 0 {
		return 0, 0, nil, nil
	}

	rate := float64(entry.TasksCompleted) / float64(entry.TasksPlanned)
	if rate > 1.0 {
		rate = 1.0
	}
	entry.CompletionRate = rate

	planned := entry.DecodeDetails().PlannedTasks
	if len(planned) == 0 {
		incompleteCount := entry.TasksPlanned - entry.TasksCompleted
		if incompleteCount <= 0 {
			return 0, 0, nil, nil
		}
		potentialPerTask := float64(settings.PointsPerTaskBase) * EnergyMultiplier(3, settings)
		missedPotential := int(float64(incompleteCount) * potentialPerTask)
		penalty := int(float64(missedPotential) * settings.IncompletePenaltyPercent)
		return penalty, missedPotential, nil, nil
	}

	missedPotential := 0.0
	var incomplete []models.IncompleteTask
	for _, p := range planned {
		task, err := s.tasks.GetByID(p.TaskID)
		if err != nil {
			return 0, 0, nil, err
		}
		if task != nil && task.Status == models.StatusCompleted {
			continue
		}

		potential := float64(settings.PointsPerTaskBase) * EnergyMultiplier(p.Energy, settings)
		missedPotential += potential

		description := p.Description
		if task != nil {
			description = task.Description
		}
		incomplete = append(incomplete, models.IncompleteTask{
			TaskID:      p.TaskID,
			Description: description,
			Energy:      p.Energy,
			Potential:   int(potential),
		})
	}

	if missedPotential == 0 {
		return 0, 0, nil, nil
	}
	penalty := int(missedPotential * settings.IncompletePenaltyPercent)
	return penalty, int(missedPotential), incomplete, nil
}

// applyConsistencyBonus rewards high completion rates on days that
// earned anything at all.
func (s *Service) applyConsistencyBonus(entry *models.LedgerEntry, settings *models.Settings) {
	if entry.PointsEarned <= 0 {
		return
	}
	switch {
	case entry.CompletionRate >= 1.0:
		entry.PointsBonus = int(float64(entry.PointsEarned) * settings.CompletionBonusFull)
	case entry.CompletionRate >= 0.8:
		entry.PointsBonus = int(float64(entry.PointsEarned) * settings.CompletionBonusGood)
	}
}

// missedHabitsPenalty charges for every habit due on the date that was
// not completed. Routines get a reduced charge.
func (s *Service) missedHabitsPenalty(date time.Time, entry *models.LedgerEntry, settings *models.Settings) ([]models.MissedHabit, int, error) {
	start, end := DayRange(date)

	missed, err := s.tasks.HabitsDueInRange(start, end)
	if err != nil {
		return nil, 0, err
	}
	if len(missed) == 0 {
		return nil, 0, nil
	}

	penalty := 0
	var details []models.MissedHabit
	for _, habit := range missed {
		habitPenalty := settings.MissedHabitPenaltyBase
		if habit.HabitType != models.HabitSkill {
			habitPenalty = int(float64(settings.MissedHabitPenaltyBase) * routinePenaltyMultiplier)
		}
		penalty += habitPenalty
		details = append(details, models.MissedHabit{
			TaskID:      habit.ID,
			Description: habit.Description,
			HabitType:   habit.HabitType,
			Penalty:     habitPenalty,
		})
	}
	return details, penalty, nil
}

// applyProgressiveMultiplier scales a non-zero penalty by the streak of
// consecutive penalized days, capped at the configured maximum. On a
// zero-penalty day it instead resolves the streak: reset after enough
// clean days, otherwise carried forward.
func (s *Service) applyProgressiveMultiplier(penalty int, date time.Time, entry *models.LedgerEntry, settings *models.Settings) (int, float64, error) {
	yesterday := date.AddDate(0, 0, -1)

	if penalty > 0 {
		prevStreak, err := s.effectivePenaltyStreak(yesterday, backfillLookbackDays)
		if err != nil {
			return 0, 0, err
		}
		entry.PenaltyStreak = prevStreak + 1

		multiplier := 1 + min(
			float64(entry.PenaltyStreak)*settings.ProgressivePenaltyFactor,
			settings.ProgressivePenaltyMax-1,
		)
		return int(float64(penalty) * multiplier), multiplier, nil
	}

	if err := s.resolveStreakWithoutPenalty(entry, yesterday, settings); err != nil {
		return 0, 0, err
	}
	return 0, 1.0, nil
}

// effectivePenaltyStreak derives the penalty streak standing at the end
// of the given day, walking back through prior days when the entry holds
// a penalty but never had its streak resolved.
func (s *Service) effectivePenaltyStreak(date time.Time, lookback int) (int, error) {
	if lookback <= 0 {
		return 0, nil
	}

	entry, err := s.ledger.GetByDate(date)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	if entry.PenaltyStreak > 0 {
		return entry.PenaltyStreak, nil
	}
	if entry.PointsPenalty == 0 {
		return 0, nil
	}

	// Penalized but unresolved: count it and keep walking back.
	prev, err := s.effectivePenaltyStreak(date.AddDate(0, 0, -1), lookback-1)
	if err != nil {
		return 0, err
	}
	return prev + 1, nil
}

// resolveStreakWithoutPenalty resets the streak once enough consecutive
// zero-penalty days have passed, otherwise carries yesterday's value.
func (s *Service) resolveStreakWithoutPenalty(entry *models.LedgerEntry, yesterday time.Time, settings *models.Settings) error {
	prevEntry, err := s.ledger.GetByDate(yesterday)
	if err != nil {
		return err
	}
	if prevEntry == nil {
		entry.PenaltyStreak = 0
		return nil
	}

	daysWithoutPenalty := 1 // today
	check := yesterday
	for i := 0; i < settings.PenaltyStreakResetDays-1; i++ {
		hist, err := s.ledger.GetByDate(check)
		if err != nil {
			return err
		}
		if hist == nil || hist.PointsPenalty != 0 {
			break
		}
		daysWithoutPenalty++
		check = check.AddDate(0, 0, -1)
	}

	if daysWithoutPenalty >= settings.PenaltyStreakResetDays {
		entry.PenaltyStreak = 0
	} else {
		entry.PenaltyStreak = prevEntry.PenaltyStreak
	}
	return nil
}

// applyFinalPenalties writes the penalty into the entry's totals.
// Earned points were already folded into the cumulative total at
// completion time, so only bonus and penalty move it here; any change is
// propagated into every later entry so re-finalizing an old day never
// desynchronizes the running totals.
func (s *Service) applyFinalPenalties(entry *models.LedgerEntry, penalty int) error {
	entry.PointsPenalty = penalty
	entry.DailyTotal = entry.PointsEarned + entry.PointsBonus - entry.PointsPenalty

	netChange := entry.PointsBonus - penalty
	oldCumulative := entry.CumulativeTotal
	entry.CumulativeTotal = max(0, entry.CumulativeTotal+netChange)

	if err := s.ledger.Update(entry); err != nil {
		return err
	}

	if delta := entry.CumulativeTotal - oldCumulative; delta != 0 {
		return s.propagateCumulativeChange(entry.Date, delta)
	}
	return nil
}

// propagateCumulativeChange shifts the cumulative total of every entry
// after the given date by delta, keeping the floor at 0.
func (s *Service) propagateCumulativeChange(from time.Time, delta int) error {
	later, err := s.ledger.After(from)
	if err != nil {
		return err
	}
	for i := range later {
		later[i].CumulativeTotal = max(0, later[i].CumulativeTotal+delta)
		if err := s.ledger.Update(&later[i]); err != nil {
			return err
		}
	}
	return nil
}
