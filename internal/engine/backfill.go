package engine

import (
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// backfillLookbackDays bounds how far back the catch-up walk scans, so a
// long-abandoned database never triggers unbounded work.
const backfillLookbackDays = 14

// finalizeMissingDays catches up every day the user skipped: it scans
// backward from yesterday to find the oldest unfinalized day that still
// has obligations, then walks forward finalizing each one. Days without
// a ledger entry get one synthesized (inheriting the cumulative total),
// and each missed habit is rolled forward one occurrence at a time, so a
// daily habit missed three days running incurs three escalating
// penalties rather than one. Caller holds the mutex.
func (s *Service) finalizeMissingDays(today time.Time) error {
	yesterday := today.AddDate(0, 0, -1)
	horizon := today.AddDate(0, 0, -backfillLookbackDays)

	start, err := s.findBackfillStart(yesterday, horizon)
	if err != nil {
		return err
	}
	if start == nil {
		return nil
	}

	for day := *start; !day.After(yesterday); day = day.AddDate(0, 0, 1) {
		if err := s.backfillDay(day); err != nil {
			return err
		}
	}
	return nil
}

// findBackfillStart walks backward from yesterday and returns the oldest
// day needing finalization, or nil when everything is settled. The walk
// stops at the first finalized day: everything before it was already
// caught up by an earlier pass.
func (s *Service) findBackfillStart(yesterday, horizon time.Time) (*time.Time, error) {
	var oldest *time.Time

	for day := yesterday; !day.Before(horizon); day = day.AddDate(0, 0, -1) {
		entry, err := s.ledger.GetByDate(day)
		if err != nil {
			return nil, err
		}
		if entry != nil && entry.Finalized() {
			break
		}

		if entry != nil {
			d := day
			oldest = &d
			continue
		}

		// No entry: the day still matters if habits were due on it.
		dayStart, dayEnd := DayRange(day)
		due, err := s.tasks.HabitsDueInRange(dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if len(due) > 0 {
			d := day
			oldest = &d
		}
	}
	return oldest, nil
}

// backfillDay finalizes one skipped day and rolls its missed habits
// forward. Rest days roll habits forward without charging anything.
func (s *Service) backfillDay(day time.Time) error {
	dayStart, dayEnd := DayRange(day)
	missedHabits, err := s.tasks.HabitsDueInRange(dayStart, dayEnd)
	if err != nil {
		return err
	}

	restDay, err := s.restDays.GetByDate(day)
	if err != nil {
		return err
	}

	if restDay == nil {
		entry, err := s.ledger.GetByDate(day)
		if err != nil {
			return err
		}
		if entry == nil && len(missedHabits) > 0 {
			if _, err := s.getOrCreateEntry(day); err != nil {
				return err
			}
		}
		if _, err := s.finalizeSingleDay(day, true); err != nil {
			return err
		}
	}

	// Roll forward after the day's penalty has been charged, so the
	// next day's pass sees the habit on its next due date.
	for i := range missedHabits {
		if err := s.rollHabitForward(&missedHabits[i], day); err != nil {
			return err
		}
	}
	return nil
}

// rollHabitForward replaces a missed habit with its next occurrence:
// due date advanced per the recurrence rule and streak reset to 0 (the
// streak was broken). Non-recurring habits are simply deleted.
func (s *Service) rollHabitForward(habit *models.Task, missedDay time.Time) error {
	if !habit.IsRecurring() {
		return s.tasks.Delete(habit)
	}

	nextDue := NextDueDate(habit, missedDay)
	if nextDue == nil {
		return s.tasks.Delete(habit)
	}

	successor := models.Task{
		Description:        habit.Description,
		Project:            habit.Project,
		Priority:           habit.Priority,
		Energy:             habit.Energy,
		Status:             models.StatusPending,
		IsHabit:            true,
		HabitType:          habit.HabitType,
		RecurrenceType:     habit.RecurrenceType,
		RecurrenceInterval: habit.RecurrenceInterval,
		RecurrenceDays:     habit.RecurrenceDays,
		Due:                nextDue,
		Streak:             0,
		LastCompletedDate:  habit.LastCompletedDate,
	}
	successor.CalculateUrgency(s.now())

	if err := s.tasks.Delete(habit); err != nil {
		return err
	}
	return s.tasks.Create(&successor)
}
