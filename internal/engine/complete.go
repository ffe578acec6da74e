package engine

import (
	"fmt"
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// Streak grace windows in days: completing a habit within this many days
// of the previous completion keeps the streak alive.
const weeklyStreakWindowDays = 14

// CreateTask persists a new task. A recurring habit with a stale due
// date is fast-forwarded to its next occurrence, and one without any due
// date gets one at today.
func (s *Service) CreateTask(task *models.Task) error {
	now := s.now()
	today, err := s.EffectiveToday()
	if err != nil {
		return err
	}

	if task.IsRecurring() {
		if task.Due == nil {
			task.Due = &today
		} else {
			due := FastForwardDue(task, *task.Due, today)
			task.Due = &due
		}
	}

	task.CalculateUrgency(now)
	return s.tasks.Create(task)
}

// UpdateTask recomputes urgency and persists the change.
func (s *Service) UpdateTask(task *models.Task) error {
	task.CalculateUrgency(s.now())
	return s.tasks.Update(task)
}

// DeleteTask removes a task by id.
func (s *Service) DeleteTask(id uint) error {
	task, err := s.tasks.GetByID(id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	return s.tasks.Delete(task)
}

// StartTask begins tracking time on a task. id 0 means the next task by
// urgency. Any previously active task is stopped first so only one task
// accrues time at a time.
func (s *Service) StartTask(id uint) (*models.Task, error) {
	var task *models.Task
	var err error
	if id == 0 {
		task, err = s.tasks.NextTask()
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, ErrTaskNotFound
		}
	} else {
		task, err = s.tasks.GetByID(id)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, ErrTaskNotFound
		}
	}

	if task.Status == models.StatusCompleted {
		return nil, fmt.Errorf("task %d already completed", task.ID)
	}

	if err := s.stopActiveTasks(task.ID); err != nil {
		return nil, err
	}
	if task.Status == models.StatusActive {
		return task, nil
	}

	now := s.now()
	task.Status = models.StatusActive
	task.StartedAt = &now
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// StopTask pauses the active task, banking the elapsed time.
func (s *Service) StopTask() (*models.Task, error) {
	task, err := s.tasks.ActiveTask()
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNoActiveTask
	}

	// StartedAt stays set: the task has been worked on at least once,
	// which is what the focus factor checks.
	s.bankElapsed(task)
	task.Status = models.StatusPending
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// stopActiveTasks pauses every active task except the one being started,
// banking their elapsed time.
func (s *Service) stopActiveTasks(exceptID uint) error {
	active, err := s.tasks.ActiveTasks()
	if err != nil {
		return err
	}
	for i := range active {
		if active[i].ID == exceptID {
			continue
		}
		s.bankElapsed(&active[i])
		active[i].Status = models.StatusPending
		if err := s.tasks.Update(&active[i]); err != nil {
			return err
		}
	}
	return nil
}

// bankElapsed folds the current tracking session into TimeSpent.
func (s *Service) bankElapsed(task *models.Task) {
	if task.Status != models.StatusActive || task.StartedAt == nil {
		return
	}
	elapsed := int(s.now().Sub(*task.StartedAt).Seconds())
	if elapsed > 0 {
		task.TimeSpent += elapsed
	}
}

// CompleteTask finishes a task and credits its points. id 0 means the
// currently active task. Completing a task whose prerequisite is
// unfinished fails with ErrDependencyNotMet. For recurring habits the
// streak is updated and the next occurrence is scheduled.
func (s *Service) CompleteTask(id uint) (*models.Task, int, error) {
	var task *models.Task
	var err error
	if id == 0 {
		task, err = s.tasks.ActiveTask()
		if err != nil {
			return nil, 0, err
		}
		if task == nil {
			return nil, 0, ErrNoActiveTask
		}
	} else {
		task, err = s.tasks.GetByID(id)
		if err != nil {
			return nil, 0, err
		}
		if task == nil {
			return nil, 0, ErrTaskNotFound
		}
	}

	if task.Status == models.StatusCompleted {
		return nil, 0, fmt.Errorf("task %d already completed", task.ID)
	}

	met, err := s.dependenciesMet(task)
	if err != nil {
		return nil, 0, err
	}
	if !met {
		return nil, 0, ErrDependencyNotMet
	}

	now := s.now()
	today, err := s.EffectiveToday()
	if err != nil {
		return nil, 0, err
	}

	s.bankElapsed(task)
	task.Status = models.StatusCompleted
	task.CompletedAt = &now

	if task.IsHabit {
		s.updateHabitStreak(task, today)
		task.LastCompletedDate = &today
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, 0, err
	}

	points, err := s.awardCompletionPoints(task)
	if err != nil {
		return nil, 0, err
	}

	if task.IsRecurring() {
		if err := s.scheduleNextOccurrence(task, today); err != nil {
			return nil, 0, err
		}
	}

	if _, err := s.CheckGoalAchievements(); err != nil {
		return nil, 0, err
	}

	return task, points, nil
}

// updateHabitStreak extends the streak when the habit was completed
// within its recurrence window of the previous completion, otherwise
// restarts it at 1.
func (s *Service) updateHabitStreak(task *models.Task, today time.Time) {
	if task.LastCompletedDate == nil {
		task.Streak = 1
		return
	}

	gap := int(Midnight(today).Sub(Midnight(*task.LastCompletedDate)).Hours() / 24)

	window := 1
	switch task.RecurrenceType {
	case models.RecurrenceEveryNDays:
		window = task.RecurrenceInterval
		if window < 1 {
			window = 1
		}
	case models.RecurrenceWeekly:
		window = weeklyStreakWindowDays
	}

	if gap <= window {
		task.Streak++
	} else {
		task.Streak = 1
	}
}

// scheduleNextOccurrence creates the habit's next pending instance,
// carrying the streak forward.
func (s *Service) scheduleNextOccurrence(habit *models.Task, today time.Time) error {
	from := today
	if habit.Due != nil && habit.Due.After(today) {
		from = Midnight(*habit.Due)
	}
	nextDue := NextDueDate(habit, from)
	if nextDue == nil {
		return nil
	}

	next := models.Task{
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
		Streak:             habit.Streak,
		LastCompletedDate:  habit.LastCompletedDate,
	}
	next.CalculateUrgency(s.now())
	return s.tasks.Create(&next)
}

// Stats is a small dashboard summary of today's plan and the backlog.
type Stats struct {
	DoneToday    int
	PendingToday int
	TotalPending int
}

// TodayStats summarizes progress on today's plan.
func (s *Service) TodayStats() (*Stats, error) {
	today, err := s.EffectiveToday()
	if err != nil {
		return nil, err
	}
	start, end := DayRange(today)

	doneTasks, err := s.tasks.CompletedCountInRange(start, end, false)
	if err != nil {
		return nil, err
	}
	doneHabits, err := s.tasks.CompletedCountInRange(start, end, true)
	if err != nil {
		return nil, err
	}
	todayTasks, err := s.tasks.TodayTasks()
	if err != nil {
		return nil, err
	}
	totalPending, err := s.tasks.TotalPendingCount()
	if err != nil {
		return nil, err
	}

	return &Stats{
		DoneToday:    doneTasks + doneHabits,
		PendingToday: len(todayTasks),
		TotalPending: totalPending,
	}, nil
}

// DayDetails is the decoded scoring record for one day.
type DayDetails struct {
	Entry   *models.LedgerEntry
	Details models.EntryDetails
}

// DetailsForDay returns the full scoring record for a date, or nil when
// no entry exists.
func (s *Service) DetailsForDay(date time.Time) (*DayDetails, error) {
	entry, err := s.ledger.GetByDate(Midnight(date))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return &DayDetails{Entry: entry, Details: entry.DecodeDetails()}, nil
}
