package engine

import (
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// Roll defaults.
const (
	DefaultDailyLimit   = 5
	DefaultCriticalDays = 2
)

// RollResult is what a successful roll hands back to the caller.
type RollResult struct {
	Date          time.Time      `json:"date"`
	Habits        []models.Task  `json:"habits"`
	Tasks         []models.Task  `json:"tasks"`
	DeletedHabits int            `json:"deleted_habits"`
	PenaltyInfo   *PenaltyResult `json:"penalty_info"`
}

// CanRollNow reports whether a roll is currently permitted, with the
// reason when it is not.
func (s *Service) CanRollNow() (bool, string, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return false, "", err
	}
	return s.canRollNowWith(settings)
}

func (s *Service) canRollNowWith(settings *models.Settings) (bool, string, error) {
	now := s.now()
	today := EffectiveDate(now, settings.DayStartEnabled, settings.DayStartTime)

	if settings.LastRollDate != nil && Midnight(*settings.LastRollDate).Equal(today) {
		return false, "Roll already done today", nil
	}

	// A fixed availability time only makes sense without a day-start
	// offset; the offset itself gates the day change.
	if !settings.DayStartEnabled {
		if target, ok := ParseClock(settings.RollAvailableTime); ok {
			current := now.Hour()*60 + now.Minute()
			if current < target {
				return false, "Roll will be available at " + formatClock(target), nil
			}
		}
	}

	return true, "", nil
}

func formatClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	digits := []byte{
		byte('0' + h/10), byte('0' + h%10),
		':',
		byte('0' + m/10), byte('0' + m%10),
	}
	return string(digits)
}

// Roll runs the once-per-effective-day plan selection: finalize
// yesterday (backfilling skipped days first), drop leftover overdue
// habits, auto-flag critical tasks, fill the remaining slots by random
// selection, snapshot the plan into the ledger, and record the roll
// marker. mood, when in "0".."5", caps the energy of randomly selected
// tasks.
func (s *Service) Roll(mood string, dailyLimit, criticalDays int) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	ok, reason, err := s.canRollNowWith(settings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &RollUnavailableError{Reason: reason}
	}

	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	if criticalDays <= 0 {
		criticalDays = DefaultCriticalDays
	}

	today := EffectiveDate(s.now(), settings.DayStartEnabled, settings.DayStartTime)

	// Penalties first: the backfill pass must see habit state before
	// overdue cleanup destroys the evidence of what was missed.
	penaltyInfo, err := s.calculateDailyPenaltiesLocked()
	if err != nil {
		return nil, err
	}

	// Habits still overdue after backfill (non-recurring, or due before
	// the lookback horizon) will never recur; drop them.
	deletedCount, err := s.deleteOverdueHabits(today)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.ClearTodayFlags(); err != nil {
		return nil, err
	}

	criticalCount, err := s.scheduleCriticalTasks(today, criticalDays)
	if err != nil {
		return nil, err
	}

	if err := s.scheduleRandomTasks(mood, dailyLimit, criticalCount); err != nil {
		return nil, err
	}

	todayTasks, err := s.tasks.TodayTasks()
	if err != nil {
		return nil, err
	}

	if err := s.savePlannedSnapshot(today, todayTasks); err != nil {
		return nil, err
	}

	todayStart, todayEnd := DayRange(today)
	habits, err := s.tasks.HabitsDueInRange(todayStart, todayEnd)
	if err != nil {
		return nil, err
	}

	rollDate := today
	settings.LastRollDate = &rollDate
	if err := s.settings.Update(settings); err != nil {
		return nil, err
	}

	return &RollResult{
		Date:          today,
		Habits:        habits,
		Tasks:         todayTasks,
		DeletedHabits: deletedCount,
		PenaltyInfo:   penaltyInfo,
	}, nil
}

// deleteOverdueHabits removes pending habits due strictly before today.
func (s *Service) deleteOverdueHabits(today time.Time) (int, error) {
	overdue, err := s.tasks.OverdueHabits(Midnight(today))
	if err != nil {
		return 0, err
	}
	for i := range overdue {
		if err := s.tasks.Delete(&overdue[i]); err != nil {
			return 0, err
		}
	}
	return len(overdue), nil
}

// scheduleCriticalTasks flags every pending task due within the critical
// window; these bypass the lottery.
func (s *Service) scheduleCriticalTasks(today time.Time, criticalDays int) (int, error) {
	start := Midnight(today)
	end := start.AddDate(0, 0, criticalDays)

	critical, err := s.tasks.CriticalTasks(start, end)
	if err != nil {
		return 0, err
	}
	for i := range critical {
		critical[i].IsToday = true
		if err := s.tasks.Update(&critical[i]); err != nil {
			return 0, err
		}
	}
	return len(critical), nil
}

// scheduleRandomTasks fills the remaining plan slots in two passes:
// first tasks whose dependency (if any) is already satisfied, then tasks
// whose dependency is itself in today's plan and could plausibly finish
// first.
func (s *Service) scheduleRandomTasks(mood string, dailyLimit, criticalCount int) error {
	slots := dailyLimit - criticalCount
	if slots <= 0 {
		return nil
	}

	available, err := s.tasks.AvailableTasks()
	if err != nil {
		return err
	}

	var ready []models.Task
	for _, t := range available {
		met, err := s.dependenciesMet(&t)
		if err != nil {
			return err
		}
		if met {
			ready = append(ready, t)
		}
	}
	selected, err := s.selectAndFlag(filterByMood(ready, mood), slots)
	if err != nil {
		return err
	}

	if selected < slots {
		var dependent []models.Task
		for _, t := range available {
			if t.IsToday {
				continue
			}
			inPlan, err := s.dependencyInTodayPlan(&t)
			if err != nil {
				return err
			}
			if inPlan {
				dependent = append(dependent, t)
			}
		}
		if _, err := s.selectAndFlag(filterByMood(dependent, mood), slots-selected); err != nil {
			return err
		}
	}
	return nil
}

// dependenciesMet reports whether the task's prerequisite is completed.
// A missing (deleted) prerequisite counts as satisfied.
func (s *Service) dependenciesMet(task *models.Task) (bool, error) {
	if task.DependsOn == nil {
		return true, nil
	}
	dep, err := s.tasks.GetByID(*task.DependsOn)
	if err != nil {
		return false, err
	}
	if dep == nil {
		return true, nil
	}
	return dep.Status == models.StatusCompleted, nil
}

// dependencyInTodayPlan reports whether the task's prerequisite is a
// pending task already flagged for today.
func (s *Service) dependencyInTodayPlan(task *models.Task) (bool, error) {
	if task.DependsOn == nil {
		return false, nil
	}
	dep, err := s.tasks.GetByID(*task.DependsOn)
	if err != nil {
		return false, err
	}
	if dep == nil {
		return false, nil
	}
	return dep.Status == models.StatusPending && dep.IsToday, nil
}

// filterByMood keeps tasks at or below the given energy level. A mood
// outside "0".."5" disables the filter.
func filterByMood(tasks []models.Task, mood string) []models.Task {
	if len(mood) != 1 || mood[0] < '0' || mood[0] > '5' {
		return tasks
	}
	level := int(mood[0] - '0')

	var filtered []models.Task
	for _, t := range tasks {
		if t.Energy <= level {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// selectAndFlag shuffles the candidates with the injected random source
// and flags up to `slots` of them for today.
func (s *Service) selectAndFlag(tasks []models.Task, slots int) (int, error) {
	s.rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})

	selected := 0
	for i := range tasks {
		if selected >= slots {
			break
		}
		if tasks[i].IsToday {
			continue
		}
		tasks[i].IsToday = true
		if err := s.tasks.Update(&tasks[i]); err != nil {
			return selected, err
		}
		selected++
	}
	return selected, nil
}

// savePlannedSnapshot records today's plan size and the id+energy of
// every planned task into the ledger, for the incomplete-day penalty.
func (s *Service) savePlannedSnapshot(today time.Time, planned []models.Task) error {
	entry, err := s.getOrCreateEntry(today)
	if err != nil {
		return err
	}

	entry.TasksPlanned = len(planned)

	details := entry.DecodeDetails()
	details.PlannedTasks = details.PlannedTasks[:0]
	for _, t := range planned {
		details.PlannedTasks = append(details.PlannedTasks, models.PlannedTask{
			TaskID:      t.ID,
			Description: t.Description,
			Energy:      t.Energy,
		})
	}
	entry.EncodeDetails(details)

	return s.ledger.Update(entry)
}
