package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dailyroll/dailyroll/internal/models"
)

// TaskStore provides task persistence over GORM.
type TaskStore struct {
	db *gorm.DB
}

// NewTaskStore creates a task store bound to the given connection.
func NewTaskStore(g *gorm.DB) *TaskStore {
	return &TaskStore{db: g}
}

// GetByID returns the task, or (nil, nil) when it does not exist.
func (s *TaskStore) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// All returns every task, newest first.
func (s *TaskStore) All() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// ActiveTask returns the currently active task, or (nil, nil) when none.
func (s *TaskStore) ActiveTask() (*models.Task, error) {
	var task models.Task
	err := s.db.Where("status = ?", models.StatusActive).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ActiveTasks returns all active tasks. The single-focus invariant means
// at most one, but start-task stops every one it finds.
func (s *TaskStore) ActiveTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("status = ?", models.StatusActive).Find(&tasks).Error
	return tasks, err
}

// NextTask returns the most urgent pending non-habit task.
func (s *TaskStore) NextTask() (*models.Task, error) {
	var task models.Task
	err := s.db.
		Where("status = ? AND is_habit = ?", models.StatusPending, false).
		Order("urgency DESC").
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// AvailableTasks returns pending non-habit tasks, the roll lottery pool.
func (s *TaskStore) AvailableTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("status = ? AND is_habit = ?", models.StatusPending, false).
		Find(&tasks).Error
	return tasks, err
}

// TodayTasks returns pending non-habit tasks flagged for today's plan.
func (s *TaskStore) TodayTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("status = ? AND is_habit = ? AND is_today = ?", models.StatusPending, false, true).
		Order("urgency DESC").
		Find(&tasks).Error
	return tasks, err
}

// CriticalTasks returns pending non-habit tasks due within [start, end).
func (s *TaskStore) CriticalTasks(start, end time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("status = ? AND is_habit = ? AND due >= ? AND due < ?",
			models.StatusPending, false, start, end).
		Find(&tasks).Error
	return tasks, err
}

// HabitsDueInRange returns pending habits due within [start, end).
func (s *TaskStore) HabitsDueInRange(start, end time.Time) ([]models.Task, error) {
	var habits []models.Task
	err := s.db.
		Where("status = ? AND is_habit = ? AND due >= ? AND due < ?",
			models.StatusPending, true, start, end).
		Find(&habits).Error
	return habits, err
}

// OverdueHabits returns pending habits due strictly before the cutoff.
func (s *TaskStore) OverdueHabits(before time.Time) ([]models.Task, error) {
	var habits []models.Task
	err := s.db.
		Where("status = ? AND is_habit = ? AND due < ?", models.StatusPending, true, before).
		Find(&habits).Error
	return habits, err
}

// CompletedCountInRange counts tasks or habits completed within [start, end).
func (s *TaskStore) CompletedCountInRange(start, end time.Time, isHabit bool) (int, error) {
	var count int64
	err := s.db.Model(&models.Task{}).
		Where("status = ? AND is_habit = ? AND completed_at >= ? AND completed_at < ?",
			models.StatusCompleted, isHabit, start, end).
		Count(&count).Error
	return int(count), err
}

// CompletedInRange returns tasks or habits completed within [start, end).
func (s *TaskStore) CompletedInRange(start, end time.Time, isHabit bool) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("status = ? AND is_habit = ? AND completed_at >= ? AND completed_at < ?",
			models.StatusCompleted, isHabit, start, end).
		Find(&tasks).Error
	return tasks, err
}

// ClearTodayFlags drops the today flag from all pending non-habit tasks.
func (s *TaskStore) ClearTodayFlags() error {
	return s.db.Model(&models.Task{}).
		Where("is_habit = ? AND status = ?", false, models.StatusPending).
		Update("is_today", false).Error
}

// CountByProject returns total and completed non-habit task counts for a project.
func (s *TaskStore) CountByProject(project string) (total int, completed int, err error) {
	var t, c int64
	err = s.db.Model(&models.Task{}).
		Where("project = ? AND is_habit = ?", project, false).
		Count(&t).Error
	if err != nil {
		return 0, 0, err
	}
	err = s.db.Model(&models.Task{}).
		Where("project = ? AND is_habit = ? AND status = ?", project, false, models.StatusCompleted).
		Count(&c).Error
	return int(t), int(c), err
}

// TotalPendingCount counts all pending non-habit tasks.
func (s *TaskStore) TotalPendingCount() (int, error) {
	var count int64
	err := s.db.Model(&models.Task{}).
		Where("status = ? AND is_habit = ?", models.StatusPending, false).
		Count(&count).Error
	return int(count), err
}

// Create inserts the task.
func (s *TaskStore) Create(task *models.Task) error {
	return s.db.Create(task).Error
}

// Update saves the task.
func (s *TaskStore) Update(task *models.Task) error {
	return s.db.Save(task).Error
}

// Delete removes the task (soft delete).
func (s *TaskStore) Delete(task *models.Task) error {
	return s.db.Delete(task).Error
}
