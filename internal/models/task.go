package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. A task is created pending, may become the single active
// task, and ends completed (or deleted).
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Habit kinds. Skill habits earn a streak bonus, routines earn fixed points.
const (
	HabitSkill   = "skill"
	HabitRoutine = "routine"
)

// Recurrence types for habits.
const (
	RecurrenceNone       = "none"
	RecurrenceDaily      = "daily"
	RecurrenceEveryNDays = "every_n_days"
	RecurrenceWeekly     = "weekly"
)

// Task represents a unit of work or a recurring habit
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Description string `gorm:"not null" json:"description"`
	Project     string `json:"project"`
	Status      string `gorm:"default:pending" json:"status"`
	Priority    int    `gorm:"default:5" json:"priority"` // 0-10
	Energy      int    `gorm:"default:3" json:"energy"`   // 0-5
	IsToday     bool   `gorm:"default:false" json:"is_today"`

	Due         *time.Time `json:"due"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Accumulated work time in seconds
	TimeSpent int `gorm:"default:0" json:"time_spent"`

	// ID of a task that must be completed first
	DependsOn *uint `json:"depends_on"`

	// Habit fields
	IsHabit            bool       `gorm:"default:false" json:"is_habit"`
	HabitType          string     `gorm:"default:skill" json:"habit_type"`
	RecurrenceType     string     `gorm:"default:none" json:"recurrence_type"`
	RecurrenceInterval int        `gorm:"default:1" json:"recurrence_interval"`
	RecurrenceDays     string     `json:"recurrence_days"` // JSON array of weekdays, e.g. "[1,3,5]"
	Streak             int        `gorm:"default:0" json:"streak"`
	LastCompletedDate  *time.Time `json:"last_completed_date"`

	// Derived, used only for selection ordering
	Urgency float64 `gorm:"default:0" json:"urgency"`
}

// CalculateUrgency derives the weighted-selection score from priority,
// due date proximity, and energy. Higher urgency means a higher chance of
// landing in today's plan.
func (t *Task) CalculateUrgency(now time.Time) float64 {
	urgency := float64(t.Priority) * 10.0

	if t.Due != nil {
		daysUntil := int(t.Due.Sub(now).Hours() / 24)
		switch {
		case daysUntil <= 0:
			urgency += 100.0 // overdue
		case daysUntil <= 2:
			urgency += 75.0 // critical
		case daysUntil <= 7:
			urgency += 30.0 // soon
		}
	}

	if t.Energy >= 4 {
		urgency += 5.0
	} else if t.Energy <= 1 {
		urgency -= 5.0
	}

	t.Urgency = urgency
	return urgency
}

// IsRecurring reports whether the task repeats after completion.
func (t *Task) IsRecurring() bool {
	return t.IsHabit && t.RecurrenceType != RecurrenceNone
}
