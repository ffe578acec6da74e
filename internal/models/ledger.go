package models

import (
	"encoding/json"
	"time"
)

// LedgerEntry is the per-day scoring record. Exactly one entry exists per
// effective date; a day is finalized once its details carry a penalty
// breakdown (a legitimately zero-penalty day still gets one).
type LedgerEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Date time.Time `gorm:"uniqueIndex;not null" json:"date"` // normalized to midnight

	PointsEarned  int `gorm:"default:0" json:"points_earned"`
	PointsPenalty int `gorm:"default:0" json:"points_penalty"`
	PointsBonus   int `gorm:"default:0" json:"points_bonus"`

	// DailyTotal = earned + bonus - penalty; CumulativeTotal is the
	// running score, floored at 0.
	DailyTotal      int `gorm:"default:0" json:"daily_total"`
	CumulativeTotal int `gorm:"default:0" json:"cumulative_total"`

	TasksCompleted  int     `gorm:"default:0" json:"tasks_completed"`
	HabitsCompleted int     `gorm:"default:0" json:"habits_completed"`
	TasksPlanned    int     `gorm:"default:0" json:"tasks_planned"`
	CompletionRate  float64 `gorm:"default:0" json:"completion_rate"`

	// Consecutive days-with-penalty count
	PenaltyStreak int `gorm:"default:0" json:"penalty_streak"`

	// Free-form breakdown, serialized EntryDetails
	Details string `json:"details"`
}

// TaskCompletion is one completion event recorded in a day's details.
type TaskCompletion struct {
	TaskID      uint      `json:"task_id"`
	Description string    `json:"description"`
	IsHabit     bool      `json:"is_habit"`
	Points      int       `json:"points"`
	Time        time.Time `json:"time"`
}

// PlannedTask is the roll-time snapshot of one planned task. Energy is
// captured at roll time so later edits cannot change the penalty math.
type PlannedTask struct {
	TaskID      uint   `json:"task_id"`
	Description string `json:"description"`
	Energy      int    `json:"energy"`
}

// MissedHabit records one habit that was due but not completed.
type MissedHabit struct {
	TaskID      uint   `json:"task_id"`
	Description string `json:"description"`
	HabitType   string `json:"habit_type"`
	Penalty     int    `json:"penalty"`
}

// IncompleteTask records one planned task that was not completed.
type IncompleteTask struct {
	TaskID      uint   `json:"task_id"`
	Description string `json:"description"`
	Energy      int    `json:"energy"`
	Potential   int    `json:"potential"`
}

// PenaltyBreakdown is the audit record stored when a day is finalized.
// Its presence is the finalization marker.
type PenaltyBreakdown struct {
	IdlePenalty           int              `json:"idle_penalty"`
	IncompletePenalty     int              `json:"incomplete_penalty"`
	MissedHabitsPenalty   int              `json:"missed_habits_penalty"`
	ProgressiveMultiplier float64          `json:"progressive_multiplier"`
	TotalPenalty          int              `json:"total_penalty"`
	PenaltyStreak         int              `json:"penalty_streak"`
	MissedHabits          []MissedHabit    `json:"missed_habits"`
	IncompleteTasks       []IncompleteTask `json:"incomplete_tasks"`
	AutoFinalized         bool             `json:"auto_finalized,omitempty"`
}

// EntryDetails is the decoded form of LedgerEntry.Details.
type EntryDetails struct {
	TaskCompletions  []TaskCompletion  `json:"task_completions,omitempty"`
	PlannedTasks     []PlannedTask     `json:"planned_tasks,omitempty"`
	PenaltyBreakdown *PenaltyBreakdown `json:"penalty_breakdown,omitempty"`
}

// DecodeDetails parses the entry's details JSON. Malformed or empty
// details decode to a zero value rather than an error.
func (e *LedgerEntry) DecodeDetails() EntryDetails {
	var d EntryDetails
	if e.Details == "" {
		return d
	}
	if err := json.Unmarshal([]byte(e.Details), &d); err != nil {
		return EntryDetails{}
	}
	return d
}

// EncodeDetails serializes d back onto the entry.
func (e *LedgerEntry) EncodeDetails(d EntryDetails) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	e.Details = string(raw)
}

// Finalized reports whether the day's penalties have been applied.
func (e *LedgerEntry) Finalized() bool {
	return e.DecodeDetails().PenaltyBreakdown != nil
}
