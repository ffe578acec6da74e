package models

import "time"

// Settings is the singleton row of tunable coefficients. The first call
// to SettingsStore.Get creates it with these defaults; every calculation
// receives it as an immutable snapshot.
type Settings struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	MaxTasksPerDay int `gorm:"default:10" json:"max_tasks_per_day"`

	// Base points
	PointsPerTaskBase  int `gorm:"default:10" json:"points_per_task_base"`
	PointsPerHabitBase int `gorm:"default:10" json:"points_per_habit_base"`

	// Energy multiplier: base + energy*step (E0 0.6 ... E5 1.6)
	EnergyMultBase float64 `gorm:"default:0.6" json:"energy_mult_base"`
	EnergyMultStep float64 `gorm:"default:0.2" json:"energy_mult_step"`

	// Time quality: expected seconds = energy * minutes-per-unit * 60
	MinutesPerEnergyUnit int `gorm:"default:20" json:"minutes_per_energy_unit"`
	MinWorkTimeSeconds   int `gorm:"default:120" json:"min_work_time_seconds"`

	// Skill habit streak bonus: 1 + log2(streak+1) * factor
	StreakLogFactor float64 `gorm:"default:0.15" json:"streak_log_factor"`

	// Routine habits earn a flat award
	RoutinePointsFixed int `gorm:"default:6" json:"routine_points_fixed"`

	// Daily consistency bonus tiers
	CompletionBonusFull float64 `gorm:"default:0.10" json:"completion_bonus_full"`
	CompletionBonusGood float64 `gorm:"default:0.05" json:"completion_bonus_good"`

	// Penalties
	IdlePenalty              int     `gorm:"default:30" json:"idle_penalty"`
	IncompletePenaltyPercent float64 `gorm:"default:0.5" json:"incomplete_penalty_percent"`
	MissedHabitPenaltyBase   int     `gorm:"default:15" json:"missed_habit_penalty_base"`
	ProgressivePenaltyFactor float64 `gorm:"default:0.1" json:"progressive_penalty_factor"`
	ProgressivePenaltyMax    float64 `gorm:"default:1.5" json:"progressive_penalty_max"`
	PenaltyStreakResetDays   int     `gorm:"default:2" json:"penalty_streak_reset_days"`

	// Roll guard: last effective date a roll completed
	LastRollDate *time.Time `json:"last_roll_date"`

	// Day boundary: when enabled, the logical day begins at DayStartTime
	DayStartEnabled bool   `gorm:"default:false" json:"day_start_enabled"`
	DayStartTime    string `gorm:"default:'06:00'" json:"day_start_time"`

	// Roll/penalty timing (HH:MM). RollAvailableTime only applies when
	// the day-start offset is disabled.
	RollAvailableTime    string `gorm:"default:'00:00'" json:"roll_available_time"`
	AutoPenaltiesEnabled bool   `gorm:"default:true" json:"auto_penalties_enabled"`
	PenaltyTime          string `gorm:"default:'00:01'" json:"penalty_time"`
	AutoRollEnabled      bool   `gorm:"default:false" json:"auto_roll_enabled"`
	AutoRollTime         string `gorm:"default:'06:00'" json:"auto_roll_time"`

	// Backups
	AutoBackupEnabled    bool       `gorm:"default:true" json:"auto_backup_enabled"`
	BackupTime           string     `gorm:"default:'03:00'" json:"backup_time"`
	BackupIntervalDays   int        `gorm:"default:1" json:"backup_interval_days"`
	BackupKeepLocalCount int        `gorm:"default:10" json:"backup_keep_local_count"`
	LastBackupAt         *time.Time `json:"last_backup_at"`
}
