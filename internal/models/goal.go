package models

import "time"

// Goal types.
const (
	GoalPoints            = "points"
	GoalProjectCompletion = "project_completion"
)

// PointGoal is a user-defined milestone: either a cumulative points
// target or completing every task of a project.
type PointGoal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Description  string     `gorm:"not null" json:"description"`
	GoalType     string     `gorm:"default:points" json:"goal_type"`
	TargetPoints int        `gorm:"default:0" json:"target_points"`
	ProjectName  string     `json:"project_name"`
	Reward       string     `json:"reward"`
	Achieved     bool       `gorm:"default:false" json:"achieved"`
	AchievedDate *time.Time `json:"achieved_date"`
	Claimed      bool       `gorm:"default:false" json:"claimed"`
}
