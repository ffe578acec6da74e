package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dailyroll/dailyroll/internal/models"
)

// GoalStore provides point-goal persistence over GORM.
type GoalStore struct {
	db *gorm.DB
}

// NewGoalStore creates a goal store bound to the given connection.
func NewGoalStore(g *gorm.DB) *GoalStore {
	return &GoalStore{db: g}
}

// GetByID returns the goal, or (nil, nil) when it does not exist.
func (s *GoalStore) GetByID(id uint) (*models.PointGoal, error) {
	var goal models.PointGoal
	err := s.db.First(&goal, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// All returns goals, optionally including already achieved ones.
func (s *GoalStore) All(includeAchieved bool) ([]models.PointGoal, error) {
	var goals []models.PointGoal
	q := s.db.Order("created_at ASC")
	if !includeAchieved {
		q = q.Where("achieved = ?", false)
	}
	err := q.Find(&goals).Error
	return goals, err
}

// Create inserts the goal.
func (s *GoalStore) Create(goal *models.PointGoal) error {
	return s.db.Create(goal).Error
}

// Update saves the goal.
func (s *GoalStore) Update(goal *models.PointGoal) error {
	return s.db.Save(goal).Error
}

// Delete removes the goal by id.
func (s *GoalStore) Delete(id uint) error {
	return s.db.Delete(&models.PointGoal{}, id).Error
}
