package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dailyroll/dailyroll/internal/models"
)

// RestDayStore provides rest-day persistence over GORM.
type RestDayStore struct {
	db *gorm.DB
}

// NewRestDayStore creates a rest-day store bound to the given connection.
func NewRestDayStore(g *gorm.DB) *RestDayStore {
	return &RestDayStore{db: g}
}

// GetByDate returns the rest day for the date, or (nil, nil) when none.
func (s *RestDayStore) GetByDate(date time.Time) (*models.RestDay, error) {
	var day models.RestDay
	err := s.db.Where("date = ?", date).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// All returns every rest day, oldest first.
func (s *RestDayStore) All() ([]models.RestDay, error) {
	var days []models.RestDay
	err := s.db.Order("date ASC").Find(&days).Error
	return days, err
}

// Create inserts the rest day.
func (s *RestDayStore) Create(day *models.RestDay) error {
	return s.db.Create(day).Error
}

// Delete removes the rest day by id.
func (s *RestDayStore) Delete(id uint) error {
	return s.db.Delete(&models.RestDay{}, id).Error
}
