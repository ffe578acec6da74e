package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dailyroll/dailyroll/internal/models"
)

// SettingsStore owns the singleton settings row.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a settings store bound to the given connection.
func NewSettingsStore(g *gorm.DB) *SettingsStore {
	return &SettingsStore{db: g}
}

// Get returns the settings row, creating it with defaults on first access.
func (s *SettingsStore) Get() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		// Re-read so column defaults are populated
		if err := s.db.First(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update saves the settings row.
func (s *SettingsStore) Update(settings *models.Settings) error {
	return s.db.Save(settings).Error
}
