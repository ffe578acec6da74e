package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dailyroll/dailyroll/internal/models"
)

// LedgerStore provides day-ledger persistence over GORM.
type LedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a ledger store bound to the given connection.
func NewLedgerStore(g *gorm.DB) *LedgerStore {
	return &LedgerStore{db: g}
}

// GetByDate returns the entry for the date, or (nil, nil) when none exists.
func (s *LedgerStore) GetByDate(date time.Time) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := s.db.Where("date = ?", date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MostRecentBefore returns the newest entry dated strictly before the
// given date, or (nil, nil) when history is empty.
func (s *LedgerStore) MostRecentBefore(date time.Time) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := s.db.Where("date < ?", date).Order("date DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RangeFrom returns up to `days` entries dated at or before `from`,
// newest first.
func (s *LedgerStore) RangeFrom(from time.Time, days int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.
		Where("date <= ?", from).
		Order("date DESC").
		Limit(days).
		Find(&entries).Error
	return entries, err
}

// After returns every entry dated strictly after the given date, oldest first.
func (s *LedgerStore) After(date time.Time) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.Where("date > ?", date).Order("date ASC").Find(&entries).Error
	return entries, err
}

// Create inserts the entry. The unique index on date makes a concurrent
// double-insert for the same day fail instead of splitting the ledger.
func (s *LedgerStore) Create(entry *models.LedgerEntry) error {
	return s.db.Create(entry).Error
}

// Update saves the entry.
func (s *LedgerStore) Update(entry *models.LedgerEntry) error {
	return s.db.Save(entry).Error
}
