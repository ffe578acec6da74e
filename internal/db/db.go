package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dailyroll/dailyroll/internal/models"
)

var DB *gorm.DB

// Initialize sets up the default database connection and runs migrations.
// DAILYROLL_DB overrides the full path, DAILYROLL_HOME the directory.
func Initialize() error {
	dbPath, err := DatabasePath()
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create dailyroll directory: %w", err)
	}

	db, err := Open(dbPath)
	if err != nil {
		return err
	}

	DB = db
	return nil
}

// Open opens (or creates) a database at the given path and migrates it.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Task{},
		&models.LedgerEntry{},
		&models.Settings{},
		&models.RestDay{},
		&models.PointGoal{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// DatabasePath returns the path to the SQLite database file.
func DatabasePath() (string, error) {
	if p := os.Getenv("DAILYROLL_DB"); p != "" {
		return p, nil
	}
	home := os.Getenv("DAILYROLL_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = filepath.Join(userHome, ".dailyroll")
	}
	return filepath.Join(home, "dailyroll.db"), nil
}

// Close closes the default database connection.
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
