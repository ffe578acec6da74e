package models

import "time"

// RestDay is a date exempt from all penalty computation. Created and
// deleted by the user; the engine only ever reads it.
type RestDay struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Date        time.Time `gorm:"uniqueIndex;not null" json:"date"` // midnight
	Description string    `json:"description"`
}
