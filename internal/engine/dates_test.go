package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyroll/dailyroll/internal/models"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"06:00", 360, true},
		{"0600", 360, true},
		{"23:59", 1439, true},
		{"0:05", 5, true},
		{"00:00", 0, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"garbage", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		minutes, ok := ParseClock(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.Equal(t, c.minutes, minutes, "input %q", c.in)
		}
	}
}

func TestEffectiveDate(t *testing.T) {
	morning := time.Date(2026, 8, 20, 3, 30, 0, 0, time.UTC)
	afternoon := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	t.Run("disabled uses the calendar date", func(t *testing.T) {
		assert.Equal(t, Midnight(morning), EffectiveDate(morning, false, "06:00"))
	})

	t.Run("before the boundary is still yesterday", func(t *testing.T) {
		want := Midnight(morning).AddDate(0, 0, -1)
		assert.Equal(t, want, EffectiveDate(morning, true, "06:00"))
	})

	t.Run("after the boundary is today", func(t *testing.T) {
		assert.Equal(t, Midnight(afternoon), EffectiveDate(afternoon, true, "06:00"))
	})

	t.Run("malformed boundary falls back to the calendar date", func(t *testing.T) {
		assert.Equal(t, Midnight(morning), EffectiveDate(morning, true, "not a time"))
	})
}

func TestNextDueDate(t *testing.T) {
	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC) // a Thursday

	t.Run("daily", func(t *testing.T) {
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceDaily}
		next := NextDueDate(task, from)
		require.NotNil(t, next)
		assert.Equal(t, from.AddDate(0, 0, 1), *next)
	})

	t.Run("every n days", func(t *testing.T) {
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceEveryNDays, RecurrenceInterval: 3}
		next := NextDueDate(task, from)
		require.NotNil(t, next)
		assert.Equal(t, from.AddDate(0, 0, 3), *next)
	})

	t.Run("weekly on set days", func(t *testing.T) {
		// Monday and Friday; the Friday right after a Thursday wins
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceWeekly, RecurrenceDays: "[1,5]"}
		next := NextDueDate(task, from)
		require.NotNil(t, next)
		assert.Equal(t, time.Friday, next.Weekday())
		assert.Equal(t, from.AddDate(0, 0, 1), *next)
	})

	t.Run("weekly without days is every seven", func(t *testing.T) {
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceWeekly}
		next := NextDueDate(task, from)
		require.NotNil(t, next)
		assert.Equal(t, from.AddDate(0, 0, 7), *next)
	})

	t.Run("non-recurring has no next", func(t *testing.T) {
		task := &models.Task{RecurrenceType: models.RecurrenceNone}
		assert.Nil(t, NextDueDate(task, from))
	})
}

func TestFastForwardDue(t *testing.T) {
	today := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	t.Run("stale daily catches up to today", func(t *testing.T) {
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceDaily}
		got := FastForwardDue(task, today.AddDate(0, 0, -10), today)
		assert.Equal(t, today, got)
	})

	t.Run("future due is untouched", func(t *testing.T) {
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceDaily}
		future := today.AddDate(0, 0, 4)
		assert.Equal(t, future, FastForwardDue(task, future, today))
	})

	t.Run("interval lands on or past today", func(t *testing.T) {
		task := &models.Task{IsHabit: true, RecurrenceType: models.RecurrenceEveryNDays, RecurrenceInterval: 3}
		got := FastForwardDue(task, today.AddDate(0, 0, -7), today)
		assert.False(t, got.Before(today))
	})
}

func TestParseWeekdays(t *testing.T) {
	assert.Equal(t, []int{1, 3, 5}, ParseWeekdays("[1,3,5]"))
	assert.Nil(t, ParseWeekdays(""))
	assert.Nil(t, ParseWeekdays("not json"))
	assert.Equal(t, []int{2}, ParseWeekdays("[2,9,-1]"))
}
