package engine

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dailyroll/dailyroll/internal/models"
)

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayRange returns the [start, end) datetime range covering the date's day.
func DayRange(date time.Time) (time.Time, time.Time) {
	start := Midnight(date)
	return start, start.AddDate(0, 0, 1)
}

// ParseClock parses an "HH:MM" (or "HHMM") string into minutes since
// midnight. Returns ok=false instead of an error so malformed settings
// can fall back to a safe default.
func ParseClock(s string) (minutes int, ok bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ":", ""))
	if s == "" || len(s) > 4 {
		return 0, false
	}
	for len(s) < 4 {
		s = "0" + s
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(s[2:])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// EffectiveDate maps wall-clock time to the logical day the user is in.
// With day-start enabled and the current time before dayStartTime, the
// user is still in yesterday. A malformed time string falls back to the
// plain calendar date.
func EffectiveDate(now time.Time, dayStartEnabled bool, dayStartTime string) time.Time {
	today := Midnight(now)
	if !dayStartEnabled {
		return today
	}

	startMinutes, ok := ParseClock(dayStartTime)
	if !ok {
		return today
	}

	currentMinutes := now.Hour()*60 + now.Minute()
	if currentMinutes < startMinutes {
		return today.AddDate(0, 0, -1)
	}
	return today
}

// ParseWeekdays decodes a JSON weekday array like "[1,3,5]" (0=Sunday,
// Go numbering). Malformed input decodes to nil.
func ParseWeekdays(s string) []int {
	if s == "" {
		return nil
	}
	var days []int
	if err := json.Unmarshal([]byte(s), &days); err != nil {
		return nil
	}
	var valid []int
	for _, d := range days {
		if d >= 0 && d <= 6 {
			valid = append(valid, d)
		}
	}
	return valid
}

// NextDueDate computes the due date of a habit's next occurrence after
// fromDate, per its recurrence rule. Returns nil for non-recurring tasks.
func NextDueDate(task *models.Task, fromDate time.Time) *time.Time {
	from := Midnight(fromDate)

	switch task.RecurrenceType {
	case models.RecurrenceDaily:
		next := from.AddDate(0, 0, 1)
		return &next
	case models.RecurrenceEveryNDays:
		interval := task.RecurrenceInterval
		if interval < 1 {
			interval = 1
		}
		next := from.AddDate(0, 0, interval)
		return &next
	case models.RecurrenceWeekly:
		next := nextWeeklyOccurrence(from, ParseWeekdays(task.RecurrenceDays))
		return &next
	default:
		return nil
	}
}

// nextWeeklyOccurrence finds the next matching weekday strictly after
// from. An empty weekday set means plain every-7-days.
func nextWeeklyOccurrence(from time.Time, weekdays []int) time.Time {
	if len(weekdays) == 0 {
		return from.AddDate(0, 0, 7)
	}

	allowed := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		allowed[d] = true
	}

	for offset := 1; offset <= 14; offset++ {
		candidate := from.AddDate(0, 0, offset)
		if allowed[int(candidate.Weekday())] {
			return candidate
		}
	}
	return from.AddDate(0, 0, 7)
}

// FastForwardDue advances a recurring habit's due date until it is not
// in the past relative to today. Used when a habit is created or edited
// with a stale due date; a future due date is returned unchanged.
func FastForwardDue(task *models.Task, due, today time.Time) time.Time {
	due = Midnight(due)
	today = Midnight(today)
	if !task.IsRecurring() || !due.Before(today) {
		return due
	}

	// Bounded: at worst 14-day weekly gaps over the whole lookback.
	for i := 0; i < 400 && due.Before(today); i++ {
		next := NextDueDate(task, due)
		if next == nil {
			break
		}
		due = *next
	}
	return due
}
