package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dailyroll/dailyroll/internal/models"
)

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// Recurrence is the parsed form of a --every flag value.
type Recurrence struct {
	Type     string
	Interval int
	Days     string // JSON weekday array for weekly recurrence
}

// ParseRecurrence parses a recurrence spec:
// - "daily" or "day"
// - "N days" (e.g., "3 days")
// - "weekly" (every 7 days)
// - weekday list (e.g., "mon,wed,fri")
func ParseRecurrence(input string) (*Recurrence, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Recurrence{Type: models.RecurrenceNone}, nil
	}

	switch input {
	case "daily", "day", "every day":
		return &Recurrence{Type: models.RecurrenceDaily}, nil
	case "weekly", "week":
		return &Recurrence{Type: models.RecurrenceWeekly}, nil
	}

	intervalRegex := regexp.MustCompile(`^(?:every\s+)?(\d+)\s+days?$`)
	if matches := intervalRegex.FindStringSubmatch(input); len(matches) == 2 {
		n, err := strconv.Atoi(matches[1])
		if err != nil || n < 1 || n > 365 {
			return nil, fmt.Errorf("interval must be between 1 and 365 days")
		}
		if n == 1 {
			return &Recurrence{Type: models.RecurrenceDaily}, nil
		}
		return &Recurrence{Type: models.RecurrenceEveryNDays, Interval: n}, nil
	}

	if days, err := parseWeekdayList(input); err == nil {
		return &Recurrence{Type: models.RecurrenceWeekly, Days: days}, nil
	}

	return nil, fmt.Errorf("invalid recurrence. Use: daily, N days, weekly, or a weekday list like mon,wed,fri")
}

// parseWeekdayList turns "mon,wed,fri" into a JSON array "[1,3,5]".
func parseWeekdayList(input string) (string, error) {
	parts := strings.Split(input, ",")

	seen := make(map[int]bool)
	var days []int
	for _, p := range parts {
		day, ok := weekdayNames[strings.TrimSpace(p)]
		if !ok {
			return "", fmt.Errorf("unknown weekday %q", strings.TrimSpace(p))
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return "", fmt.Errorf("empty weekday list")
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// FormatRecurrence renders a task's recurrence rule for display.
func FormatRecurrence(task *models.Task) string {
	switch task.RecurrenceType {
	case models.RecurrenceDaily:
		return "daily"
	case models.RecurrenceEveryNDays:
		return fmt.Sprintf("every %d days", task.RecurrenceInterval)
	case models.RecurrenceWeekly:
		if task.RecurrenceDays == "" {
			return "weekly"
		}
		var days []int
		if err := json.Unmarshal([]byte(task.RecurrenceDays), &days); err != nil {
			return "weekly"
		}
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		var parts []string
		for _, d := range days {
			if d >= 0 && d <= 6 {
				parts = append(parts, names[d])
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
