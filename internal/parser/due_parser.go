package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ParseDueDate parses the due date formats accepted on the command line:
// - dd/mm/yyyy (e.g., "15/12/2026")
// - today, tomorrow
// - X days / X weeks (e.g., "3 days", "2 weeks")
func ParseDueDate(input string) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.TrimSpace(strings.ToLower(input))

	switch input {
	case "today":
		due := endOfDay(time.Now())
		return &due, nil
	case "tomorrow":
		due := endOfDay(time.Now().AddDate(0, 0, 1))
		return &due, nil
	}

	if due, err := parseDateFormat(input); err == nil {
		return due, nil
	}

	if due, err := parseRelativeTime(input); err == nil {
		return due, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, today, tomorrow, X days, or X weeks")
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// parseDateFormat parses dd/mm/yyyy
func parseDateFormat(input string) (*time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 2020 || year > 2100 {
		return nil, fmt.Errorf("year must be between 2020 and 2100")
	}

	due := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)

	// Rejects 31/02 and friends
	if due.Day() != day || due.Month() != time.Month(month) || due.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &due, nil
}

// parseRelativeTime parses "X days" / "X weeks"
func parseRelativeTime(input string) (*time.Time, error) {
	relativeRegex := regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)$`)
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	days := amount
	if strings.HasPrefix(matches[2], "week") {
		days = amount * 7
	}
	if days < 1 || days > 365 {
		return nil, fmt.Errorf("due date must be within a year")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := endOfDay(today.AddDate(0, 0, days))
	return &due, nil
}

// FormatDueDate renders a due date for list output.
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := due.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	default:
		return fmt.Sprintf("📅 Due %s (%s)", dateStr, humanize.Time(dueDay))
	}
}

// FormatTimeSpent renders accumulated work time like "1h 23m".
func FormatTimeSpent(seconds int) string {
	if seconds <= 0 {
		return "0m"
	}
	d := time.Duration(seconds) * time.Second
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
