package engine

import (
	"time"
)

// projectionWindowDays is how far back the daily average looks.
const projectionWindowDays = 30

// Band multipliers for the pessimistic and optimistic estimates.
const (
	projectionLowFactor  = 0.7
	projectionHighFactor = 1.3
)

// Projection estimates the score on a future date from the recent daily
// average.
type Projection struct {
	TargetDate   time.Time `json:"target_date"`
	DaysUntil    int       `json:"days_until"`
	CurrentTotal int       `json:"current_total"`
	DailyAverage float64   `json:"daily_average"`
	Expected     int       `json:"expected"`
	Pessimistic  int       `json:"pessimistic"`
	Optimistic   int       `json:"optimistic"`
}

// ProjectScore extrapolates the cumulative total to targetDate using the
// average daily total over the last 30 days. A past or present target
// just returns the current total for all three bands.
func (s *Service) ProjectScore(targetDate time.Time) (*Projection, error) {
	today, err := s.EffectiveToday()
	if err != nil {
		return nil, err
	}

	current, err := s.CurrentPoints()
	if err != nil {
		return nil, err
	}

	target := Midnight(targetDate)
	daysUntil := int(target.Sub(today).Hours() / 24)

	p := &Projection{
		TargetDate:   target,
		DaysUntil:    daysUntil,
		CurrentTotal: current,
		Expected:     current,
		Pessimistic:  current,
		Optimistic:   current,
	}
	if daysUntil <= 0 {
		return p, nil
	}

	avg, err := s.recentDailyAverage(today)
	if err != nil {
		return nil, err
	}
	p.DailyAverage = avg

	gain := avg * float64(daysUntil)
	p.Expected = floorAtCurrent(current, gain)
	p.Pessimistic = floorAtCurrent(current, gain*projectionLowFactor)
	p.Optimistic = floorAtCurrent(current, gain*projectionHighFactor)
	return p, nil
}

// recentDailyAverage averages daily_total over the projection window.
// Days without an entry count as zero.
func (s *Service) recentDailyAverage(today time.Time) (float64, error) {
	entries, err := s.ledger.RangeFrom(today, projectionWindowDays)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	sum := 0
	for _, e := range entries {
		sum += e.DailyTotal
	}
	return float64(sum) / float64(projectionWindowDays), nil
}

// floorAtCurrent keeps projections from dipping below the score already
// banked; negative daily averages project a flat line, not a decline.
func floorAtCurrent(current int, gain float64) int {
	projected := current + int(gain)
	if projected < current {
		return current
	}
	return projected
}
