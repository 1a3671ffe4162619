// Package calendar provides the date arithmetic shared by the planning
// pipeline: the ordered list of dates in a month, ISO-8601 week numbers, and
// weekday classification.
package calendar

import (
	"fmt"
	"time"

	"github.com/paiban/roster/pkg/model"
)

// DaysOfMonth returns the ordered list of calendar days for year/month, each
// carrying its ISO week number and weekday.
func DaysOfMonth(year, month int) []model.Day {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := make([]model.Day, 0, 31)
	for d := start; int(d.Month()) == month; d = d.AddDate(0, 0, 1) {
		days = append(days, model.Day{
			Date:    d.Format("2006-01-02"),
			ISOWeek: ISOWeek(d),
			Weekday: model.FromTimeWeekday(d.Weekday()),
		})
	}
	return days
}

// ISOWeek returns the ISO-8601 week number of t.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// ParseISOWeek returns the ISO-8601 week number of the date string
// (YYYY-MM-DD). Returns an error if the date cannot be parsed.
func ParseISOWeek(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("calendar: invalid date %q: %w", date, err)
	}
	return ISOWeek(t), nil
}

// Weekday returns the weekday enum for the given ISO date string.
func Weekday(date string) (model.Weekday, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("calendar: invalid date %q: %w", date, err)
	}
	return model.FromTimeWeekday(t.Weekday()), nil
}

// AddDays returns the ISO date string days after date (negative allowed).
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("calendar: invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), nil
}

// ISOWeeksInMonth returns the distinct ISO week numbers present among days.
func ISOWeeksInMonth(days []model.Day) []int {
	seen := make(map[int]struct{})
	var weeks []int
	for _, d := range days {
		if _, ok := seen[d.ISOWeek]; !ok {
			seen[d.ISOWeek] = struct{}{}
			weeks = append(weeks, d.ISOWeek)
		}
	}
	return weeks
}
