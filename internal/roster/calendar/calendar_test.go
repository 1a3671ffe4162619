package calendar

import (
	"testing"

	"github.com/paiban/roster/pkg/model"
)

func TestDaysOfMonth_Length(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		want        int
	}{
		{"march 2025 has 31 days", 2025, 3, 31},
		{"april 2025 has 30 days", 2025, 4, 30},
		{"february 2024 is a leap year", 2024, 2, 29},
		{"february 2025 is not", 2025, 2, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysOfMonth(tt.year, tt.month)
			if len(days) != tt.want {
				t.Errorf("len(DaysOfMonth(%d,%d)) = %d, want %d", tt.year, tt.month, len(days), tt.want)
			}
			if days[0].Date != "2025-03-01" && tt.year == 2025 && tt.month == 3 {
				t.Errorf("unexpected first day: %s", days[0].Date)
			}
		})
	}
}

func TestDaysOfMonth_SundayCount(t *testing.T) {
	days := DaysOfMonth(2025, 3)
	sundays := 0
	for _, d := range days {
		if d.Weekday == model.Sunday {
			sundays++
		}
	}
	// March 2025 starts on a Saturday: Sundays fall on the 2nd, 9th, 16th,
	// 23rd and 30th.
	if sundays != 5 {
		t.Errorf("expected 5 Sundays in March 2025, got %d", sundays)
	}
}

func TestISOWeek(t *testing.T) {
	week, err := ParseISOWeek("2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	// 2025-01-01 is a Wednesday in ISO week 1.
	if week != 1 {
		t.Errorf("ISO week of 2025-01-01 = %d, want 1", week)
	}
}

func TestWeekday_MondayFirst(t *testing.T) {
	// 2025-03-10 is a Monday.
	wd, err := Weekday("2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if wd != model.Monday {
		t.Errorf("weekday of 2025-03-10 = %v, want Monday", wd)
	}

	// 2025-03-16 is a Sunday.
	wd, err = Weekday("2025-03-16")
	if err != nil {
		t.Fatal(err)
	}
	if wd != model.Sunday {
		t.Errorf("weekday of 2025-03-16 = %v, want Sunday", wd)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-03-31", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2025-04-01" {
		t.Errorf("AddDays(2025-03-31, 1) = %s, want 2025-04-01", got)
	}
}

func TestISOWeeksInMonth_Dedup(t *testing.T) {
	days := DaysOfMonth(2025, 3)
	weeks := ISOWeeksInMonth(days)
	seen := make(map[int]bool)
	for _, w := range weeks {
		if seen[w] {
			t.Errorf("week %d listed more than once", w)
		}
		seen[w] = true
	}
	if len(weeks) == 0 {
		t.Error("expected at least one ISO week")
	}
}
