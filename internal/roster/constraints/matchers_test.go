package constraints

import (
	"testing"

	"github.com/paiban/roster/pkg/model"
)

func day(weekday model.Weekday) model.Day {
	return model.Day{Date: "2025-03-10", Weekday: weekday}
}

func TestMatchesTemporalExclusion(t *testing.T) {
	morning := model.Shift{When: model.ClassMorning, StartHour: 7}

	tests := []struct {
		name string
		d    model.TemporalExclusion
		s    model.Shift
		day  model.Day
		want bool
	}{
		{"no filters never matches", model.TemporalExclusion{}, morning, day(model.Monday), false},
		{"when only, matches", model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassMorning}}, morning, day(model.Monday), true},
		{"when only, no match", model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassNight}}, morning, day(model.Monday), false},
		{"weekday only, matches", model.TemporalExclusion{Weekdays: []string{"Monday"}}, morning, day(model.Monday), true},
		{"weekday only, no match", model.TemporalExclusion{Weekdays: []string{"Tuesday"}}, morning, day(model.Monday), false},
		{"both must hold", model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassMorning}, Weekdays: []string{"Monday"}}, morning, day(model.Monday), true},
		{"both present, weekday fails", model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassMorning}, Weekdays: []string{"Tuesday"}}, morning, day(model.Monday), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesTemporalExclusion(tt.d, tt.s, tt.day); got != tt.want {
				t.Errorf("MatchesTemporalExclusion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesHourRangeExclusion(t *testing.T) {
	after14 := 14
	until8 := 8

	tests := []struct {
		name string
		d    model.HourRangeExclusion
		s    model.Shift
		want bool
	}{
		{"after bound excludes", model.HourRangeExclusion{AfterHour: &after14}, model.Shift{StartHour: 15}, true},
		{"after bound does not exclude", model.HourRangeExclusion{AfterHour: &after14}, model.Shift{StartHour: 10}, false},
		{"until bound excludes", model.HourRangeExclusion{UntilHour: &until8}, model.Shift{StartHour: 6}, true},
		{"until bound does not exclude", model.HourRangeExclusion{UntilHour: &until8}, model.Shift{StartHour: 9}, false},
		{"weekday mismatch never excludes", model.HourRangeExclusion{Weekday: "Tuesday", AfterHour: &after14}, model.Shift{StartHour: 20}, false},
		{"unset start hour sentinel never excludes", model.HourRangeExclusion{AfterHour: &after14}, model.Shift{StartHour: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesHourRangeExclusion(tt.d, tt.s, day(model.Monday)); got != tt.want {
				t.Errorf("MatchesHourRangeExclusion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesSiteRestriction(t *testing.T) {
	d := model.SiteRestriction{AllowedSites: []string{"Site A", "Site B"}}
	if MatchesSiteRestriction(d, "Site A") {
		t.Error("Site A is allowed, should not match (excluded)")
	}
	if !MatchesSiteRestriction(d, "Site C") {
		t.Error("Site C is not allowed, should match (excluded)")
	}
}

func TestMatchesFrequencyFilter(t *testing.T) {
	night := model.ClassNight
	weekdayName := "Sunday"

	tests := []struct {
		name string
		d    model.FrequencyLimit
		s    model.Shift
		day  model.Day
		want bool
	}{
		{"no filters always matches", model.FrequencyLimit{}, model.Shift{When: model.ClassMorning}, day(model.Monday), true},
		{"when filter matches", model.FrequencyLimit{When: &night}, model.Shift{When: model.ClassNight}, day(model.Monday), true},
		{"when filter rejects", model.FrequencyLimit{When: &night}, model.Shift{When: model.ClassMorning}, day(model.Monday), false},
		{"weekday filter matches", model.FrequencyLimit{Weekday: &weekdayName}, model.Shift{When: model.ClassSunday}, day(model.Sunday), true},
		{"weekday filter rejects", model.FrequencyLimit{Weekday: &weekdayName}, model.Shift{}, day(model.Monday), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFrequencyFilter(tt.d, tt.s, tt.day); got != tt.want {
				t.Errorf("MatchesFrequencyFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockedClass(t *testing.T) {
	d := model.BiweeklyAlternation{When1: model.ClassMorning, When2: model.ClassAfternoon, StartingWeek: 10}

	tests := []struct {
		isoWeek int
		want    model.TemporalClass
	}{
		{10, model.ClassAfternoon},
		{11, model.ClassMorning},
		{12, model.ClassAfternoon},
		{9, model.ClassMorning},
		{8, model.ClassAfternoon},
	}
	for _, tt := range tests {
		if got := BlockedClass(d, tt.isoWeek); got != tt.want {
			t.Errorf("BlockedClass(isoWeek=%d) = %v, want %v", tt.isoWeek, got, tt.want)
		}
	}
}

func TestSundayBlocked(t *testing.T) {
	tests := []struct {
		isoWeek int
		want    bool
	}{
		{10, false},
		{11, true},
		{12, false},
		{9, true},
		{8, false},
	}
	for _, tt := range tests {
		if got := SundayBlocked(10, tt.isoWeek); got != tt.want {
			t.Errorf("SundayBlocked(startingWeek=10, isoWeek=%d) = %v, want %v", tt.isoWeek, got, tt.want)
		}
	}
}

func TestHasHardSundayExclusion(t *testing.T) {
	tests := []struct {
		name string
		emp  model.Employee
		want bool
	}{
		{
			name: "hard sunday-only exclusion",
			emp: model.Employee{Constraints: []model.Constraint{
				{Soft: false, Detail: model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassSunday}}},
			}},
			want: true,
		},
		{
			name: "soft sunday exclusion does not count",
			emp: model.Employee{Constraints: []model.Constraint{
				{Soft: true, Detail: model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassSunday}}},
			}},
			want: false,
		},
		{
			name: "hard exclusion naming Sunday still counts even with an extra weekday filter",
			emp: model.Employee{Constraints: []model.Constraint{
				{Soft: false, Detail: model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassSunday}, Weekdays: []string{"Monday"}}},
			}},
			want: true,
		},
		{
			name: "unrelated hard constraint",
			emp: model.Employee{Constraints: []model.Constraint{
				{Soft: false, Detail: model.DailyShiftLimit{MaxShiftsPerDay: 1}},
			}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasHardSundayExclusion(tt.emp); got != tt.want {
				t.Errorf("HasHardSundayExclusion() = %v, want %v", got, tt.want)
			}
		})
	}
}
