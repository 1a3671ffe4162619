package plan

import (
	"testing"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/model"
)

func TestConvertConstraint_KnownFamilies(t *testing.T) {
	after := 14
	tests := []struct {
		name string
		doc  config.ConstraintDoc
		want model.ConstraintDetail
	}{
		{
			name: "temporal exclusion",
			doc:  config.ConstraintDoc{Type: "temporal_exclusion", Whens: []string{"Sunday"}},
			want: model.TemporalExclusion{Whens: []model.TemporalClass{model.ClassSunday}},
		},
		{
			name: "hour range exclusion",
			doc:  config.ConstraintDoc{Type: "hour_range_exclusion", AfterHour: &after},
			want: model.HourRangeExclusion{AfterHour: &after},
		},
		{
			name: "daily shift limit",
			doc:  config.ConstraintDoc{Type: "daily_shift_limit", MaxShiftsPerDay: 1},
			want: model.DailyShiftLimit{MaxShiftsPerDay: 1},
		},
		{
			name: "weekly hour limit",
			doc:  config.ConstraintDoc{Type: "weekly_hour_limit", MaxHours: 38},
			want: model.WeeklyHourLimit{MaxHours: 38},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertConstraint(tt.doc)
			if err != nil {
				t.Fatalf("convertConstraint() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("convertConstraint() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConvertConstraint_RejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		doc  config.ConstraintDoc
	}{
		{"unknown type", config.ConstraintDoc{Type: "not_a_real_family"}},
		{"temporal exclusion without filters", config.ConstraintDoc{Type: "temporal_exclusion"}},
		{"hour range exclusion without bounds", config.ConstraintDoc{Type: "hour_range_exclusion"}},
		{"frequency limit without positive limit", config.ConstraintDoc{Type: "frequency_limit", Limit: 0}},
		{"daily shift limit non positive", config.ConstraintDoc{Type: "daily_shift_limit", MaxShiftsPerDay: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := convertConstraint(tt.doc); err == nil {
				t.Error("expected an error for a malformed constraint row")
			}
		})
	}
}

func TestConvertConstraint_ShiftDependencyDefaultsDaysAfter(t *testing.T) {
	got, err := convertConstraint(config.ConstraintDoc{
		Type:        "shift_dependency",
		IfWhen:      "Morning",
		NotNextWhen: "Night",
	})
	if err != nil {
		t.Fatal(err)
	}
	dep, ok := got.(model.ShiftDependency)
	if !ok {
		t.Fatalf("got %T, want model.ShiftDependency", got)
	}
	if dep.DaysAfter != 1 {
		t.Errorf("DaysAfter = %d, want default of 1", dep.DaysAfter)
	}
}
