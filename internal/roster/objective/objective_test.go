package objective

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/roster/calendar"
	"github.com/paiban/roster/internal/roster/constraints"
	"github.com/paiban/roster/internal/roster/variables"
	"github.com/paiban/roster/pkg/model"
)

func twoEmployeeInputs() model.PlanInputs {
	days := calendar.DaysOfMonth(2025, 3)
	return model.PlanInputs{
		Days: days,
		Shifts: map[string]model.Shift{
			"M": {Name: "M", DurationHours: 8, StartHour: 8, When: model.ClassWeekday},
		},
		Sites:           []model.Site{{Name: "Site A", AvailableShifts: []string{"M"}}},
		StaffingTargets: model.StaffingTarget{"M": 1},
		Employees: []model.Employee{
			{ID: 1, Name: "A", MaxWeeklyHours: 40},
			{ID: 2, Name: "B", MaxWeeklyHours: 40},
		},
		Weights: model.DefaultObjectiveWeights(),
	}
}

func TestBuild_InstallsObjectiveWithoutError(t *testing.T) {
	inputs := twoEmployeeInputs()
	builder := cpmodel.NewCpModelBuilder()

	vset, err := variables.Build(builder, inputs)
	if err != nil {
		t.Fatalf("variables.Build() error = %v", err)
	}
	report, err := constraints.Compile(builder, inputs, vset)
	if err != nil {
		t.Fatalf("constraints.Compile() error = %v", err)
	}
	totals, err := Build(builder, inputs, vset, report)
	if err != nil {
		t.Fatalf("objective.Build() error = %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected a total-shifts variable per employee, got %d", len(totals))
	}

	if _, err := builder.Model(); err != nil {
		t.Fatalf("Model() error = %v", err)
	}
}
