package variables

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/pkg/model"
)

func weekdayInputs() model.PlanInputs {
	return model.PlanInputs{
		Days: []model.Day{
			{Date: "2025-03-10", ISOWeek: 11, Weekday: model.Monday},
			{Date: "2025-03-16", ISOWeek: 11, Weekday: model.Sunday},
		},
		Sites: []model.Site{
			{Name: "Site A", AvailableShifts: []string{"M"}},
		},
		Shifts: map[string]model.Shift{
			"M": {Name: "M", DurationHours: 8, StartHour: 8, When: model.ClassWeekday},
		},
		Employees: []model.Employee{
			{ID: 1, Name: "ALICE"},
			{ID: 2, Name: "BOB"},
		},
		StaffingTargets: map[string]int{"M": 1},
	}
}

func TestBuild_CreatesOnlyLegalAssignments(t *testing.T) {
	builder := cpmodel.NewCpModelBuilder()
	set, err := Build(builder, weekdayInputs())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, ok := set.Assignment[AssignmentKey{EmployeeID: 1, Date: "2025-03-10", Site: "Site A", Shift: "M"}]; !ok {
		t.Error("expected an assignment var for a weekday shift on a weekday")
	}
	if _, ok := set.Assignment[AssignmentKey{EmployeeID: 1, Date: "2025-03-16", Site: "Site A", Shift: "M"}]; ok {
		t.Error("did not expect an assignment var for a weekday-only shift on a Sunday")
	}
	if _, ok := set.Deficit[DeficitKey{Date: "2025-03-16", Site: "Site A", Shift: "M"}]; ok {
		t.Error("did not expect a deficit var for a day the shift is illegal on")
	}
}

func TestBuild_DeficitTiedToAssignmentSum(t *testing.T) {
	builder := cpmodel.NewCpModelBuilder()
	inputs := weekdayInputs()
	set, err := Build(builder, inputs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	key := AssignmentKey{EmployeeID: 1, Date: "2025-03-10", Site: "Site A", Shift: "M"}
	other := AssignmentKey{EmployeeID: 2, Date: "2025-03-10", Site: "Site A", Shift: "M"}
	builder.AddEquality(cpmodel.NewLinearExpr().Add(set.Assignment[key]), cpmodel.NewConstant(0))
	builder.AddEquality(cpmodel.NewLinearExpr().Add(set.Assignment[other]), cpmodel.NewConstant(0))

	m, err := builder.Model()
	if err != nil {
		t.Fatalf("Model() error = %v", err)
	}
	response, err := cpmodel.SolveCpModel(m)
	if err != nil {
		t.Fatalf("SolveCpModel() error = %v", err)
	}
	if got := response.GetStatus().String(); got != "OPTIMAL" && got != "FEASIBLE" {
		t.Fatalf("expected a solved model, got status %s", got)
	}

	deficit := set.Deficit[DeficitKey{Date: "2025-03-10", Site: "Site A", Shift: "M"}]
	if got := cpmodel.SolutionIntegerValue(response, deficit); got != 1 {
		t.Errorf("deficit = %d, want 1 when both assignment vars are forced to 0 against a target of 1", got)
	}
}

func TestAssignmentsForEmployeeDay_AndAllDays(t *testing.T) {
	builder := cpmodel.NewCpModelBuilder()
	inputs := weekdayInputs()
	set, err := Build(builder, inputs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dayVars := set.AssignmentsForEmployeeDay(inputs, 1, "2025-03-10")
	if len(dayVars) != 1 {
		t.Errorf("AssignmentsForEmployeeDay() returned %d vars, want 1", len(dayVars))
	}

	allVars := set.AssignmentsForAllDays(inputs, 1)
	if len(allVars) != 1 {
		t.Errorf("AssignmentsForAllDays() returned %d vars, want 1 (Sunday has no legal slot for this weekday-only shift)", len(allVars))
	}
}
