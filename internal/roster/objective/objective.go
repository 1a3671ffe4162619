// Package objective composes the weighted linear objective of §4.7:
// coverage, per-employee priority, load variance, soft-violation penalty,
// and staffing deficit, maximized in a single CP-SAT objective call.
package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/roster/constraints"
	"github.com/paiban/roster/internal/roster/variables"
	"github.com/paiban/roster/pkg/model"
)

// Build composes and installs the objective described in §4.7, returning
// the per-employee total-shift variables (T_e) for the result collector's
// per-employee summary.
func Build(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *constraints.Report) (map[int]cpmodel.IntVar, error) {
	// An employee can hold one assignment per (site, shift) pair per day, so
	// the true per-day ceiling sums available shifts across every site, not just the
	// distinct shift catalog — otherwise overlapping shifts offered at
	// multiple sites silently cap T_e below what's actually reachable.
	slotsPerDay := 0
	for _, site := range inputs.Sites {
		slotsPerDay += len(site.AvailableShifts)
	}
	maxPossible := int64(len(inputs.Days) * slotsPerDay)
	if maxPossible == 0 {
		maxPossible = 1
	}
	weights := inputs.Weights

	totals := make(map[int]cpmodel.IntVar, len(inputs.Employees))
	grandTotal := cpmodel.NewLinearExpr()

	for _, emp := range inputs.Employees {
		sum := cpmodel.NewLinearExpr()
		for _, v := range vars.AssignmentsForAllDays(inputs, emp.ID) {
			sum.Add(v)
		}
		t := builder.NewIntVar(0, maxPossible).WithName("total_shifts_" + emp.Name)
		builder.AddEquality(t, sum)
		totals[emp.ID] = t
		grandTotal.Add(t)
	}

	numEmployees := int64(len(inputs.Employees))
	var grandTotalVar cpmodel.IntVar
	if numEmployees > 0 {
		grandTotalVar = builder.NewIntVar(0, maxPossible*numEmployees).WithName("grand_total")
		builder.AddEquality(grandTotalVar, grandTotal)
	}

	varianceTerms := make([]cpmodel.IntVar, 0, len(inputs.Employees))
	if numEmployees > 0 {
		mean := builder.NewIntVar(0, maxPossible).WithName("mean_shifts")
		builder.AddDivisionEquality(mean, grandTotalVar, cpmodel.NewConstant(numEmployees))

		for _, emp := range inputs.Employees {
			diff := builder.NewIntVar(-maxPossible, maxPossible).WithName("diff_" + emp.Name)
			diffPlusMean := cpmodel.NewLinearExpr()
			diffPlusMean.Add(diff)
			diffPlusMean.Add(mean)
			builder.AddEquality(totals[emp.ID], diffPlusMean)

			sq := builder.NewIntVar(0, maxPossible*maxPossible).WithName("diffsq_" + emp.Name)
			builder.AddMultiplicationEquality(sq, diff, diff)
			varianceTerms = append(varianceTerms, sq)
		}
	}

	objective := cpmodel.NewLinearExpr()
	if numEmployees > 0 {
		objective.AddTerm(grandTotalVar, int64(weights.Total))
	}
	for _, emp := range inputs.Employees {
		objective.AddTerm(totals[emp.ID], int64(weights.Priority*emp.PriorityScore()))
	}
	for _, sq := range varianceTerms {
		objective.AddTerm(sq, -int64(weights.Variance))
	}
	for _, v := range report.Violations {
		objective.AddTerm(v.Indicator, -int64(weights.Violation*v.Penalty))
	}
	for _, s := range report.Slacks {
		objective.AddTerm(s.Var, -int64(weights.Violation*s.Penalty))
	}

	for key, deficit := range vars.Deficit {
		shift, ok := inputs.Shifts[key.Shift]
		if !ok {
			continue
		}
		if shift.When == model.ClassSunday {
			objective.AddTerm(deficit, -int64(weights.DeficitSunday))
		} else {
			objective.AddTerm(deficit, -int64(weights.DeficitOther))
		}
	}

	builder.Maximize(objective)
	return totals, nil
}
