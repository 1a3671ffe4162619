// Package variables builds the CP-SAT decision variables: the boolean
// assignment tensor x[e,d,s,t] and the integer deficit variables tied to it
// by equality.
package variables

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/pkg/model"
)

// AssignmentKey identifies one boolean decision variable: employee e,
// day d, site s, shift t.
type AssignmentKey struct {
	EmployeeID int
	Date       string
	Site       string
	Shift      string
}

// DeficitKey identifies one integer deficit variable for a (day, site,
// shift) staffing slot.
type DeficitKey struct {
	Date  string
	Site  string
	Shift string
}

// Set holds every variable created for a plan, keyed for O(1) lookup by the
// constraint compiler, objective builder, and result collector.
type Set struct {
	Assignment map[AssignmentKey]cpmodel.BoolVar
	Deficit    map[DeficitKey]cpmodel.IntVar
}

// legal reports whether shift t may be assigned on day d: the structural
// temporal-class gate of §4.2 — exactly one of (Sunday-class shift ∧ Sunday)
// or (non-Sunday-class shift ∧ non-Sunday) holds.
func legal(shift model.Shift, day model.Day) bool {
	return (shift.When == model.ClassSunday) == (day.Weekday == model.Sunday)
}

// Build creates x[e,d,s,t] and deficit[d,s,t] for every legal, site-offered
// combination whose shift has a positive staffing target; a slot with a zero
// target gets neither.
func Build(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs) (*Set, error) {
	set := &Set{
		Assignment: make(map[AssignmentKey]cpmodel.BoolVar),
		Deficit:    make(map[DeficitKey]cpmodel.IntVar),
	}

	for _, site := range inputs.Sites {
		for _, shiftName := range site.AvailableShifts {
			shift, ok := inputs.Shifts[shiftName]
			if !ok {
				return nil, fmt.Errorf("variables: site %q references unknown shift %q", site.Name, shiftName)
			}
			required := inputs.StaffingTargets[shiftName]

			for _, day := range inputs.Days {
				if !legal(shift, day) {
					continue
				}
				if required <= 0 {
					continue
				}

				for _, emp := range inputs.Employees {
					key := AssignmentKey{EmployeeID: emp.ID, Date: day.Date, Site: site.Name, Shift: shiftName}
					name := fmt.Sprintf("x_e%d_d%s_s%s_t%s", emp.ID, day.Date, site.Name, shiftName)
					set.Assignment[key] = builder.NewBoolVar().WithName(name)
				}

				dKey := DeficitKey{Date: day.Date, Site: site.Name, Shift: shiftName}
				dName := fmt.Sprintf("deficit_d%s_s%s_t%s", day.Date, site.Name, shiftName)
				deficit := builder.NewIntVar(0, int64(required)).WithName(dName)
				set.Deficit[dKey] = deficit

				sum := cpmodel.NewLinearExpr()
				for _, emp := range inputs.Employees {
					sum.Add(set.Assignment[AssignmentKey{EmployeeID: emp.ID, Date: day.Date, Site: site.Name, Shift: shiftName}])
				}
				sum.Add(deficit)
				builder.AddEquality(sum, cpmodel.NewConstant(int64(required)))
			}
		}
	}

	return set, nil
}

// AssignmentsForEmployeeDay returns every assignment variable for employee e
// on day d, across every site and shift.
func (s *Set) AssignmentsForEmployeeDay(inputs model.PlanInputs, empID int, date string) []cpmodel.BoolVar {
	var vars []cpmodel.BoolVar
	for _, site := range inputs.Sites {
		for _, shiftName := range site.AvailableShifts {
			if v, ok := s.Assignment[AssignmentKey{EmployeeID: empID, Date: date, Site: site.Name, Shift: shiftName}]; ok {
				vars = append(vars, v)
			}
		}
	}
	return vars
}

// AssignmentsForAllDays returns every assignment variable for employee e
// across the whole planning horizon.
func (s *Set) AssignmentsForAllDays(inputs model.PlanInputs, empID int) []cpmodel.BoolVar {
	var vars []cpmodel.BoolVar
	for _, day := range inputs.Days {
		vars = append(vars, s.AssignmentsForEmployeeDay(inputs, empID, day.Date)...)
	}
	return vars
}
