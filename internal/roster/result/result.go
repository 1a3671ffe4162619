// Package result collects a solved CP-SAT model back into a roster: the
// assignment list, under-staffed slots, per-employee totals, and the
// soft-violation report — all read from the solver response by direct
// ViolationKey lookup rather than by re-parsing a description string.
package result

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/roster/calendar"
	"github.com/paiban/roster/internal/roster/constraints"
	"github.com/paiban/roster/internal/roster/variables"
	"github.com/paiban/roster/pkg/model"
)

// NotAssigned marks a placeholder row for an unfilled staffing slot.
const NotAssigned = "NOT ASSIGNED"

// Assignment is one row of the roster: either a real assignment, or a
// placeholder for one unfilled unit of a staffing requirement.
type Assignment struct {
	Date             string
	Weekday          string
	Site             string
	Shift            string
	EmployeeID       int
	EmployeeName     string
	ViolationSummary string // concatenation of violation descriptions matching this employee/date/shift/site
}

// UnderStaffedSlot reports a (date, site, shift) staffing target that could
// not be fully met.
type UnderStaffedSlot struct {
	Date     string
	Site     string
	Shift    string
	Required int
	Deficit  int
}

// EmployeeSummary totals one employee's assignments over the horizon.
type EmployeeSummary struct {
	EmployeeID  int
	Name        string
	TotalShifts int
	TotalHours  float64
	WeeklyHours map[int]float64
}

// ViolationOccurrence is one soft-violation accumulator that actually
// occurred in the solved model — one row per distinct ViolationKey, with
// every matching indicator/slack folded into a single Amount.
type ViolationOccurrence struct {
	Key          model.ViolationKey
	EmployeeName string
	Penalty      int
	Amount       int64 // summed count for boolean violations; summed overflow for slacks
}

// description renders this occurrence for the soft-violations report.
func (v ViolationOccurrence) description() string {
	return fmt.Sprintf("%s: employee=%s %s (penalty=%d, amount=%d)", v.Key.Kind, v.EmployeeName, v.Key.Context(), v.Penalty, v.Amount)
}

// Result is the fully collected roster ready for reporting.
type Result struct {
	Assignments       []Assignment
	UnderStaffed      []UnderStaffedSlot
	EmployeeSummaries []EmployeeSummary
	Violations        []ViolationOccurrence
}

// Collect reads every decision variable's solution value out of response
// and assembles the roster.
func Collect(response *cpmodel.CpSolverResponse, inputs model.PlanInputs, vars *variables.Set, totals map[int]cpmodel.IntVar, report *constraints.Report) *Result {
	r := &Result{}

	weekdayByDate := make(map[string]string, len(inputs.Days))
	for _, day := range inputs.Days {
		weekdayByDate[day.Date] = day.Weekday.String()
	}
	nameByID := make(map[int]string, len(inputs.Employees))
	for _, emp := range inputs.Employees {
		nameByID[emp.ID] = emp.Name
	}

	for _, site := range inputs.Sites {
		for _, shiftName := range site.AvailableShifts {
			for _, day := range inputs.Days {
				for _, emp := range inputs.Employees {
					key := variables.AssignmentKey{EmployeeID: emp.ID, Date: day.Date, Site: site.Name, Shift: shiftName}
					v, ok := vars.Assignment[key]
					if !ok || !cpmodel.SolutionBooleanValue(response, v) {
						continue
					}
					r.Assignments = append(r.Assignments, Assignment{
						Date: day.Date, Weekday: weekdayByDate[day.Date], Site: site.Name, Shift: shiftName,
						EmployeeID: emp.ID, EmployeeName: emp.Name,
					})
				}

				dKey := variables.DeficitKey{Date: day.Date, Site: site.Name, Shift: shiftName}
				deficitVar, ok := vars.Deficit[dKey]
				if !ok {
					continue
				}
				deficit := int(cpmodel.SolutionIntegerValue(response, deficitVar))
				if deficit <= 0 {
					continue
				}
				required := inputs.StaffingTargets[shiftName]
				r.UnderStaffed = append(r.UnderStaffed, UnderStaffedSlot{
					Date: day.Date, Site: site.Name, Shift: shiftName, Required: required, Deficit: deficit,
				})
				for i := 0; i < deficit; i++ {
					r.Assignments = append(r.Assignments, Assignment{
						Date: day.Date, Weekday: weekdayByDate[day.Date], Site: site.Name, Shift: shiftName, EmployeeName: NotAssigned,
					})
				}
			}
		}
	}

	sort.Slice(r.Assignments, func(i, j int) bool {
		a, b := r.Assignments[i], r.Assignments[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Site != b.Site {
			return a.Site < b.Site
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.EmployeeName < b.EmployeeName
	})

	for _, emp := range inputs.Employees {
		summary := EmployeeSummary{EmployeeID: emp.ID, Name: emp.Name, WeeklyHours: make(map[int]float64)}
		for _, day := range inputs.Days {
			for _, site := range inputs.Sites {
				for _, shiftName := range site.AvailableShifts {
					key := variables.AssignmentKey{EmployeeID: emp.ID, Date: day.Date, Site: site.Name, Shift: shiftName}
					v, ok := vars.Assignment[key]
					if !ok || !cpmodel.SolutionBooleanValue(response, v) {
						continue
					}
					shift := inputs.Shifts[shiftName]
					summary.TotalShifts++
					summary.TotalHours += shift.DurationHours
					week, err := calendar.ParseISOWeek(day.Date)
					if err == nil {
						summary.WeeklyHours[week] += shift.DurationHours
					}
				}
			}
		}
		r.EmployeeSummaries = append(r.EmployeeSummaries, summary)
	}
	sort.Slice(r.EmployeeSummaries, func(i, j int) bool {
		return r.EmployeeSummaries[i].Name < r.EmployeeSummaries[j].Name
	})

	// Every indicator/slack that shares a ViolationKey folds into one
	// accumulated row — e.g. a shift-dependency conflict spanning several
	// sites is still a single (employee, date) violation, not one per pair.
	grouped := make(map[model.ViolationKey]*ViolationOccurrence)
	accumulate := func(key model.ViolationKey, penalty int, amount int64) {
		if amount <= 0 {
			return
		}
		if existing, ok := grouped[key]; ok {
			existing.Amount += amount
			return
		}
		grouped[key] = &ViolationOccurrence{Key: key, EmployeeName: nameByID[key.EmployeeID], Penalty: penalty, Amount: amount}
	}
	for _, v := range report.Violations {
		if !cpmodel.SolutionBooleanValue(response, v.Indicator) {
			continue
		}
		accumulate(v.Key, v.Penalty, 1)
	}
	for _, s := range report.Slacks {
		accumulate(s.Key, s.Penalty, cpmodel.SolutionIntegerValue(response, s.Var))
	}
	for _, occ := range grouped {
		r.Violations = append(r.Violations, *occ)
	}
	sort.Slice(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i].Key, r.Violations[j].Key
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.Date < b.Date
	})

	annotateAssignments(r, r.Violations)

	return r
}

// annotateAssignments implements the per-assignment violation annotation:
// each real assignment row gets the concatenation of every violation
// description naming the same employee and date, and (when the violation
// carries one) the same shift and site. Family-level violations with no
// date (frequency limit, weekly hour cap) never annotate a row, since their
// key's empty Date cannot equal a real assignment's date.
func annotateAssignments(r *Result, violations []ViolationOccurrence) {
	descriptions := make(map[int][]string, len(r.Assignments))
	for i, a := range r.Assignments {
		if a.EmployeeName == NotAssigned {
			continue
		}
		for _, occ := range violations {
			if occ.Key.EmployeeID != a.EmployeeID || occ.Key.Date != a.Date {
				continue
			}
			if occ.Key.ShiftCode != "" && occ.Key.ShiftCode != a.Shift {
				continue
			}
			if occ.Key.SiteCode != "" && occ.Key.SiteCode != a.Site {
				continue
			}
			descriptions[i] = append(descriptions[i], occ.description())
		}
	}
	for i, descs := range descriptions {
		r.Assignments[i].ViolationSummary = strings.Join(descs, "; ")
	}
}
