// Package constraints compiles certification/unavailability hard
// constraints and every individual or global constraint family into the
// CP-SAT model built by internal/roster/variables, producing a Report of
// soft-violation accumulators for the objective builder and result
// collector.
package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/roster/calendar"
	"github.com/paiban/roster/internal/roster/variables"
	"github.com/paiban/roster/pkg/logger"
	"github.com/paiban/roster/pkg/model"
)

// bigM bounds slack variables for soft linear-cap families; large enough
// that it never actually binds within a single month's horizon.
const bigM = 10000

// Compile wires every hard and soft constraint family into builder and
// returns the soft-violation accumulators it created.
func Compile(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set) (*Report, error) {
	report := &Report{}
	log := logger.NewRosterLogger()

	compileCertification(builder, inputs, vars)
	compileUnavailability(builder, inputs, vars)

	for _, emp := range inputs.Employees {
		for _, c := range emp.Constraints {
			switch detail := c.Detail.(type) {
			case model.TemporalExclusion:
				compileTemporalExclusion(builder, inputs, vars, report, emp, c, detail)
			case model.HourRangeExclusion:
				compileHourRangeExclusion(builder, inputs, vars, report, emp, c, detail)
			case model.SiteRestriction:
				compileSiteRestriction(builder, inputs, vars, report, emp, c, detail)
			case model.FrequencyLimit:
				compileFrequencyLimit(builder, inputs, vars, report, emp, c, detail)
			case model.ShiftDependency:
				compileShiftDependency(builder, inputs, vars, report, emp, c, detail)
			case model.DailyShiftLimit:
				compileDailyShiftLimit(builder, inputs, vars, report, emp, c, detail)
			case model.BiweeklyAlternation:
				compileBiweeklyAlternation(builder, inputs, vars, report, emp, c, detail)
			case model.WeeklyHourLimit:
				// Handled uniformly for every employee by compileWeeklyHours,
				// which resolves the cap via Employee.WeeklyHourCap.
			default:
				log.ConstraintSkipped("unknown", "unrecognized constraint detail type at compile time")
			}
		}
	}

	compileWeeklyHours(builder, inputs, vars, report)
	compileSundayAlternation(builder, inputs, vars, report)

	return report, nil
}

// compileCertification zeroes every assignment variable for an employee who
// lacks the shift's required certification — a structural hard constraint,
// never a soft one.
func compileCertification(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set) {
	for _, site := range inputs.Sites {
		for _, shiftName := range site.AvailableShifts {
			shift, ok := inputs.Shifts[shiftName]
			if !ok || shift.RequiredCertification == "" {
				continue
			}
			for _, day := range inputs.Days {
				for _, emp := range inputs.Employees {
					if emp.HasCertification(shift.RequiredCertification) {
						continue
					}
					key := variables.AssignmentKey{EmployeeID: emp.ID, Date: day.Date, Site: site.Name, Shift: shiftName}
					if v, ok := vars.Assignment[key]; ok {
						zero(builder, v)
					}
				}
			}
		}
	}
}

// compileUnavailability zeroes every assignment variable on a date an
// employee reported as unavailable.
func compileUnavailability(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set) {
	for _, emp := range inputs.Employees {
		for _, day := range inputs.Days {
			if !inputs.IsUnavailable(emp.Name, day.Date) {
				continue
			}
			for _, v := range vars.AssignmentsForEmployeeDay(inputs, emp.ID, day.Date) {
				zero(builder, v)
			}
		}
	}
}

func compileTemporalExclusion(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.TemporalExclusion) {
	forEachMatchingAssignment(inputs, vars, emp, func(site model.Site, shift model.Shift, day model.Day, v cpmodel.BoolVar) {
		if !MatchesTemporalExclusion(d, shift, day) {
			return
		}
		applyOrRecord(builder, report, c, v, model.ViolationKey{
			Kind: d.Kind(), EmployeeID: emp.ID, Date: day.Date, ShiftCode: shift.Name, SiteCode: site.Name, ISOWeek: day.ISOWeek,
		})
	})
}

func compileHourRangeExclusion(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.HourRangeExclusion) {
	forEachMatchingAssignment(inputs, vars, emp, func(site model.Site, shift model.Shift, day model.Day, v cpmodel.BoolVar) {
		if !MatchesHourRangeExclusion(d, shift, day) {
			return
		}
		applyOrRecord(builder, report, c, v, model.ViolationKey{
			Kind: d.Kind(), EmployeeID: emp.ID, Date: day.Date, ShiftCode: shift.Name, SiteCode: site.Name, ISOWeek: day.ISOWeek,
		})
	})
}

func compileSiteRestriction(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.SiteRestriction) {
	forEachMatchingAssignment(inputs, vars, emp, func(site model.Site, shift model.Shift, day model.Day, v cpmodel.BoolVar) {
		if !MatchesSiteRestriction(d, site.Name) {
			return
		}
		applyOrRecord(builder, report, c, v, model.ViolationKey{
			Kind: d.Kind(), EmployeeID: emp.ID, Date: day.Date, ShiftCode: shift.Name, SiteCode: site.Name, ISOWeek: day.ISOWeek,
		})
	})
}

// compileFrequencyLimit caps the count of matching assignments over the
// whole horizon at Limit (hard), or lets it overflow into a penalized slack
// (soft).
func compileFrequencyLimit(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.FrequencyLimit) {
	sum := cpmodel.NewLinearExpr()
	count := 0
	forEachMatchingAssignment(inputs, vars, emp, func(site model.Site, shift model.Shift, day model.Day, v cpmodel.BoolVar) {
		if !MatchesFrequencyFilter(d, shift, day) {
			return
		}
		sum.Add(v)
		count++
	})
	if count == 0 {
		return
	}

	if !c.Soft {
		builder.AddLessOrEqual(sum, cpmodel.NewConstant(int64(d.Limit)))
		return
	}

	slack := builder.NewIntVar(0, bigM).WithName("freq_slack_e" + emp.Name)
	capped := cpmodel.NewLinearExpr()
	capped.Add(slack)
	capped.Add(cpmodel.NewConstant(int64(d.Limit)))
	builder.AddLessOrEqual(sum, capped)
	report.addSlack(Slack{
		Key:     model.ViolationKey{Kind: d.Kind(), EmployeeID: emp.ID},
		Penalty: c.Penalty,
		Var:     slack,
	})
}

// compileShiftDependency forbids (hard) or penalizes (soft) assigning a
// shift of class IfWhen on day d together with a shift of class
// NotNextWhen on day d+DaysAfter. The aggregate A+B<=1 (A = sum of matching
// assignments on day d across sites, B = sum of matching assignments on
// d+DaysAfter) is a single constraint per day, not one per (v1,v2) pair.
func compileShiftDependency(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.ShiftDependency) {
	for _, day := range inputs.Days {
		next, err := calendar.AddDays(day.Date, d.DaysAfter)
		if err != nil {
			continue
		}

		sum := cpmodel.NewLinearExpr()
		any := false
		forEachAssignmentOn(inputs, vars, emp, day.Date, func(shift model.Shift, v cpmodel.BoolVar) {
			if shift.When == d.IfWhen {
				sum.Add(v)
				any = true
			}
		})
		forEachAssignmentOn(inputs, vars, emp, next, func(shift model.Shift, v cpmodel.BoolVar) {
			if shift.When == d.NotNextWhen {
				sum.Add(v)
				any = true
			}
		})
		if !any {
			continue
		}

		if !c.Soft {
			builder.AddLessOrEqual(sum, cpmodel.NewConstant(1))
			continue
		}

		slack := builder.NewIntVar(0, bigM).WithName("dep_slack_e" + emp.Name + "_" + day.Date)
		capped := cpmodel.NewLinearExpr()
		capped.Add(slack)
		capped.Add(cpmodel.NewConstant(1))
		builder.AddLessOrEqual(sum, capped)
		report.addSlack(Slack{
			Key:     model.ViolationKey{Kind: d.Kind(), EmployeeID: emp.ID, Date: day.Date},
			Penalty: c.Penalty,
			Var:     slack,
		})
	}
}

func compileDailyShiftLimit(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.DailyShiftLimit) {
	for _, day := range inputs.Days {
		assigned := vars.AssignmentsForEmployeeDay(inputs, emp.ID, day.Date)
		if len(assigned) == 0 {
			continue
		}
		sum := cpmodel.NewLinearExpr()
		for _, v := range assigned {
			sum.Add(v)
		}

		if !c.Soft {
			builder.AddLessOrEqual(sum, cpmodel.NewConstant(int64(d.MaxShiftsPerDay)))
			continue
		}

		slack := builder.NewIntVar(0, bigM).WithName("daily_slack_e" + emp.Name + "_" + day.Date)
		capped := cpmodel.NewLinearExpr()
		capped.Add(slack)
		capped.Add(cpmodel.NewConstant(int64(d.MaxShiftsPerDay)))
		builder.AddLessOrEqual(sum, capped)
		report.addSlack(Slack{
			Key:     model.ViolationKey{Kind: d.Kind(), EmployeeID: emp.ID, Date: day.Date},
			Penalty: c.Penalty,
			Var:     slack,
		})
	}
}

func compileBiweeklyAlternation(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report, emp model.Employee, c model.Constraint, d model.BiweeklyAlternation) {
	forEachMatchingAssignment(inputs, vars, emp, func(site model.Site, shift model.Shift, day model.Day, v cpmodel.BoolVar) {
		if shift.When != BlockedClass(d, day.ISOWeek) {
			return
		}
		applyOrRecord(builder, report, c, v, model.ViolationKey{
			Kind: d.Kind(), EmployeeID: emp.ID, Date: day.Date, ShiftCode: shift.Name, SiteCode: site.Name, ISOWeek: day.ISOWeek,
		})
	})
}

// compileWeeklyHours implements §4.5: per ISO week, the centi-hour sum of an
// employee's assignments may not exceed their resolved weekly cap.
func compileWeeklyHours(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report) {
	weeks := calendar.ISOWeeksInMonth(inputs.Days)

	for _, emp := range inputs.Employees {
		capHours, hard, penalty, ok := emp.WeeklyHourCap()
		if !ok {
			continue
		}
		capCenti := int64(capHours*100 + 0.5)

		for _, week := range weeks {
			sum := cpmodel.NewLinearExpr()
			any := false
			for _, day := range inputs.Days {
				if day.ISOWeek != week {
					continue
				}
				forEachAssignmentOn(inputs, vars, emp, day.Date, func(shift model.Shift, v cpmodel.BoolVar) {
					any = true
					sum.AddTerm(v, shift.DurationCentiHours())
				})
			}
			if !any {
				continue
			}

			if hard {
				builder.AddLessOrEqual(sum, cpmodel.NewConstant(capCenti))
				continue
			}

			slack := builder.NewIntVar(0, bigM).WithName("weekly_hour_slack")
			capped := cpmodel.NewLinearExpr()
			capped.Add(slack)
			capped.Add(cpmodel.NewConstant(capCenti))
			builder.AddLessOrEqual(sum, capped)
			report.addSlack(Slack{
				Key:     model.ViolationKey{Kind: "weekly_hour_limit", EmployeeID: emp.ID, ISOWeek: week},
				Penalty: penalty,
				Var:     slack,
			})
		}
	}
}

// compileSundayAlternation implements the global biweekly Sunday-alternation
// policy of §4.6. Employees with a hard personal Sunday exclusion are
// skipped entirely — the personal rule wins.
func compileSundayAlternation(builder *cpmodel.CpModelBuilder, inputs model.PlanInputs, vars *variables.Set, report *Report) {
	policy := inputs.GlobalPolicy.SundayAlternation
	if !policy.Active {
		return
	}

	for _, emp := range inputs.Employees {
		if HasHardSundayExclusion(emp) {
			continue
		}
		for _, day := range inputs.Days {
			if day.Weekday != model.Sunday || !SundayBlocked(policy.StartingWeek, day.ISOWeek) {
				continue
			}
			forEachAssignmentOn(inputs, vars, emp, day.Date, func(shift model.Shift, v cpmodel.BoolVar) {
				if len(policy.Shifts) > 0 && !containsString(policy.Shifts, shift.Name) {
					return
				}
				key := model.ViolationKey{Kind: "sunday_alternation", EmployeeID: emp.ID, Date: day.Date, ShiftCode: shift.Name, ISOWeek: day.ISOWeek}
				if !policy.Soft {
					zero(builder, v)
					return
				}
				report.addViolation(Violation{Key: key, Penalty: policy.Penalty, Indicator: v})
			})
		}
	}
}

// applyOrRecord zeroes v if the constraint is hard, or records it as a
// violation accumulator (the assignment itself is the violation) if soft.
func applyOrRecord(builder *cpmodel.CpModelBuilder, report *Report, c model.Constraint, v cpmodel.BoolVar, key model.ViolationKey) {
	if !c.Soft {
		zero(builder, v)
		return
	}
	report.addViolation(Violation{Key: key, Penalty: c.Penalty, Indicator: v})
}

func zero(builder *cpmodel.CpModelBuilder, v cpmodel.BoolVar) {
	builder.AddEquality(v, cpmodel.NewConstant(0))
}

// forEachMatchingAssignment visits every (site, shift, day, var) combination
// that exists for the employee.
func forEachMatchingAssignment(inputs model.PlanInputs, vars *variables.Set, emp model.Employee, fn func(site model.Site, shift model.Shift, day model.Day, v cpmodel.BoolVar)) {
	for _, site := range inputs.Sites {
		for _, shiftName := range site.AvailableShifts {
			shift, ok := inputs.Shifts[shiftName]
			if !ok {
				continue
			}
			for _, day := range inputs.Days {
				key := variables.AssignmentKey{EmployeeID: emp.ID, Date: day.Date, Site: site.Name, Shift: shiftName}
				v, ok := vars.Assignment[key]
				if !ok {
					continue
				}
				fn(site, shift, day, v)
			}
		}
	}
}

// forEachAssignmentOn visits every (shift, var) combination that exists for
// the employee on a single date, across every site.
func forEachAssignmentOn(inputs model.PlanInputs, vars *variables.Set, emp model.Employee, date string, fn func(shift model.Shift, v cpmodel.BoolVar)) {
	for _, site := range inputs.Sites {
		for _, shiftName := range site.AvailableShifts {
			shift, ok := inputs.Shifts[shiftName]
			if !ok {
				continue
			}
			key := variables.AssignmentKey{EmployeeID: emp.ID, Date: date, Site: site.Name, Shift: shiftName}
			v, ok := vars.Assignment[key]
			if !ok {
				continue
			}
			fn(shift, v)
		}
	}
}
