package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/pkg/model"
)

// Violation is one soft-constraint accumulator: Indicator is 1 exactly when
// the violation occurs, contributing Penalty to the objective's violation
// term (§4.7's V).
type Violation struct {
	Key       model.ViolationKey
	Penalty   int
	Indicator cpmodel.BoolVar
}

// Slack is one soft-constraint overflow accumulator for families expressed
// as a linear cap (frequency limits, weekly-hour limits): Var counts the
// amount by which the cap was exceeded.
type Slack struct {
	Key     model.ViolationKey
	Penalty int
	Var     cpmodel.IntVar
}

// Report collects every soft-violation accumulator created while compiling
// constraints, for consumption by the objective builder and result
// collector.
type Report struct {
	Violations []Violation
	Slacks     []Slack
}

func (r *Report) addViolation(v Violation) {
	r.Violations = append(r.Violations, v)
}

func (r *Report) addSlack(s Slack) {
	r.Slacks = append(r.Slacks, s)
}
