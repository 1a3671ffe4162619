// Package runner orchestrates the full roster pipeline as an explicit
// function-call sequence: no package-level mutable state, every stage
// receives exactly the inputs it needs and returns the record the next
// stage consumes.
package runner

import (
	"context"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/internal/metrics"
	"github.com/paiban/roster/internal/report"
	"github.com/paiban/roster/internal/roster/constraints"
	"github.com/paiban/roster/internal/roster/objective"
	"github.com/paiban/roster/internal/roster/plan"
	"github.com/paiban/roster/internal/roster/result"
	"github.com/paiban/roster/internal/roster/solve"
	"github.com/paiban/roster/internal/roster/variables"
	"github.com/paiban/roster/internal/unavailability"
	apperrors "github.com/paiban/roster/pkg/errors"
)

// Options names the two input files and the directory the report is
// written into.
type Options struct {
	ConfigPath         string
	UnavailabilityPath string
	ReportDir          string
}

// Outcome is what a pipeline run produced, whether or not the solve was
// fully successful — an INFEASIBLE solve is still a completed run, not a
// pipeline failure.
type Outcome struct {
	SolveStatus string
	ReportPath  string
	Result      *result.Result
}

// Run executes config load -> unavailability load -> plan build -> variable
// build -> constraint compile -> objective build -> solve -> result collect
// -> report write, in that order.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	doc, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	unavail := unavailability.Load(opts.UnavailabilityPath)

	inputs := plan.Build(doc, unavail)

	builder := cpmodel.NewCpModelBuilder()
	vars, err := variables.Build(builder, inputs)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeModelInvalid, "failed to build decision variables")
	}

	compiled, err := constraints.Compile(builder, inputs, vars)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeModelInvalid, "failed to compile constraints")
	}

	totals, err := objective.Build(builder, inputs, vars, compiled)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeModelInvalid, "failed to build objective")
	}

	outcome, solveErr := solve.Run(ctx, builder, inputs)
	if outcome == nil {
		return nil, solveErr
	}

	if solveErr != nil && apperrors.GetCode(solveErr) != apperrors.CodeInfeasible && apperrors.GetCode(solveErr) != apperrors.CodeSolverUnknown {
		return nil, solveErr
	}

	var res *result.Result
	var reportPath string
	if outcome.Response != nil && (outcome.Status == "OPTIMAL" || outcome.Status == "FEASIBLE") {
		res = result.Collect(outcome.Response, inputs, vars, totals, compiled)
		metrics.Record(outcome.Duration.Seconds(), outcome.Objective, len(res.Violations), len(res.UnderStaffed))
		metrics.Summary(outcome.Duration.Seconds(), outcome.Objective, len(res.Violations), len(res.UnderStaffed))

		path, err := report.Write(opts.ReportDir, inputs.Year, inputs.Month, res, inputs)
		if err != nil {
			return nil, err
		}
		reportPath = path
	}

	return &Outcome{SolveStatus: outcome.Status, ReportPath: reportPath, Result: res}, nil
}
