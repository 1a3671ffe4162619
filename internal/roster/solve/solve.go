// Package solve drives the CP-SAT search over a compiled model and reports
// the outcome as a Result/Statistics-shaped record.
package solve

import (
	"context"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"

	apperrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/logger"
	"github.com/paiban/roster/pkg/model"
	"github.com/google/or-tools/ortools/sat/proto/satparameters"
)

// Outcome is the result of one solve attempt.
type Outcome struct {
	RunID     string
	Status    string
	Objective float64
	Duration  time.Duration
	Response  *cpmodel.CpSolverResponse
}

// Run instantiates and solves builder against inputs' solver budget,
// returning once the solver finishes or ctx is canceled. The or-tools
// binding has no native cancellation hook, so a canceled ctx returns
// ctx.Err() immediately while the underlying solve continues to run its
// course in the background.
func Run(ctx context.Context, builder *cpmodel.CpModelBuilder, inputs model.PlanInputs) (*Outcome, error) {
	runID := uuid.New().String()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.NewRosterLogger()
	log.StartSolve(ctx, inputs.Year, inputs.Month, len(inputs.Employees), len(inputs.Days))

	m, err := builder.Model()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeModelInvalid, "failed to instantiate CP-SAT model")
	}

	params := &satparameters.SatParameters{
		MaxTimeInSeconds:  proto.Float64(float64(timeLimit(inputs.MaxTimeInSeconds))),
		NumSearchWorkers:  proto.Int32(8),
		LogSearchProgress: proto.Bool(true),
	}

	type solveResult struct {
		response *cpmodel.CpSolverResponse
		err      error
	}
	done := make(chan solveResult, 1)
	start := time.Now()

	go func() {
		response, err := cpmodel.SolveCpModelWithParameters(m, params)
		done <- solveResult{response, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		duration := time.Since(start)
		if r.err != nil {
			return nil, apperrors.Wrap(r.err, apperrors.CodeSolverUnknown, "CP-SAT solve call failed")
		}

		status := r.response.GetStatus().String()
		objective := r.response.GetObjectiveValue()
		log.SolveComplete(ctx, status, duration, objective)

		outcome := &Outcome{
			RunID:     runID,
			Status:    status,
			Objective: objective,
			Duration:  duration,
			Response:  r.response,
		}

		if status != "OPTIMAL" && status != "FEASIBLE" {
			return outcome, apperrors.SolverOutcome(status)
		}
		return outcome, nil
	}
}

func timeLimit(seconds int) int {
	if seconds <= 0 {
		return 60
	}
	return seconds
}
