// Package metrics instruments one solve run with Prometheus collectors.
// There is no HTTP server in this pipeline (a single batch job, not a
// service) — collectors are recorded then dumped to the log at the end of
// the run via Summary.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paiban/roster/pkg/logger"
)

var (
	solveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_solve_duration_seconds",
		Help:    "Wall-clock duration of a CP-SAT solve attempt.",
		Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
	})
	objectiveValue = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_solve_objective_value",
		Help: "Objective value reported by the most recent solve.",
	})
	violationCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_solve_violation_count",
		Help: "Count of soft-constraint violations in the most recent solve.",
	})
	deficitCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_solve_deficit_count",
		Help: "Count of under-staffed slots in the most recent solve.",
	})
)

func init() {
	prometheus.MustRegister(solveDuration, objectiveValue, violationCount, deficitCount)
}

// Record captures one solve run's outcome in the registered collectors.
func Record(durationSeconds, objective float64, violations, deficits int) {
	solveDuration.Observe(durationSeconds)
	objectiveValue.Set(objective)
	violationCount.Set(float64(violations))
	deficitCount.Set(float64(deficits))
}

// Summary logs the recorded metrics, since this job has no scrape endpoint.
func Summary(durationSeconds, objective float64, violations, deficits int) {
	logger.Info().
		Float64("duration_seconds", durationSeconds).
		Float64("objective", objective).
		Int("violations", violations).
		Int("deficits", deficits).
		Msg("solve run metrics")
}
