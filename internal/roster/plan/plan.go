// Package plan assembles the immutable model.PlanInputs record from the
// loaded configuration document and the unavailability map. This is the
// "model-build" stage of the pipeline: a constraint row that references an
// unknown shift or malformed fields is skipped with a warning rather than
// aborting the whole load (§7).
package plan

import (
	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/internal/roster/calendar"
	"github.com/paiban/roster/pkg/logger"
	"github.com/paiban/roster/pkg/model"
)

// Build converts doc and unavailability into a model.PlanInputs.
func Build(doc *config.Document, unavailability model.Unavailability) model.PlanInputs {
	log := logger.NewRosterLogger()

	shifts := make(map[string]model.Shift, len(doc.Shifts))
	for _, sd := range doc.Shifts {
		shifts[sd.Name] = model.Shift{
			Name:                  sd.Name,
			DurationHours:         sd.DurationHours,
			StartHour:             sd.StartHour,
			When:                  model.TemporalClass(sd.When),
			RequiredCertification: sd.RequiredCertification,
		}
	}

	sites := make([]model.Site, 0, len(doc.Sites))
	for _, sd := range doc.Sites {
		sites = append(sites, model.Site{Name: sd.Name, AvailableShifts: sd.AvailableShifts})
	}

	employees := make([]model.Employee, 0, len(doc.Employees))
	for _, ed := range doc.Employees {
		constraints := make([]model.Constraint, 0, len(ed.Constraints))
		for _, cd := range ed.Constraints {
			detail, err := convertConstraint(cd)
			if err != nil {
				log.ConstraintSkipped(cd.Type, err.Error())
				continue
			}
			constraints = append(constraints, model.Constraint{
				Soft:    cd.Soft,
				Penalty: cd.Penalty,
				Detail:  detail,
			})
		}
		employees = append(employees, model.Employee{
			ID:             ed.ID,
			Name:           model.NormalizeName(ed.Name),
			Certifications: ed.Certifications,
			MaxWeeklyHours: ed.MaxWeeklyHours,
			Constraints:    constraints,
		})
	}

	knownNames := make(map[string]struct{}, len(employees))
	for _, emp := range employees {
		knownNames[emp.Name] = struct{}{}
	}
	matchedUnavailability := model.Unavailability{}
	for name, dates := range unavailability {
		if _, ok := knownNames[name]; !ok {
			log.UnmatchedUnavailability(name)
			continue
		}
		matchedUnavailability[name] = dates
	}

	staffing := model.StaffingTarget{}
	for name, count := range doc.GlobalConstraints.StaffPerShift {
		staffing[name] = count
	}

	policy := model.GlobalPolicy{
		SundayAlternation: model.SundayAlternationPolicy{
			Active:       doc.GlobalConstraints.SundayAlternation.Active,
			StartingWeek: doc.GlobalConstraints.SundayAlternation.StartingWeek,
			Soft:         doc.GlobalConstraints.SundayAlternation.Soft,
			Penalty:      doc.GlobalConstraints.SundayAlternation.Penalty,
			Shifts:       doc.GlobalConstraints.SundayAlternation.Shifts,
		},
	}

	weights := model.DefaultObjectiveWeights()
	if w := doc.ObjectiveWeights.Total; w != nil {
		weights.Total = *w
	}
	if w := doc.ObjectiveWeights.Priority; w != nil {
		weights.Priority = *w
	}
	if w := doc.ObjectiveWeights.Variance; w != nil {
		weights.Variance = *w
	}
	if w := doc.ObjectiveWeights.Violation; w != nil {
		weights.Violation = *w
	}
	if w := doc.ObjectiveWeights.DeficitSunday; w != nil {
		weights.DeficitSunday = *w
	}
	if w := doc.ObjectiveWeights.DeficitOther; w != nil {
		weights.DeficitOther = *w
	}

	timeLimit := doc.Solver.TimeLimitSeconds
	if timeLimit <= 0 {
		timeLimit = 60
	}

	return model.PlanInputs{
		Year:             doc.Year,
		Month:            doc.Month,
		Days:             calendar.DaysOfMonth(doc.Year, doc.Month),
		Employees:        employees,
		Shifts:           shifts,
		Sites:            sites,
		StaffingTargets:  staffing,
		GlobalPolicy:     policy,
		Weights:          weights,
		Unavailability:   matchedUnavailability,
		MaxTimeInSeconds: timeLimit,
	}
}
