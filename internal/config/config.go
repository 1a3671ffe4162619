// Package config loads and validates the roster configuration document.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/paiban/roster/pkg/errors"
)

// Document is the JSON configuration document: sites, shifts, employees,
// global constraints, objective weights, and solver parameters.
type Document struct {
	Year              int                  `json:"year" validate:"required"`
	Month             int                  `json:"month" validate:"required,min=1,max=12"`
	Sites             []SiteDoc            `json:"sites" validate:"required,min=1,dive"`
	Shifts            []ShiftDoc           `json:"shifts" validate:"required,min=1,dive"`
	Employees         []EmployeeDoc        `json:"employees" validate:"required,min=1,dive"`
	GlobalConstraints GlobalConstraints    `json:"global_constraints"`
	ObjectiveWeights  ObjectiveWeightsDoc  `json:"objective_weights"`
	Solver            SolverDoc            `json:"solver"`
}

// SiteDoc is one entry of the "sites" array.
type SiteDoc struct {
	Name            string   `json:"name" validate:"required"`
	AvailableShifts []string `json:"available_shifts"`
}

// ShiftDoc is one entry of the "shifts" array.
type ShiftDoc struct {
	Name                  string  `json:"name" validate:"required"`
	DurationHours         float64 `json:"duration_hours" validate:"gt=0"`
	StartHour             int     `json:"start_hour"`
	When                  string  `json:"when" validate:"required"`
	RequiredCertification string  `json:"required_certification,omitempty"`
}

// ConstraintDoc is one entry of an employee's "constraints" array. Only the
// fields relevant to Type are expected to be populated; internal/roster/plan
// interprets Type and the matching fields into a model.Constraint.
type ConstraintDoc struct {
	Type    string   `json:"type" validate:"required"`
	Soft    bool     `json:"soft"`
	Penalty int      `json:"penalty"`

	Whens    []string `json:"whens,omitempty"`
	Weekdays []string `json:"weekdays,omitempty"`
	Weekday  string   `json:"weekday,omitempty"`

	AfterHour *int `json:"after_hour,omitempty"`
	UntilHour *int `json:"until_hour,omitempty"`

	AllowedSites []string `json:"allowed_sites,omitempty"`

	When   string `json:"when,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Period string `json:"period,omitempty"`

	IfWhen      string `json:"if_when,omitempty"`
	NotNextWhen string `json:"not_next_when,omitempty"`
	DaysAfter   int    `json:"days_after,omitempty"`

	MaxShiftsPerDay int `json:"max_shifts_per_day,omitempty"`

	When1        string `json:"when1,omitempty"`
	When2        string `json:"when2,omitempty"`
	StartingWeek int    `json:"starting_week,omitempty"`

	MaxHours float64 `json:"max_hours,omitempty"`
}

// EmployeeDoc is one entry of the "employees" array.
type EmployeeDoc struct {
	ID             int             `json:"id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Certifications []string        `json:"certifications"`
	MaxWeeklyHours float64         `json:"max_weekly_hours"`
	Constraints    []ConstraintDoc `json:"constraints"`
}

// SundayAlternationDoc is the "global_constraints.sunday_alternation" object.
type SundayAlternationDoc struct {
	Active       bool     `json:"active"`
	StartingWeek int      `json:"starting_week"`
	Soft         bool     `json:"soft"`
	Penalty      int      `json:"penalty"`
	Shifts       []string `json:"shifts"`
}

// GlobalConstraints is the "global_constraints" object.
type GlobalConstraints struct {
	StaffPerShift     map[string]int       `json:"staff_per_shift"`
	SundayAlternation SundayAlternationDoc `json:"sunday_alternation"`
}

// ObjectiveWeightsDoc is the "objective_weights" object. Every field is a
// pointer so an absent key falls back to model.DefaultObjectiveWeights
// instead of zeroing the weight out.
type ObjectiveWeightsDoc struct {
	Total         *int `json:"w_total,omitempty"`
	Priority      *int `json:"w_priority,omitempty"`
	Variance      *int `json:"w_variance,omitempty"`
	Violation     *int `json:"w_violation,omitempty"`
	DeficitSunday *int `json:"w_deficit_sunday,omitempty"`
	DeficitOther  *int `json:"w_deficit_other,omitempty"`
}

// SolverDoc is the "solver" object.
type SolverDoc struct {
	TimeLimitSeconds int `json:"time_limit_seconds"`
}

var validate = validator.New()

// Load reads and validates the configuration document at path. Any failure
// here — missing file, malformed JSON, failed validation — is a fatal
// configuration error per §7.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrConfigNotFound.WithCause(err).WithField("path", path)
		}
		return nil, apperrors.ConfigError(fmt.Sprintf("cannot read %s", path), err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.ConfigError("malformed configuration JSON", err)
	}

	if err := validate.Struct(&doc); err != nil {
		ve := &apperrors.ValidationErrors{}
		for _, fe := range err.(validator.ValidationErrors) {
			ve.Add(fe.Namespace(), fe.Tag())
		}
		return nil, ve.ToAppError()
	}

	return &doc, nil
}
