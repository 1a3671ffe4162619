package plan

import (
	"fmt"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/model"
)

// convertConstraint dispatches on cd.Type and builds the matching
// model.ConstraintDetail, or an error naming the malformed field if the row
// cannot be interpreted. The caller (Build) converts the error into a
// skip-with-warning per §7.
func convertConstraint(cd config.ConstraintDoc) (model.ConstraintDetail, error) {
	switch cd.Type {
	case "temporal_exclusion":
		if len(cd.Whens) == 0 && len(cd.Weekdays) == 0 {
			return nil, fmt.Errorf("temporal_exclusion requires at least one of whens/weekdays")
		}
		whens := make([]model.TemporalClass, 0, len(cd.Whens))
		for _, w := range cd.Whens {
			whens = append(whens, model.TemporalClass(w))
		}
		return model.TemporalExclusion{Whens: whens, Weekdays: cd.Weekdays}, nil

	case "hour_range_exclusion":
		if cd.AfterHour == nil && cd.UntilHour == nil {
			return nil, fmt.Errorf("hour_range_exclusion requires after_hour and/or until_hour")
		}
		return model.HourRangeExclusion{
			Weekday:   cd.Weekday,
			AfterHour: cd.AfterHour,
			UntilHour: cd.UntilHour,
		}, nil

	case "site_restriction":
		if len(cd.AllowedSites) == 0 {
			return nil, fmt.Errorf("site_restriction requires a non-empty allowed_sites list")
		}
		return model.SiteRestriction{AllowedSites: cd.AllowedSites}, nil

	case "frequency_limit":
		if cd.Limit <= 0 {
			return nil, fmt.Errorf("frequency_limit requires a positive limit")
		}
		var when *model.TemporalClass
		if cd.When != "" {
			tc := model.TemporalClass(cd.When)
			when = &tc
		}
		var weekday *string
		if cd.Weekday != "" {
			weekday = &cd.Weekday
		}
		return model.FrequencyLimit{When: when, Weekday: weekday, Limit: cd.Limit, Period: cd.Period}, nil

	case "shift_dependency":
		if cd.IfWhen == "" || cd.NotNextWhen == "" {
			return nil, fmt.Errorf("shift_dependency requires if_when and not_next_when")
		}
		daysAfter := cd.DaysAfter
		if daysAfter <= 0 {
			daysAfter = 1
		}
		return model.ShiftDependency{
			IfWhen:      model.TemporalClass(cd.IfWhen),
			NotNextWhen: model.TemporalClass(cd.NotNextWhen),
			DaysAfter:   daysAfter,
		}, nil

	case "daily_shift_limit":
		if cd.MaxShiftsPerDay <= 0 {
			return nil, fmt.Errorf("daily_shift_limit requires a positive max_shifts_per_day")
		}
		return model.DailyShiftLimit{MaxShiftsPerDay: cd.MaxShiftsPerDay}, nil

	case "biweekly_alternation":
		if cd.When1 == "" || cd.When2 == "" {
			return nil, fmt.Errorf("biweekly_alternation requires when1 and when2")
		}
		return model.BiweeklyAlternation{
			When1:        model.TemporalClass(cd.When1),
			When2:        model.TemporalClass(cd.When2),
			StartingWeek: cd.StartingWeek,
		}, nil

	case "weekly_hour_limit":
		if cd.MaxHours <= 0 {
			return nil, fmt.Errorf("weekly_hour_limit requires a positive max_hours")
		}
		return model.WeeklyHourLimit{MaxHours: cd.MaxHours}, nil

	default:
		return nil, fmt.Errorf("unknown constraint type %q", cd.Type)
	}
}
