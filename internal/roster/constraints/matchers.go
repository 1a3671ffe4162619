// Package constraints compiles every hard and individual/global constraint
// family into the CP-SAT model. The predicate functions in this file are
// pure (no solver dependency) so they can be unit tested directly; Compile
// (in compile.go) wires their results into cpmodel constraints.
package constraints

import (
	"strings"

	"github.com/paiban/roster/pkg/model"
)

// MatchesTemporalExclusion implements §4.4's temporal-exclusion matching
// rule: both filters (if present) must hold; an absent filter is vacuously
// true; if neither filter is present, nothing matches.
func MatchesTemporalExclusion(d model.TemporalExclusion, shift model.Shift, day model.Day) bool {
	hasWhen := len(d.Whens) > 0
	hasWeekday := len(d.Weekdays) > 0
	if !hasWhen && !hasWeekday {
		return false
	}
	return (!hasWhen || containsClass(d.Whens, shift.When)) &&
		(!hasWeekday || containsWeekdayName(d.Weekdays, day.Weekday))
}

// MatchesHourRangeExclusion implements §4.4's hour-range exclusion: either
// bound matching excludes the shift on the given weekday (or every weekday
// if unspecified).
func MatchesHourRangeExclusion(d model.HourRangeExclusion, shift model.Shift, day model.Day) bool {
	if d.Weekday != "" && !strings.EqualFold(d.Weekday, day.Weekday.String()) {
		return false
	}
	if shift.StartHour == -1 {
		return false
	}
	if d.AfterHour != nil && shift.StartHour >= *d.AfterHour {
		return true
	}
	if d.UntilHour != nil && shift.StartHour < *d.UntilHour {
		return true
	}
	return false
}

// MatchesSiteRestriction reports whether siteName is excluded by d (i.e. is
// NOT one of the allowed sites).
func MatchesSiteRestriction(d model.SiteRestriction, siteName string) bool {
	return !containsString(d.AllowedSites, siteName)
}

// MatchesFrequencyFilter implements the optional When/Weekday filter of the
// frequency-limit family.
func MatchesFrequencyFilter(d model.FrequencyLimit, shift model.Shift, day model.Day) bool {
	if d.When != nil && shift.When != *d.When {
		return false
	}
	if d.Weekday != nil && !strings.EqualFold(*d.Weekday, day.Weekday.String()) {
		return false
	}
	return true
}

// BlockedClass implements the biweekly personal alternation rule: the
// blocked class is When2 in even-offset ISO weeks, When1 in odd-offset
// weeks.
func BlockedClass(d model.BiweeklyAlternation, isoWeek int) model.TemporalClass {
	if mod2(isoWeek-d.StartingWeek) == 0 {
		return d.When2
	}
	return d.When1
}

// SundayBlocked implements the global biweekly Sunday-alternation rule: a
// Sunday is blocked when (isoWeek - startingWeek) mod 2 == 1.
func SundayBlocked(startingWeek, isoWeek int) bool {
	return mod2(isoWeek-startingWeek) == 1
}

// HasHardSundayExclusion reports whether the employee holds a hard personal
// temporal-exclusion naming the Sunday class — such an employee is skipped
// entirely by the global alternation policy (§4.6).
func HasHardSundayExclusion(emp model.Employee) bool {
	for _, c := range emp.Constraints {
		if c.Soft {
			continue
		}
		te, ok := c.Detail.(model.TemporalExclusion)
		if !ok {
			continue
		}
		if containsClass(te.Whens, model.ClassSunday) {
			return true
		}
	}
	return false
}

func mod2(n int) int {
	m := n % 2
	if m < 0 {
		m += 2
	}
	return m
}

func containsClass(list []model.TemporalClass, c model.TemporalClass) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

func containsWeekdayName(list []string, w model.Weekday) bool {
	for _, name := range list {
		if strings.EqualFold(name, w.String()) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
