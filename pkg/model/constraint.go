package model

// ConstraintDetail is the tagged-variant payload of an individual or global
// constraint. Every family below implements it; internal/roster/constraints
// dispatches on the concrete type with a single type switch (see
// constraints.Compile) rather than scattering per-family `if` chains through
// the codebase.
type ConstraintDetail interface {
	// Kind names the family for logging and for the violation report's
	// ViolationKey.Kind field.
	Kind() string
}

// Constraint wraps a family-specific detail with the hard/soft flag and
// penalty weight shared by every family.
type Constraint struct {
	Soft    bool           `json:"soft"`
	Penalty int            `json:"penalty"`
	Detail  ConstraintDetail `json:"detail"`
}

// TemporalExclusion forbids (or penalizes) assignment of shifts whose class
// and/or weekday match both given filters. An absent filter matches
// everything on that axis; when neither filter is set, nothing matches.
type TemporalExclusion struct {
	Whens    []TemporalClass `json:"whens,omitempty"`
	Weekdays []string        `json:"weekdays,omitempty"`
}

func (TemporalExclusion) Kind() string { return "temporal_exclusion" }

// HourRangeExclusion forbids (or penalizes) shifts whose start hour is at or
// after AfterHour, or before UntilHour — either bound matching on its own is
// enough — on the given weekday (or every weekday, if unset).
type HourRangeExclusion struct {
	Weekday    string `json:"weekday,omitempty"`
	AfterHour  *int   `json:"after_hour,omitempty"`
	UntilHour  *int   `json:"until_hour,omitempty"`
}

func (HourRangeExclusion) Kind() string { return "hour_range_exclusion" }

// SiteRestriction forbids assignment at every site not named in
// AllowedSites.
type SiteRestriction struct {
	AllowedSites []string `json:"allowed_sites"`
}

func (SiteRestriction) Kind() string { return "site_restriction" }

// FrequencyLimit caps the count of matching assignments (filtered by When
// and/or Weekday, both optional) to Limit over the whole planning horizon.
type FrequencyLimit struct {
	When    *TemporalClass `json:"when,omitempty"`
	Weekday *string        `json:"weekday,omitempty"`
	Limit   int            `json:"limit"`
	Period  string         `json:"period,omitempty"` // label only
}

func (FrequencyLimit) Kind() string { return "frequency_limit" }

// ShiftDependency forbids assigning a shift of class IfWhen on day d together
// with a shift of class NotNextWhen on day d+DaysAfter.
type ShiftDependency struct {
	IfWhen      TemporalClass `json:"if_when"`
	NotNextWhen TemporalClass `json:"not_next_when"`
	DaysAfter   int           `json:"days_after"`
}

func (ShiftDependency) Kind() string { return "shift_dependency" }

// DailyShiftLimit caps the number of shifts (of any kind, at any site) an
// employee may work on a single day.
type DailyShiftLimit struct {
	MaxShiftsPerDay int `json:"max_shifts_per_day"`
}

func (DailyShiftLimit) Kind() string { return "daily_shift_limit" }

// BiweeklyAlternation blocks one of two shift classes on each day, alternating
// by ISO week parity relative to StartingWeek: When2 is blocked in even-offset
// weeks, When1 in odd-offset weeks.
type BiweeklyAlternation struct {
	When1        TemporalClass `json:"when1"`
	When2        TemporalClass `json:"when2"`
	StartingWeek int           `json:"starting_week"`
}

func (BiweeklyAlternation) Kind() string { return "biweekly_alternation" }

// WeeklyHourLimit overrides an employee's plain MaxWeeklyHours field when
// present in their constraint list (see Employee.WeeklyHourCap).
type WeeklyHourLimit struct {
	MaxHours float64 `json:"max_hours"`
}

func (WeeklyHourLimit) Kind() string { return "weekly_hour_limit" }
