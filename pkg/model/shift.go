package model

// TemporalClass tags when a shift is legal to assign. The gating rule lives
// in internal/roster/variables, not here — this package only carries the
// tag.
type TemporalClass string

const (
	ClassWeekday   TemporalClass = "Weekday"
	ClassSunday    TemporalClass = "Sunday"
	ClassMorning   TemporalClass = "Morning"
	ClassAfternoon TemporalClass = "Afternoon"
	ClassNight     TemporalClass = "Night"
)

// Shift is a shift type: a name, a duration, a start hour, and the temporal
// class that decides which calendar days it may be assigned on.
type Shift struct {
	Name                  string        `json:"name"`
	DurationHours         float64       `json:"duration_hours"`
	StartHour             int           `json:"start_hour"` // 0-23, or -1 if unset
	When                  TemporalClass `json:"when"`
	RequiredCertification string        `json:"required_certification,omitempty"`
}

// DurationCentiHours is the shift's duration as an integer number of
// hundredths of an hour, keeping the CP-SAT model pure-integer.
func (s Shift) DurationCentiHours() int64 {
	return int64(s.DurationHours*100 + 0.5)
}

// Site is a work site and the shifts it offers.
type Site struct {
	Name            string   `json:"name"`
	AvailableShifts []string `json:"available_shifts"`
}

// Offers reports whether the site offers the named shift.
func (s Site) Offers(shiftName string) bool {
	for _, n := range s.AvailableShifts {
		if n == shiftName {
			return true
		}
	}
	return false
}

// StaffingTarget maps a shift name to the number of employees required on
// every (day, site) pair where that shift is legal.
type StaffingTarget map[string]int
