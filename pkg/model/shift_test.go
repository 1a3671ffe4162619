package model

import "testing"

func TestShift_DurationCentiHours(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  int64
	}{
		{"whole hours", 8, 800},
		{"half hour", 7.5, 750},
		{"two decimals", 6.25, 625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Shift{DurationHours: tt.hours}
			if got := s.DurationCentiHours(); got != tt.want {
				t.Errorf("DurationCentiHours() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSite_Offers(t *testing.T) {
	s := Site{Name: "Site A", AvailableShifts: []string{"M", "P"}}

	if !s.Offers("M") {
		t.Error("expected Site A to offer shift M")
	}
	if s.Offers("N") {
		t.Error("did not expect Site A to offer shift N")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  mario rossi ", "MARIO ROSSI"},
		{"Anna Bianchi", "ANNA BIANCHI"},
		{"GIA'GIA'", "GIA'GIA'"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
