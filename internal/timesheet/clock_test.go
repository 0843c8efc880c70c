package timesheet

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"06:00", 360, true},
		{"23:59", 1439, true},
		{"7:5", 425, true},
		{" 07:30 ", 450, true},
		{"", 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"12", 0, false},
		{"-1:30", 0, false},
		{"12:30:45", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseClock(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseClock(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		from, to int
		want     float64
	}{
		{360, 1080, 12},
		{360, 360, 0},
		{330, 360, 0.5},
		{1080, 360, -12},
	}
	for _, tt := range tests {
		if got := hoursBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("hoursBetween(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrOne(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.5, 1.5},
		{1.0, 1.0},
		{0, 1.0},
		{-2, 1.0},
	}
	for _, tt := range tests {
		if got := orOne(tt.in); got != tt.want {
			t.Errorf("orOne(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
