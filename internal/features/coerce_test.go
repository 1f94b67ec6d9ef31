package features

import "testing"

func TestCoerceDigits(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"85", 85},
		{"85%", 85},
		{"90 menit", 90},
		{"N/A", 0},
		{"", 0},
		{"12.5", 125},
		{"score: 100 pts", 100},
		{"-40", 40},
	}
	for _, c := range cases {
		if got := CoerceDigits(c.in); got != c.want {
			t.Fatalf("CoerceDigits(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
