package domain

import "testing"

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		collected float64
		suggested float64
		want      int
	}{
		{"zero target avoids division", 500, 0, 0},
		{"negative target", 500, -10, 0},
		{"halfway", 50, 100, 50},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"complete", 100, 100, 100},
		{"over-funded clamps to 100", 250, 100, 100},
		{"nothing collected", 0, 100, 0},
		{"negative total clamps to 0", -50, 100, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ProgressPercent(tc.collected, tc.suggested)
			if got != tc.want {
				t.Fatalf("ProgressPercent(%v, %v) = %d, want %d", tc.collected, tc.suggested, got, tc.want)
			}
		})
	}
}
