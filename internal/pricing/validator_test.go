package pricing

import (
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestEvaluateWithHistory(t *testing.T) {
	current := 3.50

	cases := []struct {
		name     string
		proposed float64
		accepted bool
		value    float64
	}{
		{"well inside band", 3.60, true, 3.60},
		{"upper bound inclusive", 3.70, true, 3.70},
		{"just above upper bound", 3.71, false, 3.71},
		{"lower bound inclusive", 3.30, true, 3.30},
		{"just below lower bound", 3.29, false, 3.29},
		{"equal to current", 3.50, true, 3.50},
		{"rounded into band", 3.7004, true, 3.70},
		{"rounded out of band", 3.7051, false, 3.71},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(f64(current), tc.proposed)
			if d.Accepted != tc.accepted {
				t.Fatalf("Evaluate(%v, %v): accepted=%v, want %v", current, tc.proposed, d.Accepted, tc.accepted)
			}
			if d.Value != tc.value {
				t.Fatalf("Evaluate(%v, %v): value=%v, want %v", current, tc.proposed, d.Value, tc.value)
			}
		})
	}
}

func TestEvaluateBounds(t *testing.T) {
	d := Evaluate(f64(3.50), 3.60)
	if d.LowerBound != 3.30 || d.UpperBound != 3.70 {
		t.Fatalf("bounds = [%v, %v], want [3.30, 3.70]", d.LowerBound, d.UpperBound)
	}
}

func TestEvaluateEmptyHistory(t *testing.T) {
	d := Evaluate(nil, 9.99)
	if !d.Accepted {
		t.Fatalf("first price should always be accepted")
	}
	if d.Value != 9.99 {
		t.Fatalf("value = %v, want 9.99", d.Value)
	}

	d = Evaluate(nil, 0)
	if !d.Accepted {
		t.Fatalf("zero is a valid first price")
	}

	d = Evaluate(nil, -0.01)
	if d.Accepted {
		t.Fatalf("negative first price should be rejected")
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, out float64
	}{
		{3.456, 3.46},
		{3.454, 3.45},
		{2.0, 2.0},
		{0.1 + 0.2, 0.3},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); math.Abs(got-tc.out) > 1e-9 {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.out)
		}
	}
}
