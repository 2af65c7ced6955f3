// Package pricing implements the server-side price plausibility check. Any
// client-side bound check is advisory only; this is the authoritative rule.
package pricing

import "math"

// Band is how far a proposed price may deviate from the station's current
// price in either direction, inclusive.
const Band = 0.20

// Decision is a validation outcome, not an error: a rejected price leaves
// the station unchanged and the bounds let the caller redisplay the band.
type Decision struct {
	Accepted   bool    `json:"accepted"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// Round2 rounds to two decimal places. Rounding happens here, at the
// validator boundary, and nowhere earlier: rounding before comparison would
// let a borderline value slip past the band.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Evaluate checks a proposed price against the station's current price.
// current == nil means the station has no price history yet, in which case
// any non-negative value is accepted.
func Evaluate(current *float64, proposed float64) Decision {
	p := Round2(proposed)
	if current == nil {
		return Decision{Accepted: p >= 0, Value: p}
	}
	lower := Round2(*current - Band)
	upper := Round2(*current + Band)
	return Decision{
		Accepted:   p >= lower && p <= upper,
		Value:      p,
		LowerBound: lower,
		UpperBound: upper,
	}
}
