// Package score holds the efficiency arithmetic. Every mutation of a
// member's efficiency goes through one of these functions so the 0..100
// clamp cannot be bypassed.
package score

import (
	"errors"
	"math"
)

const (
	// MinEfficiency and MaxEfficiency bound every member score.
	MinEfficiency = 0
	MaxEfficiency = 100
)

// ErrInvalidPoints is returned when a caller passes a negative point value.
// Boundary scores never error: clamping absorbs overflow and underflow.
var ErrInvalidPoints = errors.New("points must be non-negative")

// Award adds task points at full value, clamped to MaxEfficiency.
// The admin UI uses the quanta 5, 10 and 20, but any non-negative value
// is accepted.
func Award(current, points int) (int, error) {
	if points < 0 {
		return 0, ErrInvalidPoints
	}
	return min(MaxEfficiency, current+points), nil
}

// Penalty subtracts points, clamped to MinEfficiency.
func Penalty(current, points int) (int, error) {
	if points < 0 {
		return 0, ErrInvalidPoints
	}
	return max(MinEfficiency, current-points), nil
}

// Verification adds a tenth of the activity's nominal points, rounded.
// Verified activities deliberately contribute a fraction of their value
// to the visible score; task awards contribute full value.
func Verification(current, activityPoints int) (int, error) {
	if activityPoints < 0 {
		return 0, ErrInvalidPoints
	}
	raw := math.Round(float64(current) + float64(activityPoints)/10)
	return min(MaxEfficiency, int(raw)), nil
}
