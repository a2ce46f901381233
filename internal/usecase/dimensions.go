package usecase

import (
	"errors"
	"math"
)

var ErrNonPositiveDimension = errors.New("dimension must be positive")

// Quantity helpers share one hard rule: every result rounds up, never down.
// Under-provisioning construction material on site is the failure mode
// these functions exist to avoid.

// PanelsNeeded returns how many panels cover totalWidthM given the usable
// (effective coverage) width of one panel. Minimum 1.
func PanelsNeeded(totalWidthM, usableWidthM float64) (int, error) {
	if totalWidthM <= 0 || usableWidthM <= 0 {
		return 0, ErrNonPositiveDimension
	}
	n := int(math.Ceil(totalWidthM / usableWidthM))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// SupportsNeeded returns the support count for a panel run: one support per
// started span plus the closing one.
func SupportsNeeded(lengthM, maxSpanM float64) (int, error) {
	if maxSpanM <= 0 {
		return 0, ErrNonPositiveDimension
	}
	if lengthM <= 0 {
		return 0, ErrNonPositiveDimension
	}
	return int(math.Ceil(lengthM/maxSpanM)) + 1, nil
}

// FixationPoints estimates fixing points for a run of panels.
//
// The formula (2 points per panel/support crossing plus 2 extra points per
// 2.5 m of length) is empirical, taken from installation practice. It is
// not derived from a structural model.
func FixationPoints(panels, supports int, lengthM float64) int {
	return int(math.Ceil(float64(panels*supports*2) + lengthM*2/2.5))
}

// unitsFor converts a required linear quantity into purchasable units of a
// given size, rounding up.
func unitsFor(requiredM, perUnitM float64) (int, error) {
	if requiredM <= 0 || perUnitM <= 0 {
		return 0, ErrNonPositiveDimension
	}
	return int(math.Ceil(requiredM / perUnitM)), nil
}
