package troupe

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Unit is a sub-pixel distance in 26.6 fixed point: 64 units per device
// pixel. Actor boxes, anchor points, and projected vertices are all held in
// Units so that equality checks (and the coalescing they gate) are exact.
type Unit fixed.Int26_6

// UnitFromPixels converts whole device pixels to Units.
func UnitFromPixels(px int) Unit {
	return Unit(fixed.I(px))
}

// UnitFromFloat converts a fractional pixel distance to Units, rounding to
// the nearest representable sub-pixel step.
func UnitFromFloat(f float64) Unit {
	return Unit(math.Round(f * 64))
}

// Pixels returns the distance in whole device pixels, rounded to nearest.
func (u Unit) Pixels() int {
	return fixed.Int26_6(u).Round()
}

// Floor returns the greatest whole pixel value less than or equal to u.
func (u Unit) Floor() int {
	return fixed.Int26_6(u).Floor()
}

// Float returns the distance in fractional device pixels.
func (u Unit) Float() float64 {
	return float64(u) / 64
}

// Mul multiplies two Units with 26.6 fixed-point rounding.
func (u Unit) Mul(v Unit) Unit {
	return Unit(fixed.Int26_6(u).Mul(fixed.Int26_6(v)))
}

func (u Unit) String() string {
	return fixed.Int26_6(u).String()
}
