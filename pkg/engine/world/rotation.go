package world

import "math"

// Size is a footprint size in tiles
type Size struct {
	W int
	H int
}

// Area returns the number of tiles covered
func (s Size) Area() int {
	return s.W * s.H
}

// Rotation is a yaw in degrees. Values are expected to be multiples of 90;
// use QuantizeYaw to snap free-form input.
type Rotation int

// Rotation constants
const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// QuantizeYaw snaps an arbitrary yaw to the nearest quarter turn in [0, 360)
func QuantizeYaw(yaw float64) Rotation {
	quarters := int(math.Round(yaw/90.0)) % 4
	if quarters < 0 {
		quarters += 4
	}
	return Rotation(quarters * 90)
}

// Normalize folds the rotation into [0, 360)
func (r Rotation) Normalize() Rotation {
	n := r % 360
	if n < 0 {
		n += 360
	}
	return n
}

// IsQuarterTurn returns true for 90 and 270 degree rotations, which swap width and height
func (r Rotation) IsQuarterTurn() bool {
	n := r.Normalize()
	return n == Rotation90 || n == Rotation270
}

// RotatedSize returns the footprint size after rotation: width and height are
// swapped for 90 and 270 degrees, otherwise the base size is returned.
func RotatedSize(base Size, r Rotation) Size {
	if r.IsQuarterTurn() {
		return Size{W: base.H, H: base.W}
	}
	return base
}

// RotateOffset rotates a grid offset by a quarter-turn multiple.
// Rotations that are not multiples of 90 leave the offset unchanged.
func RotateOffset(offset Coord, r Rotation) Coord {
	switch r.Normalize() {
	case Rotation90:
		return Coord{X: -offset.Y, Y: offset.X}
	case Rotation180:
		return Coord{X: -offset.X, Y: -offset.Y}
	case Rotation270:
		return Coord{X: offset.Y, Y: -offset.X}
	default:
		return offset
	}
}
