package room

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by room validation.
var (
	ErrInvalidDimensions = errors.New("room: dimensions must be positive and finite")
	ErrInvalidBeta       = errors.New("room: reflection coefficient outside [0, 1]")
)

// Vec3 is a point or extent in three dimensions.
type Vec3 [3]float64

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v·s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Distance returns ‖v − o‖₂.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Norm()
}

// Room is a shoebox enclosure with one corner at the origin.
type Room struct {
	Dimensions Vec3 // length, width, height
}

// New returns a room with the given length, width and height.
func New(length, width, height float64) Room {
	return Room{Dimensions: Vec3{length, width, height}}
}

// Validate reports whether all dimensions are positive and finite.
func (r Room) Validate() error {
	for axis, d := range r.Dimensions {
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: axis %d = %v", ErrInvalidDimensions, axis, d)
		}
	}
	return nil
}

// Volume returns the enclosed volume.
func (r Room) Volume() float64 {
	d := r.Dimensions
	return d[0] * d[1] * d[2]
}

// SurfaceArea returns the total wall area.
func (r Room) SurfaceArea() float64 {
	d := r.Dimensions
	return 2 * (d[0]*d[1] + d[0]*d[2] + d[1]*d[2])
}

// WallArea returns the area of one of the two walls perpendicular to axis.
func (r Room) WallArea(axis int) float64 {
	d := r.Dimensions
	switch axis {
	case 0:
		return d[1] * d[2]
	case 1:
		return d[0] * d[2]
	default:
		return d[0] * d[1]
	}
}

// Contains reports whether p lies inside the room or on its boundary.
func (r Room) Contains(p Vec3) bool {
	for axis, d := range r.Dimensions {
		if p[axis] < 0 || p[axis] > d {
			return false
		}
	}
	return true
}

// Scale returns the room with every dimension multiplied by s.
func (r Room) Scale(s float64) Room {
	return Room{Dimensions: r.Dimensions.Scale(s)}
}
