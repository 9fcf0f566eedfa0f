package room

import (
	"errors"
	"fmt"
	"math"
)

// MinRT60 is the floor applied by [SabineRT60] so that nearly anechoic rooms
// still produce a usable response length.
const MinRT60 = 0.128

// Errors returned by reverberation estimates.
var (
	ErrUnreachableRT60 = errors.New("room: reverberation time too short for room size")
	ErrNoAbsorption    = errors.New("room: walls absorb no energy, reverberation time is unbounded")
	ErrInvalidRT60     = errors.New("room: reverberation time must be non-negative")
)

// sabineConstant is 24·ln(10), the Sabine decay constant for 60 dB.
var sabineConstant = 24 * math.Ln10

// ReflectionFromRT60 returns uniform wall coefficients giving the requested
// reverberation time under Sabine's formula. A zero rt60 yields an anechoic
// room.
func ReflectionFromRT60(r Room, rt60, speedOfSound float64) (Reflection, error) {
	if err := r.Validate(); err != nil {
		return Reflection{}, err
	}
	if rt60 < 0 || math.IsNaN(rt60) {
		return Reflection{}, fmt.Errorf("%w: %v", ErrInvalidRT60, rt60)
	}
	if rt60 == 0 {
		return UniformReflection(0), nil
	}

	alpha := sabineConstant * r.Volume() / (speedOfSound * r.SurfaceArea() * rt60)
	if alpha > 1 {
		return Reflection{}, fmt.Errorf("%w: absorption %.3f > 1 for rt60 %.3f s", ErrUnreachableRT60, alpha, rt60)
	}

	return UniformReflection(math.Sqrt(1 - alpha)), nil
}

// SabineRT60 estimates the reverberation time in seconds of a room with the
// given wall coefficients. The result is never below [MinRT60].
func SabineRT60(r Room, refl Reflection, speedOfSound float64) (float64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	var absorption float64
	for axis := range refl {
		lo, hi := refl[axis][Low], refl[axis][High]
		absorption += ((1 - lo*lo) + (1 - hi*hi)) * r.WallArea(axis)
	}
	if absorption <= 0 {
		return 0, ErrNoAbsorption
	}

	rt60 := sabineConstant * r.Volume() / (speedOfSound * absorption)
	return math.Max(rt60, MinRT60), nil
}
