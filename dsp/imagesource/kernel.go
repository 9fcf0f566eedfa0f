package imagesource

import (
	"fmt"

	"github.com/cwbudde/algo-rir/dsp/room"
)

// setup is the validated, unit-converted input of one kernel call.
type setup struct {
	settings   Settings
	refl       room.Reflection
	geometries []Geometry
}

// prepare validates every input before any accumulation starts, so a
// rejected call never produces partial output.
func prepare(receivers []room.Vec3, source room.Vec3, rm room.Room, refl room.Reflection, points int, opts []Option) (setup, error) {
	s := NewSettings(opts...)

	if points <= 0 {
		return setup{}, fmt.Errorf("%w: %d", ErrInvalidPoints, points)
	}
	if err := rm.Validate(); err != nil {
		return setup{}, fmt.Errorf("imagesource: %w", err)
	}
	if len(receivers) == 0 {
		return setup{}, ErrNoReceivers
	}

	if s.Dimensions == 2 {
		refl = refl.Planar()
	}

	var dims, src room.Vec3
	for axis := range 3 {
		dims[axis] = s.toSamplePeriods(rm.Dimensions[axis])
		src[axis] = s.toSamplePeriods(source[axis])
	}
	inner := room.Room{Dimensions: dims}
	if !inner.Contains(src) {
		return setup{}, fmt.Errorf("%w: source %v", ErrOutsideRoom, source)
	}

	geoms := make([]Geometry, len(receivers))
	for i, r := range receivers {
		var rcv room.Vec3
		for axis := range 3 {
			rcv[axis] = s.toSamplePeriods(r[axis])
		}
		if !inner.Contains(rcv) {
			return setup{}, &ReceiverError{
				Index: i,
				Err:   fmt.Errorf("%w: receiver %v", ErrOutsideRoom, r),
			}
		}
		if d := rcv.Distance(src); d < MinDistance {
			return setup{}, &ReceiverError{
				Index: i,
				Err:   fmt.Errorf("%w: %.3g sample periods", ErrSourceTooClose, d),
			}
		}
		geoms[i] = Geometry{Receiver: rcv, Source: src, Dimensions: dims}
	}

	return setup{settings: s, refl: refl, geometries: geoms}, nil
}

// unwrapSingle strips the batch wrapper for single-receiver calls.
func unwrapSingle(err error) error {
	if re, ok := err.(*ReceiverError); ok {
		return re.Err
	}
	return err
}
