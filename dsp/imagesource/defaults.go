package imagesource

import (
	"fmt"

	"github.com/cwbudde/algo-rir/dsp/room"
)

// DefaultPoints returns a response length covering the Sabine reverberation
// time of the room: int(RT60·sampleRate), with RT60 floored at
// [room.MinRT60].
func DefaultPoints(rm room.Room, refl room.Reflection, opts ...Option) (int, error) {
	s := NewSettings(opts...)
	if s.Dimensions == 2 {
		refl = refl.Planar()
	}

	meters := rm
	if s.Units == UnitsSamplePeriods {
		meters = rm.Scale(s.Acoustics.SamplePeriodLength())
	}

	rt60, err := room.SabineRT60(meters, refl, s.Acoustics.SpeedOfSound)
	if err != nil {
		return 0, fmt.Errorf("imagesource: default length: %w", err)
	}
	return int(rt60 * s.Acoustics.SampleRate), nil
}
