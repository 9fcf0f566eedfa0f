package imagesource

import (
	"math"

	"github.com/cwbudde/algo-rir/dsp/filter/highpass"
	"github.com/cwbudde/algo-rir/dsp/room"
	"github.com/cwbudde/algo-vecmath"
)

// TimeResponse returns the sampled impulse response at receiver, exactly
// points samples long.
//
// Each image lands in sample round(d), d being its distance in sample
// periods, and adds A/round(d) there. Images past the last sample are
// dropped. The sum is then high-pass filtered (unless disabled with
// [WithoutHighPass]) and scaled by 2·c·T to physical pressure units.
func TimeResponse(receiver, source room.Vec3, rm room.Room, refl room.Reflection, points int, opts ...Option) ([]float64, error) {
	out, err := TimeResponses([]room.Vec3{receiver}, source, rm, refl, points, opts...)
	if err != nil {
		return nil, unwrapSingle(err)
	}
	return out[0], nil
}

// TimeResponses evaluates [TimeResponse] independently for each receiver.
// All receivers are validated before any work starts; a failure is reported
// as a [*ReceiverError].
func TimeResponses(receivers []room.Vec3, source room.Vec3, rm room.Room, refl room.Reflection, points int, opts ...Option) ([][]float64, error) {
	st, err := prepare(receivers, source, rm, refl, points, opts)
	if err != nil {
		return nil, err
	}

	var coeffs highpass.Coefficients
	if st.settings.HighPass {
		coeffs, err = highpass.Design(st.settings.Cutoff(), st.settings.HighPassPeriod)
		if err != nil {
			return nil, err
		}
	}

	scale := 2 * st.settings.Acoustics.SpeedOfSound * st.settings.Acoustics.SamplingPeriod()

	out := make([][]float64, len(st.geometries))
	for i, g := range st.geometries {
		h := st.accumulateTime(g, points)
		if st.settings.HighPass {
			highpass.Apply(coeffs, h)
		}
		vecmath.ScaleBlockInPlace(h, scale)
		out[i] = h
	}
	return out, nil
}

// accumulateTime bins every image into a fresh unfiltered, unscaled sequence.
func (st setup) accumulateTime(g Geometry, points int) []float64 {
	h := make([]float64, points)
	for img := range g.Enumerate(points, st.settings.MaxOrder) {
		delay, ok := arrivalSample(img.Distance, points)
		if !ok {
			continue
		}
		h[delay] += img.Attenuation(st.refl) / float64(delay)
	}
	return h
}

// arrivalSample rounds a distance in sample periods to the sample index it
// arrives in. Arrivals at sample 0 have no spreading divisor and are
// rejected along with those past the window.
func arrivalSample(distance float64, points int) (int, bool) {
	delay := int(math.Floor(distance + 0.5))
	if delay+1 > points || delay < 1 {
		return 0, false
	}
	return delay, true
}
