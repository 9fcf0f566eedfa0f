package imagesource

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-rir/dsp/room"
)

// FrequencyResponse returns the complex pressure at receiver for a unit
// source at the analysis frequency (Hz).
//
// Each image within the points window contributes
//
//	A / (4π·d) · exp(−i·2π·frequency·d/c)
//
// where A is its wall attenuation and d its distance in meters.
func FrequencyResponse(receiver, source room.Vec3, rm room.Room, refl room.Reflection, points int, frequency float64, opts ...Option) (complex128, error) {
	out, err := FrequencyResponses([]room.Vec3{receiver}, source, rm, refl, points, frequency, opts...)
	if err != nil {
		return 0, unwrapSingle(err)
	}
	return out[0], nil
}

// FrequencyResponses evaluates [FrequencyResponse] independently for each
// receiver. All receivers are validated before any work starts; a failure is
// reported as a [*ReceiverError].
func FrequencyResponses(receivers []room.Vec3, source room.Vec3, rm room.Room, refl room.Reflection, points int, frequency float64, opts ...Option) ([]complex128, error) {
	st, err := prepare(receivers, source, rm, refl, points, opts)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(st.geometries))
	for i, g := range st.geometries {
		out[i] = st.frequencyResponse(g, points, frequency)
	}
	return out, nil
}

func (st setup) frequencyResponse(g Geometry, points int, frequency float64) complex128 {
	acc := newFrequencyAccumulator(st.settings, st.refl, points, frequency)
	for img := range g.Enumerate(points, st.settings.MaxOrder) {
		acc.add(img)
	}
	return acc.pressure
}

type frequencyAccumulator struct {
	refl     room.Reflection
	window   float64
	cT       float64 // meters per sample period
	c        float64
	omega    float64
	pressure complex128
}

func newFrequencyAccumulator(s Settings, refl room.Reflection, points int, frequency float64) *frequencyAccumulator {
	return &frequencyAccumulator{
		refl:   refl,
		window: float64(points),
		cT:     s.Acoustics.SamplePeriodLength(),
		c:      s.Acoustics.SpeedOfSound,
		omega:  2 * math.Pi * frequency,
	}
}

func (f *frequencyAccumulator) add(img Image) {
	f.pressure += f.contribution(img)
}

func (f *frequencyAccumulator) contribution(img Image) complex128 {
	// Images closer than MinDistance land in sample 0 of the time kernel,
	// which drops them too.
	if img.Distance > f.window || img.Distance < MinDistance {
		return 0
	}

	d := img.Distance * f.cT
	tau := d / f.c
	gain := img.Attenuation(f.refl) / (4 * math.Pi * d)

	return complex(gain, 0) * cmplx.Exp(complex(0, -f.omega*tau))
}
