package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine generates a sine wave at freqHz.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ExponentialDecay generates exp(-6.9078·t/rt60), which falls by 60 dB at
// t = rt60.
func ExponentialDecay(sampleRate, rt60 float64, length int) []float64 {
	out := make([]float64, length)
	rate := 3 * math.Ln10 / rt60
	for i := range out {
		out[i] = math.Exp(-rate * float64(i) / sampleRate)
	}
	return out
}
