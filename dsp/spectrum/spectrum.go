package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-rir/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectrum helpers.
var (
	ErrEmptyInput        = errors.New("spectrum: input is empty")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func splitParts(in []complex128) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	n := len(in)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}
	buf.data = buf.data[:2*n]
	re, im = buf.data[:n], buf.data[n:]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Transform returns the FFT of a real response zero-padded to the next power
// of two at least fftSize long (fftSize <= 0 uses len(h)). Only the bins from
// DC to Nyquist are returned.
func Transform(h []float64, fftSize int) ([]complex128, error) {
	if len(h) == 0 {
		return nil, ErrEmptyInput
	}
	if fftSize < len(h) {
		fftSize = len(h)
	}
	fftSize = nextPowerOf2(fftSize)

	in := make([]complex128, fftSize)
	for i, v := range h {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT: %w", err)
	}
	return out[:fftSize/2+1], nil
}

// BinFrequencies returns the center frequency of each of the bins returned
// by [Transform] for an FFT of fftSize points.
func BinFrequencies(fftSize int, sampleRate float64) []float64 {
	n := fftSize/2 + 1
	out := make([]float64, n)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(fftSize)
	}
	return out
}

// Bin evaluates the DTFT of h at freqHz, X = Σ h[n]·exp(−i·2π·f·n/fs), with
// the Goertzel recurrence.
func Bin(h []float64, freqHz, sampleRate float64) (complex128, error) {
	if len(h) == 0 {
		return 0, ErrEmptyInput
	}
	if !(sampleRate > 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	w := 2 * math.Pi * freqHz / sampleRate
	coeff := 2 * math.Cos(w)

	var s1, s2 float64
	for _, x := range h {
		s0 := x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	// y[N-1] = s1 − e^{−iω}·s2 is the sum phase-referenced to sample N−1.
	y := complex(s1, 0) - cmplx.Exp(complex(0, -w))*complex(s2, 0)
	return y * cmplx.Exp(complex(0, -w*float64(len(h)-1))), nil
}

// Sweep evaluates a single-frequency response function at every frequency
// in freqs and collects the results in order. The first error aborts the
// sweep.
func Sweep(freqs []float64, fn func(freqHz float64) (complex128, error)) ([]complex128, error) {
	out := make([]complex128, len(freqs))
	for i, f := range freqs {
		v, err := fn(f)
		if err != nil {
			return nil, fmt.Errorf("spectrum: %.3f Hz: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, buf := splitParts(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// Power returns |X[k]|² for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, buf := splitParts(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)
	return out
}

// MagnitudeDB returns 20·log10|X[k]| with a floor at -300 dB.
func MagnitudeDB(in []complex128) []float64 {
	mag := Magnitude(in)
	for i, m := range mag {
		if m <= 1e-15 {
			mag[i] = -300
			continue
		}
		mag[i] = core.LinearToDB(m)
	}
	return mag
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a copy of phase with ±2π discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		switch d := phase[i] - phase[i-1]; {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
