package highpass

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-rir/dsp/core"
)

const (
	// DefaultCutoff is the cutoff frequency in Hz.
	DefaultCutoff = 100.0
	// DefaultPeriod is the filter time constant T in seconds.
	DefaultPeriod = 1e-4
)

// ErrInvalidDesign is returned for non-positive or non-finite design parameters.
var ErrInvalidDesign = errors.New("highpass: cutoff and period must be positive and finite")

// Coefficients of the Allen high-pass recurrence.
type Coefficients struct {
	R      float64 // pole radius exp(−W·T)
	B1, B2 float64 // feedback
	A1, A2 float64 // feedforward (the leading coefficient is 1)
}

// Design returns coefficients for cutoffHz with time constant period (s).
func Design(cutoffHz, period float64) (Coefficients, error) {
	if !(cutoffHz > 0) || !(period > 0) || math.IsInf(cutoffHz, 0) || math.IsInf(period, 0) {
		return Coefficients{}, fmt.Errorf("%w: cutoff=%v period=%v", ErrInvalidDesign, cutoffHz, period)
	}

	wt := 2 * math.Pi * cutoffHz * period
	r := math.Exp(-wt)

	return Coefficients{
		R:  r,
		B1: 2 * r * math.Cos(wt),
		B2: -r * r,
		A1: -(1 + r),
		A2: r,
	}, nil
}

// Default returns the 100 Hz / 0.1 ms design.
func Default() Coefficients {
	c, _ := Design(DefaultCutoff, DefaultPeriod)
	return c
}

// Response evaluates H(e^jω) with ω = 2π·freqHz·period.
func (c Coefficients) Response(freqHz, period float64) complex128 {
	w := 2 * math.Pi * freqHz * period
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	den := 1 - complex(c.B1, 0)*z1 - complex(c.B2, 0)*z2
	return num / den
}

// MagnitudeDB returns 20·log10|H| at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, period float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freqHz, period)))
}

// Filter is a stateful Allen high-pass section.
type Filter struct {
	Coefficients

	y0, y1, y2 float64
}

// New returns a filter with zero state.
func New(c Coefficients) *Filter {
	return &Filter{Coefficients: c}
}

// Reset clears the recurrence state.
func (f *Filter) Reset() {
	f.y0, f.y1, f.y2 = 0, 0, 0
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	f.y2 = f.y1
	f.y1 = f.y0
	f.y0 = f.B1*f.y1 + f.B2*f.y2 + x

	return f.y0 + f.A1*f.y1 + f.A2*f.y2
}

// ProcessBlock filters buf in place, continuing from the current state.
func (f *Filter) ProcessBlock(buf []float64) {
	b1, b2 := f.B1, f.B2
	a1, a2 := f.A1, f.A2
	y0, y1, y2 := f.y0, f.y1, f.y2

	for i, x := range buf {
		y2 = y1
		y1 = y0
		y0 = b1*y1 + b2*y2 + x
		buf[i] = y0 + a1*y1 + a2*y2
	}

	f.y0, f.y1, f.y2 = y0, y1, y2
}

// Apply runs a fresh filter over buf in place and returns it.
func Apply(c Coefficients, buf []float64) []float64 {
	New(c).ProcessBlock(buf)
	return buf
}
