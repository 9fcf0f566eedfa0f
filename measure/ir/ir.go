package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-rir/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrSilentIR          = errors.New("ir: impulse response has no energy")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// floorDB bounds the energy decay curve where the remaining energy is zero.
const floorDB = -200

// DefaultArrivalThreshold is the level, relative to the peak, at which the
// direct sound is taken to arrive (-20 dB).
const DefaultArrivalThreshold = 0.1

// DefaultDirectWindow is the half-width of the direct-sound window for DRR.
const DefaultDirectWindow = 2.5 // ms

// Metrics holds impulse response analysis results. Times are in seconds.
type Metrics struct {
	RT60       float64
	EDT        float64
	T20        float64
	T30        float64
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // ratio 0-1
	CenterTime float64
	DRR        float64 // dB
	Arrival    int     // sample index of the direct sound
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64

	// ArrivalThreshold is the fraction of the peak magnitude that marks the
	// direct sound. Zero selects DefaultArrivalThreshold.
	ArrivalThreshold float64
}

// NewAnalyzer creates an analyzer for responses sampled at sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(h []float64) error {
	if len(h) == 0 {
		return ErrEmptyIR
	}
	if !(a.SampleRate > 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes every metric from h, measured from the direct arrival.
func (a *Analyzer) Analyze(h []float64) (Metrics, error) {
	if err := a.check(h); err != nil {
		return Metrics{}, err
	}
	if vecmath.MaxAbs(h) == 0 {
		return Metrics{}, ErrSilentIR
	}

	arrival := a.arrival(h)
	tail := h[arrival:]
	curve := energyDecay(tail)

	m := Metrics{
		Arrival:    arrival,
		EDT:        a.reverbTime(curve, 0, -10),
		T20:        a.reverbTime(curve, -5, -25),
		T30:        a.reverbTime(curve, -5, -35),
		C50:        a.clarity(tail, 50),
		C80:        a.clarity(tail, 80),
		D50:        a.definition(tail, 50),
		CenterTime: a.centerTime(tail),
		DRR:        a.directToReverberant(h, arrival, DefaultDirectWindow),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}
	return m, nil
}

// EnergyDecay returns the Schroeder backward integral of h² in dB relative
// to the total energy.
//
//	S(t) = 10·log10( ∫ₜ^∞ h²(τ)dτ / ∫₀^∞ h²(τ)dτ )
func EnergyDecay(h []float64) ([]float64, error) {
	if len(h) == 0 {
		return nil, ErrEmptyIR
	}
	return energyDecay(h), nil
}

func energyDecay(h []float64) []float64 {
	out := make([]float64, len(h))

	var acc float64
	for i := len(h) - 1; i >= 0; i-- {
		acc += h[i] * h[i]
		out[i] = acc
	}

	total := out[0]
	if total <= 0 {
		for i := range out {
			out[i] = floorDB
		}
		return out
	}

	for i, e := range out {
		if e <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = core.LinearPowerToDB(e / total)
	}
	return out
}

// RT60 returns the reverberation time of h, from T30 or else T20.
func (a *Analyzer) RT60(h []float64) (float64, error) {
	if err := a.check(h); err != nil {
		return 0, err
	}

	curve := energyDecay(h[a.arrival(h):])
	if rt := a.reverbTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.reverbTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

// reverbTime fits a line to the decay curve between startDB and endDB and
// extrapolates it to -60 dB. It returns 0 when the range is not covered.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}
	return -60 / (slope * a.SampleRate)
}

// Clarity returns C(t) = 10·log10(early/late energy) with the boundary at
// timeMs after the first sample of h.
func (a *Analyzer) Clarity(h []float64, timeMs float64) (float64, error) {
	if err := a.check(h); err != nil {
		return 0, err
	}
	if !(timeMs > 0) {
		return 0, ErrInvalidTime
	}
	return a.clarity(h, timeMs), nil
}

func (a *Analyzer) clarity(h []float64, timeMs float64) float64 {
	early, late := a.split(h, timeMs)
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(early / late)
}

// Definition returns D(t), the fraction of energy arriving before timeMs.
func (a *Analyzer) Definition(h []float64, timeMs float64) (float64, error) {
	if err := a.check(h); err != nil {
		return 0, err
	}
	if !(timeMs > 0) {
		return 0, ErrInvalidTime
	}
	return a.definition(h, timeMs), nil
}

func (a *Analyzer) definition(h []float64, timeMs float64) float64 {
	early, late := a.split(h, timeMs)
	if early+late <= 0 {
		return 0
	}
	return early / (early + late)
}

// split returns the energy before and after the sample boundary at timeMs.
func (a *Analyzer) split(h []float64, timeMs float64) (early, late float64) {
	b := int(math.Round(timeMs * 1e-3 * a.SampleRate))
	b = max(0, min(b, len(h)))

	early = vecmath.DotProduct(h[:b], h[:b])
	late = vecmath.DotProduct(h[b:], h[b:])
	return early, late
}

// CenterTime returns the energy centroid of h in seconds.
func (a *Analyzer) CenterTime(h []float64) (float64, error) {
	if err := a.check(h); err != nil {
		return 0, err
	}
	return a.centerTime(h), nil
}

func (a *Analyzer) centerTime(h []float64) float64 {
	var num, den float64
	for i, v := range h {
		e := v * v
		num += float64(i) * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den / a.SampleRate
}

// Arrival returns the index of the first sample whose magnitude reaches
// ArrivalThreshold times the peak.
func (a *Analyzer) Arrival(h []float64) (int, error) {
	if len(h) == 0 {
		return 0, ErrEmptyIR
	}
	return a.arrival(h), nil
}

func (a *Analyzer) arrival(h []float64) int {
	ratio := a.ArrivalThreshold
	if ratio <= 0 {
		ratio = DefaultArrivalThreshold
	}

	threshold := vecmath.MaxAbs(h) * ratio
	for i, v := range h {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}

// DirectToReverberant returns the ratio in dB of the energy within
// ±windowMs of the direct arrival to the energy after that window.
func (a *Analyzer) DirectToReverberant(h []float64, windowMs float64) (float64, error) {
	if err := a.check(h); err != nil {
		return 0, err
	}
	if !(windowMs > 0) {
		return 0, ErrInvalidTime
	}
	return a.directToReverberant(h, a.arrival(h), windowMs), nil
}

func (a *Analyzer) directToReverberant(h []float64, arrival int, windowMs float64) float64 {
	w := int(math.Round(windowMs * 1e-3 * a.SampleRate))
	lo := max(0, arrival-w)
	hi := min(len(h), arrival+w+1)

	direct := vecmath.DotProduct(h[lo:hi], h[lo:hi])
	reverb := vecmath.DotProduct(h[hi:], h[hi:])
	switch {
	case reverb <= 0:
		return math.Inf(1)
	case direct <= 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(direct / reverb)
}
