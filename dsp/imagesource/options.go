package imagesource

import (
	"github.com/cwbudde/algo-rir/dsp/core"
	"github.com/cwbudde/algo-rir/dsp/filter/highpass"
)

// Units selects how room, source and receiver coordinates are interpreted.
type Units int

const (
	// UnitsMeters converts coordinates to sample periods using c/fs.
	UnitsMeters Units = iota
	// UnitsSamplePeriods takes coordinates as sample periods.
	UnitsSamplePeriods
)

// Unbounded disables the reflection-order cap.
const Unbounded = -1

// Settings is the resolved configuration of one kernel call.
type Settings struct {
	Acoustics core.AcousticConfig
	Units     Units

	// MaxOrder caps the reflection order of enumerated images.
	// [Unbounded] keeps every image within the points window.
	MaxOrder int

	// Dimensions is 3, or 2 to make floor and ceiling fully absorptive.
	Dimensions int

	HighPass         bool
	HighPassCutoff   float64 // Hz, used when HighPassRelative is zero
	HighPassRelative float64 // cutoff as a fraction of the sample rate
	HighPassPeriod   float64 // filter time constant in seconds

	// Orientation is the receiver azimuth and elevation in radians. The
	// omnidirectional kernels carry it for callers but do not use it.
	Orientation [2]float64
}

// Option mutates Settings.
type Option func(*Settings)

// DefaultSettings returns an omnidirectional 3-D setup in meters at 8 kHz
// with the 100 Hz post-filter enabled.
func DefaultSettings() Settings {
	return Settings{
		Acoustics:      core.DefaultAcousticConfig(),
		Units:          UnitsMeters,
		MaxOrder:       Unbounded,
		Dimensions:     3,
		HighPass:       true,
		HighPassCutoff: highpass.DefaultCutoff,
		HighPassPeriod: highpass.DefaultPeriod,
	}
}

// NewSettings applies opts to [DefaultSettings].
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithAcoustics applies sample rate and speed of sound options.
func WithAcoustics(opts ...core.AcousticOption) Option {
	return func(s *Settings) {
		for _, opt := range opts {
			if opt != nil {
				opt(&s.Acoustics)
			}
		}
	}
}

// WithSampleRate sets the sampling frequency in Hz.
func WithSampleRate(sampleRate float64) Option {
	return WithAcoustics(core.WithSampleRate(sampleRate))
}

// WithSpeedOfSound sets the speed of sound in m/s.
func WithSpeedOfSound(speed float64) Option {
	return WithAcoustics(core.WithSpeedOfSound(speed))
}

// WithUnits selects the coordinate unit.
func WithUnits(u Units) Option {
	return func(s *Settings) {
		if u == UnitsMeters || u == UnitsSamplePeriods {
			s.Units = u
		}
	}
}

// WithMaxOrder caps the reflection order. Negative values mean unbounded.
func WithMaxOrder(order int) Option {
	return func(s *Settings) {
		if order < 0 {
			order = Unbounded
		}
		s.MaxOrder = order
	}
}

// WithDimensions selects a 2-D (planar) or 3-D simulation.
func WithDimensions(n int) Option {
	return func(s *Settings) {
		if n == 2 || n == 3 {
			s.Dimensions = n
		}
	}
}

// WithHighPassCutoff sets an absolute post-filter cutoff in Hz.
func WithHighPassCutoff(cutoffHz float64) Option {
	return func(s *Settings) {
		if cutoffHz > 0 {
			s.HighPassCutoff = cutoffHz
			s.HighPassRelative = 0
		}
	}
}

// WithRelativeHighPass sets the post-filter cutoff to fraction·sampleRate.
func WithRelativeHighPass(fraction float64) Option {
	return func(s *Settings) {
		if fraction > 0 && fraction < 0.5 {
			s.HighPassRelative = fraction
		}
	}
}

// WithHighPassPeriod sets the post-filter time constant in seconds.
func WithHighPassPeriod(period float64) Option {
	return func(s *Settings) {
		if period > 0 {
			s.HighPassPeriod = period
		}
	}
}

// WithoutHighPass disables the post-filter.
func WithoutHighPass() Option {
	return func(s *Settings) {
		s.HighPass = false
	}
}

// WithOrientation records the receiver direction for directional extensions.
func WithOrientation(azimuth, elevation float64) Option {
	return func(s *Settings) {
		s.Orientation = [2]float64{azimuth, elevation}
	}
}

// Cutoff returns the effective post-filter cutoff in Hz.
func (s Settings) Cutoff() float64 {
	if s.HighPassRelative > 0 {
		return s.HighPassRelative * s.Acoustics.SampleRate
	}
	return s.HighPassCutoff
}

// toSamplePeriods converts a coordinate in the configured unit.
func (s Settings) toSamplePeriods(v float64) float64 {
	if s.Units == UnitsSamplePeriods {
		return v
	}
	return s.Acoustics.ToSamplePeriods(v)
}
