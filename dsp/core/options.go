package core

// Defaults follow the Allen & Berkley convention of one foot per millisecond.
// The sample rate is that of their example room, which makes one sample
// period 3.81 cm. The high-pass time constant stays at 1e-4 s regardless,
// so a relative cutoff of 1% only equals the 100 Hz default at 10 kHz.
const (
	DefaultSampleRate   = 8000.0
	DefaultSpeedOfSound = 304.8
)

// AcousticConfig holds the propagation settings shared by every simulation
// call. There is no package-level state; each call receives its own copy.
type AcousticConfig struct {
	SampleRate   float64 // Hz
	SpeedOfSound float64 // m/s
}

// AcousticOption mutates an AcousticConfig.
type AcousticOption func(*AcousticConfig)

// DefaultAcousticConfig returns an 8 kHz, 304.8 m/s configuration.
func DefaultAcousticConfig() AcousticConfig {
	return AcousticConfig{
		SampleRate:   DefaultSampleRate,
		SpeedOfSound: DefaultSpeedOfSound,
	}
}

// WithSampleRate sets the sampling frequency in Hz.
func WithSampleRate(sampleRate float64) AcousticOption {
	return func(cfg *AcousticConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithSpeedOfSound sets the propagation speed in m/s.
func WithSpeedOfSound(speed float64) AcousticOption {
	return func(cfg *AcousticConfig) {
		if speed > 0 {
			cfg.SpeedOfSound = speed
		}
	}
}

// ApplyAcousticOptions applies zero or more options to the default config.
func ApplyAcousticOptions(opts ...AcousticOption) AcousticConfig {
	cfg := DefaultAcousticConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// SamplingPeriod returns 1/SampleRate in seconds.
func (c AcousticConfig) SamplingPeriod() float64 {
	return 1 / c.SampleRate
}

// SamplePeriodLength returns the distance sound travels in one sampling
// interval (c·T), in meters.
func (c AcousticConfig) SamplePeriodLength() float64 {
	return c.SpeedOfSound / c.SampleRate
}

// ToSamplePeriods converts a length in meters to sample periods.
func (c AcousticConfig) ToSamplePeriods(meters float64) float64 {
	return meters / c.SamplePeriodLength()
}

// ToMeters converts a length in sample periods to meters.
func (c AcousticConfig) ToMeters(samplePeriods float64) float64 {
	return samplePeriods * c.SamplePeriodLength()
}
