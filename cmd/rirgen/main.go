// Command rirgen simulates room impulse responses with the image-source
// method and prints them as CSV or as a table of room acoustic metrics.
//
// Usage:
//
//	rirgen [flags]
//
// Positions and dimensions are in meters unless -units samples is given.
// Without -points the response length follows the Sabine reverberation
// time of the room.
//
// Examples:
//
//	rirgen -room 5,4,3 -source 1,1,1.5 -receiver 3.5,2.5,1.2 -beta 0.9
//	rirgen -room 5,4,3 -rt60 0.6 -metrics
//	rirgen -mode freq -fmin 50 -fmax 1000 -fstep 50
//	rirgen -mode spectrum -fft 4096 -receivers 8 -radius 0.2
//	rirgen -units samples -room 80,120,100 -source 30,100,40 -receiver 50,10,60 -beta .9,.9,.9,.9,.7,.7
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-rir/dsp/imagesource"
	"github.com/cwbudde/algo-rir/dsp/room"
	"github.com/cwbudde/algo-rir/dsp/spectrum"
	"github.com/cwbudde/algo-rir/measure/ir"
)

type config struct {
	mode      string
	room      room.Room
	source    room.Vec3
	receiver  room.Vec3
	receivers int
	radius    float64
	seed      uint64
	refl      room.Reflection
	rt60      float64
	points    int
	order     int
	fs        float64
	c         float64
	units     imagesource.Units
	cutoff    float64
	relative  float64
	noHP      bool
	planar    bool
	metrics   bool
	fmin      float64
	fmax      float64
	fstep     float64
	fftSize   int
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	flags := flag.NewFlagSet("rirgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	mode := flags.String("mode", "time", "output: time, freq or spectrum")
	dims := flags.String("room", "5,4,3", "room dimensions x,y,z")
	source := flags.String("source", "1,1,1.5", "source position x,y,z")
	receiver := flags.String("receiver", "3.5,2.5,1.2", "receiver position x,y,z")
	receivers := flags.Int("receivers", 1, "number of receivers sampled on a sphere around -receiver")
	radius := flags.Float64("radius", 0.1, "radius of the receiver sphere")
	seed := flags.Uint64("seed", 1, "seed for receiver sampling")
	beta := flags.String("beta", "0.9", "wall reflection coefficients: one value or x1,x2,y1,y2,z1,z2")
	rt60 := flags.Float64("rt60", 0, "target reverberation time in seconds; overrides -beta")
	points := flags.Int("points", 0, "response length in samples (0: Sabine estimate)")
	order := flags.Int("order", imagesource.Unbounded, "maximum reflection order (-1: unbounded)")
	sampleRate := flags.Float64("fs", imagesource.DefaultSettings().Acoustics.SampleRate, "sample rate in Hz")
	speed := flags.Float64("c", imagesource.DefaultSettings().Acoustics.SpeedOfSound, "speed of sound in m/s")
	units := flags.String("units", "meters", "unit of positions and dimensions: meters or samples")
	cutoff := flags.Float64("hp-cutoff", imagesource.DefaultSettings().HighPassCutoff, "high-pass cutoff in Hz")
	relative := flags.Float64("hp-relative", 0, "high-pass cutoff as a fraction of -fs (overrides -hp-cutoff)")
	noHP := flags.Bool("no-hp", false, "disable the high-pass post-filter")
	planar := flags.Bool("2d", false, "two-dimensional simulation (no floor and ceiling reflections)")
	metrics := flags.Bool("metrics", false, "print acoustic metrics instead of samples (time mode)")
	fmin := flags.Float64("fmin", 100, "first frequency in Hz (freq mode)")
	fmax := flags.Float64("fmax", 1000, "last frequency in Hz (freq mode)")
	fstep := flags.Float64("fstep", 100, "frequency step in Hz (freq mode)")
	fftSize := flags.Int("fft", 0, "FFT size (spectrum mode, 0: next power of two)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rirgen [flags]\n\n")
		fmt.Fprintf(stderr, "Simulates room impulse responses with the image-source method.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  rirgen -room 5,4,3 -beta 0.9\n")
		fmt.Fprintf(stderr, "  rirgen -rt60 0.6 -metrics\n")
		fmt.Fprintf(stderr, "  rirgen -mode freq -fmin 50 -fmax 1000 -fstep 50\n")
	}

	if err := flags.Parse(args); err != nil {
		return config{}, err
	}

	cfg := config{
		mode:      *mode,
		receivers: *receivers,
		radius:    *radius,
		seed:      *seed,
		rt60:      *rt60,
		points:    *points,
		order:     *order,
		fs:        *sampleRate,
		c:         *speed,
		cutoff:    *cutoff,
		relative:  *relative,
		noHP:      *noHP,
		planar:    *planar,
		metrics:   *metrics,
		fmin:      *fmin,
		fmax:      *fmax,
		fstep:     *fstep,
		fftSize:   *fftSize,
	}

	switch cfg.mode {
	case "time", "freq", "spectrum":
	default:
		return config{}, fmt.Errorf("unknown mode %q", cfg.mode)
	}

	switch strings.ToLower(*units) {
	case "meters", "m":
		cfg.units = imagesource.UnitsMeters
	case "samples", "sample-periods":
		cfg.units = imagesource.UnitsSamplePeriods
	default:
		return config{}, fmt.Errorf("unknown units %q", *units)
	}

	d, err := parseVec3(*dims)
	if err != nil {
		return config{}, fmt.Errorf("-room: %w", err)
	}
	cfg.room = room.Room{Dimensions: d}

	if cfg.source, err = parseVec3(*source); err != nil {
		return config{}, fmt.Errorf("-source: %w", err)
	}
	if cfg.receiver, err = parseVec3(*receiver); err != nil {
		return config{}, fmt.Errorf("-receiver: %w", err)
	}
	if cfg.refl, err = parseBetas(*beta); err != nil {
		return config{}, fmt.Errorf("-beta: %w", err)
	}
	if cfg.receivers < 1 {
		return config{}, fmt.Errorf("-receivers must be at least 1")
	}

	return cfg, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseVec3(s string) (room.Vec3, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return room.Vec3{}, err
	}
	if len(vals) != 3 {
		return room.Vec3{}, fmt.Errorf("want 3 comma-separated values, got %d", len(vals))
	}
	return room.Vec3{vals[0], vals[1], vals[2]}, nil
}

func parseBetas(s string) (room.Reflection, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return room.Reflection{}, err
	}
	if len(vals) == 1 {
		return room.UniformReflection(vals[0]), nil
	}
	return room.ReflectionFromSlice(vals)
}

func (cfg config) options() []imagesource.Option {
	opts := []imagesource.Option{
		imagesource.WithSampleRate(cfg.fs),
		imagesource.WithSpeedOfSound(cfg.c),
		imagesource.WithUnits(cfg.units),
		imagesource.WithMaxOrder(cfg.order),
		imagesource.WithHighPassCutoff(cfg.cutoff),
	}
	if cfg.relative > 0 {
		opts = append(opts, imagesource.WithRelativeHighPass(cfg.relative))
	}
	if cfg.noHP {
		opts = append(opts, imagesource.WithoutHighPass())
	}
	if cfg.planar {
		opts = append(opts, imagesource.WithDimensions(2))
	}
	return opts
}

// reflection resolves the wall coefficients, deriving them from -rt60 when
// it is set.
func (cfg config) reflection() (room.Reflection, error) {
	if cfg.rt60 <= 0 {
		return cfg.refl, nil
	}

	rm := cfg.room
	if cfg.units == imagesource.UnitsSamplePeriods {
		rm = rm.Scale(cfg.c / cfg.fs)
	}
	return room.ReflectionFromRT60(rm, cfg.rt60, cfg.c)
}

func (cfg config) receiverPositions() []room.Vec3 {
	if cfg.receivers == 1 {
		return []room.Vec3{cfg.receiver}
	}
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed+1))
	return room.SampleSphere(rng, cfg.receivers, cfg.radius, cfg.receiver)
}

func run(cfg config, w io.Writer) error {
	refl, err := cfg.reflection()
	if err != nil {
		return err
	}
	if err := refl.Validate(); err != nil {
		return err
	}

	opts := cfg.options()
	points := cfg.points
	if points <= 0 {
		if points, err = imagesource.DefaultPoints(cfg.room, refl, opts...); err != nil {
			return err
		}
	}

	receivers := cfg.receiverPositions()

	if cfg.mode == "freq" {
		return writeFrequency(w, cfg, receivers, refl, points, opts)
	}

	hs, err := imagesource.TimeResponses(receivers, cfg.source, cfg.room, refl, points, opts...)
	if err != nil {
		return err
	}

	switch {
	case cfg.mode == "spectrum":
		return writeSpectrum(w, cfg, hs)
	case cfg.metrics:
		return writeMetrics(w, cfg, hs)
	}
	return writeTime(w, hs)
}

func writeTime(w io.Writer, hs [][]float64) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "sample")
	for i := range hs {
		fmt.Fprintf(bw, ",h%d", i)
	}
	fmt.Fprintln(bw)

	for n := range hs[0] {
		fmt.Fprintf(bw, "%d", n)
		for _, h := range hs {
			fmt.Fprintf(bw, ",%.9g", h[n])
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func writeFrequency(w io.Writer, cfg config, receivers []room.Vec3, refl room.Reflection, points int, opts []imagesource.Option) error {
	if !(cfg.fstep > 0) || cfg.fmax < cfg.fmin {
		return fmt.Errorf("invalid frequency range %g..%g step %g", cfg.fmin, cfg.fmax, cfg.fstep)
	}

	var freqs []float64
	for f := cfg.fmin; f <= cfg.fmax+cfg.fstep*1e-9; f += cfg.fstep {
		freqs = append(freqs, f)
	}

	rows := make([][]complex128, len(receivers))
	dbs := make([][]float64, len(receivers))
	for i, rcv := range receivers {
		resp, err := spectrum.Sweep(freqs, func(f float64) (complex128, error) {
			return imagesource.FrequencyResponse(rcv, cfg.source, cfg.room, refl, points, f, opts...)
		})
		if err != nil {
			return fmt.Errorf("receiver %d: %w", i, err)
		}
		rows[i] = resp
		dbs[i] = spectrum.MagnitudeDB(resp)
	}

	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "freq")
	for i := range receivers {
		fmt.Fprintf(bw, ",re%d,im%d,db%d", i, i, i)
	}
	fmt.Fprintln(bw)

	for k, f := range freqs {
		fmt.Fprintf(bw, "%g", f)
		for i, r := range rows {
			fmt.Fprintf(bw, ",%.9g,%.9g,%.3f", real(r[k]), imag(r[k]), dbs[i][k])
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func writeSpectrum(w io.Writer, cfg config, hs [][]float64) error {
	dbs := make([][]float64, len(hs))
	for i, h := range hs {
		bins, err := spectrum.Transform(h, cfg.fftSize)
		if err != nil {
			return err
		}
		dbs[i] = spectrum.MagnitudeDB(bins)
	}

	freqs := spectrum.BinFrequencies(2*(len(dbs[0])-1), cfg.fs)

	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "freq")
	for i := range hs {
		fmt.Fprintf(bw, ",db%d", i)
	}
	fmt.Fprintln(bw)

	for k, f := range freqs {
		fmt.Fprintf(bw, "%g", f)
		for _, db := range dbs {
			fmt.Fprintf(bw, ",%.3f", db[k])
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func writeMetrics(w io.Writer, cfg config, hs [][]float64) error {
	a := ir.NewAnalyzer(cfg.fs)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Receiver\tArrival\tRT60 [s]\tEDT [s]\tT20 [s]\tT30 [s]\tC50 [dB]\tC80 [dB]\tD50\tTs [ms]\tDRR [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--------\t-------\t--------\t-------\t-------\t-------\t--------\t--------\t---\t-------\t--------\n"); err != nil {
		return err
	}

	for i, h := range hs {
		m, err := a.Analyze(h)
		if err != nil {
			return fmt.Errorf("receiver %d: %w", i, err)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.2f\t%.2f\t%.3f\t%.1f\t%.2f\n",
			i,
			m.Arrival,
			m.RT60,
			m.EDT,
			m.T20,
			m.T30,
			m.C50,
			m.C80,
			m.D50,
			m.CenterTime*1e3,
			m.DRR,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
