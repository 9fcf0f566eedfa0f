package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rir/dsp/imagesource"
	"github.com/cwbudde/algo-rir/dsp/room"
	"github.com/cwbudde/algo-rir/internal/testutil"
)

const testRate = 8000.0

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		fs   float64
		h    []float64
		want error
	}{
		{"empty", testRate, nil, ErrEmptyIR},
		{"silent", testRate, make([]float64, 16), ErrSilentIR},
		{"zero rate", 0, testutil.Impulse(16, 0), ErrInvalidSampleRate},
		{"nan rate", math.NaN(), testutil.Impulse(16, 0), ErrInvalidSampleRate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAnalyzer(tc.fs).Analyze(tc.h)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestEnergyDecay(t *testing.T) {
	if _, err := EnergyDecay(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v, want ErrEmptyIR", err)
	}

	h := []float64{1, 1, 1, 1}
	curve, err := EnergyDecay(h)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 10 * math.Log10(0.75), 10 * math.Log10(0.5), 10 * math.Log10(0.25)}
	testutil.RequireSliceNearlyEqual(t, curve, want, 1e-12)

	silent, _ := EnergyDecay(make([]float64, 3))
	for i, v := range silent {
		if v != floorDB {
			t.Fatalf("silent[%d] = %v, want %v", i, v, floorDB)
		}
	}
}

func TestEnergyDecayMonotonic(t *testing.T) {
	h := testutil.DeterministicNoise(7, 1, 512)
	curve, _ := EnergyDecay(h)
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1]+1e-12 {
			t.Fatalf("curve rises at %d: %v > %v", i, curve[i], curve[i-1])
		}
	}
}

func TestReverbTimeExponential(t *testing.T) {
	for _, rt60 := range []float64{0.3, 0.8, 1.5} {
		h := testutil.ExponentialDecay(testRate, rt60, int(2*rt60*testRate))
		m, err := NewAnalyzer(testRate).Analyze(h)
		if err != nil {
			t.Fatal(err)
		}

		// The backward integral of a truncated decay bends down at the end,
		// so allow a few percent.
		for name, got := range map[string]float64{"RT60": m.RT60, "T20": m.T20, "EDT": m.EDT} {
			if math.Abs(got-rt60)/rt60 > 0.05 {
				t.Errorf("rt60=%v: %s = %v", rt60, name, got)
			}
		}
	}
}

func TestRT60(t *testing.T) {
	a := NewAnalyzer(testRate)

	// Truncated at half the decay time, which biases T30 low.
	h := testutil.ExponentialDecay(testRate, 1, int(0.5*testRate))
	rt, err := a.RT60(h)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rt-1) > 0.2 {
		t.Fatalf("RT60 = %v, want about 1 s", rt)
	}

	if _, err := a.RT60([]float64{1}); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("single sample: err = %v, want ErrNoDecay", err)
	}
}

func TestClarityDefinition(t *testing.T) {
	a := NewAnalyzer(1000)

	// 1 ms per sample: equal energy before and after 50 ms.
	h := make([]float64, 100)
	h[10] = 1
	h[70] = 1

	c50, err := a.Clarity(h, 50)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c50) > 1e-12 {
		t.Errorf("C50 = %v, want 0", c50)
	}

	d50, err := a.Definition(h, 50)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d50-0.5) > 1e-12 {
		t.Errorf("D50 = %v, want 0.5", d50)
	}

	c80, _ := a.Clarity(h, 80)
	if !math.IsInf(c80, 1) {
		t.Errorf("C80 = %v, want +Inf", c80)
	}

	if _, err := a.Clarity(h, 0); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("Clarity(0): err = %v", err)
	}
	if _, err := a.Definition(h, -1); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("Definition(-1): err = %v", err)
	}
}

func TestCenterTime(t *testing.T) {
	a := NewAnalyzer(100)
	h := make([]float64, 50)
	h[10] = 1
	h[30] = 1

	ts, err := a.CenterTime(h)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ts-0.2) > 1e-12 {
		t.Fatalf("CenterTime = %v, want 0.2", ts)
	}
}

func TestArrival(t *testing.T) {
	a := NewAnalyzer(testRate)

	h := make([]float64, 64)
	h[5] = 0.01
	h[12] = 0.5
	h[20] = -1

	got, err := a.Arrival(h)
	if err != nil {
		t.Fatal(err)
	}
	if got != 12 {
		t.Fatalf("Arrival = %d, want 12", got)
	}

	a.ArrivalThreshold = 0.005
	if got, _ := a.Arrival(h); got != 5 {
		t.Fatalf("Arrival with low threshold = %d, want 5", got)
	}

	if _, err := a.Arrival(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v, want ErrEmptyIR", err)
	}
}

func TestDirectToReverberant(t *testing.T) {
	a := NewAnalyzer(1000)

	h := make([]float64, 100)
	h[10] = 1
	h[50] = 0.1

	drr, err := a.DirectToReverberant(h, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(drr-20) > 1e-9 {
		t.Fatalf("DRR = %v, want 20 dB", drr)
	}

	if _, err := a.DirectToReverberant(h, 0); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("err = %v, want ErrInvalidTime", err)
	}

	direct := testutil.Impulse(32, 3)
	if drr, _ := a.DirectToReverberant(direct, 2); !math.IsInf(drr, 1) {
		t.Fatalf("anechoic DRR = %v, want +Inf", drr)
	}
}

func TestAnalyzeFromArrival(t *testing.T) {
	decay := testutil.ExponentialDecay(testRate, 0.5, 4000)
	h := append(make([]float64, 200), decay...)

	m, err := NewAnalyzer(testRate).Analyze(h)
	if err != nil {
		t.Fatal(err)
	}
	if m.Arrival != 200 {
		t.Fatalf("Arrival = %d, want 200", m.Arrival)
	}

	ref, _ := NewAnalyzer(testRate).Analyze(decay)
	if math.Abs(m.CenterTime-ref.CenterTime) > 1e-12 {
		t.Fatalf("CenterTime %v differs from undelayed %v", m.CenterTime, ref.CenterTime)
	}
	if math.Abs(m.C80-ref.C80) > 1e-9 {
		t.Fatalf("C80 %v differs from undelayed %v", m.C80, ref.C80)
	}
}

// Simulated shoebox responses decay at roughly the Sabine rate.
func TestSimulatedRoomReverbTime(t *testing.T) {
	rm := room.New(5, 4, 3)
	source := room.Vec3{1, 1, 1.5}
	receiver := room.Vec3{3.5, 2.5, 1.2}

	prev := 0.0
	for _, beta := range []float64{0.6, 0.9} {
		refl := room.UniformReflection(beta)
		h, err := imagesource.TimeResponse(receiver, source, rm, refl, 2400, imagesource.WithoutHighPass())
		if err != nil {
			t.Fatal(err)
		}

		m, err := NewAnalyzer(testRate).Analyze(h)
		if err != nil {
			t.Fatal(err)
		}

		sabine, err := room.SabineRT60(rm, refl, 304.8)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(m.RT60-sabine)/sabine > 0.25 {
			t.Errorf("beta=%v: RT60 = %.3f s, Sabine %.3f s", beta, m.RT60, sabine)
		}
		if m.RT60 <= prev {
			t.Errorf("beta=%v: RT60 %.3f not above %.3f", beta, m.RT60, prev)
		}
		if m.Arrival != 77 {
			t.Errorf("beta=%v: arrival = %d, want 77", beta, m.Arrival)
		}
		prev = m.RT60
	}
}
