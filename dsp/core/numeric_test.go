package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		a, b, eps float64
		want      bool
	}{
		{1, 1 + 1e-13, 1e-12, true},
		{1, 1.1, 1e-3, false},
		{0, 1e-13, 0, true},
		{1e6, 1e6 + 1e-4, 1e-9, true},
		{1e6, 1e6 + 1, 1e-9, false},
	}
	for _, tt := range tests {
		if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
			t.Errorf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
		}
	}
}

func TestDecibels(t *testing.T) {
	if got := LinearToDB(0.1); !NearlyEqual(got, -20, 1e-12) {
		t.Errorf("LinearToDB(0.1) = %v, want -20", got)
	}
	if got := LinearPowerToDB(0.001); !NearlyEqual(got, -30, 1e-12) {
		t.Errorf("LinearPowerToDB(0.001) = %v, want -30", got)
	}

	for name, fn := range map[string]func(float64) float64{
		"amplitude": LinearToDB,
		"power":     LinearPowerToDB,
	} {
		if !math.IsInf(fn(0), -1) {
			t.Errorf("%s: zero should map to -Inf", name)
		}
		if !math.IsNaN(fn(-1)) {
			t.Errorf("%s: negative should map to NaN", name)
		}
	}
}
