package room

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestVec3Distance(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{1, 1, 1}
	if got := a.Distance(b); math.Abs(got-math.Sqrt(3)) > 1e-15 {
		t.Fatalf("Distance = %v, want sqrt(3)", got)
	}
	if got := (Vec3{3, 4, 0}).Norm(); got != 5 {
		t.Fatalf("Norm = %v, want 5", got)
	}
}

func TestRoomValidate(t *testing.T) {
	tests := []struct {
		name    string
		room    Room
		wantErr bool
	}{
		{name: "valid", room: New(5, 4, 3)},
		{name: "zero", room: New(5, 0, 3), wantErr: true},
		{name: "negative", room: New(-1, 4, 3), wantErr: true},
		{name: "nan", room: New(5, 4, math.NaN()), wantErr: true},
		{name: "inf", room: New(math.Inf(1), 4, 3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.room.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Fatalf("Validate() = %v, want ErrInvalidDimensions", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v", err)
			}
		})
	}
}

func TestRoomMeasures(t *testing.T) {
	r := New(2, 3, 4)
	if r.Volume() != 24 {
		t.Fatalf("Volume = %v, want 24", r.Volume())
	}
	if r.SurfaceArea() != 52 {
		t.Fatalf("SurfaceArea = %v, want 52", r.SurfaceArea())
	}
	if r.WallArea(0) != 12 || r.WallArea(1) != 8 || r.WallArea(2) != 6 {
		t.Fatalf("WallArea = %v %v %v", r.WallArea(0), r.WallArea(1), r.WallArea(2))
	}
	if !r.Contains(Vec3{1, 1, 1}) || r.Contains(Vec3{1, 4, 1}) {
		t.Fatal("Contains mismatch")
	}
}

func TestReflectionFromSlice(t *testing.T) {
	refl, err := ReflectionFromSlice([]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})
	if err != nil {
		t.Fatal(err)
	}
	if refl[0][Low] != 0.1 || refl[0][High] != 0.2 || refl[2][High] != 0.6 {
		t.Fatalf("unexpected layout %v", refl)
	}
	if refl.Flat() != [6]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6} {
		t.Fatalf("Flat = %v", refl.Flat())
	}

	if _, err := ReflectionFromSlice([]float64{1, 2}); err == nil {
		t.Fatal("expected error for short slice")
	}
}

func TestReflectionValidate(t *testing.T) {
	if err := UniformReflection(0.9).Validate(); err != nil {
		t.Fatal(err)
	}
	bad := UniformReflection(0.9)
	bad[1][High] = 1.2
	if err := bad.Validate(); !errors.Is(err, ErrInvalidBeta) {
		t.Fatalf("Validate() = %v, want ErrInvalidBeta", err)
	}
}

func TestPlanar(t *testing.T) {
	refl := UniformReflection(0.7).Planar()
	if refl[2] != [2]float64{0, 0} || refl[0] != [2]float64{0.7, 0.7} {
		t.Fatalf("Planar = %v", refl)
	}
}

func TestReflectionFromRT60RoundTrip(t *testing.T) {
	r := New(5, 4, 6)
	const c = 343.0

	for _, rt60 := range []float64{0.3, 0.6, 1.2} {
		refl, err := ReflectionFromRT60(r, rt60, c)
		if err != nil {
			t.Fatalf("rt60 %v: %v", rt60, err)
		}
		if err := refl.Validate(); err != nil {
			t.Fatal(err)
		}

		got, err := SabineRT60(r, refl, c)
		if err != nil {
			t.Fatal(err)
		}
		// Uniform beta: absorption = (1-beta^2)·S = alpha·S, so the estimate inverts exactly.
		if math.Abs(got-rt60) > 1e-9 {
			t.Fatalf("SabineRT60 = %v, want %v", got, rt60)
		}
	}
}

func TestReflectionFromRT60Edges(t *testing.T) {
	r := New(5, 4, 6)

	refl, err := ReflectionFromRT60(r, 0, 343)
	if err != nil {
		t.Fatal(err)
	}
	if refl != UniformReflection(0) {
		t.Fatalf("rt60=0 gave %v", refl)
	}

	if _, err := ReflectionFromRT60(r, 0.01, 343); !errors.Is(err, ErrUnreachableRT60) {
		t.Fatalf("err = %v, want ErrUnreachableRT60", err)
	}
	if _, err := ReflectionFromRT60(r, -1, 343); !errors.Is(err, ErrInvalidRT60) {
		t.Fatalf("err = %v, want ErrInvalidRT60", err)
	}
}

func TestSabineRT60Floor(t *testing.T) {
	got, err := SabineRT60(New(1, 1, 1), UniformReflection(0), 343)
	if err != nil {
		t.Fatal(err)
	}
	if got != MinRT60 {
		t.Fatalf("SabineRT60 = %v, want floor %v", got, MinRT60)
	}

	if _, err := SabineRT60(New(5, 4, 6), UniformReflection(1), 343); !errors.Is(err, ErrNoAbsorption) {
		t.Fatalf("err = %v, want ErrNoAbsorption", err)
	}
}

func TestSampleSphere(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	center := Vec3{2, 2, 2}
	pts := SampleSphere(rng, 500, 1, center)

	if len(pts) != 500 {
		t.Fatalf("len = %d, want 500", len(pts))
	}
	for i, p := range pts {
		if d := p.Distance(center); d > 1+1e-12 {
			t.Fatalf("point %d at distance %v outside radius", i, d)
		}
	}

	if SampleSphere(rng, 0, 1, center) != nil {
		t.Fatal("expected nil for n=0")
	}
}

func TestSampleSphereDeterministic(t *testing.T) {
	a := SampleSphere(rand.New(rand.NewPCG(7, 7)), 10, 0.5, Vec3{})
	b := SampleSphere(rand.New(rand.NewPCG(7, 7)), 10, 0.5, Vec3{})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
