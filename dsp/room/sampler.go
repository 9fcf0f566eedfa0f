package room

import (
	"math"
	"math/rand/v2"
)

// SampleSphere draws n receiver positions around center within radius.
//
// Polar angle, azimuth and radius are each drawn uniformly. The cloud is
// not volume-uniform: points cluster towards the center.
func SampleSphere(rng *rand.Rand, n int, radius float64, center Vec3) []Vec3 {
	if n <= 0 {
		return nil
	}

	out := make([]Vec3, n)
	for i := range out {
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi
		r := rng.Float64() * radius

		sinTheta, cosTheta := math.Sincos(theta)
		sinPhi, cosPhi := math.Sincos(phi)
		out[i] = Vec3{
			r*sinTheta*cosPhi + center[0],
			r*sinTheta*sinPhi + center[1],
			r*cosTheta + center[2],
		}
	}
	return out
}
