package room

import "fmt"

// Wall side along an axis.
const (
	Low  = 0 // wall at coordinate 0
	High = 1 // wall at coordinate = dimension
)

// Reflection holds the pressure reflection coefficient (beta) of each wall,
// indexed [axis][Low|High]. Zero models total absorption, one a rigid wall.
type Reflection [3][2]float64

// UniformReflection returns a table with every wall set to beta.
func UniformReflection(beta float64) Reflection {
	return Reflection{{beta, beta}, {beta, beta}, {beta, beta}}
}

// ReflectionFromSlice builds a table from six values in the order
// x-low, x-high, y-low, y-high, z-low, z-high.
func ReflectionFromSlice(betas []float64) (Reflection, error) {
	var r Reflection
	if len(betas) != 6 {
		return r, fmt.Errorf("room: need 6 reflection coefficients, got %d", len(betas))
	}
	for i, b := range betas {
		r[i/2][i%2] = b
	}
	return r, nil
}

// Flat returns the six coefficients in x-low, x-high, y-low, y-high,
// z-low, z-high order.
func (r Reflection) Flat() [6]float64 {
	return [6]float64{r[0][0], r[0][1], r[1][0], r[1][1], r[2][0], r[2][1]}
}

// Validate reports whether every coefficient lies in [0, 1]. The image-source
// kernel never calls this; range checking is the caller's choice.
func (r Reflection) Validate() error {
	for axis := range r {
		for side, b := range r[axis] {
			if !(b >= 0 && b <= 1) {
				return fmt.Errorf("%w: axis %d side %d = %v", ErrInvalidBeta, axis, side, b)
			}
		}
	}
	return nil
}

// Planar returns a copy with the floor and ceiling fully absorptive, which
// reduces the simulation to the horizontal plane.
func (r Reflection) Planar() Reflection {
	r[2] = [2]float64{0, 0}
	return r
}
