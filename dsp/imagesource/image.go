package imagesource

import (
	"iter"
	"math"

	"github.com/cwbudde/algo-rir/dsp/room"
)

// Shift identifies a cell of the image lattice.
type Shift [3]int

// Permutation is one of the eight images inside a lattice cell.
type Permutation struct {
	// Sign multiplies the source coordinate per axis.
	Sign [3]float64
	// Wall is 1 on the axes where the image is mirrored across the low wall
	// of its cell, 0 otherwise.
	Wall [3]int
}

// Permutations lists the images of a cell in enumeration order. The sign
// triplets run (l, j, k) over {-1, +1}³ with k fastest. Entry 0 of cell
// (0, 0, 0) is the source itself.
var Permutations = [8]Permutation{
	{Sign: [3]float64{-1, -1, -1}, Wall: [3]int{0, 0, 0}},
	{Sign: [3]float64{-1, -1, +1}, Wall: [3]int{0, 0, 1}},
	{Sign: [3]float64{-1, +1, -1}, Wall: [3]int{0, 1, 0}},
	{Sign: [3]float64{-1, +1, +1}, Wall: [3]int{0, 1, 1}},
	{Sign: [3]float64{+1, -1, -1}, Wall: [3]int{1, 0, 0}},
	{Sign: [3]float64{+1, -1, +1}, Wall: [3]int{1, 0, 1}},
	{Sign: [3]float64{+1, +1, -1}, Wall: [3]int{1, 1, 0}},
	{Sign: [3]float64{+1, +1, +1}, Wall: [3]int{1, 1, 1}},
}

// DirectPath is the index in [Permutations] of the unreflected image.
const DirectPath = 0

// Distances returns the distance from receiver to each of the eight images
// of source in the given cell, in [Permutations] order. The image position
// is 2·shift∘dims − sign∘source.
func Distances(receiver, source, dims room.Vec3, shift Shift) [8]float64 {
	var cell room.Vec3
	for axis := range cell {
		cell[axis] = 2 * float64(shift[axis]) * dims[axis]
	}

	var out [8]float64
	for i, p := range Permutations {
		var sq float64
		for axis := range 3 {
			d := cell[axis] - p.Sign[axis]*source[axis] - receiver[axis]
			sq += d * d
		}
		out[i] = math.Sqrt(sq)
	}
	return out
}

// Bounds returns the per-axis lattice extent N = ceil(points / (2·dim)) that
// covers every image able to arrive within points sample periods.
func Bounds(points int, dims room.Vec3) [3]int {
	var n [3]int
	for axis, d := range dims {
		n[axis] = int(math.Ceil(float64(points) / (2 * d)))
	}
	return n
}

// Image is one enumerated image source.
type Image struct {
	Shift       Shift
	Permutation int     // index into Permutations
	Distance    float64 // to the receiver, in sample periods
}

// Order returns the number of wall reflections the image represents.
func (img Image) Order() int {
	return reflectionOrder(img.Shift, Permutations[img.Permutation].Wall)
}

// Attenuation returns the product of wall coefficients crossed by the image.
// It excludes spherical spreading.
func (img Image) Attenuation(refl room.Reflection) float64 {
	wall := Permutations[img.Permutation].Wall
	a := 1.0
	for axis := range 3 {
		n := img.Shift[axis]
		a *= math.Pow(refl[axis][room.Low], float64(abs(n-wall[axis])))
		a *= math.Pow(refl[axis][room.High], float64(abs(n)))
	}
	return a
}

func reflectionOrder(shift Shift, wall [3]int) int {
	order := 0
	for axis := range 3 {
		order += abs(2*shift[axis] - wall[axis])
	}
	return order
}

// Geometry is a receiver/source pair inside a room, all in sample periods.
type Geometry struct {
	Receiver   room.Vec3
	Source     room.Vec3
	Dimensions room.Vec3
}

// Cells yields every lattice cell within bounds in ascending nx, ny, nz order.
func Cells(bounds [3]int) iter.Seq[Shift] {
	return func(yield func(Shift) bool) {
		for nx := -bounds[0]; nx <= bounds[0]; nx++ {
			for ny := -bounds[1]; ny <= bounds[1]; ny++ {
				for nz := -bounds[2]; nz <= bounds[2]; nz++ {
					if !yield(Shift{nx, ny, nz}) {
						return
					}
				}
			}
		}
	}
}

// Images yields the images of cell whose reflection order is within maxOrder
// ([Unbounded] for no cap), in [Permutations] order.
func (g Geometry) Images(cell Shift, maxOrder int) iter.Seq[Image] {
	return func(yield func(Image) bool) {
		dist := Distances(g.Receiver, g.Source, g.Dimensions, cell)
		for i, p := range Permutations {
			if maxOrder >= 0 && reflectionOrder(cell, p.Wall) > maxOrder {
				continue
			}
			if !yield(Image{Shift: cell, Permutation: i, Distance: dist[i]}) {
				return
			}
		}
	}
}

// Enumerate yields every image of every cell within the lattice bounds for
// points, capped by maxOrder. Images beyond the points window are still
// yielded; accumulators decide what falls outside their window.
func (g Geometry) Enumerate(points, maxOrder int) iter.Seq[Image] {
	return func(yield func(Image) bool) {
		for cell := range Cells(Bounds(points, g.Dimensions)) {
			for img := range g.Images(cell, maxOrder) {
				if !yield(img) {
					return
				}
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
