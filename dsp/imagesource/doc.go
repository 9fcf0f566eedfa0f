// Package imagesource computes room impulse responses with the image method
// of Allen and Berkley (1979).
//
// A shoebox room is unfolded into an infinite lattice of mirrored cells. Each
// cell (nx, ny, nz) holds eight images of the source, one per sign
// permutation of its coordinates. Every image contributes a delayed,
// attenuated copy of the source signal at the receiver; summing those
// contributions gives the response of the room.
//
// Two accumulators share one enumerator:
//
//   - [FrequencyResponse] returns the complex pressure at a single analysis
//     frequency. Call it once per frequency to assemble a spectrum.
//   - [TimeResponse] returns a sampled pressure sequence of a fixed number of
//     points, high-pass filtered to remove the low-frequency artifact of the
//     discrete summation.
//
// Geometry is given in meters by default and converted internally to sample
// periods, the distance sound travels in one sampling interval. Use
// [WithUnits] to pass sample periods directly.
//
// # Usage
//
//	rm := room.New(5, 4, 3)
//	refl := room.UniformReflection(0.9)
//	h, err := imagesource.TimeResponse(receiver, source, rm, refl, 2048,
//		imagesource.WithAcoustics(core.WithSampleRate(16000)))
//
// All calls are synchronous and keep no state between invocations. Batch
// variants evaluate each receiver independently.
package imagesource
