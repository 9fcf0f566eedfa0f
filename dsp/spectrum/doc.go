// Package spectrum turns simulated room responses into spectra.
//
// A full spectrum can be produced two ways: by transforming a sampled time
// response with an FFT ([Transform]), or by evaluating a single-frequency
// kernel once per frequency ([Sweep]). [Bin] evaluates one DFT bin of a
// sampled response at an arbitrary frequency, which lets the two be compared
// without an FFT grid.
package spectrum
