// Package ir derives room acoustic parameters from simulated impulse
// responses.
//
// The metrics follow ISO 3382 and are computed from the Schroeder backward
// integral of the squared response, measured from the direct-sound arrival:
//
//   - RT60: reverberation time, from the T30 slope or T20 when T30 is not reached
//   - EDT: early decay time (0 to -10 dB)
//   - T20, T30: -5 to -25 dB and -5 to -35 dB slopes extrapolated to 60 dB
//   - C50, C80: clarity, early-to-late energy ratio in dB
//   - D50: definition, early energy fraction
//   - CenterTime: temporal energy centroid
//   - DRR: direct-to-reverberant energy ratio in dB
//
// # Usage
//
//	h, _ := imagesource.TimeResponse(receiver, source, rm, refl, points)
//	m, err := ir.NewAnalyzer(8000).Analyze(h)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", m.RT60, m.C80)
package ir
