// Package highpass implements the two-pole, two-zero recursive high-pass
// filter Allen and Berkley apply to image-method impulse responses.
//
// Summing discrete image contributions leaves spurious energy below roughly
// 100 Hz. The filter places a double zero at DC and a pole pair just inside
// the unit circle at the cutoff:
//
//	H(z) = (1 + A1 z⁻¹ + A2 z⁻²) / (1 − B1 z⁻¹ − B2 z⁻²)
//
// with R = exp(−W·T), B1 = 2R·cos(W·T), B2 = −R², A1 = −(1+R), A2 = R.
//
// Processing is a strictly sequential recurrence over three state values and
// must visit samples in ascending order.
package highpass
