// Package room describes the rectangular enclosure simulated by the image
// method: its dimensions, the reflection coefficient of each of its six walls,
// and source/receiver positions.
//
// All lengths share one unit. Callers usually work in meters; the image-source
// kernel converts to sample periods (the distance sound travels in one
// sampling interval) before enumerating images.
//
// The package also carries the Sabine reverberation estimates used to derive
// wall reflection coefficients from a target RT60 and to pick a default
// response length, plus a receiver point-cloud sampler.
package room
