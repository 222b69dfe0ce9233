// dsp_mixer.go - per-voice to master stereo mixdown, spec.md §4.5/§4.6
package main

// mixerGain is the static implementation-defined amplification spec.md
// §4.5 calls out ("Apply a static gain of 16... to counter headroom").
const mixerGain = 16

// Mixer sums eight voice contributions into one clamped stereo frame.
// It carries no state of its own; FadeRamp below is the only optional,
// off-by-default extension layered on top for the track-length/fade-out
// feature (see SPEC_FULL.md §4).
type Mixer struct {
	FadeRamp *FadeRamp
}

// Mix combines per-voice left/right contributions with the master volume,
// applies mute, and clamps to i16 range.
func (m *Mixer) Mix(voiceL, voiceR [8]int32, mvoll, mvolr int32, mute bool) (int16, int16) {
	var sumL, sumR int32
	for i := 0; i < 8; i++ {
		sumL += voiceL[i]
		sumR += voiceR[i]
	}

	l := (sumL * mvoll) >> 7
	r := (sumR * mvolr) >> 7

	l *= mixerGain
	r *= mixerGain

	if mute {
		l, r = 0, 0
	}

	if m.FadeRamp != nil {
		g := m.FadeRamp.Gain()
		l = (l * g) >> 8
		r = (r * g) >> 8
	}

	return int16(clamp16(l)), int16(clamp16(r))
}

// FadeRamp implements the optional track-length/fade-out supplement from
// original_source/ (spcplayer.c): once sampleCounter passes fadeStart, the
// mix gain ramps linearly from 256 (unity, Q8) to 0 over fadeLenSamples.
// A nil *FadeRamp (the default) leaves Mix's output untouched.
type FadeRamp struct {
	sampleCounter *uint64
	fadeStart     uint64
	fadeLenSamples uint64
}

// NewFadeRamp schedules a fade beginning once trackLenSamples of audio have
// been produced, completing trackLenSamples+fadeLenSamples in.
func NewFadeRamp(sampleCounter *uint64, trackLenSamples, fadeLenSamples uint64) *FadeRamp {
	return &FadeRamp{
		sampleCounter:  sampleCounter,
		fadeStart:      trackLenSamples,
		fadeLenSamples: fadeLenSamples,
	}
}

// Gain returns the current Q8 gain multiplier, 256 before the fade starts,
// ramping down to 0 at fadeStart+fadeLenSamples and staying there after.
func (f *FadeRamp) Gain() int32 {
	n := *f.sampleCounter
	if n <= f.fadeStart || f.fadeLenSamples == 0 {
		if n <= f.fadeStart {
			return 256
		}
		return 0
	}
	elapsed := n - f.fadeStart
	if elapsed >= f.fadeLenSamples {
		return 0
	}
	return 256 - int32(elapsed*256/f.fadeLenSamples)
}
