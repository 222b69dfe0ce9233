// dsp_voice.go - one SPC700 DSP voice: BRR block decode, pitch counter,
// Gaussian interpolation, and the sample-address/loop bookkeeping that
// ties a voice to its source directory entry
package main

// envPhase enumerates the four ADSR/GAIN lifecycle phases a voice moves
// through between key-on and going silent.
type envPhase int

const (
	phaseOff envPhase = iota
	phaseAttack
	phaseDecay
	phaseSustain
	phaseRelease
)

// brrBlock is the nine-byte source block decoded into sixteen signed
// samples plus the header fields that govern looping.
type brrBlock struct {
	samples  [16]int32
	loopFlag bool
	endFlag  bool
}

// voice holds everything spec.md §3 calls "per-voice state". It owns
// exactly one decoded BRR block at a time - replaced wholesale at a block
// boundary, never aliased - per the design note in spec.md §9.
type voice struct {
	index int

	active        bool
	curSampleAddr uint16
	loopAddr      uint16
	block         brrBlock
	blockPos      int // which of the 16 decoded samples is "current"

	counter uint32 // pitch accumulator; hardware semantics are 16-bit but held wider to detect the 0x10000 carry

	prevInterp [3]int32 // oldest..newest raw decoded samples, for Gaussian taps
	prevFilter [2]int32 // BRR IIR filter history, oldest then newest

	env   int32
	phase envPhase

	samplesSinceEnvUpdate int32

	// cached ADSR/GAIN decode, refreshed whenever the corresponding
	// register byte is written.
	useADSR    bool
	ar, dr, sr uint8
	sl         uint8
	gainIsDirect bool
	gainMode   uint8
	gainRate   uint8
	gainDirect int32

	envx uint8
	outx uint8
}

// decodeBRRNibble decodes one nibble into a signed value scaled by range,
// matching spec.md's `(raw << range) >> 1` rule with the documented
// range>12 special case.
func decodeBRRNibble(nibble int8, rng uint8) int32 {
	if rng > 12 {
		// Only the sign bit survives; hardware quirk reproduced verbatim.
		sign := int32(nibble) >> 3
		return (sign << 12) >> 1
	}
	return (int32(nibble) << rng) >> 1
}

// applyBRRFilter runs the 2-tap IIR selected by the block header's filter
// field, per the table in spec.md §4.5.
func (v *voice) applyBRRFilter(filter uint8, s int32) int32 {
	p0, p1 := v.prevFilter[0], v.prevFilter[1]
	var out int32
	switch filter {
	case 0:
		out = s
	case 1:
		out = s + p1 + (-p1)/16
	case 2:
		out = s + p1*2 + (-p1*3)/32 - p0 + p0/16
	case 3:
		out = s + p1*2 + (-p1*13)/64 - p0 + (p0*3)/16
	}
	out = clamp16(out)
	out = clamp15(out)
	v.prevFilter[0] = p1
	v.prevFilter[1] = out
	return out
}

func clamp16(v int32) int32 {
	if v > 0x7FFF {
		return 0x7FFF
	}
	if v < -0x8000 {
		return -0x8000
	}
	return v
}

func clamp15(v int32) int32 {
	if v > 0x3FFF {
		return 0x3FFF
	}
	if v < -0x4000 {
		return -0x4000
	}
	return v
}

// decodeBlock reads nine bytes starting at addr and produces a fully
// decoded brrBlock, running every nibble through the IIR filter in order.
func (v *voice) decodeBlock(bus *Bus, addr uint16) brrBlock {
	header := bus.Read(addr)
	rng := header >> 4
	filter := (header >> 2) & 0x3
	loop := header&0x2 != 0
	end := header&0x1 != 0

	var blk brrBlock
	blk.loopFlag = loop
	blk.endFlag = end

	out := 0
	for i := 0; i < 8; i++ {
		b := bus.Read(addr + 1 + uint16(i))
		high := int8(b) >> 4
		low := int8(b<<4) >> 4

		s := decodeBRRNibble(high, rng)
		blk.samples[out] = v.applyBRRFilter(filter, s)
		out++

		s = decodeBRRNibble(low, rng)
		blk.samples[out] = v.applyBRRFilter(filter, s)
		out++
	}
	return blk
}

// sourceDirEntry resolves (DIR, SRCN) to the start/loop pointer pair for
// this voice, per spec.md §4.5's sample-address lookup.
func sourceDirEntry(bus *Bus, dir uint8, srcn uint8) (start, loop uint16) {
	tableBase := uint16(dir) * 0x100
	entry := tableBase + uint16(srcn)*4
	start = bus.ReadWord(entry)
	loop = bus.ReadWord(entry + 2)
	return
}

// keyOn starts this voice from its source directory's start pointer.
func (v *voice) keyOn(bus *Bus, dir, srcn uint8, endx *uint8) {
	start, loop := sourceDirEntry(bus, dir, srcn)
	v.curSampleAddr = start
	v.loopAddr = loop
	v.prevFilter = [2]int32{}
	v.prevInterp = [3]int32{}
	v.block = v.decodeBlock(bus, v.curSampleAddr)
	v.blockPos = 0
	v.counter = 0
	v.active = true
	v.phase = phaseAttack
	v.env = 0
	v.samplesSinceEnvUpdate = 0
	*endx &^= 1 << uint(v.index)
}

// keyOff transitions the voice to Release without resetting its sample
// position, per spec.md §4.2's KOFF side effect.
func (v *voice) keyOff() {
	if v.active {
		v.phase = phaseRelease
	}
}

// advanceBlock moves to the next BRR block, honoring loop/end semantics
// and setting the corresponding ENDX bit.
func (v *voice) advanceBlock(bus *Bus, endx *uint8) {
	if v.block.endFlag {
		*endx |= 1 << uint(v.index)
		if v.block.loopFlag {
			v.curSampleAddr = v.loopAddr
		} else {
			v.phase = phaseRelease
			v.env = 0
			v.active = false
			return
		}
	} else {
		v.curSampleAddr += 9
	}
	v.block = v.decodeBlock(bus, v.curSampleAddr)
	v.blockPos = 0
}

// step advances the pitch counter by one 32kHz tick and returns the raw
// interpolated sample (before envelope/volume scaling), per spec.md §4.5.
func (v *voice) step(bus *Bus, pitch14 uint16, endx *uint8) int32 {
	if !v.active {
		return 0
	}

	sample := v.currentRawSample()
	v.prevInterp[0] = v.prevInterp[1]
	v.prevInterp[1] = v.prevInterp[2]
	v.prevInterp[2] = sample

	// idx is the 8-bit fractional position within the current sample slot,
	// bits 11..4 of the 16-bit counter per spec.md §4.5.
	idx := uint16(v.counter>>4) & 0xFF
	interp := (int64(gaussianTable[0xFF-idx])*int64(v.prevInterp[0]) +
		int64(gaussianTable[0x1FF-idx])*int64(v.prevInterp[1]) +
		int64(gaussianTable[0x100+idx])*int64(v.prevInterp[2]) +
		int64(gaussianTable[idx])*int64(sample)) >> 11

	result := clamp15(int32(interp))

	v.counter += uint32(pitch14)
	if v.counter >= 0x10000 {
		v.counter -= 0x10000
		v.advanceBlock(bus, endx)
	}
	v.blockPos = int(v.counter>>12) & 0xF

	return result
}

// currentRawSample returns the decoded sample the pitch counter currently
// points at within the active block.
func (v *voice) currentRawSample() int32 {
	pos := v.blockPos
	if pos < 0 || pos > 15 {
		pos = 0
	}
	return v.block.samples[pos]
}
