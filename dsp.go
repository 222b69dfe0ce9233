// dsp.go - the DSP register file and the per-sample voice/mixer tick
//
// DSP owns the 128-byte register file voices and the control registers
// (KON/KOFF/FLG/ENDX/DIR/MVOLL/MVOLR) read from it, plus the bus reference
// needed to decode BRR blocks and resolve the source directory. One
// instance is shared by Registers (via its DSP-address/data port) and by
// the clock's per-sample tick.
package main

// DSP register column offsets within a voice's 0x10-byte row.
const (
	dspVOLL  = 0x00
	dspVOLR  = 0x01
	dspPITCHL = 0x02
	dspPITCHH = 0x03
	dspSRCN  = 0x04
	dspADSR1 = 0x05
	dspADSR2 = 0x06
	dspGAIN  = 0x07
	dspENVX  = 0x08
	dspOUTX  = 0x09
)

// Global (non-per-voice) register addresses.
const (
	dspMVOLL = 0x0C
	dspMVOLR = 0x1C
	dspEVOLL = 0x2C
	dspEVOLR = 0x3C
	dspKON   = 0x4C
	dspKOFF  = 0x5C
	dspDIR   = 0x5D
	dspFLG   = 0x6C
	dspENDX  = 0x7C
	dspEFB   = 0x0D
	dspPMON  = 0x2D
	dspNON   = 0x3D
	dspEON   = 0x4D
	dspESA   = 0x6D
	dspEDL   = 0x7D
)

// echoBufferMax bounds the echo region at the hardware's maximum EDL (15 ->
// 15*2KiB = 30KiB), keeping the structural echo buffer well within the 64KiB
// address space regardless of ESA.
const echoBufferMax = 15 * 2 * 1024

// FLG bit positions.
const (
	flgMute     = 1 << 6
	flgSoftReset = 1 << 7
)

// DSP is the eight-voice sample generator described by spec.md §4.5-4.6.
type DSP struct {
	bus *Bus

	regs [128]uint8
	voices [8]voice

	endx uint8
	flg  uint8
	dir  uint8

	mvoll, mvolr int8

	mixer Mixer

	echoPos int
}

// NewDSP constructs a DSP bound to the shared memory bus; voices are
// initialised inactive and stay that way until a KON write key-ons them.
func NewDSP(bus *Bus) *DSP {
	d := &DSP{bus: bus}
	for i := range d.voices {
		d.voices[i].index = i
	}
	return d
}

// ReadRegister implements the $F3 DSP-data read side, dispatched from
// Registers with the address latched at $F2.
func (d *DSP) ReadRegister(addr uint8) uint8 {
	addr &= 0x7F
	switch addr {
	case dspENDX:
		return d.endx
	case dspFLG:
		return d.flg
	case dspDIR:
		return d.dir
	}
	if voiceIdx, col, ok := voiceRegister(addr); ok {
		v := &d.voices[voiceIdx]
		switch col {
		case dspENVX:
			return v.envx
		case dspOUTX:
			return v.outx
		}
	}
	return d.regs[addr]
}

// WriteRegister implements the $F3 DSP-data write side, including the
// KON/KOFF/FLG/ENDX side effects spec.md §4.2 requires.
func (d *DSP) WriteRegister(addr uint8, value uint8) {
	addr &= 0x7F
	d.regs[addr] = value

	switch addr {
	case dspKON:
		for i := 0; i < 8; i++ {
			if value&(1<<uint(i)) != 0 {
				srcn := d.regs[i*0x10+dspSRCN]
				d.voices[i].keyOn(d.bus, d.dir, srcn, &d.endx)
			}
		}
		return
	case dspKOFF:
		for i := 0; i < 8; i++ {
			if value&(1<<uint(i)) != 0 {
				d.voices[i].keyOff()
			}
		}
		return
	case dspFLG:
		d.flg = value
		if value&flgSoftReset != 0 {
			for i := range d.voices {
				d.voices[i].keyOff()
			}
		}
		return
	case dspENDX:
		d.endx = 0
		return
	case dspDIR:
		d.dir = value
		return
	case dspMVOLL:
		d.mvoll = int8(value)
		return
	case dspMVOLR:
		d.mvolr = int8(value)
		return
	}

	if voiceIdx, col, ok := voiceRegister(addr); ok {
		v := &d.voices[voiceIdx]
		switch col {
		case dspADSR1:
			v.decodeADSR(value, d.regs[voiceIdx*0x10+dspADSR2])
		case dspADSR2:
			v.decodeADSR(d.regs[voiceIdx*0x10+dspADSR1], value)
		case dspGAIN:
			v.decodeGAIN(value)
		}
	}
}

// voiceRegister decodes a register address into (voice index, column)
// when it falls in one of the eight 0x10-byte voice rows.
func voiceRegister(addr uint8) (voiceIdx int, col uint8, ok bool) {
	if addr >= 0x80 {
		return 0, 0, false
	}
	return int(addr >> 4), addr & 0x0F, true
}

// Tick produces one stereo frame by stepping every voice once, applying
// envelopes, and mixing - spec.md §4.5's "evaluated once per 32kHz tick,
// for every voice regardless of mute state".
func (d *DSP) Tick() (left, right int16) {
	var voiceL, voiceR [8]int32

	for i := range d.voices {
		v := &d.voices[i]
		pitch := (uint16(d.regs[i*0x10+dspPITCHH])<<8 | uint16(d.regs[i*0x10+dspPITCHL])) & 0x3FFF
		raw := v.step(d.bus, pitch, &d.endx)
		env := v.advanceEnvelope()

		scaled := (raw * env) >> 11
		v.outx = uint8(scaled>>8) & 0x0F

		voll := int32(int8(d.regs[i*0x10+dspVOLL]))
		volr := int32(int8(d.regs[i*0x10+dspVOLR]))
		voiceL[i] = (scaled * voll) >> 7
		voiceR[i] = (scaled * volr) >> 7
	}

	l, r := d.mixer.Mix(voiceL, voiceR, int32(d.mvoll), int32(d.mvolr), d.flg&flgMute != 0)
	d.tickEcho(l, r)
	return l, r
}

// tickEcho keeps the echo region structurally live - ESA/EDL/EFB/EVOLL/EVOLR
// and the FIR coefficient bytes are all readable/writable through the normal
// register path above, and this writes each frame into the RAM region ESA
// designates - but the FIR convolution and echo feedback mix-in are a no-op
// passthrough, per spec.md's non-goal excluding echo bit-exactness.
func (d *DSP) tickEcho(l, r int16) {
	if d.bus == nil {
		return
	}
	edl := d.regs[dspEDL] & 0x0F
	bufLen := int(edl) * 2 * 1024
	if bufLen == 0 {
		bufLen = 4
	}
	if bufLen > echoBufferMax {
		bufLen = echoBufferMax
	}
	esa := uint16(d.regs[dspESA]) << 8
	off := uint16(d.echoPos % bufLen)
	d.bus.Write(esa+off, uint8(l))
	d.bus.Write(esa+off+1, uint8(l>>8))
	d.bus.Write(esa+off+2, uint8(r))
	d.bus.Write(esa+off+3, uint8(r>>8))
	d.echoPos = (d.echoPos + 4) % bufLen
}
