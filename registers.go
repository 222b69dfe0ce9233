// registers.go - the $F0-$FF control-register block
//
// Sixteen byte slots, dispatched by one switch on the offset in Read and
// one in Write: Test, Control, DSP-address, DSP-data, four CPU I/O ports,
// two aux bytes, three timer dividers, three timer output counters.
package main

// Register slot indices within the $F0-$FF window (0-based).
const (
	regTest    = 0x00
	regControl = 0x01
	regDSPAddr = 0x02
	regDSPData = 0x03
	regPort0   = 0x04
	regPort1   = 0x05
	regPort2   = 0x06
	regPort3   = 0x07
	regAux0    = 0x08
	regAux1    = 0x09
	regT0Div   = 0x0A
	regT1Div   = 0x0B
	regT2Div   = 0x0C
	regT0Out   = 0x0D
	regT1Out   = 0x0E
	regT2Out   = 0x0F
)

// Registers implements the $F0-$FF control-register block and owns the
// three hardware timers and the DSP register file they gate access to.
type Registers struct {
	test    uint8
	control uint8
	dspAddr uint8
	ports   [4]uint8
	aux     [2]uint8

	timers [3]*Timer
	dsp    *DSP
}

func NewRegisters(dsp *DSP, cyclesFn func() uint64) *Registers {
	r := &Registers{dsp: dsp}
	for i := range r.timers {
		r.timers[i] = NewTimer(i, cyclesFn)
	}
	return r
}

// Read implements the offset-0..15 read policy for $F0-$FF.
func (r *Registers) Read(offset uint16) uint8 {
	switch offset {
	case regTest:
		return r.test
	case regControl:
		return r.control
	case regDSPAddr:
		return r.dspAddr
	case regDSPData:
		return r.dsp.ReadRegister(r.dspAddr)
	case regPort0, regPort1, regPort2, regPort3:
		return r.ports[offset-regPort0]
	case regAux0, regAux1:
		return r.aux[offset-regAux0]
	case 0x0A, 0x0B, 0x0C:
		return r.timers[offset-0x0A].divider
	case 0x0D, 0x0E, 0x0F:
		return r.timers[offset-0x0D].readOutput()
	}
	return 0
}

// Write implements the offset-0..15 write policy for $F0-$FF, including the
// DSP-register side effects for KON/KOFF/FLG/ENDX dispatched by DSP itself.
func (r *Registers) Write(offset uint16, value uint8) {
	switch offset {
	case regTest:
		r.test = value
	case regControl:
		r.control = value
		for i := 0; i < 3; i++ {
			enable := value&(1<<uint(i)) != 0
			r.timers[i].setEnabled(enable)
		}
	case regDSPAddr:
		r.dspAddr = value & 0x7F
	case regDSPData:
		r.dsp.WriteRegister(r.dspAddr, value)
	case regPort0, regPort1, regPort2, regPort3:
		r.ports[offset-regPort0] = value
	case regAux0, regAux1:
		r.aux[offset-regAux0] = value
	case 0x0A, 0x0B, 0x0C:
		r.timers[offset-0x0A].setDivider(value)
	case 0x0D, 0x0E, 0x0F:
		// Writes to the timer output counters are rejected (read-only)
		// and silently discarded; nothing is logged.
	}
}

// Tick advances all three timers by the current CPU cycle position.
func (r *Registers) Tick() {
	for _, t := range r.timers {
		t.tick()
	}
}
