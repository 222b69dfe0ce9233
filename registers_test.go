package main

import "testing"

func TestRegistersTimer0EnableDividerAndReadback(t *testing.T) {
	var cycles uint64
	dsp := &DSP{}
	regs := NewRegisters(dsp, func() uint64 { return cycles })

	regs.Write(regT0Div, 4)
	regs.Write(regControl, 0x01) // enable timer 0 only

	cycles = 1024
	regs.Tick()

	out := regs.Read(regT0Out)
	requireEqualU8(t, "T0OUT first read", out, 1)
	requireEqualU8(t, "T0OUT after read resets", regs.Read(regT0Out), 0)
}

func TestRegistersControlDisablesOtherTimers(t *testing.T) {
	var cycles uint64
	dsp := &DSP{}
	regs := NewRegisters(dsp, func() uint64 { return cycles })

	regs.Write(regT1Div, 1)
	regs.Write(regT2Div, 1)
	regs.Write(regControl, 0x01) // only bit 0 set: timer 1/2 disabled

	cycles = 100000
	regs.Tick()

	requireEqualU8(t, "T1OUT", regs.Read(regT1Out), 0)
	requireEqualU8(t, "T2OUT", regs.Read(regT2Out), 0)
}

func TestRegistersDSPAddrDataBridge(t *testing.T) {
	bus := &Bus{}
	dsp := NewDSP(bus)
	regs := NewRegisters(dsp, func() uint64 { return 0 })
	bus.regs = regs

	regs.Write(regDSPAddr, dspMVOLL)
	regs.Write(regDSPData, 0x40)

	requireEqualU8(t, "dsp.mvoll", uint8(dsp.mvoll), 0x40)

	regs.Write(regDSPAddr, dspMVOLL)
	got := regs.Read(regDSPData)
	requireEqualU8(t, "readback via $F2/$F3", got, 0x40)
}

func TestRegistersDSPAddrMaskedTo7Bits(t *testing.T) {
	dsp := &DSP{}
	regs := NewRegisters(dsp, func() uint64 { return 0 })
	regs.Write(regDSPAddr, 0xFF)
	requireEqualU8(t, "dspAddr masked", regs.dspAddr, 0x7F)
}

func TestRegistersPortsEchoWritesOnRead(t *testing.T) {
	dsp := &DSP{}
	regs := NewRegisters(dsp, func() uint64 { return 0 })
	regs.Write(regPort0, 0x11)
	regs.Write(regPort3, 0x99)
	requireEqualU8(t, "port0", regs.Read(regPort0), 0x11)
	requireEqualU8(t, "port3", regs.Read(regPort3), 0x99)
}
