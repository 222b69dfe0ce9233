package main

import "testing"

func buildFakeSPC() []byte {
	buf := make([]byte, snapshotSize)
	copy(buf[offMagic:], spcMagic)
	buf[offTagType] = 26
	buf[offPC] = 0x34
	buf[offPC+1] = 0x12
	buf[offA] = 0xAA
	buf[offX] = 0xBB
	buf[offY] = 0xCC
	buf[offPSW] = 0x80
	buf[offSP] = 0xEF
	buf[offRAM+0x10] = 0x42
	buf[offDSPRegs+5] = 0x77

	copy(buf[offIDTag:], []byte("Test Song\x00"))
	copy(buf[offIDTag+32:], []byte("Test Game\x00"))
	copy(buf[offIDTag+123:], []byte("180"))
	copy(buf[offIDTag+126:], []byte("05000"))

	return buf
}

func TestDecodeSnapshotBasicFields(t *testing.T) {
	buf := buildFakeSPC()
	s, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireEqualU16(t, "PC", s.PC, 0x1234)
	requireEqualU8(t, "A", s.A, 0xAA)
	requireEqualU8(t, "X", s.X, 0xBB)
	requireEqualU8(t, "Y", s.Y, 0xCC)
	requireEqualU8(t, "PSW", s.PSW, 0x80)
	requireEqualU8(t, "SP", s.SP, 0xEF)
	requireEqualU8(t, "RAM[0x10]", s.RAM[0x10], 0x42)
	requireEqualU8(t, "DSPRegs[5]", s.DSPRegs[5], 0x77)

	if s.Tag == nil {
		t.Fatal("expected ID666 tag to be parsed")
	}
	if s.Tag.SongTitle != "Test Song" {
		t.Errorf("SongTitle = %q, want %q", s.Tag.SongTitle, "Test Song")
	}
	if s.Tag.GameTitle != "Test Game" {
		t.Errorf("GameTitle = %q, want %q", s.Tag.GameTitle, "Test Game")
	}
	if s.Tag.SecondsLen != 180 {
		t.Errorf("SecondsLen = %d, want 180", s.Tag.SecondsLen)
	}
	if s.Tag.FadeMillis != 5000 {
		t.Errorf("FadeMillis = %d, want 5000", s.Tag.FadeMillis)
	}
}

func TestDecodeSnapshotBadMagic(t *testing.T) {
	buf := buildFakeSPC()
	buf[0] = 'X'
	if _, err := DecodeSnapshot(buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestDecodeSnapshotShortRead(t *testing.T) {
	if _, err := DecodeSnapshot(make([]byte, 100)); err == nil {
		t.Fatal("expected error for short input")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	buf := buildFakeSPC()
	s, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	reEncoded := EncodeSnapshot(s)
	s2, err := DecodeSnapshot(reEncoded)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}

	requireEqualU16(t, "PC", s2.PC, s.PC)
	requireEqualU8(t, "A", s2.A, s.A)
	requireEqualU8(t, "X", s2.X, s.X)
	requireEqualU8(t, "Y", s2.Y, s.Y)
	requireEqualU8(t, "PSW", s2.PSW, s.PSW)
	requireEqualU8(t, "SP", s2.SP, s.SP)
	if s2.RAM != s.RAM {
		t.Error("RAM did not round-trip")
	}
	if s2.DSPRegs != s.DSPRegs {
		t.Error("DSPRegs did not round-trip")
	}
}

func TestSnapshotLoadIntoAppliesState(t *testing.T) {
	buf := buildFakeSPC()
	s, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	regs := NewRegisters(&DSP{}, func() uint64 { return 0 })
	bus := NewBus(regs)
	dsp := NewDSP(bus)
	cpu := &CPU{bus: bus}
	cpu.initOps()

	s.LoadInto(cpu, bus, dsp)

	requireEqualU16(t, "cpu.PC", cpu.PC, s.PC)
	requireEqualU8(t, "cpu.A", cpu.A, s.A)
	requireEqualU8(t, "cpu.SP", cpu.SP, s.SP)
	requireEqualU8(t, "cpu.P.bits", cpu.P.bits, s.PSW)

	ram := bus.RawRAM()
	requireEqualU8(t, "ram[0x10]", ram[0x10], 0x42)
	requireEqualU8(t, "dsp.regs[5]", dsp.regs[5], 0x77)
}
