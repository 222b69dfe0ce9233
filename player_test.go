package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewMachineWiresVoiceIndices(t *testing.T) {
	m := NewMachine(64)
	for i := range m.DSP.voices {
		if m.DSP.voices[i].index != i {
			t.Fatalf("voice %d has index %d", i, m.DSP.voices[i].index)
		}
	}
	if m.DSP.bus != m.Bus {
		t.Fatalf("DSP bus not wired to the machine's shared bus")
	}
}

func TestLoadSnapshotAppliesState(t *testing.T) {
	m := NewMachine(64)
	if err := m.LoadSnapshot(buildFakeSPC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CPU.PC != 0x1234 {
		t.Fatalf("PC = $%04X, want $1234", m.CPU.PC)
	}
	if m.Bus.Read(0x0010) != 0x42 {
		t.Fatalf("RAM[0x10] not applied")
	}
	if m.Tag() == nil || m.Tag().SongTitle != "Test Song" {
		t.Fatalf("tag not decoded: %+v", m.Tag())
	}
}

func TestLoadSnapshotRejectsBadMagic(t *testing.T) {
	m := NewMachine(64)
	bad := buildFakeSPC()
	bad[0] = 'X'
	if err := m.LoadSnapshot(bad); err == nil {
		t.Fatalf("expected an error for a corrupt magic header")
	}
}

// TestRunHeadlessAdvancesCyclesAndStops exercises Run end-to-end with a
// tiny program (infinite loop) and a HeadlessSink, asserting the driver
// loop actually advances cycles and that the break flag plus the monitor's
// quit request stop it promptly - spec.md testable property 1 (monotonic
// cycles) exercised through the full orchestration layer rather than just
// Clock directly.
func TestRunHeadlessAdvancesCyclesAndStops(t *testing.T) {
	m := NewMachine(64)
	if err := m.LoadSnapshot(buildFakeSPC()); err != nil {
		t.Fatalf("load: %v", err)
	}
	// BRA -2: an infinite loop at the loaded PC so Run never runs out of
	// program before the break flag fires.
	ram := m.Bus.RawRAM()
	ram[0x1234] = 0x2F
	ram[0x1235] = 0xFE

	done := make(chan error, 1)
	go func() { done <- m.Run(PlayOptions{Sink: HeadlessSink{}}) }()

	time.Sleep(10 * time.Millisecond)
	m.Break.Request()
	m.Monitor.quitRequested.Store(true)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after the break flag was requested")
	}
	if m.CPU.Cycles == 0 {
		t.Fatalf("CPU never advanced")
	}
}

func TestFilePCMSinkWritesInterleavedSamples(t *testing.T) {
	q := NewSampleQueue(4)
	var buf bytes.Buffer
	sink := NewFilePCMSink(&buf)

	done := make(chan error, 1)
	go func() { done <- sink.Run(q) }()

	q.Push(Frame{L: 1, R: -1})
	q.Close()
	if err := <-done; err != nil {
		t.Fatalf("sink.Run: %v", err)
	}
	want := []byte{1, 0, 0xFF, 0xFF}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X, want % X", buf.Bytes(), want)
	}
}

func TestFileTextSinkWritesDecimalPairs(t *testing.T) {
	q := NewSampleQueue(4)
	var buf bytes.Buffer
	sink := NewFileTextSink(&buf)

	done := make(chan error, 1)
	go func() { done <- sink.Run(q) }()

	q.Push(Frame{L: 100, R: -200})
	q.Close()
	if err := <-done; err != nil {
		t.Fatalf("sink.Run: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "100 -200" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestHeadlessSinkDrainsWithoutBlocking(t *testing.T) {
	q := NewSampleQueue(2)
	done := make(chan error, 1)
	go func() { done <- (HeadlessSink{}).Run(q) }()

	q.Push(Frame{L: 1, R: 2})
	q.Push(Frame{L: 3, R: 4})
	q.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("HeadlessSink.Run did not return after Close")
	}
}
