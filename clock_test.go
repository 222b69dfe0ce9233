package main

import "testing"

func newTestClock() (*Clock, *SampleQueue) {
	bus := &Bus{}
	dsp := NewDSP(bus)
	cpu := &CPU{bus: bus}
	regs := NewRegisters(dsp, func() uint64 { return cpu.Cycles })
	bus.regs = regs
	cpu.initOps()

	queue := NewSampleQueue(4)
	brk := &BreakFlag{}
	clock := NewClock(cpu, regs, dsp, queue, brk)
	return clock, queue
}

func TestClockEmitsSampleEverySamplePeriod(t *testing.T) {
	clock, queue := newTestClock()

	// NOP (0x00) costs 2 cycles; samplePeriodCycles is 64, so 32 NOPs cross
	// exactly one sample boundary.
	clock.cpu.bus.Write(0, 0x00)
	for i := uint16(1); i < 64; i++ {
		clock.cpu.bus.Write(i, 0x00)
	}

	for i := 0; i < 32; i++ {
		clock.StepOnce()
	}

	if clock.SampleCounter() == 0 {
		t.Fatalf("expected at least one sample to have been emitted after 64 cycles, got counter=%d", clock.SampleCounter())
	}

	if _, ok := queue.Pop(); !ok {
		t.Fatal("expected a frame to be available in the queue")
	}
}

func TestClockRunUntilBreakStopsOnFlag(t *testing.T) {
	clock, _ := newTestClock()
	for i := uint16(0); i < 0x200; i++ {
		clock.cpu.bus.Write(i, 0x00)
	}

	go func() {
		clock.brk.Request()
	}()

	done := make(chan struct{})
	go func() {
		clock.RunUntilBreak()
		close(done)
	}()
	<-done
}
