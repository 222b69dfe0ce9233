// player.go - wires a decoded snapshot into a running CPU/DSP/Clock triple
// and drives it through an audio sink, per spec.md §4.6 and SPEC_FULL.md §5
// module 12 ("Player orchestration").
//
// Construction has one circularity to break: Bus needs Registers, Registers
// needs DSP, and DSP needs Bus (to decode BRR blocks and touch the echo
// region). The teacher's own CoprocessorManager resolves an equivalent
// cycle by building the CPU shell first and wiring its bus reference in
// after the fact; Machine does the same for DSP/Bus below.
package main

import (
	"fmt"
	"os"
)

// Machine owns one fully wired SPC700 + DSP instance: everything a single
// .spc file needs to run.
type Machine struct {
	CPU   *CPU
	Bus   *Bus
	Regs  *Registers
	DSP   *DSP
	Clock *Clock
	Queue *SampleQueue
	Break *BreakFlag

	Monitor *MachineMonitor

	tag *Tag
}

// NewMachine constructs an unloaded Machine ready to accept a snapshot via
// LoadSnapshot. queueCapacity is the bounded sample queue's frame capacity
// (spec.md §5: "capacity >= one callback slice").
func NewMachine(queueCapacity int) *Machine {
	cpu := &CPU{}
	dsp := &DSP{}
	for i := range dsp.voices {
		dsp.voices[i].index = i
	}
	regs := NewRegisters(dsp, func() uint64 { return cpu.Cycles })
	bus := NewBus(regs)
	dsp.bus = bus
	cpu.bus = bus
	cpu.initOps()

	queue := NewSampleQueue(queueCapacity)
	brk := &BreakFlag{}
	clock := NewClock(cpu, regs, dsp, queue, brk)

	m := &Machine{CPU: cpu, Bus: bus, Regs: regs, DSP: dsp, Clock: clock, Queue: queue, Break: brk}
	m.Monitor = NewMachineMonitor(m)
	return m
}

// LoadSnapshot decodes data as a .spc file and applies it to the machine's
// CPU/Bus/DSP state, replacing whatever was there before.
func (m *Machine) LoadSnapshot(data []byte) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	snap.LoadInto(m.CPU, m.Bus, m.DSP)
	m.tag = snap.Tag
	return nil
}

// Tag returns the optional ID666 metadata decoded with the snapshot, or
// nil if the file carried no tag (spec.md §6 offset 0x2E).
func (m *Machine) Tag() *Tag { return m.tag }

// PlayOptions configures one run of Run.
type PlayOptions struct {
	// SkipSeconds fast-forwards the CPU/DSP loop without emitting samples
	// for this many seconds of simulated audio time before streaming
	// begins, per original_source/'s -s flag (SPEC_FULL.md §4).
	SkipSeconds float64

	// Sink receives every stereo frame the clock produces after the skip
	// period. A nil Sink still drives the CPU/DSP forward (useful for
	// tests that only care about machine state) but discards samples and
	// returns once the break flag is set.
	Sink AudioSink

	// FadeTag, when non-nil, wires dsp_mixer.go's FadeRamp from the ID666
	// tag's track length / fade length fields (SPEC_FULL.md §4).
	FadeTag *Tag
}

const sampleRateHz = 32000

// Run drives the interpreter/sampler loop, per spec.md §4.6's driver loop
// and §5's cancellation semantics ("no state is torn down"). With a Sink,
// every iteration in which the break flag is set goes to the monitor's
// REPL instead of the clock, and the loop ends only when the monitor's
// quit request is set; it then closes the queue and returns the sink's
// result. The loop does not watch the sink: a sink that stops draining
// leaves StepOnce blocked once the queue is full.
func (m *Machine) Run(opts PlayOptions) error {
	if opts.FadeTag != nil && opts.FadeTag.SecondsLen > 0 {
		counter := &m.Clock.sampleCounter
		trackLen := uint64(opts.FadeTag.SecondsLen) * sampleRateHz
		fadeLen := uint64(opts.FadeTag.FadeMillis) * sampleRateHz / 1000
		m.DSP.mixer.FadeRamp = NewFadeRamp(counter, trackLen, fadeLen)
	}

	skipSamples := uint64(opts.SkipSeconds * sampleRateHz)
	for m.Clock.SampleCounter() < skipSamples && !m.Break.IsSet() {
		m.Clock.cpu.Step()
		m.Clock.regs.Tick()
		for m.Clock.cpu.Cycles >= m.Clock.nextSampleCycle {
			m.DSP.Tick()
			m.Clock.sampleCounter++
			m.Clock.nextSampleCycle += samplePeriodCycles
		}
	}

	if opts.Sink == nil {
		m.Clock.queue = nil
		m.Clock.RunUntilBreak()
		m.Clock.queue = m.Queue
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- opts.Sink.Run(m.Queue)
	}()

	for {
		if m.Monitor.quitRequested.Load() {
			break
		}
		if m.Break.IsSet() {
			m.Monitor.REPL(os.Stdin, os.Stdout)
			continue
		}
		m.Clock.StepOnce()
		m.Monitor.CheckBreakpoints()
	}
	m.Queue.Close()
	return <-done
}

// describeTag renders the ID666 tag (if any) for the CLI's startup banner
// and the monitor's info command.
func (m *Machine) describeTag() string {
	if m.tag == nil {
		return "(no ID666 tag)"
	}
	t := m.tag
	return fmt.Sprintf("%q - %q (artist: %q, dumped by %q)\n%s\nlength %ds, fade %dms",
		t.SongTitle, t.GameTitle, t.Artist, t.Dumper, t.Comments, t.SecondsLen, t.FadeMillis)
}
