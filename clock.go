// clock.go - the interpreter/sampler driver loop, spec.md §4.6
//
// samplePeriodCycles approximates cpu_clock_hz / 32000. The SPC700 runs at
// roughly 2.048 MHz, giving 2048000/32000 = 64 cycles per sample exactly,
// which is the figure spec.md §4.6 names directly.
package main

const samplePeriodCycles = 64

// Clock drives one CPU, its Registers/timers, and the DSP forward in
// lockstep, emitting one stereo frame onto the queue every time the
// cumulative cycle count crosses the 32kHz grid.
type Clock struct {
	cpu   *CPU
	regs  *Registers
	dsp   *DSP
	queue *SampleQueue
	brk   *BreakFlag

	nextSampleCycle uint64
	sampleCounter   uint64
}

func NewClock(cpu *CPU, regs *Registers, dsp *DSP, queue *SampleQueue, brk *BreakFlag) *Clock {
	return &Clock{cpu: cpu, regs: regs, dsp: dsp, queue: queue, brk: brk, nextSampleCycle: samplePeriodCycles}
}

// RunUntilBreak drives the loop until the break flag is set, honoring
// spec.md §4.6's three-step rule each iteration. It returns when the break
// flag transitions to set, leaving all state intact for a debugger to
// inspect (spec.md §5's cancellation semantics: "no state is torn down").
func (c *Clock) RunUntilBreak() {
	for !c.brk.IsSet() {
		c.StepOnce()
	}
}

// StepOnce executes exactly one CPU instruction, advances timers, and
// emits zero or more sample frames - the unit of work debug single-step
// commands perform.
func (c *Clock) StepOnce() {
	c.cpu.Step()
	c.regs.Tick()

	for c.cpu.Cycles >= c.nextSampleCycle {
		l, r := c.dsp.Tick()
		c.sampleCounter++
		c.nextSampleCycle += samplePeriodCycles
		if c.queue != nil {
			if !c.queue.Push(Frame{L: l, R: r}) {
				return
			}
		}
	}
}

// SampleCounter reports how many stereo frames have been produced so far;
// player.go's seconds-to-skip feature and dsp_mixer.go's fade ramp both
// read this.
func (c *Clock) SampleCounter() uint64 { return c.sampleCounter }
