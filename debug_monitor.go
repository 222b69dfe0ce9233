// debug_monitor.go - the debugger collaborator spec.md §6 describes: break
// at PC, continue, step, disassemble, dump registers/DSP/profile, examine
// memory, toggle trace categories, dump a single voice.
//
// Grounded on the teacher's debug_monitor.go (MachineMonitor: a state
// machine gating access to a running machine, with a line/output buffer),
// scaled down to this project's scope - no hex editor, no scripting, no
// backstep - and on terminal_host.go for the raw-mode helpers at the end of
// this file. The REPL itself reads whole lines, so every command, including
// the single-letter ones (s, c), ends with Enter.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

// TraceCategory is one of the toggle-able trace channels spec.md §6 lists.
type TraceCategory int

const (
	TraceJumps TraceCategory = iota
	TraceVoices
	TraceRegisterIO
	TraceInstructions
	TraceCounters
	TraceDSPOps
	TraceADSR
	TraceTimeElapsed
	traceCategoryCount
)

var traceCategoryNames = [traceCategoryCount]string{
	"jumps", "voices", "regio", "instr", "counters", "dspops", "adsr", "time",
}

func parseTraceCategory(name string) (TraceCategory, bool) {
	for i, n := range traceCategoryNames {
		if n == name {
			return TraceCategory(i), true
		}
	}
	return 0, false
}

// Breakpoint is a single PC address the monitor halts execution at.
type Breakpoint struct {
	Addr uint16
}

// MachineMonitor is the core debugger state attached to one Machine. It
// never mutates CPU/DSP/Bus state on its own behalf beyond what commands
// explicitly request (spec.md §5: "the register/RAM state is owned by the
// core thread").
type MachineMonitor struct {
	m *Machine

	breakpoints   map[uint16]Breakpoint
	traceEnabled  [traceCategoryCount]bool
	quitRequested atomic.Bool

	rawTerm   *term.State
	rawTermFD int

	out io.Writer
}

// NewMachineMonitor creates a monitor bound to m. It does not activate
// anything - the first debugger interaction happens when something sets
// m.Break (a breakpoint hit or SIGINT; the "break" command only records a
// breakpoint).
func NewMachineMonitor(m *Machine) *MachineMonitor {
	return &MachineMonitor{m: m, breakpoints: make(map[uint16]Breakpoint), out: os.Stdout}
}

// CheckBreakpoints is polled once per instruction by the clock's caller
// (player.go's Run loop calls it directly after each StepOnce) to request
// control.
func (mon *MachineMonitor) CheckBreakpoints() {
	if _, hit := mon.breakpoints[mon.m.CPU.PC]; hit {
		mon.m.Break.Request()
	}
}

// REPL reads and executes one debugger command line. Callers (player.go's
// Run loop) call this repeatedly while the break flag is set; it clears
// the flag itself on "continue" so the outer loop resumes driving the
// clock, while "step" runs one instruction and leaves the flag set,
// mirroring spec.md §4.6 step 1's "hand to the external debugger
// collaborator, wait".
func (mon *MachineMonitor) REPL(r io.Reader, w io.Writer) {
	mon.out = w
	fmt.Fprintf(w, "(spc) ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		mon.quitRequested.Store(true)
		return
	}
	mon.dispatch(strings.TrimSpace(scanner.Text()))
}

func (mon *MachineMonitor) dispatch(line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "c", "continue":
		mon.m.Break.Clear()
	case "s", "step":
		mon.cmdStep()
	case "b", "break":
		mon.cmdBreak(args)
	case "d", "disas", "disassemble":
		mon.cmdDisassemble(args)
	case "r", "regs", "registers":
		mon.cmdDumpRegisters()
	case "dsp":
		mon.cmdDumpDSP()
	case "v", "voice":
		mon.cmdDumpVoice(args)
	case "x", "examine":
		mon.cmdExamine(args)
	case "trace":
		mon.cmdTrace(args)
	case "counters", "profile":
		mon.cmdCounters()
	case "info":
		fmt.Fprintln(mon.out, mon.m.describeTag())
	case "q", "quit":
		mon.quitRequested.Store(true)
		mon.m.Break.Request()
	case "h", "help", "?":
		mon.cmdHelp()
	default:
		fmt.Fprintf(mon.out, "unknown command %q (try 'help')\n", cmd)
	}
}

// cmdStep executes exactly one instruction (via Clock.StepOnce, which may
// also emit sample frames) and leaves the break flag set so the next REPL
// call prompts again rather than free-running.
func (mon *MachineMonitor) cmdStep() {
	mon.m.Clock.StepOnce()
	mon.cmdDisassembleAt(mon.m.CPU.PC)
}

func (mon *MachineMonitor) cmdBreak(args []string) {
	if len(args) == 0 {
		for addr := range mon.breakpoints {
			fmt.Fprintf(mon.out, "breakpoint at $%04X\n", addr)
		}
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(mon.out, "bad address %q: %v\n", args[0], err)
		return
	}
	mon.breakpoints[addr] = Breakpoint{Addr: addr}
	fmt.Fprintf(mon.out, "breakpoint set at $%04X\n", addr)
}

func (mon *MachineMonitor) cmdDisassemble(args []string) {
	addr := mon.m.CPU.PC
	if len(args) > 0 {
		a, err := parseAddr(args[0])
		if err != nil {
			fmt.Fprintf(mon.out, "bad address %q: %v\n", args[0], err)
			return
		}
		addr = a
	}
	count := 8
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	for i := 0; i < count; i++ {
		line := disassembleOne(mon.m.Bus, addr)
		fmt.Fprintf(mon.out, "$%04X  %-10s %s\n", addr, line.HexBytes, line.Text)
		addr += uint16(line.Size)
	}
}

func (mon *MachineMonitor) cmdDisassembleAt(addr uint16) {
	line := disassembleOne(mon.m.Bus, addr)
	fmt.Fprintf(mon.out, "$%04X  %-10s %s\n", addr, line.HexBytes, line.Text)
}

func (mon *MachineMonitor) cmdDumpRegisters() {
	c := mon.m.CPU
	fmt.Fprintf(mon.out, "PC=$%04X A=$%02X X=$%02X Y=$%02X SP=$%02X PSW=%08b cycles=%d\n",
		c.PC, c.A, c.X, c.Y, c.SP, c.P.bits, c.Cycles)
}

func (mon *MachineMonitor) cmdDumpDSP() {
	d := mon.m.DSP
	fmt.Fprintf(mon.out, "MVOLL=%d MVOLR=%d FLG=%08b ENDX=%08b DIR=$%02X\n",
		d.mvoll, d.mvolr, d.flg, d.endx, d.dir)
	for i := 0; i < 8; i++ {
		mon.dumpVoiceLine(i)
	}
}

func (mon *MachineMonitor) cmdDumpVoice(args []string) {
	idx := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n >= 0 && n < 8 {
			idx = n
		}
	}
	mon.dumpVoiceLine(idx)
}

func (mon *MachineMonitor) dumpVoiceLine(i int) {
	v := &mon.m.DSP.voices[i]
	fmt.Fprintf(mon.out, "voice %d: active=%v phase=%d env=$%03X addr=$%04X envx=%d outx=%d\n",
		i, v.active, v.phase, v.env, v.curSampleAddr, v.envx, v.outx)
}

func (mon *MachineMonitor) cmdExamine(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(mon.out, "usage: examine <addr> [count]")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(mon.out, "bad address %q: %v\n", args[0], err)
		return
	}
	count := 16
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	for row := 0; row < count; row += 16 {
		fmt.Fprintf(mon.out, "$%04X ", addr+uint16(row))
		for col := 0; col < 16 && row+col < count; col++ {
			fmt.Fprintf(mon.out, "%02X ", mon.m.Bus.Read(addr+uint16(row+col)))
		}
		fmt.Fprintln(mon.out)
	}
}

func (mon *MachineMonitor) cmdTrace(args []string) {
	if len(args) == 0 {
		for i, name := range traceCategoryNames {
			fmt.Fprintf(mon.out, "%s: %v\n", name, mon.traceEnabled[i])
		}
		return
	}
	cat, ok := parseTraceCategory(args[0])
	if !ok {
		fmt.Fprintf(mon.out, "unknown trace category %q\n", args[0])
		return
	}
	mon.traceEnabled[cat] = !mon.traceEnabled[cat]
	fmt.Fprintf(mon.out, "%s: %v\n", args[0], mon.traceEnabled[cat])
}

func (mon *MachineMonitor) cmdCounters() {
	fmt.Fprintf(mon.out, "cycles=%d samples=%d\n", mon.m.CPU.Cycles, mon.m.Clock.SampleCounter())
}

func (mon *MachineMonitor) cmdHelp() {
	fmt.Fprintln(mon.out, "commands: break <addr>, continue, step, disassemble [addr] [n],")
	fmt.Fprintln(mon.out, "  regs, dsp, voice <n>, examine <addr> [n], trace <category>,")
	fmt.Fprintln(mon.out, "  counters, info, quit")
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}

// EnableRawMode puts the given terminal fd into raw mode and saves the old
// state, mirroring terminal_host.go's Start(); a non-TTY fd is left as it
// is. Nothing in the player calls it, and REPL still reads line by line, so
// raw mode does not make single-letter commands work without Enter.
func (mon *MachineMonitor) EnableRawMode(fd int) error {
	if !term.IsTerminal(fd) {
		return nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	mon.rawTerm = old
	mon.rawTermFD = fd
	return nil
}

// DisableRawMode restores whatever terminal state EnableRawMode saved.
func (mon *MachineMonitor) DisableRawMode() {
	if mon.rawTerm != nil {
		_ = term.Restore(mon.rawTermFD, mon.rawTerm)
		mon.rawTerm = nil
	}
}
