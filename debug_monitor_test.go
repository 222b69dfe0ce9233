package main

import (
	"bytes"
	"strings"
	"testing"
)

func newMonitorTestMachine() *Machine {
	m := NewMachine(16)
	_ = m.LoadSnapshot(buildFakeSPC())
	return m
}

func TestMonitorContinueClearsBreakFlag(t *testing.T) {
	m := newMonitorTestMachine()
	m.Break.Request()
	m.Monitor.REPL(strings.NewReader("continue\n"), &bytes.Buffer{})
	if m.Break.IsSet() {
		t.Fatalf("continue did not clear the break flag")
	}
}

func TestMonitorQuitSetsQuitRequested(t *testing.T) {
	m := newMonitorTestMachine()
	m.Monitor.REPL(strings.NewReader("quit\n"), &bytes.Buffer{})
	if !m.Monitor.quitRequested.Load() {
		t.Fatalf("quit did not set quitRequested")
	}
	if !m.Break.IsSet() {
		t.Fatalf("quit did not request a break")
	}
}

func TestMonitorBreakpointTriggersBreakFlag(t *testing.T) {
	m := newMonitorTestMachine()
	m.Monitor.REPL(strings.NewReader("break $1234\n"), &bytes.Buffer{})
	m.CPU.PC = 0x1234
	m.Monitor.CheckBreakpoints()
	if !m.Break.IsSet() {
		t.Fatalf("breakpoint at current PC did not request a break")
	}
}

func TestMonitorDumpRegistersReportsPC(t *testing.T) {
	m := newMonitorTestMachine()
	var buf bytes.Buffer
	m.Monitor.out = &buf
	m.Monitor.cmdDumpRegisters()
	if !strings.Contains(buf.String(), "PC=$1234") {
		t.Fatalf("register dump missing PC: %q", buf.String())
	}
}

func TestMonitorTraceToggle(t *testing.T) {
	m := newMonitorTestMachine()
	var buf bytes.Buffer
	m.Monitor.out = &buf
	m.Monitor.cmdTrace([]string{"voices"})
	if !m.Monitor.traceEnabled[TraceVoices] {
		t.Fatalf("trace category not enabled after toggle")
	}
	m.Monitor.cmdTrace([]string{"voices"})
	if m.Monitor.traceEnabled[TraceVoices] {
		t.Fatalf("trace category not disabled after second toggle")
	}
}

func TestMonitorExamineFormatsBytes(t *testing.T) {
	m := newMonitorTestMachine()
	m.Bus.Write(0x0010, 0x42)
	var buf bytes.Buffer
	m.Monitor.out = &buf
	m.Monitor.cmdExamine([]string{"$0010", "1"})
	if !strings.Contains(buf.String(), "42") {
		t.Fatalf("examine output missing byte: %q", buf.String())
	}
}

func TestParseAddrAcceptsDollarPrefix(t *testing.T) {
	addr, err := parseAddr("$1A2B")
	if err != nil || addr != 0x1A2B {
		t.Fatalf("parseAddr($1A2B) = %X, %v", addr, err)
	}
	addr, err = parseAddr("1A2B")
	if err != nil || addr != 0x1A2B {
		t.Fatalf("parseAddr(1A2B) = %X, %v", addr, err)
	}
}
