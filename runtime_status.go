// runtime_status.go - the shared break flag the driver loop polls
//
// Modeled as an atomic boolean owned by the scheduler rather than a
// language-level global, per spec.md §9's design note.
package main

import "sync/atomic"

// BreakFlag is the one piece of state the debugger collaborator and the
// driver loop both touch: the collaborator sets it asynchronously (signal
// handler, REPL command), the loop polls it once per instruction.
type BreakFlag struct {
	requested atomic.Bool
}

func (b *BreakFlag) Request() { b.requested.Store(true) }
func (b *BreakFlag) Clear()   { b.requested.Store(false) }
func (b *BreakFlag) IsSet() bool { return b.requested.Load() }
