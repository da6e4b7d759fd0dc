// Package timer implements the Game Boy's divider and programmable
// timer: DIV, TIMA, TMA and TAC, per spec.md section 4.5.
package timer

import (
	"github.com/WDDnguyen/gomatcha/internal/interrupts"
	"github.com/WDDnguyen/gomatcha/internal/memory"
	"github.com/WDDnguyen/gomatcha/internal/types"
)

// periods maps TAC's bottom two bits to the number of CPU cycles
// between TIMA increments.
var periods = [4]int{1024, 16, 64, 256}

// Timer drives DIV/TIMA/TMA/TAC from the elapsed cycle counts Advance
// is handed each run_frame iteration.
type Timer struct {
	mem *memory.Map
	ic  *interrupts.Controller

	// divider is the full 16-bit internal counter; DIV (0xFF04) is
	// always its high 8 bits.
	divider uint16
	// countdown is the number of cycles remaining until the next TIMA
	// increment, reloaded from periods[TAC&0x03] whenever it underflows.
	countdown int
}

// New returns a Timer wired to mem and ic, with the countdown preloaded
// for TAC's power-on value (00, period 1024). It registers itself with
// mem so a CPU write to 0xFF04 resets its internal divider and a CPU
// write to 0xFF07 resyncs the countdown to the newly selected period.
func New(mem *memory.Map, ic *interrupts.Controller) *Timer {
	t := &Timer{
		mem:       mem,
		ic:        ic,
		countdown: periods[0],
	}
	mem.SetDivResetHook(t.ResetDivider)
	mem.SetTACWriteHook(t.resyncCountdown)
	return t
}

// Advance consumes cycles elapsed CPU cycles, updating DIV and, if the
// timer is enabled, TIMA - reloading TIMA from TMA and requesting a
// Timer interrupt on overflow.
func (t *Timer) Advance(cycles int) {
	t.advanceDivider(cycles)

	if t.mem.Read(types.TAC)&0x04 == 0 {
		return
	}

	t.countdown -= cycles
	for t.countdown <= 0 {
		t.countdown += periods[t.mem.Read(types.TAC)&0x03]
		t.incrementTIMA()
	}
}

func (t *Timer) advanceDivider(cycles int) {
	t.divider += uint16(cycles)
	t.mem.SetRaw(types.DIV, uint8(t.divider>>8))
}

func (t *Timer) incrementTIMA() {
	tima := t.mem.Read(types.TIMA)
	if tima == 0xFF {
		t.mem.SetRaw(types.TIMA, t.mem.Read(types.TMA))
		t.ic.Request(interrupts.Timer)
		return
	}
	t.mem.SetRaw(types.TIMA, tima+1)
}

// ResetDivider zeroes the full internal divider. The memory map calls
// this whenever the CPU writes to 0xFF04, matching real hardware's
// "any write resets it" behaviour - the written value itself is
// discarded.
func (t *Timer) ResetDivider() {
	t.divider = 0
	t.mem.SetRaw(types.DIV, 0)
}

// resyncCountdown reloads countdown from the period the newly written
// TAC value selects. The memory map calls this whenever the CPU writes
// to 0xFF07; without it, a faster period written mid-count would not
// take effect until whatever period was previously selected ran out.
func (t *Timer) resyncCountdown(value uint8) {
	t.countdown = periods[value&0x03]
}
