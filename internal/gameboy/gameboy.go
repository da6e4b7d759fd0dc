// Package gameboy wires the cartridge, memory map, interrupt
// controller, timer, PPU and CPU into the single cooperative
// run_frame loop spec.md section 5 describes, and is the package a
// host imports.
package gameboy

import (
	"github.com/WDDnguyen/gomatcha/internal/cartridge"
	"github.com/WDDnguyen/gomatcha/internal/cpu"
	"github.com/WDDnguyen/gomatcha/internal/gblog"
	"github.com/WDDnguyen/gomatcha/internal/interrupts"
	"github.com/WDDnguyen/gomatcha/internal/memory"
	"github.com/WDDnguyen/gomatcha/internal/ppu"
	"github.com/WDDnguyen/gomatcha/internal/timer"
)

// CyclesPerFrame is the number of CPU cycles run_frame accumulates
// before returning, matching a 60 Hz refresh at the Game Boy's
// 4.194304 MHz clock.
const CyclesPerFrame = 69905

// InterruptID names a host-initiated interrupt source, for use with
// GameBoy.RequestInterrupt. The core drives VBlank and LCDStat itself
// from the PPU, and Timer from the Timer; only Serial and Joypad are
// ever raised by a host.
type InterruptID = interrupts.Flag

const (
	VBlank  InterruptID = interrupts.VBlank
	LCDStat InterruptID = interrupts.LCDStat
	Timer   InterruptID = interrupts.Timer
	Serial  InterruptID = interrupts.Serial
	Joypad  InterruptID = interrupts.Joypad
)

// GameBoy is the composition root: a cartridge, a memory map, an
// interrupt controller, a timer, a PPU and a CPU, advanced together by
// RunFrame.
type GameBoy struct {
	cart *cartridge.Cartridge
	mem  *memory.Map
	ic   *interrupts.Controller
	tmr  *timer.Timer
	ppu  *ppu.PPU
	cpu  *cpu.CPU

	log gblog.Logger

	// serialDisabled makes RequestInterrupt(Serial) a no-op, for a
	// host that never wires up the serial port and would rather the
	// request silently drop than let a stray interrupt fire.
	serialDisabled bool

	frames int
}

// Option configures a GameBoy at construction time.
type Option func(gb *GameBoy)

// WithLogger replaces the default stdout logger.
func WithLogger(l gblog.Logger) Option {
	return func(gb *GameBoy) {
		gb.log = l
	}
}

// WithSerialDisabled makes RequestInterrupt(Serial) a no-op, for a
// host with no serial link attached.
func WithSerialDisabled() Option {
	return func(gb *GameBoy) {
		gb.serialDisabled = true
	}
}

// New parses rom and returns a GameBoy ready to run, with the CPU,
// timer and PPU in the post-boot-ROM-handoff state spec.md section 4.3
// describes. Errors returned by cartridge.New (unreadable header,
// unsupported MBC family) propagate unchanged.
func New(rom []byte, opts ...Option) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}
	return newGameBoy(cart, opts...), nil
}

// NewFromCartridge builds a GameBoy from an already-parsed cartridge,
// letting a host reuse the cartridge.Load decompression pipeline.
func NewFromCartridge(cart *cartridge.Cartridge, opts ...Option) *GameBoy {
	return newGameBoy(cart, opts...)
}

func newGameBoy(cart *cartridge.Cartridge, opts ...Option) *GameBoy {
	mem := memory.New(cart)
	ic := interrupts.New()
	tmr := timer.New(mem, ic)
	video := ppu.New(mem, ic)
	core := cpu.New(mem, ic)
	core.InitializePostBoot()

	gb := &GameBoy{
		cart: cart,
		mem:  mem,
		ic:   ic,
		tmr:  tmr,
		ppu:  video,
		cpu:  core,
		log:  gblog.New(),
	}

	for _, opt := range opts {
		opt(gb)
	}

	gb.log.Infof("loaded %q (%s)", cart.Title(), cart.Family())
	return gb
}

// RunFrame runs the core for one frame: it loops, performing for each
// iteration step(cpu) -> c, timer.advance(c), ppu.advance(c),
// ic.Tick(), and a priority-ordered interrupt dispatch, until
// accumulated cycles reach CyclesPerFrame. It returns the number of
// cycles actually run, which is always >= CyclesPerFrame (the loop
// never stops mid-instruction).
func (gb *GameBoy) RunFrame() int {
	total := 0
	for total < CyclesPerFrame {
		c, err := gb.cpu.Step()
		if err != nil {
			gb.log.Errorf("%v", err)
			c = 4
		}
		total += c

		gb.tmr.Advance(c)
		gb.ppu.Advance(c)

		// Tick must run exactly once per iteration: it is what makes
		// EI's IME transition visible one full iteration after the
		// instruction following EI, per spec.md section 5.
		gb.ic.Tick()

		if vector, ok := gb.ic.Dispatch(); ok {
			gb.cpu.ServiceInterrupt(vector)
			total += interrupts.ServiceCycles
		}
	}
	gb.frames++
	return total
}

// Framebuffer returns the most recently rendered frame as 160x144 RGB
// triplets, row-major by Y then X.
func (gb *GameBoy) Framebuffer() []byte {
	return gb.ppu.Framebuffer()
}

// RequestInterrupt raises id, for host-owned sources (Serial, Joypad)
// that have no in-core driver.
func (gb *GameBoy) RequestInterrupt(id InterruptID) {
	if id == Serial && gb.serialDisabled {
		return
	}
	gb.ic.Request(id)
}

// Frames reports how many times RunFrame has completed.
func (gb *GameBoy) Frames() int {
	return gb.frames
}

// Memory exposes the raw memory map for a host debugger or test
// harness that needs to peek or poke an address directly.
func (gb *GameBoy) Memory() *memory.Map {
	return gb.mem
}

// CPU exposes the interpreter for a host debugger that wants register
// or PC visibility.
func (gb *GameBoy) CPU() *cpu.CPU {
	return gb.cpu
}

// Cartridge returns the loaded cartridge's parsed header information.
func (gb *GameBoy) Cartridge() *cartridge.Cartridge {
	return gb.cart
}
