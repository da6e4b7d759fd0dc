package cpu

// Registers holds the eight 8-bit architectural registers that make up
// the four 16-bit pairs AF, BC, DE and HL. The source overlays a
// 16-bit value on two 8-bit halves with a union; a union has no
// portable Go equivalent, so pairs are instead composed big-endian
// (high<<8 | low) by the accessors below, per spec.md section 9.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
}

// AF returns the A/F pair. The low nibble of F is always 0: no Game
// Boy flag lives there, and SetAF enforces it on write.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// BC returns the B/C pair.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// DE returns the D/E pair.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// HL returns the H/L pair.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetAF sets A and F from v, masking F's unimplemented low nibble.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = uint8(v) & 0xF0
}

// SetBC sets B and C from v.
func (r *Registers) SetBC(v uint16) {
	r.B = uint8(v >> 8)
	r.C = uint8(v)
}

// SetDE sets D and E from v.
func (r *Registers) SetDE(v uint16) {
	r.D = uint8(v >> 8)
	r.E = uint8(v)
}

// SetHL sets H and L from v.
func (r *Registers) SetHL(v uint16) {
	r.H = uint8(v >> 8)
	r.L = uint8(v)
}
