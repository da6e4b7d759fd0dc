package cpu

// rlc rotates v left circularly: bit 7 moves into both bit 0 and C.
func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	r := v<<1 | v>>7
	c.setFlags(r == 0, false, false, carry)
	return r
}

// rl rotates v left through carry: the incoming C becomes bit 0, and
// bit 7 becomes the new C.
func (c *CPU) rl(v uint8) uint8 {
	var in uint8
	if c.flagSet(FlagCarry) {
		in = 1
	}
	carry := v&0x80 != 0
	r := v<<1 | in
	c.setFlags(r == 0, false, false, carry)
	return r
}

// rrc rotates v right circularly: bit 0 moves into both bit 7 and C.
func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	r := v>>1 | v<<7
	c.setFlags(r == 0, false, false, carry)
	return r
}

// rr rotates v right through carry: the incoming C becomes bit 7, and
// bit 0 becomes the new C.
func (c *CPU) rr(v uint8) uint8 {
	var in uint8
	if c.flagSet(FlagCarry) {
		in = 0x80
	}
	carry := v&0x01 != 0
	r := v>>1 | in
	c.setFlags(r == 0, false, false, carry)
	return r
}

// The four non-extended accumulator rotates (RLCA, RLA, RRCA, RRA) use
// the same bit manipulation as their CB-prefixed counterparts but
// always cost 4 cycles and force Z to 0 regardless of the result.
func opRLCA(c *CPU) int { c.A = c.rlc(c.A); c.setFlag(FlagZero, false); return 4 }
func opRLA(c *CPU) int  { c.A = c.rl(c.A); c.setFlag(FlagZero, false); return 4 }
func opRRCA(c *CPU) int { c.A = c.rrc(c.A); c.setFlag(FlagZero, false); return 4 }
func opRRA(c *CPU) int  { c.A = c.rr(c.A); c.setFlag(FlagZero, false); return 4 }

// cbRotate wraps one of the four rotate functions as a CB-prefixed
// opcode over an 8-bit operand, which does set Z from the result.
func cbRotate(op func(*CPU, uint8) uint8, idx uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setR8(idx, op(c, c.r8(idx)))
		if idx == 6 {
			return 16
		}
		return 8
	}
}
