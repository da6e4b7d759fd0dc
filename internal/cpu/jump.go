package cpu

func opJP_nn(c *CPU) int {
	c.PC = c.fetch16()
	return 16
}

func opJP_HL(c *CPU) int {
	c.PC = c.HL()
	return 4
}

// jpCC implements JP cc, nn: 16 cycles taken, 12 not taken. The source
// always returns the not-taken value even when the branch is taken;
// spec.md section 9 calls this a bug a port must fix.
func jpCC(cond uint8) func(*CPU) int {
	return func(c *CPU) int {
		target := c.fetch16()
		if c.cc(cond) {
			c.PC = target
			return 16
		}
		return 12
	}
}

func opJR_e(c *CPU) int {
	e := int8(c.fetch8())
	c.PC = uint16(int32(c.PC) + int32(e))
	return 12
}

// jrCC implements JR cc, e: 12 cycles taken, 8 not taken.
func jrCC(cond uint8) func(*CPU) int {
	return func(c *CPU) int {
		e := int8(c.fetch8())
		if c.cc(cond) {
			c.PC = uint16(int32(c.PC) + int32(e))
			return 12
		}
		return 8
	}
}

func opCALL_nn(c *CPU) int {
	target := c.fetch16()
	c.push16(c.PC)
	c.PC = target
	return 24
}

// callCC implements CALL cc, nn: 24 cycles taken, 12 not taken.
func callCC(cond uint8) func(*CPU) int {
	return func(c *CPU) int {
		target := c.fetch16()
		if c.cc(cond) {
			c.push16(c.PC)
			c.PC = target
			return 24
		}
		return 12
	}
}

// rst implements RST n, pushing PC and jumping to one of the eight
// fixed page-zero vectors.
func rst(vector uint16) func(*CPU) int {
	return func(c *CPU) int {
		c.push16(c.PC)
		c.PC = vector
		return 16
	}
}

func opRET(c *CPU) int {
	c.PC = c.pop16()
	return 16
}

// retCC implements RET cc: 20 cycles taken, 8 not taken.
func retCC(cond uint8) func(*CPU) int {
	return func(c *CPU) int {
		if c.cc(cond) {
			c.PC = c.pop16()
			return 20
		}
		return 8
	}
}

// opRETI is RET followed by an immediate IME set - not the one-
// instruction-delayed transition EI schedules.
func opRETI(c *CPU) int {
	c.PC = c.pop16()
	c.ic.SetIMEImmediate()
	return 16
}
