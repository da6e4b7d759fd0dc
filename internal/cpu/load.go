package cpu

// ldR8R8 implements register-to-register and (HL)-involving 8-bit
// loads: LD dst, src.
func ldR8R8(dst, src uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setR8(dst, c.r8(src))
		if dst == 6 || src == 6 {
			return 8
		}
		return 4
	}
}

// ldR8Imm implements LD r, n / LD (HL), n.
func ldR8Imm(dst uint8) func(*CPU) int {
	return func(c *CPU) int {
		n := c.fetch8()
		c.setR8(dst, n)
		if dst == 6 {
			return 12
		}
		return 8
	}
}

func opLD_A_BC(c *CPU) int { c.A = c.mem.Read(c.BC()); return 8 }
func opLD_A_DE(c *CPU) int { c.A = c.mem.Read(c.DE()); return 8 }
func opLD_BC_A(c *CPU) int { c.mem.Write(c.BC(), c.A); return 8 }
func opLD_DE_A(c *CPU) int { c.mem.Write(c.DE(), c.A); return 8 }

func opLD_A_nn(c *CPU) int { c.A = c.mem.Read(c.fetch16()); return 16 }
func opLD_nn_A(c *CPU) int { c.mem.Write(c.fetch16(), c.A); return 16 }

func opLDH_A_C(c *CPU) int { c.A = c.mem.Read(0xFF00 + uint16(c.C)); return 8 }
func opLDH_C_A(c *CPU) int { c.mem.Write(0xFF00+uint16(c.C), c.A); return 8 }

func opLDH_A_n(c *CPU) int { c.A = c.mem.Read(0xFF00 + uint16(c.fetch8())); return 12 }
func opLDH_n_A(c *CPU) int { c.mem.Write(0xFF00+uint16(c.fetch8()), c.A); return 12 }

func opLD_A_HLplus(c *CPU) int {
	hl := c.HL()
	c.A = c.mem.Read(hl)
	c.SetHL(hl + 1)
	return 8
}

func opLD_A_HLminus(c *CPU) int {
	hl := c.HL()
	c.A = c.mem.Read(hl)
	c.SetHL(hl - 1)
	return 8
}

func opLD_HLplus_A(c *CPU) int {
	hl := c.HL()
	c.mem.Write(hl, c.A)
	c.SetHL(hl + 1)
	return 8
}

func opLD_HLminus_A(c *CPU) int {
	hl := c.HL()
	c.mem.Write(hl, c.A)
	c.SetHL(hl - 1)
	return 8
}

// ldRR16Imm implements LD rr, nn.
func ldRR16Imm(rr uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setRR16(rr, c.fetch16())
		return 12
	}
}

func opLD_SP_HL(c *CPU) int { c.SP = c.HL(); return 8 }

func opLD_HL_SPe(c *CPU) int {
	e := int8(c.fetch8())
	c.SetHL(c.addSPSigned(e))
	return 12
}

func opLD_nn_SP(c *CPU) int {
	addr := c.fetch16()
	c.mem.Write(addr, uint8(c.SP))
	c.mem.Write(addr+1, uint8(c.SP>>8))
	return 20
}

// pushRR16/popRR16 implement PUSH rr / POP rr, whose register-pair
// encoding names AF rather than SP at index 3.
func pushRR16(rr uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.push16(c.rr16Stack(rr))
		return 16
	}
}

func popRR16(rr uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setRR16Stack(rr, c.pop16())
		return 12
	}
}
