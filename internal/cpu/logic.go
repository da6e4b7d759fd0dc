package cpu

// aluR8 implements one of ADD/ADC/SUB/SBC/AND/OR/XOR/CP A, src for an
// 8-bit register/(HL) operand, dispatched by the standard 3-bit ALU
// opcode group (0x80-0xBF).
func aluR8(op func(*CPU, uint8), src uint8) func(*CPU) int {
	return func(c *CPU) int {
		op(c, c.r8(src))
		return r8Cycles(src)
	}
}

// aluImm implements the immediate form of the same eight operations
// (0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE).
func aluImm(op func(*CPU, uint8)) func(*CPU) int {
	return func(c *CPU) int {
		op(c, c.fetch8())
		return 8
	}
}

func opADD(c *CPU, b uint8) { c.A = c.add8(b, false) }
func opADC(c *CPU, b uint8) { c.A = c.add8(b, c.flagSet(FlagCarry)) }
func opSUB(c *CPU, b uint8) { c.A = c.sub8(b, false) }
func opSBC(c *CPU, b uint8) { c.A = c.sub8(b, c.flagSet(FlagCarry)) }
func opAND(c *CPU, b uint8) { c.A = c.and8(b) }
func opOR(c *CPU, b uint8)  { c.A = c.or8(b) }
func opXOR(c *CPU, b uint8) { c.A = c.xor8(b) }
func opCP(c *CPU, b uint8)  { c.sub8(b, false) } // CP is SUB without writing A.

// incR8/decR8 implement INC r / INC (HL) / DEC r / DEC (HL).
func incR8(idx uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setR8(idx, c.inc8(c.r8(idx)))
		if idx == 6 {
			return 12
		}
		return 4
	}
}

func decR8(idx uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setR8(idx, c.dec8(c.r8(idx)))
		if idx == 6 {
			return 12
		}
		return 4
	}
}

// incRR16/decRR16 implement INC rr / DEC rr: no flags touched.
func incRR16(rr uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setRR16(rr, c.rr16(rr)+1)
		return 8
	}
}

func decRR16(rr uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.setRR16(rr, c.rr16(rr)-1)
		return 8
	}
}

func addHLRR(rr uint8) func(*CPU) int {
	return func(c *CPU) int {
		c.addHL(c.rr16(rr))
		return 8
	}
}

func opADD_SP_e(c *CPU) int {
	e := int8(c.fetch8())
	c.SP = c.addSPSigned(e)
	return 16
}
