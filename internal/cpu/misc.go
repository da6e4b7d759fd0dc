package cpu

func opNOP(c *CPU) int { return 4 }

func opHALT(c *CPU) int {
	c.Halt()
	return 4
}

// opSTOP treats STOP as HALT with an additional LCD-off side effect,
// per spec.md section 9's open-question guidance - true hardware's
// low-power transition is out of scope until it can be verified
// against hardware tests. STOP also consumes a (normally ignored)
// second opcode byte.
func opSTOP(c *CPU) int {
	c.fetch8()
	c.Halt()
	c.mem.Write(0xFF40, c.mem.Read(0xFF40)&^0x80)
	return 4
}

func opDI(c *CPU) int {
	c.ic.Disable()
	return 4
}

func opEI(c *CPU) int {
	c.ic.RequestEnable()
	return 4
}

func opDAA(c *CPU) int { c.daa(); return 4 }
func opCPL(c *CPU) int { c.cpl(); return 4 }
func opCCF(c *CPU) int { c.ccf(); return 4 }
func opSCF(c *CPU) int { c.scf(); return 4 }
