package cpu

// opcodes and opcodesCB are the two dispatch tables spec.md section
// 4.3 calls for: 256 primary entries (12 of which are nil - 0xCB, which
// Step handles itself, and the eleven real illegal Game Boy opcodes,
// see types.InvalidOpcodeError) and 256
// CB-prefixed entries, all of them real instructions. Each entry
// returns the actual elapsed M-cycle count, so conditional branches
// self-report their taken/not-taken cost rather than always reporting
// the not-taken value, per spec.md section 9.
var opcodes [256]func(*CPU) int
var opcodesCB [256]func(*CPU) int

func init() {
	buildPrimaryTable()
	buildCBTable()
}

func buildPrimaryTable() {
	opcodes[0x00] = opNOP
	opcodes[0x01] = ldRR16Imm(0)
	opcodes[0x02] = opLD_BC_A
	opcodes[0x03] = incRR16(0)
	opcodes[0x04] = incR8(0)
	opcodes[0x05] = decR8(0)
	opcodes[0x06] = ldR8Imm(0)
	opcodes[0x07] = opRLCA
	opcodes[0x08] = opLD_nn_SP
	opcodes[0x09] = addHLRR(0)
	opcodes[0x0A] = opLD_A_BC
	opcodes[0x0B] = decRR16(0)
	opcodes[0x0C] = incR8(1)
	opcodes[0x0D] = decR8(1)
	opcodes[0x0E] = ldR8Imm(1)
	opcodes[0x0F] = opRRCA

	opcodes[0x10] = opSTOP
	opcodes[0x11] = ldRR16Imm(1)
	opcodes[0x12] = opLD_DE_A
	opcodes[0x13] = incRR16(1)
	opcodes[0x14] = incR8(2)
	opcodes[0x15] = decR8(2)
	opcodes[0x16] = ldR8Imm(2)
	opcodes[0x17] = opRLA
	opcodes[0x18] = opJR_e
	opcodes[0x19] = addHLRR(1)
	opcodes[0x1A] = opLD_A_DE
	opcodes[0x1B] = decRR16(1)
	opcodes[0x1C] = incR8(3)
	opcodes[0x1D] = decR8(3)
	opcodes[0x1E] = ldR8Imm(3)
	opcodes[0x1F] = opRRA

	opcodes[0x20] = jrCC(0)
	opcodes[0x21] = ldRR16Imm(2)
	opcodes[0x22] = opLD_HLplus_A
	opcodes[0x23] = incRR16(2)
	opcodes[0x24] = incR8(4)
	opcodes[0x25] = decR8(4)
	opcodes[0x26] = ldR8Imm(4)
	opcodes[0x27] = opDAA
	opcodes[0x28] = jrCC(1)
	opcodes[0x29] = addHLRR(2)
	opcodes[0x2A] = opLD_A_HLplus
	opcodes[0x2B] = decRR16(2)
	opcodes[0x2C] = incR8(5)
	opcodes[0x2D] = decR8(5)
	opcodes[0x2E] = ldR8Imm(5)
	opcodes[0x2F] = opCPL

	opcodes[0x30] = jrCC(2)
	opcodes[0x31] = ldRR16Imm(3)
	opcodes[0x32] = opLD_HLminus_A
	opcodes[0x33] = incRR16(3)
	opcodes[0x34] = incR8(6)
	opcodes[0x35] = decR8(6)
	opcodes[0x36] = ldR8Imm(6)
	opcodes[0x37] = opSCF
	opcodes[0x38] = jrCC(3)
	opcodes[0x39] = addHLRR(3)
	opcodes[0x3A] = opLD_A_HLminus
	opcodes[0x3B] = decRR16(3)
	opcodes[0x3C] = incR8(7)
	opcodes[0x3D] = decR8(7)
	opcodes[0x3E] = ldR8Imm(7)
	opcodes[0x3F] = opCCF

	// 0x40-0x7F: LD r, r' over the 8x8 grid, except 0x76 which is
	// HALT (the encoding that would otherwise be LD (HL),(HL)).
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := uint8(0x40) + dst<<3 + src
			if op == 0x76 {
				opcodes[op] = opHALT
				continue
			}
			opcodes[op] = ldR8R8(dst, src)
		}
	}

	// 0x80-0xBF: ALU A, r8 over the fixed group order
	// ADD/ADC/SUB/SBC/AND/XOR/OR/CP.
	aluGroup := [8]func(*CPU, uint8){opADD, opADC, opSUB, opSBC, opAND, opXOR, opOR, opCP}
	for group := uint8(0); group < 8; group++ {
		for src := uint8(0); src < 8; src++ {
			opcodes[0x80+group<<3+src] = aluR8(aluGroup[group], src)
		}
	}

	opcodes[0xC0] = retCC(0)
	opcodes[0xC1] = popRR16(0)
	opcodes[0xC2] = jpCC(0)
	opcodes[0xC3] = opJP_nn
	opcodes[0xC4] = callCC(0)
	opcodes[0xC5] = pushRR16(0)
	opcodes[0xC6] = aluImm(opADD)
	opcodes[0xC7] = rst(0x00)
	opcodes[0xC8] = retCC(1)
	opcodes[0xC9] = opRET
	opcodes[0xCA] = jpCC(1)
	// 0xCB is handled directly by Step, never dispatched from this table.
	opcodes[0xCC] = callCC(1)
	opcodes[0xCD] = opCALL_nn
	opcodes[0xCE] = aluImm(opADC)
	opcodes[0xCF] = rst(0x08)

	opcodes[0xD0] = retCC(2)
	opcodes[0xD1] = popRR16(1)
	opcodes[0xD2] = jpCC(2)
	opcodes[0xD4] = callCC(2)
	opcodes[0xD5] = pushRR16(1)
	opcodes[0xD6] = aluImm(opSUB)
	opcodes[0xD7] = rst(0x10)
	opcodes[0xD8] = retCC(3)
	opcodes[0xD9] = opRETI
	opcodes[0xDA] = jpCC(3)
	opcodes[0xDC] = callCC(3)
	opcodes[0xDE] = aluImm(opSBC)
	opcodes[0xDF] = rst(0x18)

	opcodes[0xE0] = opLDH_n_A
	opcodes[0xE1] = popRR16(2)
	opcodes[0xE2] = opLDH_C_A
	opcodes[0xE5] = pushRR16(2)
	opcodes[0xE6] = aluImm(opAND)
	opcodes[0xE7] = rst(0x20)
	opcodes[0xE8] = opADD_SP_e
	opcodes[0xE9] = opJP_HL
	opcodes[0xEA] = opLD_nn_A
	opcodes[0xEE] = aluImm(opXOR)
	opcodes[0xEF] = rst(0x28)

	opcodes[0xF0] = opLDH_A_n
	opcodes[0xF1] = popRR16(3)
	opcodes[0xF2] = opLDH_A_C
	opcodes[0xF3] = opDI
	opcodes[0xF5] = pushRR16(3)
	opcodes[0xF6] = aluImm(opOR)
	opcodes[0xF7] = rst(0x30)
	opcodes[0xF8] = opLD_HL_SPe
	opcodes[0xF9] = opLD_SP_HL
	opcodes[0xFA] = opLD_A_nn
	opcodes[0xFB] = opEI
	opcodes[0xFE] = aluImm(opCP)
	opcodes[0xFF] = rst(0x38)

	// 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD
	// have no real hardware behaviour and are left nil; Step surfaces
	// them as *types.InvalidOpcodeError.
}

func buildCBTable() {
	rotateGroup := [4]func(*CPU, uint8) uint8{(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr}
	for g := uint8(0); g < 4; g++ {
		for r := uint8(0); r < 8; r++ {
			opcodesCB[uint8(g)<<3+r] = cbRotate(rotateGroup[g], r)
		}
	}

	shiftGroup := [3]func(*CPU, uint8) uint8{(*CPU).sla, (*CPU).sra, (*CPU).srl}
	for r := uint8(0); r < 8; r++ {
		opcodesCB[0x20+r] = cbShift(shiftGroup[0], r)
		opcodesCB[0x28+r] = cbShift(shiftGroup[1], r)
	}
	for r := uint8(0); r < 8; r++ {
		opcodesCB[0x30+r] = cbSwap(r)
		opcodesCB[0x38+r] = cbShift(shiftGroup[2], r)
	}

	for bit := uint8(0); bit < 8; bit++ {
		for r := uint8(0); r < 8; r++ {
			opcodesCB[0x40+bit<<3+r] = cbBit(bit, r)
			opcodesCB[0x80+bit<<3+r] = cbRes(bit, r)
			opcodesCB[0xC0+bit<<3+r] = cbSet(bit, r)
		}
	}
}
