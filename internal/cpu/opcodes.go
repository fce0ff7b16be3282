package cpu

// initTable populates the fixed 256-entry opcode table: official
// instructions, documented unofficial ones (SLO, RLA, SRE, RRA, LAX,
// SAX, DCP, ISC, ANC, ALR, ARR, AXS, unofficial NOPs), and JAM entries
// that stall the CPU without terminating emulation.
func (c *CPU) initTable() {
	set := func(op uint8, name string, mode AddressingMode, cycles uint8, fn func(c *CPU, addr uint16, mode AddressingMode)) {
		c.table[op] = Instruction{Name: name, Mode: mode, Cycles: cycles, Execute: fn}
	}

	// Official load/store
	set(0xA9, "LDA", Immediate, 2, opLDA)
	set(0xA5, "LDA", ZeroPage, 3, opLDA)
	set(0xB5, "LDA", ZeroPageX, 4, opLDA)
	set(0xAD, "LDA", Absolute, 4, opLDA)
	set(0xBD, "LDA", AbsoluteX, 4, opLDA)
	set(0xB9, "LDA", AbsoluteY, 4, opLDA)
	set(0xA1, "LDA", IndexedIndirect, 6, opLDA)
	set(0xB1, "LDA", IndirectIndexed, 5, opLDA)

	set(0xA2, "LDX", Immediate, 2, opLDX)
	set(0xA6, "LDX", ZeroPage, 3, opLDX)
	set(0xB6, "LDX", ZeroPageY, 4, opLDX)
	set(0xAE, "LDX", Absolute, 4, opLDX)
	set(0xBE, "LDX", AbsoluteY, 4, opLDX)

	set(0xA0, "LDY", Immediate, 2, opLDY)
	set(0xA4, "LDY", ZeroPage, 3, opLDY)
	set(0xB4, "LDY", ZeroPageX, 4, opLDY)
	set(0xAC, "LDY", Absolute, 4, opLDY)
	set(0xBC, "LDY", AbsoluteX, 4, opLDY)

	set(0x85, "STA", ZeroPage, 3, opSTA)
	set(0x95, "STA", ZeroPageX, 4, opSTA)
	set(0x8D, "STA", Absolute, 4, opSTA)
	set(0x9D, "STA", AbsoluteX, 5, opSTA)
	set(0x99, "STA", AbsoluteY, 5, opSTA)
	set(0x81, "STA", IndexedIndirect, 6, opSTA)
	set(0x91, "STA", IndirectIndexed, 6, opSTA)

	set(0x86, "STX", ZeroPage, 3, opSTX)
	set(0x96, "STX", ZeroPageY, 4, opSTX)
	set(0x8E, "STX", Absolute, 4, opSTX)

	set(0x84, "STY", ZeroPage, 3, opSTY)
	set(0x94, "STY", ZeroPageX, 4, opSTY)
	set(0x8C, "STY", Absolute, 4, opSTY)

	// Transfers
	set(0xAA, "TAX", Implicit, 2, opTAX)
	set(0xA8, "TAY", Implicit, 2, opTAY)
	set(0x8A, "TXA", Implicit, 2, opTXA)
	set(0x98, "TYA", Implicit, 2, opTYA)
	set(0xBA, "TSX", Implicit, 2, opTSX)
	set(0x9A, "TXS", Implicit, 2, opTXS)

	// Stack
	set(0x48, "PHA", Implicit, 3, opPHA)
	set(0x08, "PHP", Implicit, 3, opPHP)
	set(0x68, "PLA", Implicit, 4, opPLA)
	set(0x28, "PLP", Implicit, 4, opPLP)

	// Arithmetic
	set(0x69, "ADC", Immediate, 2, opADC)
	set(0x65, "ADC", ZeroPage, 3, opADC)
	set(0x75, "ADC", ZeroPageX, 4, opADC)
	set(0x6D, "ADC", Absolute, 4, opADC)
	set(0x7D, "ADC", AbsoluteX, 4, opADC)
	set(0x79, "ADC", AbsoluteY, 4, opADC)
	set(0x61, "ADC", IndexedIndirect, 6, opADC)
	set(0x71, "ADC", IndirectIndexed, 5, opADC)

	set(0xE9, "SBC", Immediate, 2, opSBC)
	set(0xE5, "SBC", ZeroPage, 3, opSBC)
	set(0xF5, "SBC", ZeroPageX, 4, opSBC)
	set(0xED, "SBC", Absolute, 4, opSBC)
	set(0xFD, "SBC", AbsoluteX, 4, opSBC)
	set(0xF9, "SBC", AbsoluteY, 4, opSBC)
	set(0xE1, "SBC", IndexedIndirect, 6, opSBC)
	set(0xF1, "SBC", IndirectIndexed, 5, opSBC)
	set(0xEB, "SBC", Immediate, 2, opSBC) // unofficial duplicate

	// Logical
	set(0x29, "AND", Immediate, 2, opAND)
	set(0x25, "AND", ZeroPage, 3, opAND)
	set(0x35, "AND", ZeroPageX, 4, opAND)
	set(0x2D, "AND", Absolute, 4, opAND)
	set(0x3D, "AND", AbsoluteX, 4, opAND)
	set(0x39, "AND", AbsoluteY, 4, opAND)
	set(0x21, "AND", IndexedIndirect, 6, opAND)
	set(0x31, "AND", IndirectIndexed, 5, opAND)

	set(0x09, "ORA", Immediate, 2, opORA)
	set(0x05, "ORA", ZeroPage, 3, opORA)
	set(0x15, "ORA", ZeroPageX, 4, opORA)
	set(0x0D, "ORA", Absolute, 4, opORA)
	set(0x1D, "ORA", AbsoluteX, 4, opORA)
	set(0x19, "ORA", AbsoluteY, 4, opORA)
	set(0x01, "ORA", IndexedIndirect, 6, opORA)
	set(0x11, "ORA", IndirectIndexed, 5, opORA)

	set(0x49, "EOR", Immediate, 2, opEOR)
	set(0x45, "EOR", ZeroPage, 3, opEOR)
	set(0x55, "EOR", ZeroPageX, 4, opEOR)
	set(0x4D, "EOR", Absolute, 4, opEOR)
	set(0x5D, "EOR", AbsoluteX, 4, opEOR)
	set(0x59, "EOR", AbsoluteY, 4, opEOR)
	set(0x41, "EOR", IndexedIndirect, 6, opEOR)
	set(0x51, "EOR", IndirectIndexed, 5, opEOR)

	// Shifts/rotates
	set(0x0A, "ASL", Accumulator, 2, opASL)
	set(0x06, "ASL", ZeroPage, 5, opASL)
	set(0x16, "ASL", ZeroPageX, 6, opASL)
	set(0x0E, "ASL", Absolute, 6, opASL)
	set(0x1E, "ASL", AbsoluteX, 7, opASL)

	set(0x4A, "LSR", Accumulator, 2, opLSR)
	set(0x46, "LSR", ZeroPage, 5, opLSR)
	set(0x56, "LSR", ZeroPageX, 6, opLSR)
	set(0x4E, "LSR", Absolute, 6, opLSR)
	set(0x5E, "LSR", AbsoluteX, 7, opLSR)

	set(0x2A, "ROL", Accumulator, 2, opROL)
	set(0x26, "ROL", ZeroPage, 5, opROL)
	set(0x36, "ROL", ZeroPageX, 6, opROL)
	set(0x2E, "ROL", Absolute, 6, opROL)
	set(0x3E, "ROL", AbsoluteX, 7, opROL)

	set(0x6A, "ROR", Accumulator, 2, opROR)
	set(0x66, "ROR", ZeroPage, 5, opROR)
	set(0x76, "ROR", ZeroPageX, 6, opROR)
	set(0x6E, "ROR", Absolute, 6, opROR)
	set(0x7E, "ROR", AbsoluteX, 7, opROR)

	// Increments/decrements
	set(0xE6, "INC", ZeroPage, 5, opINC)
	set(0xF6, "INC", ZeroPageX, 6, opINC)
	set(0xEE, "INC", Absolute, 6, opINC)
	set(0xFE, "INC", AbsoluteX, 7, opINC)
	set(0xC6, "DEC", ZeroPage, 5, opDEC)
	set(0xD6, "DEC", ZeroPageX, 6, opDEC)
	set(0xCE, "DEC", Absolute, 6, opDEC)
	set(0xDE, "DEC", AbsoluteX, 7, opDEC)
	set(0xE8, "INX", Implicit, 2, opINX)
	set(0xC8, "INY", Implicit, 2, opINY)
	set(0xCA, "DEX", Implicit, 2, opDEX)
	set(0x88, "DEY", Implicit, 2, opDEY)

	// Compare
	set(0xC9, "CMP", Immediate, 2, opCMP)
	set(0xC5, "CMP", ZeroPage, 3, opCMP)
	set(0xD5, "CMP", ZeroPageX, 4, opCMP)
	set(0xCD, "CMP", Absolute, 4, opCMP)
	set(0xDD, "CMP", AbsoluteX, 4, opCMP)
	set(0xD9, "CMP", AbsoluteY, 4, opCMP)
	set(0xC1, "CMP", IndexedIndirect, 6, opCMP)
	set(0xD1, "CMP", IndirectIndexed, 5, opCMP)
	set(0xE0, "CPX", Immediate, 2, opCPX)
	set(0xE4, "CPX", ZeroPage, 3, opCPX)
	set(0xEC, "CPX", Absolute, 4, opCPX)
	set(0xC0, "CPY", Immediate, 2, opCPY)
	set(0xC4, "CPY", ZeroPage, 3, opCPY)
	set(0xCC, "CPY", Absolute, 4, opCPY)

	// BIT
	set(0x24, "BIT", ZeroPage, 3, opBIT)
	set(0x2C, "BIT", Absolute, 4, opBIT)

	// Jumps/calls
	set(0x4C, "JMP", Absolute, 3, opJMP)
	set(0x6C, "JMP", Indirect, 5, opJMP)
	set(0x20, "JSR", Absolute, 6, opJSR)
	set(0x60, "RTS", Implicit, 6, opRTS)
	set(0x40, "RTI", Implicit, 6, opRTI)
	set(0x00, "BRK", Implicit, 7, opBRK)

	// Branches
	set(0x90, "BCC", Relative, 2, opBCC)
	set(0xB0, "BCS", Relative, 2, opBCS)
	set(0xF0, "BEQ", Relative, 2, opBEQ)
	set(0xD0, "BNE", Relative, 2, opBNE)
	set(0x30, "BMI", Relative, 2, opBMI)
	set(0x10, "BPL", Relative, 2, opBPL)
	set(0x50, "BVC", Relative, 2, opBVC)
	set(0x70, "BVS", Relative, 2, opBVS)

	// Flags
	set(0x18, "CLC", Implicit, 2, opCLC)
	set(0x38, "SEC", Implicit, 2, opSEC)
	set(0x58, "CLI", Implicit, 2, opCLI)
	set(0x78, "SEI", Implicit, 2, opSEI)
	set(0xB8, "CLV", Implicit, 2, opCLV)
	set(0xD8, "CLD", Implicit, 2, opCLD)
	set(0xF8, "SED", Implicit, 2, opSED)

	// NOP (official + unofficial, with correct length/cycles per mode)
	set(0xEA, "NOP", Implicit, 2, opNOP)
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "NOP", Implicit, 2, opNOP)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "NOP", Immediate, 2, opNOP)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, "NOP", ZeroPage, 3, opNOP)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "NOP", ZeroPageX, 4, opNOP)
	}
	set(0x0C, "NOP", Absolute, 4, opNOP)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "NOP", AbsoluteX, 4, opNOP)
	}

	// Unofficial combined read-modify-write
	set(0x03, "SLO", IndexedIndirect, 8, opSLO)
	set(0x07, "SLO", ZeroPage, 5, opSLO)
	set(0x0F, "SLO", Absolute, 6, opSLO)
	set(0x13, "SLO", IndirectIndexed, 8, opSLO)
	set(0x17, "SLO", ZeroPageX, 6, opSLO)
	set(0x1B, "SLO", AbsoluteY, 7, opSLO)
	set(0x1F, "SLO", AbsoluteX, 7, opSLO)

	set(0x23, "RLA", IndexedIndirect, 8, opRLA)
	set(0x27, "RLA", ZeroPage, 5, opRLA)
	set(0x2F, "RLA", Absolute, 6, opRLA)
	set(0x33, "RLA", IndirectIndexed, 8, opRLA)
	set(0x37, "RLA", ZeroPageX, 6, opRLA)
	set(0x3B, "RLA", AbsoluteY, 7, opRLA)
	set(0x3F, "RLA", AbsoluteX, 7, opRLA)

	set(0x43, "SRE", IndexedIndirect, 8, opSRE)
	set(0x47, "SRE", ZeroPage, 5, opSRE)
	set(0x4F, "SRE", Absolute, 6, opSRE)
	set(0x53, "SRE", IndirectIndexed, 8, opSRE)
	set(0x57, "SRE", ZeroPageX, 6, opSRE)
	set(0x5B, "SRE", AbsoluteY, 7, opSRE)
	set(0x5F, "SRE", AbsoluteX, 7, opSRE)

	set(0x63, "RRA", IndexedIndirect, 8, opRRA)
	set(0x67, "RRA", ZeroPage, 5, opRRA)
	set(0x6F, "RRA", Absolute, 6, opRRA)
	set(0x73, "RRA", IndirectIndexed, 8, opRRA)
	set(0x77, "RRA", ZeroPageX, 6, opRRA)
	set(0x7B, "RRA", AbsoluteY, 7, opRRA)
	set(0x7F, "RRA", AbsoluteX, 7, opRRA)

	set(0x83, "SAX", IndexedIndirect, 6, opSAX)
	set(0x87, "SAX", ZeroPage, 3, opSAX)
	set(0x8F, "SAX", Absolute, 4, opSAX)
	set(0x97, "SAX", ZeroPageY, 4, opSAX)

	set(0xA3, "LAX", IndexedIndirect, 6, opLAX)
	set(0xA7, "LAX", ZeroPage, 3, opLAX)
	set(0xAF, "LAX", Absolute, 4, opLAX)
	set(0xB3, "LAX", IndirectIndexed, 5, opLAX)
	set(0xB7, "LAX", ZeroPageY, 4, opLAX)
	set(0xBF, "LAX", AbsoluteY, 4, opLAX)

	set(0xC3, "DCP", IndexedIndirect, 8, opDCP)
	set(0xC7, "DCP", ZeroPage, 5, opDCP)
	set(0xCF, "DCP", Absolute, 6, opDCP)
	set(0xD3, "DCP", IndirectIndexed, 8, opDCP)
	set(0xD7, "DCP", ZeroPageX, 6, opDCP)
	set(0xDB, "DCP", AbsoluteY, 7, opDCP)
	set(0xDF, "DCP", AbsoluteX, 7, opDCP)

	set(0xE3, "ISC", IndexedIndirect, 8, opISC)
	set(0xE7, "ISC", ZeroPage, 5, opISC)
	set(0xEF, "ISC", Absolute, 6, opISC)
	set(0xF3, "ISC", IndirectIndexed, 8, opISC)
	set(0xF7, "ISC", ZeroPageX, 6, opISC)
	set(0xFB, "ISC", AbsoluteY, 7, opISC)
	set(0xFF, "ISC", AbsoluteX, 7, opISC)

	// Unofficial immediate-operand combos
	set(0x0B, "ANC", Immediate, 2, opANC)
	set(0x2B, "ANC", Immediate, 2, opANC)
	set(0x4B, "ALR", Immediate, 2, opALR)
	set(0x6B, "ARR", Immediate, 2, opARR)
	set(0xCB, "AXS", Immediate, 2, opAXS)

	// Highly unstable store combos, implemented per their commonly
	// documented behavior; exact sub-opcode memory ordering is not
	// modeled.
	set(0x9C, "SHY", AbsoluteX, 5, opSHY)
	set(0x9E, "SHX", AbsoluteY, 5, opSHX)
	set(0x9F, "SHA", AbsoluteY, 5, opSHA)
	set(0x93, "SHA", IndirectIndexed, 6, opSHA)
	set(0x9B, "TAS", AbsoluteY, 5, opTAS)
	set(0xBB, "LAS", AbsoluteY, 4, opLAS)
	set(0xAB, "LXA", Immediate, 2, opLXA)
	set(0x8B, "XAA", Immediate, 2, opXAA)

	// JAM: stalls the CPU without terminating the emulator.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, "JAM", Implicit, 2, opJAM)
	}
}

func opLDA(c *CPU, addr uint16, mode AddressingMode) { c.A = c.read(addr, mode); c.setZN(c.A) }
func opLDX(c *CPU, addr uint16, mode AddressingMode) { c.X = c.read(addr, mode); c.setZN(c.X) }
func opLDY(c *CPU, addr uint16, mode AddressingMode) { c.Y = c.read(addr, mode); c.setZN(c.Y) }
func opSTA(c *CPU, addr uint16, mode AddressingMode) { c.write(addr, mode, c.A) }
func opSTX(c *CPU, addr uint16, mode AddressingMode) { c.write(addr, mode, c.X) }
func opSTY(c *CPU, addr uint16, mode AddressingMode) { c.write(addr, mode, c.Y) }

func opTAX(c *CPU, _ uint16, _ AddressingMode) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, _ uint16, _ AddressingMode) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU, _ uint16, _ AddressingMode) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU, _ uint16, _ AddressingMode) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, _ uint16, _ AddressingMode) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *CPU, _ uint16, _ AddressingMode) { c.SP = c.X }

func opPHA(c *CPU, _ uint16, _ AddressingMode) { c.push8(c.A) }
func opPHP(c *CPU, _ uint16, _ AddressingMode) { c.push8(c.statusByte() | 0x10) }
func opPLA(c *CPU, _ uint16, _ AddressingMode) { c.A = c.pull8(); c.setZN(c.A) }
func opPLP(c *CPU, _ uint16, _ AddressingMode) {
	p := c.pull8()
	c.setStatusByte(p)
}

func addWithCarry(c *CPU, operand uint8) {
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(operand) + carry
	result := uint8(sum)
	c.V = (c.A^result)&(operand^result)&0x80 != 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

func opADC(c *CPU, addr uint16, mode AddressingMode) { addWithCarry(c, c.read(addr, mode)) }
func opSBC(c *CPU, addr uint16, mode AddressingMode) { addWithCarry(c, ^c.read(addr, mode)) }

func opAND(c *CPU, addr uint16, mode AddressingMode) { c.A &= c.read(addr, mode); c.setZN(c.A) }
func opORA(c *CPU, addr uint16, mode AddressingMode) { c.A |= c.read(addr, mode); c.setZN(c.A) }
func opEOR(c *CPU, addr uint16, mode AddressingMode) { c.A ^= c.read(addr, mode); c.setZN(c.A) }

func opASL(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	c.C = v&0x80 != 0
	v <<= 1
	c.write(addr, mode, v)
	c.setZN(v)
}

func opLSR(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	c.C = v&0x01 != 0
	v >>= 1
	c.write(addr, mode, v)
	c.setZN(v)
}

func opROL(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	oldC := c.C
	c.C = v&0x80 != 0
	v <<= 1
	if oldC {
		v |= 0x01
	}
	c.write(addr, mode, v)
	c.setZN(v)
}

func opROR(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	oldC := c.C
	c.C = v&0x01 != 0
	v >>= 1
	if oldC {
		v |= 0x80
	}
	c.write(addr, mode, v)
	c.setZN(v)
}

func opINC(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode) + 1
	c.write(addr, mode, v)
	c.setZN(v)
}
func opDEC(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode) - 1
	c.write(addr, mode, v)
	c.setZN(v)
}
func opINX(c *CPU, _ uint16, _ AddressingMode) { c.X++; c.setZN(c.X) }
func opINY(c *CPU, _ uint16, _ AddressingMode) { c.Y++; c.setZN(c.Y) }
func opDEX(c *CPU, _ uint16, _ AddressingMode) { c.X--; c.setZN(c.X) }
func opDEY(c *CPU, _ uint16, _ AddressingMode) { c.Y--; c.setZN(c.Y) }

func compare(c *CPU, reg, operand uint8) {
	result := reg - operand
	c.C = reg >= operand
	c.setZN(result)
}

func opCMP(c *CPU, addr uint16, mode AddressingMode) { compare(c, c.A, c.read(addr, mode)) }
func opCPX(c *CPU, addr uint16, mode AddressingMode) { compare(c, c.X, c.read(addr, mode)) }
func opCPY(c *CPU, addr uint16, mode AddressingMode) { compare(c, c.Y, c.read(addr, mode)) }

func opBIT(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	c.Z = (c.A & v) == 0
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
}

func opJMP(c *CPU, addr uint16, _ AddressingMode) { c.PC = addr }
func opJSR(c *CPU, addr uint16, _ AddressingMode) {
	c.push16(c.PC - 1)
	c.PC = addr
}
func opRTS(c *CPU, _ uint16, _ AddressingMode) { c.PC = c.pull16() + 1 }
func opRTI(c *CPU, _ uint16, _ AddressingMode) {
	c.setStatusByte(c.pull8())
	c.PC = c.pull16()
}
func opBRK(c *CPU, _ uint16, _ AddressingMode) {
	c.PC++ // padding byte
	c.serviceInterrupt(0xFFFE, true)
}

func opBCC(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, !c.C) }
func opBCS(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, c.C) }
func opBEQ(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, c.Z) }
func opBNE(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, !c.Z) }
func opBMI(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, c.N) }
func opBPL(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, !c.N) }
func opBVC(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, !c.V) }
func opBVS(c *CPU, addr uint16, _ AddressingMode) { c.branch(addr, c.V) }

func opCLC(c *CPU, _ uint16, _ AddressingMode) { c.C = false }
func opSEC(c *CPU, _ uint16, _ AddressingMode) { c.C = true }
func opCLI(c *CPU, _ uint16, _ AddressingMode) { c.I = false }
func opSEI(c *CPU, _ uint16, _ AddressingMode) { c.I = true }
func opCLV(c *CPU, _ uint16, _ AddressingMode) { c.V = false }
func opCLD(c *CPU, _ uint16, _ AddressingMode) { c.D = false }
func opSED(c *CPU, _ uint16, _ AddressingMode) { c.D = true }

func opNOP(c *CPU, addr uint16, mode AddressingMode) {
	if mode != Implicit {
		c.read(addr, mode) // unofficial NOPs still perform the bus read
	}
}

func opSLO(c *CPU, addr uint16, mode AddressingMode) {
	opASL(c, addr, mode)
	c.A |= c.read(addr, mode)
	c.setZN(c.A)
}
func opRLA(c *CPU, addr uint16, mode AddressingMode) {
	opROL(c, addr, mode)
	c.A &= c.read(addr, mode)
	c.setZN(c.A)
}
func opSRE(c *CPU, addr uint16, mode AddressingMode) {
	opLSR(c, addr, mode)
	c.A ^= c.read(addr, mode)
	c.setZN(c.A)
}
func opRRA(c *CPU, addr uint16, mode AddressingMode) {
	opROR(c, addr, mode)
	addWithCarry(c, c.read(addr, mode))
}
func opSAX(c *CPU, addr uint16, mode AddressingMode) { c.write(addr, mode, c.A&c.X) }
func opLAX(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	c.A, c.X = v, v
	c.setZN(v)
}
func opDCP(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode) - 1
	c.write(addr, mode, v)
	compare(c, c.A, v)
}
func opISC(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode) + 1
	c.write(addr, mode, v)
	addWithCarry(c, ^v)
}

func opANC(c *CPU, addr uint16, mode AddressingMode) {
	c.A &= c.read(addr, mode)
	c.setZN(c.A)
	c.C = c.N
}
func opALR(c *CPU, addr uint16, mode AddressingMode) {
	c.A &= c.read(addr, mode)
	c.C = c.A&0x01 != 0
	c.A >>= 1
	c.setZN(c.A)
}
func opARR(c *CPU, addr uint16, mode AddressingMode) {
	c.A &= c.read(addr, mode)
	v := c.A
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	v = (v >> 1) | carryIn
	c.A = v
	c.setZN(c.A)
	c.C = v&0x40 != 0
	c.V = (v&0x40 != 0) != (v&0x20 != 0)
}
func opAXS(c *CPU, addr uint16, mode AddressingMode) {
	operand := c.read(addr, mode)
	v := c.A & c.X
	c.C = v >= operand
	c.X = v - operand
	c.setZN(c.X)
}

func opSHY(c *CPU, addr uint16, mode AddressingMode) {
	v := c.Y & uint8(addr>>8+1)
	c.write(addr, mode, v)
}
func opSHX(c *CPU, addr uint16, mode AddressingMode) {
	v := c.X & uint8(addr>>8+1)
	c.write(addr, mode, v)
}
func opSHA(c *CPU, addr uint16, mode AddressingMode) {
	v := c.A & c.X & uint8(addr>>8+1)
	c.write(addr, mode, v)
}
func opTAS(c *CPU, addr uint16, mode AddressingMode) {
	c.SP = c.A & c.X
	v := c.SP & uint8(addr>>8+1)
	c.write(addr, mode, v)
}
func opLAS(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode) & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setZN(v)
}
func opLXA(c *CPU, addr uint16, mode AddressingMode) {
	v := c.read(addr, mode)
	c.A, c.X = v, v
	c.setZN(v)
}
func opXAA(c *CPU, addr uint16, mode AddressingMode) {
	c.A = c.X & c.read(addr, mode)
	c.setZN(c.A)
}

func opJAM(c *CPU, _ uint16, _ AddressingMode) {
	c.PC--
	c.warnJAM(c.mem.Read(c.PC))
}
