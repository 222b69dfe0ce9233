// cpu_flags.go - flag manipulation, XCN, DAA/DAS, NOP, interrupt-enable
// stubs, and the two halt instructions
package main

func (c *CPU) opNOP() { c.tick(2) }

func (c *CPU) opCLRC() { c.P.set(FlagC, false); c.tick(2) }
func (c *CPU) opSETC() { c.P.set(FlagC, true); c.tick(2) }
func (c *CPU) opNOTC() { c.P.set(FlagC, !c.P.get(FlagC)); c.tick(3) }

// opCLRV clears both V and H, per the chip's documented behaviour.
func (c *CPU) opCLRV() {
	c.P.set(FlagV, false)
	c.P.set(FlagH, false)
	c.tick(2)
}

func (c *CPU) opSETP() { c.P.set(FlagP, true); c.tick(2) }
func (c *CPU) opCLRP() { c.P.set(FlagP, false); c.tick(2) }

// opEI/opDI set the interrupt-enable flag. The SPC700 has no maskable
// external interrupt source wired to this emulator, so the flag is tracked
// for software that reads PSW but never gates anything.
func (c *CPU) opEI() { c.P.set(FlagI, true); c.tick(3) }
func (c *CPU) opDI() { c.P.set(FlagI, false); c.tick(3) }

// opXCN: A = (A >> 4) | (A << 4), i.e. swap nibbles.
func (c *CPU) opXCN() {
	c.A = (c.A >> 4) | (c.A << 4)
	c.P.setNZ8(c.A)
	c.tick(5)
}

// opDAA decimal-adjusts A after an addition, consulting C and H the way the
// hardware BCD correction does.
func (c *CPU) opDAA() {
	if c.P.get(FlagC) || c.A > 0x99 {
		c.A += 0x60
		c.P.set(FlagC, true)
	}
	if c.P.get(FlagH) || (c.A&0x0F) > 0x09 {
		c.A += 0x06
	}
	c.P.setNZ8(c.A)
	c.tick(3)
}

// opDAS decimal-adjusts A after a subtraction.
func (c *CPU) opDAS() {
	if !c.P.get(FlagC) || c.A > 0x99 {
		c.A -= 0x60
		c.P.set(FlagC, false)
	}
	if !c.P.get(FlagH) || (c.A&0x0F) > 0x09 {
		c.A -= 0x06
	}
	c.P.setNZ8(c.A)
	c.tick(3)
}

// opSLEEP/opSTOP both halt instruction fetch until the driver resets the
// CPU; halted is surfaced so the clock loop can stop ticking this chip
// without spinning on NOPs forever.
func (c *CPU) opSLEEP() { c.halted = true; c.tick(2) }
func (c *CPU) opSTOP()  { c.halted = true; c.tick(2) }

// opBRK pushes PC and PSW, sets break/disables interrupts, then jumps
// through the TCALL0-equivalent vector at $FFDE.
func (c *CPU) opBRK() {
	c.push16(c.PC)
	c.pushByte(c.P.bits)
	c.P.set(FlagB, true)
	c.P.set(FlagI, false)
	c.PC = c.bus.ReadWord(tcallVector(0))
	c.tick(8)
}
