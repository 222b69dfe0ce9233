// cpu_addressing.go - the ten effective-address resolvers for the
// SPC700's memory addressing modes. Each resolver consumes however many
// operand bytes that mode requires and returns the final bus address;
// callers read/write through c.bus themselves.
package main

// addrDP resolves a one-byte direct-page operand: dp + page base.
func (c *CPU) addrDP() uint16 {
	d := c.fetchByte()
	return DirectPage(d, c.dpBase())
}

// addrDPX resolves dp+X, still within the direct page (8-bit wraparound of
// the dp+X sum, per hardware behaviour).
func (c *CPU) addrDPX() uint16 {
	d := c.fetchByte()
	return DirectPage(d+c.X, c.dpBase())
}

// addrDPY resolves dp+Y, used by a handful of load/store forms.
func (c *CPU) addrDPY() uint16 {
	d := c.fetchByte()
	return DirectPage(d+c.Y, c.dpBase())
}

// addrAbs resolves a two-byte absolute address.
func (c *CPU) addrAbs() uint16 {
	return c.fetchWord()
}

func (c *CPU) addrAbsX() uint16 {
	return c.fetchWord() + uint16(c.X)
}

func (c *CPU) addrAbsY() uint16 {
	return c.fetchWord() + uint16(c.Y)
}

// addrIndX resolves (X): the direct-page location X itself points into, no
// operand byte is consumed.
func (c *CPU) addrIndX() uint16 {
	return DirectPage(c.X, c.dpBase())
}

func (c *CPU) addrIndY() uint16 {
	return DirectPage(c.Y, c.dpBase())
}

// addrIndexedIndirect resolves [d+X]: a direct-page word pointer selected
// by dp+X, dereferenced to get the final 16-bit address.
func (c *CPU) addrIndexedIndirect() uint16 {
	d := c.fetchByte()
	ptr := DirectPage(d+c.X, c.dpBase())
	return c.bus.ReadWord(ptr)
}

// addrIndirectIndexed resolves [d]+Y: a direct-page word pointer at dp,
// dereferenced, then offset by Y. The +Y can carry outside the direct page.
func (c *CPU) addrIndirectIndexed() uint16 {
	d := c.fetchByte()
	ptr := DirectPage(d, c.dpBase())
	return c.bus.ReadWord(ptr) + uint16(c.Y)
}
