// cpu_table.go - populates the 256-entry opcode dispatch table
//
// Mirrors the teacher's CPU_Z80.baseOps pattern: each slot is assigned a
// method value directly, so dispatch is a single slice index with no
// switch statement on the hot path. Bit-numbered and TCALL-numbered
// opcodes are assigned closures since the operand is encoded in the
// opcode byte itself rather than fetched.
package main

func (c *CPU) initOps() {
	ops := &c.ops

	ops[0x00] = (*CPU).opNOP
	ops[0x01] = tcallHandler(0)
	ops[0x02] = set1Handler(0)
	ops[0x03] = bbsHandler(0)
	ops[0x04] = (*CPU).opORDp
	ops[0x05] = (*CPU).opORAbs
	ops[0x06] = (*CPU).opORIndX
	ops[0x07] = (*CPU).opORIndexedIndirect
	ops[0x08] = (*CPU).opORImm
	ops[0x09] = (*CPU).opORDpDp
	ops[0x0A] = (*CPU).opOR1
	ops[0x0B] = (*CPU).opASLDp
	ops[0x0C] = (*CPU).opASLAbs
	ops[0x0D] = (*CPU).opPUSHPSW
	ops[0x0E] = (*CPU).opTSET1
	ops[0x0F] = (*CPU).opBRK

	ops[0x10] = (*CPU).opBPL
	ops[0x11] = tcallHandler(1)
	ops[0x12] = clr1Handler(0)
	ops[0x13] = bbcHandler(0)
	ops[0x14] = (*CPU).opORDpX
	ops[0x15] = (*CPU).opORAbsX
	ops[0x16] = (*CPU).opORAbsY
	ops[0x17] = (*CPU).opORIndirectIndexed
	ops[0x18] = (*CPU).opORDpImm
	ops[0x19] = (*CPU).opORIndInd
	ops[0x1A] = (*CPU).opDECW
	ops[0x1B] = (*CPU).opASLDpX
	ops[0x1C] = (*CPU).opASLA
	ops[0x1D] = (*CPU).opDECX
	ops[0x1E] = (*CPU).opCMPXAbs
	ops[0x1F] = (*CPU).opJMPIndexedIndirect

	ops[0x20] = (*CPU).opCLRP
	ops[0x21] = tcallHandler(2)
	ops[0x22] = set1Handler(1)
	ops[0x23] = bbsHandler(1)
	ops[0x24] = (*CPU).opANDDp
	ops[0x25] = (*CPU).opANDAbs
	ops[0x26] = (*CPU).opANDIndX
	ops[0x27] = (*CPU).opANDIndexedIndirect
	ops[0x28] = (*CPU).opANDImm
	ops[0x29] = (*CPU).opANDDpDp
	ops[0x2A] = (*CPU).opOR1Inv
	ops[0x2B] = (*CPU).opROLDp
	ops[0x2C] = (*CPU).opROLAbs
	ops[0x2D] = (*CPU).opPUSHA
	ops[0x2E] = (*CPU).opCBNEDp
	ops[0x2F] = (*CPU).opBRA

	ops[0x30] = (*CPU).opBMI
	ops[0x31] = tcallHandler(3)
	ops[0x32] = clr1Handler(1)
	ops[0x33] = bbcHandler(1)
	ops[0x34] = (*CPU).opANDDpX
	ops[0x35] = (*CPU).opANDAbsX
	ops[0x36] = (*CPU).opANDAbsY
	ops[0x37] = (*CPU).opANDIndirectIndexed
	ops[0x38] = (*CPU).opANDDpImm
	ops[0x39] = (*CPU).opANDIndInd
	ops[0x3A] = (*CPU).opINCW
	ops[0x3B] = (*CPU).opROLDpX
	ops[0x3C] = (*CPU).opROLA
	ops[0x3D] = (*CPU).opINCX
	ops[0x3E] = (*CPU).opCMPXDp
	ops[0x3F] = (*CPU).opCALL

	ops[0x40] = (*CPU).opSETP
	ops[0x41] = tcallHandler(4)
	ops[0x42] = set1Handler(2)
	ops[0x43] = bbsHandler(2)
	ops[0x44] = (*CPU).opEORDp
	ops[0x45] = (*CPU).opEORAbs
	ops[0x46] = (*CPU).opEORIndX
	ops[0x47] = (*CPU).opEORIndexedIndirect
	ops[0x48] = (*CPU).opEORImm
	ops[0x49] = (*CPU).opEORDpDp
	ops[0x4A] = (*CPU).opAND1
	ops[0x4B] = (*CPU).opLSRDp
	ops[0x4C] = (*CPU).opLSRAbs
	ops[0x4D] = (*CPU).opPUSHX
	ops[0x4E] = (*CPU).opTCLR1
	ops[0x4F] = (*CPU).opPCALL

	ops[0x50] = (*CPU).opBVC
	ops[0x51] = tcallHandler(5)
	ops[0x52] = clr1Handler(2)
	ops[0x53] = bbcHandler(2)
	ops[0x54] = (*CPU).opEORDpX
	ops[0x55] = (*CPU).opEORAbsX
	ops[0x56] = (*CPU).opEORAbsY
	ops[0x57] = (*CPU).opEORIndirectIndexed
	ops[0x58] = (*CPU).opEORDpImm
	ops[0x59] = (*CPU).opEORIndInd
	ops[0x5A] = (*CPU).opCMPW
	ops[0x5B] = (*CPU).opLSRDpX
	ops[0x5C] = (*CPU).opLSRA
	ops[0x5D] = (*CPU).opMOVXA
	ops[0x5E] = (*CPU).opCMPYAbs
	ops[0x5F] = (*CPU).opJMPAbs

	ops[0x60] = (*CPU).opCLRC
	ops[0x61] = tcallHandler(6)
	ops[0x62] = set1Handler(3)
	ops[0x63] = bbsHandler(3)
	ops[0x64] = (*CPU).opCMPDp
	ops[0x65] = (*CPU).opCMPAbs
	ops[0x66] = (*CPU).opCMPIndX
	ops[0x67] = (*CPU).opCMPIndexedIndirect
	ops[0x68] = (*CPU).opCMPImm
	ops[0x69] = (*CPU).opCMPDpDp
	ops[0x6A] = (*CPU).opAND1Inv
	ops[0x6B] = (*CPU).opRORDp
	ops[0x6C] = (*CPU).opRORAbs
	ops[0x6D] = (*CPU).opPUSHY
	ops[0x6E] = (*CPU).opDBNZDp
	ops[0x6F] = (*CPU).opRET

	ops[0x70] = (*CPU).opBVS
	ops[0x71] = tcallHandler(7)
	ops[0x72] = clr1Handler(3)
	ops[0x73] = bbcHandler(3)
	ops[0x74] = (*CPU).opCMPDpX
	ops[0x75] = (*CPU).opCMPAbsX
	ops[0x76] = (*CPU).opCMPAbsY
	ops[0x77] = (*CPU).opCMPIndirectIndexed
	ops[0x78] = (*CPU).opCMPDpImm
	ops[0x79] = (*CPU).opCMPIndInd
	ops[0x7A] = (*CPU).opADDW
	ops[0x7B] = (*CPU).opRORDpX
	ops[0x7C] = (*CPU).opRORA
	ops[0x7D] = (*CPU).opMOVAX
	ops[0x7E] = (*CPU).opCMPYDp
	ops[0x7F] = (*CPU).opRETI

	ops[0x80] = (*CPU).opSETC
	ops[0x81] = tcallHandler(8)
	ops[0x82] = set1Handler(4)
	ops[0x83] = bbsHandler(4)
	ops[0x84] = (*CPU).opADCDp
	ops[0x85] = (*CPU).opADCAbs
	ops[0x86] = (*CPU).opADCIndX
	ops[0x87] = (*CPU).opADCIndexedIndirect
	ops[0x88] = (*CPU).opADCImm
	ops[0x89] = (*CPU).opADCDpDp
	ops[0x8A] = (*CPU).opEOR1
	ops[0x8B] = (*CPU).opDECDp
	ops[0x8C] = (*CPU).opDECAbs
	ops[0x8D] = (*CPU).opMOVYImm
	ops[0x8E] = (*CPU).opPOPPSW
	ops[0x8F] = (*CPU).opMOVDpImm

	ops[0x90] = (*CPU).opBCC
	ops[0x91] = tcallHandler(9)
	ops[0x92] = clr1Handler(4)
	ops[0x93] = bbcHandler(4)
	ops[0x94] = (*CPU).opADCDpX
	ops[0x95] = (*CPU).opADCAbsX
	ops[0x96] = (*CPU).opADCAbsY
	ops[0x97] = (*CPU).opADCIndirectIndexed
	ops[0x98] = (*CPU).opADCDpImm
	ops[0x99] = (*CPU).opADCIndInd
	ops[0x9A] = (*CPU).opSUBW
	ops[0x9B] = (*CPU).opDECDpX
	ops[0x9C] = (*CPU).opDECA
	ops[0x9D] = (*CPU).opMOVXSP
	ops[0x9E] = (*CPU).opDIV
	ops[0x9F] = (*CPU).opXCN

	ops[0xA0] = (*CPU).opEI
	ops[0xA1] = tcallHandler(10)
	ops[0xA2] = set1Handler(5)
	ops[0xA3] = bbsHandler(5)
	ops[0xA4] = (*CPU).opSBCDp
	ops[0xA5] = (*CPU).opSBCAbs
	ops[0xA6] = (*CPU).opSBCIndX
	ops[0xA7] = (*CPU).opSBCIndexedIndirect
	ops[0xA8] = (*CPU).opSBCImm
	ops[0xA9] = (*CPU).opSBCDpDp
	ops[0xAA] = (*CPU).opMOV1CFromMem
	ops[0xAB] = (*CPU).opINCDp
	ops[0xAC] = (*CPU).opINCAbs
	ops[0xAD] = (*CPU).opCMPYImm
	ops[0xAE] = (*CPU).opPOPA
	ops[0xAF] = (*CPU).opMOVIndXAutoincA

	ops[0xB0] = (*CPU).opBCS
	ops[0xB1] = tcallHandler(11)
	ops[0xB2] = clr1Handler(5)
	ops[0xB3] = bbcHandler(5)
	ops[0xB4] = (*CPU).opSBCDpX
	ops[0xB5] = (*CPU).opSBCAbsX
	ops[0xB6] = (*CPU).opSBCAbsY
	ops[0xB7] = (*CPU).opSBCIndirectIndexed
	ops[0xB8] = (*CPU).opSBCDpImm
	ops[0xB9] = (*CPU).opSBCIndInd
	ops[0xBA] = (*CPU).opMOVWLoad
	ops[0xBB] = (*CPU).opINCDpX
	ops[0xBC] = (*CPU).opINCA
	ops[0xBD] = (*CPU).opMOVSPX
	ops[0xBE] = (*CPU).opDAS
	ops[0xBF] = (*CPU).opMOVAIndXAutoinc

	ops[0xC0] = (*CPU).opDI
	ops[0xC1] = tcallHandler(12)
	ops[0xC2] = set1Handler(6)
	ops[0xC3] = bbsHandler(6)
	ops[0xC4] = (*CPU).opMOVDpA
	ops[0xC5] = (*CPU).opMOVAbsA
	ops[0xC6] = (*CPU).opMOVIndXA
	ops[0xC7] = (*CPU).opMOVIndexedIndirectA
	ops[0xC8] = (*CPU).opCMPXImm
	ops[0xC9] = (*CPU).opMOVAbsX
	ops[0xCA] = (*CPU).opMOV1MemFromC
	ops[0xCB] = (*CPU).opMOVDpY
	ops[0xCC] = (*CPU).opMOVAbsY
	ops[0xCD] = (*CPU).opMOVXImm
	ops[0xCE] = (*CPU).opPOPX
	ops[0xCF] = (*CPU).opMUL

	ops[0xD0] = (*CPU).opBNE
	ops[0xD1] = tcallHandler(13)
	ops[0xD2] = clr1Handler(6)
	ops[0xD3] = bbcHandler(6)
	ops[0xD4] = (*CPU).opMOVDpXA
	ops[0xD5] = (*CPU).opMOVAbsXA
	ops[0xD6] = (*CPU).opMOVAbsYA
	ops[0xD7] = (*CPU).opMOVIndirectIndexedA
	ops[0xD8] = (*CPU).opMOVDpX
	ops[0xD9] = (*CPU).opMOVDpYX
	ops[0xDA] = (*CPU).opMOVWStore
	ops[0xDB] = (*CPU).opMOVDpXY
	ops[0xDC] = (*CPU).opDECY
	ops[0xDD] = (*CPU).opMOVAY
	ops[0xDE] = (*CPU).opCBNEDpX
	ops[0xDF] = (*CPU).opDAA

	ops[0xE0] = (*CPU).opCLRV
	ops[0xE1] = tcallHandler(14)
	ops[0xE2] = set1Handler(7)
	ops[0xE3] = bbsHandler(7)
	ops[0xE4] = (*CPU).opMOVADp
	ops[0xE5] = (*CPU).opMOVAAbs
	ops[0xE6] = (*CPU).opMOVAIndX
	ops[0xE7] = (*CPU).opMOVAIndexedIndirect
	ops[0xE8] = (*CPU).opMOVAImm
	ops[0xE9] = (*CPU).opMOVXAbs
	ops[0xEA] = (*CPU).opNOT1
	ops[0xEB] = (*CPU).opMOVYDp
	ops[0xEC] = (*CPU).opMOVYAbs
	ops[0xED] = (*CPU).opNOTC
	ops[0xEE] = (*CPU).opPOPY
	ops[0xEF] = (*CPU).opSLEEP

	ops[0xF0] = (*CPU).opBEQ
	ops[0xF1] = tcallHandler(15)
	ops[0xF2] = clr1Handler(7)
	ops[0xF3] = bbcHandler(7)
	ops[0xF4] = (*CPU).opMOVADpX
	ops[0xF5] = (*CPU).opMOVAAbsX
	ops[0xF6] = (*CPU).opMOVAAbsY
	ops[0xF7] = (*CPU).opMOVAIndirectIndexed
	ops[0xF8] = (*CPU).opMOVXDp
	ops[0xF9] = (*CPU).opMOVXDpY
	ops[0xFA] = (*CPU).opMOVDpDp
	ops[0xFB] = (*CPU).opMOVYDpX
	ops[0xFC] = (*CPU).opINCY
	ops[0xFD] = (*CPU).opMOVYA
	ops[0xFE] = (*CPU).opDBNZY
	ops[0xFF] = (*CPU).opSTOP
}

func tcallHandler(n uint8) func(*CPU) {
	return func(c *CPU) { c.tcall(n) }
}

func set1Handler(bit uint8) func(*CPU) {
	return func(c *CPU) { c.set1(bit) }
}

func clr1Handler(bit uint8) func(*CPU) {
	return func(c *CPU) { c.clr1(bit) }
}

func bbsHandler(bit uint8) func(*CPU) {
	return func(c *CPU) { c.bbs(bit) }
}

func bbcHandler(bit uint8) func(*CPU) {
	return func(c *CPU) { c.bbc(bit) }
}
