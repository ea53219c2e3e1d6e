/*
 * rvtrans - Compressed instruction expansion
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package translate

import (
	"github.com/bbradley/rvtrans/internal/bitfield"
	"github.com/bbradley/rvtrans/internal/ir"
)

// decodeCompressed routes a 16-bit compressed opcode to quadrant ×
// funct3 tables, expanding each form by calling the same translator
// its 32-bit equivalent uses -- e.g. C.ADDI4SPN becomes
// GenArithImm(AluAdd, rd', x2, imm, false). The match is total by
// construction: every arm that is not a defined compressed encoding
// falls to illegalInstruction, with no catch-all default that could
// hide a missing case.
func (c *Context) decodeCompressed(ci uint16) {
	if ci == 0 {
		// The all-zero 16-bit opcode is always illegal.
		c.illegalInstruction()
		return
	}

	switch bitfield.Quadrant(ci) {
	case 0:
		c.decodeC0(ci)
	case 1:
		c.decodeC1(ci)
	case 2:
		c.decodeC2(ci)
	}
}

// decodeC0 handles quadrant 0: register-compressed loads, stores, and
// the stack-pointer-relative ADDI4SPN form, all operating on the
// biased x8..x15 register window. In the CL/CS formats the base
// register sits at bits[9:7] (CRd2) and the load destination / store
// source sits at bits[4:2] (CRs22) -- opposite of what their names
// suggest, since both fields are shared with other compressed formats
// where the roles differ.
func (c *Context) decodeC0(ci uint16) {
	rdAddi4spn := bitfield.CRs22(ci)
	base := bitfield.CRd2(ci)
	other := bitfield.CRs22(ci)

	switch bitfield.CFunct3(ci) {
	case 0b000: // C.ADDI4SPN
		imm := int32(bitfield.ImmCIW(ci))
		if imm == 0 {
			// Reserved: imm=0 encodes nothing useful (would be a no-op
			// ADDI), so the compressed form reserves it as illegal.
			c.illegalInstruction()
			return
		}
		c.GenArithImm(AluAdd, rdAddi4spn, 2, imm, false)
	case 0b001: // C.FLD
		if !c.HasExt(extDBit) {
			c.illegalInstruction()
			return
		}
		imm := int32(bitfield.ImmCL(ci, 8))
		c.GenFPLoad(other, base, imm, ir.F64)
	case 0b010: // C.LW
		imm := int32(bitfield.ImmCL(ci, 4))
		c.GenLoad(other /* rd' */, base /* rs1' */, imm, ir.Mem32, ir.Signed)
	case 0b011: // C.LD on RV64, C.FLW on RV32
		if c.XLen == 32 {
			if !c.HasExt(extFBit) {
				c.illegalInstruction()
				return
			}
			c.GenFPLoad(other, base, int32(bitfield.ImmCL(ci, 4)), ir.F32)
			return
		}
		imm := int32(bitfield.ImmCL(ci, 8))
		c.GenLoad(other, base, imm, ir.Mem64, ir.Signed)
	case 0b101: // C.FSD
		if !c.HasExt(extDBit) {
			c.illegalInstruction()
			return
		}
		imm := int32(bitfield.ImmCL(ci, 8))
		c.GenFPStore(base, other, imm, ir.F64)
	case 0b110: // C.SW
		imm := int32(bitfield.ImmCL(ci, 4))
		c.GenStore(base /* rs1' */, other /* rs2' */, imm, ir.Mem32)
	case 0b111: // C.SD on RV64, C.FSW on RV32
		if c.XLen == 32 {
			if !c.HasExt(extFBit) {
				c.illegalInstruction()
				return
			}
			c.GenFPStore(base, other, int32(bitfield.ImmCL(ci, 4)), ir.F32)
			return
		}
		imm := int32(bitfield.ImmCL(ci, 8))
		c.GenStore(base, other, imm, ir.Mem64)
	case 0b100:
		// funct3 100 is reserved.
		c.illegalInstruction()
	}
}

// decodeC1 handles quadrant 1: compressed ALU-immediate, control-flow,
// and the C1/funct3=100 miscellaneous-ALU subtable (C.SUB/XOR/OR/AND
// and the W-forms), dispatched by CFunct2Hi/CFunct2Lo.
func (c *Context) decodeC1(ci uint16) {
	rd := bitfield.CRd(ci)

	switch bitfield.CFunct3(ci) {
	case 0b000: // C.ADDI (rd=0 is C.NOP, still a valid ADDI x0,x0,imm)
		imm := bitfield.ImmCI(ci)
		c.GenArithImm(AluAdd, rd, rd, imm, false)
	case 0b001: // C.ADDIW on RV64 (rd=0 reserved), C.JAL on RV32
		if c.XLen == 32 {
			c.GenJal(1, bitfield.ImmCJ(ci), true)
			return
		}
		if rd == 0 {
			c.illegalInstruction()
			return
		}
		imm := bitfield.ImmCI(ci)
		c.GenArithImm(AluAdd, rd, rd, imm, true)
	case 0b010: // C.LI (rd=0 reserved as a hint elsewhere; accepted here as ADDI x0,x0,imm)
		imm := bitfield.ImmCI(ci)
		c.GenArithImm(AluAdd, rd, 0, imm, false)
	case 0b011:
		c.decodeC1_011(ci, rd)
	case 0b100:
		c.decodeC1_100(ci)
	case 0b101: // C.J
		imm := bitfield.ImmCJ(ci)
		c.GenJal(0, imm, true)
	case 0b110: // C.BEQZ
		imm := bitfield.ImmCB(ci)
		c.GenBranch(ir.CondEQ, bitfield.CRd2(ci), 0, imm, true)
	case 0b111: // C.BNEZ
		imm := bitfield.ImmCB(ci)
		c.GenBranch(ir.CondNE, bitfield.CRd2(ci), 0, imm, true)
	}
}

// decodeC1_011 is C1/funct3=011: C.ADDI16SP when rd==2, C.LUI
// otherwise (rd=0 or the zero-immediate encoding are both reserved).
func (c *Context) decodeC1_011(ci uint16, rd uint32) {
	if rd == 2 {
		hi := bitfield.Extract(uint32(ci), 12, 1)
		b5 := bitfield.Extract(uint32(ci), 2, 1)
		b87 := bitfield.Extract(uint32(ci), 3, 2)
		b6 := bitfield.Extract(uint32(ci), 5, 1)
		b4 := bitfield.Extract(uint32(ci), 6, 1)
		raw := (hi << 9) | (b87 << 7) | (b6 << 6) | (b4 << 4) | (b5 << 5)
		imm := bitfield.SignExtract(raw, 0, 10)
		if imm == 0 {
			c.illegalInstruction()
			return
		}
		c.GenArithImm(AluAdd, 2, 2, imm, false)
		return
	}
	if rd == 0 {
		c.illegalInstruction()
		return
	}
	imm := bitfield.ImmCI(ci)
	if imm == 0 {
		c.illegalInstruction()
		return
	}
	// C.LUI rd, imm: the CI-format immediate is already in bits [17:12]
	// position for a LUI-equivalent value once shifted.
	c.genLoadUpperImm(rd, imm<<12)
}

// decodeC1_100 is the C1/funct3=100 miscellaneous-ALU subtable:
// C.SRLI/C.SRAI/C.ANDI (CFunct2Hi values 0b00, 0b01, 0b10)
// and, when bits[11:10]==0b11, the C.SUB/XOR/OR/AND/SUBW/ADDW family
// selected by CFunct2Lo.
func (c *Context) decodeC1_100(ci uint16) {
	rdPrime := bitfield.CRd2(ci)
	hi2 := bitfield.CFunct2Hi(ci)

	switch hi2 {
	case 0b00: // C.SRLI
		shamt := int32(bitfield.ImmCBShamt(ci))
		if c.XLen == 32 && shamt >= 32 {
			c.illegalInstruction()
			return
		}
		c.GenArithImm(AluSrl, rdPrime, rdPrime, shamt, false)
	case 0b01: // C.SRAI
		shamt := int32(bitfield.ImmCBShamt(ci))
		if c.XLen == 32 && shamt >= 32 {
			c.illegalInstruction()
			return
		}
		c.GenArithImm(AluSra, rdPrime, rdPrime, shamt, false)
	case 0b10: // C.ANDI
		imm := bitfield.ImmCBAndi(ci)
		c.GenArithImm(AluAnd, rdPrime, rdPrime, imm, false)
	case 0b11:
		rs2Prime := bitfield.CRs22(ci)
		wForm := bitfield.Extract(uint32(ci), 12, 1) != 0
		if wForm && c.XLen == 32 {
			// C.SUBW/C.ADDW are RV64-only; the whole bit-12 row of this
			// subtable is reserved on RV32.
			c.illegalInstruction()
			return
		}
		switch bitfield.CFunct2Lo(ci) {
		case 0b00:
			c.GenArith(AluSub, rdPrime, rdPrime, rs2Prime, wForm)
		case 0b01:
			if wForm {
				c.GenArith(AluAdd, rdPrime, rdPrime, rs2Prime, true)
			} else {
				c.GenArith(AluXor, rdPrime, rdPrime, rs2Prime, false)
			}
		case 0b10:
			if wForm {
				c.illegalInstruction()
				return
			}
			c.GenArith(AluOr, rdPrime, rdPrime, rs2Prime, false)
		case 0b11:
			if wForm {
				c.illegalInstruction()
				return
			}
			c.GenArith(AluAnd, rdPrime, rdPrime, rs2Prime, false)
		}
	}
}

// decodeC2 handles quadrant 2: shift-by-register-window-free SLLI, the
// stack-pointer-relative loads/stores, and the CR-format jump/move/add
// family (C.JR/C.MV/C.EBREAK/C.JALR/C.ADD).
func (c *Context) decodeC2(ci uint16) {
	rd := bitfield.CRd(ci)
	rs2 := bitfield.CRs2(ci)

	switch bitfield.CFunct3(ci) {
	case 0b000: // C.SLLI
		if rd == 0 {
			c.illegalInstruction()
			return
		}
		shamt := int32(bitfield.ShamtCI(ci))
		if c.XLen == 32 && shamt >= 32 {
			c.illegalInstruction()
			return
		}
		c.GenArithImm(AluSll, rd, rd, shamt, false)
	case 0b001: // C.FLDSP (rd names an FP register, so rd=0 is legal)
		if !c.HasExt(extDBit) {
			c.illegalInstruction()
			return
		}
		imm := int32(bitfield.ImmCISP(ci, 8))
		c.GenFPLoad(rd, 2, imm, ir.F64)
	case 0b010: // C.LWSP
		if rd == 0 {
			c.illegalInstruction()
			return
		}
		imm := int32(bitfield.ImmCISP(ci, 4))
		c.GenLoad(rd, 2, imm, ir.Mem32, ir.Signed)
	case 0b011: // C.LDSP on RV64, C.FLWSP on RV32
		if c.XLen == 32 {
			if !c.HasExt(extFBit) {
				c.illegalInstruction()
				return
			}
			c.GenFPLoad(rd, 2, int32(bitfield.ImmCISP(ci, 4)), ir.F32)
			return
		}
		if rd == 0 {
			c.illegalInstruction()
			return
		}
		imm := int32(bitfield.ImmCISP(ci, 8))
		c.GenLoad(rd, 2, imm, ir.Mem64, ir.Signed)
	case 0b100:
		c.decodeC2_100(ci, rd, rs2)
	case 0b101: // C.FSDSP
		if !c.HasExt(extDBit) {
			c.illegalInstruction()
			return
		}
		imm := int32(bitfield.ImmCSS(ci, 8))
		c.GenFPStore(2, rs2, imm, ir.F64)
	case 0b110: // C.SWSP
		imm := int32(bitfield.ImmCSS(ci, 4))
		c.GenStore(2, rs2, imm, ir.Mem32)
	case 0b111: // C.SDSP on RV64, C.FSWSP on RV32
		if c.XLen == 32 {
			if !c.HasExt(extFBit) {
				c.illegalInstruction()
				return
			}
			c.GenFPStore(2, rs2, int32(bitfield.ImmCSS(ci, 4)), ir.F32)
			return
		}
		imm := int32(bitfield.ImmCSS(ci, 8))
		c.GenStore(2, rs2, imm, ir.Mem64)
	}
}

// decodeC2_100 is the CR-format subtable (funct3=100): bit 12
// distinguishes the JR/MV row (0) from the EBREAK/JALR/ADD row (1);
// rs2==0 selects the jump/no-operand forms in each row.
func (c *Context) decodeC2_100(ci uint16, rd, rs2 uint32) {
	bit12 := bitfield.Extract(uint32(ci), 12, 1) != 0

	if !bit12 {
		if rs2 == 0 {
			if rd == 0 {
				c.illegalInstruction()
				return
			}
			c.GenJalr(0, rd, 0, true) // C.JR
			return
		}
		if rd == 0 {
			c.illegalInstruction()
			return
		}
		c.GenArith(AluAdd, rd, 0, rs2, false) // C.MV: rd = x0 + rs2
		return
	}

	if rs2 == 0 {
		if rd == 0 {
			c.GenSystem(SysEBreak)
			return
		}
		c.GenJalr(1, rd, 0, true) // C.JALR
		return
	}
	if rd == 0 {
		c.illegalInstruction()
		return
	}
	c.GenArith(AluAdd, rd, rd, rs2, false) // C.ADD
}
