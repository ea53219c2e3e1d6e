/*
 * rvtrans - Major opcode decode tables
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
	"github.com/bbradley/rvtrans/internal/helpers"
	"github.com/bbradley/rvtrans/internal/ir"
)

// majorTable is keyed by instruction[6:2] (32 entries): bits [1:0] are
// always 0b11 for a 32-bit instruction, so they carry no dispatch
// information and are dropped before indexing.
var majorTable [32]func(*Context, uint32)

func init() {
	majorTable[0x00] = (*Context).decodeLoad
	majorTable[0x01] = (*Context).decodeLoadFP
	majorTable[0x03] = (*Context).decodeMiscMem
	majorTable[0x04] = (*Context).decodeOpImm
	majorTable[0x05] = (*Context).decodeAuipc
	majorTable[0x06] = (*Context).decodeOpImm32
	majorTable[0x08] = (*Context).decodeStore
	majorTable[0x09] = (*Context).decodeStoreFP
	majorTable[0x0B] = (*Context).decodeAmo
	majorTable[0x0C] = (*Context).decodeOp
	majorTable[0x0D] = (*Context).decodeLui
	majorTable[0x0E] = (*Context).decodeOp32
	majorTable[0x10] = (*Context).decodeMadd
	majorTable[0x11] = (*Context).decodeMsub
	majorTable[0x12] = (*Context).decodeNmsub
	majorTable[0x13] = (*Context).decodeNmadd
	majorTable[0x14] = (*Context).decodeOpFP
	majorTable[0x18] = (*Context).decodeBranch
	majorTable[0x19] = (*Context).decodeJalr
	majorTable[0x1B] = (*Context).decodeJal
	majorTable[0x1C] = (*Context).decodeSystem
	majorTable[0x15] = (*Context).decodeOpV
}

// Decode routes one fetched instruction word to its translator: a
// compressed (16-bit) form if bits[1:0] != 3, otherwise a standard
// 32-bit form via the major-opcode table.
func (c *Context) Decode(instrLow16 uint16, fetchWord32 func() uint32) {
	if bitfield.Quadrant(instrLow16) == 3 {
		word := fetchWord32()
		c.decode32(word)
		return
	}
	if !c.HasExt(extCBit) {
		c.illegalInstruction()
		return
	}
	c.decodeCompressed(instrLow16)
}

func (c *Context) decode32(word uint32) {
	c.Opcode = word
	major := bitfield.Opcode(word) >> 2
	if int(major) >= len(majorTable) || majorTable[major] == nil {
		c.illegalInstruction()
		return
	}
	majorTable[major](c, word)
}

func (c *Context) decodeLoad(word uint32) {
	rd, rs1, imm := bitfield.RD(word), bitfield.RS1(word), bitfield.ImmI(word)
	switch bitfield.Funct3(word) {
	case 0b000:
		c.GenLoad(rd, rs1, imm, ir.Mem8, ir.Signed)
	case 0b001:
		c.GenLoad(rd, rs1, imm, ir.Mem16, ir.Signed)
	case 0b010:
		c.GenLoad(rd, rs1, imm, ir.Mem32, ir.Signed)
	case 0b011: // LD, RV64 only
		if c.XLen == 32 {
			c.illegalInstruction()
			return
		}
		c.GenLoad(rd, rs1, imm, ir.Mem64, ir.Signed)
	case 0b100:
		c.GenLoad(rd, rs1, imm, ir.Mem8, ir.Unsigned)
	case 0b101:
		c.GenLoad(rd, rs1, imm, ir.Mem16, ir.Unsigned)
	case 0b110: // LWU, RV64 only
		if c.XLen == 32 {
			c.illegalInstruction()
			return
		}
		c.GenLoad(rd, rs1, imm, ir.Mem32, ir.Unsigned)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeLoadFP(word uint32) {
	rd, rs1, imm := bitfield.RD(word), bitfield.RS1(word), bitfield.ImmI(word)
	switch bitfield.Funct3(word) {
	case 0b010:
		if !c.fpExtOK(ir.F32) {
			c.illegalInstruction()
			return
		}
		c.GenFPLoad(rd, rs1, imm, ir.F32)
	case 0b011:
		if !c.fpExtOK(ir.F64) {
			c.illegalInstruction()
			return
		}
		c.GenFPLoad(rd, rs1, imm, ir.F64)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeStore(word uint32) {
	rs1, rs2, imm := bitfield.RS1(word), bitfield.RS2(word), bitfield.ImmS(word)
	switch bitfield.Funct3(word) {
	case 0b000:
		c.GenStore(rs1, rs2, imm, ir.Mem8)
	case 0b001:
		c.GenStore(rs1, rs2, imm, ir.Mem16)
	case 0b010:
		c.GenStore(rs1, rs2, imm, ir.Mem32)
	case 0b011: // SD, RV64 only
		if c.XLen == 32 {
			c.illegalInstruction()
			return
		}
		c.GenStore(rs1, rs2, imm, ir.Mem64)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeStoreFP(word uint32) {
	rs1, rs2, imm := bitfield.RS1(word), bitfield.RS2(word), bitfield.ImmS(word)
	switch bitfield.Funct3(word) {
	case 0b010:
		if !c.fpExtOK(ir.F32) {
			c.illegalInstruction()
			return
		}
		c.GenFPStore(rs1, rs2, imm, ir.F32)
	case 0b011:
		if !c.fpExtOK(ir.F64) {
			c.illegalInstruction()
			return
		}
		c.GenFPStore(rs1, rs2, imm, ir.F64)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeMiscMem(word uint32) {
	switch bitfield.Funct3(word) {
	case 0b000:
		c.GenFence()
	case 0b001:
		c.GenFenceI()
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeAuipc(word uint32) {
	rd, imm := bitfield.RD(word), bitfield.ImmU(word)
	c.genLoadUpperImmPCRel(rd, imm)
}

func (c *Context) decodeLui(word uint32) {
	rd, imm := bitfield.RD(word), bitfield.ImmU(word)
	c.genLoadUpperImm(rd, imm)
}

func (c *Context) decodeOpImm(word uint32) {
	c.genOpImmCommon(word, false)
}

func (c *Context) decodeOpImm32(word uint32) {
	if c.XLen == 32 {
		c.illegalInstruction()
		return
	}
	c.genOpImmCommon(word, true)
}

func (c *Context) genOpImmCommon(word uint32, w bool) {
	rd, rs1 := bitfield.RD(word), bitfield.RS1(word)
	funct3 := bitfield.Funct3(word)

	if w && funct3 != 0b000 && funct3 != 0b001 && funct3 != 0b101 {
		// OP-IMM-32 defines only ADDIW/SLLIW/SRLIW/SRAIW.
		c.illegalInstruction()
		return
	}

	switch funct3 {
	case 0b000:
		c.GenArithImm(AluAdd, rd, rs1, bitfield.ImmI(word), w)
	case 0b010:
		c.GenArithImm(AluSlt, rd, rs1, bitfield.ImmI(word), w)
	case 0b011:
		c.GenArithImm(AluSltu, rd, rs1, bitfield.ImmI(word), w)
	case 0b100:
		c.GenArithImm(AluXor, rd, rs1, bitfield.ImmI(word), w)
	case 0b110:
		c.GenArithImm(AluOr, rd, rs1, bitfield.ImmI(word), w)
	case 0b111:
		c.GenArithImm(AluAnd, rd, rs1, bitfield.ImmI(word), w)
	case 0b001:
		shamt, ok := c.shiftAmount(word, w)
		if !ok {
			c.illegalInstruction()
			return
		}
		c.GenArithImm(AluSll, rd, rs1, shamt, w)
	case 0b101:
		shamt, ok := c.shiftAmount(word, w)
		if !ok {
			c.illegalInstruction()
			return
		}
		// The arithmetic-right variant is flagged by bit 10 of the
		// 12-bit immediate (bit 30 of the word), not by opcode.
		if bitfield.Funct7(word)&0b0100000 != 0 {
			c.GenArithImm(AluSra, rd, rs1, shamt, w)
		} else {
			c.GenArithImm(AluSrl, rd, rs1, shamt, w)
		}
	}
}

// shiftAmount selects the 5- or 6-bit shamt field depending on XLEN
// and the W-suffixed form, packed as the signed immediate GenArithImm
// expects (always non-negative; genAluOp's shift path only consults
// the low bits after masking). ok is false when the encoding's shamt
// exceeds the operation's width -- imm >= XLEN, or imm >= 32 for a
// W-variant -- which the ISA reserves as illegal rather than masking.
func (c *Context) shiftAmount(word uint32, w bool) (int32, bool) {
	if !w && c.XLen == 64 {
		return int32(bitfield.Shamt6(word)), true
	}
	if bitfield.Extract(word, 25, 1) != 0 {
		return 0, false
	}
	return int32(bitfield.Shamt5(word)), true
}

func (c *Context) decodeOp(word uint32) {
	c.genOpCommon(word, false)
}

func (c *Context) decodeOp32(word uint32) {
	if c.XLen == 32 {
		c.illegalInstruction()
		return
	}
	c.genOpCommon(word, true)
}

func (c *Context) genOpCommon(word uint32, w bool) {
	rd, rs1, rs2 := bitfield.RD(word), bitfield.RS1(word), bitfield.RS2(word)
	funct3, funct7 := bitfield.Funct3(word), bitfield.Funct7(word)

	if funct7 == 0b0000001 {
		// M extension.
		if !c.HasExt(extMBit) {
			c.illegalInstruction()
			return
		}
		if w && (funct3 == 0b001 || funct3 == 0b010 || funct3 == 0b011) {
			// MULH/MULHSU/MULHU have no W forms.
			c.illegalInstruction()
			return
		}
		ops := [8]AluOp{AluMul, AluMulh, AluMulhsu, AluMulhu, AluDiv, AluDivu, AluRem, AluRemu}
		c.GenArith(ops[funct3], rd, rs1, rs2, w)
		return
	}

	if w && funct3 != 0b000 && funct3 != 0b001 && funct3 != 0b101 {
		// OP-32 defines only ADDW/SUBW/SLLW/SRLW/SRAW.
		c.illegalInstruction()
		return
	}

	switch funct3 {
	case 0b000:
		if funct7&0b0100000 != 0 {
			c.GenArith(AluSub, rd, rs1, rs2, w)
		} else {
			c.GenArith(AluAdd, rd, rs1, rs2, w)
		}
	case 0b001:
		c.GenArith(AluSll, rd, rs1, rs2, w)
	case 0b010:
		c.GenArith(AluSlt, rd, rs1, rs2, w)
	case 0b011:
		c.GenArith(AluSltu, rd, rs1, rs2, w)
	case 0b100:
		c.GenArith(AluXor, rd, rs1, rs2, w)
	case 0b101:
		if funct7&0b0100000 != 0 {
			c.GenArith(AluSra, rd, rs1, rs2, w)
		} else {
			c.GenArith(AluSrl, rd, rs1, rs2, w)
		}
	case 0b110:
		c.GenArith(AluOr, rd, rs1, rs2, w)
	case 0b111:
		c.GenArith(AluAnd, rd, rs1, rs2, w)
	}
}

func (c *Context) decodeBranch(word uint32) {
	rs1, rs2, bimm := bitfield.RS1(word), bitfield.RS2(word), bitfield.ImmB(word)
	rvc := c.HasExt(extCBit)
	switch bitfield.Funct3(word) {
	case 0b000:
		c.GenBranch(ir.CondEQ, rs1, rs2, bimm, rvc)
	case 0b001:
		c.GenBranch(ir.CondNE, rs1, rs2, bimm, rvc)
	case 0b100:
		c.GenBranch(ir.CondLT, rs1, rs2, bimm, rvc)
	case 0b101:
		c.GenBranch(ir.CondGE, rs1, rs2, bimm, rvc)
	case 0b110:
		c.GenBranch(ir.CondLTU, rs1, rs2, bimm, rvc)
	case 0b111:
		c.GenBranch(ir.CondGEU, rs1, rs2, bimm, rvc)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeJal(word uint32) {
	c.GenJal(bitfield.RD(word), bitfield.ImmJ(word), c.HasExt(extCBit))
}

func (c *Context) decodeJalr(word uint32) {
	if bitfield.Funct3(word) != 0 {
		c.illegalInstruction()
		return
	}
	c.GenJalr(bitfield.RD(word), bitfield.RS1(word), bitfield.ImmI(word), c.HasExt(extCBit))
}

func (c *Context) decodeAmo(word uint32) {
	if !c.HasExt(extABit) {
		c.illegalInstruction()
		return
	}
	rd, rs1, rs2 := bitfield.RD(word), bitfield.RS1(word), bitfield.RS2(word)
	funct3 := bitfield.Funct3(word)
	width := ir.Mem32
	if funct3 == 0b011 {
		// D-form atomics are RV64-only.
		if c.XLen == 32 {
			c.illegalInstruction()
			return
		}
		width = ir.Mem64
	} else if funct3 != 0b010 {
		c.illegalInstruction()
		return
	}

	switch bitfield.Funct7(word) >> 2 {
	case 0b00010:
		if rs2 != 0 {
			c.illegalInstruction()
			return
		}
		c.GenAtomic(AtomicLR, rd, rs1, rs2, width)
	case 0b00011:
		c.GenAtomic(AtomicSC, rd, rs1, rs2, width)
	case 0b00001:
		c.GenAtomic(AtomicSwap, rd, rs1, rs2, width)
	case 0b00000:
		c.GenAtomic(AtomicAdd, rd, rs1, rs2, width)
	case 0b00100:
		c.GenAtomic(AtomicXor, rd, rs1, rs2, width)
	case 0b01100:
		c.GenAtomic(AtomicAnd, rd, rs1, rs2, width)
	case 0b01000:
		c.GenAtomic(AtomicOr, rd, rs1, rs2, width)
	case 0b10000:
		c.GenAtomic(AtomicMin, rd, rs1, rs2, width)
	case 0b10100:
		c.GenAtomic(AtomicMax, rd, rs1, rs2, width)
	case 0b11000:
		c.GenAtomic(AtomicMinu, rd, rs1, rs2, width)
	case 0b11100:
		c.GenAtomic(AtomicMaxu, rd, rs1, rs2, width)
	default:
		c.illegalInstruction()
	}
}

func fpWidthOf(fmt uint32) (ir.FPWidth, bool) {
	switch fmt {
	case 0b00:
		return ir.F32, true
	case 0b01:
		return ir.F64, true
	default:
		return 0, false
	}
}

func (c *Context) decodeMadd(word uint32)  { c.genFMACommon(word, helpers.FMAddS, helpers.FMAddD) }
func (c *Context) decodeMsub(word uint32)  { c.genFMACommon(word, helpers.FMSubS, helpers.FMSubD) }
func (c *Context) decodeNmsub(word uint32) { c.genFMACommon(word, helpers.FNMSubS, helpers.FNMSubD) }
func (c *Context) decodeNmadd(word uint32) { c.genFMACommon(word, helpers.FNMAddS, helpers.FNMAddD) }

func (c *Context) genFMACommon(word uint32, nameS, nameD string) {
	width, ok := fpWidthOf(bitfield.Funct2(word))
	if !ok || !c.fpExtOK(width) {
		c.illegalInstruction()
		return
	}
	name := nameS
	if width == ir.F64 {
		name = nameD
	}
	c.GenFMA(name,
		bitfield.RD(word), bitfield.RS1(word), bitfield.RS2(word), bitfield.RS3(word),
		width, bitfield.RM(word))
}

func (c *Context) decodeOpFP(word uint32) {
	width, ok := fpWidthOf(bitfield.Funct7(word) & 0b11)
	if ok && !c.fpExtOK(width) {
		ok = false
	}
	funct7 := bitfield.Funct7(word)
	rd, rs1, rs2 := bitfield.RD(word), bitfield.RS1(word), bitfield.RS2(word)
	rm := bitfield.RM(word)

	switch funct7 >> 2 {
	case 0b00000: // FADD
		if !ok {
			c.illegalInstruction()
			return
		}
		c.GenFPArith(FPAdd, rd, rs1, rs2, width, rm)
	case 0b00001: // FSUB
		if !ok {
			c.illegalInstruction()
			return
		}
		c.GenFPArith(FPSub, rd, rs1, rs2, width, rm)
	case 0b00010: // FMUL
		if !ok {
			c.illegalInstruction()
			return
		}
		c.GenFPArith(FPMul, rd, rs1, rs2, width, rm)
	case 0b00011: // FDIV
		if !ok {
			c.illegalInstruction()
			return
		}
		c.GenFPArith(FPDiv, rd, rs1, rs2, width, rm)
	case 0b01011: // FSQRT
		if !ok {
			c.illegalInstruction()
			return
		}
		c.GenFPArith(FPSqrt, rd, rs1, 0, width, rm)
	case 0b00100: // FSGNJ family
		if !ok {
			c.illegalInstruction()
			return
		}
		switch rm {
		case 0b000:
			c.GenFSignInject(rd, rs1, rs2, width, false, false)
		case 0b001:
			c.GenFSignInject(rd, rs1, rs2, width, true, false)
		case 0b010:
			c.GenFSignInject(rd, rs1, rs2, width, false, true)
		default:
			c.illegalInstruction()
		}
	case 0b00101: // FMIN/FMAX
		if !ok {
			c.illegalInstruction()
			return
		}
		if rm == 0 {
			c.GenFPArith(FPMin, rd, rs1, rs2, width, 0)
		} else {
			c.GenFPArith(FPMax, rd, rs1, rs2, width, 0)
		}
	case 0b10100: // FEQ/FLT/FLE
		if !ok {
			c.illegalInstruction()
			return
		}
		switch rm {
		case 0b010:
			c.GenFPCompare(FPEq, rd, rs1, rs2, width)
		case 0b001:
			c.GenFPCompare(FPLt, rd, rs1, rs2, width)
		case 0b000:
			c.GenFPCompare(FPLe, rd, rs1, rs2, width)
		default:
			c.illegalInstruction()
		}
	case 0b11100: // FCLASS / FMV.X.*
		if !ok {
			c.illegalInstruction()
			return
		}
		if rm == 0b001 {
			c.GenFPClass(rd, rs1, width)
		} else {
			if width == ir.F64 && c.XLen == 32 {
				// fmv.x.d is RV64-only.
				c.illegalInstruction()
				return
			}
			c.GenFMoveToGPR(rd, rs1, width)
		}
	case 0b11110: // FMV.*.X
		if !ok {
			c.illegalInstruction()
			return
		}
		if width == ir.F64 && c.XLen == 32 {
			c.illegalInstruction()
			return
		}
		c.GenFMoveFromGPR(rd, rs1, width)
	case 0b01000: // FCVT.S.D / FCVT.D.S -- both directions need F and D
		if !c.HasExt(extFBit) || !c.HasExt(extDBit) {
			c.illegalInstruction()
			return
		}
		switch rs2 {
		case 1:
			c.GenFCvtFPToFP(helpers.FCvtSD, rd, rs1, ir.F64, ir.F32)
		case 0:
			c.GenFCvtFPToFP(helpers.FCvtDS, rd, rs1, ir.F32, ir.F64)
		default:
			c.illegalInstruction()
		}
	case 0b11000: // FCVT.int.fp
		c.decodeFCvtToInt(rd, rs1, rs2, funct7&0b11, rm)
	case 0b11010: // FCVT.fp.int
		c.decodeFCvtFromInt(rd, rs1, rs2, funct7&0b11, rm)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeFCvtToInt(rd, rs1, rs2, fmt uint32, rm uint32) {
	width, ok := fpWidthOf(fmt)
	if !ok || !c.fpExtOK(width) {
		c.illegalInstruction()
		return
	}
	if rs2 >= 2 && c.XLen == 32 {
		// The L/LU conversions are RV64-only.
		c.illegalInstruction()
		return
	}
	var name string
	switch {
	case width == ir.F32 && rs2 == 0:
		name = helpers.FCvtWS
	case width == ir.F32 && rs2 == 1:
		name = helpers.FCvtWUS
	case width == ir.F32 && rs2 == 2:
		name = helpers.FCvtLS
	case width == ir.F32 && rs2 == 3:
		name = helpers.FCvtLUS
	case width == ir.F64 && rs2 == 0:
		name = helpers.FCvtWD
	case width == ir.F64 && rs2 == 1:
		name = helpers.FCvtWUD
	case width == ir.F64 && rs2 == 2:
		name = helpers.FCvtLD
	case width == ir.F64 && rs2 == 3:
		name = helpers.FCvtLUD
	default:
		c.illegalInstruction()
		return
	}
	c.GenFCvtToInt(name, rd, rs1, width, rm)
}

func (c *Context) decodeFCvtFromInt(rd, rs1, rs2, fmt uint32, rm uint32) {
	width, ok := fpWidthOf(fmt)
	if !ok || !c.fpExtOK(width) {
		c.illegalInstruction()
		return
	}
	if rs2 >= 2 && c.XLen == 32 {
		c.illegalInstruction()
		return
	}
	var name string
	switch {
	case width == ir.F32 && rs2 == 0:
		name = helpers.FCvtSW
	case width == ir.F32 && rs2 == 1:
		name = helpers.FCvtSWU
	case width == ir.F32 && rs2 == 2:
		name = helpers.FCvtSL
	case width == ir.F32 && rs2 == 3:
		name = helpers.FCvtSLU
	case width == ir.F64 && rs2 == 0:
		name = helpers.FCvtDW
	case width == ir.F64 && rs2 == 1:
		name = helpers.FCvtDWU
	case width == ir.F64 && rs2 == 2:
		name = helpers.FCvtDL
	case width == ir.F64 && rs2 == 3:
		name = helpers.FCvtDLU
	default:
		c.illegalInstruction()
		return
	}
	c.GenFCvtFromInt(name, rd, rs1, width, rm)
}

func (c *Context) decodeSystem(word uint32) {
	funct3 := bitfield.Funct3(word)
	rd, rs1, csr := bitfield.RD(word), bitfield.RS1(word), bitfield.CSR(word)

	if funct3 == 0 {
		c.decodeSystemZero(word, csr)
		return
	}

	switch funct3 {
	case 0b001:
		c.GenCSR(CSRRW, rd, csr, rs1, 0)
	case 0b010:
		c.GenCSR(CSRRS, rd, csr, rs1, 0)
	case 0b011:
		c.GenCSR(CSRRC, rd, csr, rs1, 0)
	case 0b101:
		c.GenCSR(CSRRWI, rd, csr, 0, rs1)
	case 0b110:
		c.GenCSR(CSRRSI, rd, csr, 0, rs1)
	case 0b111:
		c.GenCSR(CSRRCI, rd, csr, 0, rs1)
	default:
		c.illegalInstruction()
	}
}

func (c *Context) decodeSystemZero(word uint32, csr uint32) {
	switch csr {
	case 0x000:
		c.GenSystem(SysECall)
	case 0x001:
		c.GenSystem(SysEBreak)
	case 0x102:
		c.GenSystem(SysSRET)
	case 0x302:
		c.GenSystem(SysMRET)
	case 0x105:
		c.GenSystem(SysWFI)
	case 0x104:
		// SFENCE.VM, the pre-1.10 privileged spec's name for the same
		// TLB flush; ASID filtering is not modelled either way.
		c.GenSystem(SysSFenceVMA)
	default:
		if csr>>5 == 0b0001001 {
			c.GenSystem(SysSFenceVMA)
			return
		}
		// URET, HRET, DRET, and unassigned zero-operand forms.
		c.illegalInstruction()
	}
}

// genLoadUpperImm implements LUI: rd = imm (already shifted into
// bits[31:12] by bitfield.ImmU), sign-extended to XLEN.
func (c *Context) genLoadUpperImm(rd uint32, imm int32) {
	e := c.Emitter
	dest := e.NewTempWord()
	e.MovImm(dest, int64(imm))
	e.PutReg(rd, dest)
	e.Release(dest)
}

// genLoadUpperImmPCRel implements AUIPC: rd = pc + imm.
func (c *Context) genLoadUpperImmPCRel(rd uint32, imm int32) {
	e := c.Emitter
	base := e.NewTempWord()
	e.MovImm(base, int64(c.PC))
	offs := e.NewTempWord()
	e.MovImm(offs, int64(imm))
	dest := e.NewTempWord()
	e.Add(dest, base, offs)
	e.PutReg(rd, dest)
	e.Release(base)
	e.Release(offs)
	e.Release(dest)
}
