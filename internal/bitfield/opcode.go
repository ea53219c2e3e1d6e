/*
 * rvtrans - Opcode field accessors
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

package bitfield

// Opcode returns the 7-bit major opcode field of a standard 32-bit
// instruction word.
func Opcode(ci uint32) uint32 { return Extract(ci, 0, 7) }

// Quadrant returns bits [1:0] of a 16-bit compressed opcode; a value
// other than 3 marks the word as compressed.
func Quadrant(ci uint16) uint32 { return uint32(ci) & 0b11 }

// Funct3 returns the 3-bit funct3 field of a standard instruction.
func Funct3(ci uint32) uint32 { return Extract(ci, 12, 3) }

// Funct7 returns the 7-bit funct7 field of a standard R-type instruction.
func Funct7(ci uint32) uint32 { return Extract(ci, 25, 7) }

// Funct2 returns the 2-bit funct2 field used by the FP fused-multiply-add
// and R4-type encodings.
func Funct2(ci uint32) uint32 { return Extract(ci, 25, 2) }

// RD returns the destination register index.
func RD(ci uint32) uint32 { return Extract(ci, 7, 5) }

// RS1 returns the first source register index.
func RS1(ci uint32) uint32 { return Extract(ci, 15, 5) }

// RS2 returns the second source register index.
func RS2(ci uint32) uint32 { return Extract(ci, 20, 5) }

// RS3 returns the third source register index (R4-type: fused
// multiply-add).
func RS3(ci uint32) uint32 { return Extract(ci, 27, 5) }

// RM returns the rounding-mode field of FP encodings, which occupies
// funct3's position (bits [14:12]).
func RM(ci uint32) uint32 { return Extract(ci, 12, 3) }

// ImmI decodes the sign-extended 12-bit I-type immediate.
func ImmI(ci uint32) int32 { return SignExtract(ci, 20, 12) }

// ImmS decodes the sign-extended 12-bit S-type immediate.
func ImmS(ci uint32) int32 {
	hi := Extract(ci, 25, 7)
	lo := Extract(ci, 7, 5)
	return SignExtract((hi<<5)|lo, 0, 12)
}

// ImmB decodes the sign-extended 13-bit B-type (branch) immediate. Bit 0
// is always zero (branch targets are 2-byte aligned at minimum).
func ImmB(ci uint32) int32 {
	b12 := Extract(ci, 31, 1)
	b11 := Extract(ci, 7, 1)
	b10_5 := Extract(ci, 25, 6)
	b4_1 := Extract(ci, 8, 4)
	v := (b12 << 12) | (b11 << 11) | (b10_5 << 5) | (b4_1 << 1)
	return SignExtract(v, 0, 13)
}

// ImmU decodes the 32-bit U-type immediate (already shifted into place,
// bits [31:12], low 12 bits zero).
func ImmU(ci uint32) int32 { return int32(ci & 0xFFFFF000) }

// ImmJ decodes the sign-extended 21-bit J-type (jal) immediate.
func ImmJ(ci uint32) int32 {
	b20 := Extract(ci, 31, 1)
	b19_12 := Extract(ci, 12, 8)
	b11 := Extract(ci, 20, 1)
	b10_1 := Extract(ci, 21, 10)
	v := (b20 << 20) | (b19_12 << 12) | (b11 << 11) | (b10_1 << 1)
	return SignExtract(v, 0, 21)
}

// Shamt5 decodes the 5-bit shift amount used by RV32 and W-form shifts.
func Shamt5(ci uint32) uint32 { return Extract(ci, 20, 5) }

// Shamt6 decodes the 6-bit shift amount used by RV64 full-width shifts.
func Shamt6(ci uint32) uint32 { return Extract(ci, 20, 6) }

// CSR decodes the 12-bit CSR address field of a SYSTEM instruction.
func CSR(ci uint32) uint32 { return Extract(ci, 20, 12) }

// --- Compressed (16-bit) instruction fields ---

// CFunct3 returns the quadrant-dispatch funct3 field of a compressed
// instruction.
func CFunct3(ci uint16) uint32 { return Extract(uint32(ci), 13, 3) }

// CFunct2Hi returns bits [11:10], used by several C1/C2 sub-dispatches.
func CFunct2Hi(ci uint16) uint32 { return Extract(uint32(ci), 10, 2) }

// CFunct2Lo returns bits [6:5], used by the C.A-format logical ops.
func CFunct2Lo(ci uint16) uint32 { return Extract(uint32(ci), 5, 2) }

// CRd returns the 5-bit rd/rs1 field shared by most CR/CI formats.
func CRd(ci uint16) uint32 { return Extract(uint32(ci), 7, 5) }

// CRs2 returns the 5-bit rs2 field of CR/CSS formats.
func CRs2(ci uint16) uint32 { return Extract(uint32(ci), 2, 5) }

// CRdq decodes a compressed 3-bit register field into the full 5-bit
// index by adding the x8 bias (registers x8..x15 only).
func CRdq(field uint32) uint32 { return field + 8 }

// CRd2 returns the 3-bit rd'/rs1' field at bits [9:7] used by
// CL/CS/CA/CB formats, already biased to x8..x15.
func CRd2(ci uint16) uint32 { return CRdq(Extract(uint32(ci), 7, 3)) }

// CRs22 returns the 3-bit field at bits [4:2] (rs2', or rd' in the
// CIW/CL formats) used by CIW/CL/CS/CA formats, biased to x8..x15.
func CRs22(ci uint16) uint32 { return CRdq(Extract(uint32(ci), 2, 3)) }

// ImmCI decodes the CI-format signed immediate (used by C.ADDI, C.LI,
// C.LUI's non-shifted form, C.SLLI's shamt when unsigned).
func ImmCI(ci uint16) int32 {
	v := uint32(ci)
	hi := Extract(v, 12, 1)
	lo := Extract(v, 2, 5)
	return SignExtract((hi<<5)|lo, 0, 6)
}

// ShamtCI decodes the CI-format shift amount (unsigned, 6 bits: RV64
// only; RV32 callers must reject bit 5 set).
func ShamtCI(ci uint16) uint32 {
	v := uint32(ci)
	hi := Extract(v, 12, 1)
	lo := Extract(v, 2, 5)
	return (hi << 5) | lo
}

// ImmCISP decodes the CI-format stack-pointer-relative load immediate
// (C.LWSP/C.FLWSP at wordsize 4, C.LDSP/C.FLDSP at wordsize 8). The
// layout differs from the CSS store form: the high offset bits sit in
// the low immediate field, below the word-scaled window.
func ImmCISP(ci uint16, wordsize uint) uint32 {
	v := uint32(ci)
	b5 := Extract(v, 12, 1)
	if wordsize == 8 {
		hi := Extract(v, 5, 2) // offset[4:3]
		lo := Extract(v, 2, 3) // offset[8:6]
		return (b5 << 5) | (hi << 3) | (lo << 6)
	}
	hi := Extract(v, 4, 3) // offset[4:2]
	lo := Extract(v, 2, 2) // offset[7:6]
	return (b5 << 5) | (hi << 2) | (lo << 6)
}

// ImmCSS decodes the CSS-format immediate (C.SWSP/C.SDSP), word-scaled.
func ImmCSS(ci uint16, wordsize uint) uint32 {
	v := uint32(ci)
	if wordsize == 8 {
		hi := Extract(v, 10, 3)
		lo := Extract(v, 7, 3)
		return (hi << 3) | (lo << 6)
	}
	hi := Extract(v, 9, 4)
	lo := Extract(v, 7, 2)
	return (hi << 2) | (lo << 6)
}

// ImmCIW decodes the CIW-format immediate (C.ADDI4SPN).
func ImmCIW(ci uint16) uint32 {
	v := uint32(ci)
	b3 := Extract(v, 5, 1)
	b2 := Extract(v, 6, 1)
	b96 := Extract(v, 7, 4)
	b54 := Extract(v, 11, 2)
	return (b96 << 6) | (b54 << 4) | (b3 << 3) | (b2 << 2)
}

// ImmCL decodes the CL/CS-format immediate (C.LW/C.SW family and
// C.LD/C.SD family, selected by wordsize).
func ImmCL(ci uint16, wordsize uint) uint32 {
	v := uint32(ci)
	if wordsize == 8 {
		hi := Extract(v, 10, 3)
		lo := Extract(v, 5, 2)
		return (hi << 3) | (lo << 6)
	}
	hi := Extract(v, 10, 3)
	b2 := Extract(v, 6, 1)
	b6 := Extract(v, 5, 1)
	return (hi << 3) | (b6 << 6) | (b2 << 2)
}

// ImmCB decodes the CB-format branch immediate (C.BEQZ/C.BNEZ).
func ImmCB(ci uint16) int32 {
	v := uint32(ci)
	b8 := Extract(v, 12, 1)
	b43 := Extract(v, 10, 2)
	b76 := Extract(v, 5, 2)
	b21 := Extract(v, 3, 2)
	b5 := Extract(v, 2, 1)
	imm := (b8 << 8) | (b76 << 6) | (b5 << 5) | (b43 << 3) | (b21 << 1)
	return SignExtract(imm, 0, 9)
}

// ImmCJ decodes the CJ-format jump immediate (C.J/C.JAL).
func ImmCJ(ci uint16) int32 {
	v := uint32(ci)
	b11 := Extract(v, 12, 1)
	b4 := Extract(v, 11, 1)
	b98 := Extract(v, 9, 2)
	b10 := Extract(v, 8, 1)
	b6 := Extract(v, 7, 1)
	b7 := Extract(v, 6, 1)
	b31 := Extract(v, 3, 3)
	b5 := Extract(v, 2, 1)
	imm := (b11 << 11) | (b10 << 10) | (b98 << 8) | (b7 << 7) | (b6 << 6) |
		(b5 << 5) | (b4 << 4) | (b31 << 1)
	return SignExtract(imm, 0, 12)
}

// ImmCBShamt decodes the 6-bit unsigned immediate shared by
// C.SRLI/C.SRAI (same physical bits as ShamtCI; C.ANDI reads the same
// bits signed, through ImmCBAndi).
func ImmCBShamt(ci uint16) uint32 { return ShamtCI(ci) }

// ImmCBAndi decodes the CB-format signed immediate used by C.ANDI.
func ImmCBAndi(ci uint16) int32 { return ImmCI(ci) }
