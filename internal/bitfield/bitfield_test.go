/*
 * rvtrans - Bit field extraction tests
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

import "testing"

func TestExtract(t *testing.T) {
	v := uint32(0b1010_1100)
	if got := Extract(v, 2, 4); got != 0b1011 {
		t.Fatalf("Extract = %b, want %b", got, 0b1011)
	}
}

func TestSignExtract(t *testing.T) {
	// 5-bit field, top bit set -> negative.
	v := uint32(0b10000)
	if got := SignExtract(v, 0, 5); got != -16 {
		t.Fatalf("SignExtract = %d, want -16", got)
	}
	v = uint32(0b01111)
	if got := SignExtract(v, 0, 5); got != 15 {
		t.Fatalf("SignExtract = %d, want 15", got)
	}
}

func TestImmI(t *testing.T) {
	// addi x1, x0, -1 -> imm field all ones
	ci := uint32(0xFFF00093)
	if got := ImmI(ci); got != -1 {
		t.Fatalf("ImmI = %d, want -1", got)
	}
}

func TestImmJAL(t *testing.T) {
	// jal x1, +8 = 0x008000ef
	ci := uint32(0x008000ef)
	if got := ImmJ(ci); got != 8 {
		t.Fatalf("ImmJ = %d, want 8", got)
	}
}

func TestImmBranch(t *testing.T) {
	// beq x0,x0,+4: opcode 1100011, funct3 000, imm=4
	// encode manually: imm[12|10:5]=0000000 imm[4:1|11]=0010
	ci := uint32(0b0000000_00000_00000_000_00100_1100011)
	if got := ImmB(ci); got != 4 {
		t.Fatalf("ImmB = %d, want 4", got)
	}
}

func TestCompressedAllZeroIsQuadrant0(t *testing.T) {
	if Quadrant(0x0000) != 0 {
		t.Fatalf("expected quadrant 0 for all-zero opcode")
	}
	if CFunct3(0x0000) != 0 {
		t.Fatalf("expected funct3 0 for all-zero opcode")
	}
}

func TestImmCISPLoadOffsets(t *testing.T) {
	// c.lwsp offset 20: offset[4:2]=101 at bits [6:4], rest zero.
	ci := uint16(0b010_0_00000_101_00_10)
	if got := ImmCISP(ci, 4); got != 20 {
		t.Fatalf("ImmCISP(4) = %d, want 20", got)
	}
	// c.ldsp offset 0x48: offset[6]=1 at bit 2, offset[3]=1 at bit 5.
	ci = uint16(0b011_0_00000_01_001_10)
	if got := ImmCISP(ci, 8); got != 0x48 {
		t.Fatalf("ImmCISP(8) = %#x, want 0x48", got)
	}
}

func TestImmCSSStoreOffsets(t *testing.T) {
	// c.swsp offset 20: offset[5:2]=0101 at bits [12:9], offset[7:6]=00.
	ci := uint16(0b110_0101_00_00000_10)
	if got := ImmCSS(ci, 4); got != 20 {
		t.Fatalf("ImmCSS(4) = %d, want 20", got)
	}
}

func TestSignExtendWord(t *testing.T) {
	if got := SignExtendWord(0xFFFFFFFF); got != 0xFFFFFFFFFFFFFFFF {
		t.Fatalf("SignExtendWord(-1) = %#x", got)
	}
	if got := SignExtendWord(0x7FFFFFFF); got != 0x7FFFFFFF {
		t.Fatalf("SignExtendWord(max) = %#x", got)
	}
}
