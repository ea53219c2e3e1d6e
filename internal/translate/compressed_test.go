/*
 * rvtrans - Compressed expansion tests
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

package translate_test

import (
	"testing"

	"github.com/bbradley/rvtrans/internal/state"
	"github.com/bbradley/rvtrans/internal/translate"
)

// fetch16 adapts a single 16-bit compressed opcode to the FetchWord
// interface; the high half of the fetched word is never consulted for
// a compressed instruction.
type fetch16 struct{ ci uint16 }

func (f fetch16) ReadHalf(pc uint64) uint16   { return f.ci }
func (f fetch16) ReadWordAt(pc uint64) uint32 { return uint32(f.ci) }

func translateC(t *testing.T, cpu *state.CPU, ci uint16) exit {
	t.Helper()
	tb := translate.GenIntermediateCode(fetch16{ci: ci}, 0x1000, translate.DriverOptions{
		XLen: cpu.XLen, Misa: cpu.Misa, MaxInsns: 1,
	})
	r := newRun(cpu)
	return r.exec(tb.Emitter.Ops())
}

// TestCAddMatchesAdd: executing C.ADD and its 32-bit expansion from an
// identical pre-state produces identical post-states.
func TestCAddMatchesAdd(t *testing.T) {
	pre := func() *state.CPU {
		c := newCPU64(state.ExtI | state.ExtC)
		c.GPRWrite(10, 7)
		c.GPRWrite(11, ^uint64(2)) // -3
		return c
	}

	compressed := pre()
	// c.add x10, x11: quadrant 2, funct3 100, bit12=1, rd=10, rs2=11.
	translateC(t, compressed, 0b100_1_01010_01011_10)

	expanded := pre()
	translateOne(t, expanded, 0x00B50533) // add x10, x10, x11

	if compressed.GPRRead(10) != expanded.GPRRead(10) {
		t.Fatalf("c.add -> %#x, add -> %#x; expansion must be exact",
			compressed.GPRRead(10), expanded.GPRRead(10))
	}
	if compressed.GPRRead(10) != 4 {
		t.Fatalf("x10 = %d, want 4", compressed.GPRRead(10))
	}
}

// TestCAddiExpands: c.addi x10, -1 decrements through the CI immediate.
func TestCAddiExpands(t *testing.T) {
	cpu := newCPU64(state.ExtI | state.ExtC)
	cpu.GPRWrite(10, 5)
	// c.addi x10, -1: funct3 000, imm5(bit12)=1, rd=10, imm[4:0]=11111.
	translateC(t, cpu, 0b000_1_01010_11111_01)
	if got := cpu.GPRRead(10); got != 4 {
		t.Fatalf("x10 = %d, want 4", got)
	}
}

// TestCLwspOffset checks the CI-format SP-relative load immediate
// scrambling: offset 20 places offset[4:2] in bits [6:4].
func TestCLwspOffset(t *testing.T) {
	cpu := newCPU64(state.ExtI | state.ExtC)
	cpu.GPRWrite(2, 0x2000)

	// c.lwsp x10, 20(sp): funct3 010, bit12=offset[5]=0, rd=10,
	// bits[6:4]=offset[4:2]=101, bits[3:2]=offset[7:6]=00.
	ci := uint16(0b010_0_01010_101_00_10)
	tb := translate.GenIntermediateCode(fetch16{ci: ci}, 0x1000, translate.DriverOptions{
		XLen: 64, Misa: cpu.Misa, MaxInsns: 1,
	})
	r := newRun(cpu)
	r.mem[0x2014] = 0x2A // 0x2000 + 20
	r.exec(tb.Emitter.Ops())
	if got := cpu.GPRRead(10); got != 0x2A {
		t.Fatalf("x10 = %#x, want the word loaded from sp+20", got)
	}
}

// TestCAddi4spnZeroImmIllegal: the imm=0 CIW encoding is reserved.
func TestCAddi4spnZeroImmIllegal(t *testing.T) {
	cpu := newCPU64(state.ExtI | state.ExtC)
	ex := translateC(t, cpu, 0b000_00000000_010_00) // rd'=x10, imm=0
	if ex.kind != "trap" {
		t.Fatalf("c.addi4spn with imm=0 must be illegal")
	}
	if cpu.Mcause != translate.ExcIllegalInst {
		t.Fatalf("mcause = %d, want ILLEGAL_INST", cpu.Mcause)
	}
}

// TestCompressedWithoutRVCIllegal: any compressed encoding with C
// absent from misa raises illegal-instruction.
func TestCompressedWithoutRVCIllegal(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	ex := translateC(t, cpu, 0b000_1_01010_11111_01) // c.addi, RVC off
	if ex.kind != "trap" {
		t.Fatalf("compressed instruction without RVC must trap")
	}
	if cpu.Mcause != translate.ExcIllegalInst {
		t.Fatalf("mcause = %d, want ILLEGAL_INST", cpu.Mcause)
	}
}

// TestCJalRV32: on RV32, C1/funct3=001 is C.JAL -- link to x1 and chain
// to pc+imm.
func TestCJalRV32(t *testing.T) {
	cpu := &state.CPU{}
	cpu.Reset(32, state.ExtC, 16)

	// c.jal +8: CJ immediate with offset[3:1] in bits [5:3], so
	// offset 8 sets bit 5 only.
	ci := uint16(0b001_00000001_000_01)
	tb := translate.GenIntermediateCode(fetch16{ci: ci}, 0x1000, translate.DriverOptions{
		XLen: 32, Misa: cpu.Misa, MaxInsns: 1,
	})
	r := newRun(cpu)
	ex := r.exec(tb.Emitter.Ops())

	if cpu.GPRRead(1) != 0x1002 {
		t.Fatalf("x1 = %#x, want the return address 0x1002", cpu.GPRRead(1))
	}
	if ex.kind != "goto" || ex.dest != 0x1008 {
		t.Fatalf("exit = %+v, want chained goto to 0x1008", ex)
	}
}

// TestCAddiwRV64: the same funct3 slot decodes as C.ADDIW on RV64.
func TestCAddiwRV64(t *testing.T) {
	cpu := newCPU64(state.ExtI | state.ExtC)
	cpu.GPRWrite(10, 0x7FFFFFFF)
	// c.addiw x10, 1: funct3 001, bit12=0, rd=10, imm[4:0]=00001.
	translateC(t, cpu, 0b001_0_01010_00001_01)
	if got := cpu.GPRRead(10); got != 0xFFFFFFFF80000000 {
		t.Fatalf("x10 = %#x, want W-sign-extended 0xFFFFFFFF80000000", got)
	}
}

// TestCFldspRequiresD: the C.FLDSP slot is gated on the D extension.
func TestCFldspRequiresD(t *testing.T) {
	cpu := newCPU64(state.ExtI | state.ExtC) // no D
	ex := translateC(t, cpu, 0b001_0_00011_01000_10) // c.fldsp f3
	if ex.kind != "trap" {
		t.Fatalf("c.fldsp without D must be illegal")
	}
}
