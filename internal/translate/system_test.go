/*
 * rvtrans - CSR and system translator tests
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

// TestEcallRaisesUEcall: ECALL raises the U-level ecall cause; the trap
// handler promotes it to the current privilege later, outside this core.
func TestEcallRaisesUEcall(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	ex := translateOne(t, cpu, 0x00000073)
	if ex.kind != "trap" {
		t.Fatalf("ecall must trap")
	}
	if cpu.Mcause != translate.ExcECallU {
		t.Fatalf("mcause = %d, want U_ECALL (%d)", cpu.Mcause, translate.ExcECallU)
	}
	if cpu.Mepc != 0x1000 {
		t.Fatalf("mepc = %#x, want 0x1000", cpu.Mepc)
	}
}

// TestEbreakRaisesBreakpoint.
func TestEbreakRaisesBreakpoint(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	ex := translateOne(t, cpu, 0x00100073)
	if ex.kind != "trap" {
		t.Fatalf("ebreak must trap")
	}
	if cpu.Mcause != translate.ExcBreakpoint {
		t.Fatalf("mcause = %d, want BREAKPOINT", cpu.Mcause)
	}
}

// TestCSRWriteEndsBlockUnchained: a csrrw lands in the helper, writes
// the CSR, and the block ends with an unchained direct exit -- never a
// goto_tb, since the write may have changed the block's premises.
func TestCSRWriteEndsBlockUnchained(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	cpu.GPRWrite(5, 0xABCD)

	// csrrw x6, mscratch, x5
	word := uint32(0x340)<<20 | 5<<15 | 0b001<<12 | 6<<7 | 0x73
	ex := translateOne(t, cpu, word)
	if ex.kind != "exit-direct" {
		t.Fatalf("exit kind = %q, want exit-direct (unchained)", ex.kind)
	}
	if cpu.Mscratch != 0xABCD {
		t.Fatalf("mscratch = %#x, want 0xABCD", cpu.Mscratch)
	}
	if cpu.GPRRead(6) != 0 {
		t.Fatalf("x6 = %#x, want the old mscratch value 0", cpu.GPRRead(6))
	}
}

// TestCSRReadOnlyWriteIllegal: writing a CSR whose number encodes
// read-only (bits [11:10] = 0b11, e.g. cycle at 0xC00) is statically
// illegal at translation time.
func TestCSRReadOnlyWriteIllegal(t *testing.T) {
	cpu := newCPU64(state.ExtI)

	// csrrw x0, cycle, x5
	word := uint32(0xC00)<<20 | 5<<15 | 0b001<<12 | 0<<7 | 0x73
	ex := translateOne(t, cpu, word)
	if ex.kind != "trap" {
		t.Fatalf("write to read-only CSR must trap")
	}
	if cpu.Mcause != translate.ExcIllegalInst {
		t.Fatalf("mcause = %d, want ILLEGAL_INST", cpu.Mcause)
	}
}

// TestCSRRSZeroSourceIsPureRead: csrrs with rs1=x0 is a pure read; it
// must not trap and returns the CSR's current value.
func TestCSRRSZeroSourceIsPureRead(t *testing.T) {
	cpu := newCPU64(state.ExtI)

	// csrrs x6, mstatus, x0 -- the interpreter implements only the
	// mstatus read form, which is also what the FS gate emits.
	cpu.Mstatus = 0x2000
	word := uint32(0x300)<<20 | 0<<15 | 0b010<<12 | 6<<7 | 0x73
	ex := translateOne(t, cpu, word)
	if ex.kind == "trap" {
		t.Fatalf("csrrs rs1=x0 must not trap")
	}
	if cpu.GPRRead(6) != 0x2000 {
		t.Fatalf("x6 = %#x, want mstatus 0x2000", cpu.GPRRead(6))
	}
}
