/*
 * rvtrans - Load/store translator tests
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

// TestStoreThenLoad walks a two-instruction block (sd then ld) through
// the driver and the interpreter's little-endian memory, checking both
// the effective-address computation and the load's writeback.
func TestStoreThenLoad(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	cpu.GPRWrite(10, 0x2000) // base
	cpu.GPRWrite(11, 0x1122334455667788)

	// sd x11, 8(x10); ld x12, 8(x10)
	sd := uint32(0)<<25 | 11<<20 | 10<<15 | 0b011<<12 | 8<<7 | 0x23
	ld := uint32(8)<<20 | 10<<15 | 0b011<<12 | 12<<7 | 0x03
	fetch := wordFetch{words: map[uint64]uint32{0x1000: sd, 0x1004: ld}}
	tb := translate.GenIntermediateCode(fetch, 0x1000, translate.DriverOptions{
		XLen: 64, Misa: cpu.Misa, MaxInsns: 2,
	})

	r := newRun(cpu)
	ex := r.exec(tb.Emitter.Ops())
	if ex.kind == "trap" {
		t.Fatalf("store/load pair must not trap")
	}
	if got := cpu.GPRRead(12); got != 0x1122334455667788 {
		t.Fatalf("x12 = %#x, want the stored value", got)
	}
	if r.mem[0x2008] != 0x88 {
		t.Fatalf("memory byte at 0x2008 = %#x, want 0x88 (little-endian low byte)", r.mem[0x2008])
	}
}

// TestLbSignExtends: LB replicates bit 7 of the loaded byte.
func TestLbSignExtends(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	cpu.GPRWrite(10, 0x2000)

	lb := uint32(0)<<20 | 10<<15 | 0b000<<12 | 12<<7 | 0x03
	fetch := wordFetch{words: map[uint64]uint32{0x1000: lb}}
	tb := translate.GenIntermediateCode(fetch, 0x1000, translate.DriverOptions{
		XLen: 64, Misa: cpu.Misa, MaxInsns: 1,
	})

	r := newRun(cpu)
	r.mem[0x2000] = 0x80
	r.exec(tb.Emitter.Ops())
	if got := cpu.GPRRead(12); got != 0xFFFFFFFFFFFFFF80 {
		t.Fatalf("x12 = %#x, want sign-extended 0xFFFFFFFFFFFFFF80", got)
	}
}

// TestFSGateBlocksFPLoad: with mstatus.FS clear, an FP load traps
// illegal before touching memory; with FS enabled it loads and NaN-boxes.
func TestFSGateBlocksFPLoad(t *testing.T) {
	flw := uint32(0)<<20 | 10<<15 | 0b010<<12 | 3<<7 | 0x07 // flw f3, 0(x10)

	cpu := newCPU64(state.ExtI | state.ExtF | state.ExtD)
	cpu.Mstatus = 0 // FS off
	cpu.GPRWrite(10, 0x2000)

	fetch := wordFetch{words: map[uint64]uint32{0x1000: flw}}
	tb := translate.GenIntermediateCode(fetch, 0x1000, translate.DriverOptions{
		XLen: 64, Misa: cpu.Misa, MaxInsns: 1,
	})

	r := newRun(cpu)
	ex := r.exec(tb.Emitter.Ops())
	if ex.kind != "trap" {
		t.Fatalf("flw with FS=0 must trap, got %q", ex.kind)
	}
	if cpu.Mcause != translate.ExcIllegalInst {
		t.Fatalf("mcause = %d, want ILLEGAL_INST", cpu.Mcause)
	}

	// Same block, FS enabled: the load goes through and NaN-boxes.
	cpu2 := newCPU64(state.ExtI | state.ExtF | state.ExtD)
	cpu2.Mstatus = 0x1 << 13 // FS = Initial
	cpu2.GPRWrite(10, 0x2000)
	tb2 := translate.GenIntermediateCode(fetch, 0x1000, translate.DriverOptions{
		XLen: 64, Misa: cpu2.Misa, MaxInsns: 1,
	})
	r2 := newRun(cpu2)
	r2.mem[0x2000] = 0x00
	r2.mem[0x2001] = 0x00
	r2.mem[0x2002] = 0x80
	r2.mem[0x2003] = 0x3F // 1.0f
	ex2 := r2.exec(tb2.Emitter.Ops())
	if ex2.kind == "trap" {
		t.Fatalf("flw with FS enabled must not trap")
	}
	if got := cpu2.FPRRead64(3); got != 0xFFFFFFFF3F800000 {
		t.Fatalf("f3 = %#x, want NaN-boxed 1.0f", got)
	}
}

// TestFPExtensionGated: an FP encoding with F absent from misa is
// statically illegal, before the FS gate is even emitted.
func TestFPExtensionGated(t *testing.T) {
	cpu := newCPU64(state.ExtI)
	cpu.Mstatus = 0x3 << 13

	flw := uint32(0)<<20 | 10<<15 | 0b010<<12 | 3<<7 | 0x07
	fetch := wordFetch{words: map[uint64]uint32{0x1000: flw}}
	tb := translate.GenIntermediateCode(fetch, 0x1000, translate.DriverOptions{
		XLen: 64, Misa: cpu.Misa, MaxInsns: 1,
	})

	r := newRun(cpu)
	ex := r.exec(tb.Emitter.Ops())
	if ex.kind != "trap" {
		t.Fatalf("flw without F must trap")
	}
	if cpu.Mcause != translate.ExcIllegalInst {
		t.Fatalf("mcause = %d, want ILLEGAL_INST", cpu.Mcause)
	}
}
