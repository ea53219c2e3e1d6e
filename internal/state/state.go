/*
 * rvtrans - Guest CPU state
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

// Package state defines the guest CPU state shared between generated
// code and runtime helpers. Nothing in this package emits IR or
// decodes instructions; it only owns the data the core reads and
// writes. One flat struct, no builder, and a single Reset method that
// zeroes almost everything and then sets the handful of architectural
// non-zero defaults.
package state

// Privilege levels.
const (
	PrivU = 0
	PrivS = 1
	PrivM = 3
)

// misa extension bits, one per ISA letter.
const (
	ExtI = 1 << (('I' - 'A'))
	ExtM = 1 << (('M' - 'A'))
	ExtA = 1 << (('A' - 'A'))
	ExtF = 1 << (('F' - 'A'))
	ExtD = 1 << (('D' - 'A'))
	ExtC = 1 << (('C' - 'A'))
	ExtV = 1 << (('V' - 'A'))
	ExtS = 1 << (('S' - 'A'))
	ExtU = 1 << (('U' - 'A'))
)

// RiscvStartPC is the architectural reset vector this core assumes,
// named by the cpu_state_reset contract.
const RiscvStartPC = 0x1000

// CPU is the guest CPU state shared between generated code and helpers.
type CPU struct {
	XLen int // 32 or 64

	GPR [32]uint64 // x0 reads as zero, writes discarded
	FPR [32]uint64 // NaN-boxed for 32-bit ops

	PC uint64

	// Machine-mode CSRs.
	Mstatus, Mie, Mip               uint64
	Mtvec, Mepc, Mcause, Mtval      uint64
	Mscratch, Misa, Medeleg, Mideleg uint64

	// Supervisor-visible views.
	Sstatus, Sie, Sip           uint64
	Stvec, Sepc, Scause, Stval  uint64
	Sscratch                    uint64

	MHartID uint64
	Priv    int

	// Vector configuration, set by vsetvl.
	VL, Vlmax, Vstart uint64
	Vtype             uint64
	Vsew              int  // selected element width in bits: 8,16,32,64
	VlmulNum, VlmulDen int // vflmul = VlmulNum/VlmulDen, both powers of two
	Vill              bool
	Vta, Vma          bool
	Vlenb             int // vector register width in bytes
	Elen              int // max element width in bits, 64 for this core

	V [32][]byte // vlenb bytes per vector register

	LoadRes uint64 // reservation-address latch; see DESIGN.md open question

	SinglestepEnabled bool
	ExceptionIndex    uint32
	Breakpoints       []uint64
}

// XLenMask returns the all-ones mask for the guest register width.
func (c *CPU) XLenMask() uint64 {
	if c.XLen == 32 {
		return 0xFFFFFFFF
	}
	return ^uint64(0)
}

// GPRRead returns the value of integer register i; register 0 always
// reads as zero.
func (c *CPU) GPRRead(i uint32) uint64 {
	if i == 0 {
		return 0
	}
	return c.GPR[i&31] & c.XLenMask()
}

// GPRWrite writes v to integer register i; writes to register 0 are
// discarded.
func (c *CPU) GPRWrite(i uint32, v uint64) {
	if i == 0 {
		return
	}
	c.GPR[i&31] = v & c.XLenMask()
}

// FPRRead64 returns the raw 64-bit contents of FP register i.
func (c *CPU) FPRRead64(i uint32) uint64 { return c.FPR[i&31] }

// FPRWrite64 writes the raw 64-bit contents of FP register i.
func (c *CPU) FPRWrite64(i uint32, v uint64) { c.FPR[i&31] = v }

// FPRRead32 returns the single-precision value held in the low 32 bits
// of FP register i (callers are responsible for the NaN-boxing check;
// the translator emits that as IR, not here).
func (c *CPU) FPRRead32(i uint32) uint32 { return uint32(c.FPR[i&31]) }

// FPRWrite32 NaN-boxes v into FP register i: the upper 32 bits are set
// to all ones per the RISC-V NaN-boxing convention.
func (c *CPU) FPRWrite32(i uint32, v uint32) {
	c.FPR[i&31] = 0xFFFFFFFF00000000 | uint64(v)
}

// HasExt reports whether the given misa extension bit is set.
func (c *CPU) HasExt(bit uint64) bool { return c.Misa&bit != 0 }

// MstatusFS extracts the FS field (bits [14:13]) of mstatus.
func (c *CPU) MstatusFS() uint64 { return (c.Mstatus >> 13) & 0x3 }
