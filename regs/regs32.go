/*
 * rvtrans - RV32 register index enumeration
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

// Package regs exports the register-index enumerations the outer
// runtime uses to address guest registers by symbolic name. The
// XLEN32- and XLEN64-suffixed families are deliberately separate so
// both flavours can coexist in one build.
package regs

// Registers32 enumerates symbolic register indices for an RV32 guest.
const (
	X0_32 = iota
	X1_32
	X2_32
	X3_32
	X4_32
	X5_32
	X6_32
	X7_32
	X8_32
	X9_32
	X10_32
	X11_32
	X12_32
	X13_32
	X14_32
	X15_32
	X16_32
	X17_32
	X18_32
	X19_32
	X20_32
	X21_32
	X22_32
	X23_32
	X24_32
	X25_32
	X26_32
	X27_32
	X28_32
	X29_32
	X30_32
	X31_32

	F0_32
	F1_32
	F2_32
	F3_32
	F4_32
	F5_32
	F6_32
	F7_32
	F8_32
	F9_32
	F10_32
	F11_32
	F12_32
	F13_32
	F14_32
	F15_32
	F16_32
	F17_32
	F18_32
	F19_32
	F20_32
	F21_32
	F22_32
	F23_32
	F24_32
	F25_32
	F26_32
	F27_32
	F28_32
	F29_32
	F30_32
	F31_32

	PC_32
	PRIV_32

	MSTATUS_32
	MIE_32
	MIP_32
	MTVEC_32
	MEPC_32
	MCAUSE_32
	MTVAL_32
	MSCRATCH_32
	MISA_32
	MEDELEG_32
	MIDELEG_32

	SSTATUS_32
	SIE_32
	SIP_32
	STVEC_32
	SEPC_32
	SCAUSE_32
	STVAL_32
	SSCRATCH_32
)
