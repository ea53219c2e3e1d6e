/*
 * rvtrans - RV64 register index enumeration
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

package regs

// Registers64 enumerates symbolic register indices for an RV64 guest.
// Kept as a separate iota block (rather than aliasing the _32 family) so
// a build that links both flavours gets two independent, stable index
// spaces.
const (
	X0_64 = iota
	X1_64
	X2_64
	X3_64
	X4_64
	X5_64
	X6_64
	X7_64
	X8_64
	X9_64
	X10_64
	X11_64
	X12_64
	X13_64
	X14_64
	X15_64
	X16_64
	X17_64
	X18_64
	X19_64
	X20_64
	X21_64
	X22_64
	X23_64
	X24_64
	X25_64
	X26_64
	X27_64
	X28_64
	X29_64
	X30_64
	X31_64

	F0_64
	F1_64
	F2_64
	F3_64
	F4_64
	F5_64
	F6_64
	F7_64
	F8_64
	F9_64
	F10_64
	F11_64
	F12_64
	F13_64
	F14_64
	F15_64
	F16_64
	F17_64
	F18_64
	F19_64
	F20_64
	F21_64
	F22_64
	F23_64
	F24_64
	F25_64
	F26_64
	F27_64
	F28_64
	F29_64
	F30_64
	F31_64

	PC_64
	PRIV_64

	MSTATUS_64
	MIE_64
	MIP_64
	MTVEC_64
	MEPC_64
	MCAUSE_64
	MTVAL_64
	MSCRATCH_64
	MISA_64
	MEDELEG_64
	MIDELEG_64

	SSTATUS_64
	SIE_64
	SIP_64
	STVEC_64
	SEPC_64
	SCAUSE_64
	STVAL_64
	SSCRATCH_64
)

// ByXLen returns the X0 base index for the register enumeration
// matching the given guest width, letting generic code pick the right
// family without a type switch.
func ByXLen(xlen int) (x0, f0, pc, priv int) {
	if xlen == 32 {
		return X0_32, F0_32, PC_32, PRIV_32
	}
	return X0_64, F0_64, PC_64, PRIV_64
}
