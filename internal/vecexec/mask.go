/*
 * rvtrans - Vector mask-producing kernels
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

package vecexec

import "errors"

// ErrCompressRequiresVStartZero is returned by VCompress when
// cpu.Vstart != 0; the instruction has no mid-stream restart point.
var ErrCompressRequiresVStartZero = errors.New("vecexec: vcompress requires vstart == 0")

// zeroMaskByteOnce clears vd's backing byte for element group
// containing idx exactly once, the first time that group is touched
// (idx%8==0 marks the start of a new group of 8 elements sharing one
// byte): byte vd[i>>3] is zeroed exactly once per group of 8 elements
// before any of those elements' bits are OR-ed in.
func zeroMaskByteOnce(vd []byte, idx int) {
	if idx&7 == 0 {
		vd[idx>>3] = 0
	}
}

func orMaskBit(vd []byte, idx int, bit bool) {
	if bit {
		vd[idx>>3] |= 1 << (uint(idx) & 7)
	}
}

// VMadc implements vmadc.v{v,x,i}[m]: the mask-producing carry-out
// form of VAdc. withCarryIn selects the ".m" variant that reads v0 as
// an initial carry (vmadc.vvm) versus the carry-less overflow-only
// form (vmadc.vv); v0 is not read when withCarryIn is false and may
// then be nil.
func VMadc(vd, vs2 []byte, vs1 Operand, v0 []byte, withCarryIn bool, sew, vstart, vl int) {
	for i := vstart; i < vl; i++ {
		zeroMaskByteOnce(vd, i)
		carryIn := withCarryIn && maskBit(v0, i)
		a := elemAt(vs2, sew, i)
		b := vs1.elem(sew, i)
		_, carryOut := addWithCarry(a, b, carryIn, sew)
		orMaskBit(vd, i, carryOut)
	}
}

// VMsbc is VMadc's subtract-with-borrow analogue.
func VMsbc(vd, vs2 []byte, vs1 Operand, v0 []byte, withBorrowIn bool, sew, vstart, vl int) {
	for i := vstart; i < vl; i++ {
		zeroMaskByteOnce(vd, i)
		borrowIn := withBorrowIn && maskBit(v0, i)
		a := elemAt(vs2, sew, i)
		b := vs1.elem(sew, i)
		_, borrowOut := subWithBorrow(a, b, borrowIn, sew)
		orMaskBit(vd, i, borrowOut)
	}
}

// VCompress implements vcompress.vm: pack elements of vs2 whose
// corresponding bit is set in the vs1 mask register into the low
// elements of vd, in order, starting at index 0. Requires vstart == 0;
// the instruction has no mid-stream restart point.
func VCompress(vd, vs2, vs1Mask []byte, sew, vstart, vl int) error {
	if vstart != 0 {
		return ErrCompressRequiresVStartZero
	}
	out := 0
	for i := 0; i < vl; i++ {
		if !maskBit(vs1Mask, i) {
			continue
		}
		setElemAt(vd, sew, out, elemAt(vs2, sew, i))
		out++
	}
	return nil
}
