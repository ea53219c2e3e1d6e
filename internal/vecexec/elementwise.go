/*
 * rvtrans - Vector element-wise kernels
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

import "math/bits"

// Operand names one vector-instruction source: either a vector register
// (Vec != nil, read element-wise) or a scalar broadcast to every
// element (an x-register value for the .vx forms or a sign-extended
// 5-bit immediate for the .vi forms), selected by the translator at
// emission time and passed down uninterpreted.
type Operand struct {
	Vec    []byte
	Scalar uint64
}

func maskFor(sew int) uint64 {
	if sew >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << sew) - 1
}

// elemAt reads the idx'th SEW-wide little-endian element of reg,
// zero-extended into a uint64.
func elemAt(reg []byte, sew, idx int) uint64 {
	width := sew / 8
	off := idx * width
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(reg[off+i]) << (8 * i)
	}
	return v
}

// setElemAt writes the low sew bits of val as the idx'th SEW-wide
// little-endian element of reg.
func setElemAt(reg []byte, sew, idx int, val uint64) {
	width := sew / 8
	off := idx * width
	for i := 0; i < width; i++ {
		reg[off+i] = byte(val >> (8 * i))
	}
}

func (o Operand) elem(sew, idx int) uint64 {
	if o.Vec != nil {
		return elemAt(o.Vec, sew, idx)
	}
	return o.Scalar & maskFor(sew)
}

// maskBit reads bit idx of a byte-addressed mask register (always v0's
// layout: bit-indexed, one bit per element).
func maskBit(maskReg []byte, idx int) bool {
	return maskReg[idx>>3]>>(uint(idx)&7)&1 != 0
}

// addWithCarry computes (a+b+carryIn) mod 2^sew and the carry out of
// bit sew-1, using 64-bit add-with-carry primitives so the overflow
// check is exact regardless of whether sew is 64 (true machine
// overflow) or narrower (an explicit bit-sew overflow, since a+b+c
// never overflows 64 bits when both operands are already masked to
// fewer than 64 bits).
func addWithCarry(a, b uint64, carryIn bool, sew int) (result uint64, carryOut bool) {
	var cin uint64
	if carryIn {
		cin = 1
	}
	lo1, c1 := bits.Add64(a, b, 0)
	lo, c2 := bits.Add64(lo1, 0, cin)
	if sew >= 64 {
		return lo, (c1 | c2) != 0
	}
	return lo & maskFor(sew), (lo>>uint(sew))&1 != 0
}

// subWithBorrow computes (a-b-borrowIn) mod 2^sew and the borrow out,
// i.e. whether the unbounded result a-b-borrowIn is negative. This is
// scale-invariant (true regardless of sew) because a and b are always
// zero-extended into the full 64-bit operand before the subtraction.
func subWithBorrow(a, b uint64, borrowIn bool, sew int) (result uint64, borrowOut bool) {
	var bin uint64
	if borrowIn {
		bin = 1
	}
	d1, b1 := bits.Sub64(a, b, 0)
	d, b2 := bits.Sub64(d1, 0, bin)
	return d & maskFor(sew), (b1 | b2) != 0
}

// VAdc implements vadc.v{v,x,i}m: add-with-carry-in from v0, elements
// [vstart, vl), writing the sum (mod 2^sew, no mask output) into vd.
// vd must not alias v0 since v0 supplies the carry-in; Execute rejects
// vd == 0 before calling. vs2 is not checked against v0.
func VAdc(vd, vs2 []byte, vs1 Operand, v0 []byte, sew, vstart, vl int) {
	for i := vstart; i < vl; i++ {
		a := elemAt(vs2, sew, i)
		b := vs1.elem(sew, i)
		sum, _ := addWithCarry(a, b, maskBit(v0, i), sew)
		setElemAt(vd, sew, i, sum)
	}
}

// VSbc implements vsbc.v{v,x}m: subtract-with-borrow-in from v0.
func VSbc(vd, vs2 []byte, vs1 Operand, v0 []byte, sew, vstart, vl int) {
	for i := vstart; i < vl; i++ {
		a := elemAt(vs2, sew, i)
		b := vs1.elem(sew, i)
		diff, _ := subWithBorrow(a, b, maskBit(v0, i), sew)
		setElemAt(vd, sew, i, diff)
	}
}

// VMvVV implements vmv.v.v/vmv.v.x/vmv.v.i: an unconditional,
// unmasked broadcast-or-copy into vd across [vstart, vl).
func VMvVV(vd []byte, vs1 Operand, sew, vstart, vl int) {
	for i := vstart; i < vl; i++ {
		setElemAt(vd, sew, i, vs1.elem(sew, i))
	}
}

// VMerge implements vmerge.vvm/vxm/vim: per-element select between vs1
// (mask bit set) and vs2 (mask bit clear), using v0 as the mask -- the
// vm=0 form of the same funct6 VMvVV shares with plain vmv.
func VMerge(vd, vs2 []byte, vs1 Operand, v0 []byte, sew, vstart, vl int) {
	for i := vstart; i < vl; i++ {
		if maskBit(v0, i) {
			setElemAt(vd, sew, i, vs1.elem(sew, i))
		} else {
			setElemAt(vd, sew, i, elemAt(vs2, sew, i))
		}
	}
}
