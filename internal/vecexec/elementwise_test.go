/*
 * rvtrans - Vector element-wise kernel tests
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

import "testing"

func TestVAdcCarryPropagates(t *testing.T) {
	vd := make([]byte, 4)
	vs2 := make([]byte, 4)
	setElemAt(vs2, 32, 0, 0xFFFFFFFF)
	v0 := make([]byte, 1)
	v0[0] = 1 // carry-in for element 0
	VAdc(vd, vs2, Operand{Scalar: 0}, v0, 32, 0, 1)
	if got := elemAt(vd, 32, 0); got != 0 {
		t.Fatalf("0xFFFFFFFF + 0 + carry = %#x, want 0 (wrapped)", got)
	}
}

func TestVAdcNoCarryIn(t *testing.T) {
	vd := make([]byte, 4)
	vs2 := make([]byte, 4)
	setElemAt(vs2, 32, 0, 5)
	v0 := make([]byte, 1) // bit 0 clear
	VAdc(vd, vs2, Operand{Scalar: 7}, v0, 32, 0, 1)
	if got := elemAt(vd, 32, 0); got != 12 {
		t.Fatalf("5+7+0 = %d, want 12", got)
	}
}

func TestVSbcBorrowPropagates(t *testing.T) {
	vd := make([]byte, 4)
	vs2 := make([]byte, 4)
	setElemAt(vs2, 32, 0, 5)
	v0 := make([]byte, 1)
	v0[0] = 1
	VSbc(vd, vs2, Operand{Scalar: 5}, v0, 32, 0, 1)
	if got := elemAt(vd, 32, 0); got != 0xFFFFFFFF {
		t.Fatalf("5-5-1 = %#x, want 0xFFFFFFFF (wrapped)", got)
	}
}

func TestVMergeSelectsByMask(t *testing.T) {
	vd := make([]byte, 16)
	vs2 := make([]byte, 16)
	for i := 0; i < 4; i++ {
		setElemAt(vs2, 32, i, uint64(100+i))
	}
	v0 := []byte{0b0000_0101} // elements 0,2 take vs1; 1,3 take vs2
	VMerge(vd, vs2, Operand{Scalar: 9}, v0, 32, 0, 4)
	want := []uint64{9, 101, 9, 103}
	for i, w := range want {
		if got := elemAt(vd, 32, i); got != w {
			t.Fatalf("elem %d = %d, want %d", i, got, w)
		}
	}
}

func TestVMvVVBroadcastsImmediate(t *testing.T) {
	vd := make([]byte, 16)
	VMvVV(vd, Operand{Scalar: 0xABCD}, 32, 0, 4)
	for i := 0; i < 4; i++ {
		if got := elemAt(vd, 32, i); got != 0xABCD {
			t.Fatalf("elem %d = %#x, want 0xABCD", i, got)
		}
	}
}

func TestVMvVVRespectsVStart(t *testing.T) {
	vd := make([]byte, 16)
	setElemAt(vd, 32, 0, 0x1111)
	VMvVV(vd, Operand{Scalar: 0x2222}, 32, 1, 4)
	if got := elemAt(vd, 32, 0); got != 0x1111 {
		t.Fatalf("element before vstart must be untouched, got %#x", got)
	}
	if got := elemAt(vd, 32, 1); got != 0x2222 {
		t.Fatalf("element at vstart = %#x, want 0x2222", got)
	}
}
