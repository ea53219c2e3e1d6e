/*
 * rvtrans - Extension gating bits
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

package translate

import "github.com/bbradley/rvtrans/internal/ir"

// misa extension bits the decode tables gate on. These mirror the
// corresponding internal/state constants by value; they are kept local
// so the decode tables stay free of the guest-state package -- the
// dispatcher only ever needs the bit, never the state struct.
const (
	extMBit = 1 << ('M' - 'A')
	extABit = 1 << ('A' - 'A')
	extFBit = 1 << ('F' - 'A')
	extDBit = 1 << ('D' - 'A')
	extCBit = 1 << ('C' - 'A')
	extVBit = 1 << ('V' - 'A')
)

// fpExtOK reports whether the misa bit for the given FP width is live:
// F for single precision, D for double.
func (c *Context) fpExtOK(width ir.FPWidth) bool {
	if width == ir.F32 {
		return c.HasExt(extFBit)
	}
	return c.HasExt(extDBit)
}
