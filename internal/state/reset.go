/*
 * rvtrans - Guest CPU reset
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

package state

// Reset zeroes the guest state except MHartID, applies the misa
// extension mask, and sets PC to the reset vector and Priv to M. A
// zero pass followed by explicit non-zero defaults means re-resetting
// an in-place CPU (reused across translations) behaves identically to
// a fresh one.
func (c *CPU) Reset(xlen int, misaMask uint64, vlenb int) {
	hart := c.MHartID
	*c = CPU{}

	c.XLen = xlen
	c.MHartID = hart
	c.Misa = misaMask | ExtI | ExtS | ExtU
	c.Priv = PrivM
	c.PC = RiscvStartPC

	c.Vlenb = vlenb
	c.Elen = 64
	c.VlmulNum, c.VlmulDen = 1, 1
	for i := range c.V {
		c.V[i] = make([]byte, vlenb)
	}
}
