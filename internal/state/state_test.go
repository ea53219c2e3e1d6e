/*
 * rvtrans - Guest CPU state tests
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

import "testing"

func TestGPRZeroInvariant(t *testing.T) {
	var c CPU
	c.XLen = 64
	c.GPRWrite(0, 0xdeadbeef)
	if c.GPRRead(0) != 0 {
		t.Fatalf("x0 must always read as zero")
	}
	c.GPRWrite(5, 42)
	if c.GPRRead(5) != 42 {
		t.Fatalf("GPRWrite/Read round trip failed")
	}
}

func TestGPRXLen32Masks(t *testing.T) {
	var c CPU
	c.XLen = 32
	c.GPRWrite(1, 0xFFFFFFFF_00000001)
	if got := c.GPRRead(1); got != 1 {
		t.Fatalf("XLen=32 should mask to 32 bits, got %#x", got)
	}
}

func TestFPRNaNBoxing(t *testing.T) {
	var c CPU
	c.FPRWrite32(3, 0x3F800000)
	if c.FPRRead64(3) != 0xFFFFFFFF3F800000 {
		t.Fatalf("NaN-boxed read = %#x", c.FPRRead64(3))
	}
}

func TestResetDefaults(t *testing.T) {
	var c CPU
	c.MHartID = 7
	c.Reset(64, ExtM|ExtA|ExtF|ExtD|ExtC, 16)
	if c.PC != RiscvStartPC {
		t.Fatalf("PC = %#x, want %#x", c.PC, RiscvStartPC)
	}
	if c.Priv != PrivM {
		t.Fatalf("Priv = %d, want M", c.Priv)
	}
	if c.MHartID != 7 {
		t.Fatalf("MHartID should survive reset, got %d", c.MHartID)
	}
	if !c.HasExt(ExtM) || !c.HasExt(ExtC) {
		t.Fatalf("misa mask not applied: %#x", c.Misa)
	}
	if len(c.V[0]) != 16 {
		t.Fatalf("vector regfile not allocated to vlenb bytes")
	}
}
