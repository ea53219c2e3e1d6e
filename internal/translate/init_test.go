/*
 * rvtrans - Translator initialization tests
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

func TestInitRV64GC(t *testing.T) {
	opts, vlenb, err := translate.Init("rv64gc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.XLen != 64 {
		t.Fatalf("XLen = %d, want 64", opts.XLen)
	}
	for _, bit := range []uint64{state.ExtI, state.ExtM, state.ExtA, state.ExtF, state.ExtD, state.ExtC} {
		if opts.Misa&bit == 0 {
			t.Fatalf("misa %#x missing extension bit %#x", opts.Misa, bit)
		}
	}
	if opts.Misa&state.ExtV != 0 {
		t.Fatalf("rv64gc must not enable V")
	}
	if vlenb != 16 {
		t.Fatalf("vlenb = %d, want the 128-bit default (16 bytes)", vlenb)
	}
}

func TestInitVectorVlen(t *testing.T) {
	opts, vlenb, err := translate.Init("rv64gcv,vlen=256")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Misa&state.ExtV == 0 {
		t.Fatalf("V not enabled: %#x", opts.Misa)
	}
	if vlenb != 32 {
		t.Fatalf("vlenb = %d, want 32", vlenb)
	}
}

func TestInitRejectsMalformedSpec(t *testing.T) {
	if _, _, err := translate.Init("rv48i"); err == nil {
		t.Fatalf("rv48i should be rejected")
	}
}
