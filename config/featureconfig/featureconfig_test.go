/*
 * rvtrans - Feature-string parser tests
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

package featureconfig

import "testing"

func TestParseRV64GC(t *testing.T) {
	f, err := Parse("rv64gc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.XLen != 64 {
		t.Fatalf("XLen = %d, want 64", f.XLen)
	}
	if !(f.M && f.A && f.F && f.D && f.C) {
		t.Fatalf("rv64gc should enable M,A,F,D,C: %+v", f)
	}
	if f.V {
		t.Fatalf("rv64gc should not enable V: %+v", f)
	}
	if f.Vlen != 128 {
		t.Fatalf("default Vlen = %d, want 128", f.Vlen)
	}
}

func TestParseVlenOption(t *testing.T) {
	f, err := Parse("rv32imafdcv,vlen=256")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.XLen != 32 || !f.V || f.Vlen != 256 {
		t.Fatalf("got %+v", f)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"rv48i",
		"rv64",
		"rv64iz",
		"rv64i,bogus=1",
		"rv64i,vlen=7",
		"rv64i,vlen=-8",
	}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Errorf("Parse(%q) should have failed", c)
		}
	}
}
