/*
 * rvtrans - Vector configuration tests
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

import (
	"testing"

	"github.com/bbradley/rvtrans/internal/state"
)

func newCPU(vlenb int) *state.CPU {
	c := &state.CPU{}
	c.Reset(64, state.ExtV, vlenb)
	return c
}

// TestVsetvliScenario: vsetvli x1, x2, e32,m1
// with x2=100, vlenb=16 -> vsew=32, vlmax=4, vl=4, vstart=0, vill=0.
func TestVsetvliScenario(t *testing.T) {
	c := newCPU(16)
	vtype := uint64(0b010) << 3 // VSEW=010 -> sew=32, VLMUL=000 -> lmul=1
	vl := Vsetvl(c, 100, vtype, false, false, false)
	if vl != 4 {
		t.Fatalf("vl = %d, want 4", vl)
	}
	if c.Vsew != 32 {
		t.Fatalf("vsew = %d, want 32", c.Vsew)
	}
	if c.Vlmax != 4 {
		t.Fatalf("vlmax = %d, want 4", c.Vlmax)
	}
	if c.Vstart != 0 {
		t.Fatalf("vstart = %d, want 0", c.Vstart)
	}
	if c.Vill {
		t.Fatalf("vill should be false")
	}
}

func TestVsetvlMonotonicAndBounded(t *testing.T) {
	c := newCPU(16)
	vtype := uint64(0b010) << 3 // sew=32, lmul=1 -> vlmax=4
	prev := uint64(0)
	for _, avl := range []uint64{0, 1, 2, 3, 4, 5, 100} {
		vl := Vsetvl(c, avl, vtype, false, false, false)
		if vl < prev {
			t.Fatalf("vl regressed: avl=%d vl=%d < prev=%d", avl, vl, prev)
		}
		if vl > c.Vlmax {
			t.Fatalf("vl=%d exceeds vlmax=%d", vl, c.Vlmax)
		}
		prev = vl
	}
}

func TestVsetvlIllegalVflmulOutOfRange(t *testing.T) {
	c := newCPU(16)
	// VLMUL field 0b100 sign-extends to -4, outside [-3,3].
	vtype := uint64(0b010)<<3 | 0b100
	Vsetvl(c, 10, vtype, false, false, false)
	if !c.Vill {
		t.Fatalf("expected vill for out-of-range vflmul")
	}
	if c.Vlmax != 0 || c.VL != 0 {
		t.Fatalf("illegal vtype must force vlmax=vl=0, got vlmax=%d vl=%d", c.Vlmax, c.VL)
	}
}

func TestVsetvlReservedBitsIllegal(t *testing.T) {
	c := newCPU(16)
	vtype := uint64(0b010)<<3 | (1 << 8) // bit 8 is reserved
	Vsetvl(c, 10, vtype, false, false, false)
	if !c.Vill {
		t.Fatalf("expected vill when a reserved vtype bit is set")
	}
}

func TestVsetvlRdZeroRs1ZeroPreservesVL(t *testing.T) {
	c := newCPU(16)
	vtype := uint64(0b010) << 3 // sew=32, lmul=1, vlmax=4
	Vsetvl(c, 3, vtype, false, false, false)
	if c.VL != 3 {
		t.Fatalf("setup: vl=%d want 3", c.VL)
	}
	vl := Vsetvl(c, 0, vtype, false, true, true)
	if vl != 3 {
		t.Fatalf("rd=0,rs1=0 should preserve vl, got %d", vl)
	}
}

func TestVsetvlRs1ZeroRdNonZeroSetsVlmax(t *testing.T) {
	c := newCPU(16)
	vtype := uint64(0b010) << 3
	vl := Vsetvl(c, 0, vtype, false, false, true)
	if vl != c.Vlmax {
		t.Fatalf("rs1=0,rd!=0 should set vl=vlmax=%d, got %d", c.Vlmax, vl)
	}
}

func TestVsetivliImmediateClampedToVlmax(t *testing.T) {
	c := newCPU(16)
	vtype := uint64(0b010) << 3 // vlmax=4
	vl := Vsetvl(c, 31, vtype, true, false, false)
	if vl != 4 {
		t.Fatalf("immediate AVL should clamp to vlmax=4, got %d", vl)
	}
}
