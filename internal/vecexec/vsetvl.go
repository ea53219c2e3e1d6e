/*
 * rvtrans - Vector configuration kernel
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

// Package vecexec implements the vector helper kernel: the
// runtime-resident element-wise routines a vector instruction's
// translated CallHelper invokes instead of having its loop generated
// inline. Execute and Vsetvl operate directly on a *state.CPU using its
// live VL/SEW/VSTART configuration, and the element kernels they call
// take that configuration as arguments; none of it is emitted as IR,
// and the element loops dispatch on element width at run time rather
// than being unrolled per SEW.
package vecexec

import (
	"fmt"

	"github.com/bbradley/rvtrans/internal/state"
	"github.com/bbradley/rvtrans/util/debug"
)

// TraceLevel enables the vector kernel's debug.Tracef output when the
// debug.Vector bit is set.
var TraceLevel int

// vsewOf decodes the 3-bit VSEW subfield of vtype into a bit width.
func vsewOf(vtype uint64) int {
	field := (vtype >> 3) & 0x7
	return 1 << (field + 3)
}

// vlmulOf decodes the 3-bit VLMUL subfield of vtype into a signed
// power-of-two exponent (-3..3 valid; field value 0b100, exponent -4,
// is reserved).
func vlmulOf(vtype uint64) int {
	field := (vtype >> 0) & 0x7
	if field&0x4 != 0 {
		return int(int8(field|0xF8)) // sign-extend 3 bits through an int8
	}
	return int(field)
}

// rationalLMUL turns the signed exponent into an explicit
// numerator/denominator pair, both powers of two, so the vlmax
// computation never goes through float64 rounding.
func rationalLMUL(exp int) (num, den int) {
	if exp >= 0 {
		return 1 << exp, 1
	}
	return 1, 1 << (-exp)
}

// Vtype bit layout (low byte; upper bits beyond vma are reserved and
// must be zero for a legal vtype).
const (
	vtypeVMABit = 1 << 7
	vtypeVTABit = 1 << 6
)

// deriveVType computes vsew/vlmul/vill/vta/vma from a raw vtype value
// and the CPU's ELEN: vill holds when vflmul falls outside [1/8, 8],
// when vsew exceeds min(vflmul,1)*ELEN, or when any reserved bit above
// vma is set.
func deriveVType(vtype uint64, elen int) (vsew int, num, den int, vta, vma, vill bool) {
	reserved := vtype &^ uint64(vtypeVMABit|vtypeVTABit|0x3F)
	vsew = vsewOf(vtype)
	num, den = rationalLMUL(vlmulOf(vtype))
	vta = vtype&vtypeVTABit != 0
	vma = vtype&vtypeVMABit != 0

	if reserved != 0 {
		vill = true
		return
	}
	// vflmul ∈ [1/8, 8] ⇔ num/den ∈ [1/8, 8]: since both are powers of
	// two this is exactly num <= 8*den && den <= 8*num.
	if num > 8*den || den > 8*num {
		vill = true
		return
	}
	// vsew > min(vflmul,1)*ELEN: min(vflmul,1) is 1 when num>=den, else
	// num/den.
	limit := elen
	if num < den {
		limit = elen * num / den
	}
	if vsew > limit {
		vill = true
	}
	return
}

// Vsetvl implements the vsetvl{i}/vsetivli family. avl is the
// requested vector length: for the immediate forms the caller
// passes the decoded immediate directly and sets isImm; for the
// register forms it is cpu.GPRRead(rs1). rdZero/rs1Zero name whether
// the destination/source register fields were architectural x0,
// selecting the "keep current vl" and "set vlmax" special cases.
// Returns the new vl, which is also left in cpu.VL.
func Vsetvl(cpu *state.CPU, avl uint64, rawVType uint64, isImm, rdZero, rs1Zero bool) uint64 {
	vsew, num, den, vta, vma, vill := deriveVType(rawVType, cpu.Elen)

	cpu.Vsew = vsew
	cpu.VlmulNum, cpu.VlmulDen = num, den
	cpu.Vta, cpu.Vma = vta, vma
	cpu.Vill = vill

	if vill {
		cpu.Vtype = 1 << 63
		cpu.Vlmax = 0
		cpu.VL = 0
		cpu.Vstart = 0
		return 0
	}
	cpu.Vtype = rawVType

	vlenBits := cpu.Vlenb * 8
	vlmax := uint64(vlenBits/vsew) * uint64(num) / uint64(den)
	cpu.Vlmax = vlmax

	var vl uint64
	switch {
	case isImm:
		vl = avl
		if vl > vlmax {
			vl = vlmax
		}
	case rdZero && rs1Zero:
		// Preserve current VL, clamped to the new vlmax.
		vl = cpu.VL
		if vl > vlmax {
			vl = vlmax
		}
	case rs1Zero:
		// rd != 0: set vl to vlmax (the "maximal AVL" request).
		vl = vlmax
	default:
		vl = avl
		if vl > vlmax {
			vl = vlmax
		}
	}

	cpu.VL = vl
	cpu.Vstart = 0
	debug.Tracef("vector", debug.Vector, TraceLevel, "vsetvl avl=%d %s", avl, ConfigString(cpu))
	return vl
}

// ConfigString renders the derived configuration for trace logging.
func ConfigString(cpu *state.CPU) string {
	return fmt.Sprintf("vsew=%d vlmul=%d/%d vl=%d vlmax=%d vill=%v",
		cpu.Vsew, cpu.VlmulNum, cpu.VlmulDen, cpu.VL, cpu.Vlmax, cpu.Vill)
}
