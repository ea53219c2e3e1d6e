/*
 * rvtrans - Vector helper dispatch
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
	"errors"

	"github.com/bbradley/rvtrans/internal/helpers"
	"github.com/bbradley/rvtrans/internal/state"
)

// ErrIllegalVectorOperand is returned when an operand index violates
// the element-op contract: an out-of-range register number, or a
// destination that overlaps v0 while v0 supplies the mask/carry input.
// The runtime raises illegal-instruction for it.
var ErrIllegalVectorOperand = errors.New("vecexec: illegal vector operand")

// Execute is the vector_op helper body: dispatch one element-wise
// operation by its helpers.VecOp* code against the live configuration
// in cpu. src is the already-resolved third operand (vector register
// contents or broadcast scalar). usesMask carries the decoded mask/
// carry flag: for the carry/borrow family it means v0 supplies the
// carry-in, for the mask-producing forms it selects the with-carry
// variant, and for merge it is always set.
//
// A successful element op clears vstart, matching the architectural
// rule that a completed vector instruction leaves no partial-restart
// state behind.
func Execute(cpu *state.CPU, op int, vd, vs2 uint32, src Operand, usesMask bool) error {
	if vd >= 32 || vs2 >= 32 {
		return ErrIllegalVectorOperand
	}
	if usesMask && vd == 0 && op != helpers.VecOpMadc && op != helpers.VecOpMsbc {
		// v0 is the mask/carry source; an element-writing destination
		// must not clobber it mid-loop.
		return ErrIllegalVectorOperand
	}

	sew := cpu.Vsew
	vstart, vl := int(cpu.Vstart), int(cpu.VL)
	v0 := cpu.V[0]

	switch op {
	case helpers.VecOpAdc:
		VAdc(cpu.V[vd], cpu.V[vs2], src, v0, sew, vstart, vl)
	case helpers.VecOpSbc:
		VSbc(cpu.V[vd], cpu.V[vs2], src, v0, sew, vstart, vl)
	case helpers.VecOpMadc:
		VMadc(cpu.V[vd], cpu.V[vs2], src, v0, usesMask, sew, vstart, vl)
	case helpers.VecOpMsbc:
		VMsbc(cpu.V[vd], cpu.V[vs2], src, v0, usesMask, sew, vstart, vl)
	case helpers.VecOpMerge:
		VMerge(cpu.V[vd], cpu.V[vs2], src, v0, sew, vstart, vl)
	case helpers.VecOpMv:
		VMvVV(cpu.V[vd], src, sew, vstart, vl)
	case helpers.VecOpCompress:
		if src.Vec == nil {
			return ErrIllegalVectorOperand
		}
		if err := VCompress(cpu.V[vd], cpu.V[vs2], src.Vec, sew, vstart, vl); err != nil {
			return err
		}
	default:
		return ErrIllegalVectorOperand
	}

	cpu.Vstart = 0
	return nil
}
