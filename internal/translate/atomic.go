/*
 * rvtrans - A-extension translators
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

// AtomicOp names one A-extension operation.
type AtomicOp int

const (
	AtomicLR AtomicOp = iota
	AtomicSC
	AtomicSwap
	AtomicAdd
	AtomicXor
	AtomicAnd
	AtomicOr
	AtomicMin
	AtomicMax
	AtomicMinu
	AtomicMaxu
)

// GenAtomic implements the A-extension translator. This core treats
// every atomic sequence as if uncontended: LR returns the loaded value,
// SC always succeeds and reports success, AMOs perform load; op;
// store; return-old. That is correct only when the embedding runtime
// serialises guest execution around these sequences; see DESIGN.md for
// the accepted limitation.
//
// The sequence uses local temporaries because the min/max variants
// branch to an early-exit label that skips the store when the memory
// value already satisfies the ordering, and that label must still see
// a live operand after the branch.
func (c *Context) GenAtomic(op AtomicOp, rd, rs1, rs2 uint32, width ir.MemWidth) {
	e := c.Emitter

	addr := e.NewLocalWord()
	e.GetReg(addr, rs1)

	old := e.NewLocalWord()
	e.Load(old, width, ir.Signed, c.MMUIndex, addr)

	switch op {
	case AtomicLR:
		// LR returns the loaded value. load_res is the reservation
		// latch SC is supposed to check; this core never writes it --
		// see DESIGN.md's open-question note, carried through as the
		// documented limitation rather than silently fixed.
		e.PutReg(rd, old)
		e.Release(addr)
		e.Release(old)
		return
	case AtomicSC:
		val := e.NewLocalWord()
		e.GetReg(val, rs2)
		e.Store(width, c.MMUIndex, addr, val)
		zero := e.NewLocalWord()
		e.MovImm(zero, 0) // SC always reports success under this model
		e.PutReg(rd, zero)
		e.Release(addr)
		e.Release(old)
		e.Release(val)
		e.Release(zero)
		return
	}

	operand := e.NewLocalWord()
	e.GetReg(operand, rs2)

	result := e.NewLocalWord()
	skipStore := e.Label()

	switch op {
	case AtomicSwap:
		e.Mov(result, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicAdd:
		e.Add(result, old, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicXor:
		e.Xor(result, old, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicAnd:
		e.And(result, old, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicOr:
		e.Or(result, old, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicMin:
		// Memory already holds the smaller value; storing it back is a
		// no-op, so skip to the early-exit label instead.
		e.BrCond(ir.CondGE, operand, old, skipStore)
		e.Mov(result, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicMax:
		e.BrCond(ir.CondGE, old, operand, skipStore)
		e.Mov(result, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicMinu:
		e.BrCond(ir.CondGEU, operand, old, skipStore)
		e.Mov(result, operand)
		e.Store(width, c.MMUIndex, addr, result)
	case AtomicMaxu:
		e.BrCond(ir.CondGEU, old, operand, skipStore)
		e.Mov(result, operand)
		e.Store(width, c.MMUIndex, addr, result)
	}

	e.SetLabel(skipStore)
	e.PutReg(rd, old)
	e.Release(addr)
	e.Release(old)
	e.Release(operand)
	e.Release(result)
}
