/*
 * rvtrans - Guest exception emission
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

import (
	"github.com/bbradley/rvtrans/internal/helpers"
	"github.com/bbradley/rvtrans/internal/ir"
	"github.com/bbradley/rvtrans/util/debug"
)

// RISC-V exception causes the translators raise. Values match the
// standard mcause encoding for synchronous exceptions.
const (
	ExcInstAddrMisaligned  = 0
	ExcIllegalInst         = 2
	ExcBreakpoint          = 3
	ExcLoadAddrMisaligned  = 4
	ExcStoreAddrMisaligned = 6
	ExcECallU              = 8
	ExcECallS              = 9
	ExcECallM              = 11
)

// raiseException unconditionally emits a call to raise_exception(cause)
// and marks the block BRANCH: the helper never returns to generated
// code, so this counts as the translator having emitted its own exit --
// the driver must not append anything further. The instruction's own PC
// is published first so the helper's mepc/sepc write reports this
// instruction's address, not whatever the PC slot last held.
func (c *Context) raiseException(cause int64) {
	c.publishPC()
	c.Emitter.CallHelper(helpers.RaiseException, ir.HelperArg{Arg: ir.ImmArg(cause)})
	c.BState = BStateBranch
}

// raiseExceptionMBadAddr is raiseException plus a faulting address,
// used by misaligned-branch-target faults and by illegalInstruction
// (with the opcode word) so the helper can populate mtval/stval.
func (c *Context) raiseExceptionMBadAddr(cause int64, addr ir.Temp) {
	c.publishPC()
	c.Emitter.CallHelper(helpers.RaiseExceptionMBadAddr,
		ir.HelperArg{Arg: ir.ImmArg(cause)},
		ir.HelperArg{Arg: ir.TempArg(addr)},
	)
	c.BState = BStateBranch
}

// illegalInstruction raises ILLEGAL_INST with mtval carrying the raw
// opcode word (16-bit forms zero-extended), so the trap handler can
// report the offending encoding. It is only correct where nothing else
// will be emitted for this instruction -- it marks the block BRANCH, so
// the driver trusts the translator to have produced the instruction's
// only exit.
func (c *Context) illegalInstruction() {
	debug.Tracef("decode", debug.Decode, TraceLevel,
		"reserved/illegal encoding %#x at %#x", c.Opcode, c.PC)
	tval := c.Emitter.NewTempWord()
	c.Emitter.MovImm(tval, int64(c.Opcode))
	c.raiseExceptionMBadAddr(ExcIllegalInst, tval)
	c.Emitter.Release(tval)
}

// illegalInstructionGuarded emits the same IR as illegalInstruction but
// leaves BState untouched. Use this from inside a runtime-evaluated
// gate (FS gate, vill gate) whose "ok" path falls through to more IR
// for the same instruction: the exception call only fires on the
// guest's bad-case branch, so it must not make the translator believe
// the whole instruction already has its exit.
func (c *Context) illegalInstructionGuarded() {
	tval := c.Emitter.NewTempWord()
	c.Emitter.MovImm(tval, int64(c.Opcode))
	c.publishPC()
	c.Emitter.CallHelper(helpers.RaiseExceptionMBadAddr,
		ir.HelperArg{Arg: ir.ImmArg(ExcIllegalInst)},
		ir.HelperArg{Arg: ir.TempArg(tval)},
	)
	c.Emitter.Release(tval)
}
