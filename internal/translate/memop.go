/*
 * rvtrans - Load/store translators and the FS gate
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
)

// mstatusFSMask selects the mstatus.FS field; 0 means the FPU is
// disabled and any FP instruction traps.
const mstatusFSMask = 0x3 << 13

// csrMstatus is the mstatus CSR number, read by the FS gate.
const csrMstatus = 0x300

// GenLoad implements the integer load family (LB/LBU/LH/LHU/LW/LWU/LD).
// The effective address is rs1+imm; the current PC is published first
// so a memory trap's epc names this instruction.
func (c *Context) GenLoad(rd, rs1 uint32, imm int32, width ir.MemWidth, sign ir.MemSign) {
	e := c.Emitter
	c.publishPC()

	addr := c.genEffectiveAddress(rs1, imm)
	dest := e.NewTempWord()
	e.Load(dest, width, sign, c.MMUIndex, addr)
	e.PutReg(rd, dest)
	e.Release(addr)
	e.Release(dest)
}

// GenStore implements the integer store family (SB/SH/SW/SD). Both the
// address temp and the data temp are computed before the memory op is
// emitted.
func (c *Context) GenStore(rs1, rs2 uint32, imm int32, width ir.MemWidth) {
	e := c.Emitter
	c.publishPC()

	addr := c.genEffectiveAddress(rs1, imm)
	val := e.NewTempWord()
	e.GetReg(val, rs2)
	e.Store(width, c.MMUIndex, addr, val)
	e.Release(addr)
	e.Release(val)
}

// GenFPLoad implements FLW/FLD, emitting the FS-enable gate before the
// memory access: mstatus.FS is masked and a zero value branches to an
// illegal-instruction exit, evaluated at guest-execution time.
func (c *Context) GenFPLoad(rd uint32, rs1 uint32, imm int32, width ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter
	c.publishPC()

	addr := c.genEffectiveAddress(rs1, imm)
	memWidth := ir.Mem64
	if width == ir.F32 {
		memWidth = ir.Mem32
	}
	raw := e.NewTempWord()
	e.Load(raw, memWidth, ir.Unsigned, c.MMUIndex, addr)
	dest := c.newFPTemp(width)
	e.FMovFromGPR(dest, raw, width)
	e.PutFReg(rd, dest, width)
	e.Release(addr)
	e.Release(raw)
	e.Release(dest)
}

// GenFPStore implements FSW/FSD, FS-gated the same way as GenFPLoad.
func (c *Context) GenFPStore(rs1, rs2 uint32, imm int32, width ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter
	c.publishPC()

	addr := c.genEffectiveAddress(rs1, imm)
	src := c.newFPTemp(width)
	e.GetFReg(src, rs2, width)
	raw := e.NewTempWord()
	e.FMovToGPR(raw, src, width)
	memWidth := ir.Mem64
	if width == ir.F32 {
		memWidth = ir.Mem32
	}
	e.Store(memWidth, c.MMUIndex, addr, raw)
	e.Release(addr)
	e.Release(src)
	e.Release(raw)
}

// genEffectiveAddress computes rs1+imm into a fresh temp.
func (c *Context) genEffectiveAddress(rs1 uint32, imm int32) ir.Temp {
	e := c.Emitter
	base := e.NewTempWord()
	e.GetReg(base, rs1)
	offs := e.NewTempWord()
	e.MovImm(offs, int64(imm))
	addr := e.NewTempWord()
	e.Add(addr, base, offs)
	e.Release(base)
	e.Release(offs)
	return addr
}

// publishPC writes the instruction's own PC into the guest PC slot so
// that a fault raised by the following memory op reports this
// instruction's address as epc.
func (c *Context) publishPC() {
	e := c.Emitter
	pcTemp := e.NewTempWord()
	e.MovImm(pcTemp, int64(c.PC))
	e.SetPC(pcTemp)
	e.Release(pcTemp)
}

// genFSGate emits the FS-enable check (mstatus.FS != 0). The check
// itself is always runtime-evaluated IR; if it fails at guest-execution
// time it raises ILLEGAL_INST before any side effect. mstatus is read
// through the csrrs helper with source index x0, which the helper
// contract defines as a pure read.
func (c *Context) genFSGate() {
	e := c.Emitter
	fs := e.CallHelperRet(helpers.CSRRS,
		ir.HelperArg{Arg: ir.ImmArg(csrMstatus)},
		ir.HelperArg{Arg: ir.ImmArg(0)},
	)
	mask := e.NewTempWord()
	e.MovImm(mask, mstatusFSMask)
	masked := e.NewTempWord()
	e.And(masked, fs, mask)
	zero := e.NewTempWord()
	e.MovImm(zero, 0)
	ok := e.Label()
	e.BrCond(ir.CondNE, masked, zero, ok)
	c.illegalInstructionGuarded()
	e.SetLabel(ok)
	e.Release(fs)
	e.Release(mask)
	e.Release(masked)
	e.Release(zero)
}
