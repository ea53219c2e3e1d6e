/*
 * rvtrans - Jump and conditional branch translators
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

// alignMask is the bitmask an unaligned branch/jump target must clear;
// with RVC enabled targets only need to be half-word aligned, so the
// check degenerates to "never misaligned" at the IR level and is
// skipped entirely.
const alignMask = 0x3

// GenJal implements `jal rd, imm`. If rd != 0, the return address
// (NextPC) is written first; the target is then either chained via
// goto_tb (same page, no single-step) or exited unchained. With RVC
// disabled, a target whose low two bits are set raises INST_ADDR_MIS
// faulting on this jump instruction's own PC.
func (c *Context) GenJal(rd uint32, imm int32, rvcEnabled bool) {
	target := uint64(int64(c.PC) + int64(imm))

	if !rvcEnabled && target&alignMask != 0 {
		c.emitMisalignedTarget(target)
		return
	}

	if rd != 0 {
		ra := c.Emitter.NewTempWord()
		c.Emitter.MovImm(ra, int64(c.NextPC))
		c.Emitter.PutReg(rd, ra)
		c.Emitter.Release(ra)
	}

	c.emitTargetExit(target)
	c.BState = BStateBranch
}

// GenJalr implements `jalr rd, rs1, imm`. The target is a runtime
// value (rs1 + imm, bit 0 cleared) so it is never chained; alignment
// is still checked against bit 1 when RVC is disabled.
func (c *Context) GenJalr(rd, rs1 uint32, imm int32, rvcEnabled bool) {
	e := c.Emitter
	base := e.NewTempWord()
	e.GetReg(base, rs1)
	offs := e.NewTempWord()
	e.MovImm(offs, int64(imm))
	raw := e.NewTempWord()
	e.Add(raw, base, offs)
	clearBit0 := e.NewTempWord()
	e.MovImm(clearBit0, ^int64(1))
	// target survives the alignment-check label below, so it must be a
	// local temp rather than an ordinary one.
	target := e.NewLocalWord()
	e.And(target, raw, clearBit0)
	e.Release(base)
	e.Release(offs)
	e.Release(raw)
	e.Release(clearBit0)

	if !rvcEnabled {
		bit1 := e.NewTempWord()
		e.MovImm(bit1, 2)
		masked := e.NewTempWord()
		e.And(masked, target, bit1)
		zero := e.NewTempWord()
		e.MovImm(zero, 0)
		okLabel := e.Label()
		e.BrCond(ir.CondEQ, masked, zero, okLabel)
		c.raiseExceptionMBadAddr(ExcInstAddrMisaligned, target)
		e.SetLabel(okLabel)
		e.Release(bit1)
		e.Release(masked)
		e.Release(zero)
	}

	if rd != 0 {
		ra := e.NewTempWord()
		e.MovImm(ra, int64(c.NextPC))
		e.PutReg(rd, ra)
		e.Release(ra)
	}

	e.ExitTBIndirect(target)
	e.Release(target)
	c.BState = BStateBranch
}

// GenBranch implements the conditional branch family (BEQ/BNE/BLT/BGE/
// BLTU/BGEU). A forward conditional branch skips to a taken-label;
// fallthrough emits goto_tb slot 1 to NextPC, the taken path checks
// alignment and then emits goto_tb slot 0 to PC+bimm.
func (c *Context) GenBranch(cond ir.Cond, rs1, rs2 uint32, bimm int32, rvcEnabled bool) {
	e := c.Emitter
	a := e.NewTempWord()
	b := e.NewTempWord()
	e.GetReg(a, rs1)
	e.GetReg(b, rs2)

	taken := e.Label()
	e.BrCond(cond, a, b, taken)

	// Fallthrough: next sequential instruction.
	c.emitGotoOrExit(1, c.NextPC)

	e.SetLabel(taken)
	e.Release(a)
	e.Release(b)

	target := uint64(int64(c.PC) + int64(bimm))
	if !rvcEnabled && target&alignMask != 0 {
		c.emitMisalignedTarget(target)
		c.BState = BStateBranch
		return
	}
	c.emitGotoOrExit(0, target)

	c.BState = BStateBranch
}

// emitGotoOrExit emits a chained goto_tb in the given slot when legal,
// otherwise an unchained direct exit to the same destination.
func (c *Context) emitGotoOrExit(slot int, dest uint64) {
	if c.UseGotoTB(dest) {
		c.Emitter.GotoTB(slot, dest)
	} else {
		c.Emitter.ExitTBDirect(dest)
	}
}

// emitTargetExit is emitGotoOrExit specialised for jal, which always
// uses chain slot 0.
func (c *Context) emitTargetExit(dest uint64) {
	c.emitGotoOrExit(0, dest)
}

// emitMisalignedTarget raises INST_ADDR_MIS with mtval set to the
// faulting target address, computed at translation time (the target is
// a compile-time constant for jal/branch, unlike jalr).
func (c *Context) emitMisalignedTarget(target uint64) {
	addr := c.Emitter.NewTempWord()
	c.Emitter.MovImm(addr, int64(target))
	c.raiseExceptionMBadAddr(ExcInstAddrMisaligned, addr)
	c.Emitter.Release(addr)
}
