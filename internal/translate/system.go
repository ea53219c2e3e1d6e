/*
 * rvtrans - CSR and system instruction translators
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

// CSROp names one CSR access form.
type CSROp int

const (
	CSRRW CSROp = iota
	CSRRS
	CSRRC
	CSRRWI
	CSRRSI
	CSRRCI
)

// SysOp names one zero-operand system instruction, selected by the CSR
// field on an otherwise-CSR-shaped encoding.
type SysOp int

const (
	SysECall SysOp = iota
	SysEBreak
	SysSRET
	SysMRET
	SysWFI
	SysSFenceVMA
)

// GenSystem implements the zero-immediate system forms: ECALL, EBREAK,
// SRET, MRET, WFI, SFENCE.VM/VMA. Each is a single runtime helper call
// (or, for ECALL/EBREAK, a direct exception raise); every form
// terminates the block, since none of them return control to the
// instruction stream in a way the translator can reason about
// statically.
func (c *Context) GenSystem(op SysOp) {
	e := c.Emitter
	switch op {
	case SysECall:
		c.raiseException(ExcECallU)
	case SysEBreak:
		c.raiseException(ExcBreakpoint)
	case SysSRET:
		// sret pops sstatus.SPP into priv and sepc into pc; the helper
		// returns the new pc so the exit is indirect rather than a
		// chain to this instruction's own NextPC.
		c.publishPC()
		newPC := e.CallHelperRet(helpers.SRET)
		e.ExitTBIndirect(newPC)
		e.Release(newPC)
		c.BState = BStateBranch
	case SysMRET:
		c.publishPC()
		newPC := e.CallHelperRet(helpers.MRET)
		e.ExitTBIndirect(newPC)
		e.Release(newPC)
		c.BState = BStateBranch
	case SysWFI:
		e.CallHelper(helpers.WFI)
		c.emitGotoOrExit(0, c.NextPC)
		c.BState = BStateBranch
	case SysSFenceVMA:
		e.CallHelper(helpers.TLBFlush)
		c.emitGotoOrExit(0, c.NextPC)
		c.BState = BStateBranch
	}
}

// GenFenceI implements FENCE.I: a TLB/instruction-cache flush helper,
// then block termination (unchained), since the guest may have
// modified code the current block already translated.
func (c *Context) GenFenceI() {
	c.Emitter.CallHelper(helpers.FenceI)
	c.Emitter.ExitTBDirect(c.NextPC)
	c.BState = BStateBranch
}

// GenFence implements FENCE: under this core's single-hart,
// no-reordering execution model it is a pure ordering point with no
// observable effect, so it lowers to nothing.
func (c *Context) GenFence() {}

// csrHelperName maps a CSROp to the runtime helper that performs its
// read-modify-write. The immediate forms (CSRRWI/SI/CI) share the
// read-modify-write helper with their register forms; the translator
// is responsible for passing an immediate operand instead of a
// register read where the encoding calls for one.
func csrHelperName(op CSROp) string {
	switch op {
	case CSRRW, CSRRWI:
		return helpers.CSRRW
	case CSRRS, CSRRSI:
		return helpers.CSRRS
	default:
		return helpers.CSRRC
	}
}

// csrReadOnly reports whether a CSR number is architecturally
// read-only: bits [11:10] of the address encode writability, with 0b11
// reserved for read-only registers (cycle, time, instret, mhartid...).
func csrReadOnly(csr uint32) bool { return csr>>10 == 0b11 }

// csrWriteAttempt reports whether this CSR access form writes the CSR:
// CSRRW/CSRRWI always do; the set/clear forms only when their source
// operand (register index or immediate) is non-zero.
func csrWriteAttempt(op CSROp, rs1Pass, imm uint32) bool {
	switch op {
	case CSRRW, CSRRWI:
		return true
	case CSRRSI, CSRRCI:
		return imm != 0
	default:
		return rs1Pass != 0
	}
}

// GenCSR implements CSRRW/S/C and their immediate variants. rs1Pass is
// the raw rs1 register index (not its value): CSRRS/CSRRC with rs1=x0
// must suppress the write, and only the helper -- which alone knows
// the CSR's side effects -- can decide that, so the raw index travels
// as an argument rather than being resolved here.
//
// A write attempt against a read-only CSR number is statically illegal
// and checked here at translation time; whether the *current privilege*
// may touch the CSR is a runtime property and stays the helper's job.
//
// Every CSR write unchains the block: mmu_index or the privilege level
// may have changed, invalidating every assumption the rest of the
// block was translated under.
func (c *Context) GenCSR(op CSROp, rd uint32, csr uint32, rs1Pass uint32, imm uint32) {
	e := c.Emitter

	if csrWriteAttempt(op, rs1Pass, imm) && csrReadOnly(csr) {
		c.illegalInstruction()
		return
	}

	var srcArg ir.HelperArg
	switch op {
	case CSRRWI, CSRRSI, CSRRCI:
		srcArg = ir.HelperArg{Arg: ir.ImmArg(int64(imm))}
	default:
		srcArg = ir.HelperArg{Arg: ir.ImmArg(int64(rs1Pass))}
	}

	dest := e.CallHelperRet(csrHelperName(op),
		ir.HelperArg{Arg: ir.ImmArg(int64(csr))},
		srcArg,
	)
	if rd != 0 {
		e.PutReg(rd, dest)
	}
	e.Release(dest)

	// No chaining: mmu_index or priv may have changed underneath us.
	e.ExitTBDirect(c.NextPC)
	c.BState = BStateBranch
}
