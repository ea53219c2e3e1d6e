/*
 * rvtrans - Integer arithmetic translators
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
	"math"

	"github.com/bbradley/rvtrans/internal/ir"
)

// AluOp names one integer arithmetic/logical operation, shared by the
// register-register and register-immediate translators and by every
// compressed form that expands to one of them.
type AluOp int

const (
	AluAdd AluOp = iota
	AluSub
	AluSll
	AluSlt
	AluSltu
	AluXor
	AluSrl
	AluSra
	AluOr
	AluAnd
	AluMul
	AluMulh
	AluMulhsu
	AluMulhu
	AluDiv
	AluDivu
	AluRem
	AluRemu
)

// shiftMask returns the mask applied to a shift amount: 31 for W-form
// shifts, XLEN-1 otherwise.
func shiftMask(xlen int, w bool) uint64 {
	if w {
		return 31
	}
	return uint64(xlen - 1)
}

// GenArith implements the register-register integer translator
// (ADD/SUB/SLL/SLT/SLTU/XOR/SRL/SRA/OR/AND and their M-extension and
// W-form counterparts). Operands are read via GetReg into fresh temps
// and the result is written back via PutReg, which itself discards
// writes to x0.
func (c *Context) GenArith(op AluOp, rd, rs1, rs2 uint32, w bool) {
	e := c.Emitter
	a := e.NewTempWord()
	b := e.NewTempWord()
	e.GetReg(a, rs1)
	e.GetReg(b, rs2)

	dest := e.NewTempWord()
	c.genAluOp(op, dest, a, b, w)

	e.PutReg(rd, dest)
	e.Release(a)
	e.Release(b)
	e.Release(dest)
}

// GenArithImm implements the register-immediate translator
// (ADDI/SLTI/SLTIU/XORI/ORI/ANDI/SLLI/SRLI/SRAI and the W-form
// equivalents). For the shift forms, imm's low shiftMask bits are the
// shift amount; callers are responsible for legality checks (imm out
// of range raises illegal-instruction before this is reached).
func (c *Context) GenArithImm(op AluOp, rd, rs1 uint32, imm int32, w bool) {
	e := c.Emitter
	a := e.NewTempWord()
	e.GetReg(a, rs1)

	b := e.NewTempWord()
	e.MovImm(b, int64(imm))

	dest := e.NewTempWord()
	c.genAluOp(op, dest, a, b, w)

	e.PutReg(rd, dest)
	e.Release(a)
	e.Release(b)
	e.Release(dest)
}

// genAluOp lowers one AluOp into micro-ops writing dest = a op b (or
// the widening-multiply / branchless-division kernels for the M
// extension), applying W-form sign extension at the end when w is set.
func (c *Context) genAluOp(op AluOp, dest, a, b ir.Temp, w bool) {
	e := c.Emitter

	switch op {
	case AluAdd:
		e.Add(dest, a, b)
	case AluSub:
		e.Sub(dest, a, b)
	case AluXor:
		e.Xor(dest, a, b)
	case AluOr:
		e.Or(dest, a, b)
	case AluAnd:
		e.And(dest, a, b)
	case AluSlt:
		e.SetCond(ir.CondLT, dest, a, b)
	case AluSltu:
		e.SetCond(ir.CondLTU, dest, a, b)
	case AluSll:
		c.genShift(e.Shl, dest, a, b, w)
	case AluSrl:
		c.genShift(e.Shr, dest, a, b, w)
	case AluSra:
		// SRA/SRAW are kept as two fully independent cases (no
		// fallthrough): each masks the shift amount by its own width
		// before shifting, rather than sharing a masked-shamt temp
		// that a later W-specific remask could silently undo.
		if w {
			masked := e.NewTempWord()
			mask := e.NewTempWord()
			e.MovImm(mask, int64(shiftMask(c.XLen, true)))
			e.And(masked, b, mask)
			ext := e.NewTempU64()
			e.Ext32S(ext, a)
			e.Sar(dest, ext, masked)
			e.Ext32S(dest, dest)
			e.Release(masked)
			e.Release(mask)
			e.Release(ext)
		} else {
			masked := e.NewTempWord()
			mask := e.NewTempWord()
			e.MovImm(mask, int64(shiftMask(c.XLen, false)))
			e.And(masked, b, mask)
			e.Sar(dest, a, masked)
			e.Release(masked)
			e.Release(mask)
		}
	case AluMul:
		hi := e.NewTempWord()
		e.MulU2(dest, hi, a, b)
		e.Release(hi)
	case AluMulhu:
		hi := e.NewTempWord()
		lo := e.NewTempWord()
		e.MulU2(lo, hi, a, b)
		e.Mov(dest, hi)
		e.Release(hi)
		e.Release(lo)
	case AluMulh:
		hi := e.NewTempWord()
		lo := e.NewTempWord()
		e.MulS2(lo, hi, a, b)
		e.Mov(dest, hi)
		e.Release(hi)
		e.Release(lo)
	case AluMulhsu:
		// mulhsu = mulu2(rs1,rs2).hi - (sar(rs1, XLEN-1) & rs2): the
		// one-negative fix-up for a signed-by-unsigned widening
		// multiply built out of an unsigned widening multiply.
		hi := e.NewTempWord()
		lo := e.NewTempWord()
		e.MulU2(lo, hi, a, b)
		shamt := e.NewTempWord()
		e.MovImm(shamt, int64(c.XLen-1))
		signA := e.NewTempWord()
		e.Sar(signA, a, shamt)
		fixup := e.NewTempWord()
		e.And(fixup, signA, b)
		e.Sub(dest, hi, fixup)
		e.Release(hi)
		e.Release(lo)
		e.Release(shamt)
		e.Release(signA)
		e.Release(fixup)
	case AluDiv:
		c.genDivRem(dest, a, b, true, false, w)
	case AluDivu:
		c.genDivRem(dest, a, b, false, false, w)
	case AluRem:
		c.genDivRem(dest, a, b, true, true, w)
	case AluRemu:
		c.genDivRem(dest, a, b, false, true, w)
	}

	if w && op != AluSra && op != AluDiv && op != AluDivu && op != AluRem && op != AluRemu {
		e.Ext32S(dest, dest)
	}
}

// genShift masks the shift amount per shiftMask and calls the given
// emitter shift primitive; for W forms it zero-extends the source to 32
// bits first. It does not sign-extend the result: genAluOp's tail does
// that for the W forms of SLL/SRL.
func (c *Context) genShift(op func(dest, a, b ir.Temp), dest, a, b ir.Temp, w bool) {
	e := c.Emitter
	masked := e.NewTempWord()
	mask := e.NewTempWord()
	e.MovImm(mask, int64(shiftMask(c.XLen, w)))
	e.And(masked, b, mask)
	if w {
		ext := e.NewTempU64()
		e.Ext32U(ext, a)
		op(dest, ext, masked)
		e.Release(ext)
	} else {
		op(dest, a, masked)
	}
	e.Release(masked)
	e.Release(mask)
}

// genDivRem emits the branchless division/remainder kernel shared by
// DIV/DIVU/REM/REMU and their W-form counterparts. The two corner
// cases -- divide by zero and (signed, INT_MIN / -1) overflow -- are
// folded into the division itself by substituting operands via
// movcond rather than branching, so the host code never contains a
// dynamic branch where a constant predicate would do.
//
// W-variants first sign- or zero-extend both operands to XLEN, run the
// same kernel, then W-sign-extend the result.
func (c *Context) genDivRem(dest, a, b ir.Temp, signed, isRem, w bool) {
	e := c.Emitter

	dividend, divisor := a, b
	if w {
		dividend = e.NewTempU64()
		divisor = e.NewTempU64()
		if signed {
			e.Ext32S(dividend, a)
			e.Ext32S(divisor, b)
		} else {
			e.Ext32U(dividend, a)
			e.Ext32U(divisor, b)
		}
	}

	zero := e.NewTempWord()
	e.MovImm(zero, 0)
	isZero := e.NewTempWord()
	e.SetCond(ir.CondEQ, isZero, divisor, zero)

	safeDivisor := e.NewTempWord()
	one := e.NewTempWord()
	e.MovImm(one, 1)
	e.MovCond(ir.CondEQ, safeDivisor, isZero, one, one, divisor)

	var isOverflow, safeDividend ir.Temp
	if signed {
		intMin := e.NewTempWord()
		e.MovImm(intMin, int64(minFor(c.XLen, w)))
		minusOne := e.NewTempWord()
		e.MovImm(minusOne, -1)
		dividendIsMin := e.NewTempWord()
		e.SetCond(ir.CondEQ, dividendIsMin, dividend, intMin)
		divisorIsNeg1 := e.NewTempWord()
		e.SetCond(ir.CondEQ, divisorIsNeg1, divisor, minusOne)
		isOverflow = e.NewTempWord()
		e.And(isOverflow, dividendIsMin, divisorIsNeg1)

		// On overflow, force divisor to 1 as well so the division
		// itself is well defined; the quotient is then overridden to
		// dividend and the remainder to 0 below.
		one2 := e.NewTempWord()
		e.MovImm(one2, 1)
		e.MovCond(ir.CondNE, safeDivisor, isOverflow, zero, one2, safeDivisor)

		safeDividend = dividend
		e.Release(intMin)
		e.Release(minusOne)
		e.Release(dividendIsMin)
		e.Release(divisorIsNeg1)
		e.Release(one2)
	} else {
		safeDividend = dividend
	}

	if isRem {
		rawRem := e.NewTempWord()
		if signed {
			e.RemS(rawRem, safeDividend, safeDivisor)
		} else {
			e.RemU(rawRem, safeDividend, safeDivisor)
		}

		// Post-select: divide-by-zero remainder is the original
		// dividend; signed-overflow remainder is zero; otherwise the
		// raw remainder computed above.
		result := e.NewTempWord()
		e.MovCond(ir.CondEQ, result, isZero, one, dividend, rawRem)
		if signed {
			e.MovCond(ir.CondNE, result, isOverflow, zero, zero, result)
		}
		e.Mov(dest, result)
		e.Release(rawRem)
		e.Release(result)
	} else {
		// Divide-by-zero quotient is all-ones; overflow quotient is
		// the original dividend; otherwise the raw division.
		rawQuot := e.NewTempWord()
		if signed {
			e.DivS(rawQuot, safeDividend, safeDivisor)
		} else {
			e.DivU(rawQuot, safeDividend, safeDivisor)
		}
		allOnes := e.NewTempWord()
		e.MovImm(allOnes, -1)
		result := e.NewTempWord()
		e.MovCond(ir.CondEQ, result, isZero, one, allOnes, rawQuot)
		if signed {
			e.MovCond(ir.CondNE, result, isOverflow, zero, dividend, result)
		}
		e.Mov(dest, result)
		e.Release(rawQuot)
		e.Release(allOnes)
		e.Release(result)
	}

	if w {
		e.Ext32S(dest, dest)
		e.Release(dividend)
		e.Release(divisor)
	}

	e.Release(zero)
	e.Release(isZero)
	e.Release(safeDivisor)
	e.Release(one)
	if signed {
		e.Release(isOverflow)
	}
}

// minFor returns INT_MIN for the division width in play: the 32-bit
// value for W-form kernels, the XLEN-wide value otherwise.
func minFor(xlen int, w bool) int64 {
	if w {
		return int64(math.MinInt32)
	}
	if xlen == 32 {
		return int64(math.MinInt32)
	}
	return int64(math.MinInt64)
}
