/*
 * rvtrans - Floating point translators
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

// FPOp names one floating-point operation lowered via a single helper
// call, shared by the single- and double-precision translators.
type FPOp int

const (
	FPAdd FPOp = iota
	FPSub
	FPMul
	FPDiv
	FPSqrt
	FPMin
	FPMax
	FPEq
	FPLt
	FPLe
	FPClass
)

var fpHelperNames = map[FPOp][2]string{
	FPAdd:   {helpers.FAddS, helpers.FAddD},
	FPSub:   {helpers.FSubS, helpers.FSubD},
	FPMul:   {helpers.FMulS, helpers.FMulD},
	FPDiv:   {helpers.FDivS, helpers.FDivD},
	FPSqrt:  {helpers.FSqrtS, helpers.FSqrtD},
	FPMin:   {helpers.FMinS, helpers.FMinD},
	FPMax:   {helpers.FMaxS, helpers.FMaxD},
	FPEq:    {helpers.FEqS, helpers.FEqD},
	FPLt:    {helpers.FLtS, helpers.FLtD},
	FPLe:    {helpers.FLeS, helpers.FLeD},
	FPClass: {helpers.FClassS, helpers.FClassD},
}

func fpHelperName(op FPOp, width ir.FPWidth) string {
	pair := fpHelperNames[op]
	if width == ir.F32 {
		return pair[0]
	}
	return pair[1]
}

// GenFPArith implements the common-case FP translator: FS-gate, then a
// single helper call taking the rounding-mode immediate and the source
// FP temps. rm is the 3-bit rounding-mode field from the encoding.
func (c *Context) GenFPArith(op FPOp, rd, rs1, rs2 uint32, width ir.FPWidth, rm uint32) {
	c.genFSGate()
	e := c.Emitter

	a := c.newFPTemp(width)
	e.GetFReg(a, rs1, width)

	args := []ir.HelperArg{{Arg: ir.ImmArg(int64(rm))}, {FPTemp: a, IsFP: true}}
	if op != FPSqrt {
		b := c.newFPTemp(width)
		e.GetFReg(b, rs2, width)
		args = append(args, ir.HelperArg{FPTemp: b, IsFP: true})
		defer e.Release(b)
	}

	dest := e.CallHelperRetFP(fpHelperName(op, width), width, args...)
	e.PutFReg(rd, dest, width)
	e.Release(a)
	e.Release(dest)
}

// GenFPCompare implements feq/flt/fle: the helper's word-typed result
// is written into a GPR, not the FP bank.
func (c *Context) GenFPCompare(op FPOp, rd, rs1, rs2 uint32, width ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter

	a := c.newFPTemp(width)
	b := c.newFPTemp(width)
	e.GetFReg(a, rs1, width)
	e.GetFReg(b, rs2, width)

	dest := e.CallHelperRet(fpHelperName(op, width),
		ir.HelperArg{FPTemp: a, IsFP: true},
		ir.HelperArg{FPTemp: b, IsFP: true},
	)
	e.PutReg(rd, dest)
	e.Release(a)
	e.Release(b)
	e.Release(dest)
}

// GenFPClass implements fclass.*: a plain helper call writing a word
// result into a GPR.
func (c *Context) GenFPClass(rd, rs1 uint32, width ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter

	a := c.newFPTemp(width)
	e.GetFReg(a, rs1, width)
	dest := e.CallHelperRet(fpHelperName(FPClass, width), ir.HelperArg{FPTemp: a, IsFP: true})
	e.PutReg(rd, dest)
	e.Release(a)
	e.Release(dest)
}

// GenFMA implements the four fused-multiply-add forms
// (fmadd/fmsub/fnmadd/fnmsub), each taking three FP sources and a
// rounding mode.
func (c *Context) GenFMA(helperName string, rd, rs1, rs2, rs3 uint32, width ir.FPWidth, rm uint32) {
	c.genFSGate()
	e := c.Emitter

	a := c.newFPTemp(width)
	b := c.newFPTemp(width)
	d := c.newFPTemp(width)
	e.GetFReg(a, rs1, width)
	e.GetFReg(b, rs2, width)
	e.GetFReg(d, rs3, width)

	dest := e.CallHelperRetFP(helperName, width,
		ir.HelperArg{Arg: ir.ImmArg(int64(rm))},
		ir.HelperArg{FPTemp: a, IsFP: true},
		ir.HelperArg{FPTemp: b, IsFP: true},
		ir.HelperArg{FPTemp: d, IsFP: true},
	)
	e.PutFReg(rd, dest, width)
	e.Release(a)
	e.Release(b)
	e.Release(d)
	e.Release(dest)
}

// GenFSignInject implements fsgnj/fsgnjn/fsgnjx inline as a bitwise
// combine, with no helper call: on equal sources with the plain
// (non-negated, non-xor) variant it degenerates to a move.
func (c *Context) GenFSignInject(rd, rs1, rs2 uint32, width ir.FPWidth, negate, xorMode bool) {
	c.genFSGate()
	e := c.Emitter

	if rs1 == rs2 && !negate && !xorMode {
		v := c.newFPTemp(width)
		e.GetFReg(v, rs1, width)
		e.PutFReg(rd, v, width)
		e.Release(v)
		return
	}

	a := c.newFPTemp(width)
	b := c.newFPTemp(width)
	e.GetFReg(a, rs1, width)
	e.GetFReg(b, rs2, width)

	dest := c.newFPTemp(width)
	e.FSignInject(dest, a, b, width, negate, xorMode)
	e.PutFReg(rd, dest, width)
	e.Release(a)
	e.Release(b)
	e.Release(dest)
}

// GenFMoveToGPR implements fmv.x.w / fmv.x.d: a bitwise move from the
// FP bank to the GPR bank under the FS gate.
func (c *Context) GenFMoveToGPR(rd, rs1 uint32, width ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter
	src := c.newFPTemp(width)
	e.GetFReg(src, rs1, width)
	dest := e.NewTempWord()
	e.FMovToGPR(dest, src, width)
	e.PutReg(rd, dest)
	e.Release(src)
	e.Release(dest)
}

// GenFMoveFromGPR implements fmv.w.x / fmv.d.x.
func (c *Context) GenFMoveFromGPR(rd, rs1 uint32, width ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter
	src := e.NewTempWord()
	e.GetReg(src, rs1)
	dest := c.newFPTemp(width)
	e.FMovFromGPR(dest, src, width)
	e.PutFReg(rd, dest, width)
	e.Release(src)
	e.Release(dest)
}

// FCvtKind names one fcvt.* variant, dispatched from rs2 in the
// encoding.
type FCvtKind int

const (
	CvtW FCvtKind = iota
	CvtWU
	CvtL
	CvtLU
)

// GenFCvtToInt implements fcvt.w/wu/l/lu.s|d: FP source, integer
// (GPR) destination.
func (c *Context) GenFCvtToInt(helperName string, rd, rs1 uint32, width ir.FPWidth, rm uint32) {
	c.genFSGate()
	e := c.Emitter
	src := c.newFPTemp(width)
	e.GetFReg(src, rs1, width)
	dest := e.CallHelperRet(helperName,
		ir.HelperArg{Arg: ir.ImmArg(int64(rm))},
		ir.HelperArg{FPTemp: src, IsFP: true},
	)
	e.PutReg(rd, dest)
	e.Release(src)
	e.Release(dest)
}

// GenFCvtFromInt implements fcvt.s|d.w/wu/l/lu: integer (GPR) source,
// FP destination.
func (c *Context) GenFCvtFromInt(helperName string, rd, rs1 uint32, width ir.FPWidth, rm uint32) {
	c.genFSGate()
	e := c.Emitter
	src := e.NewTempWord()
	e.GetReg(src, rs1)
	dest := e.CallHelperRetFP(helperName, width,
		ir.HelperArg{Arg: ir.ImmArg(int64(rm))},
		ir.HelperArg{Arg: ir.TempArg(src)},
	)
	e.PutFReg(rd, dest, width)
	e.Release(src)
	e.Release(dest)
}

// GenFCvtFPToFP implements fcvt.s.d / fcvt.d.s.
func (c *Context) GenFCvtFPToFP(helperName string, rd, rs1 uint32, srcWidth, dstWidth ir.FPWidth) {
	c.genFSGate()
	e := c.Emitter
	src := c.newFPTemp(srcWidth)
	e.GetFReg(src, rs1, srcWidth)
	dest := e.CallHelperRetFP(helperName, dstWidth, ir.HelperArg{FPTemp: src, IsFP: true})
	e.PutFReg(rd, dest, dstWidth)
	e.Release(src)
	e.Release(dest)
}

func (c *Context) newFPTemp(width ir.FPWidth) ir.Temp {
	if width == ir.F32 {
		return c.Emitter.NewTempF32()
	}
	return c.Emitter.NewTempF64()
}
