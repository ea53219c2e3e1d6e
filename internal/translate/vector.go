/*
 * rvtrans - Vector instruction decode and helper calls
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
	"github.com/bbradley/rvtrans/internal/bitfield"
	"github.com/bbradley/rvtrans/internal/helpers"
	"github.com/bbradley/rvtrans/internal/ir"
)

// VecOp names one element-wise vector operation the generic
// helpers.VectorOp dispatch can select; the concrete element loop for
// each lives in internal/vecexec, parameterised over SEW at
// guest-execution time, not generated here. Values are the shared
// helpers.VecOp* dispatch codes.
type VecOp int

const (
	VecAdc      VecOp = helpers.VecOpAdc
	VecMadc     VecOp = helpers.VecOpMadc
	VecSbc      VecOp = helpers.VecOpSbc
	VecMsbc     VecOp = helpers.VecOpMsbc
	VecMerge    VecOp = helpers.VecOpMerge
	VecMv       VecOp = helpers.VecOpMv
	VecCompress VecOp = helpers.VecOpCompress
)

// vecFunct3 names the OP-V funct3 sub-formats this core decodes.
const (
	vecFunct3OPIVV = 0b000
	vecFunct3OPMVV = 0b010
	vecFunct3OPIVI = 0b011
	vecFunct3OPIVX = 0b100
	vecFunct3OPCFG = 0b111
)

// decodeOpV routes an OP-V word (major opcode 0x57, index 0x15 in the
// >>2-stripped table) to either the vset{i}vl{i} configuration forms
// or the element-wise subset this core supports: vmv.v.{i,x,v},
// vmerge, vcompress, and the vadc/vmadc/vsbc/vmsbc carry/borrow family
// with their immediate variants. Forms outside that subset raise
// illegal-instruction: this core implements the vector extension's
// helper kernel, not its full instruction set.
func (c *Context) decodeOpV(word uint32) {
	if !c.HasExt(extVBit) {
		c.illegalInstruction()
		return
	}

	funct3 := bitfield.Funct3(word)
	if funct3 == vecFunct3OPCFG {
		c.decodeVSetVL(word)
		return
	}

	c.genVillGate()

	funct6 := bitfield.Funct7(word) >> 1
	// Bit 25 is the vm flag: set means unmasked, clear means the
	// instruction reads v0 (as mask or carry/borrow input).
	vm := bitfield.Funct7(word)&1 != 0
	vd := bitfield.RD(word)
	vs2 := bitfield.RS2(word)
	field := bitfield.RS1(word) // vs1 (OPIVV/OPMVV), rs1 (OPIVX), or imm5 (OPIVI)

	switch funct6 {
	case 0b010000: // VADC -- requires vm=0 (v0 supplies the carry-in)
		if vm {
			c.illegalInstruction()
			return
		}
		c.genVecOp(VecAdc, vd, vs2, field, funct3, true)
	case 0b010001: // VMADC -- mask-producing; vm selects the .m/.-carryless form
		c.genVecOp(VecMadc, vd, vs2, field, funct3, !vm)
	case 0b010010: // VSBC -- requires vm=0
		if vm {
			c.illegalInstruction()
			return
		}
		c.genVecOp(VecSbc, vd, vs2, field, funct3, true)
	case 0b010011: // VMSBC
		c.genVecOp(VecMsbc, vd, vs2, field, funct3, !vm)
	case 0b010111:
		if funct3 == vecFunct3OPMVV {
			// vcompress.vm: field names the mask source register.
			c.genVecOp(VecCompress, vd, vs2, field, funct3, false)
		} else if vm {
			// vmv.v.v/v.x/v.i: vs2 must be v0 and is ignored.
			c.genVecOp(VecMv, vd, vs2, field, funct3, false)
		} else {
			// vmerge.vvm/vxm/vim.
			c.genVecOp(VecMerge, vd, vs2, field, funct3, true)
		}
	default:
		c.illegalInstruction()
	}
}

// decodeVSetVL decodes the three vset*vl* configuration encodings and
// emits the vsetvl helper call. Unlike a CSR write, vl/vtype are read by
// the vector helpers at guest-execution time rather than baked into the
// IR, so a vsetvl does not need to unchain the block: later vector
// instructions in the same TB simply observe the new configuration
// through the helper call.
func (c *Context) decodeVSetVL(word uint32) {
	e := c.Emitter
	rd := bitfield.RD(word)

	var avlArg ir.HelperArg
	var vtype uint64
	var isImm bool

	switch {
	case bitfield.Extract(word, 31, 1) == 0:
		// vsetvli rd, rs1, zimm11
		rs1 := bitfield.RS1(word)
		zimm := bitfield.Extract(word, 20, 11)
		vtype = uint64(zimm)
		if rs1 == 0 {
			avlArg = ir.HelperArg{Arg: ir.ImmArg(0)}
		} else {
			rs1v := e.NewTempWord()
			e.GetReg(rs1v, rs1)
			avlArg = ir.HelperArg{Arg: ir.TempArg(rs1v)}
			defer e.Release(rs1v)
		}
		c.emitVSetVL(rd, avlArg, vtype, false, rd == 0, rs1 == 0)
		return
	case bitfield.Extract(word, 30, 2) == 0b11:
		// vsetivli rd, uimm(avl), zimm10
		uimm := bitfield.Extract(word, 15, 5)
		zimm := bitfield.Extract(word, 20, 10)
		vtype = uint64(zimm)
		isImm = true
		avlArg = ir.HelperArg{Arg: ir.ImmArg(int64(uimm))}
		c.emitVSetVL(rd, avlArg, vtype, isImm, rd == 0, false)
		return
	case bitfield.Extract(word, 25, 7) == 0b1000000:
		// vsetvl rd, rs1, rs2: vtype comes from a register, not an
		// immediate, so this form cannot share emitVSetVL's
		// static-vtype signature.
		rs1 := bitfield.RS1(word)
		rs2 := bitfield.RS2(word)
		rs2v := e.NewTempWord()
		e.GetReg(rs2v, rs2)
		var av ir.HelperArg
		if rs1 == 0 {
			av = ir.HelperArg{Arg: ir.ImmArg(0)}
		} else {
			rs1v := e.NewTempWord()
			e.GetReg(rs1v, rs1)
			av = ir.HelperArg{Arg: ir.TempArg(rs1v)}
			defer e.Release(rs1v)
		}
		dest := e.CallHelperRet(helpers.VSetVL, av,
			ir.HelperArg{Arg: ir.TempArg(rs2v)},
			ir.HelperArg{Arg: ir.ImmArg(0)},
			ir.HelperArg{Arg: ir.ImmArg(boolArg(rd == 0))},
			ir.HelperArg{Arg: ir.ImmArg(boolArg(rs1 == 0))},
		)
		if rd != 0 {
			e.PutReg(rd, dest)
		}
		e.Release(dest)
		e.Release(rs2v)
		return
	default:
		c.illegalInstruction()
	}
}

// emitVSetVL is the shared tail of the vsetvli/vsetivli encodings: a
// single vsetvl helper call, taking avl, the raw vtype payload, and the
// isImm/rdZero/rs1Zero selector flags that pick the AVL-derivation
// rule.
func (c *Context) emitVSetVL(rd uint32, avl ir.HelperArg, vtype uint64, isImm, rdZero, rs1Zero bool) {
	e := c.Emitter
	dest := e.CallHelperRet(helpers.VSetVL,
		avl,
		ir.HelperArg{Arg: ir.ImmArg(int64(vtype))},
		ir.HelperArg{Arg: ir.ImmArg(boolArg(isImm))},
		ir.HelperArg{Arg: ir.ImmArg(boolArg(rdZero))},
		ir.HelperArg{Arg: ir.ImmArg(boolArg(rs1Zero))},
	)
	if rd != 0 {
		e.PutReg(rd, dest)
	}
	e.Release(dest)
}

func boolArg(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// genVillGate emits the runtime vill check every non-config vector
// instruction must pass before any side effect: an illegal vtype
// poisons the whole non-config vector instruction set until the next
// vsetvl.
func (c *Context) genVillGate() {
	e := c.Emitter
	bad := e.CallHelperRet(helpers.VectorVillCheck)
	zero := e.NewTempWord()
	e.MovImm(zero, 0)
	ok := e.Label()
	e.BrCond(ir.CondEQ, bad, zero, ok)
	c.illegalInstructionGuarded()
	e.SetLabel(ok)
	e.Release(bad)
	e.Release(zero)
}

// genVecOp emits the generic vector_op helper call for the element-wise
// subset: a VecOp dispatch code, vd/vs2 register indices, an operand
// kind, the vs1-or-rs1-or-imm operand, and the mask flag -- resolved
// here into either a vector register index (OPIVV/OPMVV), a GPR read
// (OPIVX), or a sign-extended 5-bit immediate (OPIVI) so the runtime
// kernel never has to re-decode the encoding.
func (c *Context) genVecOp(op VecOp, vd, vs2, field, funct3 uint32, usesMask bool) {
	e := c.Emitter

	kind := int64(helpers.VecOperandScalar)
	var operand ir.HelperArg
	switch funct3 {
	case vecFunct3OPIVX:
		v := e.NewTempWord()
		e.GetReg(v, field)
		operand = ir.HelperArg{Arg: ir.TempArg(v)}
		defer e.Release(v)
	case vecFunct3OPIVI:
		imm := bitfield.SignExtract(field, 0, 5)
		operand = ir.HelperArg{Arg: ir.ImmArg(int64(imm))}
	default: // OPIVV, OPMVV: field names a vector register index
		kind = helpers.VecOperandReg
		operand = ir.HelperArg{Arg: ir.ImmArg(int64(field))}
	}

	e.CallHelper(helpers.VectorOp,
		ir.HelperArg{Arg: ir.ImmArg(int64(op))},
		ir.HelperArg{Arg: ir.ImmArg(int64(vd))},
		ir.HelperArg{Arg: ir.ImmArg(int64(vs2))},
		ir.HelperArg{Arg: ir.ImmArg(kind)},
		operand,
		ir.HelperArg{Arg: ir.ImmArg(boolArg(usesMask))},
	)
}
