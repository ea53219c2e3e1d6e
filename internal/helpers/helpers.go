/*
 * rvtrans - Runtime helper name contract
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

// Package helpers names the runtime-helper contract: a set of
// host-language functions, callable from emitted IR, that read/write
// guest state directly. internal/translate never
// implements these -- it only emits ir.Op{Code: ir.OpCallHelper} values
// naming one of the constants below, so the translator and the (out of
// scope) runtime agree on names and argument shapes without a compile
// time dependency in either direction.
package helpers

// Trap and privileged-mode helpers.
const (
	RaiseException         = "raise_exception"
	RaiseExceptionMBadAddr = "raise_exception_mbadaddr"
	RaiseExceptionDebug    = "raise_exception_debug"
	CSRRW                  = "csrrw"
	CSRRS                  = "csrrs"
	CSRRC                  = "csrrc"
	SRET                   = "sret"
	MRET                   = "mret"
	WFI                    = "wfi"
	TLBFlush               = "tlb_flush"
	FenceI                 = "fence_i"
)

// Floating point kernel helpers, one per operation x precision.
const (
	FAddS, FAddD   = "fadd_s", "fadd_d"
	FSubS, FSubD   = "fsub_s", "fsub_d"
	FMulS, FMulD   = "fmul_s", "fmul_d"
	FDivS, FDivD   = "fdiv_s", "fdiv_d"
	FSqrtS, FSqrtD = "fsqrt_s", "fsqrt_d"
	FMinS, FMinD   = "fmin_s", "fmin_d"
	FMaxS, FMaxD   = "fmax_s", "fmax_d"

	FMAddS, FMAddD   = "fmadd_s", "fmadd_d"
	FMSubS, FMSubD   = "fmsub_s", "fmsub_d"
	FNMAddS, FNMAddD = "fnmadd_s", "fnmadd_d"
	FNMSubS, FNMSubD = "fnmsub_s", "fnmsub_d"

	FEqS, FEqD = "feq_s", "feq_d"
	FLtS, FLtD = "flt_s", "flt_d"
	FLeS, FLeD = "fle_s", "fle_d"

	FClassS, FClassD = "fclass_s", "fclass_d"

	// fcvt_* is named by (from, to) suffix; the translator selects the
	// concrete name from the rs2-encoded variant, see translate/fp.go.
	FCvtWS, FCvtWUS, FCvtLS, FCvtLUS = "fcvt_w_s", "fcvt_wu_s", "fcvt_l_s", "fcvt_lu_s"
	FCvtSW, FCvtSWU, FCvtSL, FCvtSLU = "fcvt_s_w", "fcvt_s_wu", "fcvt_s_l", "fcvt_s_lu"
	FCvtWD, FCvtWUD, FCvtLD, FCvtLUD = "fcvt_w_d", "fcvt_wu_d", "fcvt_l_d", "fcvt_lu_d"
	FCvtDW, FCvtDWU, FCvtDL, FCvtDLU = "fcvt_d_w", "fcvt_d_wu", "fcvt_d_l", "fcvt_d_lu"
	FCvtSD, FCvtDS                   = "fcvt_s_d", "fcvt_d_s"
)

// Vector-instruction entry points: the translator calls these directly
// on entry to a vector instruction; the element loops
// inside are internal/vecexec, not emitted inline.
const (
	VSetVL   = "vsetvl"
	VectorOp = "vector_op" // generic dispatch: opcode + operand indices passed as args

	// VectorVillCheck gates every non-config vector instruction: the
	// helper returns 1 (raise ILLEGAL_INST before any side effect) when
	// vill is set or the V extension is disabled, 0 otherwise.
	VectorVillCheck = "vector_vill_check"
)

// Vector-op dispatch codes for the vector_op helper's first argument;
// the translator emits these and internal/vecexec.Execute consumes
// them, so the two sides share one numbering.
const (
	VecOpAdc = iota
	VecOpMadc
	VecOpSbc
	VecOpMsbc
	VecOpMerge
	VecOpMv
	VecOpCompress
)

// Operand-kind selector for the vector_op helper's operand argument:
// a scalar value (GPR read or sign-extended immediate, broadcast per
// element) or a vector register index.
const (
	VecOperandScalar = 0
	VecOperandReg    = 1
)
