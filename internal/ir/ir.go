/*
 * rvtrans - Micro-op definitions
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

// Package ir implements the micro-op "IR" that every translator in
// internal/translate appends to instead of executing guest semantics
// directly. The IR is the contract boundary between this module
// (decode + emission) and an out-of-scope host code generator: a
// Buffer of Op values is the only thing that crosses it.
package ir

// Width names the operand width of an integer micro-op.
type Width uint8

const (
	Word Width = iota // guest register width (XLEN)
	U64               // explicit 64-bit, used by widening multiply highs
)

// FPWidth names the operand width of a floating point micro-op.
type FPWidth uint8

const (
	F32 FPWidth = iota
	F64
)

// MemWidth/MemSign describe a typed guest memory access.
type MemWidth uint8

const (
	Mem8 MemWidth = iota
	Mem16
	Mem32
	Mem64
)

type MemSign uint8

const (
	Signed MemSign = iota
	Unsigned
)

// Cond names a comparison predicate used by brcond/setcond/movcond.
type Cond uint8

const (
	CondEQ Cond = iota
	CondNE
	CondLT  // signed <
	CondGE  // signed >=
	CondLTU // unsigned <
	CondGEU // unsigned >=
	CondGT  // signed >
	CondGTU
)

// Temp is an opaque handle to an emitted temporary. Zero value is not a
// valid temp; only values returned by an Emitter's New*/Local* calls are.
type Temp struct {
	id   int
	kind tempKind
}

type tempKind uint8

const (
	tempWord tempKind = iota
	tempU64
	tempLocalWord
	tempF32
	tempF64
)

// Valid reports whether t was ever issued by an Emitter (the zero Temp is
// invalid so that a forgotten initialization is caught early).
func (t Temp) Valid() bool { return t.id != 0 }

// Label is an opaque forward-branch target, always created by Label()
// and resolved by exactly one SetLabel() call before the emitted
// instruction's translation completes.
type Label struct{ id int }

// Valid reports whether l was ever issued by Label().
func (l Label) Valid() bool { return l.id != 0 }

// Opcode names one micro-op kind in the Buffer. The catalogue here is the
// full capability surface an emitter exposes: arithmetic/logical/shift/
// compare over word temporaries, widening multiply, typed memory access,
// movcond, structured forward branches, block-exit primitives, and
// helper calls.
type Opcode uint8

const (
	OpMovImm Opcode = iota
	OpMov
	OpAdd
	OpSub
	OpAnd
	OpOr
	OpXor
	OpNot
	OpShl
	OpShr  // logical right shift
	OpSar  // arithmetic right shift
	OpMulU2  // widening multiply: dest, desthi = a * b (unsigned)
	OpMulS2  // widening multiply: dest, desthi = a * b (signed)
	OpMulSU2 // widening multiply: dest, desthi = a(signed) * b(unsigned)
	OpSetCond
	OpMovCond
	OpExt32S // sign-extend low 32 bits into a 64-bit word temp
	OpExt32U // zero-extend low 32 bits into a 64-bit word temp

	OpDivS // raw signed division; caller must pre-guard 0 and INT_MIN/-1
	OpDivU // raw unsigned division; caller must pre-guard divide-by-zero
	OpRemS // raw signed remainder, same pre-guard obligations as OpDivS
	OpRemU // raw unsigned remainder, same pre-guard obligations as OpDivU

	OpLoad  // typed guest memory load
	OpStore // typed guest memory store

	OpGetReg  // guest-state accessor: read GPR[idx] (x0 reads as zero)
	OpPutReg  // guest-state accessor: write GPR[idx] (writes to x0 discarded)
	OpGetFReg // guest-state accessor: read FPR[idx]
	OpPutFReg // guest-state accessor: write FPR[idx]
	OpGetPC   // guest-state accessor: read the PC slot
	OpSetPC   // guest-state accessor: write the PC slot

	OpFMov
	OpFOp // generic FP arithmetic helper-call placeholder (unused; FP ops go through CallHelper)
	OpFSignInject
	OpFMovToGPR // fmv.x.w / fmv.x.d
	OpFMovFromGPR

	OpLabel
	OpBr
	OpBrCond
	OpSetLabel

	OpGotoTB
	OpExitTB

	OpCallHelper
)

// Arg is a generic operand to a micro-op: either a Temp or an immediate.
// Exactly one of the two is meaningful, selected by the owning Op's
// interpretation of that argument slot.
type Arg struct {
	Temp Temp
	Imm  int64
	IsImm bool
}

// TempArg wraps a Temp as an Arg.
func TempArg(t Temp) Arg { return Arg{Temp: t} }

// ImmArg wraps a constant as an Arg.
func ImmArg(v int64) Arg { return Arg{Imm: v, IsImm: true} }

// HelperArg is one argument to a CallHelper op: either a guest-word Arg
// or an FP Temp, tagged so the (out-of-scope) lowering stage knows which
// register bank to read it from.
type HelperArg struct {
	Arg    Arg
	FPTemp Temp
	IsFP   bool
}

// Op is one emitted micro-op. Only the fields relevant to Code are
// meaningful; a flat struct stands in for a tagged union, rather than
// a family of concrete Op types, because the Buffer must stay a single
// homogeneous slice for the (out-of-scope) lowering pass to walk.
type Op struct {
	Code Opcode

	Dest   Temp
	DestHi Temp // second destination, for widening multiply
	A, B   Arg
	CTemp  Temp // movcond: value if predicate true
	DTemp  Temp // movcond: value if predicate false
	Cond   Cond

	MemWidth MemWidth
	MemSign  MemSign
	MMUIndex int
	AddrTemp Temp
	RegIndex uint32

	FPWidth  FPWidth
	FDest    Temp
	FA, FB   Temp

	Label Label

	TBSlot int   // 0 or 1: which goto_tb chain-entry slot
	TBDest uint64

	HelperName string
	HelperArgs []HelperArg
	HelperDest Temp   // non-zero if the helper's return value is captured
	HelperFPDest Temp // non-zero if the helper's return value is an FP temp
}
