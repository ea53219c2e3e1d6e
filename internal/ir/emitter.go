/*
 * rvtrans - Micro-op emitter
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

package ir

import "fmt"

// Emitter is the narrow capability surface translators depend on.
// Translators in internal/translate depend only on this interface,
// never on Buffer directly, so opcode tables and translators never
// touch each other through a global.
type Emitter interface {
	// Temporaries.
	NewTempWord() Temp
	NewTempU64() Temp
	NewLocalWord() Temp
	NewTempF32() Temp
	NewTempF64() Temp
	Release(t Temp)

	// Arithmetic / logical / shift over word temporaries.
	MovImm(dest Temp, imm int64)
	Mov(dest, src Temp)
	Add(dest, a, b Temp)
	Sub(dest, a, b Temp)
	And(dest, a, b Temp)
	Or(dest, a, b Temp)
	Xor(dest, a, b Temp)
	Not(dest, src Temp)
	Shl(dest, a, b Temp)
	Shr(dest, a, b Temp)
	Sar(dest, a, b Temp)

	// Widening multiply: dest receives the low half, destHi the high
	// half of the full double-width product.
	MulU2(dest, destHi, a, b Temp)
	MulS2(dest, destHi, a, b Temp)
	MulSU2(dest, destHi, a, b Temp)

	// Sign/zero extension of the low 32 bits of src into dest (a
	// U64-kind temp), used by W-form results and by the div/rem W
	// variants' operand widening.
	Ext32S(dest, src Temp)
	Ext32U(dest, src Temp)

	SetCond(cond Cond, dest, a, b Temp)
	MovCond(cond Cond, dest, condA, condB, ifTrue, ifFalse Temp)

	// Raw division/remainder. These are unguarded: dividing by zero or
	// signed INT_MIN/-1 is undefined at this level. Translators must
	// pre-substitute safe operands via MovCond before calling these and
	// post-select the real result afterwards -- see translate.genDivRem.
	DivS(dest, a, b Temp)
	DivU(dest, a, b Temp)
	RemS(dest, a, b Temp)
	RemU(dest, a, b Temp)

	// Guest memory access, parameterised by signedness/width and an MMU
	// mode index; addr is a guest virtual address temp.
	Load(dest Temp, width MemWidth, sign MemSign, mmuIndex int, addr Temp)
	Store(width MemWidth, mmuIndex int, addr, val Temp)

	// Guest-register accessors. Each call produces or consumes a fresh
	// word/FP temp; GetReg of x0 and PutReg to x0 are still emitted here,
	// the x0-is-always-zero invariant is enforced by the (out of scope)
	// lowering stage, matching the usual gpr_read/gpr_write wording.
	GetReg(dest Temp, idx uint32)
	PutReg(idx uint32, src Temp)
	GetFReg(dest Temp, idx uint32, width FPWidth)
	PutFReg(idx uint32, src Temp, width FPWidth)

	// GetPC/SetPC access the PC slot, which lives outside the GPR file.
	GetPC(dest Temp)
	SetPC(src Temp)

	// FP moves and the inline sign-injection/bitwise-move ops that
	// are emitted without a helper call.
	FMov(dest, src Temp, width FPWidth)
	// FSignInject computes sign(b) [optionally negated, optionally
	// xor-combined with sign(a)] combined with the magnitude of a,
	// implementing fsgnj/fsgnjn/fsgnjx inline via a bitwise mask.
	FSignInject(dest, a, b Temp, width FPWidth, negate, xorMode bool)
	FMovToGPR(dest, src Temp, width FPWidth)
	FMovFromGPR(dest, src Temp, width FPWidth)

	// Structured forward branches, scoped to one emitted instruction.
	Label() Label
	Br(l Label)
	BrCond(cond Cond, a, b Temp, l Label)
	SetLabel(l Label)

	// Block termination. GotoTB is legal only when UseGotoTB(dest) is
	// true for the current context; callers are expected to have
	// checked that themselves (see translate.Context.UseGotoTB).
	GotoTB(slot int, dest uint64)
	ExitTBDirect(dest uint64)
	ExitTBIndirect(destAddrTemp Temp)

	// CallHelper invokes a named runtime helper. The three variants
	// distinguish no-return-value, word-return, and FP-return helpers so
	// that the lowering stage knows which register bank to write the
	// result into; see internal/helpers for the name/signature contract.
	CallHelper(name string, args ...HelperArg)
	CallHelperRet(name string, args ...HelperArg) Temp
	CallHelperRetFP(name string, width FPWidth, args ...HelperArg) Temp

	// EndInstruction is called by the driver after each translator
	// invocation returns. It force-releases every temp (normal and
	// local) so the next instruction starts from a clean pool, and
	// returns the number of *normal* (non-local) temps that were still
	// live -- i.e. the translator forgot to Release them. A non-zero
	// return is an "IR temporary leak" invariant violation and is fatal,
	// matched by the driver.
	EndInstruction() int

	// Ops exposes the accumulated micro-op sequence for a completed
	// translation; it is read-only from the translator's point of view.
	Ops() []Op
}

// Buffer is the concrete Emitter backing one TB's translation.
type Buffer struct {
	ops []Op

	nextTempID  int
	nextLabelID int

	normalLive map[int]tempKind
	localLive  map[int]tempKind
}

// NewBuffer returns an empty emitter ready for one translation call.
func NewBuffer() *Buffer {
	return &Buffer{
		normalLive: make(map[int]tempKind),
		localLive:  make(map[int]tempKind),
	}
}

func (b *Buffer) newID() int {
	b.nextTempID++
	return b.nextTempID
}

func (b *Buffer) NewTempWord() Temp {
	t := Temp{id: b.newID(), kind: tempWord}
	b.normalLive[t.id] = t.kind
	return t
}

func (b *Buffer) NewTempU64() Temp {
	t := Temp{id: b.newID(), kind: tempU64}
	b.normalLive[t.id] = t.kind
	return t
}

func (b *Buffer) NewTempF32() Temp {
	t := Temp{id: b.newID(), kind: tempF32}
	b.normalLive[t.id] = t.kind
	return t
}

func (b *Buffer) NewTempF64() Temp {
	t := Temp{id: b.newID(), kind: tempF64}
	b.normalLive[t.id] = t.kind
	return t
}

func (b *Buffer) NewLocalWord() Temp {
	t := Temp{id: b.newID(), kind: tempLocalWord}
	b.localLive[t.id] = t.kind
	return t
}

func (b *Buffer) Release(t Temp) {
	delete(b.normalLive, t.id)
	delete(b.localLive, t.id)
}

func (b *Buffer) append(op Op) { b.ops = append(b.ops, op) }

func (b *Buffer) MovImm(dest Temp, imm int64) {
	b.append(Op{Code: OpMovImm, Dest: dest, A: ImmArg(imm)})
}

func (b *Buffer) Mov(dest, src Temp) {
	b.append(Op{Code: OpMov, Dest: dest, A: TempArg(src)})
}

func (b *Buffer) Add(dest, a, c Temp) { b.bin(OpAdd, dest, a, c) }
func (b *Buffer) Sub(dest, a, c Temp) { b.bin(OpSub, dest, a, c) }
func (b *Buffer) And(dest, a, c Temp) { b.bin(OpAnd, dest, a, c) }
func (b *Buffer) Or(dest, a, c Temp)  { b.bin(OpOr, dest, a, c) }
func (b *Buffer) Xor(dest, a, c Temp) { b.bin(OpXor, dest, a, c) }
func (b *Buffer) Shl(dest, a, c Temp) { b.bin(OpShl, dest, a, c) }
func (b *Buffer) Shr(dest, a, c Temp) { b.bin(OpShr, dest, a, c) }
func (b *Buffer) Sar(dest, a, c Temp) { b.bin(OpSar, dest, a, c) }

func (b *Buffer) bin(code Opcode, dest, a, c Temp) {
	b.append(Op{Code: code, Dest: dest, A: TempArg(a), B: TempArg(c)})
}

func (b *Buffer) Not(dest, src Temp) {
	b.append(Op{Code: OpNot, Dest: dest, A: TempArg(src)})
}

func (b *Buffer) MulU2(dest, destHi, a, c Temp) { b.mul2(OpMulU2, dest, destHi, a, c) }
func (b *Buffer) MulS2(dest, destHi, a, c Temp) { b.mul2(OpMulS2, dest, destHi, a, c) }
func (b *Buffer) MulSU2(dest, destHi, a, c Temp) { b.mul2(OpMulSU2, dest, destHi, a, c) }

func (b *Buffer) mul2(code Opcode, dest, destHi, a, c Temp) {
	b.append(Op{Code: code, Dest: dest, DestHi: destHi, A: TempArg(a), B: TempArg(c)})
}

func (b *Buffer) Ext32S(dest, src Temp) {
	b.append(Op{Code: OpExt32S, Dest: dest, A: TempArg(src)})
}

func (b *Buffer) Ext32U(dest, src Temp) {
	b.append(Op{Code: OpExt32U, Dest: dest, A: TempArg(src)})
}

func (b *Buffer) SetCond(cond Cond, dest, a, c Temp) {
	b.append(Op{Code: OpSetCond, Dest: dest, A: TempArg(a), B: TempArg(c), Cond: cond})
}

func (b *Buffer) MovCond(cond Cond, dest, condA, condB, ifTrue, ifFalse Temp) {
	b.append(Op{
		Code: OpMovCond, Dest: dest, Cond: cond,
		A: TempArg(condA), B: TempArg(condB),
		CTemp: ifTrue, DTemp: ifFalse,
	})
}

func (b *Buffer) DivS(dest, a, c Temp) { b.bin(OpDivS, dest, a, c) }
func (b *Buffer) DivU(dest, a, c Temp) { b.bin(OpDivU, dest, a, c) }
func (b *Buffer) RemS(dest, a, c Temp) { b.bin(OpRemS, dest, a, c) }
func (b *Buffer) RemU(dest, a, c Temp) { b.bin(OpRemU, dest, a, c) }

func (b *Buffer) Load(dest Temp, width MemWidth, sign MemSign, mmuIndex int, addr Temp) {
	b.append(Op{
		Code: OpLoad, Dest: dest, MemWidth: width, MemSign: sign,
		MMUIndex: mmuIndex, AddrTemp: addr,
	})
}

func (b *Buffer) Store(width MemWidth, mmuIndex int, addr, val Temp) {
	b.append(Op{
		Code: OpStore, MemWidth: width, MMUIndex: mmuIndex,
		AddrTemp: addr, A: TempArg(val),
	})
}

func (b *Buffer) GetReg(dest Temp, idx uint32) {
	b.append(Op{Code: OpGetReg, Dest: dest, RegIndex: idx})
}

func (b *Buffer) PutReg(idx uint32, src Temp) {
	b.append(Op{Code: OpPutReg, A: TempArg(src), RegIndex: idx})
}

func (b *Buffer) GetFReg(dest Temp, idx uint32, width FPWidth) {
	b.append(Op{Code: OpGetFReg, FDest: dest, RegIndex: idx, FPWidth: width})
}

func (b *Buffer) PutFReg(idx uint32, src Temp, width FPWidth) {
	b.append(Op{Code: OpPutFReg, FA: src, RegIndex: idx, FPWidth: width})
}

func (b *Buffer) GetPC(dest Temp) {
	b.append(Op{Code: OpGetPC, Dest: dest})
}

func (b *Buffer) SetPC(src Temp) {
	b.append(Op{Code: OpSetPC, A: TempArg(src)})
}

func (b *Buffer) FMov(dest, src Temp, width FPWidth) {
	b.append(Op{Code: OpFMov, FDest: dest, FA: src, FPWidth: width})
}

func (b *Buffer) FSignInject(dest, a, c Temp, width FPWidth, negate, xorMode bool) {
	imm := int64(0)
	if negate {
		imm |= 1
	}
	if xorMode {
		imm |= 2
	}
	b.append(Op{Code: OpFSignInject, FDest: dest, FA: a, FB: c, FPWidth: width, A: ImmArg(imm)})
}

func (b *Buffer) FMovToGPR(dest, src Temp, width FPWidth) {
	b.append(Op{Code: OpFMovToGPR, Dest: dest, FA: src, FPWidth: width})
}

func (b *Buffer) FMovFromGPR(dest, src Temp, width FPWidth) {
	b.append(Op{Code: OpFMovFromGPR, FDest: dest, A: TempArg(src), FPWidth: width})
}

func (b *Buffer) Label() Label {
	b.nextLabelID++
	l := Label{id: b.nextLabelID}
	b.append(Op{Code: OpLabel, Label: l})
	return l
}

func (b *Buffer) Br(l Label) {
	b.append(Op{Code: OpBr, Label: l})
}

func (b *Buffer) BrCond(cond Cond, a, c Temp, l Label) {
	b.append(Op{Code: OpBrCond, Cond: cond, A: TempArg(a), B: TempArg(c), Label: l})
}

func (b *Buffer) SetLabel(l Label) {
	b.append(Op{Code: OpSetLabel, Label: l})
}

func (b *Buffer) GotoTB(slot int, dest uint64) {
	b.append(Op{Code: OpGotoTB, TBSlot: slot, TBDest: dest})
}

func (b *Buffer) ExitTBDirect(dest uint64) {
	b.append(Op{Code: OpExitTB, TBDest: dest})
}

func (b *Buffer) ExitTBIndirect(destAddrTemp Temp) {
	b.append(Op{Code: OpExitTB, AddrTemp: destAddrTemp, TBSlot: -1})
}

func (b *Buffer) CallHelper(name string, args ...HelperArg) {
	b.append(Op{Code: OpCallHelper, HelperName: name, HelperArgs: args})
}

func (b *Buffer) CallHelperRet(name string, args ...HelperArg) Temp {
	dest := b.NewTempWord()
	b.append(Op{Code: OpCallHelper, HelperName: name, HelperArgs: args, HelperDest: dest})
	return dest
}

func (b *Buffer) CallHelperRetFP(name string, width FPWidth, args ...HelperArg) Temp {
	var dest Temp
	if width == F32 {
		dest = b.NewTempF32()
	} else {
		dest = b.NewTempF64()
	}
	b.append(Op{Code: OpCallHelper, HelperName: name, HelperArgs: args, HelperFPDest: dest, FPWidth: width})
	return dest
}

func (b *Buffer) EndInstruction() int {
	leaked := len(b.normalLive)
	for id := range b.normalLive {
		delete(b.normalLive, id)
	}
	for id := range b.localLive {
		delete(b.localLive, id)
	}
	return leaked
}

func (b *Buffer) Ops() []Op { return b.ops }

// Len reports the number of micro-ops emitted so far; used by the driver
// to approximate "IR buffer near-full" as a driver stop condition.
func (b *Buffer) Len() int { return len(b.ops) }

// String renders an Op for debugging/tests.
func (o Op) String() string {
	return fmt.Sprintf("%v(dest=%v a=%v b=%v)", o.Code, o.Dest, o.A, o.B)
}
