/*
 * rvtrans - Micro-op emitter tests
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

import "testing"

func TestTempLeakDetected(t *testing.T) {
	b := NewBuffer()
	a := b.NewTempWord()
	c := b.NewTempWord()
	b.Add(a, a, c)
	// Forgot to Release either temp.
	if leaked := b.EndInstruction(); leaked != 2 {
		t.Fatalf("leaked = %d, want 2", leaked)
	}
}

func TestTempReleaseAvoidsLeak(t *testing.T) {
	b := NewBuffer()
	a := b.NewTempWord()
	c := b.NewTempWord()
	b.Add(a, a, c)
	b.Release(a)
	b.Release(c)
	if leaked := b.EndInstruction(); leaked != 0 {
		t.Fatalf("leaked = %d, want 0", leaked)
	}
}

func TestLocalTempsDoNotCountAsLeak(t *testing.T) {
	b := NewBuffer()
	b.NewLocalWord()
	if leaked := b.EndInstruction(); leaked != 0 {
		t.Fatalf("local temps should never count toward the leak check, got %d", leaked)
	}
}

func TestGotoTBSlots(t *testing.T) {
	b := NewBuffer()
	b.GotoTB(0, 0x1000)
	b.GotoTB(1, 0x1004)
	ops := b.Ops()
	if len(ops) != 2 || ops[0].TBSlot != 0 || ops[1].TBSlot != 1 {
		t.Fatalf("unexpected ops: %+v", ops)
	}
}

func TestGetPutRegRecordIndex(t *testing.T) {
	b := NewBuffer()
	a := b.NewTempWord()
	b.GetReg(a, 5)
	b.PutReg(10, a)
	ops := b.Ops()
	if ops[0].Code != OpGetReg || ops[0].RegIndex != 5 {
		t.Fatalf("GetReg: %+v", ops[0])
	}
	if ops[1].Code != OpPutReg || ops[1].RegIndex != 10 || ops[1].A.Temp != a {
		t.Fatalf("PutReg: %+v", ops[1])
	}
}

func TestGetPutFRegRecordWidth(t *testing.T) {
	b := NewBuffer()
	f := b.NewTempF64()
	b.GetFReg(f, 3, F64)
	b.PutFReg(7, f, F64)
	ops := b.Ops()
	if ops[0].Code != OpGetFReg || ops[0].RegIndex != 3 || ops[0].FPWidth != F64 {
		t.Fatalf("GetFReg: %+v", ops[0])
	}
	if ops[1].Code != OpPutFReg || ops[1].RegIndex != 7 || ops[1].FA != f {
		t.Fatalf("PutFReg: %+v", ops[1])
	}
}

func TestMovCondRecordsBothBranches(t *testing.T) {
	b := NewBuffer()
	dest := b.NewTempWord()
	ifTrue := b.NewTempWord()
	ifFalse := b.NewTempWord()
	cA := b.NewTempWord()
	cB := b.NewTempWord()
	b.MovCond(CondEQ, dest, cA, cB, ifTrue, ifFalse)
	op := b.Ops()[0]
	if op.CTemp != ifTrue || op.DTemp != ifFalse {
		t.Fatalf("movcond did not record both branch values: %+v", op)
	}
}
