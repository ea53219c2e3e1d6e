/*
 * rvtrans - Per-translation disassembly context
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

// Package translate implements the instruction translators and the
// translation-block driver: the part of the core that walks a guest
// instruction stream and appends internal/ir micro-ops describing its
// effects, one guest instruction at a time.
//
// The package keeps one file per instruction family (arith.go,
// branch.go, memop.go, atomic.go, fp.go, system.go, compressed.go), a
// dispatch table (dispatch.go) keyed by the decoded major opcode, and
// a transient per-call context struct (this file) threaded through
// every translator instead of consulted from a package global.
package translate

import "github.com/bbradley/rvtrans/internal/ir"

// BState names where block-ending authority currently rests: whether
// the driver may still append trailing ops after the last translated
// instruction, or whether the translator already closed out the block.
type BState int

const (
	// BStateNone: no block-ending event happened; the driver is free to
	// continue looping or close the block itself.
	BStateNone BState = iota
	// BStateStop: the translator (or a budget check) decided the block
	// ends here, but did not itself emit an exit; the driver must.
	BStateStop
	// BStateBranch: the translator emitted its own goto_tb/exit_tb
	// pair; the driver must not emit anything further.
	BStateBranch
)

// pageMask is the guest page size this core assumes for goto_tb
// same-page legality (4 KiB, the standard RISC-V base page size).
const pageMask = 0xFFF

// Context is the transient, per-translation-call state threaded
// through every translator. It does not outlive one call to
// GenIntermediateCode.
type Context struct {
	Emitter ir.Emitter

	TBPC uint64 // entry PC of the block being translated
	XLen int    // 32 or 64

	PC     uint64 // address of the instruction currently being translated
	NextPC uint64 // PC + instruction length

	Opcode uint32 // raw opcode word (16 bits zero-extended for compressed)

	MMUIndex          int
	SinglestepEnabled bool

	Misa uint64 // feature bits live for this translation

	BState BState
}

// UseGotoTB reports whether a chained goto_tb to dest is legal: dest
// must lie on the same guest page as the translation block's entry PC,
// and single-step must be off. Page-crossing and single-step both force
// an unchained exit_tb instead.
func (c *Context) UseGotoTB(dest uint64) bool {
	if c.SinglestepEnabled {
		return false
	}
	return (dest &^ pageMask) == (c.TBPC &^ pageMask)
}

// XLenMask returns the all-ones mask for the guest register width this
// context is translating for.
func (c *Context) XLenMask() uint64 {
	if c.XLen == 32 {
		return 0xFFFFFFFF
	}
	return ^uint64(0)
}

// HasExt reports whether the given misa extension bit is live for this
// translation.
func (c *Context) HasExt(bit uint64) bool { return c.Misa&bit != 0 }
