/*
 * rvtrans - Translation block descriptor
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

// TB is the translation-block descriptor produced by one call to the
// driver (internal/translate.GenIntermediateCode).
type TB struct {
	PC   uint64 // guest entry address
	XLen int    // 32 or 64

	Size         uint32 // bytes of guest code covered so far
	PrevSize     uint32 // Size before the instruction currently being translated
	OriginalSize uint32 // frozen on first-ever emission; bounds restore-mode re-emission
	ICount       int    // number of guest instructions translated

	DisasFlags uint32 // feature/mode bits frozen at block entry (misa snapshot etc.)

	// OpcodeIndex maps an IR-buffer position to the guest PC of the
	// instruction that produced it, i.e. the "opcode-to-PC index" used
	// by restore_state_to_opc.
	OpcodeIndex []OpcodePCEntry

	Emitter *Buffer
}

// OpcodePCEntry records, for one translated guest instruction, the
// micro-op index at which its emission began and the guest PC it came
// from.
type OpcodePCEntry struct {
	OpIndex int
	PC      uint64
}

// NewTB starts a fresh translation block at entry pc.
func NewTB(pc uint64, xlen int) *TB {
	return &TB{PC: pc, XLen: xlen, Emitter: NewBuffer()}
}

// MarkInstructionStart records the opcode-index/PC pair for the
// instruction about to be translated.
func (tb *TB) MarkInstructionStart(pc uint64) {
	tb.OpcodeIndex = append(tb.OpcodeIndex, OpcodePCEntry{OpIndex: tb.Emitter.Len(), PC: pc})
}
