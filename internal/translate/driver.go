/*
 * rvtrans - Translation block driver
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
	"github.com/bbradley/rvtrans/util/debug"
	"github.com/bbradley/rvtrans/util/logger"
)

// TraceLevel enables the translate package's debug.Tracef output; OR
// together the debug component bits to select subsystems.
var TraceLevel int

// maxInsns bounds the number of guest instructions a single block may
// translate, mirroring the host-side TranslationBlock insn-count cap:
// without it a tight loop of unconditional branches that never hits a
// page boundary would grow one block without end.
const maxInsns = 512

// irNearFullOps is the driver's "IR buffer near full" stop condition:
// once the emitter has this many ops buffered, the next instruction
// might not fit comfortably and the block ends instead of risking a
// buffer that has to grow mid-instruction.
const irNearFullOps = 4096

// FetchWord is the byte-stream the driver pulls guest instructions
// from: ReadHalf returns the next 16-bit unit (every RISC-V
// instruction, compressed or not, starts with one), ReadWordAt returns
// the full 32-bit word once the driver knows it needs one.
type FetchWord interface {
	ReadHalf(pc uint64) uint16
	ReadWordAt(pc uint64) uint32
}

// DriverOptions carries the per-call configuration GenIntermediateCode
// needs beyond the entry PC: the feature set live for this block, the
// MMU index translations run under, and the two modes the host may
// invoke translation in (ordinary execution vs. single-step/restore).
type DriverOptions struct {
	XLen              int
	Misa              uint64
	MMUIndex          int
	SinglestepEnabled bool

	// MaxInsns caps the block like maxInsns, but lets a single-step
	// caller pass 1 to force exactly one guest instruction per block.
	MaxInsns int

	// SearchPC puts the driver in restore mode (`tb->search_pc`): used
	// by restore_state_to_opc to re-translate a block only far enough
	// to reconstruct the state at one opcode index. OriginalSize must
	// be the Size the first, ordinary translation of this same block
	// reached; re-emission is bounded to never exceed it.
	SearchPC     bool
	OriginalSize uint32

	// Breakpoints is the runtime's breakpoint address list, consulted
	// before each instruction is translated. It must be stable for the
	// duration of one GenIntermediateCode call.
	Breakpoints []uint64
}

// hitBreakpoint reports whether pc matches one of the runtime's
// breakpoint addresses.
func hitBreakpoint(breakpoints []uint64, pc uint64) bool {
	for _, bp := range breakpoints {
		if bp == pc {
			return true
		}
	}
	return false
}

// GenIntermediateCode is the translation-block driver: it walks guest
// instructions starting at pc, appending internal/ir micro-ops to a
// fresh ir.TB until a block-ending condition is reached. This is the
// single entry point the (out-of-scope) runtime calls to turn a guest
// PC into an executable host translation.
func GenIntermediateCode(fetch FetchWord, pc uint64, opts DriverOptions) *ir.TB {
	tb := ir.NewTB(pc, opts.XLen)
	tb.DisasFlags = disasFlags(opts)
	if opts.SearchPC {
		tb.OriginalSize = opts.OriginalSize
	}

	maxInsnsForBlock := opts.MaxInsns
	if maxInsnsForBlock <= 0 {
		maxInsnsForBlock = maxInsns
	}

	cur := pc
	for {
		tb.MarkInstructionStart(cur)
		tb.PrevSize = tb.Size

		if hitBreakpoint(opts.Breakpoints, cur) {
			// A host breakpoint at this guest PC: emit the debug
			// exception in place of translating the instruction here,
			// advance PC past it so the runtime's invalidation logic
			// still sees forward progress, and end the block.
			pcTemp := tb.Emitter.NewTempWord()
			tb.Emitter.MovImm(pcTemp, int64(cur+2))
			tb.Emitter.SetPC(pcTemp)
			tb.Emitter.Release(pcTemp)
			tb.Emitter.CallHelper(helpers.RaiseExceptionDebug)
			tb.Emitter.EndInstruction()
			return tb
		}

		ctx := &Context{
			Emitter:           tb.Emitter,
			TBPC:              tb.PC,
			XLen:              opts.XLen,
			PC:                cur,
			MMUIndex:          opts.MMUIndex,
			SinglestepEnabled: opts.SinglestepEnabled,
			Misa:              opts.Misa,
		}

		low16 := fetch.ReadHalf(cur)
		insnLen := uint64(4)
		if bitfieldQuadrant(low16) != 3 {
			insnLen = 2
		}
		ctx.NextPC = cur + insnLen
		ctx.Opcode = uint32(low16) // decode32 widens this to the full word

		ctx.Decode(low16, func() uint32 { return fetch.ReadWordAt(cur) })

		if leaked := tb.Emitter.EndInstruction(); leaked != 0 {
			// A translator failed to release every temp it allocated;
			// this is a translator bug, not a guest-supplied condition,
			// so it is surfaced as a panic rather than folded into the
			// guest-visible exception machinery.
			panic("translate: instruction at pc leaked IR temporaries")
		}

		tb.ICount++
		tb.Size += uint32(insnLen)
		if !opts.SearchPC {
			// First-ever translation: original_size tracks size at each
			// step, so the frozen value is the length the block finally
			// reached -- the restore-mode bound below.
			tb.OriginalSize = tb.Size
		}

		if tb.ICount >= maxInsnsForBlock && ctx.BState == BStateNone {
			logger.Default.Debug("translation block instruction budget reached",
				"pc", tb.PC, "icount", tb.ICount)
			ctx.BState = BStateStop
		}
		if opts.SearchPC && tb.Size == tb.OriginalSize && ctx.BState == BStateNone {
			// Restore-mode bound: never re-emit past the length the
			// first, ordinary translation reached.
			ctx.BState = BStateStop
		}

		switch ctx.BState {
		case BStateBranch:
			debug.Tracef("tb", debug.TB, TraceLevel,
				"block %#x ends: translator emitted its own exit at %#x", tb.PC, cur)
			return tb
		case BStateStop:
			// The translator (or the icount budget) decided the block
			// ends here without emitting its own exit: chain to the
			// next instruction when legal, exactly like a fallthrough
			// branch target, otherwise fall back to an unchained exit.
			ctx.emitGotoOrExit(0, ctx.NextPC)
			return tb
		}

		if opts.SinglestepEnabled {
			// No branch was emitted for this instruction, so the block
			// ends here; publish the PC this instruction stopped at
			// and let the runtime raise the debug exception itself.
			pcTemp := tb.Emitter.NewTempWord()
			tb.Emitter.MovImm(pcTemp, int64(ctx.NextPC))
			tb.Emitter.SetPC(pcTemp)
			tb.Emitter.Release(pcTemp)
			tb.Emitter.CallHelper(helpers.RaiseExceptionDebug)
			return tb
		}
		if tb.Emitter.Len() >= irNearFullOps {
			logger.Default.Debug("translation block IR buffer near full",
				"pc", tb.PC, "ops", tb.Emitter.Len())
			tb.Emitter.ExitTBDirect(ctx.NextPC)
			return tb
		}
		if !ctx.UseGotoTB(ctx.NextPC) {
			debug.Tracef("tb", debug.TB, TraceLevel,
				"block %#x ends: %#x crosses the entry page", tb.PC, ctx.NextPC)
			// Falling off the page the block started on: the next
			// instruction would translate under a different page's
			// assumptions, so the block ends here even though nothing
			// about this instruction itself forced an exit.
			tb.Emitter.ExitTBDirect(ctx.NextPC)
			return tb
		}

		cur = ctx.NextPC
	}
}

// bitfieldQuadrant avoids importing internal/bitfield into this file
// for a single two-bit test; Decode itself re-derives the same value
// from the same bits once dispatch begins.
func bitfieldQuadrant(low16 uint16) uint32 { return uint32(low16) & 0b11 }

// disasFlags snapshots the feature/mode premises the block was
// translated under: the misa extension bits in the low word, plus a
// single-step marker in the top bit. The runtime compares these when
// deciding whether a cached block is still valid for the current mode.
func disasFlags(opts DriverOptions) uint32 {
	flags := uint32(opts.Misa & 0x03FFFFFF)
	if opts.SinglestepEnabled {
		flags |= 1 << 31
	}
	return flags
}
