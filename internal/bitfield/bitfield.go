/*
 * rvtrans - Bit field extraction
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

// Package bitfield implements the pure bit-window extraction and
// RISC-V immediate decoding that every decoder in this module rests on.
//
// These functions are total over their domain: they never validate that
// start+len fits the caller's intended semantics, and they never raise an
// error. Range checking (shift amounts, reserved encodings) is the
// translator's job, not the extractor's -- see internal/translate.
package bitfield

// Extract returns the len-bit unsigned field of v starting at bit start.
func Extract(v uint32, start, length uint) uint32 {
	return (v >> start) & mask32(length)
}

// Extract64 is Extract over a 64-bit value.
func Extract64(v uint64, start, length uint) uint64 {
	return (v >> start) & mask64(length)
}

// SignExtract returns the len-bit field of v starting at bit start,
// sign-extended through the rest of the 32-bit result from the field's
// top bit.
func SignExtract(v uint32, start, length uint) int32 {
	field := Extract(v, start, length)
	signBit := uint32(1) << (length - 1)
	return int32(field^signBit) - int32(signBit)
}

// SignExtract64 is SignExtract sign-extending into a 64-bit result.
func SignExtract64(v uint64, start, length uint) int64 {
	field := Extract64(v, start, length)
	signBit := uint64(1) << (length - 1)
	return int64(field^signBit) - int64(signBit)
}

func mask32(length uint) uint32 {
	if length >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << length) - 1
}

func mask64(length uint) uint64 {
	if length >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << length) - 1
}

// SignExtendWord sign-extends bit 31 of v through bits 32..63, producing
// the XLEN=64 value a W-form result must be written back as.
func SignExtendWord(v uint32) uint64 {
	return uint64(int64(int32(v)))
}
