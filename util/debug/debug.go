/*
 * rvtrans - Masked component tracing
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

// Package debug implements masked, per-component trace logging in the
// style of a simulator's optional instruction trace: each call site picks
// a bit in a component-local mask, and a trace only prints when that bit
// is set in the level the caller currently has enabled.
package debug

import (
	"fmt"
	"os"
)

// Component mask bits, one per subsystem that can independently enable
// tracing. A caller ORs the bits it wants and passes the result as level
// to Tracef; Tracef fires only when mask&level != 0.
const (
	Decode = 1 << iota // decode dispatcher: reserved/illegal encodings
	TB                 // translation-block driver: block formation decisions
	Vector             // vector helper kernel: vsetvl and element ops
)

var out = os.Stderr

// Tracef prints a trace line for component when mask&level is non-zero.
// It is the only logging call on the translator's hot path, and even
// there it is reached only for events worth a line: reserved-but-handled
// encodings, block-termination reasons, and vsetvl results.
func Tracef(component string, mask, level int, format string, a ...any) {
	if mask&level == 0 {
		return
	}
	fmt.Fprintf(out, component+": "+format+"\n", a...)
}

// SetOutput redirects trace output; defaults to os.Stderr.
func SetOutput(f *os.File) {
	out = f
}
