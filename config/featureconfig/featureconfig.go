/*
 * rvtrans - Translator feature-string parser
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

// Package featureconfig parses the small text grammar translate_init
// accepts to pick XLEN and the enabled extension letters, e.g.
// "rv64gc" or "rv32imafdc,vlen=256". The scanner is rune-position based,
// not regex based, matching the line-scanning idiom used elsewhere in
// this codebase for small hand-rolled grammars.
//
// Grammar:
//
//	<spec>    ::= 'rv' <xlen> <letters> *(',' <option>)
//	<xlen>    ::= '32' | '64'
//	<letters> ::= 1*<extletter>
//	<extletter> ::= 'i' | 'm' | 'a' | 'f' | 'd' | 'g' | 'c' | 'v'
//	<option>  ::= 'vlen=' <number>
//
// 'g' is shorthand for "imafd".
package featureconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// Features is the parsed result of a feature string.
type Features struct {
	XLen int  // 32 or 64
	M    bool // integer multiply/divide
	A    bool // atomics
	F    bool // single precision float
	D    bool // double precision float
	C    bool // compressed
	V    bool // vector
	Vlen int  // vector register width in bits, default 128
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.s)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *scanner) takeWhile(pred func(byte) bool) string {
	start := sc.pos
	for !sc.eof() && pred(sc.peek()) {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Parse parses a feature string into Features. It returns an error
// naming the offending token, value or position on any malformed input
// rather than guessing intent.
func Parse(spec string) (Features, error) {
	f := Features{Vlen: 128}
	sc := &scanner{s: strings.ToLower(strings.TrimSpace(spec))}

	if !strings.HasPrefix(sc.s, "rv") {
		return f, fmt.Errorf("featureconfig: spec must start with \"rv\": %q", spec)
	}
	sc.pos = 2

	xlenStr := sc.takeWhile(isDigit)
	switch xlenStr {
	case "32":
		f.XLen = 32
	case "64":
		f.XLen = 64
	default:
		return f, fmt.Errorf("featureconfig: xlen must be 32 or 64, got %q at position 2", xlenStr)
	}

	letters := sc.takeWhile(func(b byte) bool { return b >= 'a' && b <= 'z' })
	if letters == "" {
		return f, fmt.Errorf("featureconfig: missing extension letters after rv%s", xlenStr)
	}
	for i := 0; i < len(letters); i++ {
		switch letters[i] {
		case 'i':
			// base integer ISA, always present
		case 'g':
			f.M, f.A, f.F, f.D = true, true, true, true
		case 'm':
			f.M = true
		case 'a':
			f.A = true
		case 'f':
			f.F = true
		case 'd':
			f.D = true
		case 'c':
			f.C = true
		case 'v':
			f.V = true
		default:
			return f, fmt.Errorf("featureconfig: unknown extension letter %q in %q", letters[i], spec)
		}
	}

	for !sc.eof() {
		if sc.peek() != ',' {
			return f, fmt.Errorf("featureconfig: expected ',' before option at position %d in %q", sc.pos, spec)
		}
		sc.pos++
		key := sc.takeWhile(func(b byte) bool { return b != '=' && b != ',' })
		if sc.peek() != '=' {
			return f, fmt.Errorf("featureconfig: option %q missing value in %q", key, spec)
		}
		sc.pos++
		val := sc.takeWhile(func(b byte) bool { return b != ',' })
		switch key {
		case "vlen":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 || n%8 != 0 {
				return f, fmt.Errorf("featureconfig: vlen must be a positive multiple of 8, got %q", val)
			}
			f.Vlen = n
		default:
			return f, fmt.Errorf("featureconfig: unknown option %q in %q", key, spec)
		}
	}

	return f, nil
}
