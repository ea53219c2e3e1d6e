/*
 * rvtrans - Translator initialization
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
	"sync"

	"github.com/bbradley/rvtrans/config/featureconfig"
	"github.com/bbradley/rvtrans/util/logger"
)

var initOnce sync.Once

// Init parses a feature string such as "rv64gc" or
// "rv32imafdcv,vlen=256" into the DriverOptions template every
// translation under that configuration starts from, plus the vector
// register width in bytes for the guest-state Reset. Translation state
// is per-call rather than global, so the once-guarded part of setup is
// reduced to marking the translator ready; parsing itself is reentrant
// and may be called per configuration.
func Init(spec string) (DriverOptions, int, error) {
	f, err := featureconfig.Parse(spec)
	if err != nil {
		return DriverOptions{}, 0, err
	}

	misa := uint64(1 << ('I' - 'A'))
	if f.M {
		misa |= extMBit
	}
	if f.A {
		misa |= extABit
	}
	if f.F {
		misa |= extFBit
	}
	if f.D {
		misa |= extDBit
	}
	if f.C {
		misa |= extCBit
	}
	if f.V {
		misa |= extVBit
	}

	initOnce.Do(func() {
		logger.Default.Info("translator initialized", "isa", spec)
	})

	return DriverOptions{XLen: f.XLen, Misa: misa}, f.Vlen / 8, nil
}
