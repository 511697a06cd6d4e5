// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package trace holds the counter-example representation shared between the
// BMC engines, the trace-adaptor chain, and the AIGER witness writer (spec
// §3 "Trace").
package trace

import "github.com/GaloisInc/tip/z"

// LoopNone marks a trace with no lasso (a plain safety counter-example).
const LoopNone = -1

// Frame is one time step of a trace, indexed by AIGER input number. A
// position not driven by any recorded input reads as z.LUndef ('x').
type Frame []z.Lbool

// T is a sequence of input frames witnessing a property's falsification,
// plus (for liveness) the index of the frame where a lasso closes.
type T struct {
	Frames []Frame
	Loop   int
}

// New creates an empty trace with no lasso.
func New() *T {
	return &T{Loop: LoopNone}
}

// At returns the value of input number idx in frame k, or z.LUndef if idx
// is out of range for that frame.
func (t *T) At(k, idx int) z.Lbool {
	if k < 0 || k >= len(t.Frames) {
		return z.LUndef
	}
	f := t.Frames[k]
	if idx < 0 || idx >= len(f) {
		return z.LUndef
	}
	return f[idx]
}
