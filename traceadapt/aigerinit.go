// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package traceadapt

import (
	"github.com/GaloisInc/tip/trace"
	"github.com/GaloisInc/tip/z"
)

// flopInit records how one flop's AIGER-coordinate initial value should be
// reconstructed: either a fixed constant, or the observed value of the
// init-arena input standing in for "arbitrary" (AIGER latch init 'x').
type flopInit struct {
	val z.Lbool
	xID int // index into the pre-patch frame 0, or -1 if val is definite
}

// AigerInitPatcher undoes the init-arena's materialization of AIGER's
// non-deterministically initialized ("x") latches as free inputs (spec
// §4.8, ported from TipCirc.h's AigerInitTraceAdaptor).
//
// AIGER 1.9 allows each latch to be initialized to 0, 1, or an arbitrary
// value. This module's init arena represents "arbitrary" as an ordinary
// input (spec §4.2); this patcher records, per flop, either the constant
// AIGER specified or the id of the input standing in for 'x', and rewrites
// frame 0 so it reports one bit per flop: the flop's init value, or (for
// x-initialized flops) whatever value the solver chose for that input.
type AigerInitPatcher struct {
	flops []flopInit
}

// NewAigerInitPatcher creates an empty patcher.
func NewAigerInitPatcher() *AigerInitPatcher {
	return &AigerInitPatcher{}
}

// SetFlop records flop fid's init handling: val is the constant AIGER init
// value (z.LFalse or z.LTrue), or z.LUndef if the flop was x-initialized,
// in which case xID names the init-arena input that carries its chosen
// initial value.
func (p *AigerInitPatcher) SetFlop(fid int, val z.Lbool, xID int) {
	if fid >= len(p.flops) {
		grown := make([]flopInit, fid+1)
		copy(grown, p.flops)
		for i := len(p.flops); i < fid; i++ {
			grown[i] = flopInit{xID: -1}
		}
		p.flops = grown
	}
	p.flops[fid] = flopInit{val: val, xID: xID}
}

// Patch implements Patcher.
func (p *AigerInitPatcher) Patch(frames []trace.Frame) {
	if len(frames) == 0 {
		return
	}
	old := frames[0]
	nw := make(trace.Frame, len(p.flops))
	for i, fi := range p.flops {
		if fi.val != z.LUndef {
			nw[i] = fi.val
			continue
		}
		if fi.xID >= 0 && fi.xID < len(old) {
			nw[i] = old[fi.xID]
		} else {
			nw[i] = z.LUndef
		}
	}
	frames[0] = nw
}
