// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import (
	"github.com/GaloisInc/tip/clausify"
	"github.com/GaloisInc/tip/inter"
	"github.com/GaloisInc/tip/seq"
	"github.com/GaloisInc/tip/solver"
	"github.com/GaloisInc/tip/unroll"
)

// Simplifying is the CNF-simplifying BMC engine of spec §4.5: a SAT
// backend with variable elimination, run between cycles. Ported from
// original_source's SimpBmc.cc.
//
// This implementation's unroller represents a flop's "current value" in
// the unrolled arena as literally the same signal as the previous cycle's
// frontier (circuit.CopyCirc's pre-seeded translation map, spec §4.4 step
// 2), rather than allocating a fresh gate each cycle and binding it with
// clausify_as as original_source's SimpUnroller does; the effect — one
// shared literal per flop across the cycle boundary — is the same, so
// the clausify_as tie-in the original's per-cycle protocol describes has
// no work left to do here and is not invoked. What each cycle still does:
// freeze the new frontier and the current cycle's property literals,
// eliminate, SAT-test, then thaw.
type Simplifying struct {
	circ *seq.Circ
	u    *unroll.Unroller
	s    *solver.S
	c    *clausify.Clausifier
}

// NewSimplifying creates a Simplifying engine over circ.
func NewSimplifying(circ *seq.Circ, capHint int) *Simplifying {
	u := unroll.New(circ, capHint)
	s := solver.New()
	c := clausify.New(u.Unrolled, s)
	c.SetEquivs(circ.Cnstrs)
	return &Simplifying{circ: circ, u: u, s: s, c: c}
}

func (e *Simplifying) sat() inter.S                     { return e.s }
func (e *Simplifying) clausifier() *clausify.Clausifier { return e.c }

func (e *Simplifying) beforeSolve(cycle int) {
	for i := 0; i < e.circ.Flops.Len(); i++ {
		lit := e.c.Clausify(e.u.Frontier(i))
		e.s.FreezeVar(lit.Var())
	}
	for idx, p := range e.circ.SafeProps {
		if !e.circ.SafetyActive(idx) {
			continue
		}
		lit := e.c.Clausify(e.u.TranslateMain(p.Sig))
		e.s.FreezeVar(lit.Var())
	}
	e.s.Eliminate()
}

func (e *Simplifying) afterSolve(cycle int) {
	e.s.Thaw()
}

// Run starts the unroller in mode and executes cycles begin..stop
// (exclusive) under the shared BMC loop.
func (e *Simplifying) Run(mode unroll.Mode, begin, stop int) Result {
	e.u.Init(mode)
	return run(e.circ, e.u, e, begin, stop)
}
