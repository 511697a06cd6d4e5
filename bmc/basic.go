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

// Basic is the plain BMC engine of spec §4.5: a plain solver, a plain
// clausifier, no inter-cycle simplification. Ported from
// original_source's BasicBmc.cc.
type Basic struct {
	circ *seq.Circ
	u    *unroll.Unroller
	s    *solver.S
	c    *clausify.Clausifier
}

// NewBasic creates a Basic engine over circ, with capHint sizing the
// unrolled arena.
func NewBasic(circ *seq.Circ, capHint int) *Basic {
	u := unroll.New(circ, capHint)
	s := solver.New()
	c := clausify.New(u.Unrolled, s)
	c.SetEquivs(circ.Cnstrs)
	return &Basic{circ: circ, u: u, s: s, c: c}
}

func (b *Basic) sat() inter.S                     { return b.s }
func (b *Basic) clausifier() *clausify.Clausifier { return b.c }
func (b *Basic) beforeSolve(cycle int)             {}
func (b *Basic) afterSolve(cycle int)              {}

// Run starts the unroller in mode and executes cycles begin..stop
// (exclusive) under the shared BMC loop.
func (b *Basic) Run(mode unroll.Mode, begin, stop int) Result {
	b.u.Init(mode)
	return run(b.circ, b.u, b, begin, stop)
}
