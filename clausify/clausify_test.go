// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package clausify

import (
	"testing"

	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/solver"
)

func TestClausifyAndSat(t *testing.T) {
	a := circuit.NewArena(16)
	x := a.NewInput()
	y := a.NewInput()
	and := a.MkAnd(x, y)

	s := solver.New()
	c := New(a, s)
	lit := c.Clausify(and)

	s.Assume(lit)
	if s.Solve() != 1 {
		t.Fatal("expected SAT")
	}
	if s.Value(c.Clausify(x)) != true {
		t.Fatal("expected x=true when and=true")
	}
	if s.Value(c.Clausify(y)) != true {
		t.Fatal("expected y=true when and=true")
	}
}

func TestClausifySharesCache(t *testing.T) {
	a := circuit.NewArena(16)
	x := a.NewInput()
	y := a.NewInput()
	and := a.MkAnd(x, y)

	s := solver.New()
	c := New(a, s)
	l1 := c.Clausify(and)
	l2 := c.Clausify(and)
	if l1 != l2 {
		t.Fatal("expected cached literal to be reused")
	}
}

func TestLookupUndefined(t *testing.T) {
	a := circuit.NewArena(16)
	x := a.NewInput()
	s := solver.New()
	c := New(a, s)
	if c.Lookup(x) != 0 {
		t.Fatal("expected z.LitNull for an unclausified signal")
	}
}
