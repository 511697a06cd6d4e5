// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package seq

import (
	"testing"

	"github.com/GaloisInc/tip/circuit"
)

func TestEquivsCanonicalIdentity(t *testing.T) {
	a := circuit.NewArena(8)
	x := a.NewInput()
	e := NewEquivs()
	if e.Canonical(x) != x {
		t.Fatal("identity relation must canonicalize to itself")
	}
}

func TestEquivsMergeTransitive(t *testing.T) {
	a := circuit.NewArena(8)
	x := a.NewInput()
	y := a.NewInput()
	z := a.NewInput()
	e := NewEquivs()
	e.Merge(x, y)
	e.Merge(y, z.Not())

	if e.Canonical(x) != e.Canonical(z.Not()) {
		t.Fatal("expected x and ~z to canonicalize to the same signal")
	}
	if e.Canonical(x.Not()) != e.Canonical(z) {
		t.Fatal("expected negations to track consistently through the chain")
	}
}

func TestEquivsContradiction(t *testing.T) {
	a := circuit.NewArena(8)
	x := a.NewInput()
	y := a.NewInput()
	e := NewEquivs()
	e.Merge(x, y)
	e.Merge(x, y.Not())
	if !e.Contradiction() {
		t.Fatal("expected contradiction when x==y and x==~y are both asserted")
	}
}

func TestMergeTrue(t *testing.T) {
	a := circuit.NewArena(8)
	x := a.NewInput()
	e := NewEquivs()
	e.MergeTrue(x)
	if e.Canonical(x) != circuit.SigTrue {
		t.Fatal("expected x to canonicalize to the true constant")
	}
}
