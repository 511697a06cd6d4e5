// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package circuit

import "testing"

func TestMkAndSharing(t *testing.T) {
	a := NewArena(8)
	x := a.NewInput()
	y := a.NewInput()
	g1 := a.MkAnd(x, y)
	g2 := a.MkAnd(x, y)
	if g1 != g2 {
		t.Fatalf("structurally identical ANDs were not shared: %v != %v", g1, g2)
	}
	if a.MkAnd(y, x) != g1 {
		t.Fatalf("AND is not commutative under strashing")
	}
}

func TestMkAndReductions(t *testing.T) {
	a := NewArena(8)
	x := a.NewInput()
	if a.MkAnd(x, x) != x {
		t.Fatalf("a AND a should be a")
	}
	if a.MkAnd(x, x.Not()) != SigFalse {
		t.Fatalf("a AND ~a should be false")
	}
	if a.MkAnd(SigFalse, x) != SigFalse {
		t.Fatalf("false AND a should be false")
	}
	if a.MkAnd(SigTrue, x) != x {
		t.Fatalf("true AND a should be a")
	}
}

func TestCopyCircPreservesStructure(t *testing.T) {
	src := NewArena(8)
	x := src.NewInput()
	src.SetInputNumber(x.Gate(), 0)
	y := src.NewInput()
	src.SetInputNumber(y.Gate(), 1)
	g := src.MkAnd(x, y)
	h := src.MkOr(g, x)

	dst := NewArena(8)
	m := NewGMap[Signal](SigUndef)
	CopyCirc(src, dst, m)

	dx, dy := m.Get(x.Gate()), m.Get(y.Gate())
	if dst.MkAnd(dx, dy) != m.Get(g.Gate()) {
		t.Fatalf("AND structure not preserved across copy")
	}
	if dst.MkOr(m.Get(g.Gate()), dx) != translate(m, h) {
		t.Fatalf("OR structure not preserved across copy")
	}
	if num, ok := dst.InputNumber(dx.Gate()); !ok || num != 0 {
		t.Fatalf("input numbering not preserved")
	}
}

func TestCopyCircIdempotentWithStopGate(t *testing.T) {
	src := NewArena(8)
	x := src.NewInput()
	y := src.NewInput()
	src.MkAnd(x, y)

	dst1 := NewArena(8)
	m1 := NewGMap[Signal](SigUndef)
	CopyCirc(src, dst1, m1, src.LastGate())

	dst2 := NewArena(8)
	m2 := NewGMap[Signal](SigUndef)
	CopyCirc(src, dst2, m2)

	if dst1.LastGate() != dst2.LastGate() {
		t.Fatalf("copy with explicit stopGate=lastGate produced a different gate set")
	}
}
