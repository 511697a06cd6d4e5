// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package solver

import "testing"

func TestUnitSat(t *testing.T) {
	s := New()
	a := s.Lit()
	s.Add(a)
	s.Add(0)
	if s.Solve() != 1 {
		t.Fatal("expected SAT")
	}
	if !s.Value(a) {
		t.Fatal("expected a=true")
	}
}

func TestContradictionUnsat(t *testing.T) {
	s := New()
	a := s.Lit()
	s.Add(a)
	s.Add(0)
	s.Add(a.Not())
	s.Add(0)
	if s.Solve() != -1 {
		t.Fatal("expected UNSAT")
	}
}

func TestAssumeUnsat(t *testing.T) {
	s := New()
	a := s.Lit()
	b := s.Lit()
	s.Add(a)
	s.Add(b.Not())
	s.Add(0)
	s.Assume(a.Not())
	if s.Solve() != 1 {
		t.Fatal("expected SAT without the assumption contradicting the clause")
	}
	s.Assume(a.Not(), b)
	if s.Solve() != -1 {
		t.Fatal("expected UNSAT: a must be true, but assumption forces a false")
	}
}

func TestFreezeThawEliminate(t *testing.T) {
	s := New()
	a := s.Lit()
	b := s.Lit()
	s.Add(a)
	s.Add(b)
	s.Add(0)
	s.FreezeVar(a.Var())
	if s.Eliminate() != 1 {
		t.Fatal("expected SAT after eliminate")
	}
	if s.IsEliminated(a.Var()) {
		t.Fatal("frozen variable must not be eliminated")
	}
	s.Thaw()
}
