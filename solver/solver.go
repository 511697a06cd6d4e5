// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package solver is a small incremental SAT backend implementing
// inter.S and inter.Eliminator (spec §1 treats the SAT engine itself as
// an external collaborator; this package is the one this module ships so
// bmc/sce/clausify have something concrete to drive).
//
// It is not a port of any one teacher file — internal/xo's solver
// internals (Cdb, Trail, Deriver, Luby restarts) are referenced only by
// its _test.go files in the retrieval pack, not present in source form
// here, so a full CDCL implementation could not be grounded on it
// directly. What is carried over is internal/xo/active.go's free-list
// pattern (Activate/Deactivate), reinterpreted as the frozen/eliminated
// variable bookkeeping below, and inter.S's contract, which this package
// implements literally. Search is plain DPLL with unit propagation and
// chronological backtracking — no clause learning, no watched literals —
// adequate for the bounded instances BMC/SCE pose in this module but not
// for industrial CNF.
package solver

import (
	"github.com/GaloisInc/tip/inter"
	"github.com/GaloisInc/tip/z"
)

// S is a DPLL solver with assumption support.
type S struct {
	clauses [][]z.Lit
	pending []z.Lit

	assign  []z.Lbool // indexed by z.Var; index 0 unused
	nextVar z.Var

	assumps []z.Lit

	frozen map[z.Var]bool
	elim   map[z.Var]bool

	lastTestSaved []z.Lbool
}

// New creates an empty solver.
func New() *S {
	return &S{
		assign:  []z.Lbool{z.LUndef},
		nextVar: 1,
		frozen:  make(map[z.Var]bool),
		elim:    make(map[z.Var]bool),
	}
}

// Lit allocates a fresh variable and returns its positive literal.
func (s *S) Lit() z.Lit {
	v := s.nextVar
	s.nextVar++
	s.assign = append(s.assign, z.LUndef)
	return v.Pos()
}

// MaxVar returns the highest variable allocated so far.
func (s *S) MaxVar() z.Var {
	return s.nextVar - 1
}

// Add appends a literal to the clause under construction, or (on
// z.LitNull) closes and stores it.
func (s *S) Add(m z.Lit) {
	if m == z.LitNull {
		if len(s.pending) > 0 {
			cl := make([]z.Lit, len(s.pending))
			copy(cl, s.pending)
			s.clauses = append(s.clauses, cl)
			s.pending = s.pending[:0]
		}
		return
	}
	s.pending = append(s.pending, m)
}

// Solve runs the search under the current assumptions (1 SAT, -1 UNSAT;
// this implementation always decides, so it never returns 0).
func (s *S) Solve() int {
	for v := z.Var(1); v <= s.MaxVar(); v++ {
		if !s.elim[v] {
			s.assign[v] = z.LUndef
		}
	}
	trail := append([]z.Lit(nil), s.assumps...)
	ok := s.dpll(trail)
	if ok {
		return 1
	}
	return -1
}

// Assume records literals to hold for the next Solve/Test call, replacing
// any previously recorded assumption set (matching the teacher corpus's
// convention that Assume calls are not cumulative across Solve calls).
func (s *S) Assume(ms ...z.Lit) {
	s.assumps = append([]z.Lit(nil), ms...)
}

// Why returns the assumptions implicated in the most recent UNSAT result,
// appended to dst. Without a resolution-based conflict analysis this
// solver conservatively reports the entire assumption set.
func (s *S) Why(dst []z.Lit) []z.Lit {
	return append(dst, s.assumps...)
}

// Test propagates the current assumptions via unit propagation only (no
// branching) and reports whether the instance is already decided.
func (s *S) Test(dst []z.Lit) (int, []z.Lit) {
	saved := s.snapshotAssign()
	trail := append([]z.Lit(nil), s.assumps...)
	ok := s.unitClose(&trail)
	if !ok {
		s.assign = saved
		return -1, dst
	}
	out := dst
	for _, lit := range trail {
		out = append(out, lit)
	}
	s.lastTestSaved = saved
	if s.fullyAssigned() {
		return 1, out
	}
	return 0, out
}

// Untest undoes the assignments installed by the last Test.
func (s *S) Untest() int {
	if s.lastTestSaved != nil {
		s.assign = s.lastTestSaved
		s.lastTestSaved = nil
	}
	return 0
}

// Value reads m's value under the most recent model.
func (s *S) Value(m z.Lit) bool {
	v := s.assign[m.Var()]
	if m.IsPos() {
		return v == z.LTrue
	}
	return v == z.LFalse
}

// SCopy creates an independent copy of the solver's clause database and
// assignment state.
func (s *S) SCopy() inter.S {
	cp := &S{
		clauses: make([][]z.Lit, len(s.clauses)),
		assign:  append([]z.Lbool(nil), s.assign...),
		nextVar: s.nextVar,
		assumps: append([]z.Lit(nil), s.assumps...),
		frozen:  make(map[z.Var]bool, len(s.frozen)),
		elim:    make(map[z.Var]bool, len(s.elim)),
	}
	for i, cl := range s.clauses {
		cp.clauses[i] = append([]z.Lit(nil), cl...)
	}
	for k, v := range s.frozen {
		cp.frozen[k] = v
	}
	for k, v := range s.elim {
		cp.elim[k] = v
	}
	return cp
}

func (s *S) fullyAssigned() bool {
	for v := z.Var(1); v <= s.MaxVar(); v++ {
		if s.assign[v] == z.LUndef {
			return false
		}
	}
	return true
}

func (s *S) snapshotAssign() []z.Lbool {
	return append([]z.Lbool(nil), s.assign...)
}

func (s *S) setLit(lit z.Lit) {
	v := lit.Var()
	if lit.IsPos() {
		s.assign[v] = z.LTrue
	} else {
		s.assign[v] = z.LFalse
	}
}

func (s *S) litValue(lit z.Lit) z.Lbool {
	v := s.assign[lit.Var()]
	if v == z.LUndef {
		return z.LUndef
	}
	if lit.IsPos() {
		return v
	}
	if v == z.LTrue {
		return z.LFalse
	}
	return z.LTrue
}

// unitClose applies unit propagation to completion starting from trail's
// current contents (already-assigned literals), reporting false on
// conflict. Newly implied literals are appended to *trail.
func (s *S) unitClose(trail *[]z.Lit) bool {
	for _, lit := range *trail {
		if s.litValue(lit) == z.LFalse {
			return false
		}
		s.setLit(lit)
	}
	changed := true
	for changed {
		changed = false
		for _, cl := range s.clauses {
			if s.elimSkips(cl) {
				continue
			}
			var unassignedLit z.Lit
			numUnassigned := 0
			sat := false
			for _, lit := range cl {
				switch s.litValue(lit) {
				case z.LTrue:
					sat = true
				case z.LUndef:
					numUnassigned++
					unassignedLit = lit
				}
			}
			if sat {
				continue
			}
			if numUnassigned == 0 {
				return false
			}
			if numUnassigned == 1 {
				s.setLit(unassignedLit)
				*trail = append(*trail, unassignedLit)
				changed = true
			}
		}
	}
	return true
}

func (s *S) elimSkips(cl []z.Lit) bool {
	for _, lit := range cl {
		if s.elim[lit.Var()] {
			return true
		}
	}
	return false
}

// dpll performs unit propagation followed by branching on the first
// unassigned variable, trying true then false, with chronological
// backtracking (no clause learning).
func (s *S) dpll(trail []z.Lit) bool {
	t := append([]z.Lit(nil), trail...)
	if !s.unitClose(&t) {
		return false
	}
	var branch z.Var
	for v := z.Var(1); v <= s.MaxVar(); v++ {
		if s.assign[v] == z.LUndef {
			branch = v
			break
		}
	}
	if branch == 0 {
		return true
	}
	saved := s.snapshotAssign()
	if s.dpll(append(t, branch.Pos())) {
		return true
	}
	s.assign = saved
	return s.dpll(append(t, branch.Neg()))
}
