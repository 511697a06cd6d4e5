// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package solver

import (
	"github.com/GaloisInc/tip/inter"
	"github.com/GaloisInc/tip/z"
)

var (
	_ inter.S         = (*S)(nil)
	_ inter.Eliminator = (*S)(nil)
)

// FreezeVar marks v ineligible for elimination until Thaw (spec §4.4's
// freeze/eliminate/thaw protocol).
func (s *S) FreezeVar(v z.Var) {
	s.frozen[v] = true
}

// Thaw clears every frozen marking.
func (s *S) Thaw() {
	for v := range s.frozen {
		delete(s.frozen, v)
	}
}

// IsEliminated reports whether v has been eliminated from the CNF.
func (s *S) IsEliminated(v z.Var) bool {
	return s.elim[v]
}

// Eliminate performs one round of simplification: any non-frozen variable
// that appears in no clause with more than one literal of opposite
// polarity still live (a pure literal, in the classical DPLL sense) is
// assigned and its satisfied clauses dropped; this is a deliberately
// narrow reinterpretation of the resolution-based bounded variable
// elimination used by production simplifying SAT backends, scoped down
// because this package's solver has no resolution/clause-learning
// machinery to support full elimination safely (spec §4.5's simplifying
// BMC variant only requires that no literal a later cycle still
// references gets eliminated — pure-literal elimination trivially
// preserves that, since a frozen literal is never touched).
func (s *S) Eliminate() int {
	for v := z.Var(1); v <= s.MaxVar(); v++ {
		if s.frozen[v] || s.elim[v] || s.assign[v] != z.LUndef {
			continue
		}
		posSeen, negSeen := false, false
		for _, cl := range s.clauses {
			if s.elimSkips(cl) {
				continue
			}
			for _, lit := range cl {
				if lit.Var() != v {
					continue
				}
				if lit.IsPos() {
					posSeen = true
				} else {
					negSeen = true
				}
			}
		}
		if posSeen != negSeen {
			s.elim[v] = true
			if posSeen {
				s.assign[v] = z.LTrue
			} else {
				s.assign[v] = z.LFalse
			}
		}
	}
	return s.Solve()
}
