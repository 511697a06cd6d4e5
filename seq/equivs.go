// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package seq

import "github.com/GaloisInc/tip/circuit"

// Equivs is the constraint relation of spec §3: an equivalence over
// signals of the main arena, representing invariants the verifier is
// entitled to assume hold in all reachable states. It is monotonic (SCE
// only ever adds equivalences, spec §3 "Invariants").
//
// Implemented as a union-find over gates with a parity bit per edge, so
// that both "g1 == g2" and "g1 == ~g2" style equivalences (and chains
// thereof) collapse to one O(α(n)) Find per query. A gini.logic.C-style
// "list of equivalence classes" is not needed: seq/clausify consults
// Canonical directly to rewrite a signal to its class representative
// before clausifying it, which is what the teacher's Extract.cc achieved
// by explicitly re-clausify-as-ing every class member (spec §4.7).
type Equivs struct {
	parent map[circuit.Gate]circuit.Gate
	parity map[circuit.Gate]bool // gate g's value XOR parent[g]'s value
	rank   map[circuit.Gate]int

	// contradiction is set once some merge implies false == true, meaning
	// every property still open is combinationally dead (spec §4.7).
	contradiction bool

	n int // number of Merge calls that changed the relation
}

// NewEquivs creates an empty equivalence (the identity relation).
func NewEquivs() *Equivs {
	return &Equivs{
		parent: make(map[circuit.Gate]circuit.Gate),
		parity: make(map[circuit.Gate]bool),
		rank:   make(map[circuit.Gate]int),
	}
}

func (e *Equivs) find(g circuit.Gate) (circuit.Gate, bool) {
	p, ok := e.parent[g]
	if !ok {
		return g, false
	}
	root, par := e.find(p)
	total := par != e.parity[g]
	if root != p {
		e.parent[g] = root
		e.parity[g] = total
	}
	return root, total
}

// Canonical returns the class representative signal for s: some signal
// guaranteed to have the same truth value as s in every reachable state,
// given everything merged into e so far.
func (e *Equivs) Canonical(s circuit.Signal) circuit.Signal {
	root, parity := e.find(s.Gate())
	neg := parity != !s.IsPos()
	if root == circuit.GateTrue {
		if neg {
			return circuit.SigFalse
		}
		return circuit.SigTrue
	}
	return signalOf(root, neg)
}

func signalOf(g circuit.Gate, neg bool) circuit.Signal {
	if neg {
		return circuit.Signal(g<<1) | 1
	}
	return circuit.Signal(g << 1)
}

// Merge records that signals a and b always carry the same truth value.
// Merge never removes an existing equivalence (spec §3 monotonicity).
func (e *Equivs) Merge(a, b circuit.Signal) {
	ga, gb := a.Gate(), b.Gate()
	ra, pa := e.find(ga)
	rb, pb := e.find(gb)
	// rel is the required parity between ra and rb's *values* so that
	// value(a) == value(b) holds: value(ga) xor !a.IsPos() == value(gb) xor !b.IsPos()
	rel := !a.IsPos() != !b.IsPos()

	if ra == rb {
		if (pa != pb) != rel {
			e.contradiction = true
		}
		return
	}
	edgeParity := (rel != pa) != pb
	// union by rank
	rankA, rankB := e.rank[ra], e.rank[rb]
	switch {
	case rankA < rankB:
		e.parent[ra] = rb
		e.parity[ra] = edgeParity
	case rankA > rankB:
		e.parent[rb] = ra
		e.parity[rb] = edgeParity
	default:
		e.parent[rb] = ra
		e.parity[rb] = edgeParity
		e.rank[ra] = rankA + 1
	}
	e.n++
}

// MergeTrue records that s is always true (spec §4.7's SCE commit step,
// "true ≡ c").
func (e *Equivs) MergeTrue(s circuit.Signal) {
	e.Merge(circuit.SigTrue, s)
}

// Contradiction reports whether some merge has forced false == true,
// meaning every remaining open property is combinationally dead.
func (e *Equivs) Contradiction() bool {
	return e.contradiction
}

// Len returns the number of equivalences recorded (for Stats/telemetry).
func (e *Equivs) Len() int {
	return e.n
}
