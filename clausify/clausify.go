// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package clausify implements the stateful gate-arena-to-CNF adapter of
// spec §4.3, ported from the teacher's strashing/Tseitin style (logic/c.go
// And) but targeting an external inter.S/inter.Eliminator rather than
// building a second in-memory gate table.
package clausify

import (
	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/inter"
	"github.com/GaloisInc/tip/z"
)

// Clausifier emits Tseitin CNF for signals of one arena into a SAT
// backend, caching one literal per gate so repeated calls for
// structurally shared sub-circuits cost nothing beyond the first (spec
// §4.3).
type Clausifier struct {
	arena *circuit.Arena
	sat   inter.S
	cache *circuit.GMap[z.Lit]

	// Sharing is the one toggled optimization spec §4.3 requires without
	// mandating an implementation: it consults equivs (if set) to rewrite
	// a signal to its class representative before allocating a literal,
	// so two constraint-equivalent signals share one variable. (An earlier
	// draft also carried a Polarity flag for restricting clause emission
	// to the polarities actually demanded; dropped because nothing in this
	// package tracks per-call-site polarity demand to act on it — see
	// DESIGN.md.)
	Sharing bool

	equivs canonicalizer
}

// canonicalizer is satisfied by seq.Equivs; kept as a narrow local
// interface so clausify does not import seq or depend on its concrete
// type. bmc and sce, which import both, pass a *seq.Equivs.
type canonicalizer interface {
	Canonical(s circuit.Signal) circuit.Signal
}

// New creates a clausifier over arena, emitting clauses into sat.
func New(arena *circuit.Arena, sat inter.S) *Clausifier {
	return &Clausifier{
		arena:   arena,
		sat:     sat,
		cache:   circuit.NewGMap[z.Lit](z.LitNull),
		Sharing: true,
	}
}

// SetEquivs installs the constraint equivalence Sharing should consult.
func (c *Clausifier) SetEquivs(e canonicalizer) {
	c.equivs = e
}

// Lookup returns the cached literal for sig, or z.LitNull if sig has not
// been clausified.
func (c *Clausifier) Lookup(sig circuit.Signal) z.Lit {
	if c.Sharing && c.equivs != nil {
		sig = c.equivs.Canonical(sig)
	}
	g := sig.Gate()
	if !c.cache.Has(g) {
		return z.LitNull
	}
	lit := c.cache.Get(g)
	if lit == z.LitNull {
		return z.LitNull
	}
	if !sig.IsPos() {
		return lit.Not()
	}
	return lit
}

// ClausifyAs asserts equivalence between sig and an externally chosen
// literal target, binding the gate's cached literal to target instead of
// allocating a fresh one (spec §4.3). No caller in this module uses it: the
// unroller substitutes the previous frontier signal directly instead.
func (c *Clausifier) ClausifyAs(sig circuit.Signal, target z.Lit) {
	g := sig.Gate()
	var lit z.Lit
	if sig.IsPos() {
		lit = target
	} else {
		lit = target.Not()
	}
	if c.cache.Has(g) {
		old := c.cache.Get(g)
		if old != z.LitNull && old != lit {
			c.emitEquiv(old, lit)
			return
		}
	}
	c.cache.Set(g, lit)
}

// Clausify emits Tseitin CNF for the transitive fanin of sig and returns
// its literal, reusing any already-clausified sub-gate.
func (c *Clausifier) Clausify(sig circuit.Signal) z.Lit {
	if c.Sharing && c.equivs != nil {
		sig = c.equivs.Canonical(sig)
	}
	lit := c.clausifyGate(sig.Gate())
	if !sig.IsPos() {
		return lit.Not()
	}
	return lit
}

func (c *Clausifier) clausifyGate(g circuit.Gate) z.Lit {
	if c.cache.Has(g) {
		if lit := c.cache.Get(g); lit != z.LitNull {
			return lit
		}
	}
	if g == circuit.GateTrue {
		lit := c.sat.Lit()
		c.unit(lit)
		c.cache.Set(g, lit)
		return lit
	}
	if c.arena.IsInput(g) {
		lit := c.sat.Lit()
		c.cache.Set(g, lit)
		return lit
	}
	x, y := c.arena.Fanin(g)
	lx := c.Clausify(x)
	ly := c.Clausify(y)
	out := c.sat.Lit()
	c.emitAnd(out, lx, ly)
	c.cache.Set(g, out)
	return out
}

// emitAnd asserts out <-> (lx AND ly) via the standard 3-clause Tseitin
// encoding for AND.
func (c *Clausifier) emitAnd(out, lx, ly z.Lit) {
	c.clause(out.Not(), lx)
	c.clause(out.Not(), ly)
	c.clause(out, lx.Not(), ly.Not())
}

// emitEquiv asserts a <-> b (used when ClausifyAs discovers the gate
// already has a distinct literal, unifying two previously independent
// clausifications, e.g. two equivalent constraints bound to the same
// gate from different cycles).
func (c *Clausifier) emitEquiv(a, b z.Lit) {
	c.clause(a.Not(), b)
	c.clause(a, b.Not())
}

func (c *Clausifier) unit(lit z.Lit) {
	c.sat.Add(lit)
	c.sat.Add(z.LitNull)
}

func (c *Clausifier) clause(lits ...z.Lit) {
	for _, l := range lits {
		c.sat.Add(l)
	}
	c.sat.Add(z.LitNull)
}

// ModelValue reads the most recent SAT model's value for sig, or
// z.LUndef if sig was never clausified.
func (c *Clausifier) ModelValue(sig circuit.Signal) z.Lbool {
	lit := c.Lookup(sig)
	if lit == z.LitNull {
		return z.LUndef
	}
	if model, ok := c.sat.(interface{ Value(m z.Lit) bool }); ok {
		return z.LboolOf(model.Value(lit))
	}
	return z.LUndef
}
