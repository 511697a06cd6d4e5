// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package circuit

// node is one entry in an Arena's gate table. A leaf (a == b == SigUndef)
// is either the reserved constant (gate 1) or an input; anything else is an
// AND gate with fanins a and b.
type node struct {
	a, b Signal
	next uint32 // strash collision chain
}

// Arena is an AIG: a topologically ordered sequence of gates (the true
// constant, inputs, and AND gates) with structural hashing so that
// structurally equal AND nodes are shared, plus an external 32-bit
// input-numbering table for AIGER round-tripping (spec §3, §4.1).
type Arena struct {
	nodes      []node
	strash     []uint32
	numOf      map[Gate]uint32
	gateOf     map[uint32]Gate
	numAssigns bool // true once any explicit SetInputNumber call has been made
}

// NewArena creates an empty arena with capacity hint capHint.
func NewArena(capHint int) *Arena {
	if capHint < 2 {
		capHint = 2
	}
	a := &Arena{
		nodes:  make([]node, 2, capHint),
		strash: make([]uint32, capHint),
		numOf:  make(map[Gate]uint32),
		gateOf: make(map[uint32]Gate),
	}
	return a
}

// LastGate returns the highest allocated gate id (GateTrue if the arena is
// empty save for the reserved constant).
func (a *Arena) LastGate() Gate {
	return Gate(len(a.nodes) - 1)
}

// NumGates returns the number of allocated gates, including the constant.
func (a *Arena) NumGates() int {
	return len(a.nodes)
}

// IsInput reports whether g is an input (not the constant, not an AND).
func (a *Arena) IsInput(g Gate) bool {
	if g == GateTrue || g == GateUndef {
		return false
	}
	n := a.nodes[g]
	return n.a == SigUndef && n.b == SigUndef
}

// IsAnd reports whether g is an AND gate.
func (a *Arena) IsAnd(g Gate) bool {
	if g == GateTrue || g == GateUndef {
		return false
	}
	n := a.nodes[g]
	return n.a != SigUndef || n.b != SigUndef
}

// IsConst reports whether g is the arena's reserved constant gate.
func (a *Arena) IsConst(g Gate) bool {
	return g == GateTrue
}

// Fanin returns the two operands of AND gate g. For an input or the
// constant gate it returns SigUndef, SigUndef.
func (a *Arena) Fanin(g Gate) (Signal, Signal) {
	n := a.nodes[g]
	return n.a, n.b
}

// NewInput allocates a fresh, unnumbered input and returns its positive
// signal.
func (a *Arena) NewInput() Signal {
	g := a.newNode(SigUndef, SigUndef)
	return mkSig(g, false)
}

// SetInputNumber records the external (AIGER) input index for input gate g,
// overwriting any previous number for it.
func (a *Arena) SetInputNumber(g Gate, num uint32) {
	if old, ok := a.numOf[g]; ok {
		delete(a.gateOf, old)
	}
	a.numOf[g] = num
	a.gateOf[num] = g
	a.numAssigns = true
}

// InputNumber returns the external input index for gate g and whether one
// has been assigned.
func (a *Arena) InputNumber(g Gate) (uint32, bool) {
	n, ok := a.numOf[g]
	return n, ok
}

// InputByNumber returns the input gate carrying external index num.
func (a *Arena) InputByNumber(num uint32) (Gate, bool) {
	g, ok := a.gateOf[num]
	return g, ok
}

// MkAnd returns a signal equivalent to "a AND b", sharing structurally
// identical AND nodes (hash-consed). Ported from the teacher's C.And.
func (a *Arena) MkAnd(x, y Signal) Signal {
	if x == y {
		return x
	}
	if x == y.Not() {
		return SigFalse
	}
	if x > y {
		x, y = y, x
	}
	if x == SigFalse {
		return SigFalse
	}
	if x == SigTrue {
		return y
	}
	code := strashCode(x, y)
	cap32 := uint32(cap(a.nodes))
	i := code % cap32
	si := a.strash[i]
	for si != 0 {
		n := &a.nodes[si]
		if n.a == x && n.b == y {
			return mkSig(Gate(si), false)
		}
		si = n.next
	}
	g := a.newNode(x, y)
	k := code % uint32(cap(a.nodes))
	a.nodes[g].next = a.strash[k]
	a.strash[k] = uint32(g)
	return mkSig(g, false)
}

// MkOr returns a signal equivalent to "a OR b".
func (a *Arena) MkOr(x, y Signal) Signal {
	return a.MkAnd(x.Not(), y.Not()).Not()
}

// MkAnds conjoins a sequence of signals, returning SigTrue for an empty
// sequence.
func (a *Arena) MkAnds(ms ...Signal) Signal {
	r := SigTrue
	for _, m := range ms {
		r = a.MkAnd(r, m)
	}
	return r
}

// MkOrs disjoins a sequence of signals, returning SigFalse for an empty
// sequence.
func (a *Arena) MkOrs(ms ...Signal) Signal {
	r := SigFalse
	for _, m := range ms {
		r = a.MkOr(r, m)
	}
	return r
}

// MkImplies returns a signal equivalent to "a implies b".
func (a *Arena) MkImplies(x, y Signal) Signal {
	return a.MkOr(x.Not(), y)
}

// MkXor returns a signal equivalent to "a xor b".
func (a *Arena) MkXor(x, y Signal) Signal {
	return a.MkOr(a.MkAnd(x, y.Not()), a.MkAnd(x.Not(), y))
}

func (a *Arena) newNode(x, y Signal) Gate {
	if len(a.nodes) == cap(a.nodes) {
		a.grow()
	}
	id := Gate(len(a.nodes))
	a.nodes = append(a.nodes, node{a: x, b: y})
	return id
}

func (a *Arena) grow() {
	newCap := cap(a.nodes) * 2
	nodes := make([]node, len(a.nodes), newCap)
	copy(nodes, a.nodes)
	strash := make([]uint32, newCap)
	ucap := uint32(newCap)
	for i := 1; i < len(nodes); i++ {
		n := &nodes[i]
		if n.a == SigUndef && n.b == SigUndef {
			continue
		}
		c := strashCode(n.a, n.b)
		j := c % ucap
		n.next = strash[j]
		strash[j] = uint32(i)
	}
	a.nodes = nodes
	a.strash = strash
}

func strashCode(a, b Signal) uint32 {
	return uint32((uint64(a) << 17) * uint64(b+1))
}

// Gates calls fn for every gate in topological order, excluding the
// reserved constant.
func (a *Arena) Gates(fn func(g Gate)) {
	for i := 2; i < len(a.nodes); i++ {
		fn(Gate(i))
	}
}
