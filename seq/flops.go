// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package seq

import "github.com/GaloisInc/tip/circuit"

// InitKind classifies how a flop's initial value is determined, mirroring
// AIGER 1.9's latch-initialization grammar (spec §6: "0", "1", or the
// latch's own index meaning "arbitrary").
type InitKind int

const (
	// InitZero and InitOne are the two AIGER-constant init kinds.
	InitZero InitKind = iota
	InitOne
	// InitArbitrary means the flop may hold any value in the initial
	// state; represented as a free input of the init arena (spec §4.2).
	InitArbitrary
)

// Flop is one state-holding element of the sequential circuit: a signal in
// the main arena standing for "current value" (Curr), a signal (also in the
// main arena) computing next state from current-cycle combinational logic
// (Next), and an initial-value specification read from AIGER's L section.
type Flop struct {
	Curr circuit.Signal
	Next circuit.Signal
	Init InitKind

	// InitInput is the init-arena input carrying this flop's arbitrary
	// initial value; only meaningful when Init == InitArbitrary.
	InitInput circuit.Signal
}

// Flops is the ordered table of a circuit's state elements, indexed by
// AIGER latch number (spec §4.2 "Flops: ordered table").
type Flops struct {
	flops []Flop
}

// NewFlops creates an empty flop table.
func NewFlops() *Flops {
	return &Flops{}
}

// Len returns the number of flops.
func (fs *Flops) Len() int {
	return len(fs.flops)
}

// Add appends a new flop and returns its index.
func (fs *Flops) Add(f Flop) int {
	fs.flops = append(fs.flops, f)
	return len(fs.flops) - 1
}

// At returns flop i.
func (fs *Flops) At(i int) Flop {
	return fs.flops[i]
}

// SetNext updates flop i's next-state signal (fairness embedding
// introduces auxiliary flops whose Next is only known after the rest of
// the circuit they depend on has been built).
func (fs *Flops) SetNext(i int, next circuit.Signal) {
	fs.flops[i].Next = next
}

// Each calls fn for every flop in table order.
func (fs *Flops) Each(fn func(i int, f Flop)) {
	for i, f := range fs.flops {
		fn(i, f)
	}
}
