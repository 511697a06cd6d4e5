// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package unroll

import (
	"testing"

	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/seq"
)

// toggleCirc builds a one-flop circuit whose flop negates itself each
// cycle, initialized to 0: 0, 1, 0, 1, ...
func toggleCirc() *seq.Circ {
	c := seq.NewCirc()
	curr := c.Main.NewInput()
	c.Flops.Add(seq.Flop{Curr: curr, Next: curr.Not(), Init: seq.InitZero})
	return c
}

func TestResetInitZero(t *testing.T) {
	c := toggleCirc()
	u := New(c, 32)
	u.Init(Reset)
	if u.Frontier(0) != circuit.SigFalse {
		t.Fatalf("expected frontier to start at SigFalse, got %v", u.Frontier(0))
	}
}

func TestStepTogglesFrontier(t *testing.T) {
	c := toggleCirc()
	u := New(c, 32)
	u.Init(Reset)
	u.Step()
	if u.Frontier(0) != circuit.SigTrue {
		t.Fatalf("expected frontier to flip to SigTrue after one step, got %v", u.Frontier(0))
	}
	u.Step()
	if u.Frontier(0) != circuit.SigFalse {
		t.Fatalf("expected frontier to flip back to SigFalse after two steps, got %v", u.Frontier(0))
	}
}

func TestStopGateIdempotence(t *testing.T) {
	src := circuit.NewArena(16)
	x := src.NewInput()
	y := src.NewInput()
	src.MkAnd(x, y)
	last := src.LastGate()

	dst1 := circuit.NewArena(16)
	m1 := circuit.NewGMap[circuit.Signal](circuit.SigUndef)
	circuit.CopyCirc(src, dst1, m1, last)

	dst2 := circuit.NewArena(16)
	m2 := circuit.NewGMap[circuit.Signal](circuit.SigUndef)
	circuit.CopyCirc(src, dst2, m2)

	if dst1.NumGates() != dst2.NumGates() {
		t.Fatalf("expected same gate count with and without an explicit stop_gate: %d vs %d", dst1.NumGates(), dst2.NumGates())
	}
}
