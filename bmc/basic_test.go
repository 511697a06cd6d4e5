// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package bmc

import (
	"testing"

	"github.com/GaloisInc/tip/seq"
	"github.com/GaloisInc/tip/unroll"
)

// trigger is unconstrained, so "safe iff trigger is false" is falsifiable
// at cycle 0.
func triggerCirc() *seq.Circ {
	c := seq.NewCirc()
	trigger := c.Main.NewInput()
	c.SafeProps = append(c.SafeProps, &seq.Prop{Sig: trigger})
	return c
}

func TestBasicFindsCounterexample(t *testing.T) {
	c := triggerCirc()
	b := NewBasic(c, 64)
	res := b.Run(unroll.Reset, 0, 4)

	if c.SafeProps[0].Status != seq.PropFalse {
		t.Fatalf("expected property to be falsified, status=%v", c.SafeProps[0].Status)
	}
	if c.SafeProps[0].CexTrace == nil {
		t.Fatal("expected a counterexample trace to be attached")
	}
	if res.Unresolved != 0 {
		t.Fatalf("expected 0 unresolved, got %d", res.Unresolved)
	}
}

func TestBasicUnresolvedWithinBudget(t *testing.T) {
	c := seq.NewCirc()
	curr := c.Main.NewInput()
	c.Flops.Add(seq.Flop{Curr: curr, Next: curr, Init: seq.InitZero})
	c.SafeProps = append(c.SafeProps, &seq.Prop{Sig: curr})

	b := NewBasic(c, 64)
	res := b.Run(unroll.Reset, 0, 3)

	if c.SafeProps[0].Status != seq.PropUnknown {
		t.Fatalf("expected property to remain unknown (never forced true), got %v", c.SafeProps[0].Status)
	}
	if res.Unresolved != 1 {
		t.Fatalf("expected 1 unresolved property, got %d", res.Unresolved)
	}
}
