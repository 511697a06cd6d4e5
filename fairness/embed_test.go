// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package fairness

import (
	"testing"

	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/seq"
)

func TestEmbedDegenerateZero(t *testing.T) {
	circ := seq.NewCirc()
	circ.LiveProps = append(circ.LiveProps, &seq.Prop{})
	Embed(circ, Standard)

	p := circ.LiveProps[0]
	if len(p.Fairness) != 1 || p.Fairness[0] != circuit.SigTrue {
		t.Fatalf("expected n=0 liveness property to embed to SigTrue, got %v", p.Fairness)
	}
	if circ.Flops.Len() != 0 {
		t.Fatalf("expected no flops allocated for the degenerate n=0 case, got %d", circ.Flops.Len())
	}
}

func TestEmbedDegenerateOne(t *testing.T) {
	circ := seq.NewCirc()
	f := circ.Main.NewInput()
	circ.LiveProps = append(circ.LiveProps, &seq.Prop{Fairness: []circuit.Signal{f}})
	Embed(circ, Standard)

	p := circ.LiveProps[0]
	if len(p.Fairness) != 1 || p.Fairness[0] != f {
		t.Fatalf("expected n=1 liveness property to embed to its own signal, got %v", p.Fairness)
	}
	if circ.Flops.Len() != 0 {
		t.Fatalf("expected no flops allocated for the degenerate n=1 case, got %d", circ.Flops.Len())
	}
}

func TestEmbedStandardAllocatesFlops(t *testing.T) {
	circ := seq.NewCirc()
	a := circ.Main.NewInput()
	b := circ.Main.NewInput()
	circ.LiveProps = append(circ.LiveProps, &seq.Prop{Fairness: []circuit.Signal{a, b}})
	Embed(circ, Standard)

	p := circ.LiveProps[0]
	if len(p.Fairness) != 1 {
		t.Fatalf("expected the liveness property to be reduced to one accept signal, got %d", len(p.Fairness))
	}
	if circ.Flops.Len() != 2 {
		t.Fatalf("expected one auxiliary flop per fairness signal (2), got %d", circ.Flops.Len())
	}
	if circ.Fairness != nil {
		t.Fatal("expected the global fairness list to be cleared after embedding")
	}
}

func TestEmbedStableLiveAllocatesFlops(t *testing.T) {
	circ := seq.NewCirc()
	a := circ.Main.NewInput()
	circ.LiveProps = append(circ.LiveProps, &seq.Prop{Fairness: []circuit.Signal{a}})
	Embed(circ, StableLive)

	p := circ.LiveProps[0]
	if len(p.Fairness) != 1 {
		t.Fatalf("expected the liveness property to be reduced to one accept signal, got %d", len(p.Fairness))
	}
	// One pre_challenged flop plus one broken flop per fairness signal.
	if circ.Flops.Len() != 2 {
		t.Fatalf("expected pre_challenged + 1 broken flop (2 total), got %d", circ.Flops.Len())
	}
}

func TestEmbedSkipsResolvedProperties(t *testing.T) {
	circ := seq.NewCirc()
	p := &seq.Prop{Status: seq.PropTrue}
	circ.LiveProps = append(circ.LiveProps, p)
	Embed(circ, Standard)

	if p.Fairness != nil {
		t.Fatal("expected an already-resolved liveness property to be left untouched")
	}
}
