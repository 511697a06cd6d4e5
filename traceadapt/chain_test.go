// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package traceadapt

import (
	"testing"

	"github.com/GaloisInc/tip/trace"
	"github.com/GaloisInc/tip/z"
)

func TestNilChainAdaptIsNoop(t *testing.T) {
	var c *Chain
	frames := []trace.Frame{{z.LTrue}}
	c.Adapt(frames)
	if frames[0][0] != z.LTrue {
		t.Fatal("expected a nil chain to leave frames untouched")
	}
	if c.Len() != 0 {
		t.Fatal("expected a nil chain to report zero length")
	}
}

func TestAigerInitPatcherFixedAndArbitrary(t *testing.T) {
	p := NewAigerInitPatcher()
	p.SetFlop(0, z.LFalse, -1)
	p.SetFlop(1, z.LUndef, 0)

	c := NewChain()
	c.Install(p)

	frames := []trace.Frame{{z.LTrue}, {z.LFalse}}
	c.Adapt(frames)

	if frames[0][0] != z.LFalse {
		t.Fatalf("expected flop 0's fixed init value LFalse, got %v", frames[0][0])
	}
	if frames[0][1] != z.LTrue {
		t.Fatalf("expected flop 1 to read the observed x-input value LTrue, got %v", frames[0][1])
	}
	// The un-patched later frame is untouched.
	if frames[1][0] != z.LFalse {
		t.Fatal("expected frame 1 to be left untouched")
	}
}

func TestChainInstallOrderMostRecentFirst(t *testing.T) {
	c := NewChain()
	var order []int
	c.Install(recorderPatcher{id: 1, order: &order})
	c.Install(recorderPatcher{id: 2, order: &order})

	c.Adapt([]trace.Frame{{z.LUndef}})

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("expected most-recently-installed patcher to run first, got %v", order)
	}
}

type recorderPatcher struct {
	id    int
	order *[]int
}

func (r recorderPatcher) Patch(frames []trace.Frame) {
	*r.order = append(*r.order, r.id)
}
