// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package seq holds the sequential circuit model (spec §3 "Arena", "Flop
// table", "Property", "Constraints") that every later stage — clausify,
// unroll, bmc, sce, fairness, traceadapt — operates on.
package seq

import (
	"fmt"

	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/traceadapt"
)

// Circ is one verification session's sequential circuit (spec §4.2): the
// init arena (produces initial flop values), the main arena (the
// next-state and property logic), the flop table linking them, safety and
// liveness property lists, the global fairness-signal list, the constraint
// equivalence, and the trace-adaptor chain that undoes input-renumbering
// transformations on any recovered counter-example.
type Circ struct {
	Init *circuit.Arena
	Main *circuit.Arena

	Flops *Flops

	SafeProps []*Prop
	LiveProps []*Prop

	// Fairness holds the AIGER F-section's global fairness signals, in
	// main-arena coordinates; consumed and cleared by fairness.Embed (spec
	// §4.6, "the global fairness list is cleared").
	Fairness []circuit.Signal

	Cnstrs *Equivs

	Adaptor *traceadapt.Chain

	// skipSafe/skipLive mark properties select_safety/select_liveness has taken out
	// of consideration (spec §4.2's Unknown -> SkippedForNow demotion,
	// realized here as a side table rather than a third PropStatus value
	// so PropStatus keeps meaning "verification outcome" only).
	skipSafe map[int]bool
	skipLive map[int]bool
}

// NewCirc creates an empty sequential circuit with fresh init/main arenas.
func NewCirc() *Circ {
	return &Circ{
		Init:     circuit.NewArena(64),
		Main:     circuit.NewArena(1024),
		Flops:    NewFlops(),
		Cnstrs:   NewEquivs(),
		Adaptor:  traceadapt.NewChain(),
		skipSafe: make(map[int]bool),
		skipLive: make(map[int]bool),
	}
}

// SelectSafety restricts downstream engines to safety property i: every
// other safety and liveness property is marked skipped (spec §4.2
// select_safety).
func (c *Circ) SelectSafety(i int) {
	c.skipSafe = make(map[int]bool, len(c.SafeProps))
	c.skipLive = make(map[int]bool, len(c.LiveProps))
	for j := range c.SafeProps {
		if j != i {
			c.skipSafe[j] = true
		}
	}
	for j := range c.LiveProps {
		c.skipLive[j] = true
	}
}

// SelectLiveness restricts downstream engines to liveness property i.
func (c *Circ) SelectLiveness(i int) {
	c.skipSafe = make(map[int]bool, len(c.SafeProps))
	c.skipLive = make(map[int]bool, len(c.LiveProps))
	for j := range c.SafeProps {
		c.skipSafe[j] = true
	}
	for j := range c.LiveProps {
		if j != i {
			c.skipLive[j] = true
		}
	}
}

// SafetyActive reports whether safety property i is still under
// consideration by downstream engines.
func (c *Circ) SafetyActive(i int) bool {
	return !c.skipSafe[i] && c.SafeProps[i].Status == PropUnknown
}

// LivenessActive reports whether liveness property i is still under
// consideration by downstream engines.
func (c *Circ) LivenessActive(i int) bool {
	return !c.skipLive[i] && c.LiveProps[i].Status == PropUnknown
}

// Stats formats gate/flop/property counts (spec §4.2 stats()) as a single
// line of key=value pairs, for the caller's verbosity-gated log
// (SPEC_FULL.md §3).
func (c *Circ) Stats() string {
	unresolved := 0
	for _, p := range c.SafeProps {
		if p.Status == PropUnknown {
			unresolved++
		}
	}
	for _, p := range c.LiveProps {
		if p.Status == PropUnknown {
			unresolved++
		}
	}
	return fmt.Sprintf(
		"init_gates=%d main_gates=%d flops=%d safe=%d live=%d fair=%d cnstrs=%d unresolved=%d",
		c.Init.NumGates(), c.Main.NumGates(), c.Flops.Len(),
		len(c.SafeProps), len(c.LiveProps), len(c.Fairness), c.Cnstrs.Len(), unresolved,
	)
}
