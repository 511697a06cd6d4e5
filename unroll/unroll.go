// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package unroll builds successive time-frame copies of a sequential
// circuit's main arena into a single unrolled arena, stitching flop
// outputs across cycles (spec §4.4). Ported from original_source's
// unroll/Unroll.cc's UnrollCirc/SimpUnroller.
package unroll

import (
	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/seq"
)

// Mode selects how Unroller.Init materializes the initial flop frontier
// (spec §4.4 "Initialization (reset mode)" / "(random mode)").
type Mode int

const (
	// Reset copies the init arena and uses its flop init signals.
	Reset Mode = iota
	// Random leaves every flop's initial value a fresh, unconstrained input.
	Random
)

// Unroller incrementally builds one growing "unrolled" arena by repeatedly
// copying the circuit's main arena, substituting each flop's output for
// the signal currently in its frontier (spec §4.4 "State").
type Unroller struct {
	circ       *seq.Circ
	Unrolled   *circuit.Arena
	flopFront  []circuit.Signal
	frameInput [][]circuit.Signal // per-frame list of input signals, in input-number order
	cycle      int

	lastMap *circuit.GMap[circuit.Signal] // main -> Unrolled, from the most recent Step
}

// New creates an unroller over circ's main arena, with capHint as the
// unrolled arena's initial capacity hint.
func New(circ *seq.Circ, capHint int) *Unroller {
	return &Unroller{
		circ:      circ,
		Unrolled:  circuit.NewArena(capHint),
		flopFront: make([]circuit.Signal, circ.Flops.Len()),
	}
}

// Init materializes the frontier for cycle 0 under mode (spec §4.4
// "Initialization").
func (u *Unroller) Init(mode Mode) {
	switch mode {
	case Reset:
		m := circuit.NewGMap[circuit.Signal](circuit.SigUndef)
		circuit.CopyCirc(u.circ.Init, u.Unrolled, m)
		u.initReset(m)
		u.recordFrame0InputsReset(m)
	case Random:
		u.circ.Flops.Each(func(i int, f seqFlopAlias) {
			u.flopFront[i] = u.Unrolled.NewInput()
		})
		u.frameInput = append(u.frameInput, nil)
	}
}

// seqFlopAlias lets the package reference seq.Flop without a stuttering
// import alias at every call site.
type seqFlopAlias = seq.Flop

func (u *Unroller) initReset(m *circuit.GMap[circuit.Signal]) {
	for i := 0; i < u.circ.Flops.Len(); i++ {
		f := u.circ.Flops.At(i)
		switch f.Init {
		case seq.InitArbitrary:
			u.flopFront[i] = translate(m, f.InitInput)
		default:
			val := f.Init == seq.InitOne
			if val {
				u.flopFront[i] = circuit.SigTrue
			} else {
				u.flopFront[i] = circuit.SigFalse
			}
		}
	}
}

func translate(m *circuit.GMap[circuit.Signal], s circuit.Signal) circuit.Signal {
	base := m.Get(s.Gate())
	if !s.IsPos() {
		return base.Not()
	}
	return base
}

// recordFrame0InputsReset logs frame 0's inputs as the init arena's own
// inputs translated into the unrolled arena, in AIGER input-number order
// (spec §3 Trace: "Initial-frame input values are stored in frame 0 and
// include the choices made for flops initialized non-deterministically").
func (u *Unroller) recordFrame0InputsReset(m *circuit.GMap[circuit.Signal]) {
	var frame []circuit.Signal
	u.circ.Init.Gates(func(g circuit.Gate) {
		if u.circ.Init.IsInput(g) {
			frame = append(frame, m.Get(g))
		}
	})
	u.frameInput = append(u.frameInput, frame)
}

// Step performs one unroll cycle: copies main into Unrolled with flop
// outputs substituted for the current frontier, records this frame's
// inputs, and advances the frontier to next cycle's values (spec §4.4
// "Step").
func (u *Unroller) Step() {
	m := circuit.NewGMap[circuit.Signal](circuit.SigUndef)
	for i := 0; i < u.circ.Flops.Len(); i++ {
		f := u.circ.Flops.At(i)
		m.Set(f.Curr.Gate(), u.flopFront[i])
	}
	circuit.CopyCirc(u.circ.Main, u.Unrolled, m)

	var frame []circuit.Signal
	u.circ.Main.Gates(func(g circuit.Gate) {
		if u.circ.Main.IsInput(g) {
			if _, isFlop := flopCurrIndex(u.circ, g); isFlop {
				return
			}
			frame = append(frame, m.Get(g))
		}
	})
	u.frameInput = append(u.frameInput, frame)

	next := make([]circuit.Signal, u.circ.Flops.Len())
	for i := 0; i < u.circ.Flops.Len(); i++ {
		f := u.circ.Flops.At(i)
		next[i] = translate(m, f.Next)
	}
	u.flopFront = next
	u.cycle++
	u.lastMap = m
}

func flopCurrIndex(c *seq.Circ, g circuit.Gate) (int, bool) {
	found := -1
	c.Flops.Each(func(i int, f seq.Flop) {
		if f.Curr.Gate() == g {
			found = i
		}
	})
	return found, found >= 0
}

// Translate maps a main-arena signal at the most recently stepped cycle
// into the unrolled arena, for property/frontier lookups after Step.
func (u *Unroller) Translate(lastCopyMap *circuit.GMap[circuit.Signal], s circuit.Signal) circuit.Signal {
	return translate(lastCopyMap, s)
}

// TranslateMain maps a main-arena signal (such as a property's trigger
// signal) into the unrolled arena using the copy map from the most recent
// Step, so the clausifier — which only knows about Unrolled — can
// clausify it.
func (u *Unroller) TranslateMain(s circuit.Signal) circuit.Signal {
	if u.lastMap == nil {
		return s
	}
	return translate(u.lastMap, s)
}

// Cycle reports how many Step calls have run.
func (u *Unroller) Cycle() int { return u.cycle }

// FrameInputs returns the ordered input signals recorded for frame k.
func (u *Unroller) FrameInputs(k int) []circuit.Signal {
	if k < 0 || k >= len(u.frameInput) {
		return nil
	}
	return u.frameInput[k]
}

// NumFrames reports how many frames (including frame 0) have been recorded.
func (u *Unroller) NumFrames() int { return len(u.frameInput) }

// Frontier returns flop i's current-frontier signal in the unrolled arena.
func (u *Unroller) Frontier(i int) circuit.Signal { return u.flopFront[i] }
