// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package fairness implements the fairness-embedding reduction of spec
// §4.6, ported from original_source's liveness/EmbedFairness.cc: each
// liveness property's fairness set is folded into one accept signal, and
// the result is still a liveness property.
package fairness

import (
	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/seq"
)

// Kind selects the embedding algorithm (spec §4.6 "Standard embedding" /
// "Stable-live embedding (alternative)").
type Kind int

const (
	Standard Kind = iota
	StableLive
)

// Embed transforms every Unknown liveness property of circ into an
// equivalent single-signal liveness property, folding in the global
// fairness list, then clears the global fairness list (spec §4.6).
func Embed(circ *seq.Circ, kind Kind) {
	for _, p := range circ.LiveProps {
		if p.Status != seq.PropUnknown {
			continue
		}
		s := append(append([]circuit.Signal{}, circ.Fairness...), p.Fairness...)
		var accept circuit.Signal
		switch kind {
		case StableLive:
			accept = embedStableLive(circ, s)
		default:
			accept = embedStandard(circ, s)
		}
		p.Fairness = []circuit.Signal{accept}
	}
	circ.Fairness = nil
}

// embedStandard implements spec §4.6's "Standard embedding": n >= 2
// allocates one auxiliary flop per fairness signal and a shared reset
// counter; n == 0 / n == 1 are degenerate shortcuts needing no flops.
func embedStandard(circ *seq.Circ, s []circuit.Signal) circuit.Signal {
	n := len(s)
	switch n {
	case 0:
		return circuit.SigTrue
	case 1:
		return s[0]
	}
	m := circ.Main
	extra := m.NewInput()

	mFlops := make([]circuit.Signal, n) // current-cycle m[j] signal
	flopIdx := make([]int, n)
	for j := 0; j < n; j++ {
		curr := m.NewInput()
		mFlops[j] = curr
		flopIdx[j] = circ.Flops.Add(seq.Flop{Curr: curr, Init: seq.InitZero})
	}

	triggers := make([]circuit.Signal, n)
	for j := 0; j < n; j++ {
		triggers[j] = m.MkOr(s[j], mFlops[j])
	}
	accept := m.MkAnds(triggers...)
	reset := m.MkOr(extra, accept)

	for j := 0; j < n; j++ {
		next := m.MkAnd(reset.Not(), triggers[j])
		circ.Flops.SetNext(flopIdx[j], next)
	}
	return accept
}

// embedStableLive implements spec §4.6's "Stable-live embedding
// (alternative)": a shared challenge/challenged pair plus one broken flop
// per fairness signal.
func embedStableLive(circ *seq.Circ, s []circuit.Signal) circuit.Signal {
	n := len(s)
	m := circ.Main

	challenge := m.NewInput()

	preChallengedCurr := m.NewInput()
	preChallengedIdx := circ.Flops.Add(seq.Flop{Curr: preChallengedCurr, Init: seq.InitZero})

	challenged := m.MkOr(challenge, preChallengedCurr)
	circ.Flops.SetNext(preChallengedIdx, challenged)

	stableJust := make([]circuit.Signal, n)
	for j := 0; j < n; j++ {
		brokenCurr := m.NewInput()
		brokenIdx := circ.Flops.Add(seq.Flop{Curr: brokenCurr, Init: seq.InitZero})
		broken := m.MkOr(m.MkAnd(s[j].Not(), challenged), brokenCurr)
		circ.Flops.SetNext(brokenIdx, broken)
		stableJust[j] = m.MkAnd(m.MkAnd(challenged, s[j]), broken.Not())
	}
	if n == 0 {
		return circuit.SigTrue
	}
	return m.MkAnds(stableJust...)
}
