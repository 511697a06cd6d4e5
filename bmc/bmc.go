// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package bmc implements the two bounded-model-checking engines of spec
// §4.5, ported from original_source's bmc/BasicBmc.cc and bmc/SimpBmc.cc.
// Both share the loop skeleton in this file; basic.go and simplifying.go
// each supply the per-cycle hook that differs between them.
package bmc

import (
	"github.com/GaloisInc/tip/clausify"
	"github.com/GaloisInc/tip/inter"
	"github.com/GaloisInc/tip/seq"
	"github.com/GaloisInc/tip/trace"
	"github.com/GaloisInc/tip/unroll"
)

// Result is the outcome of one Run call.
type Result struct {
	// Unresolved counts safety properties still Unknown when the cycle
	// budget was exhausted.
	Unresolved int
	// StoppedEarly is true if every property resolved before stop_cycle.
	StoppedEarly bool
}

// engine is implemented by Basic and Simplifying; it supplies the
// per-cycle hook the shared loop (run) invokes around each unroll step.
type engine interface {
	// beforeSolve runs after the unroller's Step for this cycle and before
	// each property's SAT call (Basic: a no-op; Simplifying: the
	// freeze/eliminate protocol of spec §4.5).
	beforeSolve(cycle int)
	// afterSolve runs once every property has been tested this cycle.
	afterSolve(cycle int)
	sat() inter.S
	clausifier() *clausify.Clausifier
}

// run is the shared BMC loop (spec §4.5): for each cycle, unroll one step;
// once past beginCycle, SAT-test every Unknown safety property by
// assuming its bad-trigger literal (p.Sig, true meaning violated) true,
// marking Falsified on SAT and extracting a trace.
func run(circ *seq.Circ, u *unroll.Unroller, e engine, beginCycle, stopCycle int) Result {
	for cycle := 0; cycle < stopCycle; cycle++ {
		u.Step()
		e.beforeSolve(cycle)

		if cycle >= beginCycle {
			unresolved := 0
			for i, p := range circ.SafeProps {
				if !circ.SafetyActive(i) {
					continue
				}
				lit := e.clausifier().Clausify(u.TranslateMain(p.Sig))
				e.sat().Assume(lit)
				if e.sat().Solve() == 1 {
					p.Status = seq.PropFalse
					p.CexTrace = extractTrace(circ, u, e, cycle)
				} else {
					unresolved++
				}
			}
			e.afterSolve(cycle)
			if unresolved == 0 {
				return Result{Unresolved: 0, StoppedEarly: true}
			}
		}
	}
	unresolved := 0
	for i := range circ.SafeProps {
		if circ.SafetyActive(i) {
			unresolved++
		}
	}
	return Result{Unresolved: unresolved}
}

// extractTrace builds a trace by reading model_value for every recorded
// input-frame variable, using 'x' for inputs never clausified, then pushes
// it through the circuit's adaptor chain (spec §4.5 "Trace extraction").
// The unroller records frame 0 at Init (the initial-state inputs) and
// frame k+1 at cycle k's Step, so frames 0..cycle+1 are read.
func extractTrace(circ *seq.Circ, u *unroll.Unroller, e engine, cycle int) *trace.T {
	t := trace.New()
	for k := 0; k <= cycle+1 && k < u.NumFrames(); k++ {
		inputs := u.FrameInputs(k)
		frame := make(trace.Frame, len(inputs))
		for idx, sig := range inputs {
			frame[idx] = e.clausifier().ModelValue(sig)
		}
		t.Frames = append(t.Frames, frame)
	}
	circ.Adaptor.Adapt(t.Frames)
	return t
}
