// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package traceadapt implements the trace-adaptor chain (spec §4.8): a
// list of patchers, each undoing one earlier transformation's effect on
// input numbering, so a counter-example found against a transformed circuit
// can be reported in the original circuit's coordinates.
//
// The teacher's original ("TipCirc.h"'s TraceAdaptor/AigerInitTraceAdaptor)
// chains patchers through virtual dispatch; spec §9 asks for a tagged
// variant instead, so Patcher here is a plain interface stored in a slice
// rather than a base-class pointer chain.
package traceadapt

import "github.com/GaloisInc/tip/trace"

// Patcher mutates a trace's frames in place to undo one transformation's
// effect on input numbering.
type Patcher interface {
	Patch(frames []trace.Frame)
}

// Chain is a list of patchers, head-first: Adapt applies patchers in the
// reverse of the order they were installed, most-recently-installed
// first, mirroring the teacher's "installation is append-to-head" rule
// (spec §4.8).
type Chain struct {
	patchers []Patcher
}

// NewChain creates an empty adaptor chain.
func NewChain() *Chain {
	return &Chain{}
}

// Install pushes p onto the head of the chain: it will run before any
// previously installed patcher.
func (c *Chain) Install(p Patcher) {
	c.patchers = append([]Patcher{p}, c.patchers...)
}

// Adapt applies every installed patcher, head first, to frames in place.
func (c *Chain) Adapt(frames []trace.Frame) {
	if c == nil {
		return
	}
	for _, p := range c.patchers {
		p.Patch(frames)
	}
}

// Len reports how many patchers are installed.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.patchers)
}
