// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package seq

import (
	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/trace"
)

// PropStatus is the verification state of one property (spec §3 "Property
// lifecycle").
type PropStatus int

const (
	// PropUnknown is the initial status of every property: neither a proof
	// nor a counter-example has yet been found.
	PropUnknown PropStatus = iota
	// PropFalse means a counter-example has been found (CexTrace holds a
	// witnessing trace for it).
	PropFalse
	// PropTrue means the property has been proved to hold on all reachable
	// states. No engine in this module assigns it: BMC and SCE leave every
	// property they do not falsify at PropUnknown.
	PropTrue
)

func (s PropStatus) String() string {
	switch s {
	case PropFalse:
		return "false"
	case PropTrue:
		return "true"
	default:
		return "unknown"
	}
}

// Prop is a single safety (bad-state) or liveness (justice) property
// attached to a circuit, identified by the AIGER section it came from
// (spec §3 "Properties").
type Prop struct {
	// Sig is the property's defining signal in the main arena. For a safety
	// property this is the "bad" signal (true means violated); for a
	// liveness property it is unused directly — Fairness holds the
	// per-signal fairness conditions that must all recur for the property
	// to be considered live.
	Sig circuit.Signal

	// Fairness lists the justice-set signals (spec's AIGER J section) that
	// must each become true infinitely often for this liveness property to
	// be satisfied; empty for safety properties.
	Fairness []circuit.Signal

	Status PropStatus

	// CexTrace is the witnessing trace once Status == PropFalse, in the
	// adapted coordinates of the original input circuit (spec §3
	// invariant: "For every property marked Falsified, cex_trace is a
	// valid trace in the adapted coordinates of the original input circuit").
	CexTrace *trace.T
}

// IsLiveness reports whether p is a liveness (justice) property rather than
// a safety (bad-state) one.
func (p *Prop) IsLiveness() bool {
	return len(p.Fairness) > 0
}
