// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package circuit

// CopyCirc copies every gate of src up to and including stopGate (or the
// whole of src, if stopGate is omitted or GateUndef) into dst, recording
// the translation in m: m.Get(g) is the signal of gate g in dst once copied.
//
// Constants map to constants, inputs map to fresh inputs in dst (carrying
// over their external number, if any), and AND gates are rebuilt with
// MkAnd on already-translated children so structural sharing in dst is
// preserved (spec §4.1).
func CopyCirc(src, dst *Arena, m *GMap[Signal], stopGate ...Gate) {
	stop := src.LastGate()
	if len(stopGate) > 0 && stopGate[0] != GateUndef {
		stop = stopGate[0]
	}
	m.Set(GateTrue, SigTrue)
	for g := Gate(2); g <= stop; g++ {
		if m.Has(g) && m.Get(g) != SigUndef {
			continue
		}
		switch {
		case src.IsInput(g):
			ns := dst.NewInput()
			if num, ok := src.InputNumber(g); ok {
				dst.SetInputNumber(ns.Gate(), num)
			}
			m.Set(g, ns)
		case src.IsAnd(g):
			fa, fb := src.Fanin(g)
			da := translate(m, fa)
			db := translate(m, fb)
			m.Set(g, dst.MkAnd(da, db))
		default:
			// Unreferenced slot; leave unmapped.
		}
	}
}

// translate resolves a source-arena signal through a partially built
// translation map, carrying over the constant signals verbatim.
func translate(m *GMap[Signal], s Signal) Signal {
	if s == SigUndef {
		return SigUndef
	}
	g := s.Gate()
	if g == GateTrue {
		if s.IsPos() {
			return SigTrue
		}
		return SigFalse
	}
	ds := m.Get(g)
	if !s.IsPos() {
		return ds.Not()
	}
	return ds
}
