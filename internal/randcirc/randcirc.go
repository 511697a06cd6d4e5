// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package randcirc generates small random sequential circuits for tests,
// reusing the teacher's seeded-RNG convention from gen/rands.go
// (rand.NewSource with a fixed seed, for reproducible test fixtures)
// rather than its random-solver/CNF-formula generators, which have no
// counterpart in this module's AIGER/sequential-circuit domain.
package randcirc

import (
	"math/rand"

	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/seq"
)

// Gen builds a small random sequential circuit with nInputs free inputs,
// nFlops flops and nAnds additional AND gates wired from a fixed seed, one
// safety property over a random gate, suitable for unroller/SCE/BMC
// fixture tests.
func Gen(seed int64, nInputs, nFlops, nAnds int) *seq.Circ {
	r := rand.New(rand.NewSource(seed))
	c := seq.NewCirc()
	m := c.Main

	var pool []circuit.Signal
	pool = append(pool, circuit.SigTrue)
	for i := 0; i < nInputs; i++ {
		pool = append(pool, m.NewInput())
	}

	flopCurr := make([]circuit.Signal, nFlops)
	for i := 0; i < nFlops; i++ {
		flopCurr[i] = m.NewInput()
		pool = append(pool, flopCurr[i])
	}

	pick := func() circuit.Signal {
		s := pool[r.Intn(len(pool))]
		if r.Intn(2) == 0 {
			return s
		}
		return s.Not()
	}

	for i := 0; i < nAnds; i++ {
		x, y := pick(), pick()
		pool = append(pool, m.MkAnd(x, y))
	}

	for i := 0; i < nFlops; i++ {
		c.Flops.Add(seq.Flop{Curr: flopCurr[i], Next: pick(), Init: seq.InitZero})
	}

	c.SafeProps = append(c.SafeProps, &seq.Prop{Sig: pick()})
	return c
}
