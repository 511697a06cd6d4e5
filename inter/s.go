// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package inter

import "github.com/GaloisInc/tip/z"

// Interface Solvable encapsulates a decision procedure which may run for a
// long time.
//
// Solve returns
//
//	 1  If the problem is SAT
//	 0  If the problem is undetermined
//	-1  If the problem is UNSAT
type Solvable interface {
	Solve() int
}

// Adder encapsulates something to which clauses can be added by sequences
// of z.LitNull-terminated literals.
type Adder interface {
	// Add adds a literal to the clause under construction. If m is
	// z.LitNull, it signals the end of a clause.
	Add(m z.Lit)
}

// MaxVar is something which records the maximum variable from a stream of
// inputs (such as Adds/Assumes) and can return the maximum of all such
// variables.
type MaxVar interface {
	MaxVar() z.Var
}

// Liter produces fresh variables and returns the corresponding positive
// literal.
type Liter interface {
	Lit() z.Lit
}

// Model encapsulates something from which a model can be extracted.
type Model interface {
	Value(m z.Lit) bool
}

// Assumable encapsulates a problem which can be solved under a set of
// assumed literals.
type Assumable interface {
	Assume(m ...z.Lit)
	Why(dst []z.Lit) []z.Lit
}

// Testable provides an interface for scoped, lightweight assumption
// testing under unit propagation, without committing to a full Solve.
type Testable interface {
	Assumable

	// Test propagates the current assumptions and reports
	//
	//	-1  UNSAT, 1  SAT (fully assigned), 0  UNKNOWN (neither)
	//
	// storing newly implied literals in dst if possible.
	Test(dst []z.Lit) (result int, out []z.Lit)

	// Untest removes the assumptions installed by the last Test.
	Untest() int
}

// S encapsulates a complete incremental SAT interface: something capable of
// Solvable, Assumable, Model, Testable and generating its own variables.
//
// The SAT backend itself is out of scope for this module (spec §1); S is
// the seam a clausifier and BMC engine use to drive whatever backend
// implements it (the solver package, in this repository).
type S interface {
	MaxVar
	Liter
	Adder
	Solvable
	Model
	Testable

	// SCopy creates an independent copy of the solver's clause database and
	// assignment state.
	SCopy() S
}

// Eliminator is implemented by SAT backends capable of CNF-level variable
// elimination between incremental solve calls (spec §4.4/§4.5, the
// "simplifying" BMC variant). FreezeVar/Thaw bracket the region in which a
// variable must survive elimination.
type Eliminator interface {
	S

	// FreezeVar marks v ineligible for elimination until Thaw.
	FreezeVar(v z.Var)

	// Thaw makes every previously frozen variable eligible for elimination
	// again.
	Thaw()

	// IsEliminated reports whether v has been eliminated from the CNF.
	IsEliminated(v z.Var) bool

	// Eliminate runs one round of CNF-level simplification, respecting
	// frozen variables, and reports the resulting status like Solve.
	Eliminate() int
}
