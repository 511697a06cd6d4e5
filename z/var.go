// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Type Var is a 1-based variable identifier shared by a CNF clause database
// and the clausifier that feeds it.
type Var uint32

// VarNull is a reserved, never-allocated variable.
const VarNull Var = 0

// Pos returns the positive literal for v.
func (v Var) Pos() Lit {
	return Lit(v << 1)
}

// Neg returns the negative literal for v.
func (v Var) Neg() Lit {
	return Lit(v<<1) | 1
}

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}
