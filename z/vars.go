// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package z

// Vars maps "outer" literals (e.g. gates in a clausifier's arena) to
// "inner" literals (e.g. variables in a SAT backend), recycling inner
// variables once freed: a freed inner variable is reused by a later
// allocation. The clausifier and the BMC engines do not use it; they
// allocate variables directly from the SAT backend.
type Vars struct {
	o2i  map[Lit]Lit
	i2o  map[Var]Lit
	free []Var
	next Var
}

// NewVars creates an empty Vars pool. vcap is a capacity hint.
func NewVars(vcap ...int) *Vars {
	cap0 := 128
	if len(vcap) > 0 && vcap[0] > 0 {
		cap0 = vcap[0]
	}
	return &Vars{
		o2i:  make(map[Lit]Lit, cap0),
		i2o:  make(map[Var]Lit, cap0),
		next: 1,
	}
}

// alloc returns a fresh or recycled inner variable.
func (vs *Vars) alloc() Var {
	n := len(vs.free)
	if n > 0 {
		v := vs.free[n-1]
		vs.free = vs.free[:n-1]
		return v
	}
	v := vs.next
	vs.next++
	return v
}

// Inner allocates a fresh inner positive literal with no outer counterpart.
func (vs *Vars) Inner() Lit {
	v := vs.alloc()
	return v.Pos()
}

// ToInner returns the inner literal corresponding to outer literal m,
// allocating one deterministically on first use.
func (vs *Vars) ToInner(m Lit) Lit {
	v := m.Var()
	outerPos := v.Pos()
	if inner, ok := vs.o2i[outerPos]; ok {
		if m.IsPos() {
			return inner
		}
		return inner.Not()
	}
	iv := vs.alloc()
	inner := iv.Pos()
	vs.o2i[outerPos] = inner
	vs.i2o[iv] = outerPos
	if m.IsPos() {
		return inner
	}
	return inner.Not()
}

// ToOuter returns the outer literal that produced inner literal m, or
// LitNull if m was allocated via Inner (has no outer counterpart).
func (vs *Vars) ToOuter(m Lit) Lit {
	outer, ok := vs.i2o[m.Var()]
	if !ok {
		return LitNull
	}
	if m.IsPos() {
		return outer
	}
	return outer.Not()
}

// Free releases the inner variable of m back to the pool, so a future
// ToInner/Inner call may reuse its id. The caller must ensure no clause
// still references it.
func (vs *Vars) Free(m Lit) {
	v := m.Var()
	if outer, ok := vs.i2o[v]; ok {
		delete(vs.o2i, outer)
		delete(vs.i2o, v)
	}
	vs.free = append(vs.free, v)
}

// Len returns the number of live (non-recycled) inner variables allocated.
func (vs *Vars) Len() int {
	return int(vs.next) - 1 - len(vs.free)
}
