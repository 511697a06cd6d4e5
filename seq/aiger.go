// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

package seq

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GaloisInc/tip/circuit"
	"github.com/GaloisInc/tip/trace"
	"github.com/GaloisInc/tip/z"
)

// AIGER 1.9 header field counts, ported from the teacher's aiger.T header
// handling (logic/aiger/aiger.go), generalized from a single logic.S to
// this module's two-arena (init/main) model: the init arena receives one
// fresh input per x-initialized latch (spec §4.2, §4.4 "Initialization
// (reset mode)"); the main arena receives everything else.
type header struct {
	m, i, l, o, b, c, j, f int
}

// ReadAiger parses an AIGER 1.9 circuit (ASCII or binary; the caller is
// responsible for gzip transparency, spec §6) into a fresh sequential
// circuit.
func ReadAiger(r io.Reader) (*Circ, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(3)
	if err != nil {
		return nil, fmt.Errorf("aiger: %w", err)
	}
	switch string(magic) {
	case "aag":
		return readAscii(br)
	case "aig":
		return readBinary(br)
	default:
		return nil, fmt.Errorf("aiger: bad magic %q", magic)
	}
}

func readHeaderLine(br *bufio.Reader) (header, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return header{}, fmt.Errorf("aiger: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return header{}, fmt.Errorf("aiger: malformed header %q", line)
	}
	var h header
	nums := make([]int, 0, 8)
	for _, s := range fields[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return header{}, fmt.Errorf("aiger: bad header field %q: %w", s, err)
		}
		nums = append(nums, n)
	}
	get := func(i int) int {
		if i < len(nums) {
			return nums[i]
		}
		return 0
	}
	h.m, h.i, h.l, h.o, h.b = get(0), get(1), get(2), get(3), get(4)
	// AIGER 1.9 reordered optional trailing counts as b c j f (post-1.0
	// added b; 1.9 added c j f after it).
	h.c, h.j, h.f = get(5), get(6), get(7)
	return h, nil
}

// parsed holds the literal lists read by both the ASCII and binary
// readers; assemble builds a Circ from it.
type parsed struct {
	h        header
	litInput []uint32 // AIGER literal (2*var) of each input, index = input#
	latchLit []uint32 // driver literal of each latch's next-state fn
	latchIni []int    // 0, 1, or -1 (x) per latch
	outputs  []uint32
	bad      []uint32
	cnstr    []uint32
	justice  [][]uint32
	fair     []uint32
	ands     [][3]uint32 // lhs, rhs0, rhs1 (each an AIGER literal)
}

func assemble(p parsed) (*Circ, error) {
	c := NewCirc()
	// build[lit] = main-arena Signal for every AIGER literal 0..2m+1.
	build := make(map[uint32]circuit.Signal, 2*p.h.m+2)
	build[0] = circuit.SigFalse
	build[1] = circuit.SigTrue

	for idx := 0; idx < p.h.i; idx++ {
		var lit uint32
		if idx < len(p.litInput) {
			lit = p.litInput[idx]
		} else {
			lit = uint32(2 * (idx + 1))
		}
		sig := c.Main.NewInput()
		c.Main.SetInputNumber(sig.Gate(), uint32(idx))
		build[lit] = sig
		build[lit^1] = sig.Not()
	}

	// Latches occupy the next block of variable numbers per AIGER
	// convention; pre-allocate their gates as inputs-of-the-moment so the
	// AND section (which may reference a latch's *current* value before
	// its next-state AND is parsed, e.g. cyclic combinational sharing with
	// flops) resolves consistently. Flop current-value signals are plain
	// main-arena inputs (spec §3 "Arena": current value is materialized as
	// a signal driven externally by the unroller's flop_front).
	numLatches := len(p.latchLit)
	latchCurr := make([]circuit.Signal, numLatches)
	for k := 0; k < numLatches; k++ {
		lit := uint32(2 * (p.h.i + k + 1))
		sig := c.Main.NewInput()
		latchCurr[k] = sig
		build[lit] = sig
		build[lit^1] = sig.Not()
	}

	// AND gates, in file order, which AIGER guarantees is a valid
	// topological order (every rhs literal's variable is smaller than the
	// lhs variable it defines).
	for _, tri := range p.ands {
		lhs, r0, r1 := tri[0], tri[1], tri[2]
		x, ok0 := resolve(build, r0)
		y, ok1 := resolve(build, r1)
		if !ok0 || !ok1 {
			return nil, fmt.Errorf("aiger: forward reference in AND gate lhs=%d", lhs)
		}
		sig := c.Main.MkAnd(x, y)
		build[lhs] = sig
		build[lhs^1] = sig.Not()
	}

	lookup := func(lit uint32) (circuit.Signal, error) {
		s, ok := resolve(build, lit)
		if !ok {
			return circuit.SigUndef, fmt.Errorf("aiger: undefined literal %d", lit)
		}
		return s, nil
	}

	// Flop table: next-state signals from latchLit, current-value signals
	// from latchCurr, init handling per spec §4.4's reset-mode contract.
	for k := 0; k < numLatches; k++ {
		next, err := lookup(p.latchLit[k])
		if err != nil {
			return nil, err
		}
		f := Flop{Curr: latchCurr[k], Next: next}
		switch p.latchIni[k] {
		case 0:
			f.Init = InitZero
		case 1:
			f.Init = InitOne
		default:
			f.Init = InitArbitrary
			f.InitInput = c.Init.NewInput()
		}
		c.Flops.Add(f)
	}

	for _, lit := range p.bad {
		sig, err := lookup(lit)
		if err != nil {
			return nil, err
		}
		c.SafeProps = append(c.SafeProps, &Prop{Sig: sig})
	}
	// In legacy AIGER files (o > 0, b == 0) every output becomes a safety
	// property whose bad signal is the output itself, matching the widely
	// used convention that an asserted output signals failure
	// (supplemented from original_source's -xsafe handling, SPEC_FULL.md §6).
	if len(p.bad) == 0 {
		for _, lit := range p.outputs {
			sig, err := lookup(lit)
			if err != nil {
				return nil, err
			}
			c.SafeProps = append(c.SafeProps, &Prop{Sig: sig})
		}
	}

	for _, lit := range p.cnstr {
		sig, err := lookup(lit)
		if err != nil {
			return nil, err
		}
		c.Cnstrs.MergeTrue(sig)
	}

	for _, set := range p.justice {
		sigs := make([]circuit.Signal, 0, len(set))
		for _, lit := range set {
			sig, err := lookup(lit)
			if err != nil {
				return nil, err
			}
			sigs = append(sigs, sig)
		}
		c.LiveProps = append(c.LiveProps, &Prop{Fairness: sigs})
	}

	for _, lit := range p.fair {
		sig, err := lookup(lit)
		if err != nil {
			return nil, err
		}
		c.Fairness = append(c.Fairness, sig)
	}

	// The init-arena inputs created above for x-initialized flops are
	// unnumbered (NewInput assigns no external number); number them 0, 1,
	// ... in flop-table order, counting only x-initialized flops, so their
	// numbering is predictable.
	idx := uint32(0)
	c.Flops.Each(func(i int, fl Flop) {
		if fl.Init == InitArbitrary {
			c.Init.SetInputNumber(fl.InitInput.Gate(), idx)
			idx++
		}
	})

	return c, nil
}

func resolve(build map[uint32]circuit.Signal, lit uint32) (circuit.Signal, bool) {
	s, ok := build[lit]
	return s, ok
}

func readAscii(br *bufio.Reader) (*Circ, error) {
	h, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	p := parsed{h: h}
	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("aiger: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
	readUint := func(s string) uint32 {
		n, _ := strconv.ParseUint(s, 10, 32)
		return uint32(n)
	}
	for i := 0; i < h.i; i++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.litInput = append(p.litInput, readUint(line))
	}
	for k := 0; k < h.l; k++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 1 {
			return nil, fmt.Errorf("aiger: bad latch line %q", line)
		}
		p.latchLit = append(p.latchLit, readUint(fields[0]))
		if len(fields) >= 2 {
			switch fields[1] {
			case "0":
				p.latchIni = append(p.latchIni, 0)
			case "1":
				p.latchIni = append(p.latchIni, 1)
			default:
				p.latchIni = append(p.latchIni, -1)
			}
		} else {
			p.latchIni = append(p.latchIni, 0) // pre-1.9 default: init to 0
		}
	}
	for o := 0; o < h.o; o++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.outputs = append(p.outputs, readUint(line))
	}
	for b := 0; b < h.b; b++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.bad = append(p.bad, readUint(line))
	}
	for k := 0; k < h.c; k++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.cnstr = append(p.cnstr, readUint(line))
	}
	for jj := 0; jj < h.j; jj++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		n, _ := strconv.Atoi(line)
		set := make([]uint32, 0, n)
		for k := 0; k < n; k++ {
			l2, err := readLine()
			if err != nil {
				return nil, err
			}
			set = append(set, readUint(l2))
		}
		p.justice = append(p.justice, set)
	}
	for k := 0; k < h.f; k++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.fair = append(p.fair, readUint(line))
	}
	for a := 0; a < h.m-h.i-h.l; a++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("aiger: bad and line %q", line)
		}
		p.ands = append(p.ands, [3]uint32{readUint(fields[0]), readUint(fields[1]), readUint(fields[2])})
	}
	return assemble(p)
}

// readBinary parses the AIGER binary body: I/O/B/C/J/F sections are ASCII
// (as in the ascii format, minus the input-literal lines, since binary
// inputs are numbered implicitly) and the AND section uses unsigned
// LEB128 delta encoding, ported from the teacher's binary reader idiom.
func readBinary(br *bufio.Reader) (*Circ, error) {
	h, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	p := parsed{h: h}
	// Binary format numbers inputs and latches implicitly: input k has
	// literal 2*(k+1); latch k's *current* value has literal
	// 2*(h.i+k+1). Only the latch's driver (next-state) literal and init
	// tag are stored, textually, exactly like the ASCII format.
	for k := 0; k < h.i; k++ {
		p.litInput = append(p.litInput, uint32(2*(k+1)))
	}
	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("aiger: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
	readUint := func(s string) uint32 {
		n, _ := strconv.ParseUint(s, 10, 32)
		return uint32(n)
	}
	for k := 0; k < h.l; k++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		p.latchLit = append(p.latchLit, readUint(fields[0]))
		if len(fields) >= 2 {
			switch fields[1] {
			case "0":
				p.latchIni = append(p.latchIni, 0)
			case "1":
				p.latchIni = append(p.latchIni, 1)
			default:
				p.latchIni = append(p.latchIni, -1)
			}
		} else {
			p.latchIni = append(p.latchIni, 0)
		}
	}
	for o := 0; o < h.o; o++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.outputs = append(p.outputs, readUint(line))
	}
	for b := 0; b < h.b; b++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.bad = append(p.bad, readUint(line))
	}
	for k := 0; k < h.c; k++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.cnstr = append(p.cnstr, readUint(line))
	}
	for jj := 0; jj < h.j; jj++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		n, _ := strconv.Atoi(line)
		set := make([]uint32, 0, n)
		for k := 0; k < n; k++ {
			l2, err := readLine()
			if err != nil {
				return nil, err
			}
			set = append(set, readUint(l2))
		}
		p.justice = append(p.justice, set)
	}
	for k := 0; k < h.f; k++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		p.fair = append(p.fair, readUint(line))
	}
	numAnds := h.m - h.i - h.l
	for a := 0; a < numAnds; a++ {
		lhs := uint32(2 * (h.i + h.l + a + 1))
		d0, err := readDelta(br)
		if err != nil {
			return nil, err
		}
		d1, err := readDelta(br)
		if err != nil {
			return nil, err
		}
		r0 := lhs - d0
		r1 := r0 - d1
		p.ands = append(p.ands, [3]uint32{lhs, r0, r1})
	}
	return assemble(p)
}

func readDelta(br *bufio.Reader) (uint32, error) {
	var x uint32
	var shift uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("aiger: %w", err)
		}
		x |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return x, nil
		}
		shift += 7
	}
}

// WriteAiger emits c in AIGER 1.9 ASCII format (spec §4.2 write_aiger).
// The main arena's flop table, safety, liveness, constraint, and fairness
// lists are flattened back into AIGER's I/L/O/B/C/J/F sections; the init
// arena is not itself serialized — it is implicit in each flop's init
// field. An x-initialized flop is written with the latch's own literal as
// its init value, which is how AIGER 1.9 marks an uninitialized latch.
func WriteAiger(c *Circ, w io.Writer) error {
	lits := make(map[circuit.Gate]uint32)
	var nextVar uint32 = 1
	varOf := func(g circuit.Gate) uint32 {
		if g == circuit.GateTrue {
			return 0
		}
		if v, ok := lits[g]; ok {
			return v
		}
		v := nextVar
		nextVar++
		lits[g] = v
		return v
	}
	litOf := func(s circuit.Signal) uint32 {
		v := varOf(s.Gate())
		l := v * 2
		if !s.IsPos() {
			l |= 1
		}
		if s.Gate() == circuit.GateTrue {
			// AIGER literal 0 is false, but gate 1's positive signal is true.
			l ^= 1
		}
		return l
	}

	// number inputs and latches first, in AIGER's mandated variable order
	inputCount := 0
	c.Main.Gates(func(g circuit.Gate) {
		if c.Main.IsInput(g) {
			if _, isCurr := currLatchOf(c, g); isCurr {
				return
			}
			varOf(g)
			inputCount++
		}
	})
	numLatches := c.Flops.Len()
	c.Flops.Each(func(i int, f Flop) { varOf(f.Curr.Gate()) })

	var andLines []string
	c.Main.Gates(func(g circuit.Gate) {
		if c.Main.IsAnd(g) {
			x, y := c.Main.Fanin(g)
			andLines = append(andLines, fmt.Sprintf("%d %d %d", varOf(g)*2, litOf(x), litOf(y)))
		}
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "aag %d %d %d %d %d %d %d %d\n",
		nextVar-1, inputCount, numLatches, 0, len(c.SafeProps), len(c.Cnstrs.dumpTrue()), len(c.LiveProps), len(c.Fairness))

	c.Main.Gates(func(g circuit.Gate) {
		if c.Main.IsInput(g) {
			if _, isCurr := currLatchOf(c, g); isCurr {
				return
			}
			fmt.Fprintf(bw, "%d\n", varOf(g)*2)
		}
	})
	c.Flops.Each(func(i int, f Flop) {
		initTok := "0"
		switch f.Init {
		case InitOne:
			initTok = "1"
		case InitArbitrary:
			initTok = strconv.Itoa(int(varOf(f.Curr.Gate()) * 2))
		}
		fmt.Fprintf(bw, "%d %d %s\n", varOf(f.Curr.Gate())*2, litOf(f.Next), initTok)
	})
	for _, p := range c.SafeProps {
		fmt.Fprintf(bw, "%d\n", litOf(p.Sig))
	}
	for _, s := range c.Cnstrs.dumpTrue() {
		fmt.Fprintf(bw, "%d\n", litOf(s))
	}
	for _, p := range c.LiveProps {
		fmt.Fprintf(bw, "%d\n", len(p.Fairness))
		for _, s := range p.Fairness {
			fmt.Fprintf(bw, "%d\n", litOf(s))
		}
	}
	for _, s := range c.Fairness {
		fmt.Fprintf(bw, "%d\n", litOf(s))
	}
	for _, l := range andLines {
		fmt.Fprintln(bw, l)
	}
	return bw.Flush()
}

func currLatchOf(c *Circ, g circuit.Gate) (int, bool) {
	found := -1
	c.Flops.Each(func(i int, f Flop) {
		if f.Curr.Gate() == g {
			found = i
		}
	})
	return found, found >= 0
}

// dumpTrue is a placeholder accessor SCE's committed equivalences use to
// serialize the "true ≡ c" constraints AIGER's C section can express
// (single-signal environment constraints); equivalences of the general
// "g1 == g2" shape have no AIGER encoding and are not round-tripped.
func (e *Equivs) dumpTrue() []circuit.Signal {
	var out []circuit.Signal
	for g := range e.parent {
		root, parity := e.find(g)
		if root == circuit.GateTrue {
			out = append(out, signalOf(g, parity))
		}
	}
	return out
}

// WriteResultsAiger emits c's properties and their verdicts/witnesses in
// AIGER format (spec §4.2 write_results_aiger), grounded on
// original_source's printTraceAiger: the base circuit is written unchanged
// followed by, for each Falsified property, a witness section giving the
// property index and its counter-example trace as one line of input
// values per frame.
func WriteResultsAiger(c *Circ, w io.Writer) error {
	if err := WriteAiger(c, w); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i, p := range c.SafeProps {
		fmt.Fprintf(bw, "b%d %s\n", i, p.Status)
		if p.Status == PropFalse && p.CexTrace != nil {
			if err := bw.Flush(); err != nil {
				return err
			}
			if err := WriteWitness(w, p.CexTrace); err != nil {
				return err
			}
		}
	}
	for i, p := range c.LiveProps {
		fmt.Fprintf(bw, "j%d %s\n", i, p.Status)
		if p.Status == PropFalse && p.CexTrace != nil {
			if err := bw.Flush(); err != nil {
				return err
			}
			if err := WriteWitness(w, p.CexTrace); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteWitness appends t's frames after a results-format property line, one
// row of space-separated ternary digits per frame, terminated by an
// "L <loop index>" line, or a "." line when the trace has no loop.
func WriteWitness(w io.Writer, t *trace.T) error {
	bw := bufio.NewWriter(w)
	for _, f := range t.Frames {
		var sb strings.Builder
		for i, v := range f {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(lboolTok(v))
		}
		fmt.Fprintln(bw, sb.String())
	}
	if t.Loop == trace.LoopNone {
		fmt.Fprintln(bw, ".")
	} else {
		fmt.Fprintf(bw, "L %d\n", t.Loop)
	}
	return bw.Flush()
}

func lboolTok(v z.Lbool) string {
	return v.String()
}
