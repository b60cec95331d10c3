// Package compiler turns regular expression patterns into dense byte
// automatons. The pipeline is regexp/syntax parse -> simplify -> compile,
// followed by UTF-8 expansion into a byte NFA and subset construction into a
// dense transition table.
package compiler

import (
	"errors"
	"fmt"
	"regexp/syntax"

	"github.com/buffet/hotsauce/automaton"
)

// ErrTooManyStates is returned when determinization exceeds the configured
// state limit.
var ErrTooManyStates = errors.New("too many automaton states")

// DefaultMaxStates bounds subset construction for pathological patterns.
const DefaultMaxStates = 4096

// Config configures a single compilation.
type Config struct {
	// Pattern is the regular expression to compile.
	Pattern string

	// Flags are the regexp/syntax parse flags. Zero means syntax.Perl.
	Flags syntax.Flags

	// ByteClasses shrinks the automaton alphabet by grouping bytes into
	// equivalence classes.
	ByteClasses bool

	// MaxStates caps the number of automaton states. Zero means
	// DefaultMaxStates.
	MaxStates int

	// Logger receives verbose diagnostics. Nil disables them.
	Logger *Logger
}

// Compile builds a dense automaton for the configured pattern.
func Compile(cfg Config) (*automaton.Dense, error) {
	if cfg.Logger == nil {
		cfg.Logger = NewLogger(false)
	}
	if cfg.MaxStates <= 0 {
		cfg.MaxStates = DefaultMaxStates
	}
	if cfg.Flags == 0 {
		cfg.Flags = syntax.Perl
	}

	ast, err := syntax.Parse(cfg.Pattern, cfg.Flags)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	ast = ast.Simplify()
	prog, err := syntax.Compile(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}
	cfg.Logger.Log("pattern %q: %d program instructions", cfg.Pattern, len(prog.Inst))

	n, err := buildNFA(prog)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", cfg.Pattern, err)
	}
	cfg.Logger.Log("byte NFA has %d nodes", len(n.nodes))

	d := &determinizer{nfa: n, cfg: cfg}
	tables, err := d.run()
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", cfg.Pattern, err)
	}
	cfg.Logger.Log("dense automaton: %d states, alphabet %d", len(tables.Flags), tables.AlphabetLen)
	return automaton.FromTables(tables), nil
}

// Context of the most recently consumed byte, carried in the DFA state key so
// look-behind assertions (^ and multiline ^) determinize cleanly.
const (
	ctxBegin uint8 = iota // nothing consumed yet in this search
	ctxNewline
	ctxOther
)

// dstate is an unfinished DFA state: a list of NFA nodes in thread priority
// order (preferred alternatives first), plus look-behind context. The order is
// part of the state identity. Unanchored states re-inject the NFA start, at
// lowest priority, on every transition, which is what lets a single forward
// cursor answer "is there a match starting anywhere".
type dstate struct {
	set        []int
	ctx        uint8
	unanchored bool
}

type determinizer struct {
	nfa *nfa
	cfg Config

	classes [256]uint8
	reps    []byte // representative byte per class
	alpha   int

	states []dstate
	index  map[string]automaton.State
	flags  []uint8
	rows   [][]automaton.State
}

func (d *determinizer) run() (automaton.Tables, error) {
	d.buildClasses()
	d.index = make(map[string]automaton.State)

	// State 0 is the dead sink; its row of zeroes is its self-loop.
	d.states = append(d.states, dstate{})
	d.flags = append(d.flags, 0)
	d.rows = append(d.rows, make([]automaton.State, d.alpha))

	startKinds := [...]struct {
		ctx        uint8
		unanchored bool
	}{
		automaton.Unanchored:      {ctxBegin, true},
		automaton.Anchored:        {ctxBegin, false},
		automaton.AnchoredMid:     {ctxOther, false},
		automaton.AnchoredNewline: {ctxNewline, false},
	}
	var starts [automaton.NumModes]automaton.State
	for mode, k := range startKinds {
		id, err := d.addState([]int{d.nfa.start}, k.ctx, k.unanchored)
		if err != nil {
			return automaton.Tables{}, err
		}
		starts[mode] = id
	}

	// Worklist: states are appended as they are discovered.
	for i := 1; i < len(d.states); i++ {
		s := d.states[i]
		row := make([]automaton.State, d.alpha)
		for c := 0; c < d.alpha; c++ {
			b := d.reps[c]
			moved := d.move(d.closure(s.set, s.ctx, int(b)), b)
			if s.unanchored {
				moved = appendThread(moved, d.nfa.start)
			}
			nctx := ctxOther
			if b == '\n' {
				nctx = ctxNewline
			}
			id, err := d.addState(moved, nctx, s.unanchored)
			if err != nil {
				return automaton.Tables{}, err
			}
			row[c] = id
		}
		d.rows[i] = row
	}

	t := automaton.Tables{
		AlphabetLen: d.alpha,
		Classes:     d.classes,
		Flags:       d.flags,
		Starts:      starts,
	}
	t.Transitions = make([]automaton.State, 0, len(d.rows)*d.alpha)
	for _, row := range d.rows {
		t.Transitions = append(t.Transitions, row...)
	}
	return t, nil
}

func (d *determinizer) addState(set []int, ctx uint8, unanchored bool) (automaton.State, error) {
	if len(set) == 0 {
		return 0, nil
	}
	key := stateKey(set, ctx, unanchored)
	if id, ok := d.index[key]; ok {
		return id, nil
	}
	if len(d.states) >= d.cfg.MaxStates {
		return 0, fmt.Errorf("%w (limit %d)", ErrTooManyStates, d.cfg.MaxStates)
	}
	id := automaton.State(len(d.states))
	d.index[key] = id
	d.states = append(d.states, dstate{set: set, ctx: ctx, unanchored: unanchored})
	var fl uint8
	// Match classification sees no lookahead byte: assertions about the
	// following byte cannot be confirmed here. See assertOK.
	if d.hasMatch(d.closure(set, ctx, -1)) {
		fl = automaton.FlagMatch
	}
	d.flags = append(d.flags, fl)
	d.rows = append(d.rows, nil)
	return id, nil
}

// closure expands set over unconditional and satisfied assertion epsilons,
// depth-first in thread priority order (a preferred alternative and everything
// reachable from it come before the next alternative). The walk stops at the
// first match node: threads explored after it have lower priority, and once a
// match is available they can never win, so pruning them here is what encodes
// preferred-alternative-first resolution into the automaton. ahead is the next
// input byte, or -1 when it is unknown.
func (d *determinizer) closure(set []int, ctx uint8, ahead int) []int {
	seen := make([]bool, len(d.nfa.nodes))
	out := make([]int, 0, len(set))
	matched := false
	var walk func(id int)
	walk = func(id int) {
		if matched || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		node := &d.nfa.nodes[id]
		if node.match {
			matched = true
			return
		}
		for _, to := range node.eps {
			walk(to)
		}
		for _, a := range node.asserts {
			if assertOK(a.op, ctx, ahead) {
				walk(a.to)
			}
		}
	}
	for _, id := range set {
		walk(id)
	}
	return out
}

// assertOK evaluates an empty-width condition against the look-behind
// context and, when known, the upcoming byte.
func assertOK(op syntax.EmptyOp, ctx uint8, ahead int) bool {
	if op&syntax.EmptyBeginText != 0 && ctx != ctxBegin {
		return false
	}
	if op&syntax.EmptyBeginLine != 0 && ctx != ctxBegin && ctx != ctxNewline {
		return false
	}
	// End-of-text is confirmed by the absence of a following byte, which
	// the automaton interface has no way to observe. This is the
	// documented gap, not something to patch with lookahead.
	if op&syntax.EmptyEndText != 0 {
		return false
	}
	if op&syntax.EmptyEndLine != 0 && ahead != '\n' {
		return false
	}
	return true
}

// move collects the byte-edge targets of closed, preserving thread priority
// order: the first occurrence of a target keeps the highest priority it is
// reached with.
func (d *determinizer) move(closed []int, b byte) []int {
	seen := make(map[int]bool)
	var out []int
	for _, id := range closed {
		for _, e := range d.nfa.nodes[id].edges {
			if e.lo <= b && b <= e.hi && !seen[e.to] {
				seen[e.to] = true
				out = append(out, e.to)
			}
		}
	}
	return out
}

func (d *determinizer) hasMatch(closed []int) bool {
	for _, id := range closed {
		if d.nfa.nodes[id].match {
			return true
		}
	}
	return false
}

// buildClasses partitions the byte alphabet into equivalence classes: bytes
// that no NFA edge distinguishes (and that agree on newline-ness) share a
// transition column.
func (d *determinizer) buildClasses() {
	if !d.cfg.ByteClasses {
		for b := 0; b < 256; b++ {
			d.classes[b] = uint8(b)
			d.reps = append(d.reps, byte(b))
		}
		d.alpha = 256
		return
	}
	var bound [257]bool
	bound[0] = true
	mark := func(lo, hi byte) {
		bound[lo] = true
		bound[int(hi)+1] = true
	}
	for _, n := range d.nfa.nodes {
		for _, e := range n.edges {
			mark(e.lo, e.hi)
		}
	}
	mark('\n', '\n')
	cls := -1
	for b := 0; b < 256; b++ {
		if bound[b] {
			cls++
			d.reps = append(d.reps, byte(b))
		}
		d.classes[b] = uint8(cls)
	}
	d.alpha = cls + 1
	d.cfg.Logger.Log("byte classes: %d", d.alpha)
}

// stateKey encodes a dstate for deduplication. The node order is significant:
// two sets with the same nodes in different priority order are different
// states.
func stateKey(set []int, ctx uint8, unanchored bool) string {
	buf := make([]byte, 0, 2+4*len(set))
	buf = append(buf, ctx)
	if unanchored {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	for _, id := range set {
		buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(buf)
}

// appendThread appends id at the lowest priority position unless it is
// already a live thread.
func appendThread(set []int, id int) []int {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	return append(set, id)
}
