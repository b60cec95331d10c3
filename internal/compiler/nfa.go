package compiler

import (
	"errors"
	"regexp/syntax"
	"unicode"
)

// ErrUnsupportedAssert is returned for assertions the byte automaton cannot
// express. Word boundaries need one byte of lookahead at the match edge,
// which the four-operation automaton interface has no way to signal.
var ErrUnsupportedAssert = errors.New("word boundary assertions are not supported")

// nfaNode is one state of the byte-level NFA.
type nfaNode struct {
	// edges are byte-consuming transitions.
	edges []nfaEdge
	// eps are unconditional empty transitions, in priority order: for an
	// alternation, the preferred branch (Inst.Out) comes first. The
	// determinizer relies on this order.
	eps []int
	// asserts are empty transitions guarded by an empty-width condition.
	asserts []nfaAssert
	// match marks an accepting node.
	match bool
}

type nfaEdge struct {
	byteRange
	to int
}

type nfaAssert struct {
	op syntax.EmptyOp
	to int
}

// nfa is a byte-level Thompson NFA derived from a regexp/syntax program.
// Rune instructions are expanded into UTF-8 byte-range chains.
type nfa struct {
	nodes []nfaNode
	start int
}

// maximum number of runes worth enumerating one by one when a rune
// instruction still carries the fold-case flag.
const foldExpandLimit = 1000

// buildNFA converts a compiled syntax program into a byte NFA.
func buildNFA(prog *syntax.Prog) (*nfa, error) {
	n := &nfa{
		nodes: make([]nfaNode, len(prog.Inst)),
		start: int(prog.Start),
	}
	for pc := range prog.Inst {
		inst := &prog.Inst[pc]
		switch inst.Op {
		case syntax.InstAlt, syntax.InstAltMatch:
			n.nodes[pc].eps = append(n.nodes[pc].eps, int(inst.Out), int(inst.Arg))
		case syntax.InstCapture, syntax.InstNop:
			n.nodes[pc].eps = append(n.nodes[pc].eps, int(inst.Out))
		case syntax.InstEmptyWidth:
			op := syntax.EmptyOp(inst.Arg)
			if op&(syntax.EmptyWordBoundary|syntax.EmptyNoWordBoundary) != 0 {
				return nil, ErrUnsupportedAssert
			}
			n.nodes[pc].asserts = append(n.nodes[pc].asserts, nfaAssert{op: op, to: int(inst.Out)})
		case syntax.InstMatch:
			n.nodes[pc].match = true
		case syntax.InstFail:
			// no transitions
		case syntax.InstRune:
			n.addRuneRanges(pc, int(inst.Out), runeRanges(inst))
		case syntax.InstRune1:
			n.addRuneRanges(pc, int(inst.Out), [][2]rune{{inst.Rune[0], inst.Rune[0]}})
		case syntax.InstRuneAny:
			n.addRuneRanges(pc, int(inst.Out), [][2]rune{{0, unicode.MaxRune}})
		case syntax.InstRuneAnyNotNL:
			n.addRuneRanges(pc, int(inst.Out), [][2]rune{{0, '\n' - 1}, {'\n' + 1, unicode.MaxRune}})
		}
	}
	return n, nil
}

// runeRanges normalizes an InstRune's rune list into [lo, hi] pairs,
// expanding fold orbits when the instruction defers case folding to match
// time.
func runeRanges(inst *syntax.Inst) [][2]rune {
	runes := inst.Rune
	folded := syntax.Flags(inst.Arg)&syntax.FoldCase != 0

	var pairs [][2]rune
	if len(runes) == 1 {
		pairs = [][2]rune{{runes[0], runes[0]}}
	} else {
		for i := 0; i+1 < len(runes); i += 2 {
			pairs = append(pairs, [2]rune{runes[i], runes[i+1]})
		}
	}
	if !folded {
		return pairs
	}

	total := 0
	for _, p := range pairs {
		total += int(p[1]-p[0]) + 1
	}
	if total > foldExpandLimit {
		// A folded class this large was already expanded by the parser.
		return pairs
	}
	var out [][2]rune
	for _, p := range pairs {
		for r := p[0]; r <= p[1]; r++ {
			out = append(out, [2]rune{r, r})
			for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
				out = append(out, [2]rune{f, f})
			}
		}
	}
	return out
}

// addRuneRanges wires byte-range chains from node pc to node out covering the
// UTF-8 encodings of every rune range.
func (n *nfa) addRuneRanges(pc, out int, pairs [][2]rune) {
	for _, p := range pairs {
		for _, seq := range utf8Sequences(p[0], p[1]) {
			from := pc
			for i, br := range seq {
				to := out
				if i < len(seq)-1 {
					to = n.addNode()
				}
				n.nodes[from].edges = append(n.nodes[from].edges, nfaEdge{byteRange: br, to: to})
				from = to
			}
		}
	}
}

func (n *nfa) addNode() int {
	n.nodes = append(n.nodes, nfaNode{})
	return len(n.nodes) - 1
}
