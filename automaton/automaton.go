// Package automaton defines the deterministic byte-automaton contract the
// streaming engine drives, plus a dense transition-table implementation.
//
// The engine never assumes anything about state encoding beyond these four
// operations: any deterministic automaton with a total transition function
// over bytes can be plugged in.
package automaton

// State identifies an automaton state. The numeric value is an internal
// detail of the implementation behind the Automaton interface; callers must
// only pass it back unchanged.
type State uint32

// Mode selects which start state a search begins from. Anchoring and the
// position of the start within the haystack are both part of the mode, so
// that begin-of-text and begin-of-line assertions determinize into the
// automaton instead of needing engine-side checks.
type Mode uint8

const (
	// Unanchored starts a search whose match may begin at any position of
	// the remaining input. The start state itself encodes "any suffix may
	// start a match here"; the engine never rewinds consumed bytes.
	Unanchored Mode = iota

	// Anchored starts a search whose match must begin right here, at the
	// beginning of the haystack.
	Anchored

	// AnchoredMid is Anchored for a position in the middle of the
	// haystack, where begin-of-text assertions cannot hold.
	AnchoredMid

	// AnchoredNewline is AnchoredMid for a position immediately after a
	// newline byte, where begin-of-line assertions hold.
	AnchoredNewline

	// NumModes is the number of start modes.
	NumModes = iota
)

func (m Mode) String() string {
	switch m {
	case Anchored:
		return "anchored"
	case AnchoredMid:
		return "anchored-mid"
	case AnchoredNewline:
		return "anchored-newline"
	default:
		return "unanchored"
	}
}

// Automaton is the full contract the streaming engine requires from a
// pattern-compilation subsystem.
//
// Invariants:
//   - Next is total: every (state, byte) pair has a defined successor.
//   - The automaton is read-only; it may be shared by concurrent searches.
//   - A dead state is a sink: no sequence of bytes leads out of it.
//
// Known gap, by contract: a zero-width match that is only confirmed by the
// *absence* of a following byte (an end-of-text assertion) cannot be
// expressed here. There is no end-of-input transition, so IsMatch can only
// classify states reached by consuming bytes. Patterns relying on such
// assertions observe no match; see the hotsauce package documentation.
type Automaton interface {
	// Start returns the state a search in the given mode begins from.
	Start(mode Mode) State

	// Next returns the successor of state after consuming b.
	Next(state State, b byte) State

	// IsMatch reports whether state is a match state. A match state is
	// entered by consuming the final byte of a match, so the match end
	// offset is the position after that byte.
	IsMatch(state State) bool

	// IsDead reports whether state is a dead state, from which no further
	// input can produce a match.
	IsDead(state State) bool
}
