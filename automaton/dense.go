package automaton

import "fmt"

// deadState is the sink state of a Dense automaton. Row 0 of the transition
// table points every byte class back at itself.
const deadState State = 0

// FlagMatch marks a state as a match state in Tables.Flags.
const FlagMatch uint8 = 1 << 0

// Tables is the raw representation of a Dense automaton. It is what the
// pattern compiler produces and what the code generator embeds into
// generated source files.
type Tables struct {
	// AlphabetLen is the number of byte equivalence classes.
	AlphabetLen int

	// Classes maps each input byte to its equivalence class,
	// 0 <= Classes[b] < AlphabetLen.
	Classes [256]uint8

	// Transitions holds one row of AlphabetLen successors per state:
	// Transitions[int(s)*AlphabetLen+int(Classes[b])] is Next(s, b).
	// Row 0 is the dead sink.
	Transitions []State

	// Flags holds one flag byte per state (FlagMatch).
	Flags []uint8

	// Starts holds one start state per Mode.
	Starts [NumModes]State
}

func (t Tables) validate() error {
	if t.AlphabetLen < 1 || t.AlphabetLen > 256 {
		return fmt.Errorf("alphabet length %d out of range", t.AlphabetLen)
	}
	if len(t.Transitions)%t.AlphabetLen != 0 {
		return fmt.Errorf("transition table length %d is not a multiple of alphabet length %d", len(t.Transitions), t.AlphabetLen)
	}
	n := len(t.Transitions) / t.AlphabetLen
	if len(t.Flags) != n {
		return fmt.Errorf("have flags for %d states, transitions for %d", len(t.Flags), n)
	}
	for mode, s := range t.Starts {
		if int(s) >= n {
			return fmt.Errorf("%s start state %d out of range (%d states)", Mode(mode), s, n)
		}
	}
	for b := 0; b < 256; b++ {
		if int(t.Classes[b]) >= t.AlphabetLen {
			return fmt.Errorf("byte %#x mapped to class %d >= alphabet length %d", b, t.Classes[b], t.AlphabetLen)
		}
	}
	for i, s := range t.Transitions {
		if int(s)*t.AlphabetLen >= len(t.Transitions) {
			return fmt.Errorf("transition %d targets state %d out of range", i, s)
		}
	}
	return nil
}

// Dense is a deterministic automaton backed by a dense transition table with
// a byte-class-compressed alphabet, the layout used by generated automatons.
// State 0 is the dead sink. Dense is immutable after construction and safe
// for concurrent use.
type Dense struct {
	t Tables
}

// FromTables builds a Dense automaton from raw tables. It panics if the
// tables are structurally inconsistent: the tables are produced by the
// compiler or embedded by generated code, so an inconsistency is a bug, not
// an input error.
func FromTables(t Tables) *Dense {
	if err := t.validate(); err != nil {
		panic("automaton: bad tables: " + err.Error())
	}
	trans := make([]State, len(t.Transitions))
	copy(trans, t.Transitions)
	flags := make([]uint8, len(t.Flags))
	copy(flags, t.Flags)
	t.Transitions = trans
	t.Flags = flags
	return &Dense{t: t}
}

// Tables returns a copy of the automaton's raw tables.
func (d *Dense) Tables() Tables {
	t := d.t
	t.Transitions = append([]State(nil), d.t.Transitions...)
	t.Flags = append([]uint8(nil), d.t.Flags...)
	return t
}

// NumStates returns the number of states, including the dead sink.
func (d *Dense) NumStates() int {
	return len(d.t.Flags)
}

// AlphabetLen returns the number of byte equivalence classes.
func (d *Dense) AlphabetLen() int {
	return d.t.AlphabetLen
}

// Start implements Automaton. Unknown modes fall back to Unanchored.
func (d *Dense) Start(mode Mode) State {
	if int(mode) >= NumModes {
		mode = Unanchored
	}
	return d.t.Starts[mode]
}

// Next implements Automaton.
func (d *Dense) Next(state State, b byte) State {
	return d.t.Transitions[int(state)*d.t.AlphabetLen+int(d.t.Classes[b])]
}

// IsMatch implements Automaton.
func (d *Dense) IsMatch(state State) bool {
	return d.t.Flags[state]&FlagMatch != 0
}

// IsDead implements Automaton.
func (d *Dense) IsDead(state State) bool {
	return state == deadState
}

var _ Automaton = (*Dense)(nil)
