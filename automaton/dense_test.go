package automaton

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tinyTables is a two-state automaton over a one-class alphabet: state 1
// accepts and loops on every byte, state 0 is the sink.
func tinyTables() Tables {
	var t Tables
	t.AlphabetLen = 1
	t.Transitions = []State{0, 1}
	t.Flags = []uint8{0, FlagMatch}
	t.Starts = [NumModes]State{1, 1, 1, 1}
	return t
}

func TestFromTables(t *testing.T) {
	d := FromTables(tinyTables())
	if d.NumStates() != 2 {
		t.Errorf("NumStates = %d, want 2", d.NumStates())
	}
	if d.AlphabetLen() != 1 {
		t.Errorf("AlphabetLen = %d, want 1", d.AlphabetLen())
	}
	s := d.Start(Unanchored)
	if !d.IsMatch(s) || d.IsDead(s) {
		t.Fatalf("start state %d: IsMatch=%v IsDead=%v", s, d.IsMatch(s), d.IsDead(s))
	}
	if next := d.Next(s, 'x'); next != s {
		t.Errorf("Next(%d, 'x') = %d, want self-loop", s, next)
	}
	if !d.IsDead(d.Next(0, 'x')) {
		t.Error("dead state is not a sink")
	}
}

func TestStartUnknownModeFallsBack(t *testing.T) {
	tbl := tinyTables()
	tbl.Starts[Anchored] = 0
	d := FromTables(tbl)
	if got, want := d.Start(Mode(250)), d.Start(Unanchored); got != want {
		t.Errorf("Start(250) = %d, want unanchored start %d", got, want)
	}
}

func TestTablesRoundTrip(t *testing.T) {
	want := tinyTables()
	got := FromTables(want).Tables()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tables changed through FromTables (-want +got):\n%s", diff)
	}
}

// FromTables copies its input; mutating the argument afterwards must not
// reach the automaton.
func TestFromTablesCopies(t *testing.T) {
	tbl := tinyTables()
	d := FromTables(tbl)
	tbl.Transitions[1] = 0
	tbl.Flags[1] = 0
	if d.IsDead(d.Next(1, 'x')) || !d.IsMatch(1) {
		t.Error("automaton shares memory with the caller's tables")
	}
}

func TestFromTablesPanicsOnBadTables(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Tables)
	}{
		{"zero alphabet", func(t *Tables) { t.AlphabetLen = 0 }},
		{"transitions not a multiple of alphabet", func(t *Tables) { t.AlphabetLen = 3 }},
		{"flags length mismatch", func(t *Tables) { t.Flags = t.Flags[:1] }},
		{"start out of range", func(t *Tables) { t.Starts[Unanchored] = 9 }},
		{"class out of range", func(t *Tables) { t.Classes[7] = 3 }},
		{"transition out of range", func(t *Tables) { t.Transitions[0] = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := tinyTables()
			tt.mut(&tbl)
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("FromTables accepted inconsistent tables")
				}
				if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "automaton: bad tables:") {
					t.Fatalf("unexpected panic value %v", r)
				}
			}()
			FromTables(tbl)
		})
	}
}
