package hotsauce

import (
	"fmt"
	"regexp/syntax"

	"github.com/buffet/hotsauce/automaton"
	"github.com/buffet/hotsauce/internal/compiler"
)

// Options configures pattern compilation. The zero value is a case
// sensitive, single-line, byte-class-compressed automaton.
type Options struct {
	// CaseInsensitive makes letters match both cases.
	CaseInsensitive bool

	// MultiLine makes ^ and $ match at line boundaries instead of text
	// boundaries.
	MultiLine bool

	// DotMatchesNewLine makes . match \n as well.
	DotMatchesNewLine bool

	// Literal treats the pattern as a literal string.
	Literal bool

	// DisableByteClasses keeps the full 256-byte alphabet instead of
	// grouping bytes into equivalence classes. Mostly useful for
	// debugging; the compressed automaton behaves identically.
	DisableByteClasses bool

	// MaxStates caps determinization for pathological patterns.
	// Zero uses the compiler default.
	MaxStates int

	// Verbose logs compilation decisions to stderr.
	Verbose bool
}

func (o Options) syntaxFlags() syntax.Flags {
	flags := syntax.Perl
	if o.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	if o.MultiLine {
		flags &^= syntax.OneLine
	}
	if o.DotMatchesNewLine {
		flags |= syntax.DotNL
	}
	if o.Literal {
		flags |= syntax.Literal
	}
	return flags
}

// Regex drives a compiled automaton over byte sources. It holds no mutable
// state: one Regex may serve any number of concurrent searches, each of
// which exclusively owns its ByteSource for the duration of the call.
type Regex struct {
	a automaton.Automaton
}

// New compiles a pattern with default options.
func New(pattern string) (*Regex, error) {
	return Compile(pattern, Options{})
}

// MustNew is New but panics on error, for initialization of known-good
// patterns.
func MustNew(pattern string) *Regex {
	re, err := New(pattern)
	if err != nil {
		panic(fmt.Sprintf("hotsauce: MustNew(%q): %v", pattern, err))
	}
	return re
}

// Compile compiles a pattern with the given options.
func Compile(pattern string, opts Options) (*Regex, error) {
	d, err := compiler.Compile(compiler.Config{
		Pattern:     pattern,
		Flags:       opts.syntaxFlags(),
		ByteClasses: !opts.DisableByteClasses,
		MaxStates:   opts.MaxStates,
		Logger:      compiler.NewLogger(opts.Verbose),
	})
	if err != nil {
		return nil, err
	}
	return &Regex{a: d}, nil
}

// FromAutomaton wraps an externally built automaton. The automaton must
// satisfy the invariants documented on automaton.Automaton; in particular
// its unanchored start state must itself encode "a match may start at any
// later position", since the engine never rewinds consumed bytes.
func FromAutomaton(a automaton.Automaton) *Regex {
	return &Regex{a: a}
}

// Automaton returns the automaton the Regex drives.
func (r *Regex) Automaton() automaton.Automaton {
	return r.a
}

// Matches returns the lazy sequence of non-overlapping matches over src.
// The sequence owns src until it is abandoned or exhausted.
func (r *Regex) Matches(src ByteSource) *Matches {
	return &Matches{a: r.a, src: src}
}

// Find returns the first match in the given mode, pulling only as many
// bytes from src as needed to confirm or reject it. Offsets are relative to
// the position of src at the time of the call.
func (r *Regex) Find(src ByteSource, mode automaton.Mode) (Match, bool) {
	if mode == automaton.Unanchored {
		return r.Matches(src).Next()
	}
	return r.findAnchored(src, mode)
}

// findAnchored runs a single cursor from the mode's start state, extending
// the recorded end until the automaton dies or the source runs out. A dead
// state stops byte consumption immediately.
func (r *Regex) findAnchored(src ByteSource, mode automaton.Mode) (Match, bool) {
	st := newStepper(r.a, mode)
	if st.dead {
		return Match{}, false
	}
	end := -1
	if st.atMatch() {
		end = 0
	}
	pos := 0
	for {
		b, ok := src.NextByte()
		if !ok {
			break
		}
		out := st.advance(b)
		pos++
		if out == stepMatch {
			end = pos
		}
		if out == stepDead {
			break
		}
	}
	if end >= 0 {
		return Match{Start: 0, End: end}, true
	}
	return Match{}, false
}

// IsMatch reports whether src contains a match anywhere. It drives a single
// cursor from the unanchored start state and short-circuits on the first
// match state, consuming no further bytes.
func (r *Regex) IsMatch(src ByteSource) bool {
	st := newStepper(r.a, automaton.Unanchored)
	if st.dead {
		return false
	}
	if st.atMatch() {
		return true
	}
	for {
		b, ok := src.NextByte()
		if !ok {
			return false
		}
		switch st.advance(b) {
		case stepMatch:
			return true
		case stepDead:
			return false
		}
	}
}
