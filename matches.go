package hotsauce

import "github.com/buffet/hotsauce/automaton"

// Match is a pair of byte offsets into the logical consumed stream,
// Start <= End, relative to the beginning of the search. A Match is a value:
// it references no buffer, because the engine keeps none.
type Match struct {
	Start int
	End   int
}

// Empty reports whether the match is zero-width.
func (m Match) Empty() bool { return m.Start == m.End }

// cursor is one candidate match in flight: a stepper plus the offset the
// candidate starts at and the best end recorded so far (-1 = none yet).
// A dead cursor with a recorded end is a confirmed candidate waiting for
// every earlier-starting candidate to resolve.
type cursor struct {
	step  stepper
	start int
	end   int
}

// Matches is a lazy sequence of non-overlapping matches over a single
// ByteSource. It is finite if the source is, and not restartable: each Next
// resumes exactly where the previous one left off, and offsets accumulate
// across calls.
//
// The engine cannot rewind, so it runs one anchored cursor per candidate
// start offset and advances them all in lockstep on each byte; the leftmost
// candidate to be confirmed wins. Ceasing to call Next halts all byte
// consumption; there is nothing else to clean up.
type Matches struct {
	a   automaton.Automaton
	src ByteSource

	pos       int // bytes consumed so far
	lastByte  byte
	cursors   []cursor // ordered by start offset
	exhausted bool
	done      bool
}

// Next returns the next match, or ok == false when the sequence is over
// (no further match confirmed, or the source is exhausted).
//
// Forward progress: after an empty match the engine has necessarily consumed
// one byte past it already, so the sequence can never stall on empty matches.
// The empty match at the one-past-last position of a source is not detected;
// see the package documentation.
func (it *Matches) Next() (Match, bool) {
	if it.done {
		return Match{}, false
	}
	if it.exhausted {
		return it.emitExhausted()
	}
	if m, ok := it.emitFront(); ok {
		return m, true
	}
	for {
		b, ok := it.src.NextByte()
		if !ok {
			it.exhausted = true
			return it.emitExhausted()
		}
		it.stepAll(b)
		if m, ok := it.emitFront(); ok {
			return m, true
		}
	}
}

// stepAll spawns a candidate cursor at the current position and advances
// every cursor by b. Dead cursors that never recorded an end are discarded;
// dead cursors with an end are kept as confirmed candidates.
func (it *Matches) stepAll(b byte) {
	mode := automaton.AnchoredMid
	if it.pos == 0 {
		mode = automaton.Anchored
	} else if it.lastByte == '\n' {
		mode = automaton.AnchoredNewline
	}
	if st := newStepper(it.a, mode); !st.dead {
		c := cursor{step: st, start: it.pos, end: -1}
		if st.atMatch() {
			// Empty match at the spawn position.
			c.end = it.pos
		}
		it.cursors = append(it.cursors, c)
	}

	keep := it.cursors[:0]
	for _, c := range it.cursors {
		if !c.step.dead {
			switch c.step.advance(b) {
			case stepMatch:
				c.end = it.pos + 1
			case stepDead:
				if c.end < 0 {
					continue
				}
			}
		}
		keep = append(keep, c)
	}
	it.cursors = keep
	it.lastByte = b
	it.pos++
}

// emitFront emits the front (earliest-start) cursor if it is confirmed and
// can no longer extend. Later cursors never emit first: leftmost wins, so
// they wait until every earlier candidate has resolved.
func (it *Matches) emitFront() (Match, bool) {
	if len(it.cursors) == 0 {
		return Match{}, false
	}
	if c := it.cursors[0]; c.step.dead && c.end >= 0 {
		return it.emitAt(0), true
	}
	return Match{}, false
}

// emitExhausted resolves the end-of-source boundary: cursors sitting in a
// match state had their end recorded when they entered it, so the leftmost
// cursor with a recorded end is the final answer for this call. Cursors
// without one can never be confirmed and are dropped.
func (it *Matches) emitExhausted() (Match, bool) {
	keep := it.cursors[:0]
	for _, c := range it.cursors {
		if c.end >= 0 {
			keep = append(keep, c)
		}
	}
	it.cursors = keep
	if len(it.cursors) > 0 {
		return it.emitAt(0), true
	}
	it.done = true
	return Match{}, false
}

// emitAt returns cursor i's match and discards every cursor overlapping it,
// keeping the sequence non-overlapping across calls.
func (it *Matches) emitAt(i int) Match {
	c := it.cursors[i]
	m := Match{Start: c.start, End: c.end}
	keep := make([]cursor, 0, len(it.cursors))
	for j, o := range it.cursors {
		if j == i {
			continue
		}
		if o.start >= m.End {
			keep = append(keep, o)
		}
	}
	it.cursors = keep
	return m
}
