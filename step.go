package hotsauce

import "github.com/buffet/hotsauce/automaton"

// outcome is the result of advancing a stepper by one byte.
type outcome uint8

const (
	// stepContinue: the new state is neither match nor dead.
	stepContinue outcome = iota
	// stepMatch: the new state is a match state; the match ends at the
	// position after the byte just consumed.
	stepMatch
	// stepDead: no further bytes can produce a match from here. The
	// stepper must not be advanced again.
	stepDead
)

// stepper owns one automaton state and advances it exactly one byte at a
// time, with no lookahead.
type stepper struct {
	a     automaton.Automaton
	state automaton.State
	dead  bool
}

func newStepper(a automaton.Automaton, mode automaton.Mode) stepper {
	s := stepper{a: a, state: a.Start(mode)}
	s.dead = a.IsDead(s.state)
	return s
}

// advance consumes one byte. Advancing a dead stepper is a contract
// violation by the caller, distinct from "search found nothing", and panics.
func (s *stepper) advance(b byte) outcome {
	if s.dead {
		panic("hotsauce: stepper advanced past dead state")
	}
	s.state = s.a.Next(s.state, b)
	switch {
	case s.a.IsDead(s.state):
		s.dead = true
		return stepDead
	case s.a.IsMatch(s.state):
		return stepMatch
	default:
		return stepContinue
	}
}

// atMatch reports whether the current state, as is, confirms a match. Used
// at cursor creation (empty match at the start position) and at source
// exhaustion, where it is the only way to resolve the final state.
func (s *stepper) atMatch() bool {
	return !s.dead && s.a.IsMatch(s.state)
}
