package statemachine

import (
	"fmt"
	"strings"
)

// ReplyState is the owner-reply status of a review.
type ReplyState string

const (
	Unanswered ReplyState = "unanswered"
	Answered   ReplyState = "answered"
)

// Outcome is what a response call reports back to the owner.
type Outcome string

const (
	OutcomePosted Outcome = "posted"
	OutcomeEdited Outcome = "edited"
)

// Transition is one edge of the reply state machine, taken by a response call.
type Transition struct {
	From    ReplyState `json:"from"`
	To      ReplyState `json:"to"`
	Outcome Outcome    `json:"outcome"`
}

// The whole machine. Nothing leads back to Unanswered.
var transitions = []Transition{
	{From: Unanswered, To: Answered, Outcome: OutcomePosted},
	{From: Answered, To: Answered, Outcome: OutcomeEdited},
}

var byFrom = func() map[ReplyState]Transition {
	m := make(map[ReplyState]Transition, len(transitions))
	for _, t := range transitions {
		m[t.From] = t
	}
	return m
}()

// StateOf maps the stored is_replied flag to a state.
func StateOf(isReplied bool) ReplyState {
	if isReplied {
		return Answered
	}
	return Unanswered
}

// IsReplied maps a state back to the stored flag.
func (s ReplyState) IsReplied() bool {
	return s == Answered
}

// Respond returns the transition a response takes from state from.
func Respond(from ReplyState) (Transition, error) {
	t, ok := byFrom[from]
	if !ok {
		return Transition{}, fmt.Errorf("no response transition from %q", from)
	}
	return t, nil
}

// CanTransition checks whether from -> to is an edge of the machine.
func CanTransition(from, to ReplyState) error {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return nil
		}
	}
	return fmt.Errorf("invalid transition: %s -> %s is not allowed; valid targets from %s: %s",
		from, to, from, describeValidFrom(from))
}

// ValidTransitionsFrom returns the states reachable from s in one step.
func ValidTransitionsFrom(s ReplyState) []ReplyState {
	var nexts []ReplyState
	for _, t := range transitions {
		if t.From == s {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// Transitions returns a copy of the transition table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

func describeValidFrom(s ReplyState) string {
	nexts := ValidTransitionsFrom(s)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, n := range nexts {
		names[i] = string(n)
	}
	return strings.Join(names, ", ")
}
