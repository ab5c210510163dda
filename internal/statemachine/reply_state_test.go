package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		from        ReplyState
		wantTo      ReplyState
		wantOutcome Outcome
	}{
		{Unanswered, Answered, OutcomePosted},
		{Answered, Answered, OutcomeEdited},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			tr, err := Respond(tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, tr.To)
			assert.Equal(t, tt.wantOutcome, tr.Outcome)
		})
	}

	_, err := Respond(ReplyState("archived"))
	assert.Error(t, err)
}

func TestCanTransition_NeverBackToUnanswered(t *testing.T) {
	assert.NoError(t, CanTransition(Unanswered, Answered))
	assert.NoError(t, CanTransition(Answered, Answered))
	assert.Error(t, CanTransition(Answered, Unanswered))
	assert.Error(t, CanTransition(Unanswered, Unanswered))

	for _, tr := range Transitions() {
		assert.NotEqual(t, Unanswered, tr.To)
	}
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, Unanswered, StateOf(false))
	assert.Equal(t, Answered, StateOf(true))
	assert.True(t, Answered.IsReplied())
	assert.False(t, Unanswered.IsReplied())
}

func TestTransitions_ReturnsCopy(t *testing.T) {
	got := Transitions()
	got[0].Outcome = "mutated"
	assert.Equal(t, OutcomePosted, Transitions()[0].Outcome)
}
