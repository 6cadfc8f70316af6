package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ballots := []Ballot{{1, 2}, {1, 2}, {2, 3}, {3, 2}}
	result := Elect([]int64{1, 2, 3}, ballots, 1)
	labels := map[int64]string{1: "Alice", 2: "Bob", 3: "Carol"}

	report := Format(result, labels)

	assert.Equal(t, 1, report.Seats)
	assert.Equal(t, 1, report.Filled)
	assert.Equal(t, 4, report.TotalBallots)
	require.Len(t, report.Winners, 1)
	assert.Equal(t, "Bob", report.Winners[0].Label)

	require.Len(t, report.SeatResults, 1)
	rounds := report.SeatResults[0].Rounds
	require.Len(t, rounds, 2)

	first := rounds[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, []EntryView{
		{Candidate: 1, Label: "Alice", Votes: 2, Percentage: 50},
		{Candidate: 2, Label: "Bob", Votes: 1, Percentage: 25},
		{Candidate: 3, Label: "Carol", Votes: 1, Percentage: 25},
	}, first.Entries)
	require.NotNil(t, first.Candidate)
	assert.Equal(t, "Carol", first.Candidate.Label)
	assert.Equal(t, DecisionTieBreakRelative, first.Decision)
}

func TestFormat_ZeroTotalRound(t *testing.T) {
	round := Round{Counts: []CandidateCount{{1, 0}, {2, 0}}, Decision: DecisionExhausted}

	view := formatRound(1, round, nil)

	assert.Nil(t, view.Candidate)
	for _, e := range view.Entries {
		assert.Zero(t, e.Percentage)
	}
}
