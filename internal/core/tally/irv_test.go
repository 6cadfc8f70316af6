package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	candA int64 = 1
	candB int64 = 2
	candC int64 = 3
)

func TestResolve_MajorityInFirstRound(t *testing.T) {
	ballots := []Ballot{{candA}, {candA}, {candA}, {candB}, {candC}}

	out := Resolve(ballots, []int64{candA, candB, candC})

	require.True(t, out.Elected)
	assert.Equal(t, candA, out.Winner)
	require.Len(t, out.Rounds, 1)
	assert.Equal(t, DecisionMajority, out.Rounds[0].Decision)
	assert.Equal(t, 5, out.Rounds[0].Total)
	assert.Equal(t, []CandidateCount{{candA, 3}, {candB, 1}, {candC, 1}}, out.Rounds[0].Counts)
}

func TestResolve_SingleCandidateWinsWithoutRounds(t *testing.T) {
	out := Resolve([]Ballot{{candB}}, []int64{candA})

	require.True(t, out.Elected)
	assert.Equal(t, candA, out.Winner)
	assert.Empty(t, out.Rounds)
}

func TestResolve_EliminationSequence(t *testing.T) {
	ballots := []Ballot{{candA, candB}, {candA, candB}, {candB, candC}, {candC, candB}}

	out := Resolve(ballots, []int64{candA, candB, candC})

	require.True(t, out.Elected)
	assert.Equal(t, candB, out.Winner)
	require.Len(t, out.Rounds, 2)

	first := out.Rounds[0]
	assert.Equal(t, []CandidateCount{{candA, 2}, {candB, 1}, {candC, 1}}, first.Counts)
	assert.Equal(t, DecisionTieBreakRelative, first.Decision)
	require.NotNil(t, first.Candidate)
	assert.Equal(t, candC, *first.Candidate)

	second := out.Rounds[1]
	assert.Equal(t, []CandidateCount{{candA, 2}, {candB, 2}}, second.Counts)
	assert.Equal(t, DecisionTieBreakRelative, second.Decision)
	assert.Equal(t, candA, *second.Candidate)
}

func TestResolve_ExactHalfIsNotMajority(t *testing.T) {
	ballots := []Ballot{{candA}, {candA}, {candB}, {candC}}

	out := Resolve(ballots, []int64{candA, candB, candC})

	require.True(t, out.Elected)
	assert.Equal(t, candA, out.Winner)
	require.Len(t, out.Rounds, 2)
	assert.Equal(t, DecisionFallbackLowestID, out.Rounds[0].Decision)
	assert.Equal(t, candB, *out.Rounds[0].Candidate)
	assert.Equal(t, DecisionMajority, out.Rounds[1].Decision)
	assert.Equal(t, []CandidateCount{{candA, 2}, {candC, 1}}, out.Rounds[1].Counts)
}

func TestResolve_UniqueLowestEliminated(t *testing.T) {
	ballots := []Ballot{{candA}, {candA}, {candB}, {candB}, {candC, candB}}

	out := Resolve(ballots, []int64{candA, candB, candC})

	require.True(t, out.Elected)
	assert.Equal(t, candB, out.Winner)
	require.Len(t, out.Rounds, 2)
	assert.Equal(t, DecisionLowest, out.Rounds[0].Decision)
	assert.Equal(t, candC, *out.Rounds[0].Candidate)
	assert.Equal(t, []CandidateCount{{candA, 2}, {candB, 3}}, out.Rounds[1].Counts)
}

func TestResolve_NoValidVotes(t *testing.T) {
	out := Resolve([]Ballot{{99}, {98, 97}}, []int64{candA, candB})

	assert.False(t, out.Elected)
	require.Len(t, out.Rounds, 1)
	assert.Equal(t, DecisionExhausted, out.Rounds[0].Decision)
	assert.Equal(t, 0, out.Rounds[0].Total)
	assert.Equal(t, []CandidateCount{{candA, 0}, {candB, 0}}, out.Rounds[0].Counts)
	assert.Nil(t, out.Rounds[0].Candidate)
}

func TestResolve_ExhaustedBallotsLeaveTheTotal(t *testing.T) {
	ballots := []Ballot{{candA}, {candA}, {candA}, {candB}, {candB}, {candC}}

	out := Resolve(ballots, []int64{candA, candB, candC})

	require.True(t, out.Elected)
	assert.Equal(t, candA, out.Winner)
	require.Len(t, out.Rounds, 2)
	assert.Equal(t, DecisionLowest, out.Rounds[0].Decision)
	assert.Equal(t, candC, *out.Rounds[0].Candidate)
	assert.Equal(t, 6, out.Rounds[0].Total)
	assert.Equal(t, 5, out.Rounds[1].Total)
	assert.Equal(t, DecisionMajority, out.Rounds[1].Decision)
}

func TestResolve_RoundsCoverActiveCandidates(t *testing.T) {
	ballots := []Ballot{{4, 2}, {3}, {2, 1}, {1, 4}, {4}, {3, 2}}
	candidates := []int64{4, 3, 2, 1}

	out := Resolve(ballots, candidates)

	active := []int64{1, 2, 3, 4}
	for _, round := range out.Rounds {
		got := make([]int64, 0, len(round.Counts))
		for _, c := range round.Counts {
			got = append(got, c.Candidate)
		}
		assert.Equal(t, active, got)
		if round.Decision != DecisionMajority && round.Candidate != nil {
			eliminated := *round.Candidate
			next := active[:0:0]
			for _, c := range active {
				if c != eliminated {
					next = append(next, c)
				}
			}
			active = next
		}
	}
	assert.LessOrEqual(t, len(out.Rounds), len(candidates))
}
