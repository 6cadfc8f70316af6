package tally

import (
	"cmp"
	"slices"
)

// Vote is a single ranked row for one motion. A nil Rank marks a row from an
// unranked motion type and is ignored.
type Vote struct {
	VoterID  int64
	OptionID int64
	Rank     *int
}

// Ballot lists candidate ids, most preferred first.
type Ballot []int64

// BuildBallots groups votes by voter and orders each voter's rows by rank.
// Voters without a ranked row produce no ballot. Ballots are returned in
// ascending voter id order.
func BuildBallots(votes []Vote) []Ballot {
	byVoter := make(map[int64][]Vote)
	for _, v := range votes {
		if v.Rank == nil {
			continue
		}
		byVoter[v.VoterID] = append(byVoter[v.VoterID], v)
	}

	voters := make([]int64, 0, len(byVoter))
	for id := range byVoter {
		voters = append(voters, id)
	}
	slices.Sort(voters)

	ballots := make([]Ballot, 0, len(voters))
	for _, id := range voters {
		ranked := byVoter[id]
		slices.SortStableFunc(ranked, func(a, b Vote) int {
			return cmp.Compare(*a.Rank, *b.Rank)
		})

		ballot := make(Ballot, len(ranked))
		for i, v := range ranked {
			ballot[i] = v.OptionID
		}
		ballots = append(ballots, ballot)
	}
	return ballots
}

func sortedUnique(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
