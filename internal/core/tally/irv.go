package tally

import "slices"

// Decision records how a round ended.
type Decision string

const (
	DecisionMajority         Decision = "majority"
	DecisionExhausted        Decision = "exhausted"
	DecisionLowest           Decision = "lowest"
	DecisionTieBreakRelative Decision = "tiebreak_relative"
	DecisionTieBreakAbsolute Decision = "tiebreak_absolute"
	DecisionFallbackLowestID Decision = "fallback_lowest_id"
)

type CandidateCount struct {
	Candidate int64 `json:"candidate"`
	Votes     int   `json:"votes"`
}

// Round is one counting pass. Counts holds every candidate active at the start
// of the round, zero counts included, in ascending candidate order. Candidate is
// the elected candidate for a majority round and the eliminated one otherwise.
type Round struct {
	Counts    []CandidateCount `json:"counts"`
	Total     int              `json:"total"`
	Decision  Decision         `json:"decision"`
	Candidate *int64           `json:"candidate,omitempty"`
}

// Outcome is the result of one instant-runoff run.
type Outcome struct {
	Winner  int64
	Elected bool
	Rounds  []Round
}

// Resolve runs elimination rounds over candidates until one holds a strict
// majority of the round's valid votes or is the only one left. It reports no
// winner when a round has no valid votes at all.
func Resolve(ballots []Ballot, candidates []int64) Outcome {
	active := sortedUnique(candidates)
	var out Outcome

	for len(active) > 0 {
		if len(active) == 1 {
			out.Winner, out.Elected = active[0], true
			return out
		}

		counts, total := countRound(ballots, active)
		round := Round{Counts: counts, Total: total}

		if total == 0 {
			round.Decision = DecisionExhausted
			out.Rounds = append(out.Rounds, round)
			return out
		}

		for _, c := range counts {
			// 2*v > total keeps an exact half from counting as a majority.
			if 2*c.Votes > total {
				winner := c.Candidate
				round.Decision, round.Candidate = DecisionMajority, &winner
				out.Rounds = append(out.Rounds, round)
				out.Winner, out.Elected = winner, true
				return out
			}
		}

		loser, decision := pickLoser(ballots, counts)
		round.Decision, round.Candidate = decision, &loser
		out.Rounds = append(out.Rounds, round)

		active = slices.DeleteFunc(active, func(c int64) bool { return c == loser })
	}
	return out
}

// countRound credits each ballot to its first still-active candidate. Ballots
// without one are left out of the total.
func countRound(ballots []Ballot, active []int64) ([]CandidateCount, int) {
	index := make(map[int64]int, len(active))
	counts := make([]CandidateCount, len(active))
	for i, c := range active {
		index[c] = i
		counts[i] = CandidateCount{Candidate: c}
	}

	total := 0
	for _, ballot := range ballots {
		for _, c := range ballot {
			if i, ok := index[c]; ok {
				counts[i].Votes++
				total++
				break
			}
		}
	}
	return counts, total
}

func pickLoser(ballots []Ballot, counts []CandidateCount) (int64, Decision) {
	low := counts[0].Votes
	for _, c := range counts[1:] {
		low = min(low, c.Votes)
	}

	var tied []int64
	for _, c := range counts {
		if c.Votes == low {
			tied = append(tied, c.Candidate)
		}
	}
	if len(tied) == 1 {
		return tied[0], DecisionLowest
	}

	if loser, decision, ok := BreakTie(ballots, tied); ok {
		return loser, decision
	}
	// Undecidable ties drop the smallest id.
	return tied[0], DecisionFallbackLowestID
}
