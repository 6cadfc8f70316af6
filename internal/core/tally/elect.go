package tally

import "slices"

type SeatResult struct {
	Seat   int     `json:"seat"`
	Winner int64   `json:"winner"`
	Rounds []Round `json:"rounds"`
}

type ElectionResult struct {
	Seats        int          `json:"seats"`
	SeatResults  []SeatResult `json:"seat_results"`
	TotalBallots int          `json:"total_ballots"`
	Winners      []int64      `json:"winners"`
}

// Elect fills up to seats winners, one instant-runoff run per seat. Each run
// sees the same ballots; only earlier winners are removed from the candidates.
// Filling fewer seats than requested is a normal outcome.
func Elect(candidates []int64, ballots []Ballot, seats int) ElectionResult {
	if seats < 1 {
		seats = 1
	}
	result := ElectionResult{
		Seats:        seats,
		SeatResults:  []SeatResult{},
		TotalBallots: len(ballots),
		Winners:      []int64{},
	}
	if len(ballots) == 0 {
		return result
	}

	pool := sortedUnique(candidates)
	for seat := 1; seat <= seats; seat++ {
		active := slices.DeleteFunc(slices.Clone(pool), func(c int64) bool {
			return slices.Contains(result.Winners, c)
		})
		if len(active) == 0 {
			break
		}

		outcome := Resolve(ballots, active)
		if !outcome.Elected {
			break
		}

		rounds := outcome.Rounds
		if rounds == nil {
			rounds = []Round{}
		}
		result.Winners = append(result.Winners, outcome.Winner)
		result.SeatResults = append(result.SeatResults, SeatResult{
			Seat:   seat,
			Winner: outcome.Winner,
			Rounds: rounds,
		})
	}
	return result
}
