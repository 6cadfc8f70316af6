package tally

import (
	"cmp"
	"slices"
)

type EntryView struct {
	Candidate  int64   `json:"candidate"`
	Label      string  `json:"label"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type RoundView struct {
	Number    int         `json:"number"`
	Total     int         `json:"total"`
	Entries   []EntryView `json:"entries"`
	Decision  Decision    `json:"decision"`
	Candidate *EntryView  `json:"candidate,omitempty"`
}

type SeatView struct {
	Seat   int         `json:"seat"`
	Winner EntryView   `json:"winner"`
	Rounds []RoundView `json:"rounds"`
}

type Report struct {
	Seats        int         `json:"seats"`
	Filled       int         `json:"filled"`
	TotalBallots int         `json:"total_ballots"`
	Winners      []EntryView `json:"winners"`
	SeatResults  []SeatView  `json:"seat_results"`
}

// Format shapes an election result for display. Entries within a round are
// ordered by votes, highest first, then by candidate id.
func Format(result ElectionResult, labels map[int64]string) Report {
	report := Report{
		Seats:        result.Seats,
		Filled:       len(result.Winners),
		TotalBallots: result.TotalBallots,
		Winners:      make([]EntryView, 0, len(result.Winners)),
		SeatResults:  make([]SeatView, 0, len(result.SeatResults)),
	}
	for _, w := range result.Winners {
		report.Winners = append(report.Winners, EntryView{Candidate: w, Label: labels[w]})
	}

	for _, seat := range result.SeatResults {
		view := SeatView{
			Seat:   seat.Seat,
			Winner: EntryView{Candidate: seat.Winner, Label: labels[seat.Winner]},
			Rounds: make([]RoundView, 0, len(seat.Rounds)),
		}
		for i, round := range seat.Rounds {
			view.Rounds = append(view.Rounds, formatRound(i+1, round, labels))
		}
		report.SeatResults = append(report.SeatResults, view)
	}
	return report
}

func formatRound(number int, round Round, labels map[int64]string) RoundView {
	view := RoundView{
		Number:   number,
		Total:    round.Total,
		Decision: round.Decision,
		Entries:  make([]EntryView, 0, len(round.Counts)),
	}
	for _, c := range round.Counts {
		percentage := 0.0
		if round.Total > 0 {
			percentage = (float64(c.Votes) / float64(round.Total)) * 100
		}
		view.Entries = append(view.Entries, EntryView{
			Candidate:  c.Candidate,
			Label:      labels[c.Candidate],
			Votes:      c.Votes,
			Percentage: percentage,
		})
	}
	slices.SortStableFunc(view.Entries, func(a, b EntryView) int {
		if a.Votes != b.Votes {
			return cmp.Compare(b.Votes, a.Votes)
		}
		return cmp.Compare(a.Candidate, b.Candidate)
	})

	if round.Candidate != nil {
		for _, e := range view.Entries {
			if e.Candidate == *round.Candidate {
				entry := e
				view.Candidate = &entry
				break
			}
		}
	}
	return view
}
