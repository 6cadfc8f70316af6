package tally

import "slices"

// BreakTie picks which of the tied candidates to eliminate.
//
// The relative stage looks only at how the tied candidates are ordered among
// themselves on each ballot: level by level, the candidate placed there least
// often loses. When several share the minimum, the search restarts on that
// smaller group. If no level separates the group, the absolute stage repeats the
// search on raw ballot positions, skipping levels where none of the group
// appears.
//
// ok is false when neither stage separates the group.
func BreakTie(ballots []Ballot, tied []int64) (loser int64, decision Decision, ok bool) {
	group := sortedUnique(tied)
	if len(group) < 2 {
		return 0, "", false
	}

	group, ok = narrowGroup(group, func(set []int64) []int64 {
		return narrowAtLevels(filterBallots(ballots, set), set, false)
	})
	if ok {
		return group[0], DecisionTieBreakRelative, true
	}

	group, ok = narrowGroup(group, func(set []int64) []int64 {
		return narrowAtLevels(ballots, set, true)
	})
	if ok {
		return group[0], DecisionTieBreakAbsolute, true
	}
	return 0, "", false
}

// narrowGroup applies step until one candidate remains or step stops making
// progress. Every successful step shrinks the group, so the loop runs at most
// len(group)-1 times.
func narrowGroup(group []int64, step func([]int64) []int64) ([]int64, bool) {
	for len(group) > 1 {
		next := step(group)
		if next == nil {
			return group, false
		}
		group = next
	}
	return group, true
}

// narrowAtLevels walks ballot positions from the top and returns the first
// minimum-count subset that is smaller than set, or nil.
func narrowAtLevels(ballots []Ballot, set []int64, skipEmpty bool) []int64 {
	depth := 0
	for _, b := range ballots {
		depth = max(depth, len(b))
	}

	for pos := 0; pos < depth; pos++ {
		counts := positionCounts(ballots, set, pos)
		if skipEmpty && slices.Max(counts) == 0 {
			continue
		}
		if subset := minimumSubset(set, counts); len(subset) < len(set) {
			return subset
		}
	}
	return nil
}

func positionCounts(ballots []Ballot, set []int64, pos int) []int {
	counts := make([]int, len(set))
	for _, b := range ballots {
		if pos >= len(b) {
			continue
		}
		if i := slices.Index(set, b[pos]); i >= 0 {
			counts[i]++
		}
	}
	return counts
}

func minimumSubset(set []int64, counts []int) []int64 {
	low := slices.Min(counts)
	var subset []int64
	for i, c := range set {
		if counts[i] == low {
			subset = append(subset, c)
		}
	}
	return subset
}

// filterBallots keeps only entries for candidates in set, preserving order.
// Ballots left empty are dropped.
func filterBallots(ballots []Ballot, set []int64) []Ballot {
	filtered := make([]Ballot, 0, len(ballots))
	for _, b := range ballots {
		var sub Ballot
		for _, c := range b {
			if slices.Contains(set, c) {
				sub = append(sub, c)
			}
		}
		if len(sub) > 0 {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}
