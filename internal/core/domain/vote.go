package domain

// VoteRecord is one stored vote row. Rank is nil for motion types that are not ranked.
type VoteRecord struct {
	VoterID  int64 `json:"voter_id"`
	MotionID int64 `json:"motion_id"`
	OptionID int64 `json:"option_id"`
	Rank     *int  `json:"rank,omitempty"`
}

// MotionSnapshot is everything a tally needs, read once in a single transaction.
type MotionSnapshot struct {
	Meeting Meeting      `json:"meeting"`
	Motion  Motion       `json:"motion"`
	Options []Option     `json:"options"`
	Votes   []VoteRecord `json:"votes"`
}

func (s MotionSnapshot) OptionIDs() []int64 {
	ids := make([]int64, 0, len(s.Options))
	for _, opt := range s.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}

func (s MotionSnapshot) OptionLabels() map[int64]string {
	labels := make(map[int64]string, len(s.Options))
	for _, opt := range s.Options {
		labels[opt.ID] = opt.Text
	}
	return labels
}
