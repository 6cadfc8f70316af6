package domain

type MotionType string

const (
	MotionTypeYesNo      MotionType = "YES_NO"
	MotionTypeCandidate  MotionType = "CANDIDATE"
	MotionTypePreference MotionType = "PREFERENCE"
	MotionTypeScore      MotionType = "SCORE"
	MotionTypeCumulative MotionType = "CUMULATIVE"
)

type MotionStatus string

const (
	MotionStatusDraft  MotionStatus = "DRAFT"
	MotionStatusOpen   MotionStatus = "OPEN"
	MotionStatusClosed MotionStatus = "CLOSED"
)

type Meeting struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Motion struct {
	ID         int64        `json:"id"`
	MeetingID  int64        `json:"meeting_id"`
	Title      string       `json:"title"`
	Type       MotionType   `json:"type"`
	Status     MotionStatus `json:"status"`
	NumWinners *int         `json:"num_winners,omitempty"`
}

// Seats returns the number of winners the motion asks for, defaulting to one.
func (m Motion) Seats() int {
	if m.NumWinners == nil || *m.NumWinners < 1 {
		return 1
	}
	return *m.NumWinners
}

type Option struct {
	ID       int64  `json:"id"`
	MotionID int64  `json:"motion_id"`
	Text     string `json:"text"`
}
