package models

type CallLink struct {
	Platform  string `json:"platform"`
	MeetingID string `json:"meeting_id"`
	Password  string `json:"password,omitempty"`
	JoinURL   string `json:"join_url"`
}

// ScheduledSession is a live lesson slot. It comes from the remote tutoring
// API when reachable, otherwise from the bundled fallback dataset.
type ScheduledSession struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Course      string    `json:"course"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Plan        Plan      `json:"plan"`
	CallLink    *CallLink `json:"call_link,omitempty"`
}
