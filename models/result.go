package models

import "time"

// QuizResult is the persisted record of one quiz attempt. The session that
// produced it is discarded; only results survive in the student's history.
type QuizResult struct {
	QuizID      uint            `json:"quiz_id"`
	Title       string          `json:"title"`
	CompletedAt time.Time       `json:"completed_at"`
	Correct     int             `json:"correct"`
	Total       int             `json:"total"`
	Percentage  int             `json:"percentage"`
	Answers     map[uint]string `json:"answers"`
}
