package models

// Quiz is a static definition loaded once from the bundled catalog. It is
// never mutated; runtime state lives in the quiz session.
type Quiz struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Course      string     `json:"course"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Plan        Plan       `json:"plan"`
	Duration    int        `json:"duration"` // minutes
	Questions   []Question `json:"questions"`
}
