package models

type Question struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	// Don't include the correct answer while a quiz is in progress
	Answer      string `json:"-"`
	Explanation string `json:"-"`
}
