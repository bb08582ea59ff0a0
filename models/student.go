package models

type Student struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Plan     Plan   `json:"plan"`
	Password string `json:"-"`
	Token    string `json:"token,omitempty"`
}
