// Package client talks to the remote tutoring API. Every failure, transport
// or HTTP, is reported as a *NetworkError so callers can fall back to the
// bundled dataset.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"deutschportal/models"
)

// NetworkError marks the API as unreachable or unusable. It is never fatal:
// the dashboard recovers with local data and a non-blocking notice.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("tutoring api %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		PlanType string `json:"plan_type"`
	} `json:"user"`
	Token string `json:"token"`
}

// rawSession accepts both field spellings the API has served over time.
type rawSession struct {
	ID          uint   `json:"id"`
	Titre       string `json:"titre"`
	Title       string `json:"title"`
	Cours       string `json:"cours"`
	Course      string `json:"course"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Plan        string `json:"plan"`
	CallLink    *struct {
		Platform        string `json:"platform"`
		MeetingID       string `json:"meeting_id"`
		MeetingPassword string `json:"meeting_password"`
		JoinURL         string `json:"join_url"`
	} `json:"call_link"`
}

func (r rawSession) toModel() models.ScheduledSession {
	session := models.ScheduledSession{
		ID:          r.ID,
		Title:       r.Titre,
		Course:      r.Cours,
		Date:        r.Date,
		Description: r.Description,
		Plan:        models.Plan(r.Plan),
	}
	if session.Title == "" {
		session.Title = r.Title
	}
	if session.Course == "" {
		session.Course = r.Course
	}
	if r.CallLink != nil {
		platform := r.CallLink.Platform
		if platform == "" {
			platform = "Zoom"
		}
		session.CallLink = &models.CallLink{
			Platform:  platform,
			MeetingID: r.CallLink.MeetingID,
			Password:  r.CallLink.MeetingPassword,
			JoinURL:   r.CallLink.JoinURL,
		}
	}
	return session
}

// Login authenticates against the remote API. A reachable API that rejects
// the credentials is not a network error; the response carries success=false
// and a message for the login form.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Op: "login", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	// 401 from the API still carries a success=false JSON body; treat every
	// other non-2xx status as the API being unusable.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnauthorized {
		return nil, &NetworkError{Op: "login", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, &NetworkError{Op: "login", Err: err}
	}
	return &loginResp, nil
}

// GetSessions fetches the scheduled sessions, normalized to the portal model.
func (c *Client) GetSessions(ctx context.Context) ([]models.ScheduledSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sessions", nil)
	if err != nil {
		return nil, &NetworkError{Op: "sessions", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "sessions", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: "sessions", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var raw []rawSession
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &NetworkError{Op: "sessions", Err: err}
	}

	sessions := make([]models.ScheduledSession, 0, len(raw))
	for _, r := range raw {
		sessions = append(sessions, r.toModel())
	}
	return sessions, nil
}

// GetCallLink fetches the call link for a single session.
func (c *Client) GetCallLink(ctx context.Context, sessionID uint) (*models.CallLink, error) {
	url := fmt.Sprintf("%s/api/call-link/%d", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: "call-link", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "call-link", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: "call-link", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var link models.CallLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, &NetworkError{Op: "call-link", Err: err}
	}
	return &link, nil
}
