package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"deutschportal/client"
	"deutschportal/data"
	"deutschportal/models"
	"deutschportal/store"
)

const (
	userKey  = "deutsch_user"
	tokenKey = "deutsch_token"
)

// ErrInvalidCredentials covers both unknown users and wrong passwords. It is
// surfaced as an inline login-form message, never a fatal failure.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	api       *client.Client
	store     store.Store
	jwtSecret string
}

func NewAuthService(api *client.Client, st store.Store, jwtSecret string) *AuthService {
	return &AuthService{
		api:       api,
		store:     st,
		jwtSecret: jwtSecret,
	}
}

type LoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Student  models.Student `json:"student"`
	Token    string         `json:"token"`
	Fallback bool           `json:"fallback"`
}

// Login authenticates against the remote API first and falls back to the
// bundled student list when the API is unreachable. The fallback compares
// passwords in plaintext; these are fixed demo accounts, not real auth.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	resp, err := s.api.Login(ctx, req.User, req.Password)
	if err == nil {
		if !resp.Success {
			return nil, ErrInvalidCredentials
		}
		student := models.Student{
			ID:       resp.User.ID,
			Name:     resp.User.Name,
			Username: resp.User.Email,
			Email:    resp.User.Email,
			Plan:     models.Plan(resp.User.PlanType),
		}
		if student.Plan == "" {
			student.Plan = models.PlanGroup
		}
		return s.establish(ctx, student, false)
	}

	var netErr *client.NetworkError
	if !errors.As(err, &netErr) {
		return nil, err
	}
	log.Printf("API login failed, falling back to local accounts: %v", err)

	found, ok := data.FindStudent(req.User)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if found.Password != req.Password {
		return nil, ErrInvalidCredentials
	}

	student := *found
	student.Password = ""
	return s.establish(ctx, student, true)
}

// establish mints the session token and persists the logged-in student so a
// restart restores the session.
func (s *AuthService) establish(ctx context.Context, student models.Student, fallback bool) (*LoginResult, error) {
	token, err := s.generateToken(student)
	if err != nil {
		return nil, err
	}
	student.Token = token

	raw, err := json.Marshal(student)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, userKey, string(raw)); err != nil {
		log.Printf("Error persisting logged-in user: %v", err)
	}
	if err := s.store.Set(ctx, tokenKey, token); err != nil {
		log.Printf("Error persisting auth token: %v", err)
	}

	return &LoginResult{Student: student, Token: token, Fallback: fallback}, nil
}

func (s *AuthService) generateToken(student models.Student) (string, error) {
	claims := jwt.MapClaims{
		"user_id": student.ID,
		"name":    student.Name,
		"plan":    string(student.Plan),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// CurrentUser restores the persisted student, tolerating missing or corrupt
// state by reporting no active session.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.Student, bool) {
	raw, err := s.store.Get(ctx, userKey)
	if err != nil {
		return nil, false
	}

	var student models.Student
	if err := json.Unmarshal([]byte(raw), &student); err != nil {
		log.Printf("Corrupt persisted user, ignoring: %v", err)
		return nil, false
	}
	return &student, true
}

// Logout tears the session down: both persisted keys are removed.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.store.Remove(ctx, userKey); err != nil {
		log.Printf("Error removing persisted user: %v", err)
	}
	if err := s.store.Remove(ctx, tokenKey); err != nil {
		log.Printf("Error removing persisted token: %v", err)
	}
}
