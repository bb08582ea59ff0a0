package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"deutschportal/models"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"user":{"id":7,"name":"Alice","email":"alice@example.com","plan_type":"individual"},"token":"tok123"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, uint(7), resp.User.ID)
	require.Equal(t, "individual", resp.User.PlanType)
	require.Equal(t, "tok123", resp.Token)
}

func TestLoginRejectedIsNotNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Login(context.Background(), "alice@example.com", "wrong")
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "invalid credentials", resp.Message)
}

func TestLoginServerErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a", "b")
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestGetSessionsNormalizesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sessions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"titre":"Intro","cours":"A1","date":"2024-03-15 10:00","description":"d","plan":"group",
			 "call_link":{"platform":"","meeting_id":"123","meeting_password":"pw","join_url":"https://zoom.us/j/1"}},
			{"id":2,"title":"Articles","course":"A1","date":"2024-03-17 10:00","description":"d2","plan":"individual"}
		]`))
	}))
	defer srv.Close()

	sessions, err := New(srv.URL).GetSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.Equal(t, "Intro", sessions[0].Title)
	require.Equal(t, "A1", sessions[0].Course)
	require.Equal(t, models.PlanGroup, sessions[0].Plan)
	require.NotNil(t, sessions[0].CallLink)
	require.Equal(t, "Zoom", sessions[0].CallLink.Platform)
	require.Equal(t, "pw", sessions[0].CallLink.Password)

	require.Equal(t, "Articles", sessions[1].Title)
	require.Equal(t, "A1", sessions[1].Course)
	require.Nil(t, sessions[1].CallLink)
}

func TestGetSessionsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).GetSessions(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestGetSessionsCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).GetSessions(ctx)
	require.Error(t, err)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestGetCallLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/call-link/4", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"platform":"Zoom","meeting_id":"987","join_url":"https://zoom.us/j/987"}`))
	}))
	defer srv.Close()

	link, err := New(srv.URL).GetCallLink(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "https://zoom.us/j/987", link.JoinURL)
}
