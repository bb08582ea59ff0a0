package services

import (
	"context"
	"errors"
	"log"
	"math"

	"deutschportal/client"
	"deutschportal/data"
	"deutschportal/models"
)

// ErrNoCallLink is returned when a session has no meeting link attached.
var ErrNoCallLink = errors.New("no call link available for this session")

// DashboardService assembles the student dashboard: scheduled sessions from
// the remote API (bundled data when unreachable), the plan-filtered quiz
// catalog with completion status, and the progress stats.
type DashboardService struct {
	api     *client.Client
	history *HistoryService
	catalog []models.Quiz
}

func NewDashboardService(api *client.Client, history *HistoryService, catalog []models.Quiz) *DashboardService {
	return &DashboardService{
		api:     api,
		history: history,
		catalog: catalog,
	}
}

// QuizOverview is a catalog entry decorated for the quiz list.
type QuizOverview struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Course        string             `json:"course"`
	Date          string             `json:"date"`
	Description   string             `json:"description"`
	Plan          models.Plan        `json:"plan"`
	Duration      int                `json:"duration"`
	QuestionCount int                `json:"question_count"`
	Completed     bool               `json:"completed"`
	LastResult    *models.QuizResult `json:"last_result,omitempty"`
}

type DashboardStats struct {
	SessionCount    int `json:"session_count"`
	CompletedCount  int `json:"completed_count"`
	TotalQuizzes    int `json:"total_quizzes"`
	ProgressPercent int `json:"progress_percent"`
}

type DashboardOverview struct {
	Sessions []models.ScheduledSession `json:"sessions"`
	Quizzes  []QuizOverview            `json:"quizzes"`
	Stats    DashboardStats            `json:"stats"`
	Fallback bool                      `json:"fallback"`
}

// Sessions returns the student's scheduled sessions. The second return
// reports whether bundled fallback data was used.
func (s *DashboardService) Sessions(ctx context.Context, student *models.Student) ([]models.ScheduledSession, bool) {
	sessions, err := s.api.GetSessions(ctx)
	fallback := false
	if err != nil {
		log.Printf("API error fetching sessions, falling back to bundled data: %v", err)
		sessions = data.Sessions
		fallback = true
	}

	visible := make([]models.ScheduledSession, 0, len(sessions))
	for _, session := range sessions {
		if models.Visible(session.Plan, student.Plan) {
			visible = append(visible, session)
		}
	}
	return visible, fallback
}

// Quizzes returns the plan-filtered catalog with each quiz's completion
// status. The same visibility predicate as Sessions, on purpose.
func (s *DashboardService) Quizzes(ctx context.Context, student *models.Student) []QuizOverview {
	overviews := make([]QuizOverview, 0, len(s.catalog))
	for _, quiz := range s.catalog {
		if !models.Visible(quiz.Plan, student.Plan) {
			continue
		}
		overview := QuizOverview{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Course:        quiz.Course,
			Date:          quiz.Date,
			Description:   quiz.Description,
			Plan:          quiz.Plan,
			Duration:      quiz.Duration,
			QuestionCount: len(quiz.Questions),
		}
		if result, ok := s.history.Lookup(ctx, student.ID, quiz.ID); ok {
			overview.Completed = true
			overview.LastResult = result
		}
		overviews = append(overviews, overview)
	}
	return overviews
}

// Overview builds the whole dashboard in one call.
func (s *DashboardService) Overview(ctx context.Context, student *models.Student) DashboardOverview {
	sessions, fallback := s.Sessions(ctx, student)
	quizzes := s.Quizzes(ctx, student)

	completed := 0
	for _, quiz := range quizzes {
		if quiz.Completed {
			completed++
		}
	}

	progress := 0
	if len(quizzes) > 0 {
		progress = int(math.Round(float64(completed) / float64(len(quizzes)) * 100))
	}

	return DashboardOverview{
		Sessions: sessions,
		Quizzes:  quizzes,
		Fallback: fallback,
		Stats: DashboardStats{
			SessionCount:    len(sessions),
			CompletedCount:  completed,
			TotalQuizzes:    len(quizzes),
			ProgressPercent: progress,
		},
	}
}

// CallLink resolves the meeting link for a session, remote first, bundled
// data when the API is down.
func (s *DashboardService) CallLink(ctx context.Context, student *models.Student, sessionID uint) (*models.CallLink, bool, error) {
	link, err := s.api.GetCallLink(ctx, sessionID)
	if err == nil {
		return link, false, nil
	}

	var netErr *client.NetworkError
	if !errors.As(err, &netErr) {
		return nil, false, err
	}
	log.Printf("API error fetching call link, falling back to bundled data: %v", err)

	session, ok := data.FindSession(sessionID)
	if !ok || !models.Visible(session.Plan, student.Plan) || session.CallLink == nil {
		return nil, true, ErrNoCallLink
	}
	return session.CallLink, true, nil
}
