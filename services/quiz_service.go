package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"deutschportal/models"
)

// ErrNoActiveSession is returned for session operations when the student has
// no open quiz.
var ErrNoActiveSession = errors.New("no active quiz session")

// ErrQuizNotFound covers both unknown quiz ids and quizzes outside the
// student's plan; the portal doesn't distinguish the two.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizService orchestrates quiz attempts: it owns the single active session
// per student, persists finished attempts to history and pushes countdown
// events to the websocket hub.
type QuizService struct {
	mu       sync.Mutex
	sessions map[uint]*QuizSession

	history *HistoryService
	hub     *Hub
	catalog []models.Quiz
}

func NewQuizService(history *HistoryService, hub *Hub, catalog []models.Quiz) *QuizService {
	return &QuizService{
		sessions: make(map[uint]*QuizSession),
		history:  history,
		hub:      hub,
		catalog:  catalog,
	}
}

type AnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type JumpRequest struct {
	Index *int `json:"index" binding:"required"`
}

// AnswerReview is one line of the results detail screen.
type AnswerReview struct {
	QuestionID    uint   `json:"question_id"`
	Question      string `json:"question"`
	YourAnswer    string `json:"your_answer"`
	Answered      bool   `json:"answered"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	Correct       bool   `json:"correct"`
}

type OpenQuizResponse struct {
	Session     QuizSessionState   `json:"session"`
	PriorResult *models.QuizResult `json:"prior_result,omitempty"`
	Review      []AnswerReview     `json:"review,omitempty"`
}

func (s *QuizService) catalogQuiz(quizID uint) (*models.Quiz, bool) {
	for i := range s.catalog {
		if s.catalog[i].ID == quizID {
			return &s.catalog[i], true
		}
	}
	return nil, false
}

func (s *QuizService) findQuiz(student *models.Student, quizID uint) (*models.Quiz, error) {
	quiz, ok := s.catalogQuiz(quizID)
	if !ok {
		return nil, ErrQuizNotFound
	}
	if !models.Visible(quiz.Plan, student.Plan) {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

// Open prepares a quiz for the student. If they already completed it, the
// prior result rides along so the UI can show the results screen straight
// away. Opening a different quiz closes any session left over from another
// one; only one attempt is ever active per student.
func (s *QuizService) Open(ctx context.Context, student *models.Student, quizID uint) (*OpenQuizResponse, error) {
	quiz, err := s.findQuiz(student, quizID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session, ok := s.sessions[student.ID]
	if ok && session.Quiz.ID != quizID {
		session.Close()
		delete(s.sessions, student.ID)
		ok = false
	}
	if !ok {
		session = NewQuizSession(student.ID, quiz)
		session.onTick = s.handleTick
		session.onComplete = s.handleComplete
		s.sessions[student.ID] = session
	}
	s.mu.Unlock()

	resp := &OpenQuizResponse{Session: session.State()}
	if prior, found := s.history.Lookup(ctx, student.ID, quizID); found {
		resp.PriorResult = prior
		resp.Review = s.Review(*prior)
	}
	return resp, nil
}

func (s *QuizService) sessionFor(studentID uint) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[studentID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// SessionByID locates an active session by its id, for websocket access
// checks.
func (s *QuizService) SessionByID(sessionID string) (*QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.ID == sessionID {
			return session, true
		}
	}
	return nil, false
}

func (s *QuizService) Start(studentID uint) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	session.Start()
	return session.State(), nil
}

func (s *QuizService) Answer(studentID uint, req *AnswerRequest) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	if err := session.SelectAnswer(req.QuestionID, req.Answer); err != nil {
		return QuizSessionState{}, err
	}
	return session.State(), nil
}

func (s *QuizService) Next(studentID uint) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	session.Next()
	return session.State(), nil
}

func (s *QuizService) Prev(studentID uint) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	session.Prev()
	return session.State(), nil
}

func (s *QuizService) Jump(studentID uint, index int) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	if err := session.JumpTo(index); err != nil {
		return QuizSessionState{}, err
	}
	return session.State(), nil
}

// Finish completes the student's attempt. Persisting the result happens in
// the completion hook, shared with the timeout path, so a double finish
// still writes exactly one history entry.
func (s *QuizService) Finish(studentID uint) (models.QuizResult, []AnswerReview, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return models.QuizResult{}, nil, err
	}
	result, err := session.Finish()
	if err != nil {
		return models.QuizResult{}, nil, err
	}
	return result, s.Review(result), nil
}

func (s *QuizService) Retry(studentID uint) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	session.Retry()
	return session.State(), nil
}

func (s *QuizService) State(studentID uint) (QuizSessionState, error) {
	session, err := s.sessionFor(studentID)
	if err != nil {
		return QuizSessionState{}, err
	}
	return session.State(), nil
}

// CloseSession stops the countdown and discards the student's session.
func (s *QuizService) CloseSession(studentID uint) {
	s.mu.Lock()
	session, ok := s.sessions[studentID]
	if ok {
		delete(s.sessions, studentID)
	}
	s.mu.Unlock()

	if ok {
		session.Close()
	}
}

// Review builds the per-question detail for a result from the catalog.
func (s *QuizService) Review(result models.QuizResult) []AnswerReview {
	quiz, ok := s.catalogQuiz(result.QuizID)
	if !ok {
		return nil
	}

	reviews := make([]AnswerReview, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answer, answered := result.Answers[q.ID]
		reviews = append(reviews, AnswerReview{
			QuestionID:    q.ID,
			Question:      q.Text,
			YourAnswer:    answer,
			Answered:      answered,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
			Correct:       answered && answer == q.Answer,
		})
	}
	return reviews
}

func (s *QuizService) handleTick(session *QuizSession, timeLeft int) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToSession(session.ID, "timer_update", gin.H{
		"session_id": session.ID,
		"time_left":  timeLeft,
	})
}

func (s *QuizService) handleComplete(session *QuizSession, result models.QuizResult) {
	// The completion hook may fire from the countdown goroutine, so there is
	// no request context to inherit here.
	if err := s.history.Append(context.Background(), session.StudentID, result); err != nil {
		log.Printf("Error persisting quiz result for student %d: %v", session.StudentID, err)
	}
	if s.hub != nil {
		s.hub.BroadcastToSession(session.ID, "quiz_completed", result)
	}
}
