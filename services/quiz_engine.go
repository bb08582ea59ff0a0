package services

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"deutschportal/models"
)

const (
	QuizNotStarted = "not_started"
	QuizInProgress = "in_progress"
	QuizCompleted  = "completed"
)

var (
	// ErrInvalidAnswer covers answers for unknown questions or options not in
	// the question's option set. The portal UI can't produce either.
	ErrInvalidAnswer = errors.New("answer is not one of the question's options")

	// ErrIndexOutOfRange is returned by JumpTo for indexes outside the quiz.
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrQuizNotStarted is returned by Finish on a session that never entered
	// in_progress; an attempt that never began must not produce a result.
	ErrQuizNotStarted = errors.New("quiz has not been started")
)

// QuizSession is one student's run of a quiz: not_started -> in_progress ->
// completed. The countdown ticker is owned by the session, started on
// entering in_progress and stopped on every exit (finish, timeout, close),
// so an abandoned session never leaks a running timer.
type QuizSession struct {
	ID        string
	StudentID uint
	Quiz      *models.Quiz

	mu       sync.Mutex
	status   string
	current  int
	answers  map[uint]string
	timeLeft int // seconds
	result   *models.QuizResult
	stop     chan struct{}

	// tickInterval is one second in production; tests compress it.
	tickInterval time.Duration
	onTick       func(session *QuizSession, timeLeft int)
	onComplete   func(session *QuizSession, result models.QuizResult)
}

// QuizSessionState is the snapshot handed to handlers and the websocket hub.
type QuizSessionState struct {
	SessionID       string             `json:"session_id"`
	QuizID          uint               `json:"quiz_id"`
	Title           string             `json:"title"`
	Status          string             `json:"status"`
	CurrentIndex    int                `json:"current_index"`
	CurrentQuestion *models.Question   `json:"current_question,omitempty"`
	TotalQuestions  int                `json:"total_questions"`
	TimeLeft        int                `json:"time_left"`
	Answers         map[uint]string    `json:"answers"`
	Result          *models.QuizResult `json:"result,omitempty"`
}

func NewQuizSession(studentID uint, quiz *models.Quiz) *QuizSession {
	return &QuizSession{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		Quiz:         quiz,
		status:       QuizNotStarted,
		answers:      make(map[uint]string),
		timeLeft:     quiz.Duration * 60,
		tickInterval: time.Second,
	}
}

// Start moves the session into in_progress with a clean answer mapping and a
// full clock, and starts the countdown. No-op unless the session is
// not_started.
func (s *QuizSession) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != QuizNotStarted {
		return
	}

	s.status = QuizInProgress
	s.current = 0
	s.answers = make(map[uint]string)
	s.timeLeft = s.Quiz.Duration * 60
	s.result = nil
	s.stop = make(chan struct{})

	go s.runCountdown(s.stop)
	log.Printf("Quiz session %s started for student %d: quiz %d, %d seconds", s.ID, s.StudentID, s.Quiz.ID, s.timeLeft)
}

// runCountdown decrements the clock once per tick while the session stays
// in_progress. The stop channel is closed on every transition out of
// in_progress, so the goroutine never outlives the attempt.
func (s *QuizSession) runCountdown(stop chan struct{}) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.tick() {
				return
			}
		}
	}
}

// tick advances the countdown by one second. It returns false once the
// session has left in_progress and the goroutine should exit.
func (s *QuizSession) tick() bool {
	s.mu.Lock()
	if s.status != QuizInProgress {
		s.mu.Unlock()
		return false
	}

	if s.timeLeft > 0 {
		s.timeLeft--
	}
	timeLeft := s.timeLeft

	if timeLeft == 0 {
		// Only the first zero-crossing finishes the quiz.
		result, first := s.finishLocked()
		s.mu.Unlock()
		s.notifyTick(timeLeft)
		if first {
			log.Printf("Quiz session %s: time expired, auto-finishing", s.ID)
			s.notifyComplete(result)
		}
		return false
	}

	s.mu.Unlock()
	s.notifyTick(timeLeft)
	return true
}

// SelectAnswer records the student's answer for a question. Outside
// in_progress it is silently ignored; that matches how the portal UI has
// always behaved. An option that is not part of the question is rejected.
func (s *QuizSession) SelectAnswer(questionID uint, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != QuizInProgress {
		return nil
	}

	var question *models.Question
	for i := range s.Quiz.Questions {
		if s.Quiz.Questions[i].ID == questionID {
			question = &s.Quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return ErrInvalidAnswer
	}

	valid := false
	for _, option := range question.Options {
		if option == answer {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidAnswer
	}

	s.answers[questionID] = answer
	return nil
}

// Next advances to the following question. On the last question it finishes
// the quiz, exactly like the "Terminer" button.
func (s *QuizSession) Next() {
	s.mu.Lock()
	if s.status != QuizInProgress {
		s.mu.Unlock()
		return
	}

	if s.current < len(s.Quiz.Questions)-1 {
		s.current++
		s.mu.Unlock()
		return
	}

	result, first := s.finishLocked()
	s.mu.Unlock()
	if first {
		s.notifyComplete(result)
	}
}

// Prev steps back one question; no-op at the first question.
func (s *QuizSession) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != QuizInProgress {
		return
	}
	if s.current > 0 {
		s.current--
	}
}

// JumpTo sets the current question directly, for out-of-order navigation
// from the question dots.
func (s *QuizSession) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != QuizInProgress {
		return nil
	}
	if index < 0 || index >= len(s.Quiz.Questions) {
		return ErrIndexOutOfRange
	}
	s.current = index
	return nil
}

// Finish completes the attempt, stops the countdown and computes the score.
// Idempotent: repeated calls (or a racing timer expiry) produce the same
// single result. A session that was never started cannot be finished and
// keeps its not_started status.
func (s *QuizSession) Finish() (models.QuizResult, error) {
	s.mu.Lock()
	if s.status == QuizNotStarted {
		s.mu.Unlock()
		return models.QuizResult{}, ErrQuizNotStarted
	}
	result, first := s.finishLocked()
	s.mu.Unlock()

	if first {
		s.notifyComplete(result)
	}
	return result, nil
}

// finishLocked performs the in_progress -> completed transition. The second
// return value is true only for the call that actually made the transition.
// Caller must hold s.mu.
func (s *QuizSession) finishLocked() (models.QuizResult, bool) {
	if s.status == QuizCompleted && s.result != nil {
		return *s.result, false
	}

	s.status = QuizCompleted
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}

	result := scoreQuiz(s.Quiz, s.answers)
	s.result = &result
	log.Printf("Quiz session %s completed: %d/%d (%d%%)", s.ID, result.Correct, result.Total, result.Percentage)
	return result, true
}

// Retry reinitializes a completed session back to not_started with a clean
// answer mapping. The previous result stays in the student's history.
func (s *QuizSession) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != QuizCompleted {
		return
	}

	s.status = QuizNotStarted
	s.current = 0
	s.answers = make(map[uint]string)
	s.timeLeft = s.Quiz.Duration * 60
	s.result = nil
}

// Close stops the countdown when the student abandons the session. The
// attempt produces no result.
func (s *QuizSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	if s.status == QuizInProgress {
		log.Printf("Quiz session %s closed mid-attempt by student %d", s.ID, s.StudentID)
		s.status = QuizNotStarted
	}
}

// State returns a snapshot safe to serialize.
func (s *QuizSession) State() QuizSessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := QuizSessionState{
		SessionID:      s.ID,
		QuizID:         s.Quiz.ID,
		Title:          s.Quiz.Title,
		Status:         s.status,
		CurrentIndex:   s.current,
		TotalQuestions: len(s.Quiz.Questions),
		TimeLeft:       s.timeLeft,
		Answers:        make(map[uint]string, len(s.answers)),
		Result:         s.result,
	}
	for id, answer := range s.answers {
		state.Answers[id] = answer
	}
	if s.status == QuizInProgress && s.current < len(s.Quiz.Questions) {
		state.CurrentQuestion = &s.Quiz.Questions[s.current]
	}
	return state
}

func (s *QuizSession) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *QuizSession) TimeLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeLeft
}

func (s *QuizSession) notifyTick(timeLeft int) {
	if s.onTick != nil {
		s.onTick(s, timeLeft)
	}
}

func (s *QuizSession) notifyComplete(result models.QuizResult) {
	if s.onComplete != nil {
		s.onComplete(s, result)
	}
}

// scoreQuiz grades an answer mapping against the quiz. Unanswered questions
// count as wrong; total is always the question count. An empty quiz scores
// 0%, not a division error.
func scoreQuiz(quiz *models.Quiz, answers map[uint]string) models.QuizResult {
	correct := 0
	for _, q := range quiz.Questions {
		if answer, ok := answers[q.ID]; ok && answer == q.Answer {
			correct++
		}
	}

	total := len(quiz.Questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	recorded := make(map[uint]string, len(answers))
	for id, answer := range answers {
		recorded[id] = answer
	}

	return models.QuizResult{
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		CompletedAt: time.Now().UTC(),
		Correct:     correct,
		Total:       total,
		Percentage:  percentage,
		Answers:     recorded,
	}
}
