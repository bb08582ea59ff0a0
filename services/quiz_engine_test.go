package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deutschportal/models"
)

func makeQuiz(questions int, durationMinutes int) *models.Quiz {
	quiz := &models.Quiz{
		ID:       42,
		Title:    "Quiz Vocabulaire A1",
		Plan:     models.PlanGroup,
		Duration: durationMinutes,
	}
	for i := 1; i <= questions; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:      uint(i),
			Text:    "question",
			Options: []string{"right", "wrong", "other"},
			Answer:  "right",
		})
	}
	return quiz
}

func TestStartResetsSession(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(3, 10))
	require.Equal(t, QuizNotStarted, s.Status())

	s.Start()
	defer s.Close()

	state := s.State()
	require.Equal(t, QuizInProgress, state.Status)
	require.Equal(t, 0, state.CurrentIndex)
	require.Empty(t, state.Answers)
	require.Equal(t, 600, state.TimeLeft)
	require.NotNil(t, state.CurrentQuestion)
	require.Equal(t, uint(1), state.CurrentQuestion.ID)
}

func TestAnswerFirstLeaveSecondBlank(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.Start()

	require.NoError(t, s.SelectAnswer(1, "right"))
	result, err := s.Finish()
	require.NoError(t, err)

	require.Equal(t, 1, result.Correct)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 50, result.Percentage)
	require.Equal(t, "right", result.Answers[1])
	_, answered := result.Answers[2]
	require.False(t, answered)
}

func TestScoreBounds(t *testing.T) {
	quiz := makeQuiz(3, 10)

	empty := scoreQuiz(quiz, map[uint]string{})
	require.Equal(t, 3, empty.Total)
	require.Equal(t, 0, empty.Correct)
	require.Equal(t, 0, empty.Percentage)

	all := scoreQuiz(quiz, map[uint]string{1: "right", 2: "right", 3: "right"})
	require.Equal(t, 3, all.Correct)
	require.Equal(t, 100, all.Percentage)

	one := scoreQuiz(quiz, map[uint]string{2: "right", 3: "wrong"})
	require.Equal(t, 1, one.Correct)
	require.Equal(t, 33, one.Percentage)
}

func TestScoreEmptyQuizIsZeroPercent(t *testing.T) {
	result := scoreQuiz(makeQuiz(0, 10), map[uint]string{})
	require.Equal(t, 0, result.Total)
	require.Equal(t, 0, result.Correct)
	require.Equal(t, 0, result.Percentage)
}

func TestSelectAnswerIgnoredOutsideInProgress(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(2, 10))

	// Before start: silently ignored.
	require.NoError(t, s.SelectAnswer(1, "right"))
	require.Empty(t, s.State().Answers)

	s.Start()
	require.NoError(t, s.SelectAnswer(1, "right"))
	_, err := s.Finish()
	require.NoError(t, err)

	// After completion: silently ignored too.
	require.NoError(t, s.SelectAnswer(2, "right"))
	require.Equal(t, 1, s.State().Result.Correct)
}

func TestSelectAnswerRejectsUnknownOption(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.Start()
	defer s.Close()

	require.ErrorIs(t, s.SelectAnswer(1, "not an option"), ErrInvalidAnswer)
	require.ErrorIs(t, s.SelectAnswer(99, "right"), ErrInvalidAnswer)
	require.Empty(t, s.State().Answers)
}

func TestSelectAnswerOverwrites(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(1, 10))
	s.Start()
	defer s.Close()

	require.NoError(t, s.SelectAnswer(1, "wrong"))
	require.NoError(t, s.SelectAnswer(1, "right"))
	require.Equal(t, "right", s.State().Answers[1])
}

func TestNavigation(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(3, 10))
	s.Start()
	defer s.Close()

	// Prev at the first question is a no-op.
	s.Prev()
	require.Equal(t, 0, s.State().CurrentIndex)

	s.Next()
	require.Equal(t, 1, s.State().CurrentIndex)
	s.Prev()
	require.Equal(t, 0, s.State().CurrentIndex)

	require.NoError(t, s.JumpTo(2))
	require.Equal(t, 2, s.State().CurrentIndex)

	require.ErrorIs(t, s.JumpTo(-1), ErrIndexOutOfRange)
	require.ErrorIs(t, s.JumpTo(3), ErrIndexOutOfRange)
	require.Equal(t, 2, s.State().CurrentIndex)
}

func TestNextOnLastQuestionFinishes(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.Start()

	s.Next()
	require.Equal(t, QuizInProgress, s.Status())
	s.Next()
	require.Equal(t, QuizCompleted, s.Status())
	require.NotNil(t, s.State().Result)
}

func TestFinishIsIdempotent(t *testing.T) {
	var completions int32
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.onComplete = func(_ *QuizSession, _ models.QuizResult) {
		atomic.AddInt32(&completions, 1)
	}

	s.Start()
	require.NoError(t, s.SelectAnswer(1, "right"))

	first, err := s.Finish()
	require.NoError(t, err)
	second, err := s.Finish()
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&completions))
	require.Equal(t, first, second)
}

func TestFinishBeforeStartIsRejected(t *testing.T) {
	var completions int32
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.onComplete = func(_ *QuizSession, _ models.QuizResult) {
		atomic.AddInt32(&completions, 1)
	}

	// An attempt that never began produces no result.
	_, err := s.Finish()
	require.ErrorIs(t, err, ErrQuizNotStarted)
	require.Equal(t, QuizNotStarted, s.Status())
	require.Nil(t, s.State().Result)
	require.Equal(t, int32(0), atomic.LoadInt32(&completions))

	// Same after a retry puts the session back to not_started.
	s.Start()
	_, err = s.Finish()
	require.NoError(t, err)
	s.Retry()

	_, err = s.Finish()
	require.ErrorIs(t, err, ErrQuizNotStarted)
	require.Equal(t, QuizNotStarted, s.Status())
	require.Equal(t, int32(1), atomic.LoadInt32(&completions))
}

func TestCountdownExpiryAutoFinishes(t *testing.T) {
	var completions int32
	s := NewQuizSession(1, makeQuiz(3, 1))
	s.tickInterval = time.Millisecond
	s.onComplete = func(_ *QuizSession, result models.QuizResult) {
		atomic.AddInt32(&completions, 1)
		require.Equal(t, 0, result.Correct)
		require.Equal(t, 3, result.Total)
		require.Equal(t, 0, result.Percentage)
	}

	s.Start()

	require.Eventually(t, func() bool {
		return s.Status() == QuizCompleted
	}, 5*time.Second, 5*time.Millisecond)

	// Give a hypothetical duplicate firing a moment to show up.
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&completions))
	require.Equal(t, 0, s.TimeLeft())
}

func TestCloseStopsCountdown(t *testing.T) {
	var completions int32
	s := NewQuizSession(1, makeQuiz(2, 1))
	s.tickInterval = time.Millisecond
	s.onComplete = func(_ *QuizSession, _ models.QuizResult) {
		atomic.AddInt32(&completions, 1)
	}

	s.Start()
	s.Close()

	// The abandoned attempt must not keep counting down to a finish.
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(0), atomic.LoadInt32(&completions))
	require.Equal(t, QuizNotStarted, s.Status())
	require.GreaterOrEqual(t, s.TimeLeft(), 0)
}

func TestRetryResetsForCleanRun(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.Start()
	require.NoError(t, s.SelectAnswer(1, "right"))
	_, err := s.Finish()
	require.NoError(t, err)

	s.Retry()
	state := s.State()
	require.Equal(t, QuizNotStarted, state.Status)
	require.Equal(t, 0, state.CurrentIndex)
	require.Empty(t, state.Answers)
	require.Nil(t, state.Result)
	require.Equal(t, 600, state.TimeLeft)

	// A fresh run works end to end.
	s.Start()
	require.NoError(t, s.SelectAnswer(1, "right"))
	require.NoError(t, s.SelectAnswer(2, "right"))
	result, err := s.Finish()
	require.NoError(t, err)
	require.Equal(t, 100, result.Percentage)
}

func TestRetryOnlyFromCompleted(t *testing.T) {
	s := NewQuizSession(1, makeQuiz(2, 10))
	s.Start()
	defer s.Close()

	require.NoError(t, s.SelectAnswer(1, "right"))
	s.Retry()

	// Mid-attempt retry is ignored; the run is untouched.
	require.Equal(t, QuizInProgress, s.Status())
	require.Equal(t, "right", s.State().Answers[1])
}
