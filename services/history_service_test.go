package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deutschportal/models"
	"deutschportal/store"
)

func TestHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryService(store.NewMemoryStore())

	result := models.QuizResult{
		QuizID:      1,
		Title:       "Quiz Vocabulaire A1",
		CompletedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Correct:     1,
		Total:       2,
		Percentage:  50,
		Answers:     map[uint]string{1: "Hallo"},
	}
	require.NoError(t, history.Append(ctx, 7, result))

	results := history.All(ctx, 7)
	require.Len(t, results, 1)
	require.Equal(t, uint(1), results[0].QuizID)
	require.Equal(t, "Quiz Vocabulaire A1", results[0].Title)
	require.True(t, results[0].CompletedAt.Equal(result.CompletedAt))
	require.Equal(t, 1, results[0].Correct)
	require.Equal(t, 2, results[0].Total)
	require.Equal(t, 50, results[0].Percentage)
	require.Equal(t, map[uint]string{1: "Hallo"}, results[0].Answers)

	// Another student's history is separate.
	require.Empty(t, history.All(ctx, 8))
}

func TestHistoryMissingReadsAsEmpty(t *testing.T) {
	history := NewHistoryService(store.NewMemoryStore())
	require.Empty(t, history.All(context.Background(), 7))
}

func TestHistoryMalformedReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, "completed_quizzes_7", "{not json"))

	history := NewHistoryService(st)
	require.Empty(t, history.All(ctx, 7))

	// And the history stays usable: a fresh append replaces the junk.
	require.NoError(t, history.Append(ctx, 7, models.QuizResult{QuizID: 1, Total: 2}))
	require.Len(t, history.All(ctx, 7), 1)
}

func TestHistoryLookupResolvesMostRecent(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryService(store.NewMemoryStore())

	older := models.QuizResult{QuizID: 1, Percentage: 50, CompletedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	newer := models.QuizResult{QuizID: 1, Percentage: 100, CompletedAt: time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)}
	other := models.QuizResult{QuizID: 2, Percentage: 0, CompletedAt: time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC)}

	require.NoError(t, history.Append(ctx, 7, older))
	require.NoError(t, history.Append(ctx, 7, newer))
	require.NoError(t, history.Append(ctx, 7, other))

	// Retrying keeps the full history but status resolves to the latest attempt.
	require.Len(t, history.All(ctx, 7), 3)
	result, ok := history.Lookup(ctx, 7, 1)
	require.True(t, ok)
	require.Equal(t, 100, result.Percentage)

	_, ok = history.Lookup(ctx, 7, 99)
	require.False(t, ok)

	completed := history.CompletedQuizIDs(ctx, 7)
	require.Equal(t, map[uint]bool{1: true, 2: true}, completed)
}
