package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"deutschportal/models"
	"deutschportal/store"
)

// HistoryService owns the per-student quiz result history. Every attempt is
// appended in insertion order; the "current" result for a quiz is the most
// recent attempt by completion time, so a retry supersedes the original
// without erasing it.
type HistoryService struct {
	store store.Store
}

func NewHistoryService(st store.Store) *HistoryService {
	return &HistoryService{store: st}
}

func historyKey(studentID uint) string {
	return fmt.Sprintf("completed_quizzes_%d", studentID)
}

// All returns the student's full history, oldest first. A missing or corrupt
// stored value reads as an empty history; the dashboard must never fail to
// load over bad local state.
func (s *HistoryService) All(ctx context.Context, studentID uint) []models.QuizResult {
	raw, err := s.store.Get(ctx, historyKey(studentID))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Error reading quiz history for student %d: %v", studentID, err)
		}
		return nil
	}

	var results []models.QuizResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		log.Printf("Corrupt quiz history for student %d, treating as empty: %v", studentID, err)
		return nil
	}
	return results
}

// Lookup resolves the current result for a quiz: the most recent attempt by
// completion timestamp.
func (s *HistoryService) Lookup(ctx context.Context, studentID, quizID uint) (*models.QuizResult, bool) {
	var latest *models.QuizResult
	for _, result := range s.All(ctx, studentID) {
		if result.QuizID != quizID {
			continue
		}
		r := result
		if latest == nil || r.CompletedAt.After(latest.CompletedAt) {
			latest = &r
		}
	}
	return latest, latest != nil
}

// Append adds a result and rewrites the full serialized history.
func (s *HistoryService) Append(ctx context.Context, studentID uint, result models.QuizResult) error {
	results := append(s.All(ctx, studentID), result)

	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode quiz history: %w", err)
	}
	if err := s.store.Set(ctx, historyKey(studentID), string(raw)); err != nil {
		return fmt.Errorf("failed to persist quiz history: %w", err)
	}
	return nil
}

// CompletedQuizIDs returns the distinct quiz ids the student has finished at
// least once. Used for the progress metric so retries don't inflate it.
func (s *HistoryService) CompletedQuizIDs(ctx context.Context, studentID uint) map[uint]bool {
	completed := make(map[uint]bool)
	for _, result := range s.All(ctx, studentID) {
		completed[result.QuizID] = true
	}
	return completed
}
