// internal/service/sync.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/remote"
	"github.com/mediquiz/backend/internal/store"
	"github.com/mediquiz/backend/internal/worker"
)

// QuestionFetcher downloads the remote question catalog.
type QuestionFetcher interface {
	FetchQuestions(ctx context.Context) ([]remote.QuestionDTO, error)
}

// SyncStatus is the user-visible state of the last/current catalog sync.
type SyncStatus struct {
	Syncing   bool   `json:"syncing"`
	Message   string `json:"message,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// SyncService refreshes the local question catalog from the remote source.
// The refresh is destructive: the whole catalog is cleared and reinserted,
// with no rollback — a failure after the clear leaves the catalog empty and
// the quiz flow must tolerate that. Syncs run on a background worker so the
// trigger call returns immediately.
type SyncService struct {
	questions store.QuestionStore
	fetcher   QuestionFetcher
	pool      *worker.Pool[error]
	logger    *slog.Logger

	mu     sync.Mutex
	status SyncStatus
}

// NewSyncService creates a SyncService and starts its background worker.
func NewSyncService(questions store.QuestionStore, fetcher QuestionFetcher, logger *slog.Logger) *SyncService {
	s := &SyncService{
		questions: questions,
		fetcher:   fetcher,
		pool:      worker.NewPool[error](1, 4),
		logger:    logger,
	}
	go s.consumeResults()
	return s
}

func (s *SyncService) consumeResults() {
	for result := range s.pool.Results() {
		s.mu.Lock()
		s.status.Syncing = false
		if result.Output != nil {
			s.status.LastError = result.Output.Error()
			s.status.Message = "Database sync failed"
		} else {
			s.status.LastError = ""
			s.status.Message = "Database sync successful"
		}
		s.mu.Unlock()
	}
}

// Trigger starts a catalog sync unless one is already running.
func (s *SyncService) Trigger() {
	s.mu.Lock()
	if s.status.Syncing {
		s.mu.Unlock()
		return
	}
	s.status = SyncStatus{Syncing: true, Message: "Syncing..."}
	s.mu.Unlock()

	// The job deliberately runs on a background context: a sync must not
	// be cancelled when the HTTP request that triggered it ends.
	s.pool.Submit(context.Background(), "catalog-sync", s.refresh)
}

// Status returns the current sync state.
func (s *SyncService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ClearStatusMessage drops the transient status banner.
func (s *SyncService) ClearStatusMessage() {
	s.mu.Lock()
	if !s.status.Syncing {
		s.status.Message = ""
	}
	s.mu.Unlock()
}

func (s *SyncService) refresh(ctx context.Context) error {
	s.logger.Info("catalog sync started")

	dtos, err := s.fetcher.FetchQuestions(ctx)
	if err != nil {
		s.logger.Error("catalog fetch failed", "error", err)
		return err
	}
	s.logger.Info("catalog fetched", "questions", len(dtos))

	questions := make([]question.Question, 0, len(dtos))
	for _, dto := range dtos {
		questions = append(questions, question.Question{
			ID:            dto.ID,
			ExamID:        dto.ExamID,
			Text:          dto.QuestionText,
			Answers:       dto.QuestionAnswers,
			CorrectAnswer: dto.CorrectAnswer,
			Subject:       question.ParseSubject(dto.Subject),
		})
	}

	// Clear-then-insert with no rollback: the fetch already succeeded, so
	// the only remaining risk is an empty catalog after a failed insert.
	if err := s.questions.ClearAllQuestions(ctx); err != nil {
		s.logger.Error("catalog clear failed", "error", err)
		return fmt.Errorf("clear catalog: %w", err)
	}
	if err := s.questions.InsertQuestions(ctx, questions); err != nil {
		s.logger.Error("catalog insert failed", "error", err)
		return fmt.Errorf("insert catalog: %w", err)
	}

	s.logger.Info("catalog sync complete", "questions", len(questions))
	return nil
}
