// internal/service/statistics.go
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/stats"
	"github.com/mediquiz/backend/internal/store"
)

// ReviewableQuestion is a catalog question with at least one surviving
// incorrect-log entry, annotated with its most recent wrong answer and the
// number of entries.
type ReviewableQuestion struct {
	Question            question.Question
	LastIncorrectAnswer *string
	IncorrectCount      int
}

// QuestionWithLogs is the detail view for a single reviewable question.
type QuestionWithLogs struct {
	Question question.Question
	Logs     []stats.LogEntry
}

// StatisticsService is the single source of truth for cumulative per-exam
// statistics and for the incorrect-answer log that feeds the review list.
// It is the sole writer of statistics and log rows.
//
// Persistence failures are logged and swallowed: losing one log entry or one
// merge must never abort the quiz flow that triggered it.
type StatisticsService struct {
	statsStore    store.StatisticsStore
	questionStore store.QuestionStore
	logger        *slog.Logger

	// examMu serializes the read-modify-write of RecordQuizCompletion per
	// exam; concurrent different-exam merges stay independent.
	mu     sync.Mutex
	examMu map[string]*sync.Mutex

	// log-changed broadcast: every subscriber channel buffers one event,
	// and a late subscriber is primed if anything changed before it arrived.
	subMu       sync.Mutex
	subscribers map[chan struct{}]struct{}
	everChanged bool
}

// NewStatisticsService creates a StatisticsService.
func NewStatisticsService(statsStore store.StatisticsStore, questionStore store.QuestionStore, logger *slog.Logger) *StatisticsService {
	return &StatisticsService{
		statsStore:    statsStore,
		questionStore: questionStore,
		logger:        logger,
		examMu:        make(map[string]*sync.Mutex),
		subscribers:   make(map[chan struct{}]struct{}),
	}
}

func (s *StatisticsService) lockForExam(examID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.examMu[examID]
	if !ok {
		mu = &sync.Mutex{}
		s.examMu[examID] = mu
	}
	return mu
}

// EnsureStatisticsRow creates a zeroed statistics row for the exam if none
// exists. Idempotent; existing counters are never touched.
func (s *StatisticsService) EnsureStatisticsRow(ctx context.Context, examID string) {
	if err := s.statsStore.EnsureRow(ctx, examID); err != nil {
		s.logger.Error("failed to ensure statistics row", "exam_id", examID, "error", err)
	}
}

// RecordQuizCompletion folds one completed quiz's per-subject deltas into the
// exam's cumulative row and bumps the completed count by one. The
// read-modify-write is serialized per exam so concurrent submissions cannot
// clobber each other's deltas.
func (s *StatisticsService) RecordQuizCompletion(ctx context.Context, examID string, deltas map[string]stats.SubjectStatDetail) {
	mu := s.lockForExam(examID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.statsStore.EnsureRow(ctx, examID); err != nil {
		s.logger.Error("failed to ensure statistics row before merge", "exam_id", examID, "error", err)
		return
	}

	current, err := s.statsStore.GetSnapshot(ctx, examID)
	if err != nil {
		s.logger.Error("failed to read statistics snapshot", "exam_id", examID, "error", err)
		return
	}
	if current == nil {
		fresh := stats.NewQuizStatistics(examID)
		current = &fresh
	}

	merged := current.Merge(deltas)
	if err := s.statsStore.Upsert(ctx, merged); err != nil {
		s.logger.Error("failed to persist merged statistics", "exam_id", examID, "error", err)
		return
	}

	s.logger.Info("quiz completion recorded",
		"exam_id", examID,
		"total_quizzes", merged.TotalQuizzesCompleted,
		"subjects", len(deltas),
	)
}

// Statistics returns the cumulative row for the exam, or a zeroed row when
// none has been created yet.
func (s *StatisticsService) Statistics(ctx context.Context, examID string) (stats.QuizStatistics, error) {
	snapshot, err := s.statsStore.GetSnapshot(ctx, examID)
	if err != nil {
		return stats.QuizStatistics{}, err
	}
	if snapshot == nil {
		return stats.NewQuizStatistics(examID), nil
	}
	return *snapshot, nil
}

// LogIncorrectAnswer appends one entry for an explicit wrong answer.
func (s *StatisticsService) LogIncorrectAnswer(ctx context.Context, questionID int, userAnswer string) {
	entry := stats.LogEntry{
		QuestionID: questionID,
		UserAnswer: userAnswer,
		Timestamp:  time.Now().UnixMilli(),
	}
	if _, err := s.statsStore.InsertLog(ctx, entry); err != nil {
		s.logger.Error("failed to log incorrect answer", "question_id", questionID, "error", err)
		return
	}
	s.notifyLogChanged()
}

// ClearLogsForQuestion removes every log entry for one question.
func (s *StatisticsService) ClearLogsForQuestion(ctx context.Context, questionID int) {
	if err := s.statsStore.ClearLogs(ctx, questionID); err != nil {
		s.logger.Error("failed to clear logs for question", "question_id", questionID, "error", err)
		return
	}
	s.notifyLogChanged()
}

// ClearAllLogs wipes the whole incorrect-answer history.
func (s *StatisticsService) ClearAllLogs(ctx context.Context) {
	if err := s.statsStore.ClearAllLogs(ctx); err != nil {
		s.logger.Error("failed to clear all logs", "error", err)
		return
	}
	s.notifyLogChanged()
}

// ReviewableQuestions derives the review list for one exam: the log has no
// exam column, so the distinct logged ids are intersected with the exam's
// catalog, then annotated from each question's newest-first log list.
func (s *StatisticsService) ReviewableQuestions(ctx context.Context, examID string) ([]ReviewableQuestion, error) {
	ids, err := s.statsStore.DistinctLoggedQuestionIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	questions, err := s.questionStore.ByIDsForExam(ctx, examID, ids, 0)
	if err != nil {
		return nil, err
	}

	var reviewable []ReviewableQuestion
	for _, q := range questions {
		logs, err := s.statsStore.LogsForQuestion(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		if len(logs) == 0 {
			continue
		}
		last := logs[0].UserAnswer
		reviewable = append(reviewable, ReviewableQuestion{
			Question:            q,
			LastIncorrectAnswer: &last,
			IncorrectCount:      len(logs),
		})
	}
	return reviewable, nil
}

// AllLogs returns the complete incorrect-answer history across all exams.
func (s *StatisticsService) AllLogs(ctx context.Context) ([]stats.LogEntry, error) {
	return s.statsStore.AllLogs(ctx)
}

// QuestionWithLogs loads one question together with its newest-first log
// entries.
func (s *StatisticsService) QuestionWithLogs(ctx context.Context, questionID int) (*QuestionWithLogs, error) {
	q, err := s.questionStore.ByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	logs, err := s.statsStore.LogsForQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return &QuestionWithLogs{Question: *q, Logs: logs}, nil
}

// ============================================================================
// Log-changed broadcast
// ============================================================================

// LogChanged subscribes to log mutations. Delivery is at-least-once with the
// latest event buffered; a subscriber arriving after a mutation receives one
// primed event. The returned cancel func must be called to unsubscribe.
func (s *StatisticsService) LogChanged() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	if s.everChanged {
		ch <- struct{}{}
	}
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subscribers, ch)
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *StatisticsService) notifyLogChanged() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.everChanged = true
	for ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending event
		}
	}
}
