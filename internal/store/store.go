package store

import (
	"context"
	"errors"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/stats"
)

var (
	ErrNotFound = errors.New("not found")
)

// QuestionStore is the read/replace surface over the question catalog.
type QuestionStore interface {
	// SampleRandom returns up to count random questions for the exam.
	// An empty subjects slice means no subject restriction.
	SampleRandom(ctx context.Context, examID string, count int, subjects []question.Subject) ([]question.Question, error)
	// ByIDsForExam returns the questions whose id is in ids and whose exam
	// matches, capped at limit, in store order.
	ByIDsForExam(ctx context.Context, examID string, ids []int, limit int) ([]question.Question, error)
	ByID(ctx context.Context, id int) (*question.Question, error)
	SubjectsForExam(ctx context.Context, examID string) ([]question.Subject, error)

	// ClearAllQuestions and InsertQuestions implement the destructive
	// remote-sync refresh. They are intentionally separate operations:
	// a failure between them leaves the catalog empty, which the quiz
	// engine must tolerate.
	ClearAllQuestions(ctx context.Context) error
	InsertQuestions(ctx context.Context, questions []question.Question) error
}

// StatisticsStore persists cumulative statistics rows and the append-only
// incorrect-answer log. At most one statistics row exists per exam key.
type StatisticsStore interface {
	GetSnapshot(ctx context.Context, examID string) (*stats.QuizStatistics, error)
	Upsert(ctx context.Context, s stats.QuizStatistics) error
	// EnsureRow creates a zeroed row if none exists; it never overwrites
	// existing counters.
	EnsureRow(ctx context.Context, examID string) error

	DistinctLoggedQuestionIDs(ctx context.Context) ([]int, error)
	// LogsForQuestion returns entries newest-first.
	LogsForQuestion(ctx context.Context, questionID int) ([]stats.LogEntry, error)
	AllLogs(ctx context.Context) ([]stats.LogEntry, error)
	InsertLog(ctx context.Context, entry stats.LogEntry) (int64, error)
	ClearLogs(ctx context.Context, questionID int) error
	ClearAllLogs(ctx context.Context) error
}

// PreferenceStore holds the user's selections. Keys are independent of each
// other; no cross-key transaction is needed.
type PreferenceStore interface {
	SelectedExamID(ctx context.Context) (string, error) // "" when unset
	SetSelectedExamID(ctx context.Context, examID string) error
	SelectedCount(ctx context.Context) (int, error) // 0 when unset
	SetSelectedCount(ctx context.Context, count int) error
	SelectedSubjectFilters(ctx context.Context) ([]string, error)
	SetSelectedSubjectFilters(ctx context.Context, names []string) error
}
