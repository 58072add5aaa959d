package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/stats"
	"github.com/mediquiz/backend/internal/store"
)

var errStoreDown = errors.New("store down")

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// fakeQuestionStore serves a fixed catalog. Sampling is deterministic
// (catalog order) so tests can assert on the returned set.
type fakeQuestionStore struct {
	questions []question.Question

	lastSampleSubjects []question.Subject
	sampleErr          error
}

var _ store.QuestionStore = (*fakeQuestionStore)(nil)

func (f *fakeQuestionStore) SampleRandom(_ context.Context, examID string, count int, subjects []question.Subject) ([]question.Question, error) {
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	f.lastSampleSubjects = subjects

	allowed := func(s question.Subject) bool {
		if len(subjects) == 0 {
			return true
		}
		for _, sub := range subjects {
			if sub == s {
				return true
			}
		}
		return false
	}

	var out []question.Question
	for _, q := range f.questions {
		if q.ExamID == examID && allowed(q.Subject) {
			out = append(out, q)
		}
		if len(out) == count {
			break
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) ByIDsForExam(_ context.Context, examID string, ids []int, limit int) ([]question.Question, error) {
	idSet := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []question.Question
	for _, q := range f.questions {
		if q.ExamID != examID {
			continue
		}
		if _, ok := idSet[q.ID]; !ok {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) ByID(_ context.Context, id int) (*question.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeQuestionStore) SubjectsForExam(_ context.Context, examID string) ([]question.Subject, error) {
	seen := map[question.Subject]struct{}{}
	var out []question.Subject
	for _, q := range f.questions {
		if q.ExamID != examID {
			continue
		}
		if _, ok := seen[q.Subject]; ok {
			continue
		}
		seen[q.Subject] = struct{}{}
		out = append(out, q.Subject)
	}
	return out, nil
}

func (f *fakeQuestionStore) ClearAllQuestions(context.Context) error {
	f.questions = nil
	return nil
}

func (f *fakeQuestionStore) InsertQuestions(_ context.Context, questions []question.Question) error {
	f.questions = append(f.questions, questions...)
	return nil
}

// fakeStatsStore keeps statistics rows and log entries in memory, with a
// switch that makes every operation fail.
type fakeStatsStore struct {
	rows   map[string]stats.QuizStatistics
	logs   []stats.LogEntry
	nextID int64

	failing bool
}

var _ store.StatisticsStore = (*fakeStatsStore)(nil)

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{rows: make(map[string]stats.QuizStatistics)}
}

func (f *fakeStatsStore) GetSnapshot(_ context.Context, examID string) (*stats.QuizStatistics, error) {
	if f.failing {
		return nil, errStoreDown
	}
	row, ok := f.rows[examID]
	if !ok {
		return nil, nil
	}
	copied := row
	copied.SubjectStats = make(map[string]stats.SubjectStatDetail, len(row.SubjectStats))
	for k, v := range row.SubjectStats {
		copied.SubjectStats[k] = v
	}
	return &copied, nil
}

func (f *fakeStatsStore) Upsert(_ context.Context, qs stats.QuizStatistics) error {
	if f.failing {
		return errStoreDown
	}
	f.rows[qs.ExamID] = qs
	return nil
}

func (f *fakeStatsStore) EnsureRow(_ context.Context, examID string) error {
	if f.failing {
		return errStoreDown
	}
	if _, ok := f.rows[examID]; !ok {
		f.rows[examID] = stats.NewQuizStatistics(examID)
	}
	return nil
}

func (f *fakeStatsStore) DistinctLoggedQuestionIDs(context.Context) ([]int, error) {
	if f.failing {
		return nil, errStoreDown
	}
	seen := map[int]struct{}{}
	var ids []int
	for _, e := range f.logs {
		if _, ok := seen[e.QuestionID]; ok {
			continue
		}
		seen[e.QuestionID] = struct{}{}
		ids = append(ids, e.QuestionID)
	}
	return ids, nil
}

func (f *fakeStatsStore) LogsForQuestion(_ context.Context, questionID int) ([]stats.LogEntry, error) {
	if f.failing {
		return nil, errStoreDown
	}
	// Newest first, matching the store contract.
	var out []stats.LogEntry
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].QuestionID == questionID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeStatsStore) AllLogs(context.Context) ([]stats.LogEntry, error) {
	if f.failing {
		return nil, errStoreDown
	}
	out := make([]stats.LogEntry, len(f.logs))
	copy(out, f.logs)
	return out, nil
}

func (f *fakeStatsStore) InsertLog(_ context.Context, entry stats.LogEntry) (int64, error) {
	if f.failing {
		return 0, errStoreDown
	}
	f.nextID++
	entry.ID = f.nextID
	f.logs = append(f.logs, entry)
	return entry.ID, nil
}

func (f *fakeStatsStore) ClearLogs(_ context.Context, questionID int) error {
	if f.failing {
		return errStoreDown
	}
	var kept []stats.LogEntry
	for _, e := range f.logs {
		if e.QuestionID != questionID {
			kept = append(kept, e)
		}
	}
	f.logs = kept
	return nil
}

func (f *fakeStatsStore) ClearAllLogs(context.Context) error {
	if f.failing {
		return errStoreDown
	}
	f.logs = nil
	return nil
}

func logEntry(questionID int, answer string) stats.LogEntry {
	return stats.LogEntry{QuestionID: questionID, UserAnswer: answer, Timestamp: 1}
}

// fakePrefStore is an in-memory preference map.
type fakePrefStore struct {
	examID  string
	count   int
	filters []string
}

var _ store.PreferenceStore = (*fakePrefStore)(nil)

func (f *fakePrefStore) SelectedExamID(context.Context) (string, error) { return f.examID, nil }
func (f *fakePrefStore) SetSelectedExamID(_ context.Context, examID string) error {
	f.examID = examID
	return nil
}
func (f *fakePrefStore) SelectedCount(context.Context) (int, error) { return f.count, nil }
func (f *fakePrefStore) SetSelectedCount(_ context.Context, count int) error {
	f.count = count
	return nil
}
func (f *fakePrefStore) SelectedSubjectFilters(context.Context) ([]string, error) {
	return f.filters, nil
}
func (f *fakePrefStore) SetSelectedSubjectFilters(_ context.Context, names []string) error {
	f.filters = names
	return nil
}
