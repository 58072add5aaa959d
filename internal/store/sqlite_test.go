package store_test

import (
	"context"
	"testing"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/stats"
	"github.com/mediquiz/backend/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedQuestions(t *testing.T, s *store.SQLiteStore, questions []question.Question) {
	t.Helper()
	if err := s.InsertQuestions(context.Background(), questions); err != nil {
		t.Fatalf("failed to seed questions: %v", err)
	}
}

func q(id int, examID string, subject question.Subject) question.Question {
	return question.Question{
		ID:            id,
		ExamID:        examID,
		Text:          "text",
		Answers:       []string{"a", "b", "c"},
		CorrectAnswer: "a",
		Subject:       subject,
	}
}

func TestSampleRandom_FiltersByExamAndSubject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedQuestions(t, s, []question.Question{
		q(1, "au2", question.SubjectFegato),
		q(2, "au2", question.SubjectReni),
		q(3, "mei", question.SubjectVirology),
	})

	all, err := s.SampleRandom(ctx, "au2", 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 au2 questions, got %d", len(all))
	}

	filtered, err := s.SampleRandom(ctx, "au2", 10, []question.Subject{question.SubjectReni})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != 2 {
		t.Errorf("expected only question 2, got %v", filtered)
	}
}

func TestSampleRandom_RespectsCount(t *testing.T) {
	s := newTestStore(t)
	var qs []question.Question
	for i := 1; i <= 20; i++ {
		qs = append(qs, q(i, "au2", question.SubjectSNC))
	}
	seedQuestions(t, s, qs)

	sampled, err := s.SampleRandom(context.Background(), "au2", 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sampled) != 5 {
		t.Errorf("expected 5 questions, got %d", len(sampled))
	}
}

func TestByIDsForExam(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedQuestions(t, s, []question.Question{
		q(5, "au2", question.SubjectFegato),
		q(9, "au2", question.SubjectFegato),
		q(11, "mei", question.SubjectVirology),
	})

	got, err := s.ByIDsForExam(ctx, "au2", []int{5, 9, 11, 99}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected questions 5 and 9 only, got %v", got)
	}

	capped, err := s.ByIDsForExam(ctx, "au2", []int{5, 9}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(capped) != 1 {
		t.Errorf("expected limit to cap result at 1, got %d", len(capped))
	}

	empty, err := s.ByIDsForExam(ctx, "au2", nil, 10)
	if err != nil || empty != nil {
		t.Errorf("expected nil result for empty id set, got %v, %v", empty, err)
	}
}

func TestByID_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ByID(context.Background(), 42)
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubjectsForExam(t *testing.T) {
	s := newTestStore(t)
	seedQuestions(t, s, []question.Question{
		q(1, "au2", question.SubjectFegato),
		q(2, "au2", question.SubjectFegato),
		q(3, "au2", question.SubjectReni),
	})

	subjects, err := s.SubjectsForExam(context.Background(), "au2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subjects) != 2 {
		t.Errorf("expected 2 distinct subjects, got %v", subjects)
	}
}

func TestEnsureRow_NeverResetsCounters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureRow(ctx, "au2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := stats.NewQuizStatistics("au2")
	row.TotalQuizzesCompleted = 3
	row.SubjectStats["FEGATO"] = stats.SubjectStatDetail{TotalAnswered: 5, TotalCorrect: 2}
	if err := s.Upsert(ctx, row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-ensuring must be a no-op against the populated row.
	if err := s.EnsureRow(ctx, "au2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetSnapshot(ctx, "au2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalQuizzesCompleted != 3 {
		t.Errorf("EnsureRow reset counters: %+v", got)
	}
	if got.SubjectStats["FEGATO"].TotalAnswered != 5 {
		t.Errorf("EnsureRow reset subject stats: %+v", got.SubjectStats)
	}
}

func TestGetSnapshot_MissingRowIsNil(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetSnapshot(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil snapshot for missing row, got %+v", got)
	}
}

func TestIncorrectLog_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedQuestions(t, s, []question.Question{q(7, "au2", question.SubjectSNC)})

	for i, answer := range []string{"first", "second"} {
		_, err := s.InsertLog(ctx, stats.LogEntry{QuestionID: 7, UserAnswer: answer, Timestamp: int64(100 + i)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	logs, err := s.LogsForQuestion(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	// Newest first.
	if logs[0].UserAnswer != "second" {
		t.Errorf("expected newest entry first, got %q", logs[0].UserAnswer)
	}

	ids, err := s.DistinctLoggedQuestionIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 7 {
		t.Errorf("expected distinct id [7], got %v", ids)
	}

	if err := s.ClearLogs(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logs, _ = s.LogsForQuestion(ctx, 7)
	if len(logs) != 0 {
		t.Errorf("expected logs cleared, got %d", len(logs))
	}
}

func TestIncorrectLog_CascadeOnQuestionDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedQuestions(t, s, []question.Question{q(7, "au2", question.SubjectSNC)})

	if _, err := s.InsertLog(ctx, stats.LogEntry{QuestionID: 7, UserAnswer: "x", Timestamp: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.ClearAllQuestions(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, err := s.AllLogs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("expected cascade delete of log rows, got %d entries", len(logs))
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Unset keys report zero values.
	examID, err := s.SelectedExamID(ctx)
	if err != nil || examID != "" {
		t.Errorf("expected empty exam id, got %q, %v", examID, err)
	}
	count, err := s.SelectedCount(ctx)
	if err != nil || count != 0 {
		t.Errorf("expected zero count, got %d, %v", count, err)
	}

	if err := s.SetSelectedExamID(ctx, "mei"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetSelectedCount(ctx, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetSelectedSubjectFilters(ctx, []string{"VIROLOGY", "IMMUNOLOGY"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	examID, _ = s.SelectedExamID(ctx)
	if examID != "mei" {
		t.Errorf("expected mei, got %q", examID)
	}
	count, _ = s.SelectedCount(ctx)
	if count != 20 {
		t.Errorf("expected 20, got %d", count)
	}
	filters, _ := s.SelectedSubjectFilters(ctx)
	if len(filters) != 2 {
		t.Errorf("expected 2 filters, got %v", filters)
	}

	// Setting an empty filter set removes the key.
	if err := s.SetSelectedSubjectFilters(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filters, _ = s.SelectedSubjectFilters(ctx)
	if len(filters) != 0 {
		t.Errorf("expected filters cleared, got %v", filters)
	}
}
