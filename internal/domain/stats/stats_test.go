package stats_test

import (
	"testing"

	"github.com/mediquiz/backend/internal/domain/stats"
)

func TestMerge_NewSubjectsStartFromZero(t *testing.T) {
	qs := stats.NewQuizStatistics("au2")

	merged := qs.Merge(map[string]stats.SubjectStatDetail{
		"FEGATO": {TotalAnswered: 3, TotalCorrect: 1},
	})

	if merged.TotalQuizzesCompleted != 1 {
		t.Errorf("expected 1 completed quiz, got %d", merged.TotalQuizzesCompleted)
	}
	got := merged.SubjectStats["FEGATO"]
	if got.TotalAnswered != 3 || got.TotalCorrect != 1 {
		t.Errorf("unexpected FEGATO counters: %+v", got)
	}
}

func TestMerge_IsAdditive(t *testing.T) {
	qs := stats.NewQuizStatistics("au2")

	deltas := []map[string]stats.SubjectStatDetail{
		{"FEGATO": {TotalAnswered: 3, TotalCorrect: 1}},
		{"FEGATO": {TotalAnswered: 2, TotalCorrect: 2}, "RENI": {TotalAnswered: 1, TotalCorrect: 0}},
		{"RENI": {TotalAnswered: 4, TotalCorrect: 3}},
	}
	for _, d := range deltas {
		qs = qs.Merge(d)
	}

	if qs.TotalQuizzesCompleted != 3 {
		t.Errorf("expected 3 completed quizzes, got %d", qs.TotalQuizzesCompleted)
	}

	fegato := qs.SubjectStats["FEGATO"]
	if fegato.TotalAnswered != 5 || fegato.TotalCorrect != 3 {
		t.Errorf("unexpected FEGATO counters: %+v", fegato)
	}
	reni := qs.SubjectStats["RENI"]
	if reni.TotalAnswered != 5 || reni.TotalCorrect != 3 {
		t.Errorf("unexpected RENI counters: %+v", reni)
	}
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	qs := stats.NewQuizStatistics("au2")
	qs.SubjectStats["SNC"] = stats.SubjectStatDetail{TotalAnswered: 1, TotalCorrect: 1}

	_ = qs.Merge(map[string]stats.SubjectStatDetail{"SNC": {TotalAnswered: 1}})

	if qs.TotalQuizzesCompleted != 0 {
		t.Error("merge mutated receiver's quiz count")
	}
	if qs.SubjectStats["SNC"].TotalAnswered != 1 {
		t.Error("merge mutated receiver's subject map")
	}
}

func TestTotals(t *testing.T) {
	qs := stats.NewQuizStatistics("au2")
	qs.SubjectStats["SNC"] = stats.SubjectStatDetail{TotalAnswered: 10, TotalCorrect: 7}
	qs.SubjectStats["RENI"] = stats.SubjectStatDetail{TotalAnswered: 5, TotalCorrect: 2}

	if got := qs.TotalAnswered(); got != 15 {
		t.Errorf("TotalAnswered = %d, want 15", got)
	}
	if got := qs.TotalCorrect(); got != 9 {
		t.Errorf("TotalCorrect = %d, want 9", got)
	}
}

func TestTotals_EmptyStats(t *testing.T) {
	qs := stats.NewQuizStatistics("au2")
	if qs.TotalAnswered() != 0 || qs.TotalCorrect() != 0 {
		t.Error("expected zero totals for empty stats")
	}
}
