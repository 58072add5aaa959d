package stats

// SubjectStatDetail tracks cumulative counters for a single subject.
// Counters only ever grow (additive merge); the sole exception is a full
// history clear, which drops the whole row.
type SubjectStatDetail struct {
	TotalAnswered int `json:"total_answered"`
	TotalCorrect  int `json:"total_correct"` // invariant: TotalCorrect <= TotalAnswered
}

// QuizStatistics is the cumulative per-exam statistics row. One row per
// exam id, created lazily on first access and never deleted.
type QuizStatistics struct {
	ExamID                string
	TotalQuizzesCompleted int
	SubjectStats          map[string]SubjectStatDetail
}

// NewQuizStatistics returns a zeroed row for the given exam.
func NewQuizStatistics(examID string) QuizStatistics {
	return QuizStatistics{
		ExamID:       examID,
		SubjectStats: map[string]SubjectStatDetail{},
	}
}

// Merge folds one quiz's per-subject deltas into the cumulative counters and
// bumps the completed-quiz count by one. Subjects not seen before start from
// zero. The receiver is unchanged; the merged row is returned.
func (qs QuizStatistics) Merge(deltas map[string]SubjectStatDetail) QuizStatistics {
	merged := QuizStatistics{
		ExamID:                qs.ExamID,
		TotalQuizzesCompleted: qs.TotalQuizzesCompleted + 1,
		SubjectStats:          make(map[string]SubjectStatDetail, len(qs.SubjectStats)+len(deltas)),
	}
	for subject, detail := range qs.SubjectStats {
		merged.SubjectStats[subject] = detail
	}
	for subject, delta := range deltas {
		existing := merged.SubjectStats[subject]
		merged.SubjectStats[subject] = SubjectStatDetail{
			TotalAnswered: existing.TotalAnswered + delta.TotalAnswered,
			TotalCorrect:  existing.TotalCorrect + delta.TotalCorrect,
		}
	}
	return merged
}

// TotalAnswered sums answered counts over all subjects.
func (qs QuizStatistics) TotalAnswered() int {
	total := 0
	for _, detail := range qs.SubjectStats {
		total += detail.TotalAnswered
	}
	return total
}

// TotalCorrect sums correct counts over all subjects.
func (qs QuizStatistics) TotalCorrect() int {
	total := 0
	for _, detail := range qs.SubjectStats {
		total += detail.TotalCorrect
	}
	return total
}

// LogEntry is one append-only record of a wrong answer given outside review
// mode. Entries are deleted per question or in bulk, never updated.
type LogEntry struct {
	ID         int64
	QuestionID int
	UserAnswer string
	Timestamp  int64 // epoch millis, kept for future spaced-repetition use
}
