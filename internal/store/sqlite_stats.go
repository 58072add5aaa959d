// internal/store/sqlite_stats.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mediquiz/backend/internal/domain/stats"
)

// ============================================================================
// Statistics rows
// ============================================================================

func (s *SQLiteStore) GetSnapshot(ctx context.Context, examID string) (*stats.QuizStatistics, error) {
	var (
		qs          stats.QuizStatistics
		subjectJSON string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT exam_id, total_quizzes_completed, subject_stats FROM quiz_statistics WHERE exam_id = ?",
		examID,
	).Scan(&qs.ExamID, &qs.TotalQuizzesCompleted, &subjectJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(subjectJSON), &qs.SubjectStats); err != nil {
		return nil, fmt.Errorf("decode subject stats for exam %s: %w", examID, err)
	}
	if qs.SubjectStats == nil {
		qs.SubjectStats = map[string]stats.SubjectStatDetail{}
	}
	return &qs, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, qs stats.QuizStatistics) error {
	subjectJSON, err := json.Marshal(qs.SubjectStats)
	if err != nil {
		return fmt.Errorf("encode subject stats for exam %s: %w", qs.ExamID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quiz_statistics (exam_id, total_quizzes_completed, subject_stats)
		VALUES (?, ?, ?)
		ON CONFLICT(exam_id) DO UPDATE SET
		    total_quizzes_completed = excluded.total_quizzes_completed,
		    subject_stats = excluded.subject_stats`,
		qs.ExamID, qs.TotalQuizzesCompleted, string(subjectJSON),
	)
	return err
}

func (s *SQLiteStore) EnsureRow(ctx context.Context, examID string) error {
	// Insert-or-ignore resolves the concurrent-creation race: a second
	// caller's insert is a no-op against the existing row.
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO quiz_statistics (exam_id, total_quizzes_completed, subject_stats) VALUES (?, 0, '{}')",
		examID,
	)
	return err
}

// ============================================================================
// Incorrect-answer log
// ============================================================================

func (s *SQLiteStore) DistinctLoggedQuestionIDs(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT question_id FROM incorrect_answer_log ORDER BY question_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) scanLogs(rows *sql.Rows) ([]stats.LogEntry, error) {
	defer rows.Close()

	var entries []stats.LogEntry
	for rows.Next() {
		var e stats.LogEntry
		if err := rows.Scan(&e.ID, &e.QuestionID, &e.UserAnswer, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) LogsForQuestion(ctx context.Context, questionID int) ([]stats.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question_id, user_answer, timestamp FROM incorrect_answer_log WHERE question_id = ? ORDER BY timestamp DESC",
		questionID,
	)
	if err != nil {
		return nil, err
	}
	return s.scanLogs(rows)
}

func (s *SQLiteStore) AllLogs(ctx context.Context) ([]stats.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question_id, user_answer, timestamp FROM incorrect_answer_log ORDER BY timestamp DESC")
	if err != nil {
		return nil, err
	}
	return s.scanLogs(rows)
}

func (s *SQLiteStore) InsertLog(ctx context.Context, entry stats.LogEntry) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO incorrect_answer_log (question_id, user_answer, timestamp) VALUES (?, ?, ?)",
		entry.QuestionID, entry.UserAnswer, entry.Timestamp,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLiteStore) ClearLogs(ctx context.Context, questionID int) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM incorrect_answer_log WHERE question_id = ?", questionID)
	return err
}

func (s *SQLiteStore) ClearAllLogs(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM incorrect_answer_log")
	return err
}
