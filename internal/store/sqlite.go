// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mediquiz/backend/internal/domain/question"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY,
    exam_id TEXT NOT NULL,
    question_text TEXT NOT NULL,
    answers TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    subject TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_exam ON questions(exam_id);

CREATE TABLE IF NOT EXISTS quiz_statistics (
    exam_id TEXT PRIMARY KEY,
    total_quizzes_completed INTEGER NOT NULL DEFAULT 0,
    subject_stats TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS incorrect_answer_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL,
    user_answer TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_incorrect_log_question ON incorrect_answer_log(question_id);

CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore implements QuestionStore, StatisticsStore and PreferenceStore
// on a single embedded database.
type SQLiteStore struct {
	db *sql.DB
}

// Interface checks.
var (
	_ QuestionStore   = (*SQLiteStore)(nil)
	_ StatisticsStore = (*SQLiteStore)(nil)
	_ PreferenceStore = (*SQLiteStore)(nil)
)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	// Cascade deletion of log rows relies on foreign keys being enabled
	// on every connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	// SQLite has a single writer, and an in-memory database is scoped to
	// its connection, so the pool is capped at one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Questions
// ============================================================================

const questionColumns = "id, exam_id, question_text, answers, correct_answer, subject"

func scanQuestion(row interface{ Scan(...any) error }) (question.Question, error) {
	var q question.Question
	var answersJSON, subject string
	if err := row.Scan(&q.ID, &q.ExamID, &q.Text, &answersJSON, &q.CorrectAnswer, &subject); err != nil {
		return question.Question{}, err
	}
	if err := json.Unmarshal([]byte(answersJSON), &q.Answers); err != nil {
		return question.Question{}, fmt.Errorf("decode answers for question %d: %w", q.ID, err)
	}
	q.Subject = question.ParseSubject(subject)
	return q, nil
}

func (s *SQLiteStore) queryQuestions(ctx context.Context, query string, args ...any) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) SampleRandom(ctx context.Context, examID string, count int, subjects []question.Subject) ([]question.Question, error) {
	if len(subjects) == 0 {
		return s.queryQuestions(ctx,
			"SELECT "+questionColumns+" FROM questions WHERE exam_id = ? ORDER BY RANDOM() LIMIT ?",
			examID, count,
		)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(subjects)), ",")
	args := make([]any, 0, len(subjects)+2)
	args = append(args, examID)
	for _, sub := range subjects {
		args = append(args, sub.String())
	}
	args = append(args, count)

	return s.queryQuestions(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE exam_id = ? AND subject IN ("+placeholders+") ORDER BY RANDOM() LIMIT ?",
		args...,
	)
}

func (s *SQLiteStore) ByIDsForExam(ctx context.Context, examID string, ids []int, limit int) ([]question.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+2)
	args = append(args, examID)
	for _, id := range ids {
		args = append(args, id)
	}

	query := "SELECT " + questionColumns + " FROM questions WHERE exam_id = ? AND id IN (" + placeholders + ")"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryQuestions(ctx, query, args...)
}

func (s *SQLiteStore) ByID(ctx context.Context, id int) (*question.Question, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE id = ?", id)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *SQLiteStore) SubjectsForExam(ctx context.Context, examID string) ([]question.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT subject FROM questions WHERE exam_id = ? ORDER BY subject", examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []question.Subject
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		subjects = append(subjects, question.ParseSubject(name))
	}
	return subjects, rows.Err()
}

func (s *SQLiteStore) ClearAllQuestions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM questions")
	return err
}

func (s *SQLiteStore) InsertQuestions(ctx context.Context, questions []question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range questions {
		answersJSON, err := json.Marshal(q.Answers)
		if err != nil {
			return fmt.Errorf("encode answers for question %d: %w", q.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO questions (id, exam_id, question_text, answers, correct_answer, subject) VALUES (?, ?, ?, ?, ?, ?)",
			q.ID, q.ExamID, q.Text, string(answersJSON), q.CorrectAnswer, q.Subject.String(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ============================================================================
// Preferences
// ============================================================================

const (
	prefSelectedExamID        = "selected_exam_id"
	prefSelectedCount         = "selected_count"
	prefSelectedSubjectFilter = "selected_subject_filters"
)

func (s *SQLiteStore) getPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) setPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *SQLiteStore) SelectedExamID(ctx context.Context) (string, error) {
	return s.getPreference(ctx, prefSelectedExamID)
}

func (s *SQLiteStore) SetSelectedExamID(ctx context.Context, examID string) error {
	return s.setPreference(ctx, prefSelectedExamID, examID)
}

func (s *SQLiteStore) SelectedCount(ctx context.Context) (int, error) {
	value, err := s.getPreference(ctx, prefSelectedCount)
	if err != nil || value == "" {
		return 0, err
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		// A corrupt value behaves like an unset one.
		return 0, nil
	}
	return count, nil
}

func (s *SQLiteStore) SetSelectedCount(ctx context.Context, count int) error {
	return s.setPreference(ctx, prefSelectedCount, strconv.Itoa(count))
}

func (s *SQLiteStore) SelectedSubjectFilters(ctx context.Context) ([]string, error) {
	value, err := s.getPreference(ctx, prefSelectedSubjectFilter)
	if err != nil || value == "" {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(value), &names); err != nil {
		return nil, nil
	}
	return names, nil
}

func (s *SQLiteStore) SetSelectedSubjectFilters(ctx context.Context, names []string) error {
	if len(names) == 0 {
		_, err := s.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = ?", prefSelectedSubjectFilter)
		return err
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.setPreference(ctx, prefSelectedSubjectFilter, string(encoded))
}
