// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/quiz"
	"github.com/mediquiz/backend/internal/store"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// SubmissionResult is the tally returned by Submit.
type SubmissionResult struct {
	CorrectAnswers int
	TotalQuestions int
}

// QuizService owns the lifecycle of quiz attempts: sampling a question set,
// tracking answers, scoring, and driving the StatisticsService on
// submission. Each session has a single logical owner; the registry lock only
// guards the map itself.
type QuizService struct {
	questions  store.QuestionStore
	prefs      store.PreferenceStore
	statistics *StatisticsService
	logger     *slog.Logger

	defaultExamID string
	defaultCount  int

	mu       sync.RWMutex
	sessions map[string]*quiz.Session
}

// NewQuizService creates a QuizService. defaultExamID and defaultCount are
// the fallbacks used when the user has no persisted selection.
func NewQuizService(
	questions store.QuestionStore,
	prefs store.PreferenceStore,
	statistics *StatisticsService,
	logger *slog.Logger,
	defaultExamID string,
	defaultCount int,
) *QuizService {
	return &QuizService{
		questions:     questions,
		prefs:         prefs,
		statistics:    statistics,
		logger:        logger,
		defaultExamID: defaultExamID,
		defaultCount:  defaultCount,
		sessions:      make(map[string]*quiz.Session),
	}
}

// CurrentExam resolves the user's selected exam, falling back to the default
// when unset or unknown.
func (qs *QuizService) CurrentExam(ctx context.Context) question.Exam {
	examID, err := qs.prefs.SelectedExamID(ctx)
	if err != nil {
		qs.logger.Error("failed to read selected exam", "error", err)
	}
	if exam, ok := question.ExamByID(examID); ok {
		return exam
	}
	exam, _ := question.ExamByID(qs.defaultExamID)
	return exam
}

// SelectedCount resolves the user's question-count preference, falling back
// to the default when unset.
func (qs *QuizService) SelectedCount(ctx context.Context) int {
	count, err := qs.prefs.SelectedCount(ctx)
	if err != nil {
		qs.logger.Error("failed to read selected count", "error", err)
	}
	if count <= 0 {
		return qs.defaultCount
	}
	return count
}

// AppliedFilters returns the persisted subject filters that are valid for
// the given exam. Unknown names and subjects outside the exam are dropped.
func (qs *QuizService) AppliedFilters(ctx context.Context, exam question.Exam) []question.Subject {
	names, err := qs.prefs.SelectedSubjectFilters(ctx)
	if err != nil {
		qs.logger.Error("failed to read subject filters", "error", err)
		return nil
	}
	var filters []question.Subject
	for _, name := range names {
		subject := question.ParseSubject(name)
		if exam.HasSubject(subject) {
			filters = append(filters, subject)
		}
	}
	return filters
}

// PrepareQuiz samples a question set and registers a new session.
//
// reviewCSV is the sole review-mode signal: any positive integers in it put
// the session in review mode, loading exactly those questions (capped at the
// selected count, store order). Otherwise a random sample is drawn — from the
// whole catalog when useAllSubjects is set or no valid filters are applied,
// from the filtered subjects otherwise. Getting fewer questions than
// requested is not an error.
func (qs *QuizService) PrepareQuiz(ctx context.Context, reviewCSV string, useAllSubjects bool) (string, *quiz.Session, error) {
	exam := qs.CurrentExam(ctx)
	count := qs.SelectedCount(ctx)
	reviewIDs := quiz.ParseReviewIDs(reviewCSV)

	session, err := qs.loadSession(ctx, exam, count, reviewIDs, useAllSubjects)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	qs.mu.Lock()
	qs.sessions[id] = session
	qs.mu.Unlock()

	qs.logger.Info("quiz prepared",
		"session_id", id,
		"exam_id", exam.ID,
		"questions", len(session.Questions),
		"review_mode", session.Review,
	)
	return id, session, nil
}

func (qs *QuizService) loadSession(ctx context.Context, exam question.Exam, count int, reviewIDs []int, useAllSubjects bool) (*quiz.Session, error) {
	if len(reviewIDs) > 0 {
		questions, err := qs.questions.ByIDsForExam(ctx, exam.ID, reviewIDs, count)
		if err != nil {
			return nil, fmt.Errorf("load review questions: %w", err)
		}
		return quiz.New(exam.ID, questions, reviewIDs), nil
	}

	var filters []question.Subject
	if !useAllSubjects {
		filters = qs.AppliedFilters(ctx, exam)
	}
	questions, err := qs.questions.SampleRandom(ctx, exam.ID, count, filters)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	return quiz.New(exam.ID, questions, nil), nil
}

// SubjectsForExam lists the distinct subjects present in the exam's stored
// catalog.
func (qs *QuizService) SubjectsForExam(ctx context.Context, examID string) ([]question.Subject, error) {
	return qs.questions.SubjectsForExam(ctx, examID)
}

// Session returns the registered session for id.
func (qs *QuizService) Session(id string) (*quiz.Session, error) {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	session, ok := qs.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SelectAnswer records an answer choice on a session.
func (qs *QuizService) SelectAnswer(id string, index int, answer string) error {
	session, err := qs.Session(id)
	if err != nil {
		return err
	}
	session.SelectAnswer(index, answer)
	return nil
}

// MoveTo changes a session's current question index.
func (qs *QuizService) MoveTo(id string, index int) error {
	session, err := qs.Session(id)
	if err != nil {
		return err
	}
	session.MoveTo(index)
	return nil
}

// ApplySubjectFilters persists a new filter selection and re-samples the
// session. Filter changes are ignored while the session is in review mode.
func (qs *QuizService) ApplySubjectFilters(ctx context.Context, id string, names []string) error {
	session, err := qs.Session(id)
	if err != nil {
		return err
	}
	if session.Review {
		qs.logger.Info("subject filters ignored for review session", "session_id", id)
		return nil
	}

	if err := qs.prefs.SetSelectedSubjectFilters(ctx, names); err != nil {
		return fmt.Errorf("persist subject filters: %w", err)
	}

	exam := qs.CurrentExam(ctx)
	fresh, err := qs.loadSession(ctx, exam, qs.SelectedCount(ctx), nil, false)
	if err != nil {
		return err
	}
	*session = *fresh
	return nil
}

// Submit grades a session and persists the result.
//
// Review mode: every correctly answered question graduates out of the review
// list (its logs are cleared); nothing else is recorded. Normal mode: every
// explicit wrong answer is logged, and the full per-subject delta map is
// merged into cumulative statistics in a single RecordQuizCompletion call.
// Re-submitting an already-submitted session returns the same tally without
// recording anything again.
func (qs *QuizService) Submit(ctx context.Context, id string) (SubmissionResult, error) {
	session, err := qs.Session(id)
	if err != nil {
		return SubmissionResult{}, err
	}

	result := session.Grade()

	// A client retry of the submit request must not double-count: grading is
	// pure, so the tally can be returned again without touching statistics or
	// the incorrect-answer log.
	if session.Submitted {
		return SubmissionResult{CorrectAnswers: result.CorrectCount, TotalQuestions: result.Total}, nil
	}

	for _, outcome := range result.Outcomes {
		if outcome.Correct {
			if session.Review {
				qs.statistics.ClearLogsForQuestion(ctx, outcome.Question.ID)
			}
			continue
		}
		if outcome.Selected != nil && !session.Review {
			qs.statistics.LogIncorrectAnswer(ctx, outcome.Question.ID, *outcome.Selected)
		}
	}

	if !session.Review {
		qs.statistics.RecordQuizCompletion(ctx, session.ExamID, result.SubjectDeltas)
	}

	session.Submitted = true
	qs.logger.Info("quiz submitted",
		"session_id", id,
		"exam_id", session.ExamID,
		"score", result.CorrectCount,
		"total", result.Total,
		"review_mode", session.Review,
	)
	return SubmissionResult{CorrectAnswers: result.CorrectCount, TotalQuestions: result.Total}, nil
}

// Retake re-samples a session with its original mode: review ids are kept
// for review sessions; a normal session re-samples with the current filters,
// using the whole catalog when none are applied.
func (qs *QuizService) Retake(ctx context.Context, id string) (*quiz.Session, error) {
	session, err := qs.Session(id)
	if err != nil {
		return nil, err
	}

	exam := qs.CurrentExam(ctx)
	count := qs.SelectedCount(ctx)

	var fresh *quiz.Session
	if session.Review {
		fresh, err = qs.loadSession(ctx, exam, count, session.ReviewIDs, false)
	} else {
		useAll := len(qs.AppliedFilters(ctx, exam)) == 0
		fresh, err = qs.loadSession(ctx, exam, count, nil, useAll)
	}
	if err != nil {
		return nil, err
	}

	*session = *fresh
	return session, nil
}

// Drop removes a session from the registry once its screen goes away.
func (qs *QuizService) Drop(id string) {
	qs.mu.Lock()
	delete(qs.sessions, id)
	qs.mu.Unlock()
}
