package quiz

import (
	"strconv"
	"strings"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/stats"
)

// Session is one quiz attempt: a snapshot of sampled questions, a parallel
// set of answer slots, a cursor, and the review-mode flag. A session is
// owned by a single caller; it carries no locking of its own.
//
// Lifecycle: empty → in progress → submitted → in progress again via retake.
type Session struct {
	ExamID    string
	Questions []question.Question
	answers   []*string // one slot per question, nil = unanswered
	index     int
	Review    bool
	ReviewIDs []int // only set in review mode
	Submitted bool
}

// New builds an in-progress session over the given question snapshot.
// reviewIDs must be nil for a normal session.
func New(examID string, questions []question.Question, reviewIDs []int) *Session {
	s := &Session{
		ExamID:    examID,
		Questions: questions,
		Review:    len(reviewIDs) > 0,
		ReviewIDs: reviewIDs,
	}
	s.Reset()
	return s
}

// Reset clears the answer slots, the cursor and the submitted flag, keeping
// the loaded questions. Used by retake after re-sampling.
func (s *Session) Reset() {
	s.answers = make([]*string, len(s.Questions))
	s.index = 0
	s.Submitted = false
}

// SelectAnswer records the choice for the question at index i.
// Out-of-range indices are ignored.
func (s *Session) SelectAnswer(i int, answer string) {
	if i < 0 || i >= len(s.answers) {
		return
	}
	s.answers[i] = &answer
}

// SelectedAnswer returns the recorded choice for index i, or nil when the
// question is unanswered or i is out of range.
func (s *Session) SelectedAnswer(i int) *string {
	if i < 0 || i >= len(s.answers) {
		return nil
	}
	return s.answers[i]
}

// SelectedAnswers returns a copy of all answer slots.
func (s *Session) SelectedAnswers() []*string {
	out := make([]*string, len(s.answers))
	copy(out, s.answers)
	return out
}

// MoveTo changes the current question index. Out-of-range indices are ignored.
func (s *Session) MoveTo(i int) {
	if i < 0 || i >= len(s.Questions) {
		return
	}
	s.index = i
}

// Index returns the current question index.
func (s *Session) Index() int { return s.index }

// Outcome is the graded result for a single question.
type Outcome struct {
	Question question.Question
	Selected *string
	Correct  bool
}

// Result is the full grading pass over a session.
type Result struct {
	CorrectCount int
	Total        int
	Outcomes     []Outcome
	// SubjectDeltas is the per-subject answered/correct delta for this quiz.
	// Every question counts as answered, including unanswered slots.
	// Nil for review sessions, which never touch cumulative statistics.
	SubjectDeltas map[string]stats.SubjectStatDetail
}

// Grade scores the session. It is a pure computation; persisting the result
// (statistics merge, incorrect-answer logging) is the caller's concern.
func (s *Session) Grade() Result {
	res := Result{
		Total:    len(s.Questions),
		Outcomes: make([]Outcome, 0, len(s.Questions)),
	}
	if !s.Review {
		res.SubjectDeltas = map[string]stats.SubjectStatDetail{}
	}

	for i, q := range s.Questions {
		selected := s.answers[i]
		correct := selected != nil && *selected == q.CorrectAnswer

		if correct {
			res.CorrectCount++
		}
		if !s.Review {
			delta := res.SubjectDeltas[q.Subject.String()]
			delta.TotalAnswered++
			if correct {
				delta.TotalCorrect++
			}
			res.SubjectDeltas[q.Subject.String()] = delta
		}

		res.Outcomes = append(res.Outcomes, Outcome{Question: q, Selected: selected, Correct: correct})
	}
	return res
}

// ParseReviewIDs splits a comma-separated id list, dropping every token that
// is not a positive integer. An empty result means review mode is off; a
// non-empty one is the sole signal that turns it on.
func ParseReviewIDs(csv string) []int {
	if csv == "" {
		return nil
	}
	var ids []int
	for _, token := range strings.Split(csv, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n <= 0 {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}
