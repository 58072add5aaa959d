package question

// Question is one multiple-choice entry of an exam's catalog. Questions are
// read-only to the quiz engine; the whole catalog is replaced wholesale by a
// remote sync.
type Question struct {
	ID            int
	ExamID        string
	Text          string
	Answers       []string // presented choices, in order
	CorrectAnswer string   // must equal one element of Answers
	Subject       Subject
}
