package question

// Exam is a named collection of subjects with an associated question pool.
// The catalog is fixed at build time; the default exam is "au2".
type Exam struct {
	ID          string
	DisplayName string
	Subjects    []Subject
}

const DefaultExamID = "au2"

var exams = []Exam{
	{
		ID:          "au2",
		DisplayName: "Anatomia Umana II",
		Subjects: []Subject{
			SubjectCavoOrale, SubjectFaringe, SubjectParotide,
			SubjectTiroide, SubjectEsofago, SubjectStomaco,
			SubjectIntestinoTenue, SubjectIntestinoCrasso, SubjectFegato,
			SubjectPancreas, SubjectReni, SubjectSurrene,
			SubjectVescica, SubjectAppGenMasc, SubjectAppGenFemm,
			SubjectSNP, SubjectSNC, SubjectMidolloSpinale,
			SubjectBulboSpinale, SubjectCervelletto, SubjectMesencefalo,
			SubjectTroncoEncefalico, SubjectTalamo, SubjectTelencefalo,
			SubjectIpofisi, SubjectVista, SubjectUdito,
			SubjectNerviCranici,
		},
	},
	{
		ID:          "mei",
		DisplayName: "Microbiologia e Immunologia",
		Subjects:    []Subject{SubjectMicrobiology, SubjectImmunology, SubjectVirology},
	},
	{
		ID:          "fu2",
		DisplayName: "Fisiologia Umana II",
		Subjects:    []Subject{SubjectPhysiology, SubjectBiophysics},
	},
}

// Exams returns the full exam catalog in display order.
func Exams() []Exam {
	out := make([]Exam, len(exams))
	copy(out, exams)
	return out
}

// ExamByID looks an exam up by its id. The second return is false when no
// exam matches.
func ExamByID(id string) (Exam, bool) {
	for _, e := range exams {
		if e.ID == id {
			return e, true
		}
	}
	return Exam{}, false
}

// HasSubject reports whether s belongs to the exam's subject list.
func (e Exam) HasSubject(s Subject) bool {
	for _, sub := range e.Subjects {
		if sub == s {
			return true
		}
	}
	return false
}
