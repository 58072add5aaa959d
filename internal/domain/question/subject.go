package question

import "strings"

// Subject is the topical tag on a question, used for filtering and
// per-topic statistics.
type Subject string

const (
	SubjectCavoOrale       Subject = "CAVO_ORALE"
	SubjectFaringe         Subject = "FARINGE"
	SubjectParotide        Subject = "PAROTIDE"
	SubjectTiroide         Subject = "TIROIDE"
	SubjectEsofago         Subject = "ESOFAGO"
	SubjectStomaco         Subject = "STOMACO"
	SubjectIntestinoTenue  Subject = "INTESTINO_TENUE"
	SubjectIntestinoCrasso Subject = "INTESTINO_CRASSO"
	SubjectFegato          Subject = "FEGATO"
	SubjectPancreas        Subject = "PANCREAS"
	SubjectReni            Subject = "RENI"
	SubjectSurrene         Subject = "SURRENE"
	SubjectVescica         Subject = "VESCICA"
	SubjectAppGenMasc      Subject = "APP_GEN_MASC"
	SubjectAppGenFemm      Subject = "APP_GEN_FEMM"
	SubjectSNP             Subject = "SNP"
	SubjectSNC             Subject = "SNC"
	SubjectMidolloSpinale  Subject = "MIDOLLO_SPINALE"
	SubjectBulboSpinale    Subject = "BULBO_SPINALE"
	SubjectCervelletto     Subject = "CERVELLETTO"
	SubjectMesencefalo     Subject = "MESENCEFALO"
	SubjectTroncoEncefalico Subject = "TRONCO_ENCEFALICO"
	SubjectTalamo          Subject = "TALAMO"
	SubjectTelencefalo     Subject = "TELENCEFALO"
	SubjectIpofisi         Subject = "IPOFISI"
	SubjectVista           Subject = "VISTA"
	SubjectUdito           Subject = "UDITO"
	SubjectNerviCranici    Subject = "NERVI_CRANICI"
	SubjectImmunology      Subject = "IMMUNOLOGY"
	SubjectMicrobiology    Subject = "MICROBIOLOGY"
	SubjectVirology        Subject = "VIROLOGY"
	SubjectBiophysics      Subject = "BIOPHYSICS"
	SubjectPhysiology      Subject = "PHYSIOLOGY"

	// SubjectNotAssigned is the sentinel for questions whose subject tag
	// is missing or unknown. It never appears in an exam's subject list.
	SubjectNotAssigned Subject = "NOT_ASSIGNED"
)

var knownSubjects = map[Subject]struct{}{
	SubjectCavoOrale: {}, SubjectFaringe: {}, SubjectParotide: {},
	SubjectTiroide: {}, SubjectEsofago: {}, SubjectStomaco: {},
	SubjectIntestinoTenue: {}, SubjectIntestinoCrasso: {}, SubjectFegato: {},
	SubjectPancreas: {}, SubjectReni: {}, SubjectSurrene: {},
	SubjectVescica: {}, SubjectAppGenMasc: {}, SubjectAppGenFemm: {},
	SubjectSNP: {}, SubjectSNC: {}, SubjectMidolloSpinale: {},
	SubjectBulboSpinale: {}, SubjectCervelletto: {}, SubjectMesencefalo: {},
	SubjectTroncoEncefalico: {}, SubjectTalamo: {}, SubjectTelencefalo: {},
	SubjectIpofisi: {}, SubjectVista: {}, SubjectUdito: {},
	SubjectNerviCranici: {}, SubjectImmunology: {}, SubjectMicrobiology: {},
	SubjectVirology: {}, SubjectBiophysics: {}, SubjectPhysiology: {},
	SubjectNotAssigned: {},
}

// ParseSubject maps a raw subject name (as persisted or as received from the
// remote catalog) onto a known Subject. Unknown names fall back to
// SubjectNotAssigned rather than erroring, so a malformed payload can never
// fail a sync.
func ParseSubject(name string) Subject {
	s := Subject(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := knownSubjects[s]; ok {
		return s
	}
	return SubjectNotAssigned
}

func (s Subject) String() string { return string(s) }
