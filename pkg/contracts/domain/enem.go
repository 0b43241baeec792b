package domain

// Exam (ENEM microdata) columns
const (
	ColRegistration     = "NU_INSCRICAO"
	ColSex              = "TP_SEXO"
	ColAge              = "NU_IDADE"
	ColMunicipalityCode = "CO_MUNICIPIO_RESIDENCIA"
	ColMunicipalityName = "NO_MUNICIPIO_RESIDENCIA"
	ColState            = "SG_UF_RESIDENCIA"
	ColSchoolType       = "TP_ESCOLA"
	ColTeachingType     = "TP_ENSINO"
	ColTrainee          = "IN_TREINEIRO"
	ColSchoolCode       = "CO_ESCOLA"
	ColScoreCN          = "NU_NOTA_CN"
	ColScoreCH          = "NU_NOTA_CH"
	ColScoreLC          = "NU_NOTA_LC"
	ColScoreMT          = "NU_NOTA_MT"
	ColScoreEssay       = "NU_NOTA_REDACAO"
)

// School census columns
const (
	ColEntityID         = "CO_ENTIDADE"
	ColEntityName       = "NO_ENTIDADE"
	ColSecondary        = "IN_ENSINO_MEDIO"
	ColEnrollments      = "NU_MATRICULAS"
	ColLibrary          = "IN_BIBLIOTECA"
	ColComputerLab      = "IN_LABORATORIO_INFORMATICA"
	ColScienceLab       = "IN_LABORATORIO_CIENCIAS"
	ColSportsCourt      = "IN_QUADRA_ESPORTES"
	ColSpecialNeedsRoom = "IN_SALA_ATENDIMENTO_ESPECIAL"
	ColInternet         = "IN_INTERNET"
)

// Municipal indicator columns
const (
	ColIBGECode     = "CODIGO_IBGE"
	ColHDI          = "IDH"
	ColGDPPerCapita = "PIB_PER_CAPITA"
)

// Derived columns
const (
	ColMeanScore              = "MEDIA_NOTAS"
	ColAgeBand                = "FAIXA_ETARIA"
	ColInfrastructureLevel    = "NIVEL_INFRAESTRUTURA"
	ColInfrastructureCategory = "CATEGORIA_INFRAESTRUTURA"
	ColHDICategory            = "CATEGORIA_IDH"
	ColSchoolTypeLabel        = "TIPO_ESCOLA"
)

// ScoreMarker identifies score columns by name; every column containing it is
// zero-filled during cleaning.
const ScoreMarker = "NOTA"

// ExamColumns is the subset kept from the raw exam table.
var ExamColumns = []string{
	ColRegistration, ColSex, ColAge, ColMunicipalityCode,
	ColMunicipalityName, ColState, ColSchoolType,
	ColTeachingType, ColTrainee, ColSchoolCode, ColScoreCN,
	ColScoreCH, ColScoreLC, ColScoreMT, ColScoreEssay,
}

// AreaScoreColumns are the four objective test areas averaged into MEDIA_NOTAS.
var AreaScoreColumns = []string{ColScoreCN, ColScoreCH, ColScoreLC, ColScoreMT}

// ScoreColumns are the area scores plus the essay.
var ScoreColumns = []string{ColScoreCN, ColScoreCH, ColScoreLC, ColScoreMT, ColScoreEssay}

// InfrastructureColumns are the 0/1 flags summed into NIVEL_INFRAESTRUTURA.
var InfrastructureColumns = []string{
	ColLibrary, ColComputerLab, ColScienceLab,
	ColSportsCourt, ColSpecialNeedsRoom, ColInternet,
}

// DashboardColumns is the curated export for the BI dashboard, in output order.
var DashboardColumns = []string{
	// student
	ColRegistration, ColSex, ColAge, ColAgeBand,
	// location
	ColState, ColMunicipalityName,
	// school
	ColSchoolType, ColSchoolTypeLabel, ColSchoolCode,
	// scores
	ColScoreCN, ColScoreCH, ColScoreLC, ColScoreMT, ColScoreEssay, ColMeanScore,
	// infrastructure
	ColInfrastructureLevel, ColInfrastructureCategory,
	// municipality
	ColHDI, ColHDICategory, ColGDPPerCapita,
}

// BinSpec describes right-closed bins: label i covers (Edges[i], Edges[i+1]].
type BinSpec struct {
	Edges  []float64
	Labels []string
}

// AgeBands buckets NU_IDADE. 17 is the last minor age.
var AgeBands = BinSpec{
	Edges:  []float64{0, 17, 20, 25, 30, 100},
	Labels: []string{"Até 17 anos", "18 a 20 anos", "21 a 25 anos", "26 a 30 anos", "Acima de 30 anos"},
}

// InfrastructureBands buckets NIVEL_INFRAESTRUTURA.
var InfrastructureBands = BinSpec{
	Edges:  []float64{0, 2, 4, 6},
	Labels: []string{"Básica", "Intermediária", "Avançada"},
}

// HDIBands follows the UNDP human development tiers.
var HDIBands = BinSpec{
	Edges:  []float64{0, 0.5, 0.6, 0.7, 0.8, 1.0},
	Labels: []string{"Muito baixo", "Baixo", "Médio", "Alto", "Muito alto"},
}

// SchoolTypeLabels maps TP_ESCOLA codes to display names.
var SchoolTypeLabels = map[int]string{
	1: "Pública",
	2: "Privada",
	3: "Exterior",
}

// AreaLabels maps score columns to knowledge-area names.
var AreaLabels = map[string]string{
	ColScoreCN:    "Ciências da Natureza",
	ColScoreCH:    "Ciências Humanas",
	ColScoreLC:    "Linguagens e Códigos",
	ColScoreMT:    "Matemática",
	ColScoreEssay: "Redação",
}

// AreaLabel returns the display name for a score column, or the column itself.
func AreaLabel(col string) string {
	if l, ok := AreaLabels[col]; ok {
		return l
	}
	return col
}
