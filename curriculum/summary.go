package curriculum

import (
	"fmt"
)

// SummaryInfo is the flat key-fact digest of a title sheet. Fields
// the extraction could not find are omitted.
type SummaryInfo struct {
	SpecialtyCode     string `json:"specialty_code,omitempty"`
	SpecialtyName     string `json:"specialty_name,omitempty"`
	Specialization    string `json:"specialization,omitempty"`
	Department        string `json:"department,omitempty"`
	Faculty           string `json:"faculty,omitempty"`
	YearOfAdmission   string `json:"year_of_admission,omitempty"`
	EducationDuration int    `json:"education_duration,omitempty"`
}

// Summary is the report-friendly envelope: either a populated digest
// or a flagged failure, never a half-filled success.
type Summary struct {
	Success           bool         `json:"success"`
	Error             string       `json:"error,omitempty"`
	Summary           *SummaryInfo `json:"summary,omitempty"`
	CompetenciesCount int          `json:"competencies_count,omitempty"`
	DisciplinesCount  int          `json:"disciplines_count,omitempty"`
}

// Summarize runs the full parse and reduces it to a digest. Unlike
// ParseFile it never propagates: any failure, including a panic out
// of a corrupt workbook segment, comes back as a failure Summary.
func Summarize(path string) Summary {
	return SummarizeCfg(path, DefaultCfg())
}

func SummarizeCfg(path string, cfg Cfg) (summary Summary) {
	defer func() {
		if r := recover(); r != nil {
			summary = Summary{Success: false, Error: fmt.Sprintf("workbook read failed: %v", r)}
		}
	}()

	parsed, err := ParseFileCfg(path, cfg)
	if err != nil {
		return Summary{Success: false, Error: err.Error()}
	}

	summary = Summary{Success: true, Summary: &SummaryInfo{}}

	if parsed.Titul != nil {
		spec, cur := parsed.Titul.Speciality, parsed.Titul.Curriculum
		info := summary.Summary
		if spec.Code != nil {
			info.SpecialtyCode = *spec.Code
		}
		if spec.Name != nil {
			info.SpecialtyName = *spec.Name
		}
		if spec.Specialization != nil {
			info.Specialization = *spec.Specialization
		}
		if spec.Department != nil {
			info.Department = *spec.Department
		}
		if spec.Faculty != nil {
			info.Faculty = *spec.Faculty
		}
		if cur.YearOfAdmission != nil {
			info.YearOfAdmission = *cur.YearOfAdmission
		}
		if cur.EducationDuration != nil {
			info.EducationDuration = *cur.EducationDuration
		}
	}

	summary.CompetenciesCount = len(parsed.Competencies)
	if parsed.Plan != nil {
		summary.DisciplinesCount = len(parsed.Plan.Disciplines)
	}
	return summary
}
