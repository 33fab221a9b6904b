package main

import (
	"strings"

	"github.com/Wyaro/curriculum-parser/curriculum"
	"github.com/slongfield/pyfmt"
)

var summaryFmt = struct {
	Specialty      string
	Specialization string
	Department     string
	Faculty        string
	Year           string
	Duration       string
	Counts         string
}{
	Specialty:      "Специальность: {code} {name}",
	Specialization: "Профиль: {specialization}",
	Department:     "Кафедра: {department}",
	Faculty:        "Факультет: {faculty}",
	Year:           "Год начала подготовки: {year}",
	Duration:       "Срок обучения: {semesters} сем.",
	Counts:         "Дисциплин: {disciplines}, компетенций: {competencies}",
}

func renderSummary(s curriculum.Summary) string {
	lines := []string{}
	info := s.Summary
	if info == nil {
		info = &curriculum.SummaryInfo{}
	}

	if info.SpecialtyCode != "" || info.SpecialtyName != "" {
		lines = append(lines, pyfmt.Must(summaryFmt.Specialty, map[string]interface{}{
			"code": info.SpecialtyCode,
			"name": info.SpecialtyName,
		}))
	}
	if info.Specialization != "" {
		lines = append(lines, pyfmt.Must(summaryFmt.Specialization, map[string]interface{}{
			"specialization": info.Specialization,
		}))
	}
	if info.Department != "" {
		lines = append(lines, pyfmt.Must(summaryFmt.Department, map[string]interface{}{
			"department": info.Department,
		}))
	}
	if info.Faculty != "" {
		lines = append(lines, pyfmt.Must(summaryFmt.Faculty, map[string]interface{}{
			"faculty": info.Faculty,
		}))
	}
	if info.YearOfAdmission != "" {
		lines = append(lines, pyfmt.Must(summaryFmt.Year, map[string]interface{}{
			"year": info.YearOfAdmission,
		}))
	}
	if info.EducationDuration != 0 {
		lines = append(lines, pyfmt.Must(summaryFmt.Duration, map[string]interface{}{
			"semesters": info.EducationDuration,
		}))
	}
	lines = append(lines, pyfmt.Must(summaryFmt.Counts, map[string]interface{}{
		"disciplines":  s.DisciplinesCount,
		"competencies": s.CompetenciesCount,
	}))

	return strings.Join(lines, "\n") + "\n"
}
