package curriculum

import (
	"regexp"
	"strconv"
	"strings"
)

// SpecialtyInfo holds everything recovered from the title sheet about
// the specialty itself. Every field is discovered independently and
// stays nil when its heuristic finds nothing.
type SpecialtyInfo struct {
	Code           *string `json:"code"`
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Department     *string `json:"department"`
	Faculty        *string `json:"faculty"`
}

type CurriculumInfo struct {
	// EducationDuration counts six-month semesters, rounded up.
	EducationDuration *int    `json:"education_duration"`
	YearOfAdmission   *string `json:"year_of_admission"`
	IsActive          bool    `json:"is_active"`
}

type TitleInfo struct {
	Speciality SpecialtyInfo  `json:"speciality"`
	Curriculum CurriculumInfo `json:"curriculum"`
}

var (
	codeNameRegex  = regexp.MustCompile(`(\d{2}\.\d{2}\.\d{2})\s*(.+)`)
	quotedRegex    = regexp.MustCompile(`"([^"]+)"`)
	specLabelRegex = regexp.MustCompile(`(?i)(специализация|профиль|программа\s*магистратуры)\s*[nN]?\d?\s*[:"-]*\s*`)
	yearRegex      = regexp.MustCompile(`20\d{2}`)
	durYearsRegex  = regexp.MustCompile(`(\d+)\s*[лг]`)
	durMonthsRegex = regexp.MustCompile(`(\d+)\s*м`)
)

var specializationLabels = []string{"специализация", "профиль", "программа магистратуры"}

// ParseTitleSheet runs every title-page heuristic over the grid. The
// sheet has no fixed layout, so each field is found by keyword search
// plus adjacency lookup rather than by position.
func ParseTitleSheet(grid Grid) TitleInfo {
	info := TitleInfo{}
	info.Speciality.Code, info.Speciality.Name = findCodeAndName(grid)
	info.Speciality.Specialization = findSpecialization(grid)
	info.Speciality.Department = findLabeledValue(grid, "кафедра")
	info.Speciality.Faculty = findLabeledValue(grid, "факультет")
	info.Curriculum.EducationDuration = findEducationDuration(grid)
	info.Curriculum.YearOfAdmission = findYearOfAdmission(grid)
	info.Curriculum.IsActive = true
	return info
}

// findCodeAndName scans row-major for the first cell matching the
// "NN.NN.NN name" specialty pattern. First hit wins.
func findCodeAndName(grid Grid) (*string, *string) {
	for _, row := range grid {
		for _, cell := range row {
			m := codeNameRegex.FindStringSubmatch(strings.TrimSpace(cell))
			if m == nil {
				continue
			}
			code, name := m[1], m[2]
			return &code, &name
		}
	}
	return nil, nil
}

// adjacentValue prefers the cell to the right of (row, col), falling
// back to the cell below it. Returns "" when both are blank.
func adjacentValue(grid Grid, row, col int) string {
	if v := strings.TrimSpace(grid.Cell(row, col+1)); v != "" {
		return v
	}
	return strings.TrimSpace(grid.Cell(row+1, col))
}

func findSpecialization(grid Grid) *string {
	var candidates []string

	for i, row := range grid {
		for j, cell := range row {
			low := strings.ToLower(cell)
			labeled := false
			for _, kw := range specializationLabels {
				if strings.Contains(low, kw) {
					labeled = true
					break
				}
			}
			if !labeled {
				continue
			}

			value := adjacentValue(grid, i, j)
			if value == "" {
				continue
			}
			if clean := cleanSpecializationValue(value); clean != "" {
				candidates = append(candidates, clean)
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	// A graduate-program name beats a generic track name.
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), "магистратур") {
			return &c
		}
	}
	return &candidates[0]
}

// cleanSpecializationValue extracts the quoted part when present,
// otherwise strips the leading label phrase.
func cleanSpecializationValue(value string) string {
	if m := quotedRegex.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return strings.TrimSpace(specLabelRegex.ReplaceAllString(value, ""))
}

// findLabeledValue returns the adjacent value of the first cell whose
// lowercased text contains keyword. Matches whose neighborhood is
// blank do not stop the scan; once a value is found it is final.
func findLabeledValue(grid Grid, keyword string) *string {
	for i, row := range grid {
		for j, cell := range row {
			if !strings.Contains(strings.ToLower(cell), keyword) {
				continue
			}
			if v := adjacentValue(grid, i, j); v != "" {
				return &v
			}
		}
	}
	return nil
}

// findYearOfAdmission runs three fallback tiers, each exhausted over
// the whole grid before the next one starts:
//
//	(a) the "год начала подготовки" label, year taken from the rest of
//	    that row or anywhere in the next row;
//	(b) the "утверждаю" stamp cell itself, then ±2 columns around it;
//	(c) any in-range 20XX year anywhere, row-major.
func findYearOfAdmission(grid Grid) *string {
	for i, row := range grid {
		for j, cell := range row {
			if !strings.Contains(strings.ToLower(cell), "год начала подготовки") {
				continue
			}
			for k := j + 1; k < len(row); k++ {
				if y := extractYear(row[k]); y != nil {
					return y
				}
			}
			if i+1 < len(grid) {
				for _, next := range grid[i+1] {
					if y := extractYear(next); y != nil {
						return y
					}
				}
			}
		}
	}

	for _, row := range grid {
		for j, cell := range row {
			if !strings.Contains(strings.ToLower(cell), "утверждаю") {
				continue
			}
			if y := extractYear(cell); y != nil {
				return y
			}
			lo, hi := j-2, j+3
			if lo < 0 {
				lo = 0
			}
			if hi > len(row) {
				hi = len(row)
			}
			for k := lo; k < hi; k++ {
				if y := extractYear(row[k]); y != nil {
					return y
				}
			}
		}
	}

	for _, row := range grid {
		for _, cell := range row {
			if y := extractYear(cell); y != nil {
				return y
			}
		}
	}
	return nil
}

func extractYear(cell string) *string {
	m := yearRegex.FindString(cell)
	if m == "" {
		return nil
	}
	if n, err := strconv.Atoi(m); err != nil || n < 2000 || n > 2100 {
		return nil
	}
	return &m
}

// findEducationDuration converts a "N лет M месяцев" phrase into a
// semester count, rounding up to the nearest full semester. Only the
// first cell mentioning the duration is used.
func findEducationDuration(grid Grid) *int {
	for _, row := range grid {
		for _, cell := range row {
			low := strings.ToLower(cell)
			if !strings.Contains(low, "срок получения образования") {
				continue
			}

			years, months := 0, 0
			if m := durYearsRegex.FindStringSubmatch(low); m != nil {
				years, _ = strconv.Atoi(m[1])
			}
			if m := durMonthsRegex.FindStringSubmatch(low); m != nil {
				months, _ = strconv.Atoi(m[1])
			}
			totalMonths := years*12 + months
			semesters := (totalMonths + 5) / 6
			return &semesters
		}
	}
	return nil
}
