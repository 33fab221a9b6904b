package curriculum

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type BaseDiscipline struct {
	Code string `json:"code"`
	Name string `json:"name"`
	// Description is filled by downstream enrichment, never here.
	Description *string `json:"description"`
}

// DetailedDiscipline is one row of the consolidated plan. Curriculum,
// BaseDiscipline, Technologies and Competencies exist in the record
// shape for downstream linking and stay null at parse time.
type DetailedDiscipline struct {
	Curriculum           *int     `json:"curriculum"`
	BaseDiscipline       *int     `json:"base_discipline"`
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	Semesters            string   `json:"semesters"`
	ContactWorkHours     *int     `json:"contact_work_hours"`
	IndependentWorkHours *int     `json:"independent_work_hours"`
	ControlWorkHours     *int     `json:"control_work_hours"`
	Technologies         []int    `json:"technologies"`
	Competencies         []string `json:"competencies"`
}

type PlanInfo struct {
	BaseDisciplines []BaseDiscipline     `json:"base_discipline"`
	Disciplines     []DetailedDiscipline `json:"discipline"`
}

// Plan-sheet column layout: "+" marker, code, name, three term columns
// (exam / pass-grade / graded credit), and the workload block.
const (
	colMarker      = 0
	colCode        = 1
	colName        = 2
	colContactWork = 13
	colIndepWork   = 14
	colControlWork = 15
)

var semesterCols = []int{3, 4, 5}

var semesterSplitRegex = regexp.MustCompile(`[,;|]`)

// Rows whose discipline name mentions any of these are service rows
// (electives, sport, practice, thesis) and carry no study discipline.
var skipKeywords = []string{
	"элективные", "спортивная подготовка", "физическая культура",
	"спорт", "дисциплина по выбору", "практика", "защита",
	"подготовка к защите", "выпускная квалификационная работа",
}

// ParsePlanSheet extracts both discipline views from the consolidated
// plan. The two passes walk the same "+"-marked rows with the same
// skip vocabulary, so a row can land in both outputs.
func ParsePlanSheet(grid Grid) PlanInfo {
	return PlanInfo{
		BaseDisciplines: parseBaseDisciplines(grid),
		Disciplines:     parseDetailedDisciplines(grid),
	}
}

func parseDetailedDisciplines(grid Grid) []DetailedDiscipline {
	disciplines := []DetailedDiscipline{}

	for _, row := range grid {
		if !isValidDisciplineRow(row) {
			continue
		}

		code := strings.TrimSpace(cellAt(row, colCode))
		name := strings.TrimSpace(cellAt(row, colName))
		if shouldSkipDiscipline(name) {
			continue
		}

		disciplines = append(disciplines, DetailedDiscipline{
			Code:                 code,
			Name:                 name,
			Semesters:            extractSemesters(row),
			ContactWorkHours:     parseHours(row, colContactWork),
			IndependentWorkHours: parseHours(row, colIndepWork),
			ControlWorkHours:     parseHours(row, colControlWork),
		})
	}

	return disciplines
}

func parseBaseDisciplines(grid Grid) []BaseDiscipline {
	base := []BaseDiscipline{}

	for _, row := range grid {
		if !isValidDisciplineRow(row) {
			continue
		}
		name := strings.TrimSpace(cellAt(row, colName))
		if shouldSkipDiscipline(name) {
			continue
		}
		base = append(base, BaseDiscipline{
			Code: strings.TrimSpace(cellAt(row, colCode)),
			Name: name,
		})
	}

	return base
}

// isValidDisciplineRow keeps only rows marked with a literal "+" in
// the first column.
func isValidDisciplineRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.TrimSpace(row[0]) == "+"
}

func shouldSkipDiscipline(name string) bool {
	low := strings.ToLower(name)
	for _, kw := range skipKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// extractSemesters collects semester tokens from the three term
// columns, dedups them across columns and renders the canonical
// "1, 2, 3, а" form.
func extractSemesters(row []string) string {
	semesters := map[string]bool{}
	for _, col := range semesterCols {
		cell := cellAt(row, col)
		if strings.TrimSpace(cell) == "" {
			continue
		}
		for tok := range parseSemesterValue(cell) {
			semesters[tok] = true
		}
	}
	return formatSemesters(semesters)
}

// parseSemesterValue splits a term cell into single-character tokens.
// A run of digits like "12" means semesters 1 and 2, not twelve.
func parseSemesterValue(value string) map[string]bool {
	tokens := map[string]bool{}
	for _, part := range semesterSplitRegex.Split(strings.TrimSpace(value), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) == 1 {
			r, _ := utf8.DecodeRuneInString(part)
			if unicode.IsDigit(r) || unicode.IsLetter(r) {
				tokens[part] = true
			}
			continue
		}
		if isAllDigits(part) {
			for _, r := range part {
				tokens[string(r)] = true
			}
		}
	}
	return tokens
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// formatSemesters orders numeric tokens before alphabetic ones, each
// group by value, and joins with ", ".
func formatSemesters(semesters map[string]bool) string {
	tokens := make([]string, 0, len(semesters))
	for tok := range semesters {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		di, dj := isAllDigits(tokens[i]), isAllDigits(tokens[j])
		if di != dj {
			return di
		}
		return tokens[i] < tokens[j]
	})
	return strings.Join(tokens, ", ")
}

// parseHours reads a workload cell as a whole number of hours. Blank
// or non-numeric cells become nil, never an error: stray text in the
// workload block must not abort the parse.
func parseHours(row []string, col int) *int {
	cell := strings.TrimSpace(cellAt(row, col))
	if cell == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	hours := int(f)
	return &hours
}

// ValidCodes derives the set of discipline codes seen in the detailed
// pass. It only exists to scope the competency sheet.
func ValidCodes(plan PlanInfo) map[string]bool {
	codes := map[string]bool{}
	for _, d := range plan.Disciplines {
		if d.Code != "" {
			codes[d.Code] = true
		}
	}
	return codes
}
