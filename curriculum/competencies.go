package curriculum

import (
	"regexp"
	"strings"
)

// CompetencyLink pairs a normalized discipline code with the
// competency labels listed for it on the competency sheet. A code may
// repeat across rows; no dedup happens here.
type CompetencyLink struct {
	Code       string   `json:"code"`
	Competency []string `json:"competency"`
}

var codeParensRegex = regexp.MustCompile(`[()]`)

// NormalizeCode drops everything from the first parenthesis on,
// trims and uppercases: "пк-1(доп)" -> "ПК-1".
func NormalizeCode(raw string) string {
	head := codeParensRegex.Split(raw, 2)[0]
	return strings.ToUpper(strings.TrimSpace(head))
}

// ParseCompetencySheet reads code/competency pairs from the
// competency sheet: the code sits in column 2, the semicolon-joined
// label list in column 5. Rows with a blank key cell are skipped, and
// so is the header row: unlike the plan sheet nothing structural
// marks data rows here, so a header with text in both key columns
// would otherwise come out as a pair.
// Scoping to plan-sheet codes is the orchestrator's job, not ours.
func ParseCompetencySheet(grid Grid) []CompetencyLink {
	links := []CompetencyLink{}

	for i, row := range grid {
		if i == 0 {
			continue
		}
		codeCell := strings.TrimSpace(cellAt(row, 2))
		compCell := strings.TrimSpace(cellAt(row, 5))
		if codeCell == "" || compCell == "" {
			continue
		}

		code := NormalizeCode(codeCell)

		var competencies []string
		for _, part := range strings.Split(compCell, ";") {
			if part = strings.TrimSpace(part); part != "" {
				competencies = append(competencies, part)
			}
		}

		if code == "" || len(competencies) == 0 {
			continue
		}
		links = append(links, CompetencyLink{Code: code, Competency: competencies})
	}

	return links
}
