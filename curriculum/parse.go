package curriculum

import (
	"github.com/pkg/errors"
)

// Cfg names the three conventional sheets of a curriculum workbook.
// Workbooks exported by other plan editors sometimes rename them, so
// the names are configurable.
type Cfg struct {
	TitleSheet      string `yaml:"title_sheet"`
	PlanSheet       string `yaml:"plan_sheet"`
	CompetencySheet string `yaml:"competency_sheet"`
}

func DefaultCfg() Cfg {
	return Cfg{
		TitleSheet:      "Титул",
		PlanSheet:       "ПланСвод",
		CompetencySheet: "Компетенции(2)",
	}
}

// ParsedCurriculum is the complete result of one parse. Titul and
// Plan are nil when their source sheet is missing; Competencies is
// empty, never nil. Nothing here is shared between invocations.
type ParsedCurriculum struct {
	Titul        *TitleInfo       `json:"titul,omitempty"`
	Plan         *PlanInfo        `json:"plan,omitempty"`
	Competencies []CompetencyLink `json:"competencies"`
}

// ParseFile parses the workbook at path with the conventional sheet
// names.
func ParseFile(path string) (*ParsedCurriculum, error) {
	return ParseFileCfg(path, DefaultCfg())
}

func ParseFileCfg(path string, cfg Cfg) (*ParsedCurriculum, error) {
	book, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()
	return ParseWorkbook(book, cfg)
}

// ParseWorkbook runs the three extraction passes over whichever of
// the conventional sheets exist. Sheets are independent: a missing
// one only leaves its own field empty.
func ParseWorkbook(book Workbook, cfg Cfg) (*ParsedCurriculum, error) {
	result := &ParsedCurriculum{Competencies: []CompetencyLink{}}

	if hasSheet(book, cfg.TitleSheet) {
		grid, err := book.Sheet(cfg.TitleSheet)
		if err != nil {
			return nil, errors.Wrap(err, "title sheet")
		}
		titul := ParseTitleSheet(grid)
		result.Titul = &titul
	}

	var validCodes map[string]bool
	if hasSheet(book, cfg.PlanSheet) {
		grid, err := book.Sheet(cfg.PlanSheet)
		if err != nil {
			return nil, errors.Wrap(err, "plan sheet")
		}
		plan := ParsePlanSheet(grid)
		result.Plan = &plan
		validCodes = ValidCodes(plan)
	}

	if hasSheet(book, cfg.CompetencySheet) {
		grid, err := book.Sheet(cfg.CompetencySheet)
		if err != nil {
			return nil, errors.Wrap(err, "competency sheet")
		}
		links := ParseCompetencySheet(grid)
		// Scope competencies to codes the plan sheet vouched for.
		// Without a plan sheet there is nothing to vouch, so the
		// list passes through unfiltered.
		if validCodes != nil {
			scoped := links[:0]
			for _, link := range links {
				if validCodes[link.Code] {
					scoped = append(scoped, link)
				}
			}
			links = scoped
		}
		result.Competencies = links
	}

	return result, nil
}
