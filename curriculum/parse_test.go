package curriculum

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "curriculum.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func addSheet(t *testing.T, f *excelize.File, name string, rows [][]interface{}) {
	t.Helper()
	if _, err := f.NewSheet(name); err != nil {
		t.Fatalf("NewSheet(%s): %v", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		row := row
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			t.Fatalf("SetSheetRow(%s): %v", name, err)
		}
	}
}

func planSheetRow(marker, code, name string, terms [3]string, hours [3]string) []interface{} {
	row := make([]interface{}, 16)
	for i := range row {
		row[i] = ""
	}
	row[colMarker], row[colCode], row[colName] = marker, code, name
	row[3], row[4], row[5] = terms[0], terms[1], terms[2]
	row[colContactWork], row[colIndepWork], row[colControlWork] = hours[0], hours[1], hours[2]
	return row
}

func buildFullWorkbook(t *testing.T, f *excelize.File) {
	addSheet(t, f, "Титул", [][]interface{}{
		{"Учебный план"},
		{"09.03.01 Информатика и вычислительная техника"},
		{"Кафедра: ", "Информатики"},
		{"Срок получения образования: 4 года"},
		{"Год начала подготовки"},
		{"2021"},
	})
	addSheet(t, f, "ПланСвод", [][]interface{}{
		{"Счит.", "Индекс", "Наименование"},
		planSheetRow("+", "Б1.О.01", "Иностранный язык", [3]string{"12", "3", "а"}, [3]string{"108", "36", "н/д"}),
		planSheetRow("+", "Б1.О.04", "Физическая культура и спорт", [3]string{"1", "", ""}, [3]string{"", "", ""}),
	})
	addSheet(t, f, "Компетенции(2)", [][]interface{}{
		{"шапка"},
		{"", "", "Б1.О.01(1)", "", "", "УК-1; ОПК-2"},
		{"", "", "Б9.Х.99", "", "", "ПК-9"},
	})
}

func TestParseFileEndToEnd(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) { buildFullWorkbook(t, f) })

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if parsed.Titul == nil {
		t.Fatal("titul missing")
	}
	spec := parsed.Titul.Speciality
	if spec.Code == nil || *spec.Code != "09.03.01" {
		t.Errorf("code = %v, want 09.03.01", spec.Code)
	}
	if spec.Name == nil || *spec.Name != "Информатика и вычислительная техника" {
		t.Errorf("name = %v", spec.Name)
	}
	if spec.Department == nil || *spec.Department != "Информатики" {
		t.Errorf("department = %v", spec.Department)
	}
	cur := parsed.Titul.Curriculum
	if cur.YearOfAdmission == nil || *cur.YearOfAdmission != "2021" {
		t.Errorf("year = %v, want 2021", cur.YearOfAdmission)
	}
	if cur.EducationDuration == nil || *cur.EducationDuration != 8 {
		t.Errorf("duration = %v, want 8", cur.EducationDuration)
	}

	if parsed.Plan == nil {
		t.Fatal("plan missing")
	}
	if len(parsed.Plan.Disciplines) != 1 {
		t.Fatalf("disciplines = %d, sport row must be excluded", len(parsed.Plan.Disciplines))
	}
	d := parsed.Plan.Disciplines[0]
	if d.Semesters != "1, 2, 3, а" {
		t.Errorf("semesters = %q", d.Semesters)
	}
	if d.ControlWorkHours != nil {
		t.Error("control hours must be nil for н/д")
	}

	if len(parsed.Competencies) != 1 {
		t.Fatalf("competencies = %v, unknown code must be scoped out", parsed.Competencies)
	}
	link := parsed.Competencies[0]
	if link.Code != "Б1.О.01" {
		t.Errorf("competency code = %q", link.Code)
	}
	if !reflect.DeepEqual(link.Competency, []string{"УК-1", "ОПК-2"}) {
		t.Errorf("competency labels = %v", link.Competency)
	}
}

func TestParseFileIdempotent(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) { buildFullWorkbook(t, f) })

	first, err := ParseFile(path)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseFile(path)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two parses of the same file differ")
	}
}

func TestSheetIndependence(t *testing.T) {
	full := writeWorkbook(t, func(f *excelize.File) { buildFullWorkbook(t, f) })
	noComp := writeWorkbook(t, func(f *excelize.File) {
		buildFullWorkbook(t, f)
		if err := f.DeleteSheet("Компетенции(2)"); err != nil {
			t.Fatalf("DeleteSheet: %v", err)
		}
	})

	withComp, err := ParseFile(full)
	if err != nil {
		t.Fatalf("full parse: %v", err)
	}
	withoutComp, err := ParseFile(noComp)
	if err != nil {
		t.Fatalf("reduced parse: %v", err)
	}

	if !reflect.DeepEqual(withComp.Titul, withoutComp.Titul) {
		t.Error("titul changed when the competency sheet was removed")
	}
	if !reflect.DeepEqual(withComp.Plan, withoutComp.Plan) {
		t.Error("plan changed when the competency sheet was removed")
	}
	if withoutComp.Competencies == nil || len(withoutComp.Competencies) != 0 {
		t.Errorf("competencies = %v, want empty list", withoutComp.Competencies)
	}
}

func TestParseFileNoKnownSheets(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		addSheet(t, f, "Другое", [][]interface{}{{"не учебный план"}})
	})

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if parsed.Titul != nil || parsed.Plan != nil {
		t.Error("absent sheets must leave their fields unset")
	}
	if parsed.Competencies == nil || len(parsed.Competencies) != 0 {
		t.Errorf("competencies = %v, want empty list", parsed.Competencies)
	}
}

func TestParseFileWithoutPlanKeepsCompetencies(t *testing.T) {
	// No plan sheet means no code set to scope by, so the pairs pass
	// through unfiltered.
	path := writeWorkbook(t, func(f *excelize.File) {
		addSheet(t, f, "Компетенции(2)", [][]interface{}{
			{"шапка"},
			{"", "", "Б1.О.01", "", "", "УК-1"},
		})
	})

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(parsed.Competencies) != 1 {
		t.Errorf("competencies = %v, want the unscoped pair", parsed.Competencies)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
