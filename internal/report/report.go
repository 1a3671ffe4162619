// Package report writes the solved roster to a versioned, multi-sheet xlsx
// workbook: detail, soft violations, under-staffed slots, a per-employee
// pivot, and a per-employee hours summary — grounded on the layout and
// filename-versioning scheme of the original report writer.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/paiban/roster/internal/roster/result"
	apperrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/model"
)

const (
	sheetDetail      = "Piano Turni Dettaglio"
	sheetViolations  = "Riepilogo Violazioni Soft"
	sheetUncovered   = "Turni Non Coperti"
	sheetPivot       = "Piano Turni Pivot Dipendenti"
	sheetSummary     = "Riepilogo Turni e Ore"
	baseNamePattern  = "piano_turni_%d_%02d"
	versionedPattern = "piano_turni_%d_%02d_v%d.xlsx"
)

// Write assembles and saves the versioned report workbook for year/month
// into dir, returning the path written.
func Write(dir string, year, month int, res *result.Result, inputs model.PlanInputs) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeDetailSheet(f, res)
	writeViolationsSheet(f, res)
	writeUncoveredSheet(f, res)
	writePivotSheet(f, res, inputs)
	writeSummarySheet(f, res)

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)

	path := filepath.Join(dir, nextVersionedName(dir, year, month))
	if err := f.SaveAs(path); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeReportWriteFailed, "failed to save report workbook")
	}
	return path, nil
}

func writeDetailSheet(f *excelize.File, res *result.Result) {
	f.NewSheet(sheetDetail)
	header := []string{"Date", "Weekday", "Shift", "Site", "Employee", "Violation Summary"}
	setRow(f, sheetDetail, 1, header)
	for i, a := range res.Assignments {
		setRow(f, sheetDetail, i+2, []string{a.Date, a.Weekday, a.Shift, a.Site, a.EmployeeName, a.ViolationSummary})
	}
	autoSizeColumns(f, sheetDetail, len(header))
}

func writeViolationsSheet(f *excelize.File, res *result.Result) {
	f.NewSheet(sheetViolations)
	setRow(f, sheetViolations, 1, []string{"Detailed soft-violation description"})
	row := 2
	for _, v := range res.Violations {
		desc := fmt.Sprintf("%s: employee=%s %s (penalty=%d, amount=%d)", v.Key.Kind, v.EmployeeName, v.Key.Context(), v.Penalty, v.Amount)
		setRow(f, sheetViolations, row, []string{desc})
		row++
	}
	autoSizeColumns(f, sheetViolations, 1)
}

func writeUncoveredSheet(f *excelize.File, res *result.Result) {
	f.NewSheet(sheetUncovered)
	setRow(f, sheetUncovered, 1, []string{"Uncovered shift description"})
	row := 2
	for _, u := range res.UnderStaffed {
		desc := fmt.Sprintf("%s / %s / %s: required=%d missing=%d", u.Date, u.Site, u.Shift, u.Required, u.Deficit)
		setRow(f, sheetUncovered, row, []string{desc})
		row++
	}
	autoSizeColumns(f, sheetUncovered, 1)
}

// writePivotSheet lays employees out as rows and calendar days as columns,
// each cell listing every (site, shift) the employee was assigned that day.
func writePivotSheet(f *excelize.File, res *result.Result, inputs model.PlanInputs) {
	f.NewSheet(sheetPivot)

	header := []string{"Employee"}
	for _, day := range inputs.Days {
		header = append(header, fmt.Sprintf("%s (%s)", day.Date, day.Weekday.String()))
	}
	setRow(f, sheetPivot, 1, header)

	cells := make(map[string]map[string][]string) // employee -> date -> entries
	for _, a := range res.Assignments {
		if a.EmployeeName == result.NotAssigned {
			continue
		}
		if cells[a.EmployeeName] == nil {
			cells[a.EmployeeName] = make(map[string][]string)
		}
		cells[a.EmployeeName][a.Date] = append(cells[a.EmployeeName][a.Date], a.Site+"/"+a.Shift)
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)

	style, _ := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true}})

	for i, name := range names {
		rowNum := i + 2
		row := []string{name}
		for _, day := range inputs.Days {
			row = append(row, strings.Join(cells[name][day.Date], "; "))
		}
		setRow(f, sheetPivot, rowNum, row)
		axis, _ := excelize.CoordinatesToCellName(1, rowNum)
		f.SetCellStyle(sheetPivot, axis, axis, style)
	}

	autoSizeColumns(f, sheetPivot, len(header))
}

func writeSummarySheet(f *excelize.File, res *result.Result) {
	f.NewSheet(sheetSummary)

	weeks := make(map[int]struct{})
	for _, s := range res.EmployeeSummaries {
		for w := range s.WeeklyHours {
			weeks[w] = struct{}{}
		}
	}
	weekList := make([]int, 0, len(weeks))
	for w := range weeks {
		weekList = append(weekList, w)
	}
	sort.Ints(weekList)

	header := []string{"Employee", "Total Shifts", "Total Hours"}
	for _, w := range weekList {
		header = append(header, fmt.Sprintf("Week %d", w))
	}
	setRow(f, sheetSummary, 1, header)

	for i, s := range res.EmployeeSummaries {
		row := []string{s.Name, strconv.Itoa(s.TotalShifts), strconv.FormatFloat(s.TotalHours, 'f', 2, 64)}
		for _, w := range weekList {
			row = append(row, strconv.FormatFloat(s.WeeklyHours[w], 'f', 2, 64))
		}
		setRow(f, sheetSummary, i+2, row)
	}
	autoSizeColumns(f, sheetSummary, len(header))
}

func setRow(f *excelize.File, sheet string, row int, values []string) {
	for i, v := range values {
		axis, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, axis, v)
	}
}

func autoSizeColumns(f *excelize.File, sheet string, numCols int) {
	for col := 1; col <= numCols; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			continue
		}
		width := maxCellWidth(f, sheet, name)
		if width > 150 {
			width = 150
		}
		f.SetColWidth(sheet, name, name, width+2)
	}
}

func maxCellWidth(f *excelize.File, sheet, col string) float64 {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 10
	}
	colIdx, _ := excelize.ColumnNameToNumber(col)
	max := 0
	for _, row := range rows {
		if colIdx-1 >= len(row) {
			continue
		}
		for _, line := range strings.Split(row[colIdx-1], "\n") {
			if len(line) > max {
				max = len(line)
			}
		}
	}
	return float64(max)
}

var versionRe = regexp.MustCompile(`_v(\d+)\.xlsx$`)

// nextVersionedName finds the next unused version suffix for this
// year/month's report, matching the original's glob-and-increment scheme.
func nextVersionedName(dir string, year, month int) string {
	base := fmt.Sprintf(baseNamePattern, year, month)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf(versionedPattern, year, month, 1)
	}

	max := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), base) {
			continue
		}
		m := versionRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf(versionedPattern, year, month, max+1)
}
