// Package unavailability reads the employee unavailability spreadsheet into
// a normalized-name -> date-set map. Every error here is non-fatal: a
// missing file, a missing sheet, or an unreadable row is logged and the
// pipeline continues with an empty or partial map (§7).
package unavailability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/paiban/roster/pkg/logger"
	"github.com/paiban/roster/pkg/model"
)

const defaultSheet = "Foglio1"

// Load reads path and returns the unavailability map. On any file- or
// sheet-level failure it logs a warning and returns an empty, non-nil map —
// it never returns an error, matching §7's "non-fatal, continue with
// partial/empty map" policy.
func Load(path string) model.Unavailability {
	return LoadSheet(path, defaultSheet)
}

// LoadSheet is like Load but reads a named sheet.
func LoadSheet(path, sheetName string) model.Unavailability {
	result := model.Unavailability{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("unavailability file could not be opened, continuing with an empty map")
		return result
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		logger.Warn().Err(err).Str("sheet", sheetName).Msg("unavailability sheet not found, continuing with an empty map")
		return result
	}

	if len(rows) <= 1 {
		logger.Warn().Str("path", path).Msg("unavailability sheet is empty or header-only")
		return result
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // header occupied row 1
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			logger.Warn().Int("row", rowNum).Msg("skipping unavailability row with missing name or date")
			continue
		}

		name := model.NormalizeName(row[0])
		date, err := parseDate(row[1])
		if err != nil {
			logger.Warn().Int("row", rowNum).Str("cell", cellRef(rowNum)).Str("raw", row[1]).Err(err).
				Msg("skipping unavailability row with unrecognized date encoding")
			continue
		}

		if _, ok := result[name]; !ok {
			result[name] = model.DateSet{}
		}
		result[name].Add(date)
	}

	return result
}

func cellRef(row int) string {
	return fmt.Sprintf("B%d", row)
}

// parseDate accepts the three encodings named in §6: YYYY-MM-DD, DD/MM/YYYY,
// or a bare Excel serial day number. excelize already resolves native date
// cells to one of the first two string forms when reading with GetRows, so
// a third branch for raw time.Time values is not needed here.
func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse("02/01/2006", raw); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", fmt.Errorf("unavailability: invalid serial date %q: %w", raw, err)
		}
		return t.Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("unavailability: unrecognized date encoding %q", raw)
}
