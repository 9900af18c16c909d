package ingestion

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadWorkbook reads account records from the first sheet of an .xlsx
// workbook. The sheet must have the same five-column layout as the CSV
// inputs. Semantics mirror loadCSVFile: the first row is skipped as a
// header, a fully empty row stops processing, and the field-count and
// version gates apply per row.
func (s *Stage) loadWorkbook(table *Table, path string) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		s.stats.FilesFailed++
		s.reporter.Report(Diagnostic{
			Kind:    KindFileAccess,
			File:    path,
			Message: "failed to open workbook: " + err.Error(),
		})
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		s.stats.FilesFailed++
		s.reporter.Report(Diagnostic{
			Kind:    KindFileAccess,
			File:    path,
			Message: "workbook has no sheets",
		})
		return
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		s.stats.FilesFailed++
		s.reporter.Report(Diagnostic{
			Kind:    KindFileAccess,
			File:    path,
			Message: "failed to read sheet: " + err.Error(),
		})
		return
	}

	for i, row := range rows {
		// Header row, not validated
		if i == 0 {
			continue
		}
		if isEmptyRow(row) {
			break
		}

		rowNum := i + 1
		line := strings.Join(row, ",")

		if len(row) != fieldCount {
			s.stats.LinesMalformed++
			s.reporter.Report(Diagnostic{
				Kind:    KindFieldCount,
				File:    path,
				Row:     rowNum,
				Line:    line,
				Message: "incorrect column count, row skipped",
			})
			continue
		}

		record, diag := parseFields(path, rowNum, line, row)
		if diag != nil {
			s.stats.LinesBadVersion++
			s.reporter.Report(*diag)
			continue
		}
		s.stats.LinesParsed++
		table.Merge(record)
	}

	s.stats.FilesProcessed++
}

// isEmptyRow reports whether every cell in the row is empty. excelize trims
// trailing empty cells, so a blank spreadsheet row arrives as a zero-length
// slice or as cells of empty strings.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
