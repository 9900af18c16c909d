package ingestion

import (
	"bufio"
	"log/slog"
	"os"

	"uarcli/internal/files"
)

// Options configures the ingestion stage.
type Options struct {
	// Reporter receives a Diagnostic for every skipped line or file.
	// Defaults to a slog-backed reporter when nil.
	Reporter Reporter
	// Logger is used for progress and merge-decision logging.
	Logger *slog.Logger
	// IncludeExcel also ingests .xlsx workbooks with the same five-column
	// layout as the CSV inputs.
	IncludeExcel bool
}

// Stats summarizes one ingestion run.
type Stats struct {
	FilesProcessed  int
	FilesFailed     int
	LinesParsed     int
	LinesMalformed  int
	LinesBadVersion int
}

// Stage reads every candidate file in an input directory and folds the
// parsed records into an aggregation table. Files are processed one at a
// time; a failure in one file never aborts the others.
type Stage struct {
	reporter Reporter
	logger   *slog.Logger
	excel    bool
	stats    Stats
}

// NewStage creates an ingestion stage from options.
func NewStage(opts Options) *Stage {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NewLogReporter(logger)
	}
	return &Stage{
		reporter: reporter,
		logger:   logger,
		excel:    opts.IncludeExcel,
	}
}

// LoadDirectory scans dir for input files and builds the aggregation table.
// Only a failure to list the directory itself is returned as an error;
// per-file and per-line failures are reported as diagnostics and skipped.
func (s *Stage) LoadDirectory(dir string) (*Table, error) {
	discovery := files.NewDiscovery(dir)

	csvFiles, err := discovery.FindCSVFiles()
	if err != nil {
		return nil, err
	}

	table := NewTable(s.logger)

	for _, f := range csvFiles {
		s.logger.Info("processing input file", slog.String("path", f.Path))
		s.loadCSVFile(table, f.Path)
	}

	if s.excel {
		excelFiles, err := discovery.FindExcelFiles()
		if err != nil {
			return nil, err
		}
		for _, f := range excelFiles {
			s.logger.Info("processing input workbook", slog.String("path", f.Path))
			s.loadWorkbook(table, f.Path)
		}
	}

	return table, nil
}

// Stats returns counters accumulated across LoadDirectory calls.
func (s *Stage) Stats() Stats {
	return s.stats
}

// loadCSVFile reads one CSV file line by line and merges its valid records.
// The first line is skipped unconditionally as a header. Reading stops at
// end of file or at the first empty line; lines after an empty line are
// never parsed. That early stop matches the long-standing behavior of the
// original importer and is pinned by tests.
func (s *Stage) loadCSVFile(table *Table, path string) {
	file, err := os.Open(path)
	if err != nil {
		s.stats.FilesFailed++
		s.reporter.Report(Diagnostic{
			Kind:    KindFileAccess,
			File:    path,
			Message: "failed to open file: " + err.Error(),
		})
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	rowNum := 0

	// Header row, not validated
	if scanner.Scan() {
		rowNum++
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		rowNum++
		s.mergeLine(table, path, rowNum, line)
	}

	if err := scanner.Err(); err != nil {
		s.stats.FilesFailed++
		s.reporter.Report(Diagnostic{
			Kind:    KindFileAccess,
			File:    path,
			Message: "failed while reading file: " + err.Error(),
		})
		return
	}

	s.stats.FilesProcessed++
}

// mergeLine parses one data line and merges the record on success.
func (s *Stage) mergeLine(table *Table, path string, rowNum int, line string) {
	record, diag := ParseLine(path, rowNum, line)
	if diag != nil {
		switch diag.Kind {
		case KindFieldCount:
			s.stats.LinesMalformed++
		case KindBadVersion:
			s.stats.LinesBadVersion++
		}
		s.reporter.Report(*diag)
		return
	}
	s.stats.LinesParsed++
	table.Merge(record)
}
