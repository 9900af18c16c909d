package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"uarcli/internal/files"
	"uarcli/internal/ingestion"
	"uarcli/pkg/contracts/domain"
)

// CompanyExporter writes one sorted CSV file per insurance company from an
// aggregation table.
type CompanyExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewCompanyExporter creates a new company exporter
func NewCompanyExporter(logger *slog.Logger) *CompanyExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyExporter{
		writer: NewCSVWriter(logger),
		logger: logger,
	}
}

// Export writes the table's records to outDir, one file per company named
// <company>.csv. A missing output directory that cannot be created is fatal
// and no files are written; a write failure for one company is logged and
// the remaining companies are still written.
func (e *CompanyExporter) Export(table *ingestion.Table, outDir string) error {
	if err := files.EnsureDirectory(outDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, company := range table.Companies() {
		records := table.Records(company)
		sortRecords(records)

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, r.Row())
		}

		path := filepath.Join(outDir, company+".csv")
		err := e.writer.WriteFile(path, WriteOptions{
			Header:  domain.RecordColumns,
			Records: rows,
		})
		if err != nil {
			e.logger.Error("failed to write company file",
				slog.String("company", company),
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}

		e.logger.Info("wrote company records",
			slog.String("company", company),
			slog.String("path", path),
			slog.Int("record_count", len(records)))
	}

	return nil
}

// sortRecords orders records by last name, then first name, using plain
// byte-wise string comparison. The sort is stable: records with identical
// names keep their relative order from the input slice.
func sortRecords(records []domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].LastName != records[j].LastName {
			return records[i].LastName < records[j].LastName
		}
		return records[i].FirstName < records[j].FirstName
	})
}
