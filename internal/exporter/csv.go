package exporter

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// CSVWriter writes unquoted comma-separated files. The account record
// format has no quoting or escaping: fields never contain commas (the
// parser's field-count gate rejects any line where they would), so rows are
// joined and written verbatim rather than going through encoding/csv, which
// would quote fields containing special characters and change the format.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures one CSV file write
type WriteOptions struct {
	Header  []string
	Records [][]string
}

// WriteFile writes a header line and the records to path, truncating any
// existing file. Every line is terminated by a newline.
func (w *CSVWriter) WriteFile(path string, options WriteOptions) error {
	w.logger.Debug("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)

	if len(options.Header) > 0 {
		if _, err := buf.WriteString(strings.Join(options.Header, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, record := range options.Records {
		if _, err := buf.WriteString(strings.Join(record, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}

	return file.Close()
}
