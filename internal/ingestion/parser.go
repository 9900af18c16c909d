package ingestion

import (
	"log/slog"
	"strconv"
	"strings"

	"uarcli/pkg/contracts/domain"
)

// fieldCount is the exact number of comma-separated fields a data line must
// have: user_id, first_name, last_name, version, insurance_company.
const fieldCount = 5

// DiagnosticKind classifies why an input was skipped during ingestion.
type DiagnosticKind string

const (
	// KindFieldCount marks a line that did not split into exactly five fields.
	KindFieldCount DiagnosticKind = "field_count"
	// KindBadVersion marks a line whose version field is not a positive integer.
	KindBadVersion DiagnosticKind = "bad_version"
	// KindFileAccess marks a file that could not be opened or read.
	KindFileAccess DiagnosticKind = "file_access"
)

// Diagnostic describes one skipped line or file. Diagnostics are values, not
// errors: ingestion never aborts on a bad input, it reports the skip and
// moves on.
type Diagnostic struct {
	Kind    DiagnosticKind
	File    string
	Row     int
	Line    string
	Message string
}

// Reporter receives diagnostics as they are produced. The CLI wires a
// slog-backed reporter; tests substitute a capturing one.
type Reporter interface {
	Report(d Diagnostic)
}

// LogReporter reports diagnostics through a slog logger.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter that logs diagnostics as warnings.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report logs the diagnostic. File-access failures log without row context.
func (r *LogReporter) Report(d Diagnostic) {
	if d.Kind == KindFileAccess {
		r.logger.Warn(d.Message,
			slog.String("kind", string(d.Kind)),
			slog.String("file", d.File))
		return
	}
	r.logger.Warn(d.Message,
		slog.String("kind", string(d.Kind)),
		slog.String("file", d.File),
		slog.Int("row", d.Row),
		slog.String("line", d.Line))
}

// atoiDefault returns the integer value of s, or def when s does not parse.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseLine parses one CSV data line into a Record. The line is split on the
// literal comma only; there is no quoting or escaping support, so a comma
// inside a name shifts field positions and fails the field-count gate.
//
// A nil Diagnostic means the line produced a valid Record. Otherwise the
// Diagnostic says why the line was skipped and the Record is the zero value.
func ParseLine(file string, row int, line string) (domain.Record, *Diagnostic) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return domain.Record{}, &Diagnostic{
			Kind:    KindFieldCount,
			File:    file,
			Row:     row,
			Line:    line,
			Message: "incorrect CSV field count, line skipped",
		}
	}

	return parseFields(file, row, line, fields)
}

// parseFields applies the version gate to an already-split five-field row
// and constructs the Record. Shared by the CSV and Excel readers.
func parseFields(file string, row int, line string, fields []string) (domain.Record, *Diagnostic) {
	// Version numbers must be positive integers; anything unparseable
	// falls through the gate via the -1 sentinel.
	version := atoiDefault(fields[3], -1)
	if version <= 0 {
		return domain.Record{}, &Diagnostic{
			Kind:    KindBadVersion,
			File:    file,
			Row:     row,
			Line:    line,
			Message: "invalid version field, line skipped",
		}
	}

	return domain.Record{
		UserID:           fields[0],
		FirstName:        fields[1],
		LastName:         fields[2],
		Version:          version,
		InsuranceCompany: fields[4],
	}, nil
}
