package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureReporter collects diagnostics for assertions.
type captureReporter struct {
	diags []Diagnostic
}

func (r *captureReporter) Report(d Diagnostic) {
	r.diags = append(r.diags, d)
}

func (r *captureReporter) kinds() []DiagnosticKind {
	kinds := make([]DiagnosticKind, 0, len(r.diags))
	for _, d := range r.diags {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDirectoryMergesAcrossFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "a.csv",
		"user_id,first_name,last_name,version,insurance_company\n"+
			"u1,Ann,Smith,1,Acme\n"+
			"u2,Bob,Jones,2,Acme\n")
	writeInput(t, tmpDir, "b.csv",
		"user_id,first_name,last_name,version,insurance_company\n"+
			"u1,Ann,Smith,3,Acme\n"+
			"u3,Cat,Miller,1,Globex\n")

	reporter := &captureReporter{}
	stage := NewStage(Options{Reporter: reporter})

	table, err := stage.LoadDirectory(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, reporter.diags)
	assert.Equal(t, []string{"Acme", "Globex"}, table.Companies())
	assert.Equal(t, 3, table.Len())

	u1, ok := table.Lookup("Acme", "u1")
	require.True(t, ok)
	assert.Equal(t, 3, u1.Version)

	stats := stage.Stats()
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 4, stats.LinesParsed)
}

func TestLoadDirectorySkipsBadLines(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "mixed.csv",
		"user_id,first_name,last_name,version,insurance_company\n"+
			"u1,Ann,Smith,1,Acme\n"+
			"u2,Bob,Jones,2\n"+
			"u3,Cat,Miller,abc,Acme\n"+
			"u4,Dan,Brown,0,Acme\n"+
			"u5,Eve,Stone,4,Acme\n")

	reporter := &captureReporter{}
	stage := NewStage(Options{Reporter: reporter})

	table, err := stage.LoadDirectory(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t,
		[]DiagnosticKind{KindFieldCount, KindBadVersion, KindBadVersion},
		reporter.kinds())

	// Row numbers count from the header as row one
	assert.Equal(t, 3, reporter.diags[0].Row)
	assert.Equal(t, 4, reporter.diags[1].Row)
	assert.Equal(t, 5, reporter.diags[2].Row)

	stats := stage.Stats()
	assert.Equal(t, 1, stats.LinesMalformed)
	assert.Equal(t, 2, stats.LinesBadVersion)
	assert.Equal(t, 2, stats.LinesParsed)
}

func TestLoadDirectoryStopsAtEmptyLine(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "truncated.csv",
		"user_id,first_name,last_name,version,insurance_company\n"+
			"u1,Ann,Smith,1,Acme\n"+
			"\n"+
			"u2,Bob,Jones,2,Acme\n")

	stage := NewStage(Options{Reporter: &captureReporter{}})
	table, err := stage.LoadDirectory(tmpDir)
	require.NoError(t, err)

	// Lines after the blank line are never parsed
	assert.Equal(t, 1, table.Len())
	_, ok := table.Lookup("Acme", "u2")
	assert.False(t, ok)
}

func TestLoadDirectorySkipsHeaderUnconditionally(t *testing.T) {
	tmpDir := t.TempDir()
	// The first line is data-shaped but still treated as a header
	writeInput(t, tmpDir, "noheader.csv",
		"u1,Ann,Smith,1,Acme\n"+
			"u2,Bob,Jones,2,Acme\n")

	stage := NewStage(Options{Reporter: &captureReporter{}})
	table, err := stage.LoadDirectory(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	_, ok := table.Lookup("Acme", "u1")
	assert.False(t, ok)
}

func TestLoadDirectoryIgnoresNonCSVEntries(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "good.csv",
		"header\nu1,Ann,Smith,1,Acme\n")
	writeInput(t, tmpDir, "notes.txt",
		"header\nu9,Zed,Null,1,Acme\n")
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "nested.csv"), 0755))

	stage := NewStage(Options{Reporter: &captureReporter{}})
	table, err := stage.LoadDirectory(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	_, ok := table.Lookup("Acme", "u1")
	assert.True(t, ok)
}

func TestLoadDirectoryMissingDirectory(t *testing.T) {
	stage := NewStage(Options{Reporter: &captureReporter{}})
	_, err := stage.LoadDirectory(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoadDirectoryUnreadableFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeInput(t, tmpDir, "locked.csv",
		"header\nu1,Ann,Smith,1,Acme\n")
	require.NoError(t, os.Chmod(path, 0000))
	t.Cleanup(func() { _ = os.Chmod(path, 0644) })

	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	reporter := &captureReporter{}
	stage := NewStage(Options{Reporter: reporter})

	table, err := stage.LoadDirectory(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
	require.Len(t, reporter.diags, 1)
	assert.Equal(t, KindFileAccess, reporter.diags[0].Kind)
	assert.Equal(t, path, reporter.diags[0].File)
}
