package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	writer := NewCSVWriter(nil)
	err := writer.WriteFile(path, WriteOptions{
		Header:  []string{"a", "b"},
		Records: [][]string{{"1", "2"}, {"3", "4"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(data))
}

func TestWriteFileNoQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	// Fields are written verbatim, even ones encoding/csv would quote
	writer := NewCSVWriter(nil)
	err := writer.WriteFile(path, WriteOptions{
		Header:  []string{"name"},
		Records: [][]string{{`O"Brien`}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name\nO\"Brien\n", string(data))
}

func TestWriteFileTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content\nmore\n"), 0644))

	writer := NewCSVWriter(nil)
	err := writer.WriteFile(path, WriteOptions{Header: []string{"a"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.csv")

	writer := NewCSVWriter(nil)
	err := writer.WriteFile(path, WriteOptions{Header: []string{"a"}})
	assert.Error(t, err)
}
