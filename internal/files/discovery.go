package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations over an input directory.
// Discovery is non-recursive: only entries directly inside the directory
// are considered, and subdirectories are skipped.
type Discovery struct {
	dir string
}

// NewDiscovery creates a new file discovery instance for the given directory
func NewDiscovery(dir string) *Discovery {
	return &Discovery{dir: dir}
}

// FindCSVFiles finds all files in the directory whose name ends with .csv,
// case-insensitive. Entries are returned in directory listing order.
func (d *Discovery) FindCSVFiles() ([]FileInfo, error) {
	return d.findBySuffix(".csv")
}

// FindExcelFiles finds all files in the directory whose name ends with .xlsx,
// case-insensitive.
func (d *Discovery) FindExcelFiles() ([]FileInfo, error) {
	return d.findBySuffix(".xlsx")
}

func (d *Discovery) findBySuffix(suffix string) ([]FileInfo, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(d.dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}
