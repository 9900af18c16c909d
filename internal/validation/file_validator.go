// Package validation provides filesystem preconditions checked by the CLI
// before the pipeline runs.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileValidator validates input and output locations for the merger CLI
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputDirectory checks that the input directory exists and is a
// directory. When a glob pattern is given it also counts matching files; an
// empty match is logged as a warning, not an error, since a run over zero
// input files is a valid (if pointless) run.
func (v *FileValidator) ValidateInputDirectory(dir string, pattern string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("input directory does not exist", slog.String("directory", dir))
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("input path is not a directory", slog.String("path", dir))
		return fmt.Errorf("%s is not a directory", dir)
	}

	if pattern != "" {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("failed to check for files: %w", err)
		}
		if len(matches) == 0 {
			v.logger.Warn("no files matching pattern found",
				slog.String("directory", dir),
				slog.String("pattern", pattern))
			return nil
		}
		v.logger.Info("input directory validated",
			slog.String("directory", dir),
			slog.Int("files_found", len(matches)),
			slog.String("pattern", pattern))
	}

	return nil
}
