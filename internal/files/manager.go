package files

import (
	"fmt"
	"os"
)

// EnsureDirectory creates the directory and all missing parents, then
// verifies the directory actually exists. The verification matters: a
// pre-existing regular file with the same name makes MkdirAll fail, and the
// caller treats a missing output directory as fatal to the emission stage.
func EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory %s does not exist after creation: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	return nil
}

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
