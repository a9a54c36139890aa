// =============================================================================
// Bakery Order Report - File Manager Utility
// =============================================================================
//
// This module provides the file handling shared by the report and price
// exports:
//   - Output directory management
//   - File naming from a pattern ({date}, {timestamp}, {uuid}, ...)
//   - Atomic writes, so a failed export never leaves a half-written file
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager places generated files in one output directory.
type FileManager struct {
	// OutputDir is the directory where generated files are placed.
	OutputDir string

	// Now returns the time used for {date}/{timestamp} placeholders.
	// Default: time.Now
	Now func() time.Time
}

// NewFileManager creates a FileManager writing to outputDir.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		Now:       time.Now,
	}
}

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// OutputPath expands format into a file name inside the output directory.
func (fm *FileManager) OutputPath(format string, params map[string]string) string {
	return filepath.Join(fm.OutputDir, GenerateOutputFileName(format, fm.Now(), params))
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders of a file name pattern.
//
// PARAMETERS:
//   - format: The pattern. Placeholders:
//       {date}      - Date (YYYY-MM-DD)
//       {timestamp} - Timestamp (YYYYMMDD_HHMMSS)
//       {time}      - Time (HHMMSS)
//       {uuid}      - A random UUID
//       {<key>}     - Any key of params, e.g. {input}
//   - now: The time to stamp the name with.
//   - params: Extra placeholder values.
//
// RETURNS:
//   - The file name.
//
// EXAMPLE:
//   format: "BakeryReport_{date}.xlsx"
//   output: "BakeryReport_2024-12-20.xlsx"
func GenerateOutputFileName(format string, now time.Time, params map[string]string) string {
	pairs := []string{
		"{date}", now.Format("2006-01-02"),
		"{timestamp}", now.Format("20060102_150405"),
		"{time}", now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		pairs = append(pairs, "{uuid}", uuid.New().String())
	}
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(format)
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes a file through a temporary file in the same
// directory and renames it into place only when write succeeds. On failure
// the destination is left untouched and the temporary file is removed.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
