package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is where reports are written unless configured otherwise.
const DefaultDir = "reports"

// FileWriter stores rendered reports under Dir with timestamped names.
type FileWriter struct {
	Dir string
	Now func() time.Time
}

// FileName returns the report file name for t and extension ext.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("access_audit_%s.%s", t.Format("20060102_150405"), ext)
}

// Write creates Dir if needed and writes content to a new report file.
// It returns the file's path.
func (w FileWriter) Write(ext, content string) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = DefaultDir
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now(), ext))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
