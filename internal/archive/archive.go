// Package archive turns a generated file set into a downloadable zip.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/codelovable/codelovable/internal/model"
)

// Entries with a fixed timestamp so the same file set always produces the
// same archive bytes.
var archiveEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteZip writes the files to w as a zip archive, one entry per file in the
// order given. Paths are stored as-is; callers are expected to have
// validated them.
func WriteZip(w io.Writer, files []model.GeneratedFile) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		header := &zip.FileHeader{
			Name:     f.Path,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		}
		header.SetMode(0o644)
		entry, err := zw.CreateHeader(header)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to create zip entry %s: %w", f.Path, err)
		}
		if _, err := entry.Write([]byte(f.Content)); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write zip entry %s: %w", f.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip archive: %w", err)
	}
	return nil
}

// ExportProject writes a project's files as a zip next to outDir, named
// after the project. It returns the path written.
func ExportProject(project model.Project, outDir string) (string, error) {
	if len(project.Files) == 0 {
		return "", fmt.Errorf("project %s has no files to export", project.Name)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(outDir, safeArchiveName(project.Name)+".zip")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	if err := WriteZip(file, project.Files); err != nil {
		_ = file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to flush archive: %w", err)
	}
	return path, nil
}

// safeArchiveName strips characters that are unsafe in file names.
func safeArchiveName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "project"
	}
	return string(out)
}
