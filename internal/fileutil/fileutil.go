// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Permissions used for every artifact written by the exporter.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: exported documents are meant to be shared
)

// TempSuffix marks intermediate files that must never outlive a render.
const TempSuffix = ".temp"

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteFile writes data to path, creating missing parent directories.
// An existing file is overwritten.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	// #nosec G306 -- exported documents are meant to be readable
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// BaseName returns the file name of path without its extension.
//
// Examples:
//   - "/x/y/report.md" -> "report"
//   - "notes.markdown" -> "notes"
//   - "archive.tar.md" -> "archive.tar"
//   - "README" -> "README"
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SiblingPath returns {dir(path)}/{BaseName(path)}.{extension}.
func SiblingPath(path, extension string) string {
	return filepath.Join(filepath.Dir(path), BaseName(path)+"."+extension)
}

// TempSiblingPath returns the intermediate path used while producing path:
// same directory, same base name, TempSuffix, then the given extension.
// "/out/report.pdf" with "html" gives "/out/report.temp.html".
func TempSiblingPath(path, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), BaseName(path)+TempSuffix+"."+extension), nil
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
