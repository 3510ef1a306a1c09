package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads overrides from a user directory laid out like the
// embedded set ({base}/styles/*.css, {base}/templates/*.html).
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader resolves basePath (symlinks included) and checks that it
// is a readable directory. Any problem is reported as ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	root, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	_, err = os.ReadDir(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		if info, statErr := os.Stat(root); statErr == nil && !info.IsDir() {
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
		}
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: root}, nil
}

func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleKind, name)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path, err := f.contained(filepath.Join(f.basePath, filepath.FromSlash(k.file(name))))
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- contained in basePath
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", k.missing(name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contained resolves path and fails with ErrPathTraversal when the result,
// after following symlinks, is not below basePath. A missing file is checked
// on its unresolved path.
func (f *FilesystemLoader) contained(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if !strings.HasPrefix(abs, f.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return abs, nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
