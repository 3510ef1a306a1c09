package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultStyleName     = "default"
	DocumentTemplateName = "document"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader loads export stylesheets and page templates by bare name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kind describes where one family of assets lives relative to a root.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name within the asset root.
func (k kind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

func (k kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}

// ValidateAssetName rejects names that could select another directory or
// another extension: separators, dots, and NUL.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
