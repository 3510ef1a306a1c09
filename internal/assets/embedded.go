package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the stylesheet and template compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(e.fsys, k.file(name))
	if err != nil {
		return "", k.missing(name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
