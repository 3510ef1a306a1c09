package assets

import "errors"

// AssetResolver layers an optional user directory over the embedded set.
// A file missing from the directory falls back to the embedded copy; any
// other failure from the directory is returned as is.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver returns a resolver over the embedded assets, with
// customBasePath layered on top when it is not empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, fsLoader)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a user directory is layered over the
// embedded assets.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
