package assets

import "errors"

// Resolver searches an ordered list of plugin directories for an asset
// and falls back to the embedded defaults when no directory provides
// it. The first directory that has the asset wins.
type Resolver struct {
	search   []Loader
	embedded Loader
}

// NewResolver creates a Resolver over the given plugin directories.
// An empty list means only embedded assets are used. Every listed
// directory must exist and be readable.
func NewResolver(dirs []string) (*Resolver, error) {
	resolver := &Resolver{embedded: NewEmbeddedLoader()}

	for _, dir := range dirs {
		loader, err := NewDirLoader(dir)
		if err != nil {
			return nil, err
		}
		resolver.search = append(resolver.search, loader)
	}

	return resolver, nil
}

// LoadTemplate loads a template, trying plugin directories in order
// before the embedded defaults.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.load(name, Loader.LoadTemplate)
}

// LoadStyle loads a stylesheet, trying plugin directories in order
// before the embedded defaults.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.load(name, Loader.LoadStyle)
}

func (r *Resolver) load(name string, loadFn func(Loader, string) (string, error)) (string, error) {
	for _, loader := range r.search {
		content, err := loadFn(loader, name)
		if err == nil {
			return content, nil
		}
		// Only keep searching for "not found"; validation and I/O
		// errors surface immediately.
		if !isNotFoundError(err) {
			return "", err
		}
	}
	return loadFn(r.embedded, name)
}

// isNotFoundError checks if the error indicates the asset was absent.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrStyleNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
