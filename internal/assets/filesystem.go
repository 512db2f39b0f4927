package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirLoader loads assets from one plugin directory. Template and style
// files sit at the top of the directory, named <name>.html and
// <name>.css. Implements the Loader interface.
type DirLoader struct {
	dir string
}

// NewDirLoader creates a DirLoader for the given directory.
// Returns ErrInvalidSearchPath if the path is not a readable directory.
func NewDirLoader(dir string) (*DirLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidSearchPath)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearchPath, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidSearchPath, absDir)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearchPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidSearchPath, absDir)
	}

	return &DirLoader{dir: absDir}, nil
}

// LoadTemplate loads {dir}/{name}.html.
func (d *DirLoader) LoadTemplate(name string) (string, error) {
	return d.load(name+".html", ErrTemplateNotFound)
}

// LoadStyle loads {dir}/{name}.css.
func (d *DirLoader) LoadStyle(name string) (string, error) {
	return d.load(name+".css", ErrStyleNotFound)
}

func (d *DirLoader) load(file string, notFound error) (string, error) {
	if err := ValidateAssetName(file[:len(file)-len(filepath.Ext(file))]); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filepath.Join(d.dir, file)) // #nosec G304 -- name validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q in %s", notFound, file, d.dir)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*DirLoader)(nil)
