// Package assets loads the HTML templates and stylesheets used to wrap
// rendered notebook fragments. Assets resolve from an ordered list of
// plugin directories first, falling back to embedded defaults, so a
// site can override how notebook fragments are framed without
// rebuilding.
package assets

import (
	"fmt"
	"strings"
)

// Loader defines the contract for loading fragment templates and
// stylesheets. Implementations may load from embedded assets or from
// plugin directories on the filesystem.
type Loader interface {
	// LoadTemplate loads an HTML template by name (without the .html
	// extension). Returns ErrTemplateNotFound if it doesn't exist and
	// ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadStyle loads a stylesheet by name (without the .css
	// extension). Returns ErrStyleNotFound if it doesn't exist and
	// ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}

// ValidateAssetName rejects names that could escape the asset
// directories: empty names, path separators, and traversal sequences.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
