package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrStyleNotFound indicates the requested stylesheet does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the asset name contains path
	// separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidSearchPath indicates a plugin search path is not a
	// valid, readable directory.
	ErrInvalidSearchPath = errors.New("invalid search path")

	// ErrAssetRead indicates an I/O error occurred while reading an
	// asset file.
	ErrAssetRead = errors.New("failed to read asset")
)
