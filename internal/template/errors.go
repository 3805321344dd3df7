package template

import "errors"

var (
	// ErrUnknownTemplate is returned for keys outside the catalog or missing from the store.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrCorruptTemplateStore is returned when the template file cannot be decoded.
	// Reset re-initializes the store.
	ErrCorruptTemplateStore = errors.New("template file is corrupt")
)
