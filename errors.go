package gitform

import "errors"

var (
	// ErrEmptyCatalog indicates an option catalog without any descriptor.
	ErrEmptyCatalog = errors.New("empty option catalog")
	// ErrInvalidDescriptor indicates a catalog entry missing its section or name.
	ErrInvalidDescriptor = errors.New("invalid option descriptor")
	// ErrMissingOptions indicates a select option without any choices.
	ErrMissingOptions = errors.New("select option without choices")
	// ErrDuplicateOption indicates two catalog entries sharing section, subsection and name.
	ErrDuplicateOption = errors.New("duplicate option")
	// ErrInvalidKey indicates a key missing section or key name.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidEnv indicates an inconsistent set of environment overlay variables.
	ErrInvalidEnv = errors.New("invalid environment overlay")
	// ErrFetch indicates remote preferences could not be retrieved.
	ErrFetch = errors.New("failed to fetch remote preferences")
)
