package integrity

import "errors"

// Set of error variables for the integrity workflows.
var (
	ErrNotFound    = errors.New("dataset not found")
	ErrNotVerified = errors.New("dataset is not verified against the chain")
	ErrEmptyTable  = errors.New("dataset has no rows after cleaning")
)
