package contract

import "errors"

var (
	ErrModelInvoke   = errors.New("model invoke failed")
	ErrLookupFailed  = errors.New("insight lookup failed")
	ErrPromptMissing = errors.New("required prompt is missing")
	ErrValidation    = errors.New("validation failed")
)
