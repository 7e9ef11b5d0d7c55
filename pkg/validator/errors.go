package validator

import "errors"

// ErrValidationFailed is the sentinel matched by errors.Is on ValidationErrors.
var ErrValidationFailed = errors.New("validation failed")
