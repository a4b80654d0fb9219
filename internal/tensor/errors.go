package tensor

import "errors"

// Contract violations reported by the engine. Returned errors wrap one of these,
// so callers match them with errors.Is.
var (
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrInvalidShape     = errors.New("invalid shape")
)
