package mines

import "errors"

var (
	ErrInvalidPosition      = errors.New("position out of bounds")
	ErrInvalidConfiguration = errors.New("invalid board configuration")
)
