package action

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action code")
	ErrEmptySet      = errors.New("action set is empty")
	ErrNegativeSpeed = errors.New("motion speeds must not be negative")
)
