package observation

import "errors"

var (
	ErrInvalidScale   = errors.New("normalization scale must be a positive finite number")
	ErrEmptyLayout    = errors.New("observation layout is empty")
	ErrUnknownFeature = errors.New("unknown observation feature")
)
