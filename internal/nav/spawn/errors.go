package spawn

import "errors"

var ErrInvalidSpec = errors.New("invalid spawn spec")
