package episode

import "errors"

var ErrInvalidRewards = errors.New("invalid reward configuration")
