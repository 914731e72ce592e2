package agent

import "errors"

var (
	ErrNotStarted       = errors.New("episode not started: call Reset first")
	ErrMissingEncoder   = errors.New("controller requires an observation encoder")
	ErrMissingActions   = errors.New("controller requires an action interpreter")
	ErrMissingSampler   = errors.New("controller requires agent and goal samplers")
	ErrInvalidTimeDelta = errors.New("fixed time delta must be positive")
	ErrAlreadyAttached  = errors.New("controller already attached to a bus")
)
