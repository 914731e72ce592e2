package sim

import "errors"

var (
	ErrUnknownPolicy = errors.New("unknown policy")
	ErrTickLimit     = errors.New("episode exceeded the host tick limit")
	ErrNoAgents      = errors.New("at least one agent is required")
)
