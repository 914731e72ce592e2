package config

import "errors"

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrEmptyProfile   = errors.New("profile is empty")
	ErrUnknownPreset  = errors.New("unknown preset")
)
