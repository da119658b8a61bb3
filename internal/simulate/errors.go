package simulate

import "errors"

var (
	ErrUnknownBias       = errors.New("unknown bias")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrInvalidSimulation = errors.New("invalid simulation config")
)
