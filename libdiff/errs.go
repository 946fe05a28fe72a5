package libdiff

import "errors"

var (
	ErrUnknownOp        = errors.New("unknown operation")
	ErrUnpairedRoot     = errors.New("roots do not correspond")
	ErrIncompatiblePair = errors.New("incompatible pair")
	ErrUnknownNode      = errors.New("correspondence refers to unknown node")
)
