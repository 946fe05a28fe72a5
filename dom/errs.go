package dom

import "errors"

var (
	ErrEmptyID       = errors.New("empty node id")
	ErrDuplicateID   = errors.New("duplicate node id")
	ErrUnknownParent = errors.New("unknown parent")
	ErrTextParent    = errors.New("text node cannot have children")
	ErrSecondRoot    = errors.New("document already has a root")
	ErrDuplicateAttr = errors.New("duplicate attribute")
	ErrNoRoot        = errors.New("document has no root")
	ErrBuilderDone   = errors.New("builder already produced a snapshot")
)
