package xmlrev

import (
	"errors"
	"fmt"

	"github.com/signadot/xmlrev/encode"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/match"
)

var (
	ErrPatchConflict  = errors.New("patch conflict")
	ErrNodeNotFound   = errors.New("node not found")
	ErrValueMismatch  = errors.New("value mismatch")
	ErrPosition       = errors.New("position out of range")
	ErrParentMismatch = errors.New("parent mismatch")
	ErrDuplicateID    = errors.New("duplicate node id")
	ErrKind           = errors.New("wrong node kind")
	ErrCycle          = errors.New("move into own subtree")
	ErrRoot           = errors.New("operation not allowed on root")
	ErrRoundTrip      = errors.New("diff does not reproduce the new revision")

	// ErrNilSnapshot is returned by Compare and Apply when given no
	// snapshot to work on.
	ErrNilSnapshot = match.ErrNilSnapshot
)

type (
	IncompatibleRootError = match.IncompatibleRootError
	SerializationError    = encode.SerializationError
)

// PatchConflictError reports the first operation of a diff whose
// preconditions do not hold on the tree it is applied to.
type PatchConflictError struct {
	Index int
	Op    libdiff.Op
	Err   error
}

func (e *PatchConflictError) Error() string {
	return fmt.Sprintf("%s at operation %d (%s): %v", ErrPatchConflict, e.Index, e.Op, e.Err)
}

func (e *PatchConflictError) Unwrap() error {
	return e.Err
}

func (e *PatchConflictError) Is(target error) bool {
	return target == ErrPatchConflict
}
