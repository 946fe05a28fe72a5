package match

import (
	"errors"
	"fmt"

	"github.com/signadot/xmlrev/dom"
)

var (
	ErrIncompatibleRoot = errors.New("incompatible roots")
	ErrNilSnapshot      = errors.New("nil snapshot")
)

// IncompatibleRootError is returned when the roots of two revisions differ in
// kind or name. No correspondence can exist between such revisions.
type IncompatibleRootError struct {
	From *dom.Node
	To   *dom.Node
}

func (e *IncompatibleRootError) Error() string {
	return fmt.Sprintf("%s: %s and %s", ErrIncompatibleRoot, e.From, e.To)
}

func (e *IncompatibleRootError) Unwrap() error {
	return ErrIncompatibleRoot
}
