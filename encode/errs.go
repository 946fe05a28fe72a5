package encode

import (
	"errors"
)

var (
	ErrSerialization = errors.New("serialization error")
	ErrInvalidUTF8   = errors.New("invalid UTF-8")
	ErrInvalidChar   = errors.New("character not allowed in XML")
)

// SerializationError reports a failure to render or write output. Nothing
// was written when it is returned by a rendering failure.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return ErrSerialization.Error() + ": " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}
