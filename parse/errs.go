package parse

import "errors"

var (
	ErrParse      = errors.New("parse error")
	ErrDiffFormat = errors.New("malformed diff")
)
