package encode

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// xmlWriter renders into a private buffer. The first error sticks and
// suppresses all further output.
type xmlWriter struct {
	buf bytes.Buffer
	err error
}

func (x *xmlWriter) raw(s string) {
	if x.err != nil {
		return
	}
	x.buf.WriteString(s)
}

func (x *xmlWriter) indent(n int) {
	x.raw(strings.Repeat(" ", n))
}

// escape writes s with all of "'&<>\t\n\r escaped.
func (x *xmlWriter) escape(s string) {
	if x.err != nil {
		return
	}
	if err := checkText(s); err != nil {
		x.err = err
		return
	}
	// writing to a bytes.Buffer does not fail.
	_ = xml.EscapeText(&x.buf, []byte(s))
}

// escapeLines is escape but keeps newlines literal.
func (x *xmlWriter) escapeLines(s string) {
	for i, ln := range strings.Split(s, "\n") {
		if i > 0 {
			x.raw("\n")
		}
		x.escape(ln)
	}
}

func (x *xmlWriter) flush(w io.Writer) error {
	if x.err != nil {
		return &SerializationError{Err: x.err}
	}
	if _, err := w.Write(x.buf.Bytes()); err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w in %q", ErrInvalidUTF8, s)
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %U", ErrInvalidChar, r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09, r == 0x0A, r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
