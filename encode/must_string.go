package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/xmlrev/dom"
)

func MustString(snap *dom.Snapshot, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(snap, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
