package xmlrev

import (
	"io"

	"github.com/signadot/xmlrev/encode"
	"github.com/signadot/xmlrev/libdiff"
)

// Serialize renders d in canonical form together with meta. Equal diffs and
// metadata always give identical bytes.
func Serialize(d *libdiff.Document, meta libdiff.Metadata) ([]byte, error) {
	return encode.MarshalDiff(d, meta)
}

// SerializeTo is Serialize writing to w. Nothing is written if rendering
// fails.
func SerializeTo(d *libdiff.Document, meta libdiff.Metadata, w io.Writer) error {
	return encode.EncodeDiff(d, meta, w)
}
