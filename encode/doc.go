// Package encode writes snapshots and diffs.
//
// # Usage
//
//	// Write a snapshot as indented XML
//	err := encode.Encode(snap, os.Stdout, encode.Indent(2))
//
//	// Write the canonical form of a diff
//	err := encode.EncodeDiff(doc, meta, w)
//
//	// Write a colored, human readable summary of a diff
//	err := encode.EncodeReport(doc, base, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// The canonical form of a diff is byte for byte deterministic: a fixed
// attribute order, two space indentation and the escaping of
// [encoding/xml.EscapeText]. Every call renders into its own buffer and
// writes to the sink only once rendering succeeded, so a failed call leaves
// no partial output behind. Failures are reported as *SerializationError.
//
// # Related Packages
//
//   - github.com/signadot/xmlrev/parse - Reads both forms back
//   - github.com/signadot/xmlrev/libdiff - Diff documents
package encode
