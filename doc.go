// Package xmlrev computes, serializes and applies structural diffs between
// revisions of an XML document.
//
// # Usage
//
//	from, _ := parse.Parse(oldXML)
//	to, _ := parse.Parse(newXML, parse.IDPrefix("n"))
//
//	// Compute the edit script
//	doc, err := xmlrev.Compare(from, to)
//
//	// Render it with caller supplied metadata
//	data, err := xmlrev.Serialize(doc, libdiff.Metadata{Document: "/db/doc.xml"})
//
//	// Reconstruct the new revision
//	res, err := xmlrev.Apply(from, doc)
//
// For any two snapshots A and B, Apply(A, Compare(A, B)) is equal to B
// ignoring identities, and Compare(A, A) is empty.
//
// Comparison never modifies its inputs and may run concurrently with other
// comparisons. Apply works on a private copy of its base and returns either
// the complete result or a *PatchConflictError naming the first operation
// whose preconditions failed.
//
// # Related Packages
//
//   - github.com/signadot/xmlrev/dom - Snapshots
//   - github.com/signadot/xmlrev/match - Node matching
//   - github.com/signadot/xmlrev/libdiff - Edit scripts
//   - github.com/signadot/xmlrev/encode - Serialization
//   - github.com/signadot/xmlrev/parse - Parsing
package xmlrev
