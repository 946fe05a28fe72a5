// Package libdiff builds edit scripts between two document revisions.
//
// # Usage
//
//	// Compute an edit script from a node correspondence
//	doc, err := libdiff.Build(oldSnap, newSnap, corr)
//
//	for _, op := range doc.Ops {
//	    fmt.Println(op)
//	}
//
// An edit script is an ordered sequence of operations ([Insert], [Delete],
// [UpdateAttr], [UpdateText], [Move]) that transforms the old revision into
// the new one when replayed in order. Operations reference nodes by identity,
// never by ownership, so a [Document] can be stored, transmitted, and applied
// to reconstruct a revision.
//
// # Ordering
//
// Moves, inserts and updates appear in document order of the new revision.
// Deletes come last, deepest first. Deletes are subtree-implicit: a deleted
// node takes its remaining descendants with it.
//
// # Related Packages
//
//   - github.com/signadot/xmlrev/match - Produces the node correspondence
//   - github.com/signadot/xmlrev/encode - Serializes documents
//   - github.com/signadot/xmlrev/parse - Reads serialized documents back
package libdiff
