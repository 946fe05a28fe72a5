// Package dom provides the immutable node model over which revisions of an
// XML document are compared.
//
// # Overview
//
// A [Snapshot] is a fully materialized, read-only view of one document
// revision. It owns all of its [Node] values and maps each node identity
// ([ID]) to its node. Two snapshots, an old one and a new one, are the only
// inputs of a comparison; nothing in this module mutates a snapshot after it
// has been built.
//
// # Nodes
//
// A node is either an element or a text node:
//
//   - ElementKind: a qualified name ([QName]), a sorted set of attributes and
//     an ordered sequence of child identities
//   - TextKind: a text value and no children
//
// Attributes are properties of their element. An attribute is identified by
// the identity of its element together with its qualified name.
//
// Every node knows the identity of its parent (empty for the root), its index
// among its siblings, its depth, its position in document order and the number
// of nodes in its subtree.
//
// # Identity
//
// Node identities are stable across revisions when the storage layer that
// produced them preserves them. Identity is what makes matching cheap: most of
// a document is unchanged between revisions and pairs up by a hash lookup.
//
// # Building
//
// Snapshots are created with a [Builder]:
//
//	b := dom.NewBuilder()
//	_ = b.Element("", "1", dom.Name("a"), dom.Attr{Name: dom.Name("x"), Value: "1"})
//	_ = b.Element("1", "1.1", dom.Name("b"))
//	_ = b.Text("1.1", "1.1.1", "hello")
//	snap, err := b.Snapshot()
//
// # Hashing and Equality
//
// Each node carries a content hash of its subtree that covers kinds, names,
// attributes, text and child order but not identities. The hash is stable
// across processes. [Equal] and [EqualSubtree] compare structure and text,
// ignoring identities.
//
// # Thread Safety
//
// Snapshots and nodes are immutable and safe for concurrent use. Builders are
// not.
//
// # Related Packages
//
//   - github.com/signadot/xmlrev/parse - Parses XML text into snapshots
//   - github.com/signadot/xmlrev/encode - Encodes snapshots as XML
//   - github.com/signadot/xmlrev/match - Matches nodes across snapshots
package dom
