// Package parse reads XML documents into [dom.Snapshot] values and
// serialized diffs back into [libdiff.Document] values.
//
// # Identities
//
// Every node gets an identity. When [IDAttr] names an attribute, elements
// carrying it use its value. All other nodes get positional identities: the
// root is "1" and the k-th kept child of a node with identity p is "p.k",
// counting elements and text alike. [IDPrefix] prepends a prefix to the
// root identity, so that two parses of unrelated revisions do not share
// positional identities.
//
// # Whitespace
//
// By default text consisting only of whitespace is dropped. Use
// [KeepWhitespace] to keep it.
//
// # Usage
//
//	snap, err := parse.Parse(data, parse.IDAttr(dom.NameNS(xmlNS, "id")))
//
//	doc, err := parse.ParseDiff(diffData)
package parse
