package dom

import "slices"

// Equal reports whether a and b are structurally and textually equal. Node
// identities are ignored.
func Equal(a, b *Snapshot) bool {
	return EqualSubtree(a, a.root, b, b.root)
}

// EqualSubtree reports whether the subtree of a rooted at aid equals the
// subtree of b rooted at bid, ignoring identities.
func EqualSubtree(a *Snapshot, aid ID, b *Snapshot, bid ID) bool {
	an, bn := a.nodes[aid], b.nodes[bid]
	if an == nil || bn == nil {
		return an == bn
	}
	if an.hash != bn.hash || an.size != bn.size {
		return false
	}
	return equalNodes(a, an, b, bn)
}

func equalNodes(a *Snapshot, an *Node, b *Snapshot, bn *Node) bool {
	if an.kind != bn.kind {
		return false
	}
	switch an.kind {
	case TextKind:
		return an.value == bn.value
	case ElementKind:
		if an.name != bn.name {
			return false
		}
		if !slices.Equal(an.attrs, bn.attrs) {
			return false
		}
		if len(an.children) != len(bn.children) {
			return false
		}
		for i := range an.children {
			if !equalNodes(a, a.nodes[an.children[i]], b, b.nodes[bn.children[i]]) {
				return false
			}
		}
	}
	return true
}

// Compatible reports whether a node of one revision may stand for a node of
// another: same kind and, for elements, the same name.
func Compatible(a, b *Node) bool {
	if a.kind != b.kind {
		return false
	}
	return a.kind != ElementKind || a.name == b.name
}
