package dom

import (
	"slices"
	"strconv"
	"unicode/utf8"
)

// Node is an immutable element or text node of a [Snapshot].
type Node struct {
	id       ID
	kind     Kind
	name     QName
	value    string
	attrs    []Attr
	children []ID
	parent   ID

	index int
	depth int
	order int
	size  int
	hash  uint64
}

func (n *Node) ID() ID { return n.id }

func (n *Node) Kind() Kind { return n.kind }

// Name returns the qualified name of an element, or the zero QName for text.
func (n *Node) Name() QName { return n.name }

// Value returns the text of a text node, or "" for an element.
func (n *Node) Value() string { return n.value }

// Parent returns the identity of the parent, or "" for the root.
func (n *Node) Parent() ID { return n.parent }

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool { return n.kind == ElementKind }

// Attrs returns a copy of the attributes of n, sorted by name.
func (n *Node) Attrs() []Attr {
	return slices.Clone(n.attrs)
}

func (n *Node) NumAttrs() int {
	return len(n.attrs)
}

// Attr returns the value of the attribute with the given name.
func (n *Node) Attr(name QName) (string, bool) {
	i, ok := slices.BinarySearchFunc(n.attrs, name, func(a Attr, q QName) int {
		return a.Name.Compare(q)
	})
	if !ok {
		return "", false
	}
	return n.attrs[i].Value, true
}

// Children returns a copy of the child identities of n in document order.
func (n *Node) Children() []ID {
	return slices.Clone(n.children)
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) Child(i int) ID {
	return n.children[i]
}

// Index returns the position of n among the children of its parent.
func (n *Node) Index() int { return n.index }

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int { return n.depth }

// Order returns the position of n in document order, starting at 0 for the
// root.
func (n *Node) Order() int { return n.order }

// Size returns the number of nodes in the subtree rooted at n, including n.
func (n *Node) Size() int { return n.size }

// Hash returns the content hash of the subtree rooted at n.
func (n *Node) Hash() uint64 { return n.hash }

func (n *Node) String() string {
	switch n.kind {
	case ElementKind:
		return "<" + n.name.String() + "#" + string(n.id) + ">"
	case TextKind:
		v := n.value
		if utf8.RuneCountInString(v) > 32 {
			v = string([]rune(v)[:29]) + "..."
		}
		return strconv.Quote(v) + "#" + string(n.id)
	}
	return "?#" + string(n.id)
}
