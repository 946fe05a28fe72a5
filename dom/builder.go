package dom

import (
	"fmt"
	"slices"
)

// Builder assembles a [Snapshot]. Nodes are added parent first; the first
// node added with an empty parent is the root.
type Builder struct {
	nodes map[ID]*Node
	root  ID
	done  bool
}

func NewBuilder() *Builder {
	return &Builder{nodes: map[ID]*Node{}}
}

// Element adds an element under parent, or the root if parent is "".
func (b *Builder) Element(parent, id ID, name QName, attrs ...Attr) error {
	as := slices.Clone(attrs)
	slices.SortStableFunc(as, compareAttrs)
	for i := 1; i < len(as); i++ {
		if as[i-1].Name == as[i].Name {
			return fmt.Errorf("%w %s on %s", ErrDuplicateAttr, as[i].Name, id)
		}
	}
	return b.add(parent, &Node{
		id:    id,
		kind:  ElementKind,
		name:  name,
		attrs: as,
	})
}

// Text adds a text node under parent, or as the root if parent is "".
func (b *Builder) Text(parent, id ID, value string) error {
	return b.add(parent, &Node{
		id:    id,
		kind:  TextKind,
		value: value,
	})
}

func (b *Builder) add(parent ID, n *Node) error {
	if b.done {
		return ErrBuilderDone
	}
	if n.id == "" {
		return ErrEmptyID
	}
	if _, ok := b.nodes[n.id]; ok {
		return fmt.Errorf("%w %q", ErrDuplicateID, n.id)
	}
	if parent == "" {
		if b.root != "" {
			return fmt.Errorf("%w: %q, cannot add %q", ErrSecondRoot, b.root, n.id)
		}
		b.root = n.id
		b.nodes[n.id] = n
		return nil
	}
	p := b.nodes[parent]
	if p == nil {
		return fmt.Errorf("%w %q for %q", ErrUnknownParent, parent, n.id)
	}
	if p.kind != ElementKind {
		return fmt.Errorf("%w: %q under %q", ErrTextParent, n.id, parent)
	}
	n.parent = parent
	n.index = len(p.children)
	p.children = append(p.children, n.id)
	b.nodes[n.id] = n
	return nil
}

// Snapshot freezes the added nodes. The builder cannot be used afterwards.
func (b *Builder) Snapshot() (*Snapshot, error) {
	if b.done {
		return nil, ErrBuilderDone
	}
	if b.root == "" {
		return nil, ErrNoRoot
	}
	b.done = true
	s := &Snapshot{
		root:  b.root,
		nodes: b.nodes,
		order: make([]*Node, 0, len(b.nodes)),
	}
	b.nodes = nil
	s.index(s.nodes[s.root], 0)
	return s, nil
}

func (s *Snapshot) index(n *Node, depth int) {
	n.depth = depth
	n.order = len(s.order)
	s.order = append(s.order, n)
	n.children = slices.Clip(n.children)
	kids := make([]*Node, len(n.children))
	for i, c := range n.children {
		kid := s.nodes[c]
		s.index(kid, depth+1)
		kids[i] = kid
	}
	n.size = len(s.order) - n.order
	n.hash = hashNode(n, kids)
}
