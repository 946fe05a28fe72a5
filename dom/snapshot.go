package dom

import (
	"iter"
	"strconv"
	"strings"
)

// Snapshot is an immutable view of one document revision.
type Snapshot struct {
	root  ID
	nodes map[ID]*Node
	order []*Node
}

func (s *Snapshot) Root() *Node {
	return s.nodes[s.root]
}

// Node returns the node with the given identity or nil.
func (s *Snapshot) Node(id ID) *Node {
	return s.nodes[id]
}

func (s *Snapshot) Has(id ID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// All iterates over all nodes in document order.
func (s *Snapshot) All() iter.Seq[*Node] {
	return s.Subtree(s.root)
}

// Subtree iterates over the subtree rooted at id in document order. It yields
// nothing if id is not in s.
func (s *Snapshot) Subtree(id ID) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n := s.nodes[id]
		if n == nil {
			return
		}
		for _, sn := range s.order[n.order : n.order+n.size] {
			if !yield(sn) {
				return
			}
		}
	}
}

// Children returns the child nodes of id.
func (s *Snapshot) Children(id ID) []*Node {
	n := s.nodes[id]
	if n == nil {
		return nil
	}
	res := make([]*Node, len(n.children))
	for i, c := range n.children {
		res[i] = s.nodes[c]
	}
	return res
}

// Hash returns the content hash of the subtree rooted at id.
func (s *Snapshot) Hash(id ID) uint64 {
	n := s.nodes[id]
	if n == nil {
		return 0
	}
	return n.hash
}

// Contains reports whether the node anc is an ancestor-or-self of the node
// id.
func (s *Snapshot) Contains(anc, id ID) bool {
	a, n := s.nodes[anc], s.nodes[id]
	if a == nil || n == nil {
		return false
	}
	return a.order <= n.order && n.order < a.order+a.size
}

// String returns an indented outline of s, one node per line, meant for
// debugging output.
func (s *Snapshot) String() string {
	var sb strings.Builder
	for n := range s.All() {
		sb.WriteString(strings.Repeat("  ", n.depth))
		sb.WriteString(n.String())
		for _, a := range n.attrs {
			sb.WriteString(" ")
			sb.WriteString(a.Name.String())
			sb.WriteString("=")
			sb.WriteString(strconv.Quote(a.Value))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
