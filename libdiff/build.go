package libdiff

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/signadot/xmlrev/debug"
	"github.com/signadot/xmlrev/dom"
)

// Correspondence pairs the nodes of two revisions.
type Correspondence interface {
	// Forward returns the new counterpart of an old node.
	Forward(dom.ID) (dom.ID, bool)
	// Reverse returns the old counterpart of a new node.
	Reverse(dom.ID) (dom.ID, bool)
	// Relocated reports whether an old node changed parent or left the
	// order preserving subsequence of its siblings.
	Relocated(dom.ID) bool
}

// Build produces the edit script transforming from into to, given a
// correspondence whose roots are paired.
//
// Paired nodes keep their old identity. Nodes created by the script carry
// their new identity, renamed with trailing primes when it is also used in
// from.
func Build(from, to *dom.Snapshot, corr Correspondence) (*Document, error) {
	b := &builder{
		from: from,
		to:   to,
		corr: corr,
		rid:  make(map[dom.ID]dom.ID, to.Len()),
		kids: make(map[dom.ID][]dom.ID, from.Len()),
		up:   make(map[dom.ID]dom.ID, from.Len()),
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	b.replayIDs()
	for o := range from.All() {
		if o.IsElement() {
			b.kids[o.ID()] = o.Children()
		}
		b.up[o.ID()] = o.Parent()
	}
	for n := range to.All() {
		if err := b.visit(n); err != nil {
			return nil, err
		}
	}
	b.deletes()
	if debug.Build() {
		for i, op := range b.ops {
			debug.Logf("build: %d %s\n", i, op)
		}
	}
	return &Document{Ops: b.ops}, nil
}

type builder struct {
	from, to *dom.Snapshot
	corr     Correspondence

	// rid maps the new identities to the identities used during replay.
	rid map[dom.ID]dom.ID
	// kids and up model the tree being replayed.
	kids map[dom.ID][]dom.ID
	up   map[dom.ID]dom.ID

	ops []Op
}

func (b *builder) check() error {
	fr, tr := b.from.Root(), b.to.Root()
	if fid, ok := b.corr.Forward(fr.ID()); !ok || fid != tr.ID() {
		return fmt.Errorf("%w: %s", ErrUnpairedRoot, fr)
	}
	for n := range b.to.All() {
		oid, ok := b.corr.Reverse(n.ID())
		if !ok {
			continue
		}
		o := b.from.Node(oid)
		if o == nil {
			return fmt.Errorf("%w %q", ErrUnknownNode, oid)
		}
		if !dom.Compatible(o, n) {
			return fmt.Errorf("%w: %s and %s", ErrIncompatiblePair, o, n)
		}
	}
	return nil
}

func (b *builder) replayIDs() {
	taken := map[dom.ID]bool{}
	for n := range b.to.All() {
		if oid, ok := b.corr.Reverse(n.ID()); ok {
			b.rid[n.ID()] = oid
			continue
		}
		id := n.ID()
		for b.from.Has(id) || taken[id] || (id != n.ID() && b.to.Has(id)) {
			id += "'"
		}
		taken[id] = true
		b.rid[n.ID()] = id
	}
}

func (b *builder) paired(n *dom.Node) bool {
	_, ok := b.corr.Reverse(n.ID())
	return ok
}

func (b *builder) visit(n *dom.Node) error {
	oid, ok := b.corr.Reverse(n.ID())
	if !ok {
		p := b.to.Node(n.Parent())
		if p == nil || !b.paired(p) {
			// part of the payload of an inserted ancestor
			return nil
		}
		return b.insert(n)
	}
	o := b.from.Node(oid)
	if n.Parent() != "" {
		b.move(o, n)
	}
	switch n.Kind() {
	case dom.ElementKind:
		b.updateAttrs(o, n)
	case dom.TextKind:
		if o.Value() != n.Value() {
			b.ops = append(b.ops, &UpdateText{Node: o.ID(), Old: o.Value(), New: n.Value()})
		}
	}
	return nil
}

// position returns where n goes among the replayed children of its parent:
// right after its preceding sibling, or first.
func (b *builder) position(n *dom.Node) int {
	if n.Index() == 0 {
		return 0
	}
	prev := b.rid[b.to.Node(n.Parent()).Child(n.Index()-1)]
	return slices.Index(b.kids[b.up[prev]], prev) + 1
}

func (b *builder) place(id, parent dom.ID, pos int) {
	b.kids[parent] = slices.Insert(b.kids[parent], pos, id)
	b.up[id] = parent
}

func (b *builder) detach(id dom.ID) int {
	p := b.up[id]
	i := slices.Index(b.kids[p], id)
	b.kids[p] = slices.Delete(b.kids[p], i, i+1)
	return i
}

func (b *builder) move(o, n *dom.Node) {
	id := o.ID()
	from := b.up[id]
	to := b.rid[n.Parent()]
	if from == to && !b.corr.Relocated(id) {
		return
	}
	was := b.detach(id)
	pos := b.position(n)
	b.place(id, to, pos)
	if from == to && was == pos {
		return
	}
	b.ops = append(b.ops, &Move{Node: id, From: from, To: to, Position: pos})
}

func (b *builder) insert(n *dom.Node) error {
	pb := dom.NewBuilder()
	if err := b.payload(pb, "", n); err != nil {
		return err
	}
	sub, err := pb.Snapshot()
	if err != nil {
		return err
	}
	parent := b.rid[n.Parent()]
	pos := b.position(n)
	b.place(b.rid[n.ID()], parent, pos)
	b.ops = append(b.ops, &Insert{Parent: parent, Position: pos, Subtree: sub})
	return nil
}

// payload adds n and its unpaired descendants to pb. Paired descendants
// are moved in by their own operations.
func (b *builder) payload(pb *dom.Builder, parent dom.ID, n *dom.Node) error {
	id := b.rid[n.ID()]
	if n.Kind() == dom.TextKind {
		return pb.Text(parent, id, n.Value())
	}
	if err := pb.Element(parent, id, n.Name(), n.Attrs()...); err != nil {
		return err
	}
	for _, c := range b.to.Children(n.ID()) {
		if b.paired(c) {
			continue
		}
		if err := b.payload(pb, id, c); err != nil {
			return err
		}
		b.up[b.rid[c.ID()]] = id
		b.kids[id] = append(b.kids[id], b.rid[c.ID()])
	}
	return nil
}

func (b *builder) updateAttrs(o, n *dom.Node) {
	oa, na := o.Attrs(), n.Attrs()
	i, j := 0, 0
	for i < len(oa) || j < len(na) {
		var c int
		switch {
		case i == len(oa):
			c = 1
		case j == len(na):
			c = -1
		default:
			c = oa[i].Name.Compare(na[j].Name)
		}
		switch {
		case c < 0:
			b.ops = append(b.ops, &UpdateAttr{Node: o.ID(), Name: oa[i].Name, Old: Val(oa[i].Value)})
			i++
		case c > 0:
			b.ops = append(b.ops, &UpdateAttr{Node: o.ID(), Name: na[j].Name, New: Val(na[j].Value)})
			j++
		default:
			if oa[i].Value != na[j].Value {
				b.ops = append(b.ops, &UpdateAttr{
					Node: o.ID(),
					Name: oa[i].Name,
					Old:  Val(oa[i].Value),
					New:  Val(na[j].Value),
				})
			}
			i++
			j++
		}
	}
}

// deletes removes the unpaired old nodes under paired parents, deepest
// first. Their remaining descendants go with them.
func (b *builder) deletes() {
	var dels []*dom.Node
	for o := range b.from.All() {
		if _, ok := b.corr.Forward(o.ID()); ok {
			continue
		}
		if _, ok := b.corr.Forward(o.Parent()); !ok {
			continue
		}
		dels = append(dels, o)
	}
	slices.SortStableFunc(dels, func(a, c *dom.Node) int {
		return cmp.Compare(c.Depth(), a.Depth())
	})
	for _, o := range dels {
		b.ops = append(b.ops, &Delete{Node: o.ID()})
	}
}
