package xmlrev

import (
	"fmt"
	"slices"

	"github.com/signadot/xmlrev/debug"
	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
)

// Apply replays d on a copy of base and returns the resulting snapshot.
// Operations are checked against the tree as replayed so far; the first
// one whose preconditions fail aborts with a *PatchConflictError and base
// is left as it was.
func Apply(base *dom.Snapshot, d *libdiff.Document) (*dom.Snapshot, error) {
	if base == nil {
		return nil, ErrNilSnapshot
	}
	t := newTree(base)
	if d != nil {
		for i, op := range d.Ops {
			if debug.Patch() {
				debug.Logf("patch: %d %s\n", i, op)
			}
			if err := t.apply(op); err != nil {
				return nil, &PatchConflictError{Index: i, Op: op, Err: err}
			}
			if debug.Patches() {
				if snap, err := t.snapshot(); err == nil {
					debug.Logf("patch: after %d\n%s\n", i, snap)
				}
			}
		}
	}
	return t.snapshot()
}

type wnode struct {
	id     dom.ID
	kind   dom.Kind
	name   dom.QName
	value  string
	attrs  []dom.Attr
	kids   []*wnode
	parent *wnode
}

// tree is the mutable working copy a diff is replayed on.
type tree struct {
	root *wnode
	ids  map[dom.ID]*wnode
}

func newTree(base *dom.Snapshot) *tree {
	t := &tree{ids: make(map[dom.ID]*wnode, base.Len())}
	for n := range base.All() {
		w := &wnode{
			id:    n.ID(),
			kind:  n.Kind(),
			name:  n.Name(),
			value: n.Value(),
			attrs: n.Attrs(),
		}
		t.ids[w.id] = w
		if p := t.ids[n.Parent()]; p != nil {
			w.parent = p
			p.kids = append(p.kids, w)
		} else {
			t.root = w
		}
	}
	return t
}

func (t *tree) node(id dom.ID) (*wnode, error) {
	w := t.ids[id]
	if w == nil {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return w, nil
}

func (t *tree) element(id dom.ID) (*wnode, error) {
	w, err := t.node(id)
	if err != nil {
		return nil, err
	}
	if w.kind != dom.ElementKind {
		return nil, fmt.Errorf("%w: %q is %s, not an element", ErrKind, id, w.kind)
	}
	return w, nil
}

func (t *tree) apply(op libdiff.Op) error {
	switch o := op.(type) {
	case *libdiff.Insert:
		return t.insert(o)
	case *libdiff.Delete:
		return t.delete(o)
	case *libdiff.UpdateAttr:
		return t.updateAttr(o)
	case *libdiff.UpdateText:
		return t.updateText(o)
	case *libdiff.Move:
		return t.move(o)
	}
	return fmt.Errorf("%w %T", libdiff.ErrUnknownOp, op)
}

func (t *tree) insert(o *libdiff.Insert) error {
	p, err := t.element(o.Parent)
	if err != nil {
		return err
	}
	if o.Position < 0 || o.Position > len(p.kids) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPosition, o.Position, len(p.kids))
	}
	if o.Subtree == nil {
		return fmt.Errorf("%w: insert without subtree", ErrKind)
	}
	for n := range o.Subtree.All() {
		if _, ok := t.ids[n.ID()]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, n.ID())
		}
	}
	added := map[dom.ID]*wnode{}
	var top *wnode
	for n := range o.Subtree.All() {
		w := &wnode{
			id:    n.ID(),
			kind:  n.Kind(),
			name:  n.Name(),
			value: n.Value(),
			attrs: n.Attrs(),
		}
		if wp := added[n.Parent()]; wp != nil {
			w.parent = wp
			wp.kids = append(wp.kids, w)
		} else {
			top = w
		}
		added[w.id] = w
	}
	for id, w := range added {
		t.ids[id] = w
	}
	top.parent = p
	p.kids = slices.Insert(p.kids, o.Position, top)
	return nil
}

func (t *tree) detach(w *wnode) {
	p := w.parent
	i := slices.Index(p.kids, w)
	p.kids = slices.Delete(p.kids, i, i+1)
	w.parent = nil
}

func (t *tree) delete(o *libdiff.Delete) error {
	w, err := t.node(o.Node)
	if err != nil {
		return err
	}
	if w == t.root {
		return fmt.Errorf("%w: cannot delete %q", ErrRoot, o.Node)
	}
	t.detach(w)
	t.forget(w)
	return nil
}

func (t *tree) forget(w *wnode) {
	delete(t.ids, w.id)
	for _, k := range w.kids {
		t.forget(k)
	}
}

func (t *tree) updateAttr(o *libdiff.UpdateAttr) error {
	w, err := t.element(o.Node)
	if err != nil {
		return err
	}
	i, found := slices.BinarySearchFunc(w.attrs, o.Name, func(a dom.Attr, q dom.QName) int {
		return a.Name.Compare(q)
	})
	switch {
	case o.Old == nil && found:
		return fmt.Errorf("%w: %q @%s is %q, expected absent", ErrValueMismatch, o.Node, o.Name, w.attrs[i].Value)
	case o.Old != nil && !found:
		return fmt.Errorf("%w: %q @%s is absent, expected %q", ErrValueMismatch, o.Node, o.Name, *o.Old)
	case o.Old != nil && w.attrs[i].Value != *o.Old:
		return fmt.Errorf("%w: %q @%s is %q, expected %q", ErrValueMismatch, o.Node, o.Name, w.attrs[i].Value, *o.Old)
	}
	switch {
	case o.New == nil && found:
		w.attrs = slices.Delete(w.attrs, i, i+1)
	case o.New != nil && found:
		w.attrs[i].Value = *o.New
	case o.New != nil:
		w.attrs = slices.Insert(w.attrs, i, dom.Attr{Name: o.Name, Value: *o.New})
	}
	return nil
}

func (t *tree) updateText(o *libdiff.UpdateText) error {
	w, err := t.node(o.Node)
	if err != nil {
		return err
	}
	if w.kind != dom.TextKind {
		return fmt.Errorf("%w: %q is %s, not text", ErrKind, o.Node, w.kind)
	}
	if w.value != o.Old {
		return fmt.Errorf("%w: %q is %q, expected %q", ErrValueMismatch, o.Node, w.value, o.Old)
	}
	w.value = o.New
	return nil
}

func (t *tree) move(o *libdiff.Move) error {
	w, err := t.node(o.Node)
	if err != nil {
		return err
	}
	if w == t.root {
		return fmt.Errorf("%w: cannot move %q", ErrRoot, o.Node)
	}
	if w.parent.id != o.From {
		return fmt.Errorf("%w: %q is under %q, not %q", ErrParentMismatch, o.Node, w.parent.id, o.From)
	}
	to, err := t.element(o.To)
	if err != nil {
		return err
	}
	for a := to; a != nil; a = a.parent {
		if a == w {
			return fmt.Errorf("%w: %q into %q", ErrCycle, o.Node, o.To)
		}
	}
	t.detach(w)
	if o.Position < 0 || o.Position > len(to.kids) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPosition, o.Position, len(to.kids))
	}
	w.parent = to
	to.kids = slices.Insert(to.kids, o.Position, w)
	return nil
}

func (t *tree) snapshot() (*dom.Snapshot, error) {
	b := dom.NewBuilder()
	if err := t.build(b, "", t.root); err != nil {
		return nil, err
	}
	return b.Snapshot()
}

func (t *tree) build(b *dom.Builder, parent dom.ID, w *wnode) error {
	if w.kind == dom.TextKind {
		return b.Text(parent, w.id, w.value)
	}
	if err := b.Element(parent, w.id, w.name, w.attrs...); err != nil {
		return err
	}
	for _, k := range w.kids {
		if err := t.build(b, w.id, k); err != nil {
			return err
		}
	}
	return nil
}
