package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
)

const diffPrefix = "xr"

type xattr struct {
	name, value string
}

// EncodeDiff writes the canonical form of d with the given metadata. The
// metadata of d itself is not used.
func EncodeDiff(d *libdiff.Document, meta libdiff.Metadata, w io.Writer) error {
	x := &xmlWriter{}
	x.raw("<" + diffPrefix + ":diff xmlns:" + diffPrefix + `="` + libdiff.Namespace + `">` + "\n")
	x.start(1, "properties")
	x.leaf(2, "document", meta.Document)
	x.leaf(2, "revision", meta.Revision)
	x.leaf(2, "date", meta.Timestamp)
	x.leaf(2, "user", meta.Principal)
	x.end(1, "properties")
	if d != nil {
		for i, op := range d.Ops {
			if err := encodeOp(x, op); err != nil {
				return &SerializationError{Err: fmt.Errorf("operation %d: %w", i, err)}
			}
		}
	}
	x.raw("</" + diffPrefix + ":diff>\n")
	return x.flush(w)
}

func MarshalDiff(d *libdiff.Document, meta libdiff.Metadata) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := EncodeDiff(d, meta, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeOp(x *xmlWriter, op libdiff.Op) error {
	name := op.Kind().String()
	switch o := op.(type) {
	case *libdiff.Insert:
		if o.Subtree == nil {
			return fmt.Errorf("insert into %s without subtree", o.Parent)
		}
		x.start(1, name, xattr{"parent", string(o.Parent)}, xattr{"position", strconv.Itoa(o.Position)})
		encodeSubtree(x, o.Subtree, o.Subtree.Root(), 2)
		x.end(1, name)
	case *libdiff.Delete:
		x.empty(1, name, xattr{"node", string(o.Node)})
	case *libdiff.UpdateAttr:
		attrs := append([]xattr{{"node", string(o.Node)}}, qnameAttrs(o.Name)...)
		x.start(1, name, attrs...)
		if o.Old != nil {
			x.leaf(2, "old", *o.Old)
		}
		if o.New != nil {
			x.leaf(2, "new", *o.New)
		}
		x.end(1, name)
	case *libdiff.UpdateText:
		x.start(1, name, xattr{"node", string(o.Node)})
		x.leaf(2, "old", o.Old)
		x.leaf(2, "new", o.New)
		x.end(1, name)
	case *libdiff.Move:
		x.empty(1, name,
			xattr{"node", string(o.Node)},
			xattr{"from", string(o.From)},
			xattr{"to", string(o.To)},
			xattr{"position", strconv.Itoa(o.Position)})
	default:
		return fmt.Errorf("%w %T", libdiff.ErrUnknownOp, op)
	}
	return nil
}

func qnameAttrs(q dom.QName) []xattr {
	if q.Space == "" {
		return []xattr{{"local", q.Local}}
	}
	return []xattr{{"ns", q.Space}, {"local", q.Local}}
}

func encodeSubtree(x *xmlWriter, snap *dom.Snapshot, n *dom.Node, depth int) {
	if n.Kind() == dom.TextKind {
		x.leaf(depth, "text", n.Value(), xattr{"id", string(n.ID())})
		return
	}
	attrs := append([]xattr{{"id", string(n.ID())}}, qnameAttrs(n.Name())...)
	kids := snap.Children(n.ID())
	if n.NumAttrs() == 0 && len(kids) == 0 {
		x.empty(depth, "element", attrs...)
		return
	}
	x.start(depth, "element", attrs...)
	for _, a := range n.Attrs() {
		x.leaf(depth+1, "attribute", a.Value, qnameAttrs(a.Name)...)
	}
	for _, c := range kids {
		encodeSubtree(x, snap, c, depth+1)
	}
	x.end(depth, "element")
}

func (x *xmlWriter) tag(depth int, name string, attrs []xattr) {
	x.indent(2 * depth)
	x.raw("<" + diffPrefix + ":" + name)
	for _, a := range attrs {
		x.raw(" " + a.name + `="`)
		x.escape(a.value)
		x.raw(`"`)
	}
}

func (x *xmlWriter) start(depth int, name string, attrs ...xattr) {
	x.tag(depth, name, attrs)
	x.raw(">\n")
}

func (x *xmlWriter) empty(depth int, name string, attrs ...xattr) {
	x.tag(depth, name, attrs)
	x.raw("/>\n")
}

func (x *xmlWriter) end(depth int, name string) {
	x.indent(2 * depth)
	x.raw("</" + diffPrefix + ":" + name + ">\n")
}

func (x *xmlWriter) leaf(depth int, name, value string, attrs ...xattr) {
	x.tag(depth, name, attrs)
	x.raw(">")
	x.escape(value)
	x.raw("</" + diffPrefix + ":" + name + ">\n")
}
