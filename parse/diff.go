package parse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
)

// ParseDiff reads a diff in the serialized form written by
// encode.EncodeDiff.
func ParseDiff(d []byte) (*libdiff.Document, error) {
	return ParseDiffReader(bytes.NewReader(d))
}

func ParseDiffReader(r io.Reader) (*libdiff.Document, error) {
	snap, err := ParseReader(r, KeepWhitespace(true))
	if err != nil {
		return nil, err
	}
	dr := &diffReader{snap: snap}
	return dr.document()
}

type diffReader struct {
	snap *dom.Snapshot
}

func (dr *diffReader) errorf(n *dom.Node, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrDiffFormat, n, fmt.Sprintf(format, args...))
}

// elements returns the element children of id, which must all be in the
// diff namespace. Text between them is indentation.
func (dr *diffReader) elements(n *dom.Node) ([]*dom.Node, error) {
	var res []*dom.Node
	for _, c := range dr.snap.Children(n.ID()) {
		if !c.IsElement() {
			if strings.TrimSpace(c.Value()) != "" {
				return nil, dr.errorf(n, "unexpected text %q", c.Value())
			}
			continue
		}
		if c.Name().Space != libdiff.Namespace {
			return nil, dr.errorf(c, "unexpected element")
		}
		res = append(res, c)
	}
	return res, nil
}

func (dr *diffReader) text(n *dom.Node) string {
	var sb strings.Builder
	for _, c := range dr.snap.Children(n.ID()) {
		sb.WriteString(c.Value())
	}
	return sb.String()
}

func (dr *diffReader) attr(n *dom.Node, name string) (string, error) {
	v, ok := n.Attr(dom.Name(name))
	if !ok {
		return "", dr.errorf(n, "missing attribute %q", name)
	}
	return v, nil
}

func (dr *diffReader) id(n *dom.Node, name string) (dom.ID, error) {
	v, err := dr.attr(n, name)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", dr.errorf(n, "empty attribute %q", name)
	}
	return dom.ID(v), nil
}

func (dr *diffReader) position(n *dom.Node) (int, error) {
	v, err := dr.attr(n, "position")
	if err != nil {
		return 0, err
	}
	pos, err := strconv.Atoi(v)
	if err != nil || pos < 0 {
		return 0, dr.errorf(n, "bad position %q", v)
	}
	return pos, nil
}

func (dr *diffReader) qname(n *dom.Node) (dom.QName, error) {
	local, err := dr.attr(n, "local")
	if err != nil {
		return dom.QName{}, err
	}
	ns, _ := n.Attr(dom.Name("ns"))
	return dom.NameNS(ns, local), nil
}

func (dr *diffReader) document() (*libdiff.Document, error) {
	root := dr.snap.Root()
	if root.Name() != dom.NameNS(libdiff.Namespace, "diff") {
		return nil, dr.errorf(root, "not a diff")
	}
	kids, err := dr.elements(root)
	if err != nil {
		return nil, err
	}
	doc := &libdiff.Document{}
	for i, c := range kids {
		if c.Name().Local == "properties" {
			if i != 0 {
				return nil, dr.errorf(c, "properties must come first")
			}
			if doc.Meta, err = dr.properties(c); err != nil {
				return nil, err
			}
			continue
		}
		kind, err := libdiff.ParseOpKind(c.Name().Local)
		if err != nil {
			return nil, dr.errorf(c, "%v", err)
		}
		op, err := dr.op(kind, c)
		if err != nil {
			return nil, err
		}
		doc.Ops = append(doc.Ops, op)
	}
	return doc, nil
}

func (dr *diffReader) properties(n *dom.Node) (libdiff.Metadata, error) {
	var meta libdiff.Metadata
	kids, err := dr.elements(n)
	if err != nil {
		return meta, err
	}
	for _, c := range kids {
		v := dr.text(c)
		switch c.Name().Local {
		case "document":
			meta.Document = v
		case "revision":
			meta.Revision = v
		case "date":
			meta.Timestamp = v
		case "user":
			meta.Principal = v
		default:
			return meta, dr.errorf(c, "unknown property")
		}
	}
	return meta, nil
}

func (dr *diffReader) op(kind libdiff.OpKind, n *dom.Node) (libdiff.Op, error) {
	switch kind {
	case libdiff.InsertOp:
		return dr.insert(n)
	case libdiff.DeleteOp:
		id, err := dr.id(n, "node")
		if err != nil {
			return nil, err
		}
		return &libdiff.Delete{Node: id}, nil
	case libdiff.UpdateAttrOp:
		return dr.updateAttr(n)
	case libdiff.UpdateTextOp:
		return dr.updateText(n)
	case libdiff.MoveOp:
		return dr.move(n)
	}
	return nil, dr.errorf(n, "%v %s", libdiff.ErrUnknownOp, kind)
}

func (dr *diffReader) insert(n *dom.Node) (libdiff.Op, error) {
	parent, err := dr.id(n, "parent")
	if err != nil {
		return nil, err
	}
	pos, err := dr.position(n)
	if err != nil {
		return nil, err
	}
	kids, err := dr.elements(n)
	if err != nil {
		return nil, err
	}
	if len(kids) != 1 {
		return nil, dr.errorf(n, "insert needs exactly one node, got %d", len(kids))
	}
	b := dom.NewBuilder()
	if err := dr.subtree(b, "", kids[0]); err != nil {
		return nil, err
	}
	sub, err := b.Snapshot()
	if err != nil {
		return nil, dr.errorf(n, "%v", err)
	}
	return &libdiff.Insert{Parent: parent, Position: pos, Subtree: sub}, nil
}

func (dr *diffReader) subtree(b *dom.Builder, parent dom.ID, n *dom.Node) error {
	id, err := dr.id(n, "id")
	if err != nil {
		return err
	}
	switch n.Name().Local {
	case "text":
		if err := b.Text(parent, id, dr.text(n)); err != nil {
			return dr.errorf(n, "%v", err)
		}
		return nil
	case "element":
	default:
		return dr.errorf(n, "expected element or text")
	}
	name, err := dr.qname(n)
	if err != nil {
		return err
	}
	kids, err := dr.elements(n)
	if err != nil {
		return err
	}
	var attrs []dom.Attr
	i := 0
	for ; i < len(kids) && kids[i].Name().Local == "attribute"; i++ {
		an, err := dr.qname(kids[i])
		if err != nil {
			return err
		}
		attrs = append(attrs, dom.Attr{Name: an, Value: dr.text(kids[i])})
	}
	if err := b.Element(parent, id, name, attrs...); err != nil {
		return dr.errorf(n, "%v", err)
	}
	for _, c := range kids[i:] {
		if err := dr.subtree(b, id, c); err != nil {
			return err
		}
	}
	return nil
}

func (dr *diffReader) updateAttr(n *dom.Node) (libdiff.Op, error) {
	id, err := dr.id(n, "node")
	if err != nil {
		return nil, err
	}
	name, err := dr.qname(n)
	if err != nil {
		return nil, err
	}
	op := &libdiff.UpdateAttr{Node: id, Name: name}
	kids, err := dr.elements(n)
	if err != nil {
		return nil, err
	}
	for _, c := range kids {
		switch c.Name().Local {
		case "old":
			op.Old = libdiff.Val(dr.text(c))
		case "new":
			op.New = libdiff.Val(dr.text(c))
		default:
			return nil, dr.errorf(c, "unexpected element")
		}
	}
	if op.Old == nil && op.New == nil {
		return nil, dr.errorf(n, "neither old nor new value")
	}
	return op, nil
}

func (dr *diffReader) updateText(n *dom.Node) (libdiff.Op, error) {
	id, err := dr.id(n, "node")
	if err != nil {
		return nil, err
	}
	op := &libdiff.UpdateText{Node: id}
	kids, err := dr.elements(n)
	if err != nil {
		return nil, err
	}
	var seen int
	for _, c := range kids {
		switch c.Name().Local {
		case "old":
			op.Old = dr.text(c)
		case "new":
			op.New = dr.text(c)
		default:
			return nil, dr.errorf(c, "unexpected element")
		}
		seen++
	}
	if seen != 2 {
		return nil, dr.errorf(n, "update-text needs old and new values")
	}
	return op, nil
}

func (dr *diffReader) move(n *dom.Node) (libdiff.Op, error) {
	op := &libdiff.Move{}
	var err error
	if op.Node, err = dr.id(n, "node"); err != nil {
		return nil, err
	}
	if op.From, err = dr.id(n, "from"); err != nil {
		return nil, err
	}
	if op.To, err = dr.id(n, "to"); err != nil {
		return nil, err
	}
	if op.Position, err = dr.position(n); err != nil {
		return nil, err
	}
	return op, nil
}
