package encode

import (
	"io"
	"strconv"

	"github.com/signadot/xmlrev/dom"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

type EncState struct {
	indent int
	decl   bool

	prefixes map[string]string
	nsOrder  []string
	deflt    string

	Color func(ColorAttr, string) string
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

// Encode writes snap as an XML document. Namespace declarations are
// generated on the root element.
func Encode(snap *dom.Snapshot, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	x := &xmlWriter{}
	if es.decl {
		x.raw(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}
	es.namespaces(snap)
	encodeNode(x, es, snap, snap.Root(), 0)
	x.raw("\n")
	return x.flush(w)
}

// namespaces assigns prefixes in order of first use. When every element is
// in some namespace, the namespace of the root becomes the default and
// needs a prefix only for attributes.
func (es *EncState) namespaces(snap *dom.Snapshot) {
	es.prefixes = map[string]string{}
	es.nsOrder = nil
	es.deflt = ""
	allQualified := true
	for n := range snap.All() {
		if n.IsElement() && n.Name().Space == "" {
			allQualified = false
			break
		}
	}
	if root := snap.Root(); allQualified && root.IsElement() {
		es.deflt = root.Name().Space
	}
	use := func(ns string) {
		if ns == "" || ns == xmlNamespace {
			return
		}
		if _, ok := es.prefixes[ns]; ok {
			return
		}
		es.prefixes[ns] = ""
		es.nsOrder = append(es.nsOrder, ns)
	}
	for n := range snap.All() {
		if !n.IsElement() {
			continue
		}
		if n.Name().Space != es.deflt {
			use(n.Name().Space)
		}
		for _, a := range n.Attrs() {
			use(a.Name.Space)
		}
	}
	for i, ns := range es.nsOrder {
		es.prefixes[ns] = "ns" + strconv.Itoa(i+1)
	}
}

func (es *EncState) elementName(q dom.QName) string {
	if q.Space == "" || q.Space == es.deflt {
		return q.Local
	}
	return es.prefixed(q)
}

func (es *EncState) attrName(q dom.QName) string {
	if q.Space == "" {
		return q.Local
	}
	return es.prefixed(q)
}

func (es *EncState) prefixed(q dom.QName) string {
	if q.Space == xmlNamespace {
		return "xml:" + q.Local
	}
	return es.prefixes[q.Space] + ":" + q.Local
}

func encodeNode(x *xmlWriter, es *EncState, snap *dom.Snapshot, n *dom.Node, depth int) {
	if n.Kind() == dom.TextKind {
		if es.Color == nil {
			x.escapeLines(n.Value())
			return
		}
		sub := &xmlWriter{}
		sub.escapeLines(n.Value())
		if sub.err != nil {
			x.err = sub.err
			return
		}
		x.raw(es.color(TextColor, sub.buf.String()))
		return
	}
	name := es.elementName(n.Name())
	x.raw(es.color(SepColor, "<") + es.color(ElementColor, name))
	if n.Parent() == "" {
		if es.deflt != "" {
			encodeAttr(x, es, "xmlns", es.deflt)
		}
		for _, ns := range es.nsOrder {
			encodeAttr(x, es, "xmlns:"+es.prefixes[ns], ns)
		}
	}
	for _, a := range n.Attrs() {
		encodeAttr(x, es, es.attrName(a.Name), a.Value)
	}
	kids := snap.Children(n.ID())
	if len(kids) == 0 {
		x.raw(es.color(SepColor, "/>"))
		return
	}
	x.raw(es.color(SepColor, ">"))
	pretty := es.indent > 0
	for _, c := range kids {
		if !c.IsElement() {
			pretty = false
			break
		}
	}
	for _, c := range kids {
		if pretty {
			x.raw("\n")
			x.indent((depth + 1) * es.indent)
		}
		encodeNode(x, es, snap, c, depth+1)
	}
	if pretty {
		x.raw("\n")
		x.indent(depth * es.indent)
	}
	x.raw(es.color(SepColor, "</") + es.color(ElementColor, name) + es.color(SepColor, ">"))
}

func encodeAttr(x *xmlWriter, es *EncState, name, value string) {
	x.raw(" " + es.color(AttrNameColor, name) + es.color(SepColor, `="`))
	if es.Color == nil {
		x.escape(value)
	} else {
		sub := &xmlWriter{}
		sub.escape(value)
		if sub.err != nil {
			x.err = sub.err
			return
		}
		x.raw(es.color(AttrValueColor, sub.buf.String()))
	}
	x.raw(es.color(SepColor, `"`))
}
