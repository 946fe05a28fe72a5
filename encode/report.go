package encode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// EncodeReport writes a human readable listing of d, one operation per
// line. When base is not nil, nodes of the base revision are described by
// name rather than identity.
func EncodeReport(d *libdiff.Document, base *dom.Snapshot, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	r := &reporter{es: es, base: base}
	x := &xmlWriter{}
	if d.Empty() {
		x.raw("no changes\n")
		return x.flush(w)
	}
	for _, op := range d.Ops {
		line, err := r.op(op)
		if err != nil {
			return &SerializationError{Err: err}
		}
		x.raw(line + "\n")
	}
	counts := d.Counts()
	var parts []string
	for _, k := range libdiff.OpKinds() {
		if counts[k] != 0 {
			parts = append(parts, strconv.Itoa(counts[k])+" "+k.String())
		}
	}
	x.raw(strings.Join(parts, ", ") + "\n")
	return x.flush(w)
}

type reporter struct {
	es   *EncState
	base *dom.Snapshot
}

func (r *reporter) node(id dom.ID) string {
	if r.base != nil {
		if n := r.base.Node(id); n != nil {
			return r.es.color(IDColor, n.String())
		}
	}
	return r.es.color(IDColor, string(id))
}

func (r *reporter) op(op libdiff.Op) (string, error) {
	switch o := op.(type) {
	case *libdiff.Insert:
		var sb strings.Builder
		if err := Encode(o.Subtree, &sb, Indent(0)); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s into %s at %d",
			r.es.color(InsertColor, "+ insert"),
			strings.TrimSpace(sb.String()),
			r.node(o.Parent), o.Position), nil
	case *libdiff.Delete:
		return r.es.color(DeleteColor, "- delete") + " " + r.node(o.Node), nil
	case *libdiff.UpdateAttr:
		return fmt.Sprintf("%s %s @%s %s -> %s",
			r.es.color(UpdateColor, "~ update-attribute"),
			r.node(o.Node),
			r.es.color(AttrNameColor, o.Name.String()),
			quoteOpt(o.Old), quoteOpt(o.New)), nil
	case *libdiff.UpdateText:
		return fmt.Sprintf("%s %s %s",
			r.es.color(UpdateColor, "~ update-text"),
			r.node(o.Node),
			r.textChange(o.Old, o.New)), nil
	case *libdiff.Move:
		return fmt.Sprintf("%s %s from %s to %s at %d",
			r.es.color(MoveColor, "> move"),
			r.node(o.Node), r.node(o.From), r.node(o.To), o.Position), nil
	}
	return "", fmt.Errorf("%w %T", libdiff.ErrUnknownOp, op)
}

// textChange shows a character diff when colors are enabled.
func (r *reporter) textChange(from, to string) string {
	if r.es.Color == nil {
		return strconv.Quote(from) + " -> " + strconv.Quote(to)
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, strings.Contains(from, "\n") && strings.Contains(to, "\n"))
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

func quoteOpt(v *string) string {
	if v == nil {
		return "(absent)"
	}
	return strconv.Quote(*v)
}
