package libdiff

import (
	"fmt"
	"strconv"

	"github.com/signadot/xmlrev/dom"
)

//go:generate go tool golang.org/x/tools/cmd/stringer -type=OpKind -linecomment
type OpKind int

const (
	InsertOp     OpKind = iota // insert
	DeleteOp                   // delete
	UpdateAttrOp               // update-attribute
	UpdateTextOp               // update-text
	MoveOp                     // move
)

// OpKinds returns all operation kinds in canonical order.
func OpKinds() []OpKind {
	return []OpKind{InsertOp, DeleteOp, UpdateAttrOp, UpdateTextOp, MoveOp}
}

// ParseOpKind returns the kind whose String is s.
func ParseOpKind(s string) (OpKind, error) {
	for _, k := range OpKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOp, s)
}

// Op is a single edit operation.
type Op interface {
	Kind() OpKind
	// Target is the node the operation is about. For an Insert it is the root
	// of the inserted subtree.
	Target() dom.ID
	String() string

	op()
}

// Insert adds Subtree as the child at Position of Parent.
type Insert struct {
	Parent   dom.ID
	Position int
	Subtree  *dom.Snapshot
}

// Delete removes Node together with its subtree.
type Delete struct {
	Node dom.ID
}

// UpdateAttr changes the attribute Name of the element Node. A nil Old means
// the attribute is added, a nil New that it is removed.
type UpdateAttr struct {
	Node dom.ID
	Name dom.QName
	Old  *string
	New  *string
}

// UpdateText changes the value of the text node Node.
type UpdateText struct {
	Node dom.ID
	Old  string
	New  string
}

// Move detaches Node, together with its subtree, from From and inserts it as
// the child at Position of To. Position counts the children of To after the
// node was detached.
type Move struct {
	Node     dom.ID
	From     dom.ID
	To       dom.ID
	Position int
}

func (*Insert) Kind() OpKind     { return InsertOp }
func (*Delete) Kind() OpKind     { return DeleteOp }
func (*UpdateAttr) Kind() OpKind { return UpdateAttrOp }
func (*UpdateText) Kind() OpKind { return UpdateTextOp }
func (*Move) Kind() OpKind       { return MoveOp }

func (o *Insert) Target() dom.ID {
	if o.Subtree == nil {
		return ""
	}
	return o.Subtree.Root().ID()
}
func (o *Delete) Target() dom.ID     { return o.Node }
func (o *UpdateAttr) Target() dom.ID { return o.Node }
func (o *UpdateText) Target() dom.ID { return o.Node }
func (o *Move) Target() dom.ID       { return o.Node }

func (*Insert) op()     {}
func (*Delete) op()     {}
func (*UpdateAttr) op() {}
func (*UpdateText) op() {}
func (*Move) op()       {}

func (o *Insert) String() string {
	what := "<nil>"
	if o.Subtree != nil {
		what = o.Subtree.Root().String()
		if n := o.Subtree.Len(); n > 1 {
			what += fmt.Sprintf("+%d", n-1)
		}
	}
	return fmt.Sprintf("insert %s into %s at %d", what, o.Parent, o.Position)
}

func (o *Delete) String() string {
	return "delete " + string(o.Node)
}

func (o *UpdateAttr) String() string {
	return fmt.Sprintf("update-attribute %s @%s %s -> %s", o.Node, o.Name, optString(o.Old), optString(o.New))
}

func (o *UpdateText) String() string {
	return fmt.Sprintf("update-text %s %q -> %q", o.Node, o.Old, o.New)
}

func (o *Move) String() string {
	return fmt.Sprintf("move %s from %s to %s at %d", o.Node, o.From, o.To, o.Position)
}

func optString(v *string) string {
	if v == nil {
		return "(absent)"
	}
	return strconv.Quote(*v)
}

// Val returns a pointer to a copy of v, for the optional values of
// [UpdateAttr].
func Val(v string) *string {
	return &v
}
