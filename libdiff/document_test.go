package libdiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpKinds(t *testing.T) {
	var names []string
	for _, k := range OpKinds() {
		names = append(names, k.String())
		back, err := ParseOpKind(k.String())
		if err != nil || back != k {
			t.Errorf("ParseOpKind(%q) = %v, %v", k, back, err)
		}
	}
	want := []string{"insert", "delete", "update-attribute", "update-text", "move"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if _, err := ParseOpKind("rename"); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("rename: %v", err)
	}
	if s := OpKind(9).String(); s != "OpKind(9)" {
		t.Errorf("unknown kind %q", s)
	}
}

func TestDocumentCounts(t *testing.T) {
	var nilDoc *Document
	if !nilDoc.Empty() || len(nilDoc.Counts()) != 0 {
		t.Errorf("nil document")
	}
	d := &Document{Ops: []Op{
		&Delete{Node: "1.1"},
		&Delete{Node: "1.2"},
		&UpdateAttr{Node: "1", Old: Val("a")},
		&Move{Node: "1.3", From: "1", To: "1.4"},
	}}
	want := map[OpKind]int{DeleteOp: 2, UpdateAttrOp: 1, MoveOp: 1}
	if diff := cmp.Diff(want, d.Counts()); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
	if d.Empty() {
		t.Errorf("not empty")
	}
	if got := d.Ops[3].Target(); got != "1.3" {
		t.Errorf("target %q", got)
	}
}
