package parse

import (
	"errors"
	"testing"

	"github.com/signadot/xmlrev/dom"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type flat struct {
	ID     dom.ID
	Parent dom.ID
	Kind   dom.Kind
	Name   string
	Value  string
	Attrs  []dom.Attr
}

func flatten(s *dom.Snapshot) []flat {
	var res []flat
	for n := range s.All() {
		f := flat{ID: n.ID(), Parent: n.Parent(), Kind: n.Kind(), Value: n.Value()}
		if n.IsElement() {
			f.Name = n.Name().String()
			f.Attrs = n.Attrs()
		}
		res = append(res, f)
	}
	return res
}

func TestParsePositional(t *testing.T) {
	s, err := Parse([]byte(`<?xml version="1.0"?>
<!-- leading -->
<a x="1">
  <b>hello <!-- c -->world</b>
  <c:d xmlns:c="urn:c" c:k="v"/>
</a>`))
	if err != nil {
		t.Fatal(err)
	}
	want := []flat{
		{ID: "1", Name: "a", Attrs: []dom.Attr{{Name: dom.Name("x"), Value: "1"}}},
		{ID: "1.1", Parent: "1", Name: "b"},
		{ID: "1.1.1", Parent: "1.1", Kind: dom.TextKind, Value: "hello world"},
		{ID: "1.2", Parent: "1", Name: "{urn:c}d", Attrs: []dom.Attr{{Name: dom.NameNS("urn:c", "k"), Value: "v"}}},
	}
	if diff := cmp.Diff(want, flatten(s), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("parse (-want +got):\n%s", diff)
	}
}

func TestParseOptions(t *testing.T) {
	in := []byte("<a><b id=\"x\">t</b>\n  <b/></a>")
	s, err := Parse(in, IDAttr(dom.Name("id")), IDPrefix("n"), KeepWhitespace(true))
	if err != nil {
		t.Fatal(err)
	}
	var ids []dom.ID
	for n := range s.All() {
		ids = append(ids, n.ID())
	}
	want := []dom.ID{"n1", "x", "x.1", "n1.2", "n1.3"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if v := s.Node("n1.2").Value(); v != "\n  " {
		t.Errorf("whitespace %q", v)
	}
}

func TestParseEntities(t *testing.T) {
	s, err := Parse([]byte(`<a v="&lt;&amp;&#x41;">x&gt;y</a>`))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Root().Attr(dom.Name("v")); v != "<&A" {
		t.Errorf("attr %q", v)
	}
	if v := s.Node("1.1").Value(); v != "x>y" {
		t.Errorf("text %q", v)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"<a>",
		"<a></b>",
		"<a x='1' x='2'/>",
		`<a><b id="k"/><c id="k"/></a>`,
	} {
		_, err := Parse([]byte(in), IDAttr(dom.Name("id")))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v", in, err)
		}
	}
}
