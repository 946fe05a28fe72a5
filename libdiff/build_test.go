package libdiff_test

import (
	"errors"
	"testing"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/match"
	"github.com/signadot/xmlrev/parse"

	"github.com/google/go-cmp/cmp"
)

func build(t *testing.T, from, to string, opts ...match.Option) *libdiff.Document {
	t.Helper()
	a, err := parse.Parse([]byte(from))
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.Parse([]byte(to), parse.IDPrefix("n"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := match.New(opts...).Match(a, b)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := libdiff.Build(a, b, c)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func opStrings(d *libdiff.Document) []string {
	res := []string{}
	for _, op := range d.Ops {
		res = append(res, op.String())
	}
	return res
}

func TestBuild(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to string
		opts     []match.Option
		want     []string
	}{
		{
			name: "same",
			from: `<a x="1"><b>t</b></a>`,
			to:   `<a x="1"><b>t</b></a>`,
			want: []string{},
		},
		{
			name: "text",
			from: `<a><b>1</b></a>`,
			to:   `<a><b>2</b></a>`,
			opts: []match.Option{match.Gaps(true)},
			want: []string{`update-text 1.1.1 "1" -> "2"`},
		},
		{
			name: "text below threshold",
			from: `<a><b>1</b></a>`,
			to:   `<a><b>2</b></a>`,
			want: []string{`insert <b#n1.1>+1 into 1 at 0`, `delete 1.1`},
		},
		{
			name: "delete",
			from: `<a><b/></a>`,
			to:   `<a/>`,
			want: []string{`delete 1.1`},
		},
		{
			name: "insert",
			from: `<a/>`,
			to:   `<a><b/></a>`,
			want: []string{`insert <b#n1.1> into 1 at 0`},
		},
		{
			name: "attribute",
			from: `<a x="1"/>`,
			to:   `<a x="2"/>`,
			want: []string{`update-attribute 1 @x "1" -> "2"`},
		},
		{
			name: "attributes in name order",
			from: `<a z="1" x="1" y="1"/>`,
			to:   `<a w="0" x="2" y="1"/>`,
			want: []string{
				`update-attribute 1 @w (absent) -> "0"`,
				`update-attribute 1 @x "1" -> "2"`,
				`update-attribute 1 @z "1" -> (absent)`,
			},
		},
		{
			name: "insert after predecessor",
			from: `<a><b/><d/></a>`,
			to:   `<a><b/><c>new</c><d/></a>`,
			want: []string{`insert <c#n1.2>+1 into 1 at 1`},
		},
		{
			name: "deletes deepest first",
			from: `<r><a><b/></a><c/><d/></r>`,
			to:   `<r><a/></r>`,
			want: []string{`delete 1.1.1`, `delete 1.2`, `delete 1.3`},
		},
		{
			name: "move into inserted element",
			from: `<r><x>keep</x></r>`,
			to:   `<r><w><x>keep</x></w></r>`,
			want: []string{
				`insert <w#n1.1> into 1 at 0`,
				`move 1.1 from 1 to n1.1 at 0`,
			},
		},
		{
			name: "deep change is local",
			from: `<r><s><t><u>a</u><u>b</u></t></s><s/><s/></r>`,
			to:   `<r><s><t><u>a</u><u>c</u></t></s><s/><s/></r>`,
			opts: []match.Option{match.Gaps(true)},
			want: []string{`update-text 1.1.1.2.1 "b" -> "c"`},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := build(t, tc.from, tc.to, tc.opts...)
			if diff := cmp.Diff(tc.want, opStrings(doc)); diff != "" {
				t.Errorf("ops (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildSwapIsOneMove(t *testing.T) {
	doc := build(t, `<a><b/><c/></a>`, `<a><c/><b/></a>`)
	if len(doc.Ops) != 1 {
		t.Fatalf("ops %v", opStrings(doc))
	}
	mv, ok := doc.Ops[0].(*libdiff.Move)
	if !ok {
		t.Fatalf("not a move: %s", doc.Ops[0])
	}
	switch mv.Node {
	case "1.1":
		if mv.Position != 1 {
			t.Errorf("b goes after c: %s", mv)
		}
	case "1.2":
		if mv.Position != 0 {
			t.Errorf("c goes before b: %s", mv)
		}
	default:
		t.Errorf("unexpected move %s", mv)
	}
	if mv.From != "1" || mv.To != "1" {
		t.Errorf("parents %s", mv)
	}
}

type pairs map[dom.ID]dom.ID

func (p pairs) Forward(id dom.ID) (dom.ID, bool) {
	v, ok := p[id]
	return v, ok
}

func (p pairs) Reverse(id dom.ID) (dom.ID, bool) {
	for k, v := range p {
		if v == id {
			return k, true
		}
	}
	return "", false
}

func (p pairs) Relocated(dom.ID) bool { return false }

func snapshot(t *testing.T, child dom.QName) *dom.Snapshot {
	t.Helper()
	b := dom.NewBuilder()
	if err := b.Element("", "1", dom.Name("a")); err != nil {
		t.Fatal(err)
	}
	if err := b.Element("1", "2", child); err != nil {
		t.Fatal(err)
	}
	s, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildRenamesCollidingIDs(t *testing.T) {
	from := snapshot(t, dom.Name("b"))
	to := snapshot(t, dom.Name("c"))
	doc, err := libdiff.Build(from, to, pairs{"1": "1"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{`insert <c#2'> into 1 at 0`, `delete 2`}
	if diff := cmp.Diff(want, opStrings(doc)); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	from := snapshot(t, dom.Name("b"))
	to := snapshot(t, dom.Name("c"))
	if _, err := libdiff.Build(from, to, pairs{}); !errors.Is(err, libdiff.ErrUnpairedRoot) {
		t.Errorf("unpaired root: %v", err)
	}
	if _, err := libdiff.Build(from, to, pairs{"1": "1", "2": "2"}); !errors.Is(err, libdiff.ErrIncompatiblePair) {
		t.Errorf("incompatible pair: %v", err)
	}
}
