package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/parse"

	"github.com/google/go-cmp/cmp"
)

func sampleDoc(t *testing.T) *libdiff.Document {
	t.Helper()
	b := dom.NewBuilder()
	if err := b.Element("", "n1.1", dom.NameNS("urn:q", "b"), dom.Attr{Name: dom.Name("x"), Value: "1&2"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Text("n1.1", "n1.1.1", "a<b"); err != nil {
		t.Fatal(err)
	}
	sub, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	return &libdiff.Document{Ops: []libdiff.Op{
		&libdiff.Insert{Parent: "1", Position: 0, Subtree: sub},
		&libdiff.Delete{Node: "1.2"},
		&libdiff.UpdateAttr{Node: "1", Name: dom.Name("x"), Old: libdiff.Val("1")},
		&libdiff.UpdateText{Node: "1.3.1", Old: "a\tb", New: ""},
		&libdiff.Move{Node: "1.4", From: "1", To: "1.1", Position: 2},
	}}
}

var sampleMeta = libdiff.Metadata{Document: "/d.xml", Timestamp: "t", Principal: "u"}

const sampleOut = `<xr:diff xmlns:xr="urn:xmlrev:diff">
  <xr:properties>
    <xr:document>/d.xml</xr:document>
    <xr:revision></xr:revision>
    <xr:date>t</xr:date>
    <xr:user>u</xr:user>
  </xr:properties>
  <xr:insert parent="1" position="0">
    <xr:element id="n1.1" ns="urn:q" local="b">
      <xr:attribute local="x">1&amp;2</xr:attribute>
      <xr:text id="n1.1.1">a&lt;b</xr:text>
    </xr:element>
  </xr:insert>
  <xr:delete node="1.2"/>
  <xr:update-attribute node="1" local="x">
    <xr:old>1</xr:old>
  </xr:update-attribute>
  <xr:update-text node="1.3.1">
    <xr:old>a&#x9;b</xr:old>
    <xr:new></xr:new>
  </xr:update-text>
  <xr:move node="1.4" from="1" to="1.1" position="2"/>
</xr:diff>
`

func TestEncodeDiff(t *testing.T) {
	doc := sampleDoc(t)
	out, err := MarshalDiff(doc, sampleMeta)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleOut, string(out)); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	again, err := MarshalDiff(doc, sampleMeta)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Errorf("output differs between calls")
	}

	back, err := parse.ParseDiff(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleMeta, back.Meta); diff != "" {
		t.Errorf("meta (-want +got):\n%s", diff)
	}
	if len(back.Ops) != len(doc.Ops) {
		t.Fatalf("read %d ops", len(back.Ops))
	}
	for i := range doc.Ops {
		if want, got := doc.Ops[i].String(), back.Ops[i].String(); want != got {
			t.Errorf("op %d: want %s got %s", i, want, got)
		}
	}
	ins := back.Ops[0].(*libdiff.Insert)
	if !dom.Equal(doc.Ops[0].(*libdiff.Insert).Subtree, ins.Subtree) {
		t.Errorf("inserted subtree differs:\n%s", ins.Subtree)
	}
}

func TestEncodeDiffInvalid(t *testing.T) {
	for _, v := range []string{"\x00", "a\xffb", "\uFFFE"} {
		doc := &libdiff.Document{Ops: []libdiff.Op{
			&libdiff.Delete{Node: "1.1"},
			&libdiff.UpdateText{Node: "1.2", Old: "x", New: v},
		}}
		var buf bytes.Buffer
		err := EncodeDiff(doc, libdiff.Metadata{}, &buf)
		var se *SerializationError
		if !errors.As(err, &se) || !errors.Is(err, ErrSerialization) {
			t.Errorf("%q: got %v", v, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%q: partial output %q", v, buf.String())
		}
	}
	if _, err := MarshalDiff(nil, libdiff.Metadata{Principal: "\x01"}); !errors.Is(err, ErrInvalidChar) {
		t.Errorf("metadata: got %v", err)
	}
}

type failWriter struct{}

var errWrite = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestEncodeDiffWriteError(t *testing.T) {
	err := EncodeDiff(sampleDoc(t), sampleMeta, failWriter{})
	if !errors.Is(err, ErrSerialization) || !errors.Is(err, errWrite) {
		t.Errorf("got %v", err)
	}
}

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		in, want string
		opts     []EncodeOption
	}{
		{
			in: `<a xmlns="urn:x" xmlns:p="urn:p" p:k="v"><b>t&amp;</b><c/></a>`,
			want: `<a xmlns="urn:x" xmlns:ns1="urn:p" ns1:k="v">
  <b>t&amp;</b>
  <c/>
</a>`,
		},
		{
			in:   `<a x="1"><b>hi</b>tail</a>`,
			want: `<a x="1"><b>hi</b>tail</a>`,
		},
		{
			in:   `<a><b/><c xml:lang="en">x</c></a>`,
			want: `<a><b/><c xml:lang="en">x</c></a>`,
			opts: []EncodeOption{Indent(0)},
		},
	} {
		s, err := parse.Parse([]byte(tc.in))
		if err != nil {
			t.Fatal(err)
		}
		got := MustString(s, tc.opts...)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.in, diff)
		}
		back, err := parse.Parse([]byte(got))
		if err != nil {
			t.Fatal(err)
		}
		if !dom.Equal(s, back) {
			t.Errorf("%s: does not parse back", tc.in)
		}
	}
}

func TestEncodeReport(t *testing.T) {
	base, err := parse.Parse([]byte(`<a><b>1</b></a>`))
	if err != nil {
		t.Fatal(err)
	}
	doc := &libdiff.Document{Ops: []libdiff.Op{
		&libdiff.UpdateText{Node: "1.1.1", Old: "1", New: "2"},
		&libdiff.Delete{Node: "1.1"},
	}}
	var sb strings.Builder
	if err := EncodeReport(doc, base, &sb); err != nil {
		t.Fatal(err)
	}
	want := `~ update-text "1"#1.1.1 "1" -> "2"
- delete <b#1.1>
1 delete, 1 update-text
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}

	sb.Reset()
	if err := EncodeReport(&libdiff.Document{}, base, &sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "no changes\n" {
		t.Errorf("empty report %q", sb.String())
	}
}
