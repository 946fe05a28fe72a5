package match

import (
	"errors"
	"testing"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/parse"

	"github.com/google/go-cmp/cmp"
)

func snaps(t *testing.T, from, to string) (*dom.Snapshot, *dom.Snapshot) {
	t.Helper()
	a, err := parse.Parse([]byte(from))
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.Parse([]byte(to), parse.IDPrefix("n"))
	if err != nil {
		t.Fatal(err)
	}
	return a, b
}

func mustMatch(t *testing.T, from, to string, opts ...Option) *Correspondence {
	t.Helper()
	a, b := snaps(t, from, to)
	c, err := New(opts...).Match(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

type pair struct {
	To    dom.ID
	Conf  Confidence
	Moved bool
}

func pairs(c *Correspondence, ids ...dom.ID) map[dom.ID]pair {
	res := map[dom.ID]pair{}
	for _, id := range ids {
		to, ok := c.Forward(id)
		if !ok {
			continue
		}
		res[id] = pair{To: to, Conf: c.Confidence(id), Moved: c.Relocated(id)}
	}
	return res
}

func TestMatchIdentity(t *testing.T) {
	s, err := parse.Parse([]byte(`<a x="1"><b>t</b><c/></a>`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := New().Match(s, s)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != s.Len() || c.Count(Identity) != s.Len() {
		t.Errorf("len %d identity %d, want %d", c.Len(), c.Count(Identity), s.Len())
	}
	for n := range s.All() {
		if c.Relocated(n.ID()) {
			t.Errorf("%s relocated", n)
		}
		if id, _ := c.Reverse(n.ID()); id != n.ID() {
			t.Errorf("reverse %s = %q", n, id)
		}
	}
}

func TestMatchIncompatibleRoot(t *testing.T) {
	a, b := snaps(t, `<a/>`, `<b/>`)
	_, err := New().Match(a, b)
	var ire *IncompatibleRootError
	if !errors.As(err, &ire) || !errors.Is(err, ErrIncompatibleRoot) {
		t.Fatalf("got %v", err)
	}
	if ire.From.ID() != "1" || ire.To.ID() != "n1" {
		t.Errorf("roots %s %s", ire.From, ire.To)
	}
}

func TestMatchAlign(t *testing.T) {
	c := mustMatch(t,
		`<a><x>1</x><y>2</y><z>3</z></a>`,
		`<a><w/><x>1</x><z>3</z></a>`)
	want := map[dom.ID]pair{
		"1":     {To: "n1", Conf: Structural},
		"1.1":   {To: "n1.2", Conf: Structural},
		"1.1.1": {To: "n1.2.1", Conf: Structural},
		"1.3":   {To: "n1.3", Conf: Structural},
		"1.3.1": {To: "n1.3.1", Conf: Structural},
	}
	got := pairs(c, "1", "1.1", "1.1.1", "1.2", "1.2.1", "1.3", "1.3.1")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairs (-want +got):\n%s", diff)
	}
	if _, ok := c.Reverse("n1.1"); ok {
		t.Errorf("w paired")
	}
}

func TestMatchSimilar(t *testing.T) {
	from := `<a><p k="1">the quick brown fox</p><q>zzz</q></a>`
	to := `<a><q>yyy</q><p k="1">the quick brown dog</p></a>`
	c := mustMatch(t, from, to)
	want := map[dom.ID]pair{
		"1":     {To: "n1", Conf: Structural},
		"1.1":   {To: "n1.2", Conf: Similar},
		"1.1.1": {To: "n1.2.1", Conf: Similar},
	}
	got := pairs(c, "1", "1.1", "1.1.1", "1.2", "1.2.1")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairs (-want +got):\n%s", diff)
	}

	// above the similarity of p nothing below the root is paired
	c = mustMatch(t, from, to, Threshold(0.9))
	want = map[dom.ID]pair{
		"1": {To: "n1", Conf: Structural},
	}
	got = pairs(c, "1", "1.1", "1.1.1", "1.2", "1.2.1")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairs at 0.9 (-want +got):\n%s", diff)
	}

	// unless the gaps are paired in order
	c = mustMatch(t, from, to, Threshold(0.9), Gaps(true))
	want = map[dom.ID]pair{
		"1":     {To: "n1", Conf: Structural},
		"1.2":   {To: "n1.1", Conf: Similar},
		"1.2.1": {To: "n1.1.1", Conf: Similar},
	}
	got = pairs(c, "1", "1.1", "1.1.1", "1.2", "1.2.1")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pairs at 0.9 with gaps (-want +got):\n%s", diff)
	}
}

func TestMatchGaps(t *testing.T) {
	from, to := `<a><b>1</b></a>`, `<a><b>2</b></a>`
	root := map[dom.ID]pair{"1": {To: "n1", Conf: Structural}}
	c := mustMatch(t, from, to)
	if diff := cmp.Diff(root, pairs(c, "1", "1.1", "1.1.1")); diff != "" {
		t.Errorf("pairs (-want +got):\n%s", diff)
	}

	want := map[dom.ID]pair{
		"1":     {To: "n1", Conf: Structural},
		"1.1":   {To: "n1.1", Conf: Similar},
		"1.1.1": {To: "n1.1.1", Conf: Similar},
	}
	for _, th := range []float64{DefaultThreshold, 1} {
		c = mustMatch(t, from, to, Gaps(true), Threshold(th))
		if diff := cmp.Diff(want, pairs(c, "1", "1.1", "1.1.1")); diff != "" {
			t.Errorf("pairs with gaps at %v (-want +got):\n%s", th, diff)
		}
	}

	// b is similar enough, its text is not
	c = mustMatch(t, from, to, Threshold(0.4))
	want = map[dom.ID]pair{
		"1":   {To: "n1", Conf: Structural},
		"1.1": {To: "n1.1", Conf: Similar},
	}
	if diff := cmp.Diff(want, pairs(c, "1", "1.1", "1.1.1")); diff != "" {
		t.Errorf("pairs at 0.4 (-want +got):\n%s", diff)
	}
}

func TestThreshold(t *testing.T) {
	for _, tc := range []struct {
		opts []Option
		want float64
	}{
		{nil, DefaultThreshold},
		{[]Option{Threshold(0.8)}, 0.8},
		{[]Option{Threshold(2)}, 1},
		{[]Option{Threshold(-1)}, 0},
	} {
		if got := New(tc.opts...).Threshold(); got != tc.want {
			t.Errorf("threshold %v, want %v", got, tc.want)
		}
	}
}

func TestMatchReorder(t *testing.T) {
	c := mustMatch(t, `<a><b/><c/></a>`, `<a><c/><b/></a>`)
	if c.Len() != 3 {
		t.Fatalf("len %d", c.Len())
	}
	moved := 0
	for _, id := range []dom.ID{"1.1", "1.2"} {
		if c.Relocated(id) {
			moved++
		}
	}
	if moved != 1 {
		t.Errorf("%d relocated, want 1", moved)
	}
}

func TestMatchUniqueSubtree(t *testing.T) {
	from := `<r><p><x><y>deep</y></x></p><q/></r>`
	to := `<r><p/><q><x><y>deep</y></x></q></r>`
	c := mustMatch(t, from, to)
	want := map[dom.ID]pair{
		"1.1.1":     {To: "n1.2.1", Conf: Structural, Moved: true},
		"1.1.1.1":   {To: "n1.2.1.1", Conf: Structural},
		"1.1.1.1.1": {To: "n1.2.1.1.1", Conf: Structural},
	}
	if diff := cmp.Diff(want, pairs(c, "1.1.1", "1.1.1.1", "1.1.1.1.1")); diff != "" {
		t.Errorf("pairs (-want +got):\n%s", diff)
	}

	c = mustMatch(t, from, to, UniqueSubtrees(false))
	if _, ok := c.Forward("1.1.1"); ok {
		t.Errorf("x paired without unique subtree matching")
	}
}

func TestMatchIdentityAcrossParents(t *testing.T) {
	a, err := parse.Parse([]byte(`<r><p><x id="k">v</x></p><q/></r>`), parse.IDAttr(dom.Name("id")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.Parse([]byte(`<r><p/><q><x id="k">w</x></q></r>`), parse.IDAttr(dom.Name("id")), parse.IDPrefix("n"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := New().Match(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := map[dom.ID]pair{
		"k":   {To: "k", Conf: Identity, Moved: true},
		"k.1": {To: "k.1", Conf: Identity},
	}
	if diff := cmp.Diff(want, pairs(c, "k", "k.1")); diff != "" {
		t.Errorf("pairs (-want +got):\n%s", diff)
	}
}

func TestIncreasing(t *testing.T) {
	for _, tc := range []struct {
		seq  []int
		want []bool
	}{
		{nil, []bool{}},
		{[]int{0, 1, 2}, []bool{true, true, true}},
		{[]int{2, 0, 1}, []bool{false, true, true}},
		{[]int{3, 1, 2, 0}, []bool{false, true, true, false}},
	} {
		if diff := cmp.Diff(tc.want, increasing(tc.seq)); diff != "" {
			t.Errorf("increasing(%v) (-want +got):\n%s", tc.seq, diff)
		}
	}
}

func TestDice(t *testing.T) {
	if d := Dice(map[string]int{"x": 2, "y": 1}, map[string]int{"x": 1, "z": 1}); d != 0.4 {
		t.Errorf("dice %v", d)
	}
	if d := Dice(nil, nil); d != 1 {
		t.Errorf("empty dice %v", d)
	}
}
