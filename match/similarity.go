package match

import (
	"cmp"
	"slices"
	"strings"

	"github.com/signadot/xmlrev/dom"
)

type candidate struct {
	o, n  *dom.Node
	score float64
}

// similar pairs compatible nodes whose similarity exceeds the threshold,
// best first.
func (s *state) similar(from, to []*dom.Node) {
	var cands []candidate
	for _, n := range to {
		for _, o := range from {
			if !dom.Compatible(o, n) {
				continue
			}
			score := Dice(s.bag(s.from, o), s.bag(s.to, n))
			if score > s.m.threshold {
				cands = append(cands, candidate{o: o, n: n, score: score})
			}
		}
	}
	slices.SortFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.n.Order(), b.n.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.o.Order(), b.o.Order())
	})
	for _, c := range cands {
		if s.pairedFrom(c.o) || s.pairedTo(c.n) {
			continue
		}
		s.pair(c.o, c.n, Similar)
	}
}

func (s *state) bag(snap *dom.Snapshot, n *dom.Node) map[string]int {
	if b, ok := s.tokens[n]; ok {
		return b
	}
	b := Tokens(snap, n.ID())
	s.tokens[n] = b
	return b
}

// Tokens returns the token multiset of the subtree of snap rooted at id:
// one token per element name, per attribute name and value, and per word
// of text.
func Tokens(snap *dom.Snapshot, id dom.ID) map[string]int {
	res := map[string]int{}
	for n := range snap.Subtree(id) {
		switch n.Kind() {
		case dom.ElementKind:
			res["<"+n.Name().String()]++
			for _, a := range n.Attrs() {
				res["@"+a.Name.String()+"="+a.Value]++
			}
		case dom.TextKind:
			for _, w := range strings.Fields(n.Value()) {
				res["#"+w]++
			}
		}
	}
	return res
}

// Dice returns the Dice coefficient of two multisets. Two empty sets are
// equal.
func Dice(a, b map[string]int) float64 {
	na, nb, common := 0, 0, 0
	for k, v := range a {
		na += v
		common += min(v, b[k])
	}
	for _, v := range b {
		nb += v
	}
	if na+nb == 0 {
		return 1
	}
	return 2 * float64(common) / float64(na+nb)
}
