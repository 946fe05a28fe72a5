package match

import (
	"slices"
	"unicode/utf8"

	"github.com/signadot/xmlrev/dom"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diff"
)

// align pairs the longest common subsequence of from and to, comparing
// subtree hashes. Each distinct hash is mapped to a rune so the sequences can
// be diffed as text.
func (s *state) align(from, to []*dom.Node) {
	m := map[uint64]rune{}
	fromRunes := hashRunes(m, from)
	toRunes := hashRunes(m, to)
	diffs := s.dmp.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			fi += n
		case diffpatch.DiffInsert:
			ti += n
		case diffpatch.DiffEqual:
			for range n {
				s.zip(from[fi], to[ti], Structural)
				fi++
				ti++
			}
		}
	}
}

func hashRunes(m map[uint64]rune, nodes []*dom.Node) []rune {
	rs := make([]rune, len(nodes))
	for i, n := range nodes {
		r, ok := m[n.Hash()]
		if !ok {
			r = rune(len(m))
			// skip surrogates, they do not survive conversion to string.
			if r >= 0xD800 {
				r += 0x800
			}
			m[n.Hash()] = r
		}
		rs[i] = r
	}
	return rs
}

// gaps pairs the compatible children of o and n that are left between two
// consecutive order preserving anchors, in order.
func (s *state) gaps(o, n *dom.Node) {
	fk := s.from.Children(o.ID())
	tk := s.to.Children(n.ID())
	var is, js []int
	for j, c := range tk {
		oid, ok := s.c.Reverse(c.ID())
		if !ok {
			continue
		}
		on := s.from.Node(oid)
		if on.Parent() != o.ID() {
			continue
		}
		is = append(is, on.Index())
		js = append(js, j)
	}
	pi, pj := -1, -1
	for k, keep := range increasing(is) {
		if !keep {
			continue
		}
		s.pairGap(fk[pi+1:is[k]], tk[pj+1:js[k]])
		pi, pj = is[k], js[k]
	}
	s.pairGap(fk[pi+1:], tk[pj+1:])
}

func (s *state) pairGap(from, to []*dom.Node) {
	p := 0
	for _, n := range to {
		if s.pairedTo(n) {
			continue
		}
		for q := p; q < len(from); q++ {
			o := from[q]
			if s.pairedFrom(o) || !dom.Compatible(o, n) {
				continue
			}
			s.pair(o, n, Similar)
			p = q + 1
			break
		}
	}
}

// increasing marks the elements of seq which belong to a longest increasing
// subsequence. The elements of seq must be distinct.
func increasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}
	sorted := slices.Sorted(slices.Values(seq))
	j := 0
	for _, e := range diff.Edits(sorted, seq) {
		switch e.Op {
		case diff.Match:
			keep[j] = true
			j++
		case diff.Insert:
			j++
		}
	}
	return keep
}

// relocations marks every pair whose parent pairing differs, and every pair
// out of order among its siblings.
func (s *state) relocations() {
	for p := range s.to.All() {
		if !p.IsElement() {
			continue
		}
		op, pok := s.c.Reverse(p.ID())
		var is []int
		var ids []dom.ID
		for _, c := range s.to.Children(p.ID()) {
			oid, ok := s.c.Reverse(c.ID())
			if !ok {
				continue
			}
			on := s.from.Node(oid)
			if !pok || on.Parent() != op {
				s.c.moved[oid] = true
				continue
			}
			is = append(is, on.Index())
			ids = append(ids, oid)
		}
		for k, keep := range increasing(is) {
			if !keep {
				s.c.moved[ids[k]] = true
			}
		}
	}
}
