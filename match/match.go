package match

import (
	"github.com/signadot/xmlrev/debug"
	"github.com/signadot/xmlrev/dom"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Matcher computes correspondences. A Matcher is immutable and may be shared
// between goroutines.
type Matcher struct {
	threshold float64
	unique    bool
	gaps      bool
}

func New(opts ...Option) *Matcher {
	m := &Matcher{
		threshold: DefaultThreshold,
		unique:    true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold returns the similarity threshold in effect.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match pairs the nodes of from (the old revision) with the nodes of to (the
// new revision). The roots always correspond; if they are not compatible an
// *IncompatibleRootError is returned.
func (m *Matcher) Match(from, to *dom.Snapshot) (*Correspondence, error) {
	if from == nil || to == nil {
		return nil, ErrNilSnapshot
	}
	fr, tr := from.Root(), to.Root()
	if !dom.Compatible(fr, tr) {
		return nil, &IncompatibleRootError{From: fr, To: tr}
	}
	dmp := diffpatch.New()
	// no deadline, the alignment must not depend on timing.
	dmp.DiffTimeout = 0
	s := &state{
		m:      m,
		from:   from,
		to:     to,
		c:      newCorrespondence(min(from.Len(), to.Len())),
		dmp:    dmp,
		tokens: map[*dom.Node]map[string]int{},
	}
	conf := Structural
	if fr.ID() == tr.ID() {
		conf = Identity
	}
	s.pair(fr, tr, conf)
	if debug.Match() {
		debug.Logf("match: threshold %v, unique subtrees %t, gaps %t\n", m.Threshold(), m.unique, m.gaps)
	}

	s.identity()
	s.phase("identity")
	s.topDown()
	s.phase("top-down")
	if m.unique {
		s.uniqueSubtrees()
		s.phase("unique subtrees")
	}
	s.relocations()
	if debug.Match() {
		debug.Logf("match: %d/%d old nodes paired, %d relocated\n", s.c.Len(), from.Len(), len(s.c.moved))
	}
	return s.c, nil
}

type state struct {
	m        *Matcher
	from, to *dom.Snapshot
	c        *Correspondence
	dmp      *diffpatch.DiffMatchPatch
	tokens   map[*dom.Node]map[string]int
}

func (s *state) phase(name string) {
	if !debug.Match() {
		return
	}
	debug.Logf("match: after %s: %d pairs (identity %d, structural %d, similar %d)\n",
		name, s.c.Len(), s.c.Count(Identity), s.c.Count(Structural), s.c.Count(Similar))
}

func (s *state) pair(o, n *dom.Node, conf Confidence) bool {
	if !s.c.add(o.ID(), n.ID(), conf) {
		return false
	}
	if debug.Matches() {
		debug.Logf("match: %s %v = %v\n", conf, o, n)
	}
	return true
}

func (s *state) pairedFrom(o *dom.Node) bool {
	_, ok := s.c.fwd[o.ID()]
	return ok
}

func (s *state) pairedTo(n *dom.Node) bool {
	_, ok := s.c.rev[n.ID()]
	return ok
}

func (s *state) identity() {
	for n := range s.to.All() {
		if n.Parent() == "" {
			continue
		}
		o := s.from.Node(n.ID())
		if o == nil || o.Parent() == "" || !dom.Compatible(o, n) {
			continue
		}
		s.pair(o, n, Identity)
	}
}

// topDown visits the new revision in document order, so the children paired
// below an element are visited after it.
func (s *state) topDown() {
	for n := range s.to.All() {
		if !n.IsElement() {
			continue
		}
		oid, ok := s.c.Reverse(n.ID())
		if !ok {
			continue
		}
		o := s.from.Node(oid)
		s.children(o, n)
	}
}

func (s *state) children(o, n *dom.Node) {
	fk := s.unpairedFrom(s.from.Children(o.ID()))
	tk := s.unpairedTo(s.to.Children(n.ID()))
	if len(fk) == 0 || len(tk) == 0 {
		return
	}
	s.align(fk, tk)
	fk, tk = s.unpairedFrom(fk), s.unpairedTo(tk)
	if len(fk) == 0 || len(tk) == 0 {
		return
	}
	s.similar(fk, tk)
	if s.m.gaps {
		s.gaps(o, n)
	}
}

func (s *state) unpairedFrom(ns []*dom.Node) []*dom.Node {
	res := make([]*dom.Node, 0, len(ns))
	for _, n := range ns {
		if !s.pairedFrom(n) {
			res = append(res, n)
		}
	}
	return res
}

func (s *state) unpairedTo(ns []*dom.Node) []*dom.Node {
	res := make([]*dom.Node, 0, len(ns))
	for _, n := range ns {
		if !s.pairedTo(n) {
			res = append(res, n)
		}
	}
	return res
}

// zip pairs two subtrees node by node, stopping below any node that is
// incompatible or already paired.
func (s *state) zip(o, n *dom.Node, conf Confidence) {
	if !dom.Compatible(o, n) || !s.pair(o, n, conf) {
		return
	}
	fk, tk := s.from.Children(o.ID()), s.to.Children(n.ID())
	for i := range min(len(fk), len(tk)) {
		s.zip(fk[i], tk[i], conf)
	}
}

func (s *state) uniqueSubtrees() {
	fromCount := map[uint64]int{}
	fromNode := map[uint64]*dom.Node{}
	for o := range s.from.All() {
		if !o.IsElement() || s.pairedFrom(o) {
			continue
		}
		fromCount[o.Hash()]++
		fromNode[o.Hash()] = o
	}
	toCount := map[uint64]int{}
	for n := range s.to.All() {
		if n.IsElement() && !s.pairedTo(n) {
			toCount[n.Hash()]++
		}
	}
	for n := range s.to.All() {
		if !n.IsElement() || s.pairedTo(n) {
			continue
		}
		h := n.Hash()
		if toCount[h] != 1 || fromCount[h] != 1 {
			continue
		}
		o := fromNode[h]
		if s.pairedFrom(o) || !dom.EqualSubtree(s.from, o.ID(), s.to, n.ID()) {
			continue
		}
		s.zip(o, n, Structural)
	}
}
