package match

import (
	"github.com/signadot/xmlrev/dom"
)

// Confidence records how a pair was found.
type Confidence int

const (
	// Unmatched is the confidence of a node without counterpart.
	Unmatched Confidence = iota
	// Identity pairs share their identity.
	Identity
	// Structural pairs have equal subtree content.
	Structural
	// Similar pairs are updated in place.
	Similar
)

func (c Confidence) String() string {
	switch c {
	case Unmatched:
		return "unmatched"
	case Identity:
		return "identity"
	case Structural:
		return "structural"
	case Similar:
		return "similar"
	}
	return "<unknown confidence>"
}

// Correspondence is a partial bijection between the nodes of an old and a
// new revision.
type Correspondence struct {
	fwd   map[dom.ID]dom.ID
	rev   map[dom.ID]dom.ID
	conf  map[dom.ID]Confidence
	moved map[dom.ID]bool
}

func newCorrespondence(n int) *Correspondence {
	return &Correspondence{
		fwd:   make(map[dom.ID]dom.ID, n),
		rev:   make(map[dom.ID]dom.ID, n),
		conf:  make(map[dom.ID]Confidence, n),
		moved: map[dom.ID]bool{},
	}
}

// Forward returns the new counterpart of the old node id.
func (c *Correspondence) Forward(id dom.ID) (dom.ID, bool) {
	res, ok := c.fwd[id]
	return res, ok
}

// Reverse returns the old counterpart of the new node id.
func (c *Correspondence) Reverse(id dom.ID) (dom.ID, bool) {
	res, ok := c.rev[id]
	return res, ok
}

func (c *Correspondence) Confidence(id dom.ID) Confidence {
	return c.conf[id]
}

// Relocated reports whether the old node id was paired with a node under a
// different parent, or out of order among its siblings.
func (c *Correspondence) Relocated(id dom.ID) bool {
	return c.moved[id]
}

// Len returns the number of pairs.
func (c *Correspondence) Len() int {
	return len(c.fwd)
}

// Count returns the number of pairs found with confidence conf.
func (c *Correspondence) Count(conf Confidence) int {
	n := 0
	for _, v := range c.conf {
		if v == conf {
			n++
		}
	}
	return n
}

func (c *Correspondence) add(from, to dom.ID, conf Confidence) bool {
	if _, ok := c.fwd[from]; ok {
		return false
	}
	if _, ok := c.rev[to]; ok {
		return false
	}
	c.fwd[from] = to
	c.rev[to] = from
	c.conf[from] = conf
	return true
}
