package xmlrev

import (
	"fmt"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/match"
)

type compareConfig struct {
	matchOpts []match.Option
	verify    bool
}

type CompareOpt func(*compareConfig)

// DefaultThreshold is the similarity threshold used unless [Threshold] is
// given.
const DefaultThreshold = match.DefaultThreshold

// Threshold sets the similarity a pair of nodes must exceed to be updated in
// place rather than deleted and inserted.
func Threshold(v float64) CompareOpt {
	return func(c *compareConfig) { c.matchOpts = append(c.matchOpts, match.Threshold(v)) }
}

func UniqueSubtrees(v bool) CompareOpt {
	return func(c *compareConfig) { c.matchOpts = append(c.matchOpts, match.UniqueSubtrees(v)) }
}

// GapPairing makes Compare pair the compatible children left between two
// order preserving siblings in order, ignoring the threshold.
func GapPairing(v bool) CompareOpt {
	return func(c *compareConfig) { c.matchOpts = append(c.matchOpts, match.Gaps(v)) }
}

// Verify makes Compare apply the diff to from and fail with ErrRoundTrip
// unless the result equals to.
func Verify(v bool) CompareOpt {
	return func(c *compareConfig) { c.verify = v }
}

// Compare computes the edit script transforming from into to. It fails with
// an *IncompatibleRootError when the roots differ in kind or name.
func Compare(from, to *dom.Snapshot, opts ...CompareOpt) (*libdiff.Document, error) {
	cfg := &compareConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	corr, err := match.New(cfg.matchOpts...).Match(from, to)
	if err != nil {
		return nil, err
	}
	doc, err := libdiff.Build(from, to, corr)
	if err != nil {
		return nil, err
	}
	if !cfg.verify {
		return doc, nil
	}
	res, err := Apply(from, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	if !dom.Equal(res, to) {
		return nil, ErrRoundTrip
	}
	return doc, nil
}
