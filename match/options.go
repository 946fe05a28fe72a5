package match

// DefaultThreshold is the similarity a pair of nodes must exceed to be
// matched in place.
const DefaultThreshold = 0.6

type Option func(*Matcher)

// Threshold sets the similarity threshold, in [0, 1]. Higher values produce
// fewer in place updates and more delete/insert pairs.
func Threshold(v float64) Option {
	return func(m *Matcher) {
		m.threshold = min(max(v, 0), 1)
	}
}

// UniqueSubtrees enables matching of subtrees whose content occurs exactly
// once among the unpaired nodes of each revision, wherever they are.
func UniqueSubtrees(v bool) Option {
	return func(m *Matcher) {
		m.unique = v
	}
}

// Gaps enables pairing of the compatible children left between two order
// preserving anchors, in order and whatever their similarity. Off by default,
// so that dissimilar nodes are deleted and inserted.
func Gaps(v bool) Option {
	return func(m *Matcher) {
		m.gaps = v
	}
}
