// Package match pairs the nodes of two document revisions.
//
// A [Matcher] produces a [Correspondence], a partial bijection from nodes of
// the old revision to nodes of the new one. Pairs are found in phases, each
// working only on nodes that are still unpaired:
//
//  1. identity: nodes with the same identity, kind and name
//  2. top-down, for every paired element and in new document order:
//     children with equal subtree hashes aligned by longest common
//     subsequence, then children whose token similarity exceeds the
//     threshold, then, with [Gaps], compatible children left in the same
//     gap between order preserving anchors
//  3. subtrees whose content hash is unique on both sides
//
// Finally every pair whose parent pairing differs, or which falls out of the
// longest order preserving subsequence of its siblings, is marked relocated.
//
// Nodes left unpaired become deletions and insertions, so raising the
// threshold trades in place updates for delete/insert pairs.
//
// Ties are broken by document order, so matching two fixed snapshots always
// yields the same correspondence.
package match
