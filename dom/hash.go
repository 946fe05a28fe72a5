package dom

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// hashNode computes the content hash of n from the hashes of its children.
// Identities do not contribute, so equal content hashes equally in both
// revisions and across processes.
func hashNode(n *Node, kids []*Node) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(n.kind)})
	switch n.kind {
	case TextKind:
		writeString(h, n.value)
	case ElementKind:
		writeString(h, n.name.Space)
		writeString(h, n.name.Local)
		writeUint(h, uint64(len(n.attrs)))
		for _, a := range n.attrs {
			writeString(h, a.Name.Space)
			writeString(h, a.Name.Local)
			writeString(h, a.Value)
		}
		writeUint(h, uint64(len(kids)))
		for _, k := range kids {
			// order dependent combination
			writeUint(h, k.hash)
		}
	}
	return h.Sum64()
}

func writeString(h hash.Hash64, s string) {
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}

func writeUint(h hash.Hash64, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}
