package libdiff

// Metadata is caller supplied information that travels with a diff. The
// engine never interprets it.
type Metadata struct {
	// Document is the URI of the compared document.
	Document  string `yaml:"document"`
	Revision  string `yaml:"revision"`
	Timestamp string `yaml:"timestamp"`
	Principal string `yaml:"principal"`
}

// Document is the result of one comparison: the ordered edit script and the
// metadata it was serialized with, if any. A Document is not modified after
// it has been produced.
type Document struct {
	Ops  []Op
	Meta Metadata
}

// Empty reports whether the script has no operations.
func (d *Document) Empty() bool {
	return d == nil || len(d.Ops) == 0
}

// Counts returns the number of operations per kind.
func (d *Document) Counts() map[OpKind]int {
	res := make(map[OpKind]int, len(OpKinds()))
	if d == nil {
		return res
	}
	for _, op := range d.Ops {
		res[op.Kind()]++
	}
	return res
}

// Namespace is the namespace of the serialized form of a Document. Its
// operation elements are named after [OpKind.String].
const Namespace = "urn:xmlrev:diff"
