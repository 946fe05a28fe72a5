package dom

// ID is the stable identity of a node.
type ID string

type Kind int

const (
	ElementKind Kind = iota
	TextKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ElementKind: "Element",
		TextKind:    "Text",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}
