package dom

import "strings"

// QName is a namespace qualified name.
type QName struct {
	Space string
	Local string
}

// Name returns a QName without namespace.
func Name(local string) QName {
	return QName{Local: local}
}

func NameNS(space, local string) QName {
	return QName{Space: space, Local: local}
}

// String returns the name in Clark notation, {space}local.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}

// Compare orders names by namespace, then local name.
func (q QName) Compare(o QName) int {
	if c := strings.Compare(q.Space, o.Space); c != 0 {
		return c
	}
	return strings.Compare(q.Local, o.Local)
}

// Attr is an attribute of an element.
type Attr struct {
	Name  QName
	Value string
}

func compareAttrs(a, b Attr) int {
	return a.Name.Compare(b.Name)
}
