package encode

type EncodeOption func(*EncState)

// Indent sets the indentation step of elements with element only content.
// Zero writes everything on one line.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 0) }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// XMLDecl controls whether an XML declaration precedes the document.
func XMLDecl(v bool) EncodeOption {
	return func(es *EncState) { es.decl = v }
}
