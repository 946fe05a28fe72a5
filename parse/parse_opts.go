package parse

import "github.com/signadot/xmlrev/dom"

type parseOpts struct {
	idAttr *dom.QName
	prefix string
	keepWS bool
}

type ParseOption func(*parseOpts)

// IDAttr makes elements carrying the attribute name use its value as their
// identity.
func IDAttr(name dom.QName) ParseOption {
	return func(o *parseOpts) { o.idAttr = &name }
}

func IDPrefix(p string) ParseOption {
	return func(o *parseOpts) { o.prefix = p }
}

func KeepWhitespace(v bool) ParseOption {
	return func(o *parseOpts) { o.keepWS = v }
}
