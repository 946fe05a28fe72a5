package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/xmlrev/debug"
	"github.com/signadot/xmlrev/dom"

	"github.com/jacoelho/xsd/pkg/xmlstream"
)

const xmlnsNamespace = "http://www.w3.org/2000/xmlns/"

func Parse(d []byte, opts ...ParseOption) (*dom.Snapshot, error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

// ParseReader reads one XML document from r. Comments, processing
// instructions and directives are skipped.
func ParseReader(r io.Reader, opts ...ParseOption) (*dom.Snapshot, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	reader, err := xmlstream.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	p := &parser{opts: pOpts, b: dom.NewBuilder()}
	for {
		ev, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			err = p.start(ev)
		case xmlstream.EventEndElement:
			err = p.end()
		case xmlstream.EventCharData:
			p.buf = append(p.buf, ev.Text...)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, ev.Line, err)
		}
	}
	if len(p.stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element %s", ErrParse, p.stack[len(p.stack)-1].id)
	}
	snap, err := p.b.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if debug.Parse() {
		debug.Logf("parse: %d nodes\n%s\n", snap.Len(), snap)
	}
	return snap, nil
}

type frame struct {
	id   dom.ID
	kids int
}

type parser struct {
	opts  *parseOpts
	b     *dom.Builder
	stack []frame
	buf   []byte
	root  bool
}

func (p *parser) start(ev xmlstream.Event) error {
	if err := p.flush(); err != nil {
		return err
	}
	if len(p.stack) == 0 && p.root {
		return dom.ErrSecondRoot
	}
	p.root = true
	name := dom.QName{Space: string(ev.Name.Namespace), Local: string(ev.Name.Local)}
	attrs := make([]dom.Attr, 0, len(ev.Attrs))
	for i := range ev.Attrs {
		a := &ev.Attrs[i]
		an := dom.QName{Space: string(a.Name.Namespace), Local: string(a.Name.Local)}
		if an.Space == xmlnsNamespace || (an.Space == "" && an.Local == "xmlns") {
			continue
		}
		attrs = append(attrs, dom.Attr{Name: an, Value: string(a.Value)})
	}
	var parent dom.ID
	id := p.nextID()
	if len(p.stack) != 0 {
		parent = p.stack[len(p.stack)-1].id
	}
	if p.opts.idAttr != nil {
		for _, a := range attrs {
			if a.Name == *p.opts.idAttr && a.Value != "" {
				id = dom.ID(a.Value)
				break
			}
		}
	}
	if err := p.b.Element(parent, id, name, attrs...); err != nil {
		return err
	}
	p.stack = append(p.stack, frame{id: id})
	return nil
}

// nextID returns the positional identity of the next child of the current
// element and counts it.
func (p *parser) nextID() dom.ID {
	if len(p.stack) == 0 {
		return dom.ID(p.opts.prefix + "1")
	}
	top := &p.stack[len(p.stack)-1]
	top.kids++
	return top.id + dom.ID("."+strconv.Itoa(top.kids))
}

func (p *parser) end() error {
	if err := p.flush(); err != nil {
		return err
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *parser) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	s := string(p.buf)
	p.buf = p.buf[:0]
	if len(p.stack) == 0 {
		// outside the root element
		return nil
	}
	if !p.opts.keepWS && strings.TrimSpace(s) == "" {
		return nil
	}
	parent := p.stack[len(p.stack)-1].id
	return p.b.Text(parent, p.nextID(), s)
}
