package main

import (
	"fmt"
	"io"

	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/encode"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := viewFile(cfg, cc, file); err != nil {
			return err
		}
		if i < len(args)-1 {
			if _, err := cc.Out.Write([]byte("\n")); err != nil {
				return err
			}
		}
	}
	return nil
}

var diffRoot = dom.NameNS(libdiff.Namespace, "diff")

// viewFile shows file as a document, or as a report when it holds a stored
// diff.
func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	d, err := readInput(cc, file)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", file, err)
	}
	snap, err := parse.Parse(d, cfg.parseOpts(false)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	if err := viewSnapshot(cfg, cc.Out, snap, d); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func viewSnapshot(cfg *ViewConfig, w io.Writer, snap *dom.Snapshot, raw []byte) error {
	opts := cfg.encOpts(w)
	if snap.Root().Name() != diffRoot {
		return encode.Encode(snap, w, append(opts, encode.XMLDecl(cfg.Decl))...)
	}
	d, err := parse.ParseDiff(raw)
	if err != nil {
		return err
	}
	m := d.Meta
	if m.Document != "" || m.Timestamp != "" {
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", m.Document, m.Revision, m.Timestamp, m.Principal); err != nil {
			return err
		}
	}
	return encode.EncodeReport(d, nil, w, opts...)
}
