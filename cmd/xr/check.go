package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/xmlrev"
	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/parse"

	"github.com/scott-cotton/cli"
)

// check computes the diff of two revisions, stores and reloads it and
// verifies the reloaded diff reproduces the newer revision.
func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: check requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDocFile(cc, args[0], cfg.parseOpts(false)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDocFile(cc, args[1], cfg.parseOpts(true)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	d, err := xmlrev.Compare(a, b, append(cfg.Match.compareOpts(), xmlrev.Verify(true))...)
	if err != nil {
		return err
	}
	data, err := xmlrev.Serialize(d, libdiff.Metadata{Document: args[1]})
	if err != nil {
		return err
	}
	back, err := parse.ParseDiff(data)
	if err != nil {
		return fmt.Errorf("%w: reading stored diff: %w", xmlrev.ErrRoundTrip, err)
	}
	res, err := xmlrev.Apply(a, back)
	if err != nil {
		return fmt.Errorf("%w: %w", xmlrev.ErrRoundTrip, err)
	}
	if !dom.Equal(res, b) {
		return fmt.Errorf("%w: stored diff does not reproduce %s", xmlrev.ErrRoundTrip, args[1])
	}
	_, err = fmt.Fprintf(cc.Out, "ok %s (threshold %v)\n", summary(d), cfg.Match.threshold())
	return err
}

func summary(d *libdiff.Document) string {
	if d.Empty() {
		return "no changes"
	}
	counts := d.Counts()
	var parts []string
	for _, k := range libdiff.OpKinds() {
		if counts[k] != 0 {
			parts = append(parts, strconv.Itoa(counts[k])+" "+k.String())
		}
	}
	return strings.Join(parts, ", ")
}
