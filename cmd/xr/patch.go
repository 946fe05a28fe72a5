package main

import (
	"fmt"
	"os"

	"github.com/signadot/xmlrev"
	"github.com/signadot/xmlrev/encode"
	"github.com/signadot/xmlrev/parse"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a diff and at most one base, got %v", cli.ErrUsage, args)
	}
	base := "-"
	if len(args) == 2 {
		base = args[1]
	}
	if args[0] == "-" && base == "-" {
		return fmt.Errorf("%w: diff and base cannot both be stdin", cli.ErrUsage)
	}
	dd, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	d, err := parse.ParseDiff(dd)
	if err != nil {
		return fmt.Errorf("error decoding diff %s: %w", args[0], err)
	}
	snap, err := getDocFile(cc, base, cfg.parseOpts(false)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", base, err)
	}
	if cfg.Report {
		if err := encode.EncodeReport(d, snap, os.Stderr, cfg.encOpts(os.Stderr)...); err != nil {
			return err
		}
	}
	res, err := xmlrev.Apply(snap, d)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", base, err)
	}
	return encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...)
}
