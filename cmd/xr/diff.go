package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/signadot/xmlrev"
	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/encode"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/parse"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		a, err := getDocFile(cc, args[0], cfg.parseOpts(false)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[0], err)
		}
		b, err := getDocFile(cc, args[1], cfg.parseOpts(true)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
		doc := cfg.Document
		if doc == "" {
			doc = args[1]
		}
		diff, err := diffInputs(cfg, cc, doc, a, b, false)
		if err != nil {
			return err
		}
		if diff {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: diff -loop takes no args, got %v", cli.ErrUsage, args)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	return diffLoop(cfg, cc)
}

// diffLoop runs cfg.Loop every cfg.LoopEvery and writes the diff between
// successive outputs whenever they differ. Both outputs are parsed anew
// each round so that their identities are assigned the same way as for
// two files.
func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	i := 0
	var last []byte
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	doc := cfg.Document
	if doc == "" {
		doc = cfg.Loop
	}
	for {
		if i == cfg.LoopLim {
			break
		}
		cmd := exec.Command("sh", "-c", cfg.Loop)
		r, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
		}
		cmd.WaitDelay = cfg.LoopEvery
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
		}
		next, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command %q exited with an error: %w", cfg.Loop, err)
		}
		b, err := parse.Parse(next, cfg.parseOpts(true)...)
		if err != nil {
			return fmt.Errorf("error decoding command output: %w", err)
		}
		if last != nil {
			a, err := parse.Parse(last, cfg.parseOpts(false)...)
			if err != nil {
				return fmt.Errorf("error decoding previous output: %w", err)
			}
			differs, err := diffInputs(cfg, cc, doc, a, b, diffCount > 0)
			if err != nil {
				return err
			}
			if differs {
				diffCount++
			}
		}
		last = next
		<-ticker.C
		i++
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, doc string, a, b *dom.Snapshot, sep bool) (bool, error) {
	d, err := xmlrev.Compare(a, b, cfg.compareOpts()...)
	if err != nil {
		return false, err
	}
	if d.Empty() {
		return false, nil
	}
	w := cc.Out
	when := time.Now().UTC().Format(time.RFC3339)
	if sep {
		if _, err := w.Write([]byte("\n")); err != nil {
			return false, fmt.Errorf("unable to write separator: %w", err)
		}
	}
	if cfg.Loop != "" {
		if _, err := w.Write([]byte("<!-- difference found at " + when + " -->\n")); err != nil {
			return false, err
		}
	}
	if cfg.Report {
		if err := encode.EncodeReport(d, a, w, cfg.encOpts(w)...); err != nil {
			return false, err
		}
		return true, nil
	}
	meta := libdiff.Metadata{
		Document:  doc,
		Revision:  cfg.Revision,
		Timestamp: when,
		Principal: cfg.user(),
	}
	if err := xmlrev.SerializeTo(d, meta, w); err != nil {
		return false, err
	}
	return true, nil
}
