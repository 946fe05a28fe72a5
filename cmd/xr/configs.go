package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/xmlrev"
	"github.com/signadot/xmlrev/dom"
	"github.com/signadot/xmlrev/encode"
	"github.com/signadot/xmlrev/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool   `cli:"name=color desc='encode with color'"`
	KeepWS bool   `cli:"name=ws desc='keep whitespace only text'"`
	IDAttr string `cli:"name=id desc='attribute holding node identities, as local or {ns}local'"`
	Indent int    `cli:"name=indent desc='indentation of xml output'"`

	File *FileConfig

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// FileConfig holds defaults read with -config. Command line options take
// precedence.
type FileConfig struct {
	Threshold      *float64 `yaml:"threshold"`
	UniqueSubtrees *bool    `yaml:"uniqueSubtrees"`
	GapPairing     *bool    `yaml:"gapPairing"`
	IDAttr         string   `yaml:"idAttr"`
	IDPrefix       string   `yaml:"idPrefix"`
	KeepWhitespace bool     `yaml:"keepWhitespace"`
	Indent         int      `yaml:"indent"`
	User           string   `yaml:"user"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(d, fc); err != nil {
		return nil, err
	}
	if fc.Threshold != nil && (*fc.Threshold < 0 || *fc.Threshold > 1) {
		return nil, fmt.Errorf("threshold %v not in [0, 1]", *fc.Threshold)
	}
	return fc, nil
}

func (cfg *MainConfig) file() *FileConfig {
	if cfg.File == nil {
		return &FileConfig{}
	}
	return cfg.File
}

func parseQName(s string) dom.QName {
	if strings.HasPrefix(s, "{") {
		if i := strings.IndexByte(s, '}'); i > 0 {
			return dom.NameNS(s[1:i], s[i+1:])
		}
	}
	return dom.Name(s)
}

// parseOpts gives the options for reading a revision. Positional identities
// of the newer revision carry a prefix so that they never coincide with
// those of the older one by accident.
func (cfg *MainConfig) parseOpts(newer bool) []parse.ParseOption {
	fc := cfg.file()
	res := []parse.ParseOption{
		parse.KeepWhitespace(cfg.KeepWS || fc.KeepWhitespace),
	}
	idAttr := cfg.IDAttr
	if idAttr == "" {
		idAttr = fc.IDAttr
	}
	if idAttr != "" {
		res = append(res, parse.IDAttr(parseQName(idAttr)))
	}
	if newer {
		prefix := fc.IDPrefix
		if prefix == "" {
			prefix = "n"
		}
		res = append(res, parse.IDPrefix(prefix))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	indent := cfg.Indent
	if indent == 0 {
		indent = cfg.file().Indent
	}
	var res []encode.EncodeOption
	if indent > 0 {
		res = append(res, encode.Indent(indent))
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	return res
}

type DiffConfig struct {
	*MainConfig
	Report    bool   `cli:"name=r aliases=report desc='write a readable report instead of a diff document'"`
	Verify    bool   `cli:"name=verify desc='check that the diff reproduces the new revision'"`
	Document  string `cli:"name=doc desc='document uri recorded in the diff'"`
	Revision  string `cli:"name=rev desc='revision label recorded in the diff'"`
	User      string `cli:"name=user desc='user recorded in the diff'"`
	Loop      string `cli:"name=loop desc='command to produce revisions to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int  `cli:"name=loopLim desc='max number of times to loop'"`
	Gops      bool `cli:"name=gops desc='run a gops agent while looping'"`
	Match     *MatchConfig

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

func (cfg *DiffConfig) compareOpts() []xmlrev.CompareOpt {
	return append(cfg.Match.compareOpts(), xmlrev.Verify(cfg.Verify))
}

func (cfg *DiffConfig) user() string {
	if cfg.User != "" {
		return cfg.User
	}
	return cfg.file().User
}

type PatchConfig struct {
	*MainConfig
	Report bool `cli:"name=r aliases=report desc='write a report of the applied diff to stderr'"`

	Patch *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Decl bool `cli:"name=decl desc='write an xml declaration'"`

	View *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Match *MatchConfig

	Check *cli.Command
}

// MatchConfig holds the matching options shared by diff and check, so that
// check verifies the script diff writes.
type MatchConfig struct {
	*MainConfig
	NoUnique  bool `cli:"name=nounique desc='do not match unique subtrees across parents'"`
	Gaps      bool `cli:"name=gaps desc='pair leftover children between unchanged siblings whatever their similarity'"`
	Threshold *float64
}

func (cfg *MatchConfig) opts() []*cli.Opt {
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return append(opts, &cli.Opt{
		Name:        "threshold",
		Description: "similarity a pair of nodes must exceed to be updated in place",
		Type:        cli.NamedFuncOpt(cfg.mkThreshold(), "(0..1)"),
	})
}

func (cfg *MatchConfig) mkThreshold() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: threshold %q not in [0, 1]", cli.ErrUsage, a)
		}
		cfg.Threshold = &v
		return v, nil
	})
}

// threshold returns the threshold in effect: the option, then the config
// file, then the default.
func (cfg *MatchConfig) threshold() float64 {
	switch fc := cfg.file(); {
	case cfg.Threshold != nil:
		return *cfg.Threshold
	case fc.Threshold != nil:
		return *fc.Threshold
	}
	return xmlrev.DefaultThreshold
}

func (cfg *MatchConfig) compareOpts() []xmlrev.CompareOpt {
	fc := cfg.file()
	res := []xmlrev.CompareOpt{xmlrev.Threshold(cfg.threshold())}
	switch {
	case cfg.NoUnique:
		res = append(res, xmlrev.UniqueSubtrees(false))
	case fc.UniqueSubtrees != nil:
		res = append(res, xmlrev.UniqueSubtrees(*fc.UniqueSubtrees))
	}
	switch {
	case cfg.Gaps:
		res = append(res, xmlrev.GapPairing(true))
	case fc.GapPairing != nil:
		res = append(res, xmlrev.GapPairing(*fc.GapPairing))
	}
	return res
}
