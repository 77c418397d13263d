package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/eval"
	"github.com/awaitjson/go-awaitjson/stream"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	ASCII  bool `cli:"name=ascii desc='escape non-ASCII output'"`
	Strict bool `cli:"name=strict desc='reject NaN and infinities'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// encOpts derives encode options from the flags. Without -color, a
// terminal gets colors and anything else does not.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.Opt {
	res := []encode.Opt{
		encode.WithASCIIOnly(cfg.ASCII),
		encode.WithStrictNumbers(cfg.Strict),
	}
	if cfg.Color {
		res = append(res, encode.WithColors(stream.NewColors()))
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
		res = append(res, encode.WithColors(stream.NewColors()))
	}
	return res
}

type EncodeConfig struct {
	*MainConfig
	Env eval.Env

	Rate  int    `cli:"name=rate desc='max fragments per second (0 = unlimited)'"`
	Patch string `cli:"name=patch desc='RFC 6902 patch file applied before encoding'"`
	Path  string `cli:"name=path desc='JSONPath selecting the subtree to encode'"`
	Watch bool   `cli:"name=watch desc='re-encode when the file changes'"`

	Encode *cli.Command
}

type DemoConfig struct {
	*MainConfig
	Delay time.Duration

	Demo *cli.Command
}

func (cfg *DemoConfig) mkDelay() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Delay = d
		return d, nil
	}
}

type ServeConfig struct {
	*MainConfig
	Env eval.Env

	Addr string `cli:"name=addr desc='TCP listen address' default=localhost:9311"`
	Rate int    `cli:"name=rate desc='max fragments per second per connection (0 = unlimited)'"`
	Gzip bool   `cli:"name=gzip desc='gzip the stream'"`
	Gops bool   `cli:"name=gops desc='start a gops diagnostics agent'"`

	Serve *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

// envFunc records one -e key=value entry. Values parse as YAML so
// numbers and booleans keep their types; dotted keys nest.
func envFunc(env eval.Env, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := map[string]any(env)
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}

func envOptTypeFunc(env eval.Env) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}
