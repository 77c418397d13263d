package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/awaitjson/go-awaitjson/debug"
	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/eval"
	"github.com/awaitjson/go-awaitjson/gomap"
	"github.com/awaitjson/go-awaitjson/ir"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/theory/jsonpath"
	"golang.org/x/time/rate"
)

func encodeCmd(cfg *EncodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Encode.Parse(cc, args)
	if err != nil {
		return err
	}
	file := "-"
	if len(args) > 0 {
		file = args[0]
	}
	if cfg.Watch && file == "-" {
		return fmt.Errorf("%w: -watch requires a file argument", cli.ErrUsage)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	lim := newLimiter(cfg.Rate)
	render := func() error {
		node, err := cfg.loadNode(file)
		if err != nil {
			return err
		}
		return renderNode(ctx, cc.Out, node, cfg.MainConfig.encOpts(cc.Out), lim)
	}

	if err := render(); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	return watchLoop(ctx, cc, file, render)
}

// watchLoop re-renders on file writes until the context ends. Render
// errors are reported and watching continues.
func watchLoop(ctx context.Context, cc *cli.Context, file string, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(file); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			if err := render(); err != nil {
				fmt.Fprintf(cc.Err, "render error: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cc.Err, "watch error: %v\n", err)
		}
	}
}

// renderNode streams the fragments of one document, rate limited, with
// a final newline after the root.
func renderNode(ctx context.Context, w io.Writer, node *ir.Node, opts []encode.Opt, lim *rate.Limiter) error {
	n := 0
	for frag, err := range encode.Encode(ctx, node, opts...) {
		if err != nil {
			return err
		}
		if err := lim.Wait(ctx); err != nil {
			return err
		}
		if _, err := io.WriteString(w, frag); err != nil {
			return err
		}
		n++
	}
	if debug.Encode() {
		debug.Logf("encoded %d fragments\n", n)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// newLimiter allows perSecond fragments, 0 or negative meaning no
// limit.
func newLimiter(perSecond int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// loadNode runs the document pipeline: read, patch, select, convert,
// bind.
func (cfg *EncodeConfig) loadNode(file string) (*ir.Node, error) {
	data, err := loadAny(file)
	if err != nil {
		return nil, err
	}
	if cfg.Patch != "" {
		data, err = applyPatch(data, cfg.Patch)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Path != "" {
		data, err = selectPath(data, cfg.Path)
		if err != nil {
			return nil, err
		}
	}
	return bindDoc(data, cfg.Env)
}

// loadAny reads a YAML or JSON document ("-" for stdin).
func loadAny(file string) (any, error) {
	var (
		in  []byte
		err error
	)
	if file == "-" {
		in, err = io.ReadAll(os.Stdin)
	} else {
		in, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", file, err)
	}
	var data any
	if err := yaml.Unmarshal(in, &data); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return data, nil
}

// applyPatch applies an RFC 6902 patch file to the document.
func applyPatch(data any, patchFile string) (any, error) {
	patchBytes, err := os.ReadFile(patchFile)
	if err != nil {
		return nil, fmt.Errorf("could not read patch %s: %w", patchFile, err)
	}
	patch, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch %s: %w", patchFile, err)
	}
	docBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	patched, err := patch.Apply(docBytes)
	if err != nil {
		return nil, fmt.Errorf("error applying patch: %w", err)
	}
	var out any
	if err := json.Unmarshal(patched, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// selectPath narrows the document to the first JSONPath match.
func selectPath(data any, pathExpr string) (any, error) {
	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", pathExpr, err)
	}
	results := path.Select(data)
	if len(results) == 0 {
		return nil, fmt.Errorf("no match for %q", pathExpr)
	}
	return results[0], nil
}

// bindDoc converts a document and binds its deferred expressions.
func bindDoc(data any, env eval.Env) (*ir.Node, error) {
	node, err := gomap.FromGo(data)
	if err != nil {
		return nil, err
	}
	return eval.Bind(node, env)
}
