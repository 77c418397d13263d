package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awaitjson/go-awaitjson/eval"
	"github.com/awaitjson/go-awaitjson/gomap"
	"github.com/awaitjson/go-awaitjson/ir"

	"github.com/scott-cotton/cli"
)

const defaultDemoDelay = 300 * time.Millisecond

func demo(cfg *DemoConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Demo.Parse(cc, args); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	node, err := demoNode(ctx, cfg.Delay)
	if err != nil {
		return err
	}
	return renderNode(ctx, cc.Out, node, cfg.MainConfig.encOpts(cc.Out), newLimiter(0))
}

// demoNode builds a document whose async parts complete on timers, so
// a terminal shows fragments arriving one by one.
func demoNode(ctx context.Context, delay time.Duration) (*ir.Node, error) {
	workers := make(chan map[string]any)
	go func() {
		defer close(workers)
		for i, name := range []string{"alpha", "bravo", "charlie"} {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			select {
			case workers <- map[string]any{"name": name, "shard": i}:
			case <-ctx.Done():
				return
			}
		}
	}()

	doc := struct {
		Service string                             `json:"service"`
		Workers chan map[string]any                `json:"workers"`
		Total   func(context.Context) (any, error) `json:"total"`
		Note    string                             `json:"note"`
	}{
		Service: "demo",
		Workers: workers,
		Total: func(ctx context.Context) (any, error) {
			select {
			case <-time.After(4 * delay):
				return 1295, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
		Note: ".[ region + '/' + zone ]",
	}

	node, err := gomap.FromGo(doc)
	if err != nil {
		return nil, err
	}
	return eval.Bind(node, eval.Env{"region": "eu-west-1", "zone": "c"})
}
