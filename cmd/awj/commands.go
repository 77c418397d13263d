package main

import (
	"github.com/awaitjson/go-awaitjson/eval"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "awj").
		WithSynopsis("awj [opts] command [opts]").
		WithDescription("awj renders documents as JSON that can await.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return awjMain(cfg, cc, args)
		}).
		WithSubs(
			EncodeCommand(cfg),
			DemoCommand(cfg),
			ServeCommand(cfg),
			DiffCommand(cfg))
}

func EncodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EncodeConfig{MainConfig: mainCfg, Env: eval.Env{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name: "e",
			Type: cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(key=val)"),
		})

	cmd := cli.NewCommand("encode").
		WithAliases("e", "en").
		WithSynopsis("encode [-e key=val ...] [-rate n] [-path expr] [-patch file] [-watch] [file]").
		WithDescription("encode a YAML/JSON document as streaming JSON").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return encodeCmd(cfg, cc, args)
		})
	cfg.Encode = cmd
	return cmd
}

func DemoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DemoConfig{MainConfig: mainCfg, Delay: defaultDemoDelay}
	delayOpt := &cli.Opt{
		Name:        "delay",
		Description: "scale for the demo timers",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkDelay()), "(duration)"),
	}

	cmd := cli.NewCommand("demo").
		WithSynopsis("demo [-delay d]").
		WithDescription("render a built-in document with timed async parts").
		WithOpts(delayOpt).
		WithRun(func(cc *cli.Context, args []string) error {
			return demo(cfg, cc, args)
		})
	cfg.Demo = cmd
	return cmd
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Env: eval.Env{}, Addr: "localhost:9311"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name: "e",
			Type: cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(key=val)"),
		})

	cmd := cli.NewCommand("serve").
		WithSynopsis("serve [-addr a] [-rate n] [-gzip] [-gops] [file]").
		WithDescription("serve a document, streaming fragments per connection").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
	cfg.Serve = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}

	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff a b").
		WithDescription("diff the rendered forms of two documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
