package main

import (
	"context"
	"fmt"

	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/gomap"
	"github.com/awaitjson/go-awaitjson/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two documents", cli.ErrUsage)
	}

	renders := make([]string, 2)
	for i, arg := range args {
		data, err := loadAny(arg)
		if err != nil {
			return err
		}
		node, err := gomap.FromGo(data)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", arg, err)
		}
		s, err := encode.String(context.Background(), node)
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		renders[i] = s
	}

	if renders[0] == renders[1] {
		return nil
	}
	fmt.Fprint(cc.Out, libdiff.Unified(renders[0]+"\n", renders[1]+"\n"))
	return cli.ExitCodeErr(1)
}
