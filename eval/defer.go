package eval

import (
	"context"
	"fmt"
	"sync"

	"github.com/awaitjson/go-awaitjson/gomap"
	"github.com/awaitjson/go-awaitjson/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the variable environment expressions evaluate against.
type Env map[string]any

// Defer compiles src and returns a pending node that evaluates it on
// first await. Compile errors are synchronous; evaluation errors
// surface when the node is awaited.
func Defer(src string, env Env) (*ir.Node, error) {
	program, err := expr.Compile(src, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	return ir.FromWaiter(&deferred{src: src, program: program, env: env}), nil
}

// deferred runs its program once and remembers the outcome, so a node
// shared between trees evaluates a single time.
type deferred struct {
	src     string
	program *vm.Program
	env     Env

	once sync.Once
	node *ir.Node
	err  error
}

func (d *deferred) Await(ctx context.Context) (*ir.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.once.Do(func() {
		out, err := vm.Run(d.program, d.env)
		if err != nil {
			d.err = fmt.Errorf("evaluating %q: %w", d.src, err)
			return
		}
		d.node, d.err = gomap.FromGo(out)
	})
	return d.node, d.err
}
