package eval

import (
	"strings"

	"github.com/awaitjson/go-awaitjson/debug"
	"github.com/awaitjson/go-awaitjson/ir"
)

// Bind rebuilds a tree, replacing every string of the form ".[ expr ]"
// with a deferred evaluation of expr. Other nodes pass through, pending
// and stream nodes untouched.
func Bind(n *ir.Node, env Env) (*ir.Node, error) {
	switch n.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(n.Values))
		for i, elt := range n.Values {
			xc, err := Bind(elt, env)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: n.Fields[i], Val: xc}
		}
		return ir.FromKeyVals(kvs), nil
	case ir.ArrayType:
		res := make([]*ir.Node, len(n.Values))
		for i, elt := range n.Values {
			xc, err := Bind(elt, env)
			if err != nil {
				return nil, err
			}
			res[i] = xc
		}
		return ir.FromSlice(res), nil
	case ir.StringType:
		raw := RawExpr(n.String)
		if raw == "" {
			return n, nil
		}
		if debug.Eval() {
			debug.Logf("defer %q\n", raw)
		}
		return Defer(raw, env)
	}
	return n, nil
}

// RawExpr extracts the expression from a ".[ expr ]" reference string.
// It returns "" when the string is not in that form.
func RawExpr(v string) string {
	if !isRawRef(v) {
		return ""
	}
	return strings.TrimSpace(v[2 : len(v)-1])
}

func isRawRef(s string) bool {
	return strings.HasPrefix(s, ".[") && strings.HasSuffix(s, "]")
}
