package encode

import (
	"context"
	"strings"

	"github.com/awaitjson/go-awaitjson/ir"
)

// String drains the fragment sequence for node into one string.
func String(ctx context.Context, node *ir.Node, opts ...Opt) (string, error) {
	var sb strings.Builder
	if err := EncodeTo(ctx, &sb, node, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MustString renders node, panicking on error. For fixtures and debug
// output of trees known to be resolvable.
func MustString(node *ir.Node) string {
	s, err := String(context.Background(), node)
	if err != nil {
		panic(err)
	}
	return s
}
