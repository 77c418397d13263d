package debug

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/ir"
)

// Logf writes a debug line to stderr. Node arguments render as JSON,
// with pending parts awaited; anything that fails to render falls back
// to its raw form.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			s, err := encode.String(context.Background(), x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x)
				continue
			}
			args[i] = s
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
