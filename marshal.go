// Package awaitjson renders Go values as JSON text that can suspend.
//
// Values may carry asynchronous parts: single values that resolve later
// and sequences whose elements arrive over time. Marshal returns the
// rendered text as a lazy fragment sequence that pauses where the data
// is not ready yet, without holding up anything already available.
//
//	seq, err := awaitjson.Marshal(ctx, report)
//	if err != nil {
//	    return err
//	}
//	for frag, err := range seq {
//	    if err != nil {
//	        return err
//	    }
//	    os.Stdout.WriteString(frag)
//	}
//
// The heavy lifting lives in subpackages: gomap converts Go values to
// the ir node form, encode renders nodes incrementally, eval binds
// deferred expressions, and cmd/awj drives it all from the command
// line.
package awaitjson

import (
	"context"
	"iter"

	"github.com/awaitjson/go-awaitjson/encode"
	"github.com/awaitjson/go-awaitjson/gomap"
)

// Marshal converts a Go value and returns its fragment sequence.
// Conversion errors are synchronous; rendering and resolution errors
// arrive through the sequence.
func Marshal(ctx context.Context, v any, opts ...encode.Opt) (iter.Seq2[string, error], error) {
	node, err := gomap.FromGo(v)
	if err != nil {
		return nil, err
	}
	return encode.Encode(ctx, node, opts...), nil
}

// MarshalString renders a Go value to a single string, awaiting every
// pending part.
func MarshalString(ctx context.Context, v any, opts ...encode.Opt) (string, error) {
	node, err := gomap.FromGo(v)
	if err != nil {
		return "", err
	}
	return encode.String(ctx, node, opts...)
}
