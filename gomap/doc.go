// Package gomap converts native Go values into IR nodes.
//
// # Usage
//
//	type User struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age,omitempty"`
//	}
//	node, err := gomap.FromGo(User{Name: "ana"})
//
// Struct fields follow `json` tags and keep declaration order. Types
// implementing encoding.TextMarshaler (time.Time among them) become
// strings.
//
// Asynchronous values survive the conversion: ir.Waiter and ir.Source
// values become pending and stream nodes, a func(ctx) (any, error)
// becomes a pending node resolved on demand, and a receivable channel
// becomes a stream node fed by receives. The encode package pulls on
// these while it renders.
//
// # Related Packages
//
//   - github.com/awaitjson/go-awaitjson/ir - IR representation
//   - github.com/awaitjson/go-awaitjson/encode - incremental rendering
package gomap
