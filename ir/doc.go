// Package ir provides the intermediate representation (IR) for documents
// whose values may still be in flight.
//
// # Overview
//
// The IR package defines the tree of nodes the encoder consumes. A document
// is an ir.Node tree in which any position (scalar, mapping key, mapping
// value, sequence element, at any depth) may stand for a value that does
// not exist yet: a pending value resolved later through a Waiter, or a
// pending sequence whose elements arrive one at a time through a Source.
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node type.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64, float64, or verbatim text)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//   - PendingType: a single value resolved through the Waiter field
//   - StreamType: a sequence produced through the Source field
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//	later := ir.FromWaiter(promise)
//	feed := ir.FromSource(ir.SourceOf(ir.FromInt(1), ir.FromInt(2)))
//
// # IR Structure Constraints
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Keys are full
// nodes: a key may itself be a number, a bool, null, a pending value, or a
// pending sequence. Field/value order is the declaration order and the
// encoder preserves it exactly.
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as verbatim text if neither should be used
//
// # Pending Values
//
// A PendingType node carries a Waiter; awaiting it produces the node the
// value resolves to, which may itself be pending. A StreamType node carries
// a Source; each Next call produces the next element, and io.EOF ends the
// sequence. Both are single-shot: a document holding them encodes once.
//
// Promise and Feed are the producer sides:
//
//	p := ir.NewPromise()
//	go func() { p.Resolve(ir.FromString("done")) }()
//
//	f := ir.NewFeed(4)
//	go func() {
//	    defer f.Close()
//	    f.Send(ctx, ir.FromInt(1))
//	}()
//
// Use Classify to map a node to the kind the encoder treats it as; it
// rejects malformed nodes with ErrUnsupportedType.
//
// # Navigating Nodes
//
// Nodes maintain parent-child relationships:
//
//   - Parent: parent node (nil for root)
//   - ParentIndex: index in parent's array/object
//   - ParentField: field name if parent is object
//   - Fields: field names (for ObjectType)
//   - Values: child values (for ObjectType and ArrayType)
//
// Use Path() to get a JSONPath-style path string:
//
//	path := node.Path() // e.g., "$.foo.bar[0]"
//
// # Thread Safety
//
// Node structures are not thread-safe. Promise and Feed are: their producer
// methods may be called from any goroutine while the encoder consumes.
//
// # Related Packages
//
//   - github.com/awaitjson/go-awaitjson/encode - Encodes IR trees to fragment streams
//   - github.com/awaitjson/go-awaitjson/gomap - Converts Go values to IR trees
//   - github.com/awaitjson/go-awaitjson/eval - Binds deferred expressions into IR trees
package ir
