package stream

import (
	"github.com/awaitjson/go-awaitjson/ir"
)

// EncodeNode writes a fully resolved tree through e in declaration order.
// Pending and stream nodes are rejected, resolve them first or use the
// incremental encoder in package encode.
func EncodeNode(e *Encoder, n *ir.Node) error {
	kind, err := ir.Classify(n)
	if err != nil {
		return err
	}
	switch kind {
	case ir.KindScalar:
		return e.WriteScalar(n)
	case ir.KindObject:
		if err := e.BeginObject(); err != nil {
			return err
		}
		for i, field := range n.Fields {
			if err := e.WriteNodeKey(field); err != nil {
				return err
			}
			if err := EncodeNode(e, n.Values[i]); err != nil {
				return err
			}
		}
		return e.EndObject()
	case ir.KindArray:
		if err := e.BeginArray(); err != nil {
			return err
		}
		for _, elem := range n.Values {
			if err := EncodeNode(e, elem); err != nil {
				return err
			}
		}
		return e.EndArray()
	default:
		return &Error{Msg: "unresolved node: " + kind.String()}
	}
}
