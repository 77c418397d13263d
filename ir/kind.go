package ir

import "fmt"

// Kind is the encoder-facing classification of a node. Every well-formed
// node maps to exactly one kind.
type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindArray
	KindPending
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindPending:
		return "Pending"
	case KindStream:
		return "Stream"
	}
	return "<unknown kind>"
}

// Classify maps a node to its kind, rejecting malformed nodes with
// ErrUnsupportedType. It is the single entry point deciding how a node is
// encoded; pending nodes must be resolved through their Waiter and stream
// nodes drained through their Source before their payload is usable.
func Classify(n *Node) (Kind, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrUnsupportedType)
	}
	switch n.Type {
	case NullType, StringType, BoolType:
		return KindScalar, nil
	case NumberType:
		if n.Int64 == nil && n.Float64 == nil && n.Number == "" {
			return 0, fmt.Errorf("%w: number node without a value", ErrUnsupportedType)
		}
		return KindScalar, nil
	case ObjectType:
		if len(n.Fields) != len(n.Values) {
			return 0, fmt.Errorf("%w: object with %d fields and %d values",
				ErrUnsupportedType, len(n.Fields), len(n.Values))
		}
		return KindObject, nil
	case ArrayType:
		return KindArray, nil
	case PendingType:
		if n.Waiter == nil {
			return 0, fmt.Errorf("%w: pending node without a waiter", ErrUnsupportedType)
		}
		return KindPending, nil
	case StreamType:
		if n.Source == nil {
			return 0, fmt.Errorf("%w: stream node without a source", ErrUnsupportedType)
		}
		return KindStream, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedType, int(n.Type))
}
