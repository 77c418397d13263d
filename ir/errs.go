package ir

import "errors"

var (
	// ErrUnsupportedType marks nodes the classifier rejects: unknown type
	// codes, pending nodes without waiters, malformed containers.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFeedStopped is returned by Feed.Send after the consumer abandoned
	// the feed.
	ErrFeedStopped = errors.New("feed stopped")

	// ErrKeyCoercion marks a value that cannot be rendered as an object
	// key, such as an object or a sequence with non-scalar elements.
	ErrKeyCoercion = errors.New("cannot use value as object key")
)
