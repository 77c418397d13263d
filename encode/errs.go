package encode

import (
	"errors"

	"github.com/awaitjson/go-awaitjson/ir"
)

var (
	// ErrKeyCoercion mirrors ir.ErrKeyCoercion for callers that only
	// import this package.
	ErrKeyCoercion = ir.ErrKeyCoercion

	// ErrConsumed is yielded when a fragment sequence is ranged twice.
	ErrConsumed = errors.New("already consumed")
)
