package token

import "errors"

var (
	ErrBadNumber = errors.New("bad number")
)
