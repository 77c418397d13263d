package stream

// Error represents a document structure error from the state machine or
// the encoder. Path, when set, locates the write that caused it.
type Error struct {
	Msg  string
	Path string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return e.Msg + " at " + e.Path
	}
	return e.Msg
}
