package encode

import "github.com/awaitjson/go-awaitjson/stream"

type settings struct {
	colors *stream.Colors
	ascii  bool
	strict bool
}

// Opt configures an encode run.
type Opt func(*settings)

// WithColors wraps output tokens in terminal color escapes.
func WithColors(c *stream.Colors) Opt {
	return func(s *settings) { s.colors = c }
}

// WithASCIIOnly escapes all non-ASCII characters in strings and keys.
func WithASCIIOnly(v bool) Opt {
	return func(s *settings) { s.ascii = v }
}

// WithStrictNumbers rejects NaN and the infinities instead of writing
// their literal texts.
func WithStrictNumbers(v bool) Opt {
	return func(s *settings) { s.strict = v }
}
