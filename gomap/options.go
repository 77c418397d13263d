package gomap

// config collects the conversion options.
type config struct {
	defaultFn func(v interface{}) (interface{}, error)
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures FromGo.
type Option func(*config)

// WithDefault installs a hook for values FromGo does not know how to
// convert. The hook returns a replacement value, which is converted in
// the original's place. Without a hook such values are an error.
func WithDefault(fn func(v interface{}) (interface{}, error)) Option {
	return func(cfg *config) {
		cfg.defaultFn = fn
	}
}
