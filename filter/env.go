package filter

import (
	"os"
)

const DefaultEnvPrefix = "DEFLOG"

type envOptions struct {
	prefix string
	crate  string
	spec   *string
}

type Option func(*envOptions)

// WithEnvPrefix reads <prefix>_LOG and <prefix>_CRATE instead of the
// DEFLOG_ variables.
func WithEnvPrefix(prefix string) Option {
	return func(o *envOptions) {
		o.prefix = prefix
	}
}

// WithCrate overrides the crate name from the environment.
func WithCrate(crate string) Option {
	return func(o *envOptions) {
		o.crate = crate
	}
}

// WithSpec overrides the specification from the environment.
func WithSpec(spec string) Option {
	return func(o *envOptions) {
		o.spec = &spec
	}
}

// FromEnv builds the filter from DEFLOG_LOG and DEFLOG_CRATE. An unset
// DEFLOG_LOG means no specification; a set but empty one is parsed, and
// fails.
func FromEnv(opts ...Option) (*EnvFilter, error) {
	o := envOptions{prefix: DefaultEnvPrefix}

	for _, opt := range opts {
		opt(&o)
	}

	if o.crate == "" {
		o.crate = os.Getenv(o.prefix + "_CRATE")
	}

	if o.crate == "" {
		return nil, ErrMissingCrate
	}

	if o.spec == nil {
		if spec, ok := os.LookupEnv(o.prefix + "_LOG"); ok {
			o.spec = &spec
		}
	}

	if o.spec == nil {
		return New(o.crate), nil
	}

	return Parse(*o.spec, o.crate)
}
