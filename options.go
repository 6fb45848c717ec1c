package duocache

import "github.com/hupe1980/duocache/resource"

type options struct {
	logger    *Logger
	ioLimiter *resource.Controller
}

// Option configures NewCache beyond the plain Config fields — today
// that means the logging sink and disk IO limiter, kept out of Config
// so callers building a Config from YAML never have to serialize a
// *Logger or *resource.Controller.
type Option func(*options)

// WithLogger configures structured logging for cache operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIOLimiter throttles every disk tier read and write through rc's
// byte-rate budget. Pass nil (the default) to leave disk IO unthrottled.
func WithIOLimiter(rc *resource.Controller) Option {
	return func(o *options) {
		o.ioLimiter = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
