package calc

import "log/slog"

// Option is an option for evaluating expressions.
type Option interface {
	option(*evalcfg)
}

// evalcfg holds the options for one evaluation.
type evalcfg struct {
	// lenient allows input after the first complete expression.
	lenient bool
	// log receives a debug record for each token.
	log *slog.Logger
}

type (
	lenientopt struct{}
	logopt     struct{ log *slog.Logger }
)

// Lenient tells the evaluator to stop at the end of the first complete
// expression and ignore whatever follows, so that "1+1)" evaluates to 2. By
// default, anything left over is an error.
func Lenient() Option {
	return lenientopt{}
}

func (lenientopt) option(c *evalcfg) {
	c.lenient = true
}

// WithLogger logs each token the evaluator scans at debug level. A nil logger
// disables logging, which is the default.
func WithLogger(log *slog.Logger) Option {
	return logopt{log}
}

func (o logopt) option(c *evalcfg) {
	c.log = o.log
}

func options(opts []Option) evalcfg {
	var c evalcfg
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.option(&c)
	}
	return c
}
