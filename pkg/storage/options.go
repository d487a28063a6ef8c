package storage

import "github.com/sirupsen/logrus"

type options struct {
	Logger *logrus.Entry
}

type Option func(*options)

// WithLogger defines the logger used to mirror warnings, errors and probe
// results. Defaults to the standard logrus logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(o *options) { o.Logger = logger }
}

func newOptions(opts ...Option) *options {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	return option
}
