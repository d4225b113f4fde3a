package acl

import (
	"code.cloudfoundry.org/acl/logging"
	"code.cloudfoundry.org/acl/logx"
)

type Option func(*options)

func WithLogger(logger logx.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithSecurityLogger(logger SecurityLogger) Option {
	return func(o *options) {
		o.securityLogger = logger
	}
}

type options struct {
	logger         logx.Logger
	securityLogger SecurityLogger
}

type emptySecurityLogger struct{}

func (l *emptySecurityLogger) Log(string, string, ...logging.CustomExtension) {}
