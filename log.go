package quickcheck

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("quickcheck_logger")

// WithLogger stores a structured logger on the context; the driver will use
// it for per-trial and shrink reporting.
func WithLogger(ctx context.Context, l logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Logger returns the structured logger from the context, falling back to the
// logrus standard logger.
func Logger(ctx context.Context) logrus.FieldLogger {
	l, ok := ctx.Value(loggerKey).(logrus.FieldLogger)
	if !ok {
		return logrus.StandardLogger()
	}
	return l
}

// LoggerWithFields returns a child context whose logger carries the extra
// fields, along with that logger.
func LoggerWithFields(ctx context.Context, fields logrus.Fields) (context.Context, logrus.FieldLogger) {
	l := Logger(ctx).WithFields(fields)
	return WithLogger(ctx, l), l
}
