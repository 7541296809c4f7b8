package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/stroyhub/backoffice/pkg/constants"
)

var ErrNoLogger = errors.New("logger not found")

// UseLogger returns the request-scoped logger entry. The logging
// middleware is responsible for putting it there.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.(*logrus.Entry)
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}
