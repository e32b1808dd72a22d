package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/yeqown/flightdb"
)

type managerKeyType uint

var managerContextKey managerKeyType = 0

func contextWithManager(ctx context.Context, m *flightdb.Manager) context.Context {
	return context.WithValue(ctx, managerContextKey, m)
}

func managerFromContext(ctx context.Context) *flightdb.Manager {
	v := ctx.Value(managerContextKey)
	if v == nil {
		panic("no manager in context")
	}

	return v.(*flightdb.Manager)
}

type loggerKeyType uint

var loggerContextKey loggerKeyType = 0

func contextWithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

func loggerFromContext(ctx context.Context) *zap.SugaredLogger {
	logger, _ := ctx.Value(loggerContextKey).(*zap.SugaredLogger)
	return logger
}
