package flightdb

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	_ Logger = (*nopLogger)(nil)
	_ Logger = (*zap.SugaredLogger)(nil)
)

// Logger is the structured logger used by the Store and Manager.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (n *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (n *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (n *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}

// NewLogger builds a console zap logger writing to stderr. Only warnings and
// errors are printed unless verbose is set.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar().Named("flightdb"), nil
}
