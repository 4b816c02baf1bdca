package logger

import "go.uber.org/zap"

// EngineLogger adapts a zap logger to the calculation engine's
// printf-style logging interface.
type EngineLogger struct {
	sugar *zap.SugaredLogger
}

// NewEngineLogger wraps the given zap logger. Passing nil uses the
// global logger, which must have been initialized via InitLogger.
func NewEngineLogger(l *zap.Logger) *EngineLogger {
	if l == nil {
		l = Log
	}
	return &EngineLogger{sugar: l.Sugar()}
}

func (e *EngineLogger) Debugf(format string, args ...interface{}) {
	e.sugar.Debugf(format, args...)
}

func (e *EngineLogger) Infof(format string, args ...interface{}) {
	e.sugar.Infof(format, args...)
}

func (e *EngineLogger) Warnf(format string, args ...interface{}) {
	e.sugar.Warnf(format, args...)
}

func (e *EngineLogger) Errorf(format string, args ...interface{}) {
	e.sugar.Errorf(format, args...)
}
