package badger

import "go.uber.org/zap"

// badgerLogger routes badger's internal logging through zap. Badger is chatty
// at info level, so info is demoted to debug.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func newBadgerLogger(logger *zap.Logger) *badgerLogger {
	return &badgerLogger{sugar: logger.Named("badger").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
