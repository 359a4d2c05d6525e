package main

import "github.com/sirupsen/logrus"

// logrusLogger adapts logrus to the small Logger surface the packages
// take.
type logrusLogger struct {
	log *logrus.Logger
}

func newLogger(debug bool) *logrusLogger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return &logrusLogger{log: log}
}

func (l *logrusLogger) Debug(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *logrusLogger) Info(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *logrusLogger) Error(format string, args ...any) {
	l.log.Errorf(format, args...)
}
