package smc

import "github.com/sirupsen/logrus"

// Reporter receives non-fatal failures that are handled locally instead
// of being returned to the caller (open failures before a best-effort
// operation, reset write failures). Each caught failure is reported
// exactly once.
type Reporter interface {
	Report(msg string, err error)
}

// LogReporter reports to the process log.
type LogReporter struct{}

func (LogReporter) Report(msg string, err error) {
	logrus.WithError(err).Error(msg)
}
