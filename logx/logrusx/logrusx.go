// Package logrusx adapts github.com/sirupsen/logrus to the kdbv1 logx.Logger interface.
package logrusx

import (
	"github.com/sirupsen/logrus"

	"github.com/go-kdbv1/kdbv1/logx"
)

type adapter struct {
	entry *logrus.Entry
}

// New wraps a *logrus.Logger as a logx.Logger, tagging every warning with a
// "component=kdbv1" field. A nil l defaults to logrus.StandardLogger().
func New(l *logrus.Logger) logx.Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}

	return adapter{entry: l.WithField("component", "kdbv1")}
}

func (a adapter) Warnf(format string, args ...any) {
	a.entry.Warnf(format, args...)
}
