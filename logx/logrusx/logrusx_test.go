package logrusx

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_TagsComponentAndFormats(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	adapted := New(l)
	adapted.Warnf("entry %s references missing group %d", "Gonk", 7)

	out := buf.String()
	assert.Contains(t, out, "component=kdbv1")
	assert.Contains(t, out, `entry Gonk references missing group 7`)
	assert.Contains(t, out, "level=warning")
}

func TestNew_NilLoggerDefaultsToStandard(t *testing.T) {
	assert.NotPanics(t, func() {
		New(nil).Warnf("fallback logger in use")
	})
}
