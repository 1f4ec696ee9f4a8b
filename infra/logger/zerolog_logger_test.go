package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerLevelOverride(t *testing.T) {
	t.Setenv("SOLSITE_LOG_LEVEL", "error")
	l := NewZerologLogger("test")
	assert.NotNil(t, l)
	// Suppressed levels must still be safe to call.
	l.Debugf("suppressed")
	l.Infof("suppressed")
	l.Errorf("emitted")

	t.Setenv("SOLSITE_LOG_LEVEL", "not-a-level")
	assert.NotNil(t, NewZerologLogger("test"))
}
