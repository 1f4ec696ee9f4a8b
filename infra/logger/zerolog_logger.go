package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a logger scoped to one solsite component. Every
// line carries the service and component fields so runs are filterable when
// several tools log to the same collector. APP_ENV=dev switches to the
// human-readable console writer; SOLSITE_LOG_LEVEL overrides the info
// default (e.g. "debug" to see per-run portfolio economics).
func NewZerologLogger(component string) Logger {
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("SOLSITE_LOG_LEVEL"))); err == nil && lv != zerolog.NoLevel {
		level = lv
	}
	var out io.Writer = os.Stdout
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", "solsite").
		Str("component", component).
		Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
