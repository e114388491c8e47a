package types

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	LevelTrace = slog.Level(slog.LevelDebug - 1)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var logLevelMap = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// ParseLogLevel maps level names such as "debug" onto a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	l, ok := logLevelMap[strings.ToLower(s)]
	if !ok {
		return LevelInfo, fmt.Errorf("wrong log level %q", s)
	}
	return l, nil
}

// LevelName is the inverse of ParseLogLevel. It's meant to be used with
// slog.HandlerOptions.ReplaceAttr so that LevelTrace doesn't show up as
// DEBUG-1.
func LevelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}
