package main

import (
	"log/slog"
	"path/filepath"

	"github.com/scitags/nlmsg-go/types"
)

func logReplacements(groups []string, a slog.Attr) slog.Attr {
	// Remove time.
	if a.Key == slog.TimeKey && len(groups) == 0 && !logTimeFlag {
		return slog.Attr{}
	}

	// Remove the directory from the source's filename.
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
	}

	// Show TRACE rather than DEBUG-1
	if a.Key == slog.LevelKey && len(groups) == 0 {
		level, ok := a.Value.Any().(slog.Level)
		if ok {
			return slog.Attr{Key: a.Key, Value: slog.StringValue(types.LevelName(level))}
		}
	}

	return a
}
