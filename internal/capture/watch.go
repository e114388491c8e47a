package capture

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/rjeczalik/notify"
)

// Watcher reports capture files written to a directory.
type Watcher struct {
	conf   WatchConfig
	events chan notify.EventInfo
}

// NewWatcher hooks up the notifications for the configured directory. Be
// sure to call Stop() once done.
func NewWatcher(conf *WatchConfig) (*Watcher, error) {
	if conf == nil {
		conf = &DefaultWatchConfig
	}

	dir, err := filepath.Abs(conf.Directory)
	if err != nil {
		return nil, fmt.Errorf("couldn't resolve %q: %w", conf.Directory, err)
	}

	w := Watcher{conf: *conf}
	w.conf.Directory = dir

	// A buffered channel guarantees that we don't lose events even
	// if writes take place at the exact same time
	w.events = make(chan notify.EventInfo, max(conf.MaxEvents, 1))

	if err := notify.Watch(dir, w.events, notify.Create|notify.Write); err != nil {
		return nil, fmt.Errorf("couldn't watch %q: %w", dir, err)
	}

	return &w, nil
}

func (w *Watcher) wanted(path string) bool {
	if len(w.conf.Suffixes) == 0 {
		return true
	}
	for _, suffix := range w.conf.Suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Run reads every capture file as it's written and hands its contents to
// fn until ctx is done. Files failing to be read are logged and skipped.
func (w *Watcher) Run(ctx context.Context, fn func(path string, data []byte)) {
	slog.Debug("watching for captures", "dir", w.conf.Directory)
	for {
		select {
		case e := <-w.events:
			if !w.wanted(e.Path()) {
				slog.Debug("ignoring file", "path", e.Path(), "event", e.Event())
				continue
			}

			data, err := ReadFile(e.Path())
			if err != nil {
				slog.Warn("error reading capture", "path", e.Path(), "err", err)
				continue
			}
			if len(data) == 0 {
				// Creation events come before any data is written.
				continue
			}

			slog.Debug("read capture", "path", e.Path(), "event", e.Event(), "n", len(data))
			fn(e.Path(), data)
		case <-ctx.Done():
			slog.Debug("cleanly exiting the watcher")
			return
		}
	}
}

func (w *Watcher) Stop() {
	notify.Stop(w.events)
}
