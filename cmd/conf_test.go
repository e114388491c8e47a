package main

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scitags/nlmsg-go/internal/api"
	"github.com/scitags/nlmsg-go/internal/capture"
	"github.com/scitags/nlmsg-go/internal/metrics"
	"github.com/scitags/nlmsg-go/netlink"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: logReplacements,
	}))
	slog.SetDefault(logger)
}

func TestReadConf(t *testing.T) {
	tests := map[string]*Config{
		"full.yaml": {
			ByteOrder: "little",
			Family:    "route",
			Verbosity: "lean",
			Api:       &api.Config{Log: true, BindAddress: "0.0.0.0", BindPort: 8000, MaxBodyBytes: 1 << 20},
			Metrics:   &metrics.Config{Log: false, BindAddress: "127.0.0.1", Port: 9100},
			Monitor: &capture.MonitorConfig{
				Family:     "route",
				Groups:     []string{"neigh", "link"},
				BufferSize: 32,
			},
			Watch: &capture.WatchConfig{
				Directory: "/tmp/captures",
				MaxEvents: 5,
				Suffixes:  []string{".bin", ".hex"},
			},
		},
		"minimal.yaml": {
			ByteOrder: "native",
			Family:    "sock_diag",
			Verbosity: "structs",
		},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ReadConf(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("error parsing %q: %v", name, err)
			}

			t.Logf("\n%s", got)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("configuration mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadConfErrors(t *testing.T) {
	for _, name := range []string{"bad-order.yaml", "bad-family.yaml", "bad-verbosity.yaml"} {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadConf(filepath.Join("testdata", name)); err == nil {
				t.Errorf("managed to parse %q", name)
			}
		})
	}

	if _, err := ReadConf(filepath.Join("testdata", "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v; want fs.ErrNotExist", err)
	}
}

func TestLoadConf(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "conf.yaml")

	c, err := loadConf(missing, false)
	if err != nil {
		t.Fatalf("error falling back to the defaults: %v", err)
	}
	if c.Order() != netlink.NativeEndian || c.NetlinkFamily() != netlink.FamilyRoute {
		t.Errorf("unexpected defaults:\n%s", c)
	}

	if _, err := loadConf(missing, true); err == nil {
		t.Errorf("explicitly requested configurations must exist")
	}
}

func TestConfAccessors(t *testing.T) {
	c, err := ReadConf(filepath.Join("testdata", "full.yaml"))
	if err != nil {
		t.Fatalf("error parsing full.yaml: %v", err)
	}

	if c.Order() != binary.LittleEndian {
		t.Errorf("got %v; want little endian", c.Order())
	}
	if c.NetlinkFamily() != netlink.FamilyRoute {
		t.Errorf("got %v; want route", c.NetlinkFamily())
	}
}
