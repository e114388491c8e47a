//go:build !linux

package capture

import (
	"context"
	"errors"

	"github.com/scitags/nlmsg-go/netlink"
)

var errNoNetlink = errors.New("netlink sockets are only available on linux")

type Monitor struct{}

func NewMonitor(conf *MonitorConfig) (*Monitor, error) {
	return nil, errNoNetlink
}

func (m *Monitor) String() string { return "netlink monitor" }

func (m *Monitor) Family() netlink.Family { return netlink.FamilyRoute }

func (m *Monitor) Run(ctx context.Context, out chan<- []byte) error { return errNoNetlink }

func (m *Monitor) Close() error { return nil }
