//go:build linux

package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mdnl "github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"

	"github.com/scitags/nlmsg-go/netlink"
)

// Multicast groups of the NETLINK_ROUTE family; check rtnetlink(7).
var routeGroups = map[string]uint32{
	"link":        unix.RTNLGRP_LINK,
	"notify":      unix.RTNLGRP_NOTIFY,
	"neigh":       unix.RTNLGRP_NEIGH,
	"tc":          unix.RTNLGRP_TC,
	"ipv4-ifaddr": unix.RTNLGRP_IPV4_IFADDR,
	"ipv4-mroute": unix.RTNLGRP_IPV4_MROUTE,
	"ipv4-route":  unix.RTNLGRP_IPV4_ROUTE,
	"ipv4-rule":   unix.RTNLGRP_IPV4_RULE,
	"ipv6-ifaddr": unix.RTNLGRP_IPV6_IFADDR,
	"ipv6-mroute": unix.RTNLGRP_IPV6_MROUTE,
	"ipv6-route":  unix.RTNLGRP_IPV6_ROUTE,
	"ipv6-rule":   unix.RTNLGRP_IPV6_RULE,
	"nsid":        unix.RTNLGRP_NSID,
}

// Monitor listens for multicast notifications on a netlink socket.
type Monitor struct {
	conf   MonitorConfig
	family netlink.Family
	conn   *mdnl.Conn
}

func resolveGroups(family netlink.Family, names []string) ([]uint32, error) {
	groups := make([]uint32, 0, len(names))
	for _, name := range names {
		if family != netlink.FamilyRoute {
			return nil, fmt.Errorf("no multicast groups known for family %s", family)
		}
		g, ok := routeGroups[name]
		if !ok {
			return nil, fmt.Errorf("unknown multicast group %q", name)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// NewMonitor opens a netlink socket for the configured family and joins
// the configured multicast groups. The returned Monitor should be closed
// to avoid leaking fds.
func NewMonitor(conf *MonitorConfig) (*Monitor, error) {
	if conf == nil {
		conf = &DefaultMonitorConfig
	}

	family, ok := netlink.ParseFamily(conf.Family)
	if !ok {
		return nil, fmt.Errorf("unknown netlink family %q", conf.Family)
	}

	groups, err := resolveGroups(family, conf.Groups)
	if err != nil {
		return nil, err
	}

	conn, err := mdnl.Dial(int(family), &mdnl.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not open netlink socket: %w", err)
	}

	for i, g := range groups {
		if err := conn.JoinGroup(g); err != nil {
			conn.Close()
			return nil, fmt.Errorf("could not join group %q: %w", conf.Groups[i], err)
		}
	}

	return &Monitor{conf: *conf, family: family, conn: conn}, nil
}

func (m *Monitor) String() string {
	return "netlink monitor"
}

// Family returns the family the socket was opened on.
func (m *Monitor) Family() netlink.Family { return m.family }

// Run pushes the raw bytes of every batch of messages received onto out
// until ctx is done. The messages have already been split apart by
// github.com/mdlayher/netlink, so we put them back together in the
// kernel's native byte order to hand them to the decoder as they came in.
func (m *Monitor) Run(ctx context.Context, out chan<- []byte) error {
	slog.Debug("running the netlink monitor", "family", m.family, "groups", m.conf.Groups)

	// Unblock Receive() as soon as we're done.
	stop := context.AfterFunc(ctx, func() {
		if err := m.conn.SetReadDeadline(time.Now()); err != nil {
			slog.Warn("error setting the read deadline", "err", err)
		}
	})
	defer stop()

	for {
		msgs, err := m.conn.Receive()
		if err != nil {
			if ctx.Err() != nil {
				slog.Debug("cleanly exiting the netlink monitor")
				return nil
			}

			var opErr *mdnl.OpError
			if errors.As(err, &opErr) && errors.Is(opErr.Err, unix.ENOBUFS) {
				slog.Warn("messages were dropped by the kernel", "err", err)
				continue
			}
			return fmt.Errorf("error receiving messages: %w", err)
		}

		raw := []byte{}
		for _, msg := range msgs {
			raw = appendMessage(raw, msg)
		}

		select {
		case out <- raw:
		case <-ctx.Done():
			slog.Debug("cleanly exiting the netlink monitor")
			return nil
		}
	}
}

func appendMessage(b []byte, msg mdnl.Message) []byte {
	h := netlink.Header{
		Length:   uint32(netlink.HeaderLen + len(msg.Data)),
		Type:     netlink.HeaderType(msg.Header.Type),
		Flags:    netlink.HeaderFlags(msg.Header.Flags),
		Sequence: msg.Header.Sequence,
		PortID:   msg.Header.PID,
	}
	b = netlink.AppendHeader(b, h, netlink.NativeEndian)
	b = append(b, msg.Data...)

	// Pad up to the next message.
	for len(b)%netlink.NLMSG_ALIGNTO != 0 {
		b = append(b, 0)
	}
	return b
}

func (m *Monitor) Close() error {
	slog.Debug("closing the netlink monitor")
	return m.conn.Close()
}
