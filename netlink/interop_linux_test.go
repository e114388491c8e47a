//go:build linux

package netlink

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vishvananda/netlink/nl"
	"golang.org/x/sys/unix"
)

// Requests serialised by github.com/vishvananda/netlink/nl are in the
// host's byte order.
func TestVishvanandaRequest(t *testing.T) {
	req := nl.NewNetlinkRequest(unix.RTM_GETLINK, unix.NLM_F_DUMP)
	req.AddData(nl.NewIfInfomsg(unix.AF_UNSPEC))

	raw := req.Serialize()

	m, err := Parse(raw, 0, FamilyRoute, NativeEndian)
	if err != nil {
		t.Fatalf("error parsing the request: %v", err)
	}

	want := Header{
		Length:   uint32(len(raw)),
		Type:     RTM_GETLINK,
		Flags:    NLM_F_REQUEST | NLM_F_DUMP,
		Sequence: req.Seq,
		PortID:   req.Pid,
	}
	if diff := cmp.Diff(want, m.MsgHeader()); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	gm, ok := m.(*GenericMessage)
	if !ok {
		t.Fatalf("got %T; want *GenericMessage", m)
	}
	if !bytes.Equal(gm.Payload, raw[HeaderLen:]) {
		t.Errorf("got payload %x; want %x", gm.Payload, raw[HeaderLen:])
	}

	if got := EncodeHeader(want, NativeEndian); !bytes.Equal(got, raw[:HeaderLen]) {
		t.Errorf("got %x; want %x", got, raw[:HeaderLen])
	}
}
