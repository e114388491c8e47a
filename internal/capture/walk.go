package capture

import (
	"fmt"

	"github.com/scitags/nlmsg-go/netlink"
)

// Frame is a message found at Offset within a buffer.
type Frame struct {
	Offset  int
	Message netlink.Message
}

// Walk decodes the consecutive messages making up b and passes them on to
// fn, stopping early if fn returns false. Messages are NLMSG_ALIGNTO
// aligned, so the padding after each one is skipped. Given a malformed
// message leaves us with no way of finding the next one, Walk stops at
// the first error and returns it.
func Walk(d *netlink.Decoder, b []byte, family netlink.Family, fn func(Frame) bool) error {
	offset := 0
	for offset < len(b) {
		msg, err := d.Parse(b, offset, family)
		if err != nil {
			return fmt.Errorf("error decoding message at offset %d: %w", offset, err)
		}

		if !fn(Frame{Offset: offset, Message: msg}) {
			return nil
		}

		offset += msg.MsgHeader().AlignedLength()
	}
	return nil
}

// Collect is a convenience wrapper around Walk returning every frame found
// before an error, if any.
func Collect(d *netlink.Decoder, b []byte, family netlink.Family) ([]Frame, error) {
	frames := []Frame{}
	err := Walk(d, b, family, func(f Frame) bool {
		frames = append(frames, f)
		return true
	})
	return frames, err
}
