package netlink

import (
	"fmt"
	"strings"
	"syscall"
)

// HeaderType is the nlmsg_type of a message. Its meaning depends on the
// Family the message belongs to unless it's below NLMSG_MIN_TYPE.
type HeaderType uint16

func (t HeaderType) String() string {
	s, ok := controlTypeName[t]
	if !ok {
		return fmt.Sprintf("%#x", uint16(t))
	}
	return s
}

// Name returns the symbolic name of the type within a family, falling back
// to the numeric value for types we know nothing about.
func (t HeaderType) Name(f Family) string {
	if s, ok := controlTypeName[t]; ok {
		return s
	}
	if s, ok := familyTypeName[f][t]; ok {
		return s
	}
	return t.String()
}

// HeaderFlags is the nlmsg_flags bitmask. Bits above 0xFF are modifiers
// whose meaning depends on the type, so String() only names the generic
// ones and prints whatever's left as a number.
type HeaderFlags uint16

func (f HeaderFlags) String() string {
	if f == 0 {
		return "0"
	}

	parts := []string{}
	rest := f
	for _, fn := range flagName {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint16(rest)))
	}
	return strings.Join(parts, "|")
}

// Family identifies a netlink protocol such as NETLINK_ROUTE. Different
// families reuse the same type numbers for different payloads.
type Family int

func (f Family) String() string {
	s, ok := familyName[f]
	if !ok {
		return fmt.Sprintf("family(%d)", int(f))
	}
	return s
}

// ParseFamily maps a family name as printed by String() back to a Family.
func ParseFamily(s string) (Family, bool) {
	for f, name := range familyName {
		if strings.EqualFold(s, name) {
			return f, true
		}
	}
	return 0, false
}

// Header is the Go counterpart of struct nlmsghdr.
type Header struct {
	// Length of the message, including this header.
	Length uint32

	Type  HeaderType
	Flags HeaderFlags

	Sequence uint32

	// PortID is the nlmsg_pid field: 0 for the kernel, usually the process
	// ID for userspace sockets.
	PortID uint32
}

// AlignedLength returns the length rounded up to NLMSG_ALIGNTO, that is
// the offset of the next message in a multi-message buffer.
func (h Header) AlignedLength() int {
	return (int(h.Length) + NLMSG_ALIGNTO - 1) &^ (NLMSG_ALIGNTO - 1)
}

func (h Header) String() string {
	return fmt.Sprintf("len=%d type=%s flags=%s seq=%d pid=%d", h.Length, h.Type, h.Flags, h.Sequence, h.PortID)
}

// ErrorPayload is the Go counterpart of struct nlmsgerr.
type ErrorPayload struct {
	// Code is 0 for an acknowledgement and a negated errno otherwise.
	Code int32

	// Original is the header of the request that triggered the reply.
	Original Header
}

// IsAck reports whether the payload acknowledges a request without errors.
func (e ErrorPayload) IsAck() bool {
	return e.Code == 0
}

// Err maps the code to a syscall.Errno. It returns nil for
// acknowledgements.
func (e ErrorPayload) Err() error {
	if e.Code == 0 {
		return nil
	}
	if e.Code < 0 {
		return syscall.Errno(-e.Code)
	}
	return syscall.Errno(e.Code)
}

// Message is a decoded netlink message. Use a type switch to get to the
// concrete record: this package produces *ErrorMessage, *DoneMessage and
// *GenericMessage, and decoders in a Registry can add their own.
type Message interface {
	MsgHeader() Header
}

// ErrorMessage is an NLMSG_ERROR message: either an acknowledgement
// (Payload.Code == 0) or the report of a failed request.
type ErrorMessage struct {
	Header  Header
	Payload ErrorPayload

	// Trailer holds whatever follows struct nlmsgerr. Unless NLM_F_CAPPED
	// is set this starts with the payload of the original request and,
	// with NLM_F_ACK_TLVS, goes on with extended ack attributes.
	Trailer []byte
}

func (m *ErrorMessage) MsgHeader() Header { return m.Header }

// DoneMessage is the NLMSG_DONE message closing a multi-part dump.
type DoneMessage struct {
	Header Header
	Code   int32
}

func (m *DoneMessage) MsgHeader() Header { return m.Header }

// GenericMessage is what we get for types no decoder claims. The payload
// is kept exactly as it came in.
type GenericMessage struct {
	Header  Header
	Payload []byte
}

func (m *GenericMessage) MsgHeader() Header { return m.Header }
