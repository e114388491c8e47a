package netlink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrTruncated signals there are not enough bytes for the structure
	// being decoded.
	ErrTruncated = errors.New("netlink: truncated data")

	// ErrInvalidLength signals a length field contradicting either the
	// minimum size of a structure or the buffer it was read from.
	ErrInvalidLength = errors.New("netlink: invalid length")

	errNoByteOrder = errors.New("netlink: no byte order provided")
)

// The readBuffer is based on the one found in
// github.com/vishvananda/netlink/socket_linux.go. Callers must check
// the available length up front: Next() will panic on short buffers.
type readBuffer struct {
	Bytes []byte
	pos   int
	order binary.ByteOrder
}

func (b *readBuffer) Next(n int) []byte {
	s := b.Bytes[b.pos : b.pos+n]
	b.pos += n
	return s
}

func (b *readBuffer) Uint16() uint16 { return b.order.Uint16(b.Next(2)) }
func (b *readBuffer) Uint32() uint32 { return b.order.Uint32(b.Next(4)) }

// remaining returns how many bytes are left in b from offset, being 0 for
// offsets outside of b.
func remaining(b []byte, offset int) int {
	if offset < 0 || offset > len(b) {
		return 0
	}
	return len(b) - offset
}

// DecodeHeader decodes the struct nlmsghdr starting at b[offset]. It only
// checks the length field against HeaderLen: making sure the whole message
// is within b is up to the caller.
func DecodeHeader(b []byte, offset int, order binary.ByteOrder) (Header, error) {
	if order == nil {
		return Header{}, errNoByteOrder
	}

	if n := remaining(b, offset); n < HeaderLen {
		return Header{}, fmt.Errorf("%w: header short read (%d); want %d", ErrTruncated, n, HeaderLen)
	}

	rb := readBuffer{Bytes: b, pos: offset, order: order}

	h := Header{}
	h.Length = rb.Uint32()
	h.Type = HeaderType(rb.Uint16())
	h.Flags = HeaderFlags(rb.Uint16())
	h.Sequence = rb.Uint32()
	h.PortID = rb.Uint32()

	if h.Length < HeaderLen {
		return Header{}, fmt.Errorf("%w: header length %d is below %d", ErrInvalidLength, h.Length, HeaderLen)
	}

	return h, nil
}

// AppendHeader appends the wire representation of h to b.
func AppendHeader(b []byte, h Header, order binary.ByteOrder) []byte {
	var raw [HeaderLen]byte
	order.PutUint32(raw[0:4], h.Length)
	order.PutUint16(raw[4:6], uint16(h.Type))
	order.PutUint16(raw[6:8], uint16(h.Flags))
	order.PutUint32(raw[8:12], h.Sequence)
	order.PutUint32(raw[12:16], h.PortID)
	return append(b, raw[:]...)
}

// EncodeHeader returns the HeaderLen bytes making up h.
func EncodeHeader(h Header, order binary.ByteOrder) []byte {
	return AppendHeader(make([]byte, 0, HeaderLen), h, order)
}

// DecodeErrorPayload decodes the struct nlmsgerr starting at b[offset],
// where available is the size of the payload region as given by the
// envelope. Errors decoding the embedded header are returned as they are.
func DecodeErrorPayload(b []byte, offset int, available int, order binary.ByteOrder) (ErrorPayload, error) {
	if order == nil {
		return ErrorPayload{}, errNoByteOrder
	}

	if available < ErrorPayloadLen {
		return ErrorPayload{}, fmt.Errorf("%w: error payload short read (%d); want %d", ErrTruncated, available, ErrorPayloadLen)
	}

	if n := remaining(b, offset); n < available {
		return ErrorPayload{}, fmt.Errorf("%w: error payload claims %d bytes but only %d are left", ErrTruncated, available, n)
	}

	rb := readBuffer{Bytes: b, pos: offset, order: order}
	code := int32(rb.Uint32())

	orig, err := DecodeHeader(b, offset+4, order)
	if err != nil {
		return ErrorPayload{}, err
	}

	return ErrorPayload{Code: code, Original: orig}, nil
}

func decodeError(h Header, payload []byte, order binary.ByteOrder) (Message, error) {
	p, err := DecodeErrorPayload(payload, 0, len(payload), order)
	if err != nil {
		return nil, err
	}

	m := &ErrorMessage{Header: h, Payload: p}
	if len(payload) > ErrorPayloadLen {
		m.Trailer = bytes.Clone(payload[ErrorPayloadLen:])
	}
	return m, nil
}

// Older kernels send NLMSG_DONE without a payload. Newer ones always
// include the int carrying the result of the dump.
func decodeDone(h Header, payload []byte, order binary.ByteOrder) (Message, error) {
	switch {
	case len(payload) == 0:
		return &DoneMessage{Header: h}, nil
	case len(payload) < 4:
		return nil, fmt.Errorf("%w: done payload short read (%d); want 4", ErrTruncated, len(payload))
	}

	return &DoneMessage{Header: h, Code: int32(order.Uint32(payload[:4]))}, nil
}

func decodeGeneric(h Header, payload []byte, _ binary.ByteOrder) (Message, error) {
	return &GenericMessage{Header: h, Payload: bytes.Clone(payload)}, nil
}
