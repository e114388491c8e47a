package netlink

import (
	"encoding/binary"
	"fmt"
)

// controlDecoders handle the types shared by every family.
var controlDecoders = map[HeaderType]DecodeFunc{
	NLMSG_ERROR: decodeError,
	NLMSG_DONE:  decodeDone,
}

// Decoder turns a buffer into typed messages. It holds no state beyond its
// configuration, so a single Decoder can be shared between goroutines.
type Decoder struct {
	order    binary.ByteOrder
	registry *Registry
}

// NewDecoder returns a Decoder interpreting fields in the given byte order
// and dispatching non-control types through registry, which can be nil.
func NewDecoder(order binary.ByteOrder, registry *Registry) *Decoder {
	return &Decoder{order: order, registry: registry}
}

func (d *Decoder) ByteOrder() binary.ByteOrder { return d.order }

// Parse decodes the message starting at b[offset] within the given family.
// It fails on structural problems only: truncated data, a declared length
// not fitting in b or an error from the payload decoder. Types without a
// decoder come back as a *GenericMessage.
func (d *Decoder) Parse(b []byte, offset int, family Family) (Message, error) {
	h, err := DecodeHeader(b, offset, d.order)
	if err != nil {
		return nil, err
	}

	if n := remaining(b, offset); uint64(h.Length) > uint64(n) {
		return nil, fmt.Errorf("%w: message length %d exceeds the %d bytes available", ErrInvalidLength, h.Length, n)
	}

	payload := b[offset+HeaderLen : offset+int(h.Length)]

	fn, ok := controlDecoders[h.Type]
	if !ok {
		fn, ok = d.registry.Lookup(family, h.Type)
	}
	if !ok {
		fn = decodeGeneric
	}

	m, err := fn(h, payload, d.order)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s payload: %w", h.Type.Name(family), err)
	}

	return m, nil
}

// Parse decodes a single message with no family-specific decoders. Only
// NLMSG_ERROR and NLMSG_DONE get a dedicated record.
func Parse(b []byte, offset int, family Family, order binary.ByteOrder) (Message, error) {
	return NewDecoder(order, nil).Parse(b, offset, family)
}
