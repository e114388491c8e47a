package netlink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Remove the directory from the source's filename.
			if a.Key == slog.SourceKey {
				source := a.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return a
		},
	}))
	slog.SetDefault(logger)
}

// buildMessage crafts a message with the given header fields and payload
// with a correct length.
func buildMessage(order binary.ByteOrder, typ HeaderType, flags HeaderFlags, payload []byte) []byte {
	h := Header{
		Length:   uint32(HeaderLen + len(payload)),
		Type:     typ,
		Flags:    flags,
		Sequence: 1234,
		PortID:   4321,
	}
	return append(EncodeHeader(h, order), payload...)
}

func TestParseNlmErrorOk(t *testing.T) {
	raw := mustDecodeHex(t, nlmErrorOkHex)

	msg, err := Parse(raw, 0, FamilyRoute, binary.LittleEndian)
	if err != nil {
		t.Fatalf("error parsing the message: %v", err)
	}

	errMsg, ok := msg.(*ErrorMessage)
	if !ok {
		t.Fatalf("expected an *ErrorMessage; got %T", msg)
	}

	want := &ErrorMessage{
		Header: Header{Length: 36, Type: NLMSG_ERROR, Flags: 0, Sequence: 13606, PortID: 4196},
		Payload: ErrorPayload{
			Code: 0,
			Original: Header{
				Length:   48,
				Type:     RTM_NEWNEIGH,
				Flags:    NLM_F_REQUEST | NLM_F_ACK | NLM_F_REPLACE,
				Sequence: 13606,
				PortID:   0,
			},
		},
	}
	if diff := cmp.Diff(want, errMsg); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	if msg.MsgHeader() != want.Header {
		t.Errorf("MsgHeader() returned %+v; want %+v", msg.MsgHeader(), want.Header)
	}
}

func TestParseAtOffset(t *testing.T) {
	raw := mustDecodeHex(t, nlmErrorOkHex)
	padded := append([]byte{0, 0, 0, 0}, raw...)

	msg, err := Parse(padded, 4, FamilyRoute, binary.LittleEndian)
	if err != nil {
		t.Fatalf("error parsing at an offset: %v", err)
	}
	if msg.MsgHeader().Sequence != 13606 {
		t.Errorf("unexpected header %+v", msg.MsgHeader())
	}
}

func TestParseErrorWithTrailer(t *testing.T) {
	order := binary.BigEndian

	orig := Header{Length: 20, Type: RTM_NEWADDR, Flags: NLM_F_REQUEST | NLM_F_ACK, Sequence: 7}
	trailer := []byte{1, 2, 3, 4}

	payload := order.AppendUint32(nil, uint32(0xFFFFFFEF)) // -17, i.e. EEXIST
	payload = AppendHeader(payload, orig, order)
	payload = append(payload, trailer...)

	msg, err := Parse(buildMessage(order, NLMSG_ERROR, 0, payload), 0, FamilyRoute, order)
	if err != nil {
		t.Fatalf("error parsing the message: %v", err)
	}

	errMsg, ok := msg.(*ErrorMessage)
	if !ok {
		t.Fatalf("expected an *ErrorMessage; got %T", msg)
	}
	if errMsg.Payload.Code != -17 {
		t.Errorf("expected code -17; got %d", errMsg.Payload.Code)
	}
	if errMsg.Payload.Original != orig {
		t.Errorf("nested header mismatch: got %+v; want %+v", errMsg.Payload.Original, orig)
	}
	if !bytes.Equal(errMsg.Trailer, trailer) {
		t.Errorf("trailer mismatch: got %v; want %v", errMsg.Trailer, trailer)
	}
}

func TestParseFailures(t *testing.T) {
	raw := mustDecodeHex(t, nlmErrorOkHex)
	order := binary.LittleEndian

	// Declares 37 bytes while only 36 are there.
	tooLong := bytes.Clone(raw)
	order.PutUint32(tooLong[0:4], 37)

	// A well formed envelope whose error payload is 19 bytes long.
	shortPayload := buildMessage(order, NLMSG_ERROR, 0, make([]byte, 19))

	// The nested header declares a length of 4.
	badNested := bytes.Clone(raw)
	order.PutUint32(badNested[20:24], 4)

	tests := map[string]struct {
		b    []byte
		want error
	}{
		"shortBuffer":    {raw[:HeaderLen-1], ErrTruncated},
		"exceedsBuffer":  {tooLong, ErrInvalidLength},
		"truncatedSlice": {raw[:30], ErrInvalidLength},
		"shortPayload":   {shortPayload, ErrTruncated},
		"badNested":      {badNested, ErrInvalidLength},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			msg, err := Parse(test.b, 0, FamilyRoute, order)
			if !errors.Is(err, test.want) {
				t.Fatalf("expected %v but got %v", test.want, err)
			}
			if msg != nil {
				t.Errorf("expected no message; got %+v", msg)
			}
		})
	}
}

func TestParseUnknownType(t *testing.T) {
	order := binary.LittleEndian
	payload := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x01}
	raw := buildMessage(order, RTM_NEWNEIGH, NLM_F_MULTI, payload)

	msg, err := Parse(raw, 0, FamilyRoute, order)
	if err != nil {
		t.Fatalf("unknown types shouldn't fail: %v", err)
	}

	gen, ok := msg.(*GenericMessage)
	if !ok {
		t.Fatalf("expected a *GenericMessage; got %T", msg)
	}

	want := &GenericMessage{
		Header:  Header{Length: uint32(HeaderLen + len(payload)), Type: RTM_NEWNEIGH, Flags: NLM_F_MULTI, Sequence: 1234, PortID: 4321},
		Payload: payload,
	}
	if diff := cmp.Diff(want, gen); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	// The record must not alias the buffer.
	raw[HeaderLen] = 0
	if gen.Payload[0] != 0xCA {
		t.Errorf("the payload is aliasing the source buffer")
	}
}

func TestParseControlTypes(t *testing.T) {
	order := binary.LittleEndian

	tests := map[string]struct {
		raw  []byte
		want Message
	}{
		"doneWithCode": {
			raw: buildMessage(order, NLMSG_DONE, NLM_F_MULTI, []byte{0, 0, 0, 0}),
			want: &DoneMessage{
				Header: Header{Length: 20, Type: NLMSG_DONE, Flags: NLM_F_MULTI, Sequence: 1234, PortID: 4321},
			},
		},
		"doneNegative": {
			raw: buildMessage(order, NLMSG_DONE, NLM_F_MULTI, []byte{0xF0, 0xFF, 0xFF, 0xFF}),
			want: &DoneMessage{
				Header: Header{Length: 20, Type: NLMSG_DONE, Flags: NLM_F_MULTI, Sequence: 1234, PortID: 4321},
				Code:   -16,
			},
		},
		"doneEmpty": {
			raw: buildMessage(order, NLMSG_DONE, NLM_F_MULTI, nil),
			want: &DoneMessage{
				Header: Header{Length: 16, Type: NLMSG_DONE, Flags: NLM_F_MULTI, Sequence: 1234, PortID: 4321},
			},
		},
		"noop": {
			raw: buildMessage(order, NLMSG_NOOP, 0, []byte{1}),
			want: &GenericMessage{
				Header:  Header{Length: 17, Type: NLMSG_NOOP, Sequence: 1234, PortID: 4321},
				Payload: []byte{1},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			msg, err := Parse(test.raw, 0, FamilyGeneric, order)
			if err != nil {
				t.Fatalf("error parsing the message: %v", err)
			}
			if diff := cmp.Diff(test.want, msg); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := Parse(buildMessage(order, NLMSG_DONE, 0, []byte{1, 2}), 0, FamilyRoute, order); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected %v for a 2 byte done payload; got %v", ErrTruncated, err)
	}
}

type neighMessage struct {
	Header  Header
	Family  uint8
	Ifindex int32
}

func (m *neighMessage) MsgHeader() Header { return m.Header }

func decodeNeigh(h Header, payload []byte, order binary.ByteOrder) (Message, error) {
	if len(payload) < 12 {
		return nil, ErrTruncated
	}
	return &neighMessage{Header: h, Family: payload[0], Ifindex: int32(order.Uint32(payload[4:8]))}, nil
}

func TestDecoderRegistry(t *testing.T) {
	order := binary.LittleEndian
	reg := NewRegistry().MustRegister(FamilyRoute, RTM_NEWNEIGH, decodeNeigh)
	d := NewDecoder(order, reg)

	ndmsg := []byte{10, 0, 0, 0, 3, 0, 0, 0, 0x02, 0x00, 0x00, 0x01}
	raw := buildMessage(order, RTM_NEWNEIGH, 0, ndmsg)

	msg, err := d.Parse(raw, 0, FamilyRoute)
	if err != nil {
		t.Fatalf("error parsing the message: %v", err)
	}
	neigh, ok := msg.(*neighMessage)
	if !ok {
		t.Fatalf("expected a *neighMessage; got %T", msg)
	}
	if neigh.Family != 10 || neigh.Ifindex != 3 {
		t.Errorf("unexpected neighbour message %+v", neigh)
	}

	// The same tag means something else in another family.
	msg, err = d.Parse(raw, 0, FamilySockDiag)
	if err != nil {
		t.Fatalf("error parsing the message: %v", err)
	}
	if _, ok := msg.(*GenericMessage); !ok {
		t.Errorf("expected a *GenericMessage for another family; got %T", msg)
	}

	// Failures of registered decoders make the whole parse fail.
	short := buildMessage(order, RTM_NEWNEIGH, 0, ndmsg[:4])
	if msg, err := d.Parse(short, 0, FamilyRoute); !errors.Is(err, ErrTruncated) || msg != nil {
		t.Errorf("expected %v and no message; got %v and %v", ErrTruncated, err, msg)
	}

	// Error messages are decoded no matter the family or the registry.
	ack := mustDecodeHex(t, nlmErrorOkHex)
	if msg, err := d.Parse(ack, 0, FamilyNetfilter); err != nil {
		t.Errorf("error parsing the ack: %v", err)
	} else if _, ok := msg.(*ErrorMessage); !ok {
		t.Errorf("expected an *ErrorMessage; got %T", msg)
	}

	if d.ByteOrder() != order {
		t.Errorf("unexpected byte order %v", d.ByteOrder())
	}
}
