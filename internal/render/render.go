// Package render turns decoded netlink messages into records suitable for
// both humans and machines.
package render

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/structs"

	"github.com/scitags/nlmsg-go/netlink"
)

// Valid values for Record.Verbosity. They name the struct tag used when
// marshalling:
//
//	structs: every field.
//	lean: just enough to correlate acknowledgements with their requests.
var validTags = map[string]struct{}{
	"structs": {},
	"lean":    {},
}

// Kinds of records.
const (
	KindError   = "error"
	KindDone    = "done"
	KindGeneric = "generic"
)

// HeaderRecord is the rendered counterpart of netlink.Header.
type HeaderRecord struct {
	Length   uint32 `structs:"length" lean:"-"`
	Type     string `structs:"type" lean:"type"`
	RawType  uint16 `structs:"rawType" lean:"-"`
	Flags    string `structs:"flags" lean:"-"`
	RawFlags uint16 `structs:"rawFlags" lean:"-"`
	Sequence uint32 `structs:"seq" lean:"seq"`
	PortID   uint32 `structs:"pid" lean:"pid"`
}

func newHeaderRecord(family netlink.Family, h netlink.Header) HeaderRecord {
	return HeaderRecord{
		Length:   h.Length,
		Type:     h.Type.Name(family),
		RawType:  uint16(h.Type),
		Flags:    FlagString(family, h.Type, h.Flags),
		RawFlags: uint16(h.Flags),
		Sequence: h.Sequence,
		PortID:   h.PortID,
	}
}

// Record is a flattened view of a netlink.Message.
type Record struct {
	Offset int    `structs:"offset" lean:"-"`
	Family string `structs:"family" lean:"-"`
	Kind   string `structs:"kind" lean:"kind"`

	Header HeaderRecord `structs:"header" lean:"header"`

	// Only set for error and done messages.
	Code  *int32 `structs:"code,omitempty" lean:"code,omitempty"`
	Errno string `structs:"errno,omitempty" lean:"errno,omitempty"`

	// Only set for error messages.
	Original *HeaderRecord `structs:"original,omitempty" lean:"original,omitempty"`

	PayloadLen int    `structs:"payloadLen" lean:"-"`
	Payload    string `structs:"payload,omitempty" lean:"-"`

	// Verbosity chooses the struct tag driving the marshalling. An empty
	// or unknown value falls back to structs.
	Verbosity string `structs:"-" lean:"-"`
}

// NewRecord renders msg, which was found at offset within a buffer
// belonging to family.
func NewRecord(family netlink.Family, offset int, msg netlink.Message) Record {
	h := msg.MsgHeader()

	r := Record{
		Offset:     offset,
		Family:     family.String(),
		Header:     newHeaderRecord(family, h),
		PayloadLen: int(h.Length) - netlink.HeaderLen,
	}

	switch m := msg.(type) {
	case *netlink.ErrorMessage:
		r.Kind = KindError
		code := m.Payload.Code
		r.Code = &code
		if err := m.Payload.Err(); err != nil {
			r.Errno = err.Error()
		}
		orig := newHeaderRecord(family, m.Payload.Original)
		r.Original = &orig
		if len(m.Trailer) > 0 {
			r.Payload = hex.EncodeToString(m.Trailer)
		}
	case *netlink.DoneMessage:
		r.Kind = KindDone
		code := m.Code
		r.Code = &code
	case *netlink.GenericMessage:
		r.Kind = KindGeneric
		r.Payload = hex.EncodeToString(m.Payload)
	default:
		r.Kind = strings.TrimPrefix(fmt.Sprintf("%T", msg), "*")
	}

	return r
}

// MarshalJSON implements the json.Marshaler interface. We'll simply leverage
// structs to play around with the struct tags in an effort to control the
// marshalling output: the tag to use is given by Verbosity.
func (r Record) MarshalJSON() ([]byte, error) {
	s := structs.New(r)

	if _, ok := validTags[r.Verbosity]; ok {
		s.TagName = r.Verbosity
	}

	return json.Marshal(s.Map())
}

func (r Record) String() string {
	s := fmt.Sprintf("%d: %s len=%d flags=%s seq=%d pid=%d", r.Offset, r.Header.Type,
		r.Header.Length, r.Header.Flags, r.Header.Sequence, r.Header.PortID)

	switch r.Kind {
	case KindError:
		if *r.Code == 0 {
			s = fmt.Sprintf("%s ack", s)
		} else {
			s = fmt.Sprintf("%s error=%d (%s)", s, *r.Code, r.Errno)
		}
		s = fmt.Sprintf("%s for %s len=%d flags=%s seq=%d pid=%d", s, r.Original.Type,
			r.Original.Length, r.Original.Flags, r.Original.Sequence, r.Original.PortID)
	case KindDone:
		s = fmt.Sprintf("%s code=%d", s, *r.Code)
	case KindGeneric:
		s = fmt.Sprintf("%s payload=%dB", s, r.PayloadLen)
	default:
		s = fmt.Sprintf("%s (%s)", s, r.Kind)
	}

	return s
}
