package netlink

import (
	"encoding/binary"
	"fmt"
	"strings"

	ne "github.com/josharian/native"
)

// NativeEndian is the byte order of the host, which is what the kernel
// uses when talking netlink.
var NativeEndian binary.ByteOrder = ne.Endian

// ParseByteOrder maps "little", "big" and "native" onto a binary.ByteOrder.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "little", "le", "little-endian":
		return binary.LittleEndian, nil
	case "big", "be", "big-endian":
		return binary.BigEndian, nil
	case "native", "host":
		return NativeEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", s)
}

// ByteOrderName is the inverse of ParseByteOrder, save for "native" which
// is reported as the host's actual order.
func ByteOrderName(o binary.ByteOrder) string {
	switch o {
	case binary.LittleEndian:
		return "little"
	case binary.BigEndian:
		return "big"
	}
	if o == nil {
		return "none"
	}
	if ne.IsBigEndian {
		return "big"
	}
	return "little"
}
