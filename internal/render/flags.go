package render

import (
	"fmt"
	"strings"

	"github.com/scitags/nlmsg-go/netlink"
)

type flagName struct {
	flag netlink.HeaderFlags
	name string
}

// Bits above 0xFF mean different things depending on the request: check
// netlink(7).
var (
	getModifiers = []flagName{
		{netlink.NLM_F_DUMP, "DUMP"},
		{netlink.NLM_F_ROOT, "ROOT"},
		{netlink.NLM_F_MATCH, "MATCH"},
		{netlink.NLM_F_ATOMIC, "ATOMIC"},
	}
	newModifiers = []flagName{
		{netlink.NLM_F_REPLACE, "REPLACE"},
		{netlink.NLM_F_EXCL, "EXCL"},
		{netlink.NLM_F_CREATE, "CREATE"},
		{netlink.NLM_F_APPEND, "APPEND"},
	}
	delModifiers = []flagName{
		{netlink.NLM_F_NONREC, "NONREC"},
		{netlink.NLM_F_BULK, "BULK"},
	}
	ackModifiers = []flagName{
		{netlink.NLM_F_CAPPED, "CAPPED"},
		{netlink.NLM_F_ACK_TLVS, "ACK_TLVS"},
	}
)

// modifiers picks the modifier set for a type. We only know how requests
// are laid out for a couple of families.
func modifiers(family netlink.Family, typ netlink.HeaderType) []flagName {
	if typ == netlink.NLMSG_ERROR {
		return ackModifiers
	}

	switch family {
	case netlink.FamilyRoute:
		if typ < netlink.RTM_BASE {
			return nil
		}
		switch (typ - netlink.RTM_BASE) % 4 {
		case 0:
			return newModifiers
		case 1:
			return delModifiers
		case 2:
			return getModifiers
		}
	case netlink.FamilySockDiag:
		return getModifiers
	}

	return nil
}

// FlagString names the flags of a message of type typ within family,
// including the type-dependent modifiers in the upper byte.
func FlagString(family netlink.Family, typ netlink.HeaderType, flags netlink.HeaderFlags) string {
	if flags == 0 {
		return "0"
	}

	parts := []string{}
	if low := flags & 0xFF; low != 0 {
		parts = append(parts, low.String())
	}

	rest := flags &^ 0xFF
	for _, m := range modifiers(family, typ) {
		if rest&m.flag == m.flag {
			parts = append(parts, m.name)
			rest &^= m.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint16(rest)))
	}

	return strings.Join(parts, "|")
}
