package render

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scitags/nlmsg-go/netlink"
)

var cmpSortStrings = cmp.Transformer("sort", func(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
})

func TestFlagString(t *testing.T) {
	tests := map[string]struct {
		family netlink.Family
		typ    netlink.HeaderType
		flags  netlink.HeaderFlags
		want   string
	}{
		"none":          {netlink.FamilyRoute, netlink.RTM_NEWLINK, 0, "0"},
		"newneigh":      {netlink.FamilyRoute, netlink.RTM_NEWNEIGH, 0x0105, "REQUEST|ACK|REPLACE"},
		"newroute":      {netlink.FamilyRoute, netlink.RTM_NEWROUTE, netlink.NLM_F_REQUEST | netlink.NLM_F_CREATE | netlink.NLM_F_EXCL, "REQUEST|EXCL|CREATE"},
		"dellink":       {netlink.FamilyRoute, netlink.RTM_DELLINK, netlink.NLM_F_REQUEST | netlink.NLM_F_NONREC, "REQUEST|NONREC"},
		"getlink dump":  {netlink.FamilyRoute, netlink.RTM_GETLINK, netlink.NLM_F_REQUEST | netlink.NLM_F_DUMP, "REQUEST|DUMP"},
		"getlink root":  {netlink.FamilyRoute, netlink.RTM_GETLINK, netlink.NLM_F_REQUEST | netlink.NLM_F_ROOT, "REQUEST|ROOT"},
		"sock_diag":     {netlink.FamilySockDiag, netlink.SOCK_DIAG_BY_FAMILY, netlink.NLM_F_REQUEST | netlink.NLM_F_DUMP, "REQUEST|DUMP"},
		"capped ack":    {netlink.FamilyRoute, netlink.NLMSG_ERROR, netlink.NLM_F_CAPPED | netlink.NLM_F_ACK_TLVS, "CAPPED|ACK_TLVS"},
		"unknown":       {netlink.FamilyGeneric, 0x20, netlink.NLM_F_REQUEST | 0x0300, "REQUEST|0x300"},
		"upper only":    {netlink.FamilyRoute, netlink.RTM_NEWADDR, netlink.NLM_F_APPEND, "APPEND"},
		"leftover bits": {netlink.FamilyRoute, netlink.RTM_DELROUTE, netlink.NLM_F_BULK | 0x1000, "BULK|0x1000"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FlagString(tc.family, tc.typ, tc.flags); got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		})
	}
}
