package netlink

const (
	// HeaderLen is the size of struct nlmsghdr (i.e. NLMSG_HDRLEN).
	HeaderLen = 16

	// ErrorPayloadLen is the size of the fixed part of struct nlmsgerr: the
	// error code followed by the header of the offending request.
	ErrorPayloadLen = 4 + HeaderLen

	// NLMSG_ALIGNTO is the alignment of consecutive messages in a buffer.
	NLMSG_ALIGNTO = 4
)

// All of these constants' names make the linter complain, but we inherited
// these names from external C code, so we will keep them.
const (
	NLMSG_NOOP    HeaderType = 0x1
	NLMSG_ERROR   HeaderType = 0x2
	NLMSG_DONE    HeaderType = 0x3
	NLMSG_OVERRUN HeaderType = 0x4

	// Types below NLMSG_MIN_TYPE are reserved for control messages.
	NLMSG_MIN_TYPE HeaderType = 0x10
)

// Message types of the NETLINK_ROUTE family as seen on
// include/uapi/linux/rtnetlink.h. Note they come in groups of four with
// a fixed NEW, DEL, GET and SET ordering.
const (
	RTM_NEWLINK    HeaderType = 16
	RTM_DELLINK    HeaderType = 17
	RTM_GETLINK    HeaderType = 18
	RTM_SETLINK    HeaderType = 19
	RTM_NEWADDR    HeaderType = 20
	RTM_DELADDR    HeaderType = 21
	RTM_GETADDR    HeaderType = 22
	RTM_NEWROUTE   HeaderType = 24
	RTM_DELROUTE   HeaderType = 25
	RTM_GETROUTE   HeaderType = 26
	RTM_NEWNEIGH   HeaderType = 28
	RTM_DELNEIGH   HeaderType = 29
	RTM_GETNEIGH   HeaderType = 30
	RTM_NEWRULE    HeaderType = 32
	RTM_DELRULE    HeaderType = 33
	RTM_GETRULE    HeaderType = 34
	RTM_NEWQDISC   HeaderType = 36
	RTM_DELQDISC   HeaderType = 37
	RTM_GETQDISC   HeaderType = 38
	RTM_NEWTCLASS  HeaderType = 40
	RTM_DELTCLASS  HeaderType = 41
	RTM_GETTCLASS  HeaderType = 42
	RTM_NEWTFILTER HeaderType = 44
	RTM_DELTFILTER HeaderType = 45
	RTM_GETTFILTER HeaderType = 46
	RTM_NEWNSID    HeaderType = 88
	RTM_DELNSID    HeaderType = 89
	RTM_GETNSID    HeaderType = 90

	// RTM_BASE is the first rtnetlink message type.
	RTM_BASE = RTM_NEWLINK
)

// Message types of the NETLINK_SOCK_DIAG family; check sock_diag(7).
const (
	SOCK_DIAG_BY_FAMILY HeaderType = 20
	SOCK_DESTROY        HeaderType = 21
)

// Flags shared by every request and reply.
const (
	NLM_F_REQUEST       HeaderFlags = 0x01
	NLM_F_MULTI         HeaderFlags = 0x02
	NLM_F_ACK           HeaderFlags = 0x04
	NLM_F_ECHO          HeaderFlags = 0x08
	NLM_F_DUMP_INTR     HeaderFlags = 0x10
	NLM_F_DUMP_FILTERED HeaderFlags = 0x20

	// Modifiers to GET requests.
	NLM_F_ROOT   HeaderFlags = 0x100
	NLM_F_MATCH  HeaderFlags = 0x200
	NLM_F_ATOMIC HeaderFlags = 0x400
	NLM_F_DUMP   HeaderFlags = NLM_F_ROOT | NLM_F_MATCH

	// Modifiers to NEW requests.
	NLM_F_REPLACE HeaderFlags = 0x100
	NLM_F_EXCL    HeaderFlags = 0x200
	NLM_F_CREATE  HeaderFlags = 0x400
	NLM_F_APPEND  HeaderFlags = 0x800

	// Modifiers to DELETE requests.
	NLM_F_NONREC HeaderFlags = 0x100
	NLM_F_BULK   HeaderFlags = 0x200

	// Flags for NLMSG_ERROR acknowledgements.
	NLM_F_CAPPED   HeaderFlags = 0x100
	NLM_F_ACK_TLVS HeaderFlags = 0x200
)

// Netlink families (i.e. protocols) as accepted by socket(AF_NETLINK, ...).
const (
	FamilyRoute         Family = 0
	FamilyUsersock      Family = 2
	FamilyFirewall      Family = 3
	FamilySockDiag      Family = 4
	FamilyNflog         Family = 5
	FamilyXfrm          Family = 6
	FamilySELinux       Family = 7
	FamilyISCSI         Family = 8
	FamilyAudit         Family = 9
	FamilyFibLookup     Family = 10
	FamilyConnector     Family = 11
	FamilyNetfilter     Family = 12
	FamilyIP6Fw         Family = 13
	FamilyDNRtMsg       Family = 14
	FamilyKobjectUevent Family = 15
	FamilyGeneric       Family = 16
	FamilySCSITransport Family = 18
	FamilyEcryptfs      Family = 19
	FamilyRDMA          Family = 20
	FamilyCrypto        Family = 21
	FamilySMC           Family = 22
)

var (
	familyName = map[Family]string{
		FamilyRoute:         "route",
		FamilyUsersock:      "usersock",
		FamilyFirewall:      "firewall",
		FamilySockDiag:      "sock_diag",
		FamilyNflog:         "nflog",
		FamilyXfrm:          "xfrm",
		FamilySELinux:       "selinux",
		FamilyISCSI:         "iscsi",
		FamilyAudit:         "audit",
		FamilyFibLookup:     "fib_lookup",
		FamilyConnector:     "connector",
		FamilyNetfilter:     "netfilter",
		FamilyIP6Fw:         "ip6_fw",
		FamilyDNRtMsg:       "dnrtmsg",
		FamilyKobjectUevent: "kobject_uevent",
		FamilyGeneric:       "generic",
		FamilySCSITransport: "scsitransport",
		FamilyEcryptfs:      "ecryptfs",
		FamilyRDMA:          "rdma",
		FamilyCrypto:        "crypto",
		FamilySMC:           "smc",
	}

	controlTypeName = map[HeaderType]string{
		NLMSG_NOOP:    "NLMSG_NOOP",
		NLMSG_ERROR:   "NLMSG_ERROR",
		NLMSG_DONE:    "NLMSG_DONE",
		NLMSG_OVERRUN: "NLMSG_OVERRUN",
	}

	familyTypeName = map[Family]map[HeaderType]string{
		FamilyRoute: {
			RTM_NEWLINK:    "RTM_NEWLINK",
			RTM_DELLINK:    "RTM_DELLINK",
			RTM_GETLINK:    "RTM_GETLINK",
			RTM_SETLINK:    "RTM_SETLINK",
			RTM_NEWADDR:    "RTM_NEWADDR",
			RTM_DELADDR:    "RTM_DELADDR",
			RTM_GETADDR:    "RTM_GETADDR",
			RTM_NEWROUTE:   "RTM_NEWROUTE",
			RTM_DELROUTE:   "RTM_DELROUTE",
			RTM_GETROUTE:   "RTM_GETROUTE",
			RTM_NEWNEIGH:   "RTM_NEWNEIGH",
			RTM_DELNEIGH:   "RTM_DELNEIGH",
			RTM_GETNEIGH:   "RTM_GETNEIGH",
			RTM_NEWRULE:    "RTM_NEWRULE",
			RTM_DELRULE:    "RTM_DELRULE",
			RTM_GETRULE:    "RTM_GETRULE",
			RTM_NEWQDISC:   "RTM_NEWQDISC",
			RTM_DELQDISC:   "RTM_DELQDISC",
			RTM_GETQDISC:   "RTM_GETQDISC",
			RTM_NEWTCLASS:  "RTM_NEWTCLASS",
			RTM_DELTCLASS:  "RTM_DELTCLASS",
			RTM_GETTCLASS:  "RTM_GETTCLASS",
			RTM_NEWTFILTER: "RTM_NEWTFILTER",
			RTM_DELTFILTER: "RTM_DELTFILTER",
			RTM_GETTFILTER: "RTM_GETTFILTER",
			RTM_NEWNSID:    "RTM_NEWNSID",
			RTM_DELNSID:    "RTM_DELNSID",
			RTM_GETNSID:    "RTM_GETNSID",
		},
		FamilySockDiag: {
			SOCK_DIAG_BY_FAMILY: "SOCK_DIAG_BY_FAMILY",
			SOCK_DESTROY:        "SOCK_DESTROY",
		},
	}

	flagName = []struct {
		flag HeaderFlags
		name string
	}{
		{NLM_F_REQUEST, "REQUEST"},
		{NLM_F_MULTI, "MULTI"},
		{NLM_F_ACK, "ACK"},
		{NLM_F_ECHO, "ECHO"},
		{NLM_F_DUMP_INTR, "DUMP_INTR"},
		{NLM_F_DUMP_FILTERED, "DUMP_FILTERED"},
	}
)
