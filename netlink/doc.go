// Package netlink decodes raw netlink messages into typed records. Be sure
// to check netlink(7) and rtnetlink(7) for the kernel side of things:
//
//	https://www.man7.org/linux/man-pages/man7/netlink.7.html
//	https://www.man7.org/linux/man-pages/man7/rtnetlink.7.html
//
// Every netlink message starts with the fixed 16-byte struct nlmsghdr
// followed by a payload whose shape depends on the message type and on the
// netlink family the message travelled on. Types below NLMSG_MIN_TYPE are
// control messages shared by all families: this package decodes NLMSG_ERROR
// (which also carries plain acknowledgements) and NLMSG_DONE itself. Every
// other type is handed to a decoder registered for the family in a Registry
// or, failing that, returned untouched as a GenericMessage.
//
// Netlink data is encoded in the host's byte order. Given you might be
// decoding a capture taken on a different machine, the byte order is always
// an explicit parameter: use NativeEndian for data coming straight from the
// kernel.
//
// The kernel structures are defined in include/uapi/linux/netlink.h [0].
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/include/uapi/linux/netlink.h
package netlink
