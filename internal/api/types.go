package api

import (
	"encoding/binary"

	"github.com/labstack/echo/v4"

	"github.com/scitags/nlmsg-go/internal/render"
	"github.com/scitags/nlmsg-go/netlink"
)

const (
	JSON_PRETTY_INDENT string = "    "
)

// Observer is told about every decoded message and decoding failure.
type Observer interface {
	Observe(family netlink.Family, msg netlink.Message, err error)
}

// Defaults fill in whatever a decode request leaves out.
type Defaults struct {
	Family    netlink.Family
	Order     binary.ByteOrder
	Verbosity string
}

type rootResponse struct {
	ApiRoutes []*echo.Route `json:"routes"`
}

type decodeRequest struct {
	Hex       string `json:"hex"`
	Family    string `json:"family"`
	ByteOrder string `json:"byteOrder"`
	Verbosity string `json:"verbosity"`
}

type decodeResponse struct {
	Family    string          `json:"family"`
	ByteOrder string          `json:"byteOrder"`
	Messages  []render.Record `json:"messages"`
	Error     string          `json:"error,omitempty"`
}

type extendedContext struct {
	echo.Context
	apiRoutes []*echo.Route
	server    *Server
}
