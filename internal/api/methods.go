package api

import (
	"encoding/binary"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scitags/nlmsg-go/internal/capture"
	"github.com/scitags/nlmsg-go/internal/render"
	"github.com/scitags/nlmsg-go/netlink"
)

func handleRoot(c echo.Context) error {
	cc := c.(*extendedContext)
	return c.JSONPretty(http.StatusOK, &rootResponse{
		ApiRoutes: cc.apiRoutes,
	}, JSON_PRETTY_INDENT)
}

func badRequest(c echo.Context, format string, a ...any) error {
	return c.JSONPretty(http.StatusBadRequest, &decodeResponse{
		Messages: []render.Record{},
		Error:    fmt.Sprintf(format, a...),
	}, JSON_PRETTY_INDENT)
}

func handleDecode(c echo.Context) error {
	cc := c.(*extendedContext)
	s := cc.server

	req := decodeRequest{}
	if err := cc.Bind(&req); err != nil {
		return badRequest(c, "error parsing the request: %v", err)
	}

	raw, err := capture.DecodeHex(req.Hex)
	if err != nil {
		return badRequest(c, "error decoding the hex dump: %v", err)
	}
	if len(raw) == 0 {
		return badRequest(c, "no data to decode")
	}

	family := s.defaults.Family
	if req.Family != "" {
		f, ok := netlink.ParseFamily(req.Family)
		if !ok {
			return badRequest(c, "unknown family %q", req.Family)
		}
		family = f
	}

	var order binary.ByteOrder = s.defaults.Order
	if req.ByteOrder != "" {
		if order, err = netlink.ParseByteOrder(req.ByteOrder); err != nil {
			return badRequest(c, "%v", err)
		}
	}

	verbosity := s.defaults.Verbosity
	if req.Verbosity != "" {
		verbosity = req.Verbosity
	}

	resp := decodeResponse{
		Family:    family.String(),
		ByteOrder: netlink.ByteOrderName(order),
		Messages:  []render.Record{},
	}

	d := netlink.NewDecoder(order, s.registry)
	err = capture.Walk(d, raw, family, func(f capture.Frame) bool {
		s.observe(family, f.Message, nil)

		r := render.NewRecord(family, f.Offset, f.Message)
		r.Verbosity = verbosity
		resp.Messages = append(resp.Messages, r)
		return true
	})
	if err != nil {
		s.observe(family, nil, err)
		logger.Debug("error decoding request", "err", err, "decoded", len(resp.Messages))
		resp.Error = err.Error()

		if len(resp.Messages) == 0 {
			return c.JSONPretty(http.StatusUnprocessableEntity, &resp, JSON_PRETTY_INDENT)
		}
	}

	return c.JSONPretty(http.StatusOK, &resp, JSON_PRETTY_INDENT)
}
