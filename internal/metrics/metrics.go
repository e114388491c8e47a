package metrics

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scitags/nlmsg-go/netlink"
	"github.com/scitags/nlmsg-go/types"
)

// Metric labels (note these are **always** strings):
//
//	family: netlink family the messages belong to
//	type: symbolic message type within the family
//	reason: why decoding failed, one of truncated, invalid_length or other
//	code: errno carried by an NLMSG_ERROR message, 0 for acks
var (
	decodedLabels = []string{"family", "type"}
	failureLabels = []string{"family", "reason"}
	errorLabels   = []string{"family", "code"}
)

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Reason -linecomment

// Reason is the value of the reason label.
type Reason int

const (
	ReasonTruncated     Reason = iota // truncated
	ReasonInvalidLength               // invalid_length
	ReasonOther                       // other
)

type metrics struct {
	Decoded  *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Errors   *prometheus.CounterVec

	Bytes *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		Decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlmsg_decoded_total",
			Help: "Messages decoded",
		}, decodedLabels),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlmsg_decode_failures_total",
			Help: "Messages which could not be decoded",
		}, failureLabels),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlmsg_error_acks_total",
			Help: "NLMSG_ERROR messages, acknowledgements included",
		}, errorLabels),

		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlmsg_decoded_bytes_total",
			Help: "Bytes taken up by decoded messages, headers included [B]",
		}, []string{"family"}),
	}
}

// (Nastily) use reflection to avoid having to manually register everything.
func (m *metrics) register(req prometheus.Registerer) error {
	v := reflect.ValueOf(*m)

	i := 0
	for i = 0; i < v.NumField(); i++ {
		vv, ok := v.Field(i).Interface().(prometheus.Collector)
		if !ok {
			return fmt.Errorf("error casting the interface for index %d", i)
		}
		if err := req.Register(vv); err != nil {
			return fmt.Errorf("error registering index %d: %w", i, err)
		}
	}
	logger.Log(context.Background(), types.LevelTrace, "registered collectors", "i", i)

	return nil
}

// ReasonOf classifies a decoding error.
func ReasonOf(err error) Reason {
	switch {
	case errors.Is(err, netlink.ErrTruncated):
		return ReasonTruncated
	case errors.Is(err, netlink.ErrInvalidLength):
		return ReasonInvalidLength
	}
	return ReasonOther
}

func (m *metrics) observe(family netlink.Family, msg netlink.Message, err error) {
	if err != nil {
		m.Failures.WithLabelValues(family.String(), ReasonOf(err).String()).Inc()
		return
	}

	h := msg.MsgHeader()
	m.Decoded.WithLabelValues(family.String(), h.Type.Name(family)).Inc()
	m.Bytes.WithLabelValues(family.String()).Add(float64(h.Length))

	if em, ok := msg.(*netlink.ErrorMessage); ok {
		m.Errors.WithLabelValues(family.String(), strconv.Itoa(int(em.Payload.Code))).Inc()
	}
}
