// Package metrics exposes decoding statistics over a Prometheus endpoint.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scitags/nlmsg-go/netlink"
)

var logger = slog.New(slog.DiscardHandler)

type MetricsServer struct {
	Config

	m      *metrics
	reg    *prometheus.Registry
	server *http.Server
}

func (s *MetricsServer) String() string {
	return "Prometheus"
}

func NewMetricsServer(c *Config) (*MetricsServer, error) {
	if c.Log {
		logger = slog.Default().With("t", "metrics")
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initialising the metrics server")

	s := MetricsServer{Config: *c}

	// Create a non-global registry.
	s.reg = prometheus.NewRegistry()
	s.m = newMetrics()

	if err := s.m.register(s.reg); err != nil {
		return nil, fmt.Errorf("error registering the metrics: %w", err)
	}

	if s.Port == 0 {
		logger.Warn("metrics are being gathered but won't be exposed: the port is 0")
		return &s, nil
	}

	handler := http.NewServeMux()
	handler.Handle("/metrics", s.Handler())

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.BindAddress, s.Port),
		Handler: handler,
	}

	return &s, nil
}

// Handler serves the metrics in the exposition format.
func (s *MetricsServer) Handler() http.Handler {
	return promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{Registry: s.reg})
}

// Observe accounts for the result of decoding a single message: either msg
// or err is expected to be nil. It's safe for concurrent use.
func (s *MetricsServer) Observe(family netlink.Family, msg netlink.Message, err error) {
	s.m.observe(family, msg, err)
}

func (s *MetricsServer) Run(done <-chan struct{}) {
	logger.Debug("running the metrics server")

	if s.server == nil {
		<-done
		return
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil {
			logger.Info("stopped listening", "err", err)
		}
	}()

	<-done
	logger.Debug("cleanly exiting the metrics server")
}

func (s *MetricsServer) Cleanup() error {
	logger.Debug("cleaning up the metrics server")

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
