package main

import (
	"fmt"
	"log/slog"

	"github.com/scitags/nlmsg-go/internal/api"
	"github.com/scitags/nlmsg-go/internal/metrics"
	"github.com/scitags/nlmsg-go/netlink"
	"github.com/scitags/nlmsg-go/types"
)

// createServices instantiates the configured servers. The metrics server
// (if any) is returned on its own too so that decoders can report to it.
func createServices(c *Config, withApi bool) ([]types.Service, *metrics.MetricsServer, error) {
	services := []types.Service{}

	var ms *metrics.MetricsServer
	if c.Metrics != nil {
		var err error
		ms, err = metrics.NewMetricsServer(c.Metrics)
		if err != nil {
			return nil, nil, fmt.Errorf("error initialising the metrics server: %w", err)
		}
		services = append(services, ms)
	}

	if withApi {
		apiConf := c.Api
		if apiConf == nil {
			apiConf = &api.Config{}
			if err := apiConf.UnmarshalYAML([]byte("{}")); err != nil {
				return nil, nil, fmt.Errorf("error applying the api defaults: %w", err)
			}
		}

		var obs api.Observer
		if ms != nil {
			obs = ms
		}

		s, err := api.NewServer(apiConf, api.Defaults{
			Family:    c.NetlinkFamily(),
			Order:     c.Order(),
			Verbosity: c.Verbosity,
		}, nil, obs)
		if err != nil {
			return nil, nil, fmt.Errorf("error initialising the api server: %w", err)
		}
		services = append(services, s)
	}

	return services, ms, nil
}

func runServices(done <-chan struct{}, services []types.Service) {
	for _, s := range services {
		slog.Debug("starting service", "service", s)
		go s.Run(done)
	}
}

func cleanupServices(services []types.Service) {
	for _, s := range services {
		if err := s.Cleanup(); err != nil {
			slog.Error("error cleaning up service", "service", s, "err", err)
		}
	}
}

// observer adapts a possibly nil metrics server to decodeBuffer.
func observer(ms *metrics.MetricsServer) func(netlink.Family, netlink.Message, error) {
	if ms == nil {
		return nil
	}
	return ms.Observe
}
