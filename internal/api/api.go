// Package api offers decoding over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/scitags/nlmsg-go/netlink"
)

var logger = slog.New(slog.DiscardHandler)

type Server struct {
	Config

	server   *echo.Echo
	registry *netlink.Registry
	defaults Defaults
	observer Observer
}

// NewServer prepares the API server. Both registry and observer can be nil.
func NewServer(c *Config, defaults Defaults, registry *netlink.Registry, observer Observer) (*Server, error) {
	if c.Log {
		logger = slog.Default().With("t", "api")
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initialising the api server")

	if defaults.Order == nil {
		return nil, fmt.Errorf("no default byte order provided")
	}

	s := Server{Config: *c, registry: registry, defaults: defaults, observer: observer}
	s.server = echo.New()

	// Prevent the banner from showing up in the log
	s.server.HideBanner = true
	s.server.HidePort = true

	if s.MaxBodyBytes > 0 {
		s.server.Use(middleware.BodyLimit(strconv.FormatInt(s.MaxBodyBytes, 10)))
	}

	// Configure the middleware for extending the context of the
	// different handlers.
	s.server.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&extendedContext{c, s.server.Routes(), &s})
		}
	})

	// Configure the methods for each path
	s.server.GET("/", handleRoot)
	s.server.POST("/decode", handleDecode)

	return &s, nil
}

func (s *Server) String() string {
	return "api"
}

// Handler is the http.Handler behind the server.
func (s *Server) Handler() http.Handler {
	return s.server
}

func (s *Server) observe(family netlink.Family, msg netlink.Message, err error) {
	if s.observer != nil {
		s.observer.Observe(family, msg, err)
	}
}

func (s *Server) Run(done <-chan struct{}) {
	logger.Debug("running the api server")

	go func() {
		if err := s.server.Start(fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("couldn't start the API server", "err", err)
		}
	}()

	// Simply wait until we're done
	<-done
	logger.Debug("cleanly exiting the api server")
}

func (s *Server) Cleanup() error {
	logger.Debug("cleaning up the api server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down the API server: %w", err)
	}
	return nil
}
