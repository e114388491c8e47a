package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Decode messages sent over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, _, err := createServices(conf, true)
		if err != nil {
			return err
		}
		defer cleanupServices(services)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		doneChan := make(chan struct{})
		runServices(doneChan, services)

		sig := <-sigChan
		slog.Info("caught signal, exiting", "signal", sig)
		close(doneChan)

		return nil
	},
}
