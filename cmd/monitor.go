package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scitags/nlmsg-go/internal/capture"
	"github.com/scitags/nlmsg-go/netlink"
)

func init() {
	monitorCmd.Flags().BoolVar(&jsonFlag, "json", false, "print records as JSON, one per line")
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Decode netlink notifications as the kernel sends them.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := capture.NewMonitor(conf.Monitor)
		if err != nil {
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				slog.Error("error closing the monitor", "err", err)
			}
		}()

		services, ms, err := createServices(conf, false)
		if err != nil {
			return err
		}
		defer cleanupServices(services)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runServices(ctx.Done(), services)

		bufSize := 1
		if conf.Monitor != nil {
			bufSize = max(conf.Monitor.BufferSize, 1)
		}
		rawChan := make(chan []byte, bufSize)

		errChan := make(chan error, 1)
		go func() {
			errChan <- m.Run(ctx, rawChan)
		}()

		// Live messages are always in the host's byte order.
		d := netlink.NewDecoder(netlink.NativeEndian, nil)
		p := newPrinter(cmd.OutOrStdout(), jsonFlag, conf.Verbosity)

		for {
			select {
			case raw := <-rawChan:
				if err := decodeBuffer(p, d, m.Family(), raw, observer(ms)); err != nil {
					slog.Warn("error decoding notification", "err", err)
				}
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("monitor failed: %w", err)
				}
				return nil
			case <-ctx.Done():
				slog.Info("caught signal, exiting")
				return <-errChan
			}
		}
	},
}
