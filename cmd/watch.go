package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scitags/nlmsg-go/internal/capture"
	"github.com/scitags/nlmsg-go/netlink"
)

func init() {
	watchCmd.Flags().BoolVar(&jsonFlag, "json", false, "print records as JSON, one per line")
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Decode capture files as they show up in a directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wConf := capture.DefaultWatchConfig
		if conf.Watch != nil {
			wConf = *conf.Watch
		}
		if len(args) == 1 {
			wConf.Directory = args[0]
		}

		w, err := capture.NewWatcher(&wConf)
		if err != nil {
			return err
		}
		defer w.Stop()

		services, ms, err := createServices(conf, false)
		if err != nil {
			return err
		}
		defer cleanupServices(services)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runServices(ctx.Done(), services)

		d := netlink.NewDecoder(conf.Order(), nil)
		p := newPrinter(cmd.OutOrStdout(), jsonFlag, conf.Verbosity)

		w.Run(ctx, func(path string, data []byte) {
			slog.Info("decoding capture", "path", path)
			if err := decodeBuffer(p, d, conf.NetlinkFamily(), data, observer(ms)); err != nil {
				slog.Warn("error decoding capture", "path", path, "err", err)
			}
		})

		return nil
	},
}
