package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scitags/nlmsg-go/types"
)

const defaultConfPath = "/etc/nlmsg-go/conf.yaml"

func init() {
	rootCmd.PersistentFlags().StringVar(&confPathFlag, "conf", defaultConfPath, "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level: one of trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logTimeFlag, "log-time", false, "include timestamps in the logs")
}

var (
	rootCmd = &cobra.Command{
		Use:   "nlmsg",
		Short: "A netlink message decoder.",
		Long:  "Decode netlink messages coming from capture files, live sockets or HTTP requests.",

		// Don't dump the usage on every runtime error.
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(); err != nil {
				return err
			}

			var err error
			conf, err = loadConf(confPathFlag, cmd.Flags().Changed("conf"))
			if err != nil {
				return err
			}
			slog.Log(cmd.Context(), types.LevelTrace, "loaded configuration", "conf", conf)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get the built version.",

		// Skip loading the configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },

		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("built commit: %s\n", builtCommit)
		},
	}

	confPathFlag string
	logLevelFlag string
	logTimeFlag  bool

	conf *Config

	builtCommit = "dev"
)

func init() {
	// Disable completion please!
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the different sub-commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging() error {
	level, err := types.ParseLogLevel(logLevelFlag)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: logReplacements,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadConf reads the configuration at path. A missing file is only an
// error when the path was explicitly asked for.
func loadConf(path string, explicit bool) (*Config, error) {
	c, err := ReadConf(path)
	if err == nil {
		return c, nil
	}

	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no configuration file found, using the defaults", "path", path)
		return DefaultConf()
	}

	return nil, err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
