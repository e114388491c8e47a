package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scitags/nlmsg-go/internal/capture"
	"github.com/scitags/nlmsg-go/internal/render"
	"github.com/scitags/nlmsg-go/netlink"
)

func init() {
	decodeCmd.Flags().StringVar(&hexFlag, "hex", "", "decode the given hex string instead of a file")
	decodeCmd.Flags().BoolVar(&jsonFlag, "json", false, "print records as JSON, one per line")
	decodeCmd.Flags().StringVar(&familyFlag, "family", "", "override the configured netlink family")
	decodeCmd.Flags().StringVar(&byteOrderFlag, "byte-order", "", "override the configured byte order")
}

var (
	hexFlag       string
	jsonFlag      bool
	familyFlag    string
	byteOrderFlag string

	decodeCmd = &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode the messages within a capture file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyOverrides(); err != nil {
				return err
			}

			var (
				raw []byte
				err error
			)
			switch {
			case hexFlag != "":
				raw, err = capture.DecodeHex(hexFlag)
			case len(args) == 1:
				raw, err = capture.ReadFile(args[0])
			default:
				raw, err = capture.ReadFile("-")
			}
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), jsonFlag, conf.Verbosity)
			return decodeBuffer(p, netlink.NewDecoder(conf.Order(), nil), conf.NetlinkFamily(), raw, nil)
		},
	}
)

// applyOverrides folds command line flags into the configuration.
func applyOverrides() error {
	if familyFlag != "" {
		conf.Family = familyFlag
	}
	if byteOrderFlag != "" {
		conf.ByteOrder = byteOrderFlag
	}
	return conf.validate()
}

type printer struct {
	w         io.Writer
	json      bool
	verbosity string
}

func newPrinter(w io.Writer, asJSON bool, verbosity string) *printer {
	return &printer{w: w, json: asJSON, verbosity: verbosity}
}

func (p *printer) print(r render.Record) error {
	if !p.json {
		_, err := fmt.Fprintln(p.w, r)
		return err
	}

	r.Verbosity = p.verbosity
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshalling record: %w", err)
	}
	_, err = fmt.Fprintf(p.w, "%s\n", b)
	return err
}

// decodeBuffer prints every message in raw, reporting each one to observe
// when it's not nil. Messages preceding an error are still printed.
func decodeBuffer(p *printer, d *netlink.Decoder, family netlink.Family, raw []byte, observe func(netlink.Family, netlink.Message, error)) error {
	var printErr error
	err := capture.Walk(d, raw, family, func(f capture.Frame) bool {
		if observe != nil {
			observe(family, f.Message, nil)
		}
		if printErr = p.print(render.NewRecord(family, f.Offset, f.Message)); printErr != nil {
			return false
		}
		return true
	})
	if err != nil && observe != nil {
		observe(family, nil, err)
	}
	if err != nil {
		return err
	}
	return printErr
}
