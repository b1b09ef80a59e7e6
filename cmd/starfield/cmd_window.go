package main

import (
	"github.com/spf13/cobra"

	"github.com/seqsense/starfield/internal/window"
	"github.com/seqsense/starfield/starfield"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Render the star field in a desktop window",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	b := window.New("starfield", int(opts.PointSize+0.5), opts.Camera.Far)
	h := starfield.NewHost(b, opts, hostOptions()...)
	return window.Run(b, h, logger)
}
