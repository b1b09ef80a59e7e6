package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seqsense/starfield/starfield"
)

var (
	// Global flags
	verbose    bool
	configPath string
	seed       int64

	// Star field overrides
	starCount      int
	fieldExtent    float32
	rotationSpeedY float64
	rotationSpeedX float64
	pointSize      float32
	fov            float32

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "starfield",
	Short: "Slowly rotating procedural star field",
	Long: `starfield renders a field of randomly placed stars that slowly rotates
around a fixed camera.

The same field runs as a WebAssembly page background, in a terminal, or
in a desktop window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&configPath, "config", "c", "", "YAML options file")
	pf.Int64Var(&seed, "seed", 0, "Random seed for star placement (0: time based)")

	pf.IntVar(&starCount, "stars", 0, "Number of stars")
	pf.Float32Var(&fieldExtent, "extent", 0, "Half size of the cube the stars are placed in")
	pf.Float64Var(&rotationSpeedY, "speed-y", 0, "Rotation around the vertical axis per frame [rad]")
	pf.Float64Var(&rotationSpeedX, "speed-x", 0, "Rotation around the horizontal axis per frame [rad]")
	pf.Float32Var(&pointSize, "point-size", 0, "Star size in pixels")
	pf.Float32Var(&fov, "fov", 0, "Vertical field of view [deg]")

	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadOptions reads the config file, if any, and applies the flags the
// user set explicitly on top of it.
func loadOptions(cmd *cobra.Command) (starfield.Options, error) {
	opts := starfield.DefaultOptions()
	if configPath != "" {
		var err error
		opts, err = starfield.LoadOptionsFile(configPath)
		if err != nil {
			return starfield.Options{}, fmt.Errorf("failed to load %s: %w", configPath, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("stars") {
		opts.StarCount = starCount
	}
	if flags.Changed("extent") {
		opts.FieldExtent = fieldExtent
	}
	if flags.Changed("speed-y") {
		opts.RotationSpeedY = rotationSpeedY
	}
	if flags.Changed("speed-x") {
		opts.RotationSpeedX = rotationSpeedX
	}
	if flags.Changed("point-size") {
		opts.PointSize = pointSize
	}
	if flags.Changed("fov") {
		opts.Camera.FOV = fov
	}
	if err := opts.Validate(); err != nil {
		return starfield.Options{}, err
	}
	return opts, nil
}

func hostOptions() []starfield.HostOption {
	opts := []starfield.HostOption{starfield.WithLogger(logger)}
	if seed != 0 {
		opts = append(opts, starfield.WithRand(rand.New(rand.NewSource(seed))))
	}
	return opts
}
