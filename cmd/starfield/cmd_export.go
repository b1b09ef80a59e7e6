package main

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/seqsense/pcgol/pc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqsense/starfield/starfield"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a generated star field as a PCD file",
	Long: `Generates the stars the renderers would draw and writes them as a binary
PCD point cloud. Use --seed to get the same field as a later render.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output file (-: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	var cloud *pc.PointCloud
	if seed != 0 {
		cloud, err = starfield.GenerateRand(opts.StarCount, opts.FieldExtent, rand.New(rand.NewSource(seed)))
	} else {
		cloud, err = starfield.Generate(opts.StarCount, opts.FieldExtent)
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := pc.Marshal(cloud, bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	logger.Debug("exported", zap.Int("stars", cloud.Points), zap.String("out", exportOut))
	return nil
}
