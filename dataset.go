package main

import (
	"fmt"
	"strconv"

	"github.com/seqsense/starfield/starfield"
)

// Canvas data attributes, as named in HTMLElement.dataset.
const (
	dataConfig         = "config"
	dataDebug          = "debug"
	dataSeed           = "seed"
	dataStarCount      = "starCount"
	dataFieldExtent    = "fieldExtent"
	dataRotationSpeedY = "rotationSpeedY"
	dataRotationSpeedX = "rotationSpeedX"
	dataPointSize      = "pointSize"
	dataFOV            = "fov"
)

var datasetKeys = []string{
	dataConfig, dataDebug, dataSeed,
	dataStarCount, dataFieldExtent,
	dataRotationSpeedY, dataRotationSpeedX,
	dataPointSize, dataFOV,
}

// applyDataset overrides opts with the attributes present in data.
func applyDataset(opts *starfield.Options, data map[string]string) error {
	parseFloat := func(key string, bits int, fn func(float64)) error {
		s, ok := data[key]
		if !ok {
			return nil
		}
		v, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return fmt.Errorf("data-%s: %w", key, err)
		}
		fn(v)
		return nil
	}

	if s, ok := data[dataStarCount]; ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("data-%s: %w", dataStarCount, err)
		}
		opts.StarCount = n
	}
	for _, f := range []struct {
		key  string
		bits int
		fn   func(float64)
	}{
		{dataFieldExtent, 32, func(v float64) { opts.FieldExtent = float32(v) }},
		{dataRotationSpeedY, 64, func(v float64) { opts.RotationSpeedY = v }},
		{dataRotationSpeedX, 64, func(v float64) { opts.RotationSpeedX = v }},
		{dataPointSize, 32, func(v float64) { opts.PointSize = float32(v) }},
		{dataFOV, 32, func(v float64) { opts.Camera.FOV = float32(v) }},
	} {
		if err := parseFloat(f.key, f.bits, f.fn); err != nil {
			return err
		}
	}
	return opts.Validate()
}

// seedFromDataset returns the data-seed value, or 0 if absent.
func seedFromDataset(data map[string]string) (int64, error) {
	s, ok := data[dataSeed]
	if !ok {
		return 0, nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("data-%s: %w", dataSeed, err)
	}
	return seed, nil
}
