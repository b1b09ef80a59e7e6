package starfield

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultStarCount      = 10000
	defaultFieldExtent    = 1000.0
	defaultRotationSpeedY = 0.0002
	defaultRotationSpeedX = 0.0001
	defaultPointSize      = 2.0

	defaultCameraFOV  = 75.0
	defaultCameraNear = 1.0
	defaultCameraFar  = 1000.0
)

// Options configures the star field.
type Options struct {
	StarCount      int     `yaml:"starCount"`
	FieldExtent    float32 `yaml:"fieldExtent"`
	RotationSpeedY float64 `yaml:"rotationSpeedY"`
	RotationSpeedX float64 `yaml:"rotationSpeedX"`
	PointSize      float32 `yaml:"pointSize"`

	Camera CameraOptions `yaml:"camera"`
}

// CameraOptions configures the fixed camera. FOV is in degrees.
type CameraOptions struct {
	Position []float32 `yaml:"position"`
	FOV      float32   `yaml:"fov"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
}

var (
	errStarCount      = errors.New("starCount must not be negative")
	errFieldExtent    = errors.New("fieldExtent must be a finite non-negative number")
	errRotationSpeed  = errors.New("rotation speed must be finite")
	errPointSize      = errors.New("pointSize must be positive")
	errCameraPosition = errors.New("camera position must have 3 elements")
	errCameraFOV      = errors.New("camera fov must be in (0, 180) degrees")
	errCameraClip     = errors.New("camera clip planes must satisfy 0 < near < far")
)

// DefaultOptions returns the options of the stock background.
func DefaultOptions() Options {
	return Options{
		StarCount:      defaultStarCount,
		FieldExtent:    defaultFieldExtent,
		RotationSpeedY: defaultRotationSpeedY,
		RotationSpeedX: defaultRotationSpeedX,
		PointSize:      defaultPointSize,
		Camera: CameraOptions{
			Position: []float32{0, 0, 1},
			FOV:      defaultCameraFOV,
			Near:     defaultCameraNear,
			Far:      defaultCameraFar,
		},
	}
}

// Validate checks that the options describe a drawable star field.
func (o *Options) Validate() error {
	if o.StarCount < 0 {
		return errStarCount
	}
	if !isFinite(float64(o.FieldExtent)) || o.FieldExtent < 0 {
		return errFieldExtent
	}
	if !isFinite(o.RotationSpeedY) || !isFinite(o.RotationSpeedX) {
		return errRotationSpeed
	}
	if !(o.PointSize > 0) {
		return errPointSize
	}
	if len(o.Camera.Position) != 3 {
		return errCameraPosition
	}
	if !(o.Camera.FOV > 0 && o.Camera.FOV < 180) {
		return errCameraFOV
	}
	if !(o.Camera.Near > 0 && o.Camera.Near < o.Camera.Far) {
		return errCameraClip
	}
	return nil
}

// LoadOptions reads YAML options from r over the defaults.
// An empty document yields the defaults.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptionsFile reads YAML options from the file at path.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, err
	}
	defer f.Close()
	return LoadOptions(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
