package main

import (
	"testing"

	"github.com/seqsense/starfield/starfield"
)

func TestApplyDataset(t *testing.T) {
	testCases := map[string]struct {
		data    map[string]string
		check   func(starfield.Options) bool
		errored bool
	}{
		"Empty": {
			data: map[string]string{},
			check: func(o starfield.Options) bool {
				return o.StarCount == 10000 && o.FieldExtent == 1000
			},
		},
		"StarCount": {
			data: map[string]string{"starCount": "500"},
			check: func(o starfield.Options) bool {
				return o.StarCount == 500
			},
		},
		"Floats": {
			data: map[string]string{
				"fieldExtent":    "50",
				"rotationSpeedY": "0.001",
				"rotationSpeedX": "0",
				"pointSize":      "3",
				"fov":            "60",
			},
			check: func(o starfield.Options) bool {
				return o.FieldExtent == 50 &&
					o.RotationSpeedY == 0.001 &&
					o.RotationSpeedX == 0 &&
					o.PointSize == 3 &&
					o.Camera.FOV == 60
			},
		},
		"Unparsable": {
			data:    map[string]string{"starCount": "many"},
			errored: true,
		},
		"UnparsableFloat": {
			data:    map[string]string{"pointSize": "big"},
			errored: true,
		},
		"Invalid": {
			data:    map[string]string{"starCount": "-3"},
			errored: true,
		},
		"Ignored": {
			data: map[string]string{"config": "starfield.yaml", "seed": "3"},
			check: func(o starfield.Options) bool {
				return o.StarCount == 10000
			},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			opts := starfield.DefaultOptions()
			err := applyDataset(&opts, tt.data)
			if tt.errored {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !tt.check(opts) {
				t.Errorf("Unexpected options: %+v", opts)
			}
		})
	}
}

func TestSeedFromDataset(t *testing.T) {
	testCases := map[string]struct {
		data     map[string]string
		expected int64
		errored  bool
	}{
		"Absent":  {data: map[string]string{}, expected: 0},
		"Set":     {data: map[string]string{"seed": "42"}, expected: 42},
		"Invalid": {data: map[string]string{"seed": "x"}, errored: true},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			seed, err := seedFromDataset(tt.data)
			if (err != nil) != tt.errored {
				t.Fatalf("Expected errored=%v, got %v", tt.errored, err)
			}
			if seed != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, seed)
			}
		})
	}
}
