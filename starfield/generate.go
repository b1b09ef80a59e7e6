// Package starfield generates a procedural star field and drives its
// slow ambient rotation on a pluggable render surface.
package starfield

import (
	"errors"
	"math/rand"
	"time"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

var (
	ErrInvalidCount  = errors.New("invalid star count")
	ErrInvalidExtent = errors.New("invalid field extent")
)

// Header returns the PCD header of a star cloud with n points.
func Header(n int) pc.PointCloudHeader {
	return pc.PointCloudHeader{
		Fields: []string{"x", "y", "z"},
		Size:   []int{4, 4, 4},
		Type:   []string{"F", "F", "F"},
		Count:  []int{1, 1, 1},
		Width:  n,
		Height: 1,
	}
}

// Generate returns n stars uniformly distributed in the cube [-extent, extent]^3.
func Generate(n int, extent float32) (*pc.PointCloud, error) {
	return GenerateRand(n, extent, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// GenerateRand is like Generate but draws from r.
func GenerateRand(n int, extent float32, r *rand.Rand) (*pc.PointCloud, error) {
	if n < 0 {
		return nil, ErrInvalidCount
	}
	if !isFinite(float64(extent)) || extent < 0 {
		return nil, ErrInvalidExtent
	}
	pp := &pc.PointCloud{
		PointCloudHeader: Header(n),
		Points:           n,
	}
	pp.Data = make([]byte, n*pp.Stride())
	if n == 0 {
		return pp, nil
	}

	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	sample := func() float32 {
		v := float32((r.Float64() - 0.5) * 2 * float64(extent))
		// float32 rounding must not push a sample out of the cube
		if v > extent {
			return extent
		} else if v < -extent {
			return -extent
		}
		return v
	}
	for ; it.IsValid(); it.Incr() {
		it.SetVec3(mat.Vec3{sample(), sample(), sample()})
	}
	return pp, nil
}
