package starfield

import (
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// ProjectedPoint is a star in viewport pixel coordinates.
// Distance is measured along the view axis.
type ProjectedPoint struct {
	X, Y     float32
	Depth    float32
	Distance float32
}

// Project transforms every star of cloud by the matrices of f and calls fn
// for those inside the view frustum. Backends without a GPU draw with it.
func Project(cloud *pc.PointCloud, f *Frame, fn func(ProjectedPoint)) error {
	if cloud == nil || cloud.Points == 0 || f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	it, err := cloud.Vec3Iterator()
	if err != nil {
		return err
	}
	m := f.Projection.Mul(f.View.MulAffine(f.Model))
	w, h := float32(f.Width), float32(f.Height)
	for ; it.IsValid(); it.Incr() {
		p, ok := clip(m, it.Vec3())
		if !ok {
			continue
		}
		fn(ProjectedPoint{
			X:        (p[0] + 1) / 2 * w,
			Y:        (1 - p[1]) / 2 * h,
			Depth:    (p[2] + 1) / 2,
			Distance: p[3],
		})
	}
	return nil
}

// clip returns normalized device coordinates and the clip w of v.
func clip(m mat.Mat4, v mat.Vec3) ([4]float32, bool) {
	x := m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]
	y := m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]
	z := m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]
	w := m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]
	if w <= 0 {
		return [4]float32{}, false
	}
	x, y, z = x/w, y/w, z/w
	if x < -1 || 1 < x || y < -1 || 1 < y || z < -1 || 1 < z {
		return [4]float32{}, false
	}
	return [4]float32{x, y, z, w}, true
}
