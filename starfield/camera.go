package starfield

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

// Camera is fixed for the whole mounted session.
type Camera struct {
	Position  mat.Vec3
	FOV       float32 // vertical, radians
	Near, Far float32
}

// NewCamera builds a camera from validated options.
func NewCamera(o CameraOptions) Camera {
	return Camera{
		Position: mat.Vec3{o.Position[0], o.Position[1], o.Position[2]},
		FOV:      o.FOV * math.Pi / 180,
		Near:     o.Near,
		Far:      o.Far,
	}
}

// View returns the view matrix. The camera looks down -Z.
func (c Camera) View() mat.Mat4 {
	return mat.Translate(-c.Position[0], -c.Position[1], -c.Position[2])
}

// Projection returns the perspective matrix for a viewport of the given size.
func (c Camera) Projection(width, height int) mat.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	// mat.Perspective takes the horizontal angle.
	hfov := 2 * math.Atan(math.Tan(float64(c.FOV)/2)*float64(aspect))
	return mat.Perspective(float32(hfov), aspect, c.Near, c.Far)
}
