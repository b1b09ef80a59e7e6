package starfield

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const fullTurn = 2 * math.Pi

// Orientation is the rotation of the whole cloud.
// Y is the angle about the vertical axis, X about the horizontal axis.
type Orientation struct {
	Y, X float64
}

// Advance adds the per-frame deltas, keeping both angles in [0, 2π).
func (o *Orientation) Advance(dy, dx float64) {
	o.Y = wrapAngle(o.Y + dy)
	o.X = wrapAngle(o.X + dx)
}

// Matrix returns the model matrix, rotating about X after Y.
func (o Orientation) Matrix() mat.Mat4 {
	return mat.Rotate(1, 0, 0, float32(o.X)).MulAffine(mat.Rotate(0, 1, 0, float32(o.Y)))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	return a
}
