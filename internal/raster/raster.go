// Package raster draws projected stars into an RGBA image.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/starfield/starfield"
)

const minBrightness = 0.2

// Canvas is a CPU-side frame buffer.
type Canvas struct {
	Background color.RGBA
	PointSize  int
	Far        float32

	img *image.RGBA
}

// New returns a black canvas.
func New(width, height, pointSize int, far float32) *Canvas {
	if pointSize < 1 {
		pointSize = 1
	}
	return &Canvas{
		Background: color.RGBA{0, 0, 0, 0xFF},
		PointSize:  pointSize,
		Far:        far,
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Image returns the frame buffer.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the frame buffer size.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the frame buffer if the size changed.
func (c *Canvas) Resize(width, height int) {
	if w, h := c.Size(); w == width && h == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Clear fills the frame buffer with the background color.
func (c *Canvas) Clear() {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.Background.R
		pix[i+1] = c.Background.G
		pix[i+2] = c.Background.B
		pix[i+3] = c.Background.A
	}
}

// Plot draws a square star of PointSize pixels centered at (x, y).
// Pixel (i, j) covers [i, i+1) x [j, j+1).
// Overlapping stars keep the brighter value.
func (c *Canvas) Plot(x, y, brightness float32) {
	v := uint8(clamp(brightness, 0, 1) * 0xFF)
	half := float32(c.PointSize) / 2
	x0 := int(math.Floor(float64(x - half + 0.5)))
	y0 := int(math.Floor(float64(y - half + 0.5)))
	b := c.img.Bounds()
	for py := y0; py < y0+c.PointSize; py++ {
		if py < b.Min.Y || b.Max.Y <= py {
			continue
		}
		for px := x0; px < x0+c.PointSize; px++ {
			if px < b.Min.X || b.Max.X <= px {
				continue
			}
			i := c.img.PixOffset(px, py)
			for ch := 0; ch < 3; ch++ {
				if c.img.Pix[i+ch] < v {
					c.img.Pix[i+ch] = v
				}
			}
			c.img.Pix[i+3] = 0xFF
		}
	}
}

// Draw clears the canvas and plots every visible star of cloud.
func (c *Canvas) Draw(cloud *pc.PointCloud, f *starfield.Frame) error {
	c.Clear()
	return starfield.Project(cloud, f, func(p starfield.ProjectedPoint) {
		c.Plot(p.X, p.Y, Brightness(p.Distance, c.Far))
	})
}

// Brightness fades stars linearly with distance down to a floor.
func Brightness(distance, far float32) float32 {
	if far <= 0 {
		return 1
	}
	return clamp(1-distance/far, minBrightness, 1)
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	} else if v > max {
		return max
	}
	return v
}
