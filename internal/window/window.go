// Package window renders the star field in a desktop window.
package window

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/seqsense/pcgol/pc"
	"go.uber.org/zap"

	"github.com/seqsense/starfield/internal/raster"
	"github.com/seqsense/starfield/starfield"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// Backend draws on a CPU canvas that is copied to the window every frame.
// Frames are driven by the ebiten update loop.
type Backend struct {
	Title     string
	PointSize int
	Far       float32

	sched starfield.ManualScheduler

	mu      sync.Mutex
	width   int
	height  int
	surface *surface
}

// New returns a backend for a window of the default size.
func New(title string, pointSize int, far float32) *Backend {
	return &Backend{
		Title:     title,
		PointSize: pointSize,
		Far:       far,
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

func (b *Backend) NewSurface(cloud *pc.PointCloud) (starfield.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &surface{
		backend: b,
		cloud:   cloud,
		canvas:  raster.New(b.width, b.height, b.PointSize, b.Far),
	}
	b.surface = s
	return s, nil
}

func (b *Backend) Scheduler() starfield.Scheduler {
	return &b.sched
}

func (b *Backend) size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Backend) current() *surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface
}

// Run opens the window, mounts h on it and blocks until the window closes.
func Run(b *Backend, h *starfield.Host, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	ebiten.SetWindowTitle(b.Title)
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)

	if err := h.Mount(); err != nil {
		return err
	}
	defer func() {
		if err := h.Unmount(); err != nil {
			logger.Warn("unmount failed", zap.Error(err))
		}
	}()

	err := ebiten.RunGame(&game{backend: b})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	backend *Backend
	img     *ebiten.Image
}

func (g *game) Update() error {
	s := g.backend.current()
	if ebiten.IsWindowBeingClosed() {
		if s != nil {
			s.lose()
		}
		return ebiten.Termination
	}
	g.backend.sched.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.backend.current()
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	w, h := s.canvas.Size()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}
	g.img.WritePixels(s.canvas.Image().Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.backend
	b.mu.Lock()
	b.width, b.height = outsideWidth, outsideHeight
	b.mu.Unlock()
	return outsideWidth, outsideHeight
}

type surface struct {
	backend *Backend
	cloud   *pc.PointCloud

	mu       sync.Mutex
	canvas   *raster.Canvas
	lost     bool
	released bool
}

func (s *surface) Size() (int, int) {
	return s.backend.size()
}

func (s *surface) Draw(f *starfield.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lost || s.released {
		return starfield.ErrSurfaceLost
	}
	s.canvas.Resize(f.Width, f.Height)
	return s.canvas.Draw(s.cloud, f)
}

func (s *surface) Lost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

func (s *surface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	return nil
}

func (s *surface) lose() {
	s.mu.Lock()
	s.lost = true
	s.mu.Unlock()
}
