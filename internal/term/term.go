// Package term renders the star field on a terminal screen.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/starfield/internal/raster"
	"github.com/seqsense/starfield/starfield"
)

// Glyphs from the nearest to the farthest star, with the lowest
// brightness each one is used for.
var (
	glyphs          = []rune{'*', '+', '.', '·'}
	glyphThresholds = []float32{0.9, 0.6, 0.3, 0}
)

// Backend draws on a tcell screen, driven by a ticker.
type Backend struct {
	newScreen func() (tcell.Screen, error)
	sched     *starfield.TickerScheduler
	far       float32

	mu      sync.Mutex
	surface *surface
}

// Option customizes a Backend.
type Option func(*Backend)

// WithScreen makes the backend draw on s instead of the controlling terminal.
func WithScreen(s tcell.Screen) Option {
	return func(b *Backend) {
		b.newScreen = func() (tcell.Screen, error) {
			return s, nil
		}
	}
}

// New returns a backend refreshing fps times per second.
// far is the camera far plane used for depth shading.
func New(fps int, far float32, opts ...Option) *Backend {
	b := &Backend{
		newScreen: tcell.NewScreen,
		sched:     starfield.NewTickerScheduler(fps),
		far:       far,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Backend) NewSurface(cloud *pc.PointCloud) (starfield.Surface, error) {
	s, err := b.newScreen()
	if err != nil {
		return nil, fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("screen start failed: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	s.HideCursor()
	s.Clear()

	sf := &surface{screen: s, cloud: cloud, far: b.far}
	b.mu.Lock()
	b.surface = sf
	b.mu.Unlock()
	return sf, nil
}

func (b *Backend) Scheduler() starfield.Scheduler {
	return b.sched
}

// Screen returns the screen of the current surface, or nil.
func (b *Backend) Screen() tcell.Screen {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface == nil {
		return nil
	}
	return b.surface.screen
}

// HandleEvent reacts to a terminal event and reports whether the user
// asked to quit. Interrupts also quit, resizes repaint the screen and
// errors mark the surface lost.
func (b *Backend) HandleEvent(ev tcell.Event) (quit bool) {
	b.mu.Lock()
	sf := b.surface
	b.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			}
		}
	case *tcell.EventInterrupt:
		return true
	case *tcell.EventResize:
		if sf != nil {
			sf.sync()
		}
	case *tcell.EventError:
		if sf != nil {
			sf.lose()
		}
	}
	return false
}

type surface struct {
	screen tcell.Screen
	cloud  *pc.PointCloud
	far    float32

	mu       sync.Mutex
	lost     bool
	released bool
	zbuf     []float32
}

func (s *surface) Size() (int, int) {
	return s.screen.Size()
}

func (s *surface) Draw(f *starfield.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lost || s.released {
		return starfield.ErrSurfaceLost
	}

	w, h := f.Width, f.Height
	if n := w * h; len(s.zbuf) != n {
		s.zbuf = make([]float32, n)
	}
	for i := range s.zbuf {
		s.zbuf[i] = 1
	}

	s.screen.Clear()
	err := starfield.Project(s.cloud, f, func(p starfield.ProjectedPoint) {
		x, y := int(p.X), int(p.Y)
		if x < 0 || w <= x || y < 0 || h <= y {
			return
		}
		if p.Depth >= s.zbuf[y*w+x] {
			return
		}
		s.zbuf[y*w+x] = p.Depth
		b := raster.Brightness(p.Distance, s.far)
		s.screen.SetContent(x, y, glyph(b), nil, style(b))
	})
	s.screen.Show()
	return err
}

func (s *surface) Lost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

func (s *surface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	s.screen.Fini()
	return nil
}

func (s *surface) lose() {
	s.mu.Lock()
	s.lost = true
	s.mu.Unlock()
}

func (s *surface) sync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.released {
		s.screen.Sync()
	}
}

func glyph(brightness float32) rune {
	for i, th := range glyphThresholds {
		if brightness >= th {
			return glyphs[i]
		}
	}
	return glyphs[len(glyphs)-1]
}

func style(brightness float32) tcell.Style {
	v := int32(brightness * 0xFF)
	return tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.NewRGBColor(v, v, v))
}
