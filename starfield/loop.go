package starfield

import (
	"errors"
	"sync"

	"github.com/seqsense/pcgol/mat"
	"go.uber.org/zap"
)

// ErrSurfaceLost is returned by Surface.Draw once the render target is gone.
var ErrSurfaceLost = errors.New("render surface lost")

// Frame is everything a surface needs for one draw call.
type Frame struct {
	Number      uint64
	Orientation Orientation

	Model, View, Projection mat.Mat4
	Width, Height           int
}

// Surface is a drawable target allocated by a Backend.
type Surface interface {
	Size() (width, height int)
	Draw(f *Frame) error
	Lost() bool
	Release() error
}

// Scheduler invokes fn once per display refresh until fn returns false
// or Stop is called. Stop must not be called from inside fn.
type Scheduler interface {
	Start(fn func() bool)
	Stop()
}

// Loop advances the orientation and redraws once per frame.
type Loop struct {
	surface Surface
	camera  Camera
	speedY  float64
	speedX  float64
	logger  *zap.Logger

	mu          sync.Mutex
	orientation Orientation
	frames      uint64
	stopped     bool
	sched       Scheduler

	width, height int
	projection    mat.Mat4
}

// NewLoop returns a stopped loop drawing on s.
func NewLoop(s Surface, camera Camera, speedY, speedX float64, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		surface: s,
		camera:  camera,
		speedY:  speedY,
		speedX:  speedX,
		logger:  logger,
		width:   -1,
		height:  -1,
	}
}

// Start registers the frame callback on sched.
func (l *Loop) Start(sched Scheduler) {
	l.mu.Lock()
	l.sched = sched
	l.stopped = false
	l.mu.Unlock()
	sched.Start(l.Frame)
}

// Frame runs one state-update-then-draw step.
// It returns false once the loop is stopped.
func (l *Loop) Frame() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return false
	}
	if l.surface.Lost() {
		l.lose(ErrSurfaceLost)
		return false
	}

	l.orientation.Advance(l.speedY, l.speedX)
	l.frames++

	w, h := l.surface.Size()
	if w != l.width || h != l.height {
		l.width, l.height = w, h
		l.projection = l.camera.Projection(w, h)
	}
	f := &Frame{
		Number:      l.frames,
		Orientation: l.orientation,
		Model:       l.orientation.Matrix(),
		View:        l.camera.View(),
		Projection:  l.projection,
		Width:       w,
		Height:      h,
	}
	if err := l.surface.Draw(f); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			l.lose(err)
			return false
		}
		l.logger.Warn("draw failed", zap.Uint64("frame", l.frames), zap.Error(err))
	}
	return true
}

func (l *Loop) lose(err error) {
	l.stopped = true
	l.logger.Info("render loop stopped", zap.Uint64("frame", l.frames), zap.Error(err))
}

// Stop cancels the scheduler. It is safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	sched := l.sched
	l.sched = nil
	l.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
}

// Stopped reports whether the loop no longer draws.
func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Orientation returns the current orientation.
func (l *Loop) Orientation() Orientation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.orientation
}

// Frames returns the number of frames drawn so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}
