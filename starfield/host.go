package starfield

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/seqsense/pcgol/pc"
	"go.uber.org/zap"
)

var (
	// ErrInit wraps failures to create the render surface.
	ErrInit = errors.New("failed to initialize star field")

	errAlreadyMounted = errors.New("already mounted")
)

// Backend allocates render surfaces and schedules frames.
type Backend interface {
	// NewSurface allocates a surface sized to the viewport and uploads cloud.
	NewSurface(cloud *pc.PointCloud) (Surface, error)
	Scheduler() Scheduler
}

// Degrader is implemented by backends able to show a static background
// when the surface cannot be created.
type Degrader interface {
	Degrade(err error)
}

// State of a Host.
type State int

const (
	Unmounted State = iota
	Mounted
)

func (s State) String() string {
	switch s {
	case Mounted:
		return "mounted"
	default:
		return "unmounted"
	}
}

// HostOption customizes a Host.
type HostOption func(*Host)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) HostOption {
	return func(h *Host) {
		h.logger = l
	}
}

// WithRand makes star generation draw from r.
func WithRand(r *rand.Rand) HostOption {
	return func(h *Host) {
		h.rand = r
	}
}

// Host owns the camera, the surface and the render loop of one star field.
type Host struct {
	backend Backend
	opts    Options
	logger  *zap.Logger
	rand    *rand.Rand

	mu      sync.Mutex
	state   State
	cloud   *pc.PointCloud
	surface Surface
	loop    *Loop
}

// NewHost returns an unmounted host.
func NewHost(b Backend, opts Options, hostOpts ...HostOption) *Host {
	h := &Host{
		backend: b,
		opts:    opts,
		logger:  zap.NewNop(),
	}
	for _, o := range hostOpts {
		o(h)
	}
	return h
}

// Mount generates the stars, allocates the surface and starts rendering.
func (h *Host) Mount() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Mounted {
		return errAlreadyMounted
	}
	if err := h.opts.Validate(); err != nil {
		return err
	}

	var cloud *pc.PointCloud
	var err error
	if h.rand != nil {
		cloud, err = GenerateRand(h.opts.StarCount, h.opts.FieldExtent, h.rand)
	} else {
		cloud, err = Generate(h.opts.StarCount, h.opts.FieldExtent)
	}
	if err != nil {
		return err
	}

	s, err := h.backend.NewSurface(cloud)
	if err != nil {
		h.logger.Error("failed to create render surface", zap.Error(err))
		if d, ok := h.backend.(Degrader); ok {
			d.Degrade(err)
		}
		return fmt.Errorf("%w: %w", ErrInit, err)
	}

	h.cloud = cloud
	h.surface = s
	h.loop = NewLoop(s, NewCamera(h.opts.Camera), h.opts.RotationSpeedY, h.opts.RotationSpeedX, h.logger)
	h.state = Mounted
	h.loop.Start(h.backend.Scheduler())

	w, ht := s.Size()
	h.logger.Debug("mounted",
		zap.Int("stars", cloud.Points),
		zap.Int("width", w),
		zap.Int("height", ht),
	)
	return nil
}

// Unmount stops rendering and releases the surface.
// Calling it on an unmounted host is a no-op.
func (h *Host) Unmount() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Unmounted {
		return nil
	}
	h.loop.Stop()
	err := h.surface.Release()

	h.state = Unmounted
	h.surface = nil
	h.cloud = nil
	h.logger.Debug("unmounted", zap.Uint64("frames", h.loop.Frames()))
	if err != nil {
		return fmt.Errorf("failed to release render surface: %w", err)
	}
	return nil
}

// State returns the current state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Loop returns the render loop of the current or last session.
func (h *Host) Loop() *Loop {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loop
}

// Cloud returns the stars of the current session, or nil when unmounted.
func (h *Host) Cloud() *pc.PointCloud {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cloud
}
