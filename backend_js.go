package main

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/seqsense/pcgol/pc"
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"

	"github.com/seqsense/starfield/starfield"
)

// webglBackend draws the stars as GL points on the background canvas.
type webglBackend struct {
	canvas    js.Value
	pointSize float32
	sched     *rafScheduler
	logger    *zap.Logger

	mu      sync.Mutex
	gl      *webgl.WebGL
	surface *webglSurface
}

func newWebGLBackend(canvas js.Value, pointSize float32, logger *zap.Logger) *webglBackend {
	b := &webglBackend{
		canvas:    canvas,
		pointSize: pointSize,
		sched:     &rafScheduler{},
		logger:    logger,
	}
	webgl.Canvas(canvas).OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		logger.Warn("context lost", zap.String("status", e.StatusMessage))
		b.mu.Lock()
		s := b.surface
		b.mu.Unlock()
		if s != nil {
			s.lose()
		}
	})
	return b
}

func (b *webglBackend) NewSurface(cloud *pc.PointCloud) (starfield.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.gl == nil {
		gl, err := webgl.New(b.canvas)
		if err != nil {
			return nil, err
		}
		showDebugInfo(gl, b.logger)
		b.gl = gl
	}
	gl := b.gl
	if gl.IsContextLost() {
		return nil, errContextLost
	}

	vs, err := initVertexShader(gl, vsSource)
	if err != nil {
		return nil, err
	}
	fs, err := initFragmentShader(gl, fsSource)
	if err != nil {
		return nil, err
	}
	program, err := linkShaders(gl, vs, fs)
	if err != nil {
		return nil, err
	}

	s := &webglSurface{
		gl:        gl,
		cloud:     cloud,
		pointSize: b.pointSize,
		program:   program,
		locModel:  gl.GetUniformLocation(program, uModelMatrix),
		locView:   gl.GetUniformLocation(program, uViewMatrix),
		locProj:   gl.GetUniformLocation(program, uProjectionMatrix),
		locSize:   gl.GetUniformLocation(program, uPointSize),
		buf:       gl.CreateBuffer(),
	}
	if cloud.Points > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, s.buf)
		gl.BufferData(gl.ARRAY_BUFFER, webgl.ByteArrayBuffer(cloud.Data), gl.STATIC_DRAW)
	}

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.UseProgram(program)
	gl.EnableVertexAttribArray(aVertexPosition)

	if err := gl.GetError(); err != nil {
		s.release()
		return nil, fmt.Errorf("failed to upload stars: %w", err)
	}

	b.canvas.Get("style").Set("background", "#000")
	b.surface = s
	return s, nil
}

func (b *webglBackend) Scheduler() starfield.Scheduler {
	return b.sched
}

// Degrade replaces the rendered field with a static gradient.
func (b *webglBackend) Degrade(err error) {
	b.canvas.Get("style").Set("background", fallbackBackground)
}

// Cloud returns the stars on the current surface, or nil.
func (b *webglBackend) Cloud() *pc.PointCloud {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface == nil {
		return nil
	}
	return b.surface.cloud
}

type webglSurface struct {
	gl        *webgl.WebGL
	cloud     *pc.PointCloud
	pointSize float32

	program                             webgl.Program
	locModel, locView, locProj, locSize webgl.Location
	buf                                 webgl.Buffer

	mu            sync.Mutex
	lost          bool
	released      bool
	width, height int
}

func (s *webglSurface) Size() (int, int) {
	c := s.gl.Canvas
	return c.ClientWidth(), c.ClientHeight()
}

func (s *webglSurface) Draw(f *starfield.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lost || s.released {
		return starfield.ErrSurfaceLost
	}
	gl := s.gl
	if gl.IsContextLost() {
		s.lost = true
		return starfield.ErrSurfaceLost
	}

	if f.Width != s.width || f.Height != s.height {
		s.width, s.height = f.Width, f.Height
		gl.Canvas.SetWidth(f.Width)
		gl.Canvas.SetHeight(f.Height)
		gl.Viewport(0, 0, f.Width, f.Height)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if s.cloud.Points == 0 {
		return nil
	}
	gl.UseProgram(s.program)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.buf)
	gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, s.cloud.Stride(), 0)
	gl.UniformMatrix4fv(s.locModel, false, f.Model)
	gl.UniformMatrix4fv(s.locView, false, f.View)
	gl.UniformMatrix4fv(s.locProj, false, f.Projection)
	gl.Uniform1f(s.locSize, s.pointSize)
	gl.DrawArrays(gl.POINTS, 0, s.cloud.Points)
	return nil
}

func (s *webglSurface) Lost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

func (s *webglSurface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.release()
	return nil
}

func (s *webglSurface) release() {
	s.released = true
	if s.lost {
		return
	}
	gl := s.gl.JS()
	gl.Call("deleteBuffer", js.Value(s.buf))
	gl.Call("deleteProgram", js.Value(s.program))
	s.gl.Clear(s.gl.COLOR_BUFFER_BIT | s.gl.DEPTH_BUFFER_BIT)
}

func (s *webglSurface) lose() {
	s.mu.Lock()
	s.lost = true
	s.mu.Unlock()
}
