package starfield

import (
	"errors"
	"math"
	"testing"
)

type fakeSurface struct {
	width, height int

	draws    int
	lostAt   int
	lostFlag bool
	drawErr  error
	released int
	frames   []*Frame
}

func (s *fakeSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *fakeSurface) Draw(f *Frame) error {
	if s.lostAt > 0 && s.draws+1 >= s.lostAt {
		s.lostFlag = true
		return ErrSurfaceLost
	}
	s.draws++
	s.frames = append(s.frames, f)
	return s.drawErr
}

func (s *fakeSurface) Lost() bool {
	return s.lostFlag
}

func (s *fakeSurface) Release() error {
	s.released++
	return nil
}

func newTestLoop(s Surface) *Loop {
	opts := DefaultOptions()
	return NewLoop(s, NewCamera(opts.Camera), opts.RotationSpeedY, opts.RotationSpeedX, nil)
}

func TestLoop_Drift(t *testing.T) {
	testCases := map[string]struct {
		frames int
	}{
		"OneSecond":   {frames: 60},
		"OneMinute":   {frames: 3600},
		"ManyMinutes": {frames: 60 * 60 * 20},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			s := &fakeSurface{width: 640, height: 480}
			l := newTestLoop(s)
			for i := 0; i < tt.frames; i++ {
				if !l.Frame() {
					t.Fatalf("Loop stopped at frame %d", i)
				}
			}
			o := l.Orientation()
			expectedY := math.Mod(float64(tt.frames)*defaultRotationSpeedY, 2*math.Pi)
			expectedX := math.Mod(float64(tt.frames)*defaultRotationSpeedX, 2*math.Pi)
			if math.Abs(o.Y-expectedY) > 1e-9 {
				t.Errorf("Expected Y angle %f, got %f", expectedY, o.Y)
			}
			if math.Abs(o.X-expectedX) > 1e-9 {
				t.Errorf("Expected X angle %f, got %f", expectedX, o.X)
			}
			if s.draws != tt.frames {
				t.Errorf("Expected exactly one draw per frame (%d), got %d", tt.frames, s.draws)
			}
		})
	}
}

func TestLoop_OneSecondAt60FPS(t *testing.T) {
	s := &fakeSurface{width: 640, height: 480}
	l := newTestLoop(s)
	for i := 0; i < 60; i++ {
		l.Frame()
	}
	o := l.Orientation()
	if math.Abs(o.Y-0.012) > 1e-12 {
		t.Errorf("Expected Y angle 0.012, got %v", o.Y)
	}
	if math.Abs(o.X-0.006) > 1e-12 {
		t.Errorf("Expected X angle 0.006, got %v", o.X)
	}
	if l.Frames() != 60 {
		t.Errorf("Expected 60 frames, got %d", l.Frames())
	}
}

func TestLoop_FrameMatrices(t *testing.T) {
	s := &fakeSurface{width: 800, height: 600}
	l := newTestLoop(s)
	l.Frame()
	l.Frame()

	f := s.frames[1]
	if f.Number != 2 {
		t.Errorf("Expected frame number 2, got %d", f.Number)
	}
	if f.Width != 800 || f.Height != 600 {
		t.Errorf("Expected 800x600 frame, got %dx%d", f.Width, f.Height)
	}
	if f.Model != f.Orientation.Matrix() {
		t.Error("Model matrix must be the rotation of the frame orientation")
	}
	if s.frames[0].Model == s.frames[1].Model {
		t.Error("Model matrix must change between frames")
	}
	if s.frames[0].Projection != s.frames[1].Projection {
		t.Error("Projection must not change while the surface size is fixed")
	}

	s.width = 400
	l.Frame()
	if s.frames[2].Projection == s.frames[1].Projection {
		t.Error("Projection must follow the surface size")
	}
}

func TestLoop_SurfaceLost(t *testing.T) {
	t.Run("DrawError", func(t *testing.T) {
		s := &fakeSurface{width: 10, height: 10, lostAt: 5}
		l := newTestLoop(s)
		for i := 0; i < 20; i++ {
			l.Frame()
		}
		if s.draws != 4 {
			t.Errorf("Expected no draw after frame 5, got %d draws", s.draws)
		}
		if !l.Stopped() {
			t.Error("Loop must stop on surface loss")
		}
	})
	t.Run("LostFlag", func(t *testing.T) {
		s := &fakeSurface{width: 10, height: 10}
		l := newTestLoop(s)
		l.Frame()
		s.lostFlag = true
		if l.Frame() {
			t.Error("Frame must report stop when the surface is lost")
		}
		if s.draws != 1 {
			t.Errorf("Expected 1 draw, got %d", s.draws)
		}
	})
	t.Run("TransientError", func(t *testing.T) {
		s := &fakeSurface{width: 10, height: 10, drawErr: errors.New("busy")}
		l := newTestLoop(s)
		for i := 0; i < 3; i++ {
			if !l.Frame() {
				t.Fatal("Loop must keep running on errors other than surface loss")
			}
		}
	})
}

func TestLoop_Stop(t *testing.T) {
	s := &fakeSurface{width: 10, height: 10}
	l := newTestLoop(s)
	sched := &ManualScheduler{}
	l.Start(sched)

	for i := 0; i < 3; i++ {
		if !sched.Tick() {
			t.Fatal("Scheduler must run the loop")
		}
	}
	l.Stop()
	l.Stop()
	if sched.Tick() {
		t.Error("Scheduler must not run the loop after Stop")
	}
	if s.draws != 3 {
		t.Errorf("Expected 3 draws, got %d", s.draws)
	}
}

func TestOrientation_Wrap(t *testing.T) {
	o := Orientation{Y: 2*math.Pi - 0.001, X: 0}
	o.Advance(0.002, -0.001)
	if math.Abs(o.Y-0.001) > 1e-12 {
		t.Errorf("Expected Y to wrap to 0.001, got %v", o.Y)
	}
	if math.Abs(o.X-(2*math.Pi-0.001)) > 1e-12 {
		t.Errorf("Expected X to wrap to 2π-0.001, got %v", o.X)
	}
}

func TestOrientation_Matrix(t *testing.T) {
	o := Orientation{Y: math.Pi / 2}
	v := o.Matrix().TransformAffine([3]float32{1, 0, 0})
	// Rotating +X by 90 degrees about +Y gives -Z.
	expected := [3]float32{0, 0, -1}
	for i := range v {
		if math.Abs(float64(v[i]-expected[i])) > 1e-6 {
			t.Fatalf("Expected %v, got %v", expected, v)
		}
	}

	o = Orientation{X: math.Pi / 2}
	v = o.Matrix().TransformAffine([3]float32{0, 1, 0})
	expected = [3]float32{0, 0, 1}
	for i := range v {
		if math.Abs(float64(v[i]-expected[i])) > 1e-6 {
			t.Fatalf("Expected %v, got %v", expected, v)
		}
	}
}
