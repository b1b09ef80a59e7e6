package starfield

import (
	"context"
	"sync"
	"time"
)

// TickerScheduler calls the frame callback from its own goroutine at a
// fixed rate. It stands in for a display refresh signal on native backends.
type TickerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTickerScheduler returns a scheduler ticking fps times per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{interval: time.Second / time.Duration(fps)}
}

func (s *TickerScheduler) Start(fn func() bool) {
	s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		tick := time.NewTicker(s.interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				if !fn() {
					return
				}
			}
		}
	}()
}

// Stop cancels the ticker and waits for the callback goroutine to exit.
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// ManualScheduler runs the frame callback only when Tick is called.
// Backends whose toolkit owns the refresh loop drive frames through it.
type ManualScheduler struct {
	mu sync.Mutex
	fn func() bool
}

func (s *ManualScheduler) Start(fn func() bool) {
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
}

func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	s.fn = nil
	s.mu.Unlock()
}

// Tick runs one frame. It returns false if no callback is running.
func (s *ManualScheduler) Tick() bool {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	if fn() {
		return true
	}
	s.Stop()
	return false
}
